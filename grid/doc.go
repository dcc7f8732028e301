// Package grid models the discretized sample volume as a periodic 3D
// grid of voxels addressed by a flat index.
//
// What:
//
//   - Geometry maps (x,y,z) cell coordinates to flat indices and
//     physical coordinates, with periodic wrap on all three axes.
//   - Grid owns the voxel array: the grain labeling, the transient
//     per-voxel coverage lists used during packing, and the
//     surface/nearest-neighbor bookkeeping filled after voxelization.
//   - FitCube derives grid dimensions from a target volume and a
//     voxel pitch.
//
// Why:
//
//   - Packing, voxel assignment, gap fill, and boundary discovery all
//     share one indexing scheme; centralizing it keeps the periodic
//     arithmetic in exactly one place.
//
// Complexity:
//
//   - Index/Coords/CellCenter: O(1).
//   - Cover/Uncover: amortized O(1) / O(row) respectively.
//   - FillingError/CoverageCount: O(total coverage).
//
// Errors:
//
//   - ErrBadDimensions: non-positive point counts or resolution.
//
// Coverage/membership agreement is the packer's checked invariant;
// the grid only provides the from-scratch recomputations
// (FillingError, CoverageCount) the check compares against.
package grid
