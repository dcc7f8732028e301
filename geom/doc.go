// Package geom voxelizes grain bodies: given a grain's volume, aspect
// ratios, shape class, shape factor, and axis orientation, it
// enumerates every grid cell inside the body under periodic
// boundaries.
//
// What:
//
//   - Shape bundles the intrinsic shape fields of one grain.
//   - SemiAxis solves the bounding principal semi-axis from the
//     volume for each shape class (ellipsoid, superellipsoid with
//     exponent N, chamfered cuboctahedron).
//   - RotationMatrix builds the Bunge-convention orientation matrix.
//   - ForEachCell walks the axis-aligned bounding box around the
//     centroid, wraps every candidate cell into the periodic box,
//     and reports cells whose center lies inside the body together
//     with the inside-function value used as the packing cost kernel.
//
// Complexity:
//
//   - ForEachCell: O(b³) cells for a bounding box of b cells per axis;
//     O(1) per cell.
//
// Errors:
//
//   - ErrShapeClass: unknown shape class.
//   - ErrNonPositive: non-positive volume or aspect ratio.
package geom
