// Package assign converts the packed continuous ellipsoids into a
// final voxel labeling.
//
// What:
//
//   - Voxelize rebuilds the grid at the true resolution (the packing
//     grid is 4× coarser) and labels every cell inside a grain body.
//     Overlap demotes a cell to Unassigned with the conflict flag
//     set, so no later grain claims it during the first pass.
//   - FillGaps iterates: each pass re-opens the remaining gap cells,
//     grows every grain's bounding semi-axis by pass·dx/2, and lets
//     the first grain to reach a gap cell claim it. Terminates when
//     every cell carries a positive label.
//   - DiscoverNeighbors scans 6-connectivity on the final labeling:
//     per-grain neighbor lists, shared boundary areas, surface-grain
//     flags, and the total boundary area the MDF is normalized by.
//
// Memory: the coarse grid must be released by the caller before
// Voxelize allocates the fine one (the two are never needed
// together); Voxelize only receives the coarse Geometry value.
//
// Invariants after FillGaps: every voxel label is in 1..M; each
// grain's rebuilt voxel list length equals its recorded NumVoxels.
package assign
