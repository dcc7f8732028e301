// Package pack selects and places a subset of candidate grains so the
// aggregate approximates the target size and filling statistics.
//
// What:
//
//   - Optimizer carries the whole packing context: RNG, target
//     tables, coarse grid, catalog, active list, and the incremental
//     error totals (the explicit context the move functions mutate).
//   - Setup generates the 25× candidate pool, coarsens the grid to 4×
//     the final pitch, voxelizes every candidate, builds the shell
//     neighborhood index, and activates the first N picks.
//   - Run executes the stochastic loop: moves Add, Remove, Replace,
//     and ReplaceWithNeighbor cycle by iteration mod 4; a move is
//     evaluated as a hypothetical cost delta and committed only when
//     the summed relative change stays within the decaying allowance
//     0.4 · meanAcceptedChange · ((total−iter)/total)².
//   - Finalize compacts the surviving grains into ids 1..M.
//
// Error terms:
//
//   - Filling: empty cells cost 1, single coverage is free, overlap
//     costs the summed inside-function values. Maintained
//     incrementally; the from-scratch recompute must agree within
//     1e−9·pool (checked invariant).
//   - Size distribution: Welch t-test of active log-diameters against
//     the target, mapped to 1−2p.
//   - Neighborhood: per-diameter, per-shell t-tests, diagnostic only;
//     reported through the progress hook but never gating acceptance.
//
// Concurrency: moves are strictly sequential. Only the per-candidate
// voxel enumeration in Setup fans out (disjoint catalog slices, no
// RNG use).
package pack
