// Package grain owns the candidate grain catalog: every grain's
// immutable shape and orientation fields, the mutable packing state
// (active flag, centroid, voxel membership, shell counters), and the
// post-labeling neighborhood data.
//
// What:
//
//   - Grain / Catalog: the shared data model all four pipeline stages
//     mutate. Catalog indexing is 1-based; id 0 is reserved so grain
//     ids double as voxel labels (0 = unlabeled).
//   - Generate: samples one candidate from the target statistics
//     (log-normal diameter clamped at ±2σ, conditional beta aspect
//     ratios filtered by the c/b acceptance check, axis orientation
//     from the axis-ODF prefix sum, beta shape factor).
//   - BuildShellIndex: the pairwise neighborhood index. Shells[s] of
//     grain X lists every grain i with |X−i| < 4·rᵢ at shell
//     s = ⌊d/rᵢ⌋, i.e. the grains whose shell-s counter changes when
//     X toggles active.
//
// Lifecycle: intrinsic shape fields never change after Generate; only
// the active flag, centroid, membership lists, and counters mutate.
//
// Complexity: Generate O(1) expected; BuildShellIndex O(n²).
package grain
