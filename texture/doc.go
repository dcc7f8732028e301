// Package texture assigns crystallographic orientations to grains and
// anneals them against the target ODF and MDF.
//
// What:
//
//   - Texture carries the matching context: catalog, symmetry group,
//     target tables, the simulated ODF/MDF accumulators, and the RNG.
//   - AssignOrientations samples every grain's Euler triple from the
//     ODF (inverse-CDF over the prefix sum, 5° jitter inside the
//     cell) and accumulates non-surface grains' volume fractions into
//     the simulated ODF.
//   - MeasureMisorientations fills every grain's pairwise
//     disorientation list and builds the simulated MDF, weighting
//     each boundary by its shared area over the total boundary area.
//   - Match runs the swap/exchange loop: reorient one grain from the
//     ODF, or exchange two grains' orientations; a trial commits iff
//     4·ΔODF + 0.25·ΔMDF > 0, where Δ is the old-minus-new squared
//     error over the affected bins. Terminates after the iteration
//     budget or a run of consecutive rejections.
//
// Surface grains keep their sampled orientation but are excluded from
// the accumulators and from matching: their boundaries leave the box.
//
// The per-bin deltas of one trial are each evaluated against the
// accumulators as they stand before the trial, so when several of its
// boundaries share an MDF bin the committed change can differ from the
// evaluated one: the weighted error 4·ODF² + 0.25·MDF² is not strictly
// non-increasing across commits.
package texture
