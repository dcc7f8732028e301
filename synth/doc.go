// Package synth sequences the synthesis pipeline over one shared
// context: pack the candidate grains on the coarse grid, voxelize the
// survivors at the true resolution, fill the gaps, discover the
// boundary network, then assign and match crystallographic
// orientations.
//
// What:
//
//   - Options carries every configuration knob the original driver
//     recognized: grain count, shape class, crystal structure, voxel
//     pitch, seed, stage budgets, and the precipitate policy surface
//     (validated and stored; insertion is not part of the core).
//   - Synthesizer owns the stages and exposes the outputs: the
//     labeled grid iterator, the per-grain table, the simulated MDF,
//     and the microtexture fractions.
//
// Determinism: one seeded RNG drives every stochastic stage in a
// fixed order; identical inputs and seed reproduce the identical
// volume.
//
// Errors: stage failures are wrapped with the stage name; a failed
// stage-boundary consistency check surfaces ErrInvariant, which
// indicates a bug rather than bad input. A microstructure whose
// grains all touch the box surface skips orientation matching with a
// warning instead of failing.
package synth
