// Package randx centralizes deterministic random generation for every
// stochastic stage of the synthesizer.
//
// What:
//
//   - Source wraps one seedable stream exposing Uniform, Normal, Beta,
//     and Intn draws.
//   - Derive splits independent substreams for parallel workers via a
//     SplitMix64 finalizer, so worker output never correlates with the
//     parent stream.
//
// Why:
//
//   - Determinism: same seed ⇒ identical microstructure across runs.
//   - Encapsulation: one RNG factory; no time-based sources hidden
//     anywhere in the pipeline.
//   - Correct beta sampling over the full (0,∞)×(0,∞) parameter
//     domain, delegated to gonum's distuv.
//
// Concurrency:
//
//   - A Source is NOT safe for concurrent draws. Parallel stages must
//     call Derive during setup and hand each worker its own stream.
package randx
