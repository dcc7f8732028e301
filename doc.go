// Package grainsynth synthesizes three-dimensional polycrystalline
// microstructures: discretized volumes in which every voxel carries a
// grain label, every grain carries an ellipsoidal shape and a
// crystallographic orientation, and the aggregate reproduces target
// statistical distributions of grain size, shape, neighborhood,
// orientation, and grain-boundary misorientation.
//
// The pipeline runs in four stages over one shared data model:
//
//	randx/    — seedable RNG with uniform, normal, and beta draws
//	stats/    — target histogram tables + statistics-file loaders
//	geom/     — ellipsoid / superellipsoid / cuboctahedron voxelization
//	grid/     — periodic 3D voxel grid, coverage lists, neighbor scan
//	grain/    — candidate grain catalog and shell neighborhood index
//	pack/     — stochastic packing optimizer (add/remove/replace moves)
//	assign/   — fine-resolution voxel assignment and gap fill
//	orient/   — quaternions, crystal symmetry, disorientation
//	texture/  — ODF sampling and the ODF/MDF crystallography matcher
//	synth/    — stage orchestration, outputs, and logging
//	vtk/      — legacy-VTK structured-points export
//
// Determinism: every stochastic stage draws from a single seeded
// source; identical inputs and seed reproduce the identical volume.
//
//	go get github.com/MicroClue/grainsynth
package grainsynth
