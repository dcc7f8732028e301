// Package orient implements crystallographic orientation algebra:
// Bunge Euler angles to unit quaternions, the crystal symmetry
// groups, and the disorientation angle between two orientations.
//
// What:
//
//   - Crystal selects the symmetry group (hexagonal: 12 operators,
//     cubic: 24) and fixes the ODF discretization that goes with it.
//   - FromEuler converts a Bunge (φ1, Φ, φ2) triple to the unit
//     quaternion convention the matcher stores per grain.
//   - Disorientation returns the minimum rotation angle (degrees)
//     aligning two orientations under the symmetry group, plus a
//     rotation axis: that of the minimizing representative for
//     hexagonal, that of the unreduced base misorientation for cubic.
//
// The cubic branch exploits the component-sort shortcut: the 24
// operators permute and sign-flip quaternion components, so the
// minimum angle falls out of the sorted absolute components without
// enumerating the group. The hexagonal branch applies its 12
// operators explicitly.
//
// Numeric policy: every acos argument is clamped to [−1,1]; axis
// division by sin(w/2) is guarded, returning a zero axis at w≈0.
package orient
