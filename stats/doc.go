// Package stats holds the immutable target tables the synthesizer
// reproduces, and parses the keyword-driven statistics files they are
// loaded from.
//
// What:
//
//   - Tables: grain-size distribution, per-diameter beta parameters
//     for the aspect ratios and the shape factor, per-diameter
//     neighborhood means and spreads, axis-ODF (stored as prefix
//     sums), ODF, MDF, and microtexture densities.
//   - Load / LoadAxisODF / LoadODF / LoadMDF / LoadMicrotexture:
//     file loaders for the plain-text formats, each failing before
//     any pipeline state exists.
//   - WelchError: the two-sample t-test mapped to the 1−2p error
//     contribution used by the packing error terms.
//
// Errors:
//
//   - ErrMissingDiameterInfo: a per-diameter table appeared before
//     Grain_Diameter_Info.
//   - ErrDiameterRange: minDiameter > maxDiameter or non-positive bins.
//   - ErrTruncated: a table ended mid-row.
//   - ErrIncomplete: Validate found a required table absent.
//
// All tables are read-only after load; every stage shares one *Tables.
package stats
