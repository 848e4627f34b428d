// Package atmosphere implements the US Standard Atmosphere 1976 from sea level
// to 84852 m' geopotential height.
//
// The model is a set of pure functions over a fixed 8-row layer table:
//
//   - [Layer] and [GeopotentialHeight] classify an altitude into a band
//   - [Lookup] returns the band constants for a geometric height
//   - [Temperature], [Pressure], [Density], [SpeedOfSound], [Viscosity]
//     evaluate the standard's equations for one band
//   - [Gravity], [Mach], [Reynolds] and [Thrust] are the flight helpers
//   - [At] composes all of the above for a single geometric height
//
// Heights inside a band are expressed in km' (geopotential kilometres), the
// same units as the lapse rates of the table.
//
// # Errors
//
// Every function validates its input and returns one of [ErrInvalidInput],
// [ErrOutOfRange] or [ErrDivisionByZero], wrapped with context. Nothing is
// clamped and no NaN is returned for bad input.
//
// The package holds no mutable state and is safe for concurrent use.
package atmosphere
