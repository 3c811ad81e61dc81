// Package resolver queries a Simbad-style name-resolution service and
// extracts ICRS J2000 coordinates from its ASCII response.
//
// # Behavior
//
// Responses are scanned line by line for the fixed coordinate pattern
//
//	Coordinates(ICRS,ep=J2000,eq=2000): HH MM SS.ss  +DD MM SS.s
//
// and the first match is converted from sexagesimal to decimal degrees.
// When a velocity rescale was requested, the "Radial velocity" line is also
// scanned for either a km/s value or a redshift; a missing velocity line is
// never an error.
//
// Every lookup is a single HTTP request with no retry. Names that fail to
// resolve are reported to the caller so the batch can skip them and move on.
package resolver
