// Package validation provides common validation helpers for configuration
// parameters across the floodgate library.
//
// The helpers keep error messages consistent between the limiter
// constructors and the daemon configuration, and reduce boilerplate in
// code that checks numeric ranges and required fields.
package validation
