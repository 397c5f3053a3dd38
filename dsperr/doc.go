// Package dsperr defines the error kinds shared by the spectral analysis packages.
//
// Every validation failure is a *Error carrying the offending parameter name,
// its value and the violated constraint. Errors unwrap to one of the kind
// sentinels so callers can branch with errors.Is:
//   - ErrInvalidParameter for out-of-range or inconsistent configuration
//   - ErrInvalidInput for malformed runtime data such as an empty signal
//   - ErrNumericalDegeneracy for conditions normally handled by a fallback
package dsperr
