// Package errs holds the typed errors shared by the domain, application and
// adapter layers of the order workflow service.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid) with a struct
// carrying the offending parameter and an optional cause. Unwrap returns the
// sentinel, so callers branch with errors.Is and inspect details with errors.As:
//
//	if errors.Is(err, errs.ErrVersionIsInvalid) {
//	    // reload the aggregate and retry
//	}
//
// Values interpolated into messages are flattened to one line.
package errs
