// Package reconcile finds existing records that describe the same
// building or tax lot as a newly imported one.
//
// Search narrows a candidate pool with per-field "contains" predicates
// built from a named correspondence list. CalculateConfidence scores a
// candidate by mean token-set similarity over the fields both records
// populate, and GetBestMatch picks the highest scoring candidate.
//
// Queries can also render themselves as SQL so a store can run the
// same filter server side.
//
// # Import Rules
//
// This package may import domain and matchers. It must not import
// services or adapters.
package reconcile
