// Package cleaners normalises single raw cell values into typed values.
//
// Every cleaner is a pure function of one value. Unparsable input comes
// back as nil rather than an error, except Bool which reports false.
//
// # Import Rules
//
// This package may import domain and matchers. It must not import
// services or adapters.
package cleaners
