// Package merging combines two versions of the same property or tax lot
// into one record.
//
// MergeState takes state1 as the existing version and state2 as the new
// one. Declared fields and extra-data keys are resolved by per-field
// priority. The geocoding fields are always taken together from one
// side. Derived fields are recomputed after the plain copy, and property
// relationships are copied onto the merged record with fresh identity.
//
// # Import Rules
//
// This package may import domain and logger. It must not import
// services or adapters.
package merging
