// Package domain holds the building-energy record model shared by every
// layer of seedmerge.
//
// Records are property or tax-lot states. Each kind declares its canonical
// fields in a Schema; anything a source file carries beyond that lives in
// the record's extra data. A ColumnMapping proposes, per raw header, the
// canonical field it fills, and a PriorityConfig decides per field which
// side wins a merge. AppSettings bundles the user-tunable knobs.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
