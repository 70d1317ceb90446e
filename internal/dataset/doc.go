// Package dataset is the data-loading boundary between external data
// providers and the computation core.
//
// The core (internal/index) depends on a stable, pre-validated schema. This
// package produces that schema: it reads provider-delivered CSV and XLSX
// tables, normalizes them into the domain record types, and applies the
// schema-normalization rules in one explicit place:
//
//   - Optional columns absent from a table are filled with the null sentinel
//     (NaN for floats, domain.UnknownClassification for classification
//     strings) rather than failing.
//   - Blank cells in optional columns become the same sentinels.
//   - Missing required columns and cells that cannot be parsed into their
//     declared types are fatal loading errors. This is the only layer that
//     raises on malformed data; past it, everything degrades to null.
//
// Records are validated against their struct tags with
// go-playground/validator before being handed to the core.
package dataset
