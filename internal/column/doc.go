package column

// Package column holds the narrow in-memory column model the JSON query
// functions evaluate over: typed cells plus per-row validity, with
// constant columns for arguments fixed across a batch.
//
// The model covers only what the query functions, the casts, and the
// flattener consume. It is not a general execution layout. A null cell
// is absence of a value and is distinct from a JSON null stored in a
// JSON column cell.
