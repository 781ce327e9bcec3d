package flatjson

// Package flatjson splits a JSON column into typed sub-columns for its
// frequent top-level keys plus a remainder column for everything else.
// Schemas are either declared or derived from a row sample, queries
// route to sub-columns when the path allows it, and every row can be
// reconstructed into a document equivalent to the original.
