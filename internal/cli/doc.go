package cli

// Package cli parses the jsonquery command line and runs one engine
// operation over line-delimited JSON documents, one result per row.
// Parse returns a validated Config or an exit result; New builds a
// Runner whose input and output streams can be swapped for tests.
