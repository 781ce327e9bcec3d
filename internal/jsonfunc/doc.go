package jsonfunc

// Package jsonfunc is the batch surface of the engine: path queries,
// scalar getters, constructors and casts over document columns, plus
// the text-column variants that work on raw JSON text. Callers bracket
// batches with Prepare and Close; the scope carries the compiled
// constant path, the parse cache and the degradation tally. Constant
// malformed input fails a batch, per-row malformed input nulls its row
// and counts against the scope.
