package jsonfunc

import "errors"

var (
	// ErrInvalidArgument reports argument shapes an operation cannot
	// accept: mismatched column lengths, a missing path column, or a
	// flattened batch whose path rows disagree.
	ErrInvalidArgument = errors.New("jsonfunc: invalid argument")

	// ErrDataQuality reports malformed document or path text. Constant
	// inputs fail the batch; per-row inputs degrade that row to null.
	ErrDataQuality = errors.New("jsonfunc: malformed input text")
)
