package jsonpath

// Constants for the step kinds a compiled path is made of.
const (
	// StepKey selects an object member by name.
	StepKey StepKind = iota
	// StepIndex selects an array element by position.
	StepIndex
	// StepWildcard fans out over every array element or object member value.
	StepWildcard
	// StepSlice selects the half-open array range [Start, End).
	StepSlice
	// StepInvalid marks a trailing run of the expression the compiler could
	// not parse. An invalid step never matches anything.
	StepInvalid
)

// StepKind identifies how a single path step addresses the current node.
type StepKind uint8

// Step is one compiled path step. Only the fields relevant to its Kind
// are set.
type Step struct {
	Kind  StepKind
	Key   string // member name for StepKey
	Index int    // element position for StepIndex
	Start int    // inclusive lower bound for StepSlice
	End   int    // exclusive upper bound for StepSlice
}

// Path is a compiled path expression. It is immutable after Compile and
// safe to share across goroutines evaluating disjoint rows.
type Path struct {
	raw   string
	steps []Step
}

// String returns the expression the path was compiled from.
func (p *Path) String() string { return p.raw }

// Steps exposes the compiled steps so callers can route on the first
// step without re-parsing the expression.
func (p *Path) Steps() []Step { return p.steps }
