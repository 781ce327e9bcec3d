package jsonpath

import (
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// Eval resolves the compiled path against doc. The boolean reports
// whether the path resolved: a found JSON null is distinct from not
// found. Shape mismatches (keying into an array, indexing an object,
// an out-of-range index) end in "not found", never an error.
func (p *Path) Eval(doc jsonval.Value) (jsonval.Value, bool) {
	return EvalSteps(doc, p.steps)
}

// EvalSteps resolves a step sequence against doc. Callers that route on
// the first step themselves, such as flattened column readers, evaluate
// the remaining steps with this.
func EvalSteps(doc jsonval.Value, steps []Step) (jsonval.Value, bool) {
	if len(steps) == 0 {
		return doc, true
	}

	step, rest := steps[0], steps[1:]
	switch step.Kind {
	case StepKey:
		if doc.Type() != jsonval.TypeObject {
			return jsonval.Value{}, false
		}
		child, ok := doc.Lookup(step.Key)
		if !ok {
			return jsonval.Value{}, false
		}
		return EvalSteps(child, rest)

	case StepIndex:
		// Negative positions never wrap around.
		if doc.Type() != jsonval.TypeArray || step.Index < 0 || step.Index >= doc.Count() {
			return jsonval.Value{}, false
		}
		return EvalSteps(doc.Elem(step.Index), rest)

	case StepWildcard, StepSlice:
		return evalFanOut(doc, step, rest)
	}

	// StepInvalid and anything unknown.
	return jsonval.Value{}, false
}

// evalFanOut branches into one sub-evaluation per selected child and
// collects the successful results into an array. Children that fail to
// resolve under the remaining steps are dropped, not nulled. Selecting
// nothing from a real container still counts as found: the result is an
// empty array. Only a shape mismatch at the fan-out step itself is
// "not found".
func evalFanOut(doc jsonval.Value, step Step, rest []Step) (jsonval.Value, bool) {
	object := doc.Type() == jsonval.TypeObject

	var lo, hi int
	switch {
	case step.Kind == StepWildcard && (object || doc.Type() == jsonval.TypeArray):
		lo, hi = 0, doc.Count()
	case step.Kind == StepSlice && doc.Type() == jsonval.TypeArray:
		lo, hi = clamp(step.Start, step.End, doc.Count())
	default:
		return jsonval.Value{}, false
	}

	collected := make([]jsonval.Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		var child jsonval.Value
		if object {
			_, child = doc.Entry(i)
		} else {
			child = doc.Elem(i)
		}
		if v, ok := EvalSteps(child, rest); ok {
			collected = append(collected, v)
		}
	}
	return jsonval.NewArray(collected), true
}

func clamp(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}
