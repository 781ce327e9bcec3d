package parsecache

import (
	"errors"
	"testing"

	"github.com/tenglei/jsoncol/internal/jsonval"
)

func TestLoadParsesEachDistinctTextOnce(t *testing.T) {
	t.Parallel()

	c := New(true)
	for range 5 {
		if _, err := c.Load(`{"k1": "v1"}`); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
	}
	if got := c.Parses(); got != 1 {
		t.Fatalf("Parses() = %d, want 1", got)
	}

	if _, err := c.Load(`{"k2": "v2"}`); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := c.Parses(); got != 2 {
		t.Fatalf("Parses() = %d after second text, want 2", got)
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestLoadDisabledParsesEveryTime(t *testing.T) {
	t.Parallel()

	c := New(false)
	for range 5 {
		if _, err := c.Load(`{"k1": "v1"}`); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
	}
	if got := c.Parses(); got != 5 {
		t.Fatalf("Parses() = %d, want 5", got)
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0 when disabled", got)
	}
}

func TestLoadResultsDoNotDependOnCaching(t *testing.T) {
	t.Parallel()

	const text = `{"k1": [1, 2, 3], "k2": "v"}`

	cached := New(true)
	fresh := New(false)

	a, err := cached.Load(text)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	b, err := fresh.Load(text)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if a.String() != b.String() {
		t.Fatalf("cached render %q differs from fresh render %q", a.String(), b.String())
	}
}

func TestLoadDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	c := New(true)
	for range 2 {
		if _, err := c.Load(`{"k1": 1`); !errors.Is(err, jsonval.ErrParse) {
			t.Fatalf("Load error = %v, want ErrParse", err)
		}
	}
	if got := c.Parses(); got != 2 {
		t.Fatalf("Parses() = %d, want 2 attempts for repeated bad text", got)
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}

func TestResetDropsEntries(t *testing.T) {
	t.Parallel()

	c := New(true)
	if _, err := c.Load(`[1, 2]`); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	c.Reset()

	if got := c.Len(); got != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", got)
	}
	if got := c.Parses(); got != 0 {
		t.Fatalf("Parses() after Reset = %d, want 0", got)
	}

	if _, err := c.Load(`[1, 2]`); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := c.Parses(); got != 1 {
		t.Fatalf("Parses() = %d after reload, want 1", got)
	}
}
