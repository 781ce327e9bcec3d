package flatjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenglei/jsoncol/internal/column"
)

func TestDeriveInfersKeysAndKinds(t *testing.T) {
	t.Parallel()

	docs := docColumn(t,
		`{"k1": 1, "k2": "a"}`,
		`{"k1": 2, "k2": "b", "k3": true}`,
		`{"k1": 3, "k2": "c"}`,
		`{"k1": 4, "k2": "d", "k4": [1]}`,
	)

	schema, err := Derive(docs, 1024, 0.8)
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Key: "k1", Kind: column.KindInt},
		{Key: "k2", Kind: column.KindString},
	}, schema.Fields())
}

func TestDeriveWidensToJSON(t *testing.T) {
	t.Parallel()

	docs := docColumn(t,
		`{"k1": 1, "k2": [1], "k3": null, "k4": true}`,
		`{"k1": 2.5, "k2": [2], "k3": "x", "k4": false}`,
	)

	schema, err := Derive(docs, 1024, 1.0)
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Key: "k1", Kind: column.KindJSON},
		{Key: "k2", Kind: column.KindJSON},
		{Key: "k3", Kind: column.KindJSON},
		{Key: "k4", Kind: column.KindBool},
	}, schema.Fields())
}

func TestDeriveCountsObjectRowsOnly(t *testing.T) {
	t.Parallel()

	docs := docColumn(t,
		"",
		`[1, 2]`,
		`7`,
		`{"k1": 1}`,
		`{"k1": 2}`,
	)

	schema, err := Derive(docs, 1024, 1.0)
	require.NoError(t, err)
	require.Equal(t, []string{"k1"}, schema.Keys())
}

func TestDeriveHonorsSampleLimit(t *testing.T) {
	t.Parallel()

	docs := docColumn(t,
		`{"k1": 1}`,
		`{"k1": 2}`,
		`{"k2": "beyond the sample"}`,
	)

	schema, err := Derive(docs, 2, 0.5)
	require.NoError(t, err)
	require.Equal(t, []string{"k1"}, schema.Keys())
}

func TestDeriveCountsDuplicateKeysOnce(t *testing.T) {
	t.Parallel()

	// Only the first occurrence reaches a sub-column, so only it shapes
	// the kind.
	docs := docColumn(t, `{"k1": 1, "k1": "x"}`)

	schema, err := Derive(docs, 1024, 1.0)
	require.NoError(t, err)
	require.Equal(t, []Field{{Key: "k1", Kind: column.KindInt}}, schema.Fields())
}

func TestDeriveNoFlattenableKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		docs *column.JSONs
	}{
		{name: "no_object_rows", docs: docColumn(t, `[1]`, `"x"`, "")},
		{name: "no_key_meets_share", docs: docColumn(t, `{"k1": 1}`, `{"k2": 2}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Derive(tc.docs, 1024, 0.8)
			require.ErrorIs(t, err, ErrNoFlattenableKeys)
		})
	}
}

func TestDeriveValidatesArguments(t *testing.T) {
	t.Parallel()

	docs := docColumn(t, `{"k1": 1}`)

	_, err := Derive(docs, 0, 0.8)
	require.Error(t, err)

	_, err = Derive(docs, 1024, 0)
	require.Error(t, err)

	_, err = Derive(docs, 1024, 1.5)
	require.Error(t, err)
}

func TestDeriveRejectsConstantColumns(t *testing.T) {
	t.Parallel()

	_, err := Derive(column.ConstJSON(mustDoc(t, `{"k1": 1}`), 4), 1024, 0.8)
	require.ErrorIs(t, err, ErrConstColumn)
}
