package flatjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonpath"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

func mustDoc(t *testing.T, text string) jsonval.Value {
	t.Helper()

	v, err := jsonval.ParseString(text)
	require.NoError(t, err)
	return v
}

// docColumn builds a JSON column from document texts; "" appends a null
// row.
func docColumn(t *testing.T, texts ...string) *column.JSONs {
	t.Helper()

	docs := column.NewJSONs()
	for _, text := range texts {
		if text == "" {
			docs.AppendNull()
			continue
		}
		docs.Append(mustDoc(t, text))
	}
	return docs
}

func mustSchema(t *testing.T, fields ...Field) *Schema {
	t.Helper()

	s, err := NewSchema(fields)
	require.NoError(t, err)
	return s
}

func mustPath(t *testing.T, expr string) *jsonpath.Path {
	t.Helper()

	p, err := jsonpath.Compile(expr)
	require.NoError(t, err)
	return p
}

func TestNewSchema(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		s := mustSchema(t,
			Field{Key: "k1", Kind: column.KindInt},
			Field{Key: "k2", Kind: column.KindString},
		)

		require.Equal(t, []string{"k1", "k2"}, s.Keys())
		require.Equal(t, "[k1(int) k2(string)]", s.String())

		j, ok := s.Index("k2")
		require.True(t, ok)
		require.Equal(t, 1, j)

		_, ok = s.Index("k3")
		require.False(t, ok)
	})

	t.Run("rejects_empty", func(t *testing.T) {
		t.Parallel()

		_, err := NewSchema(nil)
		require.ErrorIs(t, err, ErrSchema)
	})

	t.Run("rejects_empty_key", func(t *testing.T) {
		t.Parallel()

		_, err := NewSchema([]Field{{Key: "", Kind: column.KindJSON}})
		require.ErrorIs(t, err, ErrSchema)
	})

	t.Run("rejects_duplicate_key", func(t *testing.T) {
		t.Parallel()

		_, err := NewSchema([]Field{
			{Key: "k1", Kind: column.KindInt},
			{Key: "k1", Kind: column.KindJSON},
		})
		require.ErrorIs(t, err, ErrSchema)
	})
}

func TestFlattenSplitsDocuments(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t,
		Field{Key: "k1", Kind: column.KindInt},
		Field{Key: "k2", Kind: column.KindString},
	)
	docs := docColumn(t,
		`{"k1": 1, "k2": "a", "k3": true}`,
		"",
		`[1, 2, 3]`,
		`{"k2": "b"}`,
	)

	flat, err := Flatten(docs, schema)
	require.NoError(t, err)
	require.Equal(t, 4, flat.Len())

	k1, k2 := flat.Sub(0), flat.Sub(1)

	require.Equal(t, "1", k1.JSONAt(0).String())
	require.Equal(t, `"a"`, k2.JSONAt(0).String())
	require.Equal(t, `{"k3": true}`, flat.Remainder().Value(0).String())

	require.True(t, flat.IsNull(1))
	require.True(t, k1.IsNull(1))
	require.True(t, k2.IsNull(1))

	// A row that is not an object keeps the whole document in the
	// remainder so nothing is lost.
	require.False(t, flat.IsNull(2))
	require.True(t, k1.IsNull(2))
	require.Equal(t, "[1, 2, 3]", flat.Remainder().Value(2).String())

	require.True(t, k1.IsNull(3))
	require.Equal(t, `"b"`, k2.JSONAt(3).String())
	require.Equal(t, "{}", flat.Remainder().Value(3).String())
}

func TestFlattenRejectsConstantColumns(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})

	_, err := Flatten(column.ConstJSON(mustDoc(t, `{"k1": 1}`), 3), schema)
	require.ErrorIs(t, err, ErrConstColumn)

	_, err = Flatten(column.ConstNullJSON(3), schema)
	require.ErrorIs(t, err, ErrConstColumn)
}

func TestFlattenRequiresSchema(t *testing.T) {
	t.Parallel()

	_, err := Flatten(docColumn(t, `{"k1": 1}`), nil)
	require.ErrorIs(t, err, ErrSchema)
}

func TestFlattenMismatchedNarrowKindNullsTheCell(t *testing.T) {
	t.Parallel()

	// Hand-written schemas can disagree with the data. The mismatch
	// costs that cell, not the batch; derived schemas never hit this.
	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindInt})
	flat, err := Flatten(docColumn(t, `{"k1": "text"}`), schema)
	require.NoError(t, err)

	require.True(t, flat.Sub(0).IsNull(0))
	require.False(t, flat.IsNull(0))
}

func TestReconstruction(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t,
		Field{Key: "k1", Kind: column.KindInt},
		Field{Key: "k2", Kind: column.KindJSON},
	)

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "schema_keys_lead",
			doc:  `{"k3": true, "k1": 1}`,
			want: `{"k1": 1, "k3": true}`,
		},
		{
			name: "remainder_keeps_original_order",
			doc:  `{"k9": 9, "k2": [1, 2], "k3": "x"}`,
			want: `{"k2": [1, 2], "k9": 9, "k3": "x"}`,
		},
		{
			name: "duplicate_keys_survive",
			doc:  `{"k1": 1, "k1": 2}`,
			want: `{"k1": 1, "k1": 2}`,
		},
		{
			name: "array_row_is_verbatim",
			doc:  `[1, {"k1": 2}]`,
			want: `[1, {"k1": 2}]`,
		},
		{
			name: "scalar_row_is_verbatim",
			doc:  `7`,
			want: `7`,
		},
		{
			name: "stored_null_survives",
			doc:  `{"k2": null}`,
			want: `{"k2": null}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			flat, err := Flatten(docColumn(t, tc.doc), schema)
			require.NoError(t, err)
			require.Equal(t, tc.want, flat.Value(0).String())
		})
	}
}

func TestReconstructionOfNullRow(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})
	flat, err := Flatten(docColumn(t, ""), schema)
	require.NoError(t, err)

	require.True(t, flat.IsNull(0))
	require.True(t, flat.Value(0).IsNull())
}

func TestEvalRoutesSchemaKeysToSubColumns(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})
	flat, err := Flatten(docColumn(t, `{"k1": {"k2": 5}, "k9": 1}`), schema)
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		lazy      bool
		want      string
		wantFound bool
	}{
		{name: "schema_key", path: "$.k1", want: `{"k2": 5}`, wantFound: true},
		{name: "schema_key_descend", path: "$.k1.k2", want: "5", wantFound: true},
		{name: "remainder_key_lazy", path: "$.k9", lazy: true, want: "1", wantFound: true},
		{name: "absent_key_lazy", path: "$.nope", lazy: true, wantFound: false},
		{name: "root_reconstructs", path: "$", want: `{"k1": {"k2": 5}, "k9": 1}`, wantFound: true},
		{name: "index_on_object", path: "$[0]", wantFound: false},
		{name: "wildcard_fans_out", path: "$.*", want: `[{"k2": 5}, 1]`, wantFound: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, found, err := flat.Eval(0, mustPath(t, tc.path), tc.lazy)
			require.NoError(t, err)
			require.Equal(t, tc.wantFound, found)
			if tc.wantFound {
				require.Equal(t, tc.want, v.String())
			}
		})
	}
}

func TestEvalStrictModeRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})
	flat, err := Flatten(docColumn(t, `{"k1": 1, "k9": 2}`), schema)
	require.NoError(t, err)

	_, _, err = flat.Eval(0, mustPath(t, "$.k9"), false)
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestEvalOnNonObjectRows(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})
	flat, err := Flatten(docColumn(t, `[{"k2": 10}, {"k2": 20}]`), schema)
	require.NoError(t, err)

	v, found, err := flat.Eval(0, mustPath(t, "$[1].k2"), true)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "20", v.String())

	v, found, err = flat.Eval(0, mustPath(t, "$[0:2].k2"), true)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "[10, 20]", v.String())

	// The schema key routes to its sub-column, which is null here, and
	// a key lookup on an array misses either way.
	_, found, err = flat.Eval(0, mustPath(t, "$.k1"), true)
	require.NoError(t, err)
	require.False(t, found)
}

func TestEvalNullRow(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})
	flat, err := Flatten(docColumn(t, ""), schema)
	require.NoError(t, err)

	for _, expr := range []string{"$", "$.k1", "$.k9", "$[0]"} {
		_, found, err := flat.Eval(0, mustPath(t, expr), false)
		require.NoError(t, err)
		require.False(t, found)
	}
}

func TestEvalFindsStoredNull(t *testing.T) {
	t.Parallel()

	schema := mustSchema(t, Field{Key: "k1", Kind: column.KindJSON})
	flat, err := Flatten(docColumn(t, `{"k1": null}`), schema)
	require.NoError(t, err)

	v, found, err := flat.Eval(0, mustPath(t, "$.k1"), true)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, v.IsNull())
}

func TestEvalAgreesWithPlainEvaluation(t *testing.T) {
	t.Parallel()

	docs := []string{
		`{"k1": 1, "k2": {"k3": [1, 2, 3]}, "k4": "x"}`,
		`{"k2": {"k3": []}}`,
		`{"k4": null, "k1": 2}`,
		`[{"k1": 5}]`,
		`"scalar"`,
	}
	paths := []string{
		"$", "$.k1", "$.k2.k3", "$.k2.k3[1]", "$.k2.k3[*]", "$.k4",
		"$.k9", "$[0]", "$[0].k1", "$.*", "$[0:1]",
	}

	schema := mustSchema(t,
		Field{Key: "k1", Kind: column.KindInt},
		Field{Key: "k2", Kind: column.KindJSON},
	)
	flat, err := Flatten(docColumn(t, docs...), schema)
	require.NoError(t, err)

	for row, doc := range docs {
		for _, expr := range paths {
			p := mustPath(t, expr)
			wantV, wantFound := p.Eval(mustDoc(t, doc))

			// Wildcards over objects see reconstruction order, so pin
			// the comparison to found-ness plus rendered value for the
			// rows where order cannot differ.
			v, found, err := flat.Eval(row, p, true)
			require.NoError(t, err, "row %d path %s", row, expr)
			require.Equal(t, wantFound, found, "row %d path %s", row, expr)
			if found && expr != "$" && expr != "$.*" {
				require.Equal(t, wantV.String(), v.String(), "row %d path %s", row, expr)
			}
		}
	}
}
