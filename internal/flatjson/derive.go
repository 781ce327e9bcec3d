package flatjson

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

type keyStat struct {
	rows int
	kind column.Kind
}

// Derive infers a flattening schema from the first sampleRows rows of
// docs. A key qualifies when it appears in at least minShare of the
// sampled object rows; null rows and non-object rows never count toward
// the share. A key gets a narrow kind only when every sampled occurrence
// carries exactly that type, so flattening under a derived schema never
// hits a conversion miss. Mixed types, containers and stored nulls all
// widen to KindJSON. Field order follows first appearance in the sample.
func Derive(docs *column.JSONs, sampleRows int, minShare float64) (*Schema, error) {
	if sampleRows <= 0 {
		return nil, fmt.Errorf("flatjson: sample of %d rows cannot derive a schema", sampleRows)
	}
	if minShare <= 0 || minShare > 1 {
		return nil, fmt.Errorf("flatjson: share %v outside (0, 1]", minShare)
	}
	if docs.IsConst() {
		return nil, ErrConstColumn
	}

	limit := min(sampleRows, docs.Len())
	stats := make(map[string]*keyStat)
	var order []string
	objectRows := 0

	for row := 0; row < limit; row++ {
		if docs.IsNull(row) {
			continue
		}
		doc := docs.Value(row)
		if doc.Type() != jsonval.TypeObject {
			continue
		}
		objectRows++
		seen := make(map[string]bool, doc.Count())
		for i := 0; i < doc.Count(); i++ {
			key, v := doc.Entry(i)
			if seen[key] {
				// Duplicate keys past the first land in the remainder,
				// so only the first occurrence shapes the field.
				continue
			}
			seen[key] = true
			st, ok := stats[key]
			if !ok {
				stats[key] = &keyStat{rows: 1, kind: kindOf(v)}
				order = append(order, key)
				continue
			}
			st.rows++
			if st.kind != kindOf(v) {
				st.kind = column.KindJSON
			}
		}
	}

	eligible := lo.Filter(order, func(key string, _ int) bool {
		return float64(stats[key].rows) >= minShare*float64(objectRows)
	})
	if objectRows == 0 || len(eligible) == 0 {
		return nil, ErrNoFlattenableKeys
	}

	return NewSchema(lo.Map(eligible, func(key string, _ int) Field {
		return Field{Key: key, Kind: stats[key].kind}
	}))
}

func kindOf(v jsonval.Value) column.Kind {
	switch v.Type() {
	case jsonval.TypeBool:
		return column.KindBool
	case jsonval.TypeInt:
		return column.KindInt
	case jsonval.TypeDouble:
		return column.KindDouble
	case jsonval.TypeString:
		return column.KindString
	default:
		return column.KindJSON
	}
}
