// Package query evaluates JSONPath expressions over stored order records.
//
// The records are queried as the same document the JSON store writes, so
// field names match orders.json (products, total_cost, shipping_method, ...).
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/shipquote/internal/domain"
)

// lang is JSONPath plus gval's full expression set, so filters like
// $[?(@.distance_km > 10)] can compare.
var lang = gval.NewLanguage(gval.Full(), jsonpath.Language())

// Eval runs expr against the record list. A leading "$" may be omitted:
// ".length" style paths and "[0]" are rooted automatically.
func Eval(records []domain.OrderRecord, expr string) (any, error) {
	expr = normalize(expr)
	if expr == "" {
		return nil, invalid(expr, errors.New("empty jsonpath expression"))
	}

	doc, err := document(records)
	if err != nil {
		return nil, err
	}

	val, err := lang.Evaluate(expr, doc)
	if err != nil {
		return nil, invalid(expr, err)
	}
	return val, nil
}

// Format renders a query result for terminal output: strings as-is, numbers
// without exponent, everything else as indented JSON.
func Format(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case string:
		return t, nil
	case float64:
		return formatNumber(t), nil
	case bool:
		return fmt.Sprint(t), nil
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func normalize(expr string) string {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.HasPrefix(expr, "$") {
		return expr
	}
	if strings.HasPrefix(expr, ".") || strings.HasPrefix(expr, "[") {
		return "$" + expr
	}
	return "$." + expr
}

func document(records []domain.OrderRecord) (any, error) {
	if records == nil {
		records = []domain.OrderRecord{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(f)
}

func invalid(expr string, err error) error {
	return &domain.OpError{
		Op:   "query.eval",
		Kind: domain.KindInvalidQuery,
		Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
	}
}
