package entities

import (
	"encoding/json"
	"slices"
)

// Evaluate reports whether a single condition holds for the snapshot.
// It never fails: a metric missing from the snapshot, a value of the wrong
// shape or an unknown operator all evaluate to false.
func Evaluate(c Condition, s Snapshot) bool {
	switch c.Key {
	case MetricTimeBefore, MetricTimeAfter:
		return false
	case MetricCategory:
		// The category rule only asks whether the named bucket has progress;
		// the operator is not consulted.
		name, ok := c.Value.(string)
		if !ok {
			return false
		}
		return s.Completed[Category(name)] > 0
	}

	metric, ok := s.Get(c.Key)
	if !ok {
		return false
	}

	switch c.Operator {
	case OpEqual:
		return matches(metric, c.Value)

	case OpGreaterOrEqual, OpLessOrEqual, OpGreater, OpLess:
		if metric.Kind != KindNumber {
			return false
		}
		want, ok := toNumber(c.Value)
		if !ok {
			return false
		}
		return compare(c.Operator, metric.Number, want)

	case OpIn:
		options, ok := toList(c.Value)
		if !ok {
			return false
		}
		return slices.ContainsFunc(options, func(o any) bool { return matches(metric, o) })

	case OpContains:
		if metric.Kind != KindList {
			return false
		}
		want, ok := c.Value.(string)
		if !ok {
			return false
		}
		return slices.Contains(metric.List, want)
	}

	return false
}

// EvaluateAll reports whether every condition holds. An empty list never
// holds, so an achievement without conditions can not unlock.
func EvaluateAll(conditions []Condition, s Snapshot) bool {
	if len(conditions) == 0 {
		return false
	}
	for _, c := range conditions {
		if !Evaluate(c, s) {
			return false
		}
	}
	return true
}

func compare(op Operator, got, want float64) bool {
	switch op {
	case OpGreaterOrEqual:
		return got >= want
	case OpLessOrEqual:
		return got <= want
	case OpGreater:
		return got > want
	case OpLess:
		return got < want
	}
	return false
}

// matches is exact equality between a scalar metric and a condition value.
func matches(metric MetricValue, v any) bool {
	switch metric.Kind {
	case KindNumber:
		n, ok := toNumber(v)
		return ok && n == metric.Number
	case KindText:
		s, ok := v.(string)
		return ok && s == metric.Text
	}
	return false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(l))
		for i, f := range l {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]any, len(l))
		for i, n := range l {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}
