package challenge

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/compound/internal/model"
)

// Field names one editable attribute of a step. Values match the JSON tags.
type Field string

const (
	FieldEquity       Field = "equity"
	FieldProfitTarget Field = "profitTarget"
	FieldAchieved     Field = "achieved"
	FieldNotes        Field = "notes"
)

// Fields lists every editable field.
var Fields = []Field{FieldEquity, FieldProfitTarget, FieldAchieved, FieldNotes}

// ErrInvalidValue is wrapped by WithField when a raw value cannot be applied.
var ErrInvalidValue = errors.New("invalid value")

// ParseField resolves a field name, accepting a few CLI-friendly aliases.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "equity":
		return FieldEquity, nil
	case "profittarget", "profit-target", "target":
		return FieldProfitTarget, nil
	case "achieved", "done":
		return FieldAchieved, nil
	case "notes", "note":
		return FieldNotes, nil
	}
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown field %q (one of %s)", name, strings.Join(names, ", "))
}

// WithField returns a copy of step with one field replaced by raw. Numbers
// must be finite and equity may not be negative. Achieved is parsed with
// strconv.ParseBool. The sequential-completion rule is not checked here.
func WithField(step model.Step, field Field, raw string) (model.Step, error) {
	switch field {
	case FieldEquity, FieldProfitTarget:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return step, fmt.Errorf("%w for %s: %q", ErrInvalidValue, field, raw)
		}
		if field == FieldEquity {
			if v < 0 {
				return step, fmt.Errorf("%w for %s: must not be negative", ErrInvalidValue, field)
			}
			step.Equity = v
		} else {
			step.ProfitTarget = v
		}
	case FieldAchieved:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return step, fmt.Errorf("%w for %s: %q", ErrInvalidValue, field, raw)
		}
		step.Achieved = v
	case FieldNotes:
		step.Notes = raw
	default:
		return step, fmt.Errorf("unknown field %q", field)
	}
	return step, nil
}

// WithStepAt returns a new sequence with the step at index replaced. seq is
// left untouched.
func WithStepAt(seq model.Sequence, index int, step model.Step) (model.Sequence, error) {
	if index < 0 || index >= len(seq) {
		return seq, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index+1, len(seq))
	}
	out := seq.Clone()
	out[index] = step
	return out, nil
}
