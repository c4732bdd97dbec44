package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Configuration errors. Both are fatal: the configuration is rejected.
var (
	ErrOutOfRange    = errors.New("value out of range")
	ErrUnknownPreset = errors.New("unknown preset")
)

// Warning codes. Warnings never reject a configuration.
const (
	WarnWeightSumNotHundred = "total_weight_not_100"
	WarnWeightSumZero       = "total_weight_zero"
	WarnValueClamped        = "value_clamped"
)

// FieldError reports a single configuration field that cannot be accepted.
type FieldError struct {
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// MarshalJSON writes non-finite values as strings, which encoding/json
// cannot represent as numbers.
func (e *FieldError) MarshalJSON() ([]byte, error) {
	type plain FieldError
	if isFinite(e.Value) {
		return json.Marshal((*plain)(e))
	}
	return json.Marshal(struct {
		Field  string `json:"field"`
		Value  string `json:"value"`
		Reason string `json:"reason"`
	}{e.Field, strconv.FormatFloat(e.Value, 'g', -1, 64), e.Reason})
}

// Unwrap lets callers match any field error with errors.Is(err, ErrOutOfRange).
func (*FieldError) Unwrap() error {
	return ErrOutOfRange
}

// Warning is a non-fatal validation finding.
type Warning struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds the outcome of Validate.
type ValidationResult struct {
	Errors   []*FieldError `json:"errors,omitempty"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Valid reports whether the configuration has no fatal errors.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins all field errors, or returns nil when the configuration is valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, fe := range r.Errors {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}

// Validate checks every weight, threshold, and boost against its declared
// range. Negative values, non-finite values, and a minRating above 5 are
// fatal. A weight sum other than 100 and values above 100 only produce
// warnings; scoring rescales the former and clamps the latter.
func Validate(cfg RankingConfig) ValidationResult {
	var res ValidationResult

	for _, f := range cfg.fields() {
		switch {
		case !isFinite(f.value):
			res.Errors = append(res.Errors, &FieldError{
				Field: f.name, Value: f.value, Reason: "must be a finite number",
			})
		case f.value < 0:
			res.Errors = append(res.Errors, &FieldError{
				Field: f.name, Value: f.value, Reason: "must not be negative",
			})
		case f.value > f.upper && f.hard:
			res.Errors = append(res.Errors, &FieldError{
				Field:  f.name,
				Value:  f.value,
				Reason: fmt.Sprintf("must be at most %v", f.upper),
			})
		case f.value > f.upper:
			res.Warnings = append(res.Warnings, Warning{
				Code:    WarnValueClamped,
				Field:   f.name,
				Message: fmt.Sprintf("%s %v clamped to %v", f.name, f.value, f.upper),
			})
		}
	}

	if !res.Valid() {
		return res
	}

	sum := cfg.Clamp().WeightSum()
	switch {
	case sum == 0:
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnWeightSumZero,
			Message: "all weights are 0; every product will score 0 before boosts",
		})
	case math.Abs(sum-MaxPercent) > weightSumTolerance:
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnWeightSumNotHundred,
			Message: fmt.Sprintf("weights sum to %v; scores are rescaled to a 0-100 scale", sum),
		})
	}

	return res
}

const weightSumTolerance = 1e-9

// NewConfig validates cfg and returns its clamped copy. The returned
// ValidationResult carries warnings even when err is nil.
func NewConfig(cfg RankingConfig) (RankingConfig, ValidationResult, error) {
	res := Validate(cfg)
	if err := res.Err(); err != nil {
		return RankingConfig{}, res, fmt.Errorf("invalid ranking config: %w", err)
	}
	return cfg.Clamp(), res, nil
}
