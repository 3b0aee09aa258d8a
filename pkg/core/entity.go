// Package core provides the entity model and the numeric primitives shared by
// the heatmap and dual-axis scalers.
package core

import (
	"fmt"
	"math"
	"strings"
)

// Entity is one labeled row of data to visualize (a protein, sample or group).
type Entity struct {
	Label    string // Row label, e.g. "P02769 - Control"
	LabelPos string // Annotation for the positive polarity (reference mode)
	LabelNeg string // Annotation for the negative polarity (reference mode)

	Positive []float64 // Upward series; the only series used by heatmaps
	Negative []float64 // Mirrored series; nil for heatmap rows
}

// ValidationError represents an error found during entity validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that an entity can be scaled. Missing values (NaN) and
// empty labels are allowed; infinite values are not.
func (e *Entity) Validate() error {
	var errs []string

	for i, v := range e.Positive {
		if math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("positive value %d is infinite", i))
		}
	}
	for i, v := range e.Negative {
		if math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("negative value %d is infinite", i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Entity " + e.Name(),
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// Name returns the label, or a placeholder for unlabeled entities.
func (e *Entity) Name() string {
	if e.Label == "" {
		return "<unlabeled>"
	}
	return e.Label
}

// HasData reports whether either series holds at least one non-missing value.
func (e *Entity) HasData() bool {
	for _, v := range e.Positive {
		if !IsMissing(v) {
			return true
		}
	}
	for _, v := range e.Negative {
		if !IsMissing(v) {
			return true
		}
	}
	return false
}

// Len returns the length of the longer series.
func (e *Entity) Len() int {
	if len(e.Negative) > len(e.Positive) {
		return len(e.Negative)
	}
	return len(e.Positive)
}
