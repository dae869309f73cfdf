package shared

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"dayflow/internal/transport/http/api"
)

// ValidationIssue names one rejected field the way the envelope reports it
// under error.details.fields.
type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator accumulates per-field issues while a handler decodes its
// payload, so one response can report everything that is wrong.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	v.issues = append(v.issues, ValidationIssue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

// Date parses a date field, recording an issue on failure. The zero time is
// treated as a failure so callers can rely on the returned flag.
func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(raw)
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

// DateOrder flags both ends of an inverted range; zero values were already
// reported by Date and are skipped here.
func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) Range(field string, value, min, max int, reason string) {
	if value < min || value > max {
		v.Add(field, reason)
	}
}

func (v *Validator) HasIssues() bool {
	return len(v.issues) > 0
}

// Issues returns a copy sorted by field so responses are stable regardless
// of check order.
func (v *Validator) Issues() []ValidationIssue {
	if len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Reject writes the 400 validation envelope when any issue was recorded and
// reports whether the handler should stop.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": v.Issues()},
		requestID,
	)
	return true
}
