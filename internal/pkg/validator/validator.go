package validator

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts any RFC 4122 UUID in its canonical 36-char form.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(worktime.DateLayout, dateStr)
	return date, err == nil
}

// IsValidClock parses a HH:MM time of day.
func IsValidClock(s string) (worktime.Clock, bool) {
	c, err := worktime.ParseClock(s)
	return c, err == nil
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func IsValidYear(year int) bool {
	return year >= 1900 && year <= 9999
}

// SplitList splits a comma separated list, trimming blanks and dropping
// duplicates while keeping the first occurrence order.
func SplitList(s string) []string {
	if IsEmpty(s) {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return Unique(parts)
}

// Unique drops repeated values, keeping first occurrences in order.
func Unique(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// InvalidUUIDs returns the entries of ids that are not valid UUIDs.
func InvalidUUIDs(ids []string) []string {
	var bad []string
	for _, id := range ids {
		if !IsValidUUID(id) {
			bad = append(bad, id)
		}
	}
	return bad
}
