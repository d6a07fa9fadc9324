// Package validation parses and validates query parameters of the dashboard API.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

var (
	// ErrInvalidFilter indicates a query parameter could not be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInputTooLong indicates input exceeds maximum length.
	ErrInputTooLong = errors.New("input exceeds maximum length")
	// ErrInputInvalid indicates input contains invalid characters.
	ErrInputInvalid = errors.New("input contains invalid characters")
)

// MaxMachineIDLength matches the width of the machines.id column.
const MaxMachineIDLength = 50

// Accepted timestamp layouts, tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ProgramQuery holds the raw filter parameters of program listing and export requests.
type ProgramQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	MachineID string `form:"machineId"`
}

// Filter converts the query into a ProgramFilter. Empty parameters impose no constraint.
func (q ProgramQuery) Filter() (models.ProgramFilter, error) {
	var filter models.ProgramFilter

	start, err := ParseDate(q.StartDate)
	if err != nil {
		return filter, fmt.Errorf("%w: startDate: %w", ErrInvalidFilter, err)
	}
	end, err := ParseDate(q.EndDate)
	if err != nil {
		return filter, fmt.Errorf("%w: endDate: %w", ErrInvalidFilter, err)
	}

	machineID := strings.TrimSpace(q.MachineID)
	if err := ValidateMachineID(machineID); err != nil {
		return filter, fmt.Errorf("%w: machineId: %w", ErrInvalidFilter, err)
	}

	filter.StartDate = start
	filter.EndDate = end
	filter.MachineID = machineID
	return filter, nil
}

// ParseDate parses an ISO-8601 timestamp or calendar date. An empty value yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%q is not an ISO-8601 date", value)
}

// ValidateMachineID checks a machine identifier filter. Empty is allowed.
func ValidateMachineID(id string) error {
	if len(id) > MaxMachineIDLength {
		return ErrInputTooLong
	}
	if strings.ContainsAny(id, "\x00\n\r\t") {
		return ErrInputInvalid
	}
	return nil
}
