// Package validator sanitizes raw booking submissions and checks them against
// the booking form's field rules. All rules are evaluated independently so the
// caller can report every problem at once.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/slauto/shopbooking/internal/domain"
)

const maxConcernLength = 2500

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Booking holds the sanitized submission fields, all trimmed strings.
type Booking struct {
	Name          string
	Phone         string
	Email         string
	ContactMethod string
	Year          string
	Make          string
	Model         string
	PreferredDate string
	TimeWindow    string
	ServiceType   string
	Concern       string
	VisitType     string
	Urgency       string
}

// Clean coerces an arbitrary decoded JSON value to a trimmed string.
func Clean(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Sanitize pulls the expected fields out of a raw payload, coercing each to a
// trimmed string. Absent fields become empty strings.
func Sanitize(payload map[string]any) Booking {
	return Booking{
		Name:          Clean(payload["name"]),
		Phone:         Clean(payload["phone"]),
		Email:         Clean(payload["email"]),
		ContactMethod: Clean(payload["contactMethod"]),
		Year:          Clean(payload["year"]),
		Make:          Clean(payload["make"]),
		Model:         Clean(payload["model"]),
		PreferredDate: Clean(payload["preferredDate"]),
		TimeWindow:    Clean(payload["timeWindow"]),
		ServiceType:   Clean(payload["serviceType"]),
		Concern:       Clean(payload["concern"]),
		VisitType:     Clean(payload["visitType"]),
		Urgency:       Clean(payload["urgency"]),
	}
}

// Validate returns every rule violation in b. An empty slice means the
// submission is acceptable.
func Validate(b Booking) []string {
	var errors []string

	if b.Name == "" {
		errors = append(errors, "Name is required.")
	}
	if b.Phone == "" {
		errors = append(errors, "Phone number is required.")
	}
	if b.ContactMethod == "" {
		errors = append(errors, "Preferred contact method is required.")
	}
	if b.Year == "" {
		errors = append(errors, "Vehicle year is required.")
	}
	if b.Make == "" {
		errors = append(errors, "Vehicle make is required.")
	}
	if b.Model == "" {
		errors = append(errors, "Vehicle model is required.")
	}
	if b.PreferredDate == "" {
		errors = append(errors, "Preferred date is required.")
	}
	if b.TimeWindow == "" {
		errors = append(errors, "Preferred time window is required.")
	}
	if b.ServiceType == "" {
		errors = append(errors, "Service type is required.")
	}

	if b.Email != "" && !emailPattern.MatchString(b.Email) {
		errors = append(errors, "Email is not valid.")
	}

	if year, err := strconv.Atoi(b.Year); err != nil || year < 1980 || year > 2035 {
		errors = append(errors, "Vehicle year must be between 1980 and 2035.")
	}

	if b.ServiceType != "" && !domain.IsAllowedServiceType(b.ServiceType) {
		errors = append(errors, "Service type is not recognized.")
	}

	if utf8.RuneCountInString(b.Concern) > maxConcernLength {
		errors = append(errors, "Concern description is too long.")
	}

	return errors
}
