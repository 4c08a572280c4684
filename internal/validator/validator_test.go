package validator

import (
	"strings"
	"testing"

	"github.com/slauto/shopbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validBooking() Booking {
	return Booking{
		Name:          "Jane Doe",
		Phone:         "403-555-0199",
		Email:         "jane@example.com",
		ContactMethod: "phone",
		Year:          "2015",
		Make:          "Toyota",
		Model:         "Corolla",
		PreferredDate: "2026-09-15",
		TimeWindow:    "Morning",
		ServiceType:   "Oil change / maintenance",
		Concern:       "Rattling noise on cold starts.",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	errs := Validate(validBooking())
	assert.Empty(t, errs)
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		field   string
		mutate  func(*Booking)
		message string
	}{
		{"name", func(b *Booking) { b.Name = "" }, "Name is required."},
		{"phone", func(b *Booking) { b.Phone = "" }, "Phone number is required."},
		{"contactMethod", func(b *Booking) { b.ContactMethod = "" }, "Preferred contact method is required."},
		{"year", func(b *Booking) { b.Year = "" }, "Vehicle year is required."},
		{"make", func(b *Booking) { b.Make = "" }, "Vehicle make is required."},
		{"model", func(b *Booking) { b.Model = "" }, "Vehicle model is required."},
		{"preferredDate", func(b *Booking) { b.PreferredDate = "" }, "Preferred date is required."},
		{"timeWindow", func(b *Booking) { b.TimeWindow = "" }, "Preferred time window is required."},
		{"serviceType", func(b *Booking) { b.ServiceType = "" }, "Service type is required."},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)
			errs := Validate(b)
			assert.Contains(t, errs, tc.message)
		})
	}
}

func TestValidate_EmailOptionalButChecked(t *testing.T) {
	b := validBooking()
	b.Email = ""
	assert.Empty(t, Validate(b))

	b.Email = "a@b.c"
	assert.Empty(t, Validate(b))

	for _, bad := range []string{"abc", "a@b", "@b.c", "a b@c.d"} {
		b.Email = bad
		errs := Validate(b)
		assert.Contains(t, errs, "Email is not valid.", "email %q should be rejected", bad)
	}
}

func TestValidate_YearBounds(t *testing.T) {
	b := validBooking()

	for _, ok := range []string{"1980", "2010", "2035"} {
		b.Year = ok
		assert.Empty(t, Validate(b), "year %q should be accepted", ok)
	}

	for _, bad := range []string{"1979", "2036", "abc", "2024.5"} {
		b.Year = bad
		errs := Validate(b)
		assert.Contains(t, errs, "Vehicle year must be between 1980 and 2035.", "year %q should be rejected", bad)
	}
}

func TestValidate_ServiceTypeEnum(t *testing.T) {
	b := validBooking()

	for _, serviceType := range domain.ServiceTypes {
		b.ServiceType = serviceType
		assert.Empty(t, Validate(b), "service type %q should be accepted", serviceType)
	}

	b.ServiceType = "Tire rotation"
	errs := Validate(b)
	assert.Equal(t, []string{"Service type is not recognized."}, errs)
}

func TestValidate_ConcernLength(t *testing.T) {
	b := validBooking()

	b.Concern = strings.Repeat("x", 2500)
	assert.Empty(t, Validate(b))

	b.Concern = strings.Repeat("x", 2501)
	errs := Validate(b)
	assert.Equal(t, []string{"Concern description is too long."}, errs)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	errs := Validate(Booking{Email: "nope", Year: "1900"})
	assert.Contains(t, errs, "Name is required.")
	assert.Contains(t, errs, "Phone number is required.")
	assert.Contains(t, errs, "Email is not valid.")
	assert.Contains(t, errs, "Vehicle year must be between 1980 and 2035.")
	assert.GreaterOrEqual(t, len(errs), 10)
}

func TestSanitize(t *testing.T) {
	payload := map[string]any{
		"name":        "  Jane Doe  ",
		"phone":       "403-555-0199",
		"year":        float64(2015),
		"make":        nil,
		"serviceType": "Brake inspection / repair",
	}

	b := Sanitize(payload)
	assert.Equal(t, "Jane Doe", b.Name)
	assert.Equal(t, "403-555-0199", b.Phone)
	assert.Equal(t, "2015", b.Year)
	assert.Equal(t, "", b.Make)
	assert.Equal(t, "", b.Model)
	assert.Equal(t, "Brake inspection / repair", b.ServiceType)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "", Clean(nil))
	assert.Equal(t, "trimmed", Clean("  trimmed \n"))
	assert.Equal(t, "2015", Clean(float64(2015)))
	assert.Equal(t, "2024.5", Clean(float64(2024.5)))
	assert.Equal(t, "true", Clean(true))
}
