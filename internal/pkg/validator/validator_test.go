package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:00", "18:30", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "0900", "09:00:00", "", "ab:cd"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Error("IsValidDate(2024-02-29) = false, want true")
	}
	if _, ok := IsValidDate("2023-02-29"); ok {
		t.Error("IsValidDate(2023-02-29) = true, want false")
	}
}

type sample struct {
	Name     string  `json:"name" validate:"notblank,max=5"`
	Start    string  `json:"startTime" validate:"required,clock"`
	Minutes  *int    `json:"minutes,omitempty" validate:"omitempty,min=0,max=480"`
	Kind     *string `json:"kind,omitempty" validate:"omitempty,oneof=A B"`
	Internal string  `json:"-"`
}

func TestStruct(t *testing.T) {
	ok := 30
	if err := Struct(sample{Name: "abc", Start: "09:00", Minutes: &ok}); err != nil {
		t.Fatalf("Struct() unexpected error: %v", err)
	}

	bad := 481
	kind := "C"
	err := Struct(sample{Name: "  ", Start: "9am", Minutes: &bad, Kind: &kind})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() error type = %T, want ValidationErrors", err)
	}

	got := errs.ToMap()
	want := map[string]string{
		"name":      "name must not be blank",
		"startTime": "startTime must be in HH:mm format",
		"minutes":   "minutes must be at most 480",
		"kind":      "kind must be one of [A B]",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q message = %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidationErrorsOrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Error("OrNil() on empty errors should be nil")
	}
	errs.Add("name", "name is required")
	if errs.OrNil() == nil {
		t.Error("OrNil() with errors should not be nil")
	}
	if errs.Error() != "name: name is required" {
		t.Errorf("Error() = %q", errs.Error())
	}
}
