package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
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

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-02"); !ok {
		t.Error("IsValidDate(2025-06-02) = false, want true")
	}
	invalid := []string{"2025-13-01", "2025-06-32", "02-06-2025", "2025/06/02", "yesterday", ""}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	cases := []struct {
		input    string
		want     bool
		wantHour int
		wantMin  int
	}{
		{"09:00:00", true, 9, 0},
		{"09:00", true, 9, 0},
		{"23:59", true, 23, 59},
		{"00:00", true, 0, 0},
		{"24:00", false, 0, 0},
		{"9am", false, 0, 0},
		{"", false, 0, 0},
	}
	for _, c := range cases {
		got, ok := IsValidTimeOfDay(c.input)
		if ok != c.want {
			t.Errorf("IsValidTimeOfDay(%q) ok = %v, want %v", c.input, ok, c.want)
			continue
		}
		if ok && (got.Hour() != c.wantHour || got.Minute() != c.wantMin) {
			t.Errorf("IsValidTimeOfDay(%q) = %02d:%02d, want %02d:%02d", c.input, got.Hour(), got.Minute(), c.wantHour, c.wantMin)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2025-06-02T09:00:00Z", "2025-06-02T09:00:00+07:00", "2025-06-02T09:00:00.123Z"}
	invalid := []string{"2025-06-02", "09:00:00", "2025-06-02 09:00:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "password", Message: "password is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["email"] != "must be a valid email address" {
		t.Errorf("ToMap()[email] = %q", m["email"])
	}
	if errs.Error() == "" {
		t.Error("Error() is empty")
	}
}
