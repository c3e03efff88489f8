package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"sales@nusa.net", "a.b+c@example.co.id"}
	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ced@example.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"081234567890", "+62 812 3456789", "(021) 555-0101"}
	invalid := []string{"", "abc", "0812-whatever"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("IsValidPhone(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("IsValidPhone(%q) = true, want false", p)
		}
	}
}
