package models

import "testing"

func TestUserProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		profile  *UserProfile
		expected string
	}{
		{"full name", &UserProfile{FirstName: "Alex", LastName: "Kim"}, "Alex Kim"},
		{"first name only", &UserProfile{FirstName: "Alex"}, "Alex"},
		{"empty profile", &UserProfile{}, "N/A"},
		{"nil profile", nil, "N/A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.DisplayName(); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestUserProfile_IsPro(t *testing.T) {
	tests := []struct {
		plan     string
		expected bool
	}{
		{"pro", true},
		{"premium", true},
		{"free", false},
		{"", false},
	}

	for _, tc := range tests {
		u := &UserProfile{Plan: tc.plan}
		if got := u.IsPro(); got != tc.expected {
			t.Errorf("Plan %q: expected %v, got %v", tc.plan, tc.expected, got)
		}
	}

	var missing *UserProfile
	if missing.IsPro() {
		t.Error("Expected nil profile to not be pro")
	}
}
