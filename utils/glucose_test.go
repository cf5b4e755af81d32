package utils

import "testing"

func TestValidateReading(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		ok    bool
	}{
		{"typical pre-meal", 95, true},
		{"typical post-meal", 150, true},
		{"zero", 0, false},
		{"negative", -10, false},
		{"implausibly low", 5, false},
		{"implausibly high", 1500, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateReading(tc.value)
			if tc.ok && err != nil {
				t.Fatalf("ValidateReading(%v) = %v, want nil", tc.value, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("ValidateReading(%v) = nil, want error", tc.value)
			}
		})
	}
}

func TestClassifyReading_DefaultBand(t *testing.T) {
	if got := ClassifyReading(65, 0, 0); got != "low" {
		t.Fatalf("ClassifyReading(65) = %q, want low", got)
	}
	if got := ClassifyReading(110, 0, 0); got != "in_range" {
		t.Fatalf("ClassifyReading(110) = %q, want in_range", got)
	}
	if got := ClassifyReading(250, 0, 0); got != "high" {
		t.Fatalf("ClassifyReading(250) = %q, want high", got)
	}
	// band edges are inclusive
	if got := ClassifyReading(70, 0, 0); got != "in_range" {
		t.Fatalf("ClassifyReading(70) = %q, want in_range", got)
	}
	if got := ClassifyReading(180, 0, 0); got != "in_range" {
		t.Fatalf("ClassifyReading(180) = %q, want in_range", got)
	}
}

func TestClassifyReading_PersonalBand(t *testing.T) {
	if got := ClassifyReading(150, 80, 140); got != "high" {
		t.Fatalf("ClassifyReading(150, 80, 140) = %q, want high", got)
	}
	if got := ClassifyReading(75, 80, 140); got != "low" {
		t.Fatalf("ClassifyReading(75, 80, 140) = %q, want low", got)
	}
}
