package domain

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo, hi   float64
		expected float64
	}{
		{"within range", 50, 0, 100, 50},
		{"below floor", -10, 0, 100, 0},
		{"above ceiling", 150, 0, 100, 100},
		{"at floor", 0, 0, 100, 0},
		{"at ceiling", 100, 0, 100, 100},
		{"non-zero floor", 3, 10, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clamp(tt.value, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.value, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestSafeRatio(t *testing.T) {
	if got := safeRatio(10, 4); got != 2.5 {
		t.Errorf("safeRatio(10, 4) = %v, want 2.5", got)
	}
	if got := safeRatio(10, 0); got != 0 {
		t.Errorf("safeRatio(10, 0) = %v, want 0", got)
	}
	if got := safeRatio(0, 0); got != 0 {
		t.Errorf("safeRatio(0, 0) = %v, want 0", got)
	}
}

func TestRoundTo2Decimals(t *testing.T) {
	tests := []struct {
		value    float64
		expected float64
	}{
		{5.169925, 5.17},
		{13.200000000000001, 13.2},
		{3.14159, 3.14},
		{0, 0},
		{99.999, 100},
		{-6, -6},
	}

	for _, tt := range tests {
		if got := roundTo2Decimals(tt.value); got != tt.expected {
			t.Errorf("roundTo2Decimals(%v) = %v, want %v", tt.value, got, tt.expected)
		}
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	if got := daysSince(now.AddDate(0, 0, -10), now); got != 10 {
		t.Errorf("daysSince(10 days ago) = %v, want 10", got)
	}
	if got := daysSince(now.Add(-23*time.Hour), now); got != 0 {
		t.Errorf("daysSince(23h ago) = %v, want 0", got)
	}
	if got := daysSince(now.Add(24*time.Hour), now); got != 0 {
		t.Errorf("daysSince(future) = %v, want 0", got)
	}
}

func TestDaysSinceNullable(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	if got := daysSinceNullable(nil, now); got != -1 {
		t.Errorf("daysSinceNullable(nil) = %v, want -1", got)
	}

	d := now.AddDate(0, 0, -14)
	if got := daysSinceNullable(&d, now); got != 14 {
		t.Errorf("daysSinceNullable(14 days ago) = %v, want 14", got)
	}
}
