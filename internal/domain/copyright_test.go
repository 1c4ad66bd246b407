package domain

import (
	"testing"
	"time"
)

func eligibleProfile() *ProfileData {
	return &ProfileData{
		ID:            "user-1",
		EmailVerified: true,
		CreatedAt:     fixedNow.AddDate(0, 0, -30),
		PostCount:     5,
	}
}

func TestCheckCopyrightEligibility(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		mutate   func(p *ProfileData)
		strikes  int
		expected bool
	}{
		{
			name:     "all conditions met",
			score:    40,
			mutate:   func(p *ProfileData) {},
			expected: true,
		},
		{
			name:     "high score strong profile",
			score:    92.5,
			mutate:   func(p *ProfileData) {},
			strikes:  2,
			expected: true,
		},
		{
			name:     "score below threshold",
			score:    39.99,
			mutate:   func(p *ProfileData) {},
			expected: false,
		},
		{
			name:     "email not verified",
			score:    80,
			mutate:   func(p *ProfileData) { p.EmailVerified = false },
			expected: false,
		},
		{
			name:     "account too young",
			score:    80,
			mutate:   func(p *ProfileData) { p.CreatedAt = fixedNow.AddDate(0, 0, -6) },
			expected: false,
		},
		{
			name:     "exactly 7 days old",
			score:    80,
			mutate:   func(p *ProfileData) { p.CreatedAt = fixedNow.AddDate(0, 0, -7) },
			expected: true,
		},
		{
			name:     "three strikes veto",
			score:    95,
			mutate:   func(p *ProfileData) {},
			strikes:  3,
			expected: false,
		},
		{
			name:     "too few posts",
			score:    80,
			mutate:   func(p *ProfileData) { p.PostCount = 2 },
			expected: false,
		},
		{
			name:     "exactly 3 posts",
			score:    80,
			mutate:   func(p *ProfileData) { p.PostCount = 3 },
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := eligibleProfile()
			tt.mutate(p)

			got := CheckCopyrightEligibilityAt(tt.score, p, tt.strikes, fixedNow)
			if got != tt.expected {
				t.Errorf("CheckCopyrightEligibilityAt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCheckCopyrightEligibility_NilProfile(t *testing.T) {
	if CheckCopyrightEligibilityAt(100, nil, 0, time.Now()) {
		t.Error("nil profile must not be eligible")
	}
}
