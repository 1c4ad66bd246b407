package domain

import "time"

// Copyright eligibility requirements. Strike history is a hard veto that no
// amount of profile score can compensate for.
const (
	copyrightMinScore    = 40
	copyrightMinAgeDays  = 7
	copyrightMaxStrikes  = 3
	copyrightMinPosts    = 3
)

// CheckCopyrightEligibility reports whether a profile qualifies for
// copyright protection. All conditions are required:
//
//	profile score >= 40
//	email verified
//	account age >= 7 days
//	fewer than 3 copyright strikes
//	at least 3 posts
//
// This gate only grants eligibility. Revocation is an admin decision made by
// the caller; the batch job never flips an eligible profile back.
func CheckCopyrightEligibility(profileScore float64, profile *ProfileData, strikeCount int) bool {
	return CheckCopyrightEligibilityAt(profileScore, profile, strikeCount, time.Now().UTC())
}

// CheckCopyrightEligibilityAt is CheckCopyrightEligibility evaluated at an
// explicit point in time.
func CheckCopyrightEligibilityAt(profileScore float64, profile *ProfileData, strikeCount int, now time.Time) bool {
	if profile == nil {
		return false
	}

	return profileScore >= copyrightMinScore &&
		profile.EmailVerified &&
		profile.AccountAgeDays(now) >= copyrightMinAgeDays &&
		strikeCount < copyrightMaxStrikes &&
		profile.PostCount >= copyrightMinPosts
}
