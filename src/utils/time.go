package utils

import "time"

// AnnualDays is the day count used to convert days-to-expiry into a year
// fraction for the pricing functions.
const AnnualDays = 365

// DaysToExpiry counts the calendar days remaining until expiry, inclusive of
// the current (partial) day. Expired contracts report 0.
func DaysToExpiry(expiry time.Time, now time.Time) int {
	if !expiry.After(now) {
		return 0
	}

	days := int(expiry.Sub(now).Hours()/24) + 1

	return days
}

// TimeToExpiry converts the remaining days into a year fraction.
func TimeToExpiry(expiry time.Time, now time.Time) float64 {
	return float64(DaysToExpiry(expiry, now)) / AnnualDays
}
