package utils

import (
	"math"
	"time"
)

// DaysPerYear is the average Gregorian year used for fractional year counts.
const DaysPerYear = 365.25

// RetirementDate returns birth + retirementAge years, or early when it falls before that.
func RetirementDate(birth time.Time, retirementAge int, early *time.Time) time.Time {
	normal := birth.AddDate(retirementAge, 0, 0)
	if early != nil && early.Before(normal) {
		return *early
	}
	return normal
}

// LengthOfService counts service in half years: whole calendar years between
// the two dates, plus 0.5 when the month difference is six or more.
// Days of month are ignored and a negative month difference does not reduce the years.
func LengthOfService(joined, retired time.Time) float64 {
	years := float64(retired.Year() - joined.Year())
	months := int(retired.Month()) - int(joined.Month())
	if months < 6 {
		return years
	}
	return years + 0.5
}

// YearsBetween returns the fractional number of years from start to end.
// The result is negative when end is before start.
func YearsBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24 / DaysPerYear
}

// CalculateAge returns whole years of age on the given date.
func CalculateAge(birth, on time.Time) int {
	age := on.Year() - birth.Year()
	if on.Month() < birth.Month() ||
		(on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	return age
}

// FindClosestHigherValue returns the smallest value strictly greater than target.
func FindClosestHigherValue(values []float64, target float64) (float64, bool) {
	closest := math.Inf(1)
	for _, v := range values {
		if v > target && v < closest {
			closest = v
		}
	}
	if math.IsInf(closest, 1) {
		return 0, false
	}
	return closest, true
}
