package service

import (
	"sort"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// Performance scoring weights. A late day is worth 70% of a present day,
// a half day 50%.
const (
	lateWeight    = 0.7
	halfDayWeight = 0.5
	rankingSize   = 5
)

// round2 rounds to two decimal places using decimal arithmetic to avoid
// float drift in reported hours and percentages.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// WorkingDays counts the weekdays (Mon-Fri) of the given month.
func WorkingDays(year int, month time.Month) int {
	days := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// WorkingDaysUntil counts the weekdays of the month up to and including the
// given day. Used for the current month so employees are not marked absent
// for days that have not happened yet.
func WorkingDaysUntil(year int, month time.Month, day int) int {
	days := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month && d.Day() <= day; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// elapsedWorkingDays caps the current month at today so future days do not
// count as absences.
func elapsedWorkingDays(now time.Time, month time.Month, year int) int {
	if year == now.Year() && month == now.Month() {
		return WorkingDaysUntil(year, month, now.Day())
	}
	return WorkingDays(year, month)
}

// WorkingDaysInYear counts the weekdays of a full calendar year.
func WorkingDaysInYear(year int) int {
	total := 0
	for m := time.January; m <= time.December; m++ {
		total += WorkingDays(year, m)
	}
	return total
}

// elapsedWorkingDaysInYear caps the current year at today so future days do
// not count as absences.
func elapsedWorkingDaysInYear(now time.Time, year int) int {
	if year != now.Year() {
		return WorkingDaysInYear(year)
	}
	total := 0
	for m := time.January; m < now.Month(); m++ {
		total += WorkingDays(year, m)
	}
	return total + WorkingDaysUntil(year, now.Month(), now.Day())
}

// PerformanceScore computes the weighted attendance score as a percentage
// of working days. Returns 0 when there are no working days.
func PerformanceScore(present, late, halfDay, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	weighted := float64(present) + lateWeight*float64(late) + halfDayWeight*float64(halfDay)
	return round2(weighted / float64(workingDays) * 100)
}

// AttendanceRate computes the share of working days with any attendance
// record, as a percentage. Returns 0 when there are no working days.
func AttendanceRate(present, late, halfDay, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	attended := float64(present + late + halfDay)
	return round2(attended / float64(workingDays) * 100)
}

// RankEmployees sorts stats by score descending and returns the top entries.
// The sort is stable so employees with equal scores keep their input order.
func RankEmployees(stats []model.EmployeeStats) []model.EmployeeStats {
	ranked := make([]model.EmployeeStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	return ranked
}
