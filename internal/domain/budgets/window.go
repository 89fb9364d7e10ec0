package budgets

import (
	"time"

	"finance-tracker-go/internal/domain/calendar"
)

// Window returns the inclusive calendar dates of the period containing now.
// Weeks start on Monday. Anything that is not weekly is treated as monthly.
func Window(period Period, now time.Time) (time.Time, time.Time) {
	if period == PeriodWeekly {
		return calendar.WeekBounds(now)
	}
	return calendar.MonthBounds(now)
}
