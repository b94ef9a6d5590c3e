package rental

import "time"

// DateOf truncates t to a calendar date (midnight UTC). All due-date
// arithmetic in this package operates on such dates.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dateWithDay returns the date in t's month with the given day-of-month,
// clamped to the month's last day when the month is shorter.
func dateWithDay(t time.Time, day int) time.Time {
	if last := lastDayOfMonth(t.Year(), t.Month()); day > last {
		day = last
	}
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}

// addMonth advances a due date by one calendar month, re-anchoring on
// paymentDay so that a clamped date (e.g. Feb 28 for payment day 30)
// rolls back out to the 30th in longer months.
func addMonth(t time.Time, paymentDay int) time.Time {
	year, month := t.Year(), t.Month()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	day := paymentDay
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextDueDate computes the first rent due date for a payment cycle
// anchored on paymentDay: the occurrence of paymentDay in today's month,
// or next month's occurrence when that date is not strictly after today.
func NextDueDate(paymentDay int, today time.Time) time.Time {
	today = DateOf(today)
	due := dateWithDay(today, paymentDay)
	if !due.After(today) {
		due = addMonth(due, paymentDay)
	}
	return due
}

// DueDateAfterPayment computes the due date stored when a payment is
// recorded: one calendar month past NextDueDate, always relative to today
// rather than to the previously stored due date.
func DueDateAfterPayment(paymentDay int, today time.Time) time.Time {
	return addMonth(NextDueDate(paymentDay, today), paymentDay)
}

// DaysUntil returns the number of whole days from today until the due
// date, rounding partial days up. Zero or negative means due or overdue.
func DaysUntil(due, today time.Time) int {
	d := due.Sub(DateOf(today))
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
