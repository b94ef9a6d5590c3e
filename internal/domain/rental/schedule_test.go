package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	t.Run("uses current month when payment day is ahead", func(t *testing.T) {
		due := NextDueDate(15, date(2026, time.March, 10))
		assert.Equal(t, date(2026, time.March, 15), due)
	})

	t.Run("rolls to next month when payment day is today", func(t *testing.T) {
		due := NextDueDate(15, date(2026, time.March, 15))
		assert.Equal(t, date(2026, time.April, 15), due)
	})

	t.Run("rolls to next month when payment day already passed", func(t *testing.T) {
		due := NextDueDate(15, date(2026, time.March, 20))
		assert.Equal(t, date(2026, time.April, 15), due)
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		due := NextDueDate(5, date(2026, time.December, 20))
		assert.Equal(t, date(2027, time.January, 5), due)
	})

	t.Run("clamps day 30 in February", func(t *testing.T) {
		due := NextDueDate(30, date(2026, time.February, 10))
		assert.Equal(t, date(2026, time.February, 28), due)
	})

	t.Run("clamps day 31 in leap February", func(t *testing.T) {
		due := NextDueDate(31, date(2028, time.February, 1))
		assert.Equal(t, date(2028, time.February, 29), due)
	})

	t.Run("ignores time of day", func(t *testing.T) {
		today := time.Date(2026, time.March, 10, 23, 45, 12, 0, time.UTC)
		due := NextDueDate(15, today)
		assert.Equal(t, date(2026, time.March, 15), due)
	})
}

func TestDueDateAfterPayment(t *testing.T) {
	t.Run("adds one month past the next due date", func(t *testing.T) {
		due := DueDateAfterPayment(15, date(2026, time.March, 10))
		assert.Equal(t, date(2026, time.April, 15), due)
	})

	t.Run("re-anchors on payment day after a clamped month", func(t *testing.T) {
		// Feb 28 is the clamped due date for payment day 30; the month
		// after a payment must land back on the 30th, not the 28th.
		due := DueDateAfterPayment(30, date(2026, time.February, 10))
		assert.Equal(t, date(2026, time.March, 30), due)
	})

	t.Run("clamps when the following month is shorter", func(t *testing.T) {
		due := DueDateAfterPayment(31, date(2026, time.January, 10))
		assert.Equal(t, date(2026, time.February, 28), due)
	})

	t.Run("computes from today not from the stored due date", func(t *testing.T) {
		// Paying on March 20 with day 15 skips to May 15: the cycle
		// already rolled to April 15 and the payment covers that cycle.
		due := DueDateAfterPayment(15, date(2026, time.March, 20))
		assert.Equal(t, date(2026, time.May, 15), due)
	})
}

func TestDaysUntil(t *testing.T) {
	t.Run("counts whole days ahead", func(t *testing.T) {
		assert.Equal(t, 5, DaysUntil(date(2026, time.March, 20), date(2026, time.March, 15)))
	})

	t.Run("zero on the due date", func(t *testing.T) {
		assert.Equal(t, 0, DaysUntil(date(2026, time.March, 15), date(2026, time.March, 15)))
	})

	t.Run("negative when overdue", func(t *testing.T) {
		assert.Equal(t, -1, DaysUntil(date(2026, time.March, 14), date(2026, time.March, 15)))
	})

	t.Run("rounds a partial day up", func(t *testing.T) {
		today := time.Date(2026, time.March, 15, 18, 30, 0, 0, time.UTC)
		assert.Equal(t, 1, DaysUntil(date(2026, time.March, 16), today))
	})
}
