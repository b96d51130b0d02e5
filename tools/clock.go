package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Clock reports the current date and time from the system clock.
type Clock struct {
	now func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt pins the clock to a fixed instant (used in tests).
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) ToolName() string { return NameDateTime }

func (c *Clock) ToolDescription() string {
	return "Reports the current date, time, weekday, month, year, and leap-year status"
}

func (c *Clock) Call(ctx context.Context, input string) (string, error) {
	now := c.now()

	var b strings.Builder
	b.WriteString("Date and time information:\n")
	fmt.Fprintf(&b, "  date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "  time: %s\n", now.Format("15:04:05"))
	fmt.Fprintf(&b, "  weekday: %s\n", now.Weekday())
	fmt.Fprintf(&b, "  month: %s\n", now.Month())
	fmt.Fprintf(&b, "  year: %d\n", now.Year())
	fmt.Fprintf(&b, "  leap year: %s", yesNo(IsLeapYear(now.Year())))

	return b.String(), nil
}

// IsLeapYear applies the Gregorian rule: divisible by 4 and not by 100,
// or divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
