package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount with two decimals and thousands separators, e.g. "$1,234.50".
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(strconv.FormatInt(cents/100, 10)), cents%100)
}

// FormatCount formats an integer with thousands separators, e.g. "12,400".
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + groupThousands(strconv.FormatUint(uint64(-n), 10))
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

func groupThousands(digits string) string {
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatEventTime formats an event timestamp for display.
// Returns "—" for the zero time.
func FormatEventTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Mon Jan 2, 2006 15:04")
}
