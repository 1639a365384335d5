package services

import (
	"fmt"
	"strings"
)

// FormatINR renders an amount in Indian Rupee notation for exports and
// summaries. The Indian numbering system groups the rightmost 3 digits
// together and every 2 digits after that (₹1,23,45,678.90), always with
// exactly 2 decimal places.
func FormatINR(amount float64) string {
	var sign string
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(raw, '.')

	return sign + "₹" + applyIndianGrouping(raw[:dot]) + raw[dot:]
}

// applyIndianGrouping inserts commas into a digit string: the last 3 digits
// form one group, then pairs from the right.
func applyIndianGrouping(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:n-3]
	// Leading group of 1 or 2 digits, then full pairs, then the tail of 3.
	lead := len(head) % 2
	if lead == 0 {
		lead = 2
	}
	b.WriteString(head[:lead])
	for i := lead; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(digits[n-3:])
	return b.String()
}
