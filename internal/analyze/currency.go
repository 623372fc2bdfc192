package analyze

import (
	"strconv"
	"strings"
)

// FormatINR renders an amount the way the dashboard shows money: rupee
// symbol, two decimals, Indian digit grouping (₹12,34,567.89). The format
// is fixed rather than locale-driven so output stays byte-stable.
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(fixed, '.')
	intPart, frac := fixed[:dot], fixed[dot:]

	out := "₹" + groupIndian(intPart) + frac
	if negative {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas Indian style: the last three digits form one
// group, everything before that groups in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
