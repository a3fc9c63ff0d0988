// Package format renders counts and money the way the dashboard displays
// them (en-US grouping).
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Count groups thousands: 4247 -> "4,247".
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Number groups thousands and keeps up to three decimals: 1234.5 -> "1,234.5".
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Dollars is a whole-dollar amount: 142850 -> "$142,850".
func Dollars(n int64) string {
	return "$" + Count(n)
}

// Currency is a USD amount with cents: 5849.35 -> "$5,849.35".
func Currency(v float64) string {
	if v < 0 {
		return "-" + Currency(-v)
	}
	return printer.Sprintf("$%.2f", v)
}
