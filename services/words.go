package services

import (
	"math"
	"strings"
)

var unitWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// indianScales are the grouping units of the Indian numbering system, largest
// first. Hundreds are handled separately since they take the bare unit word.
var indianScales = []struct {
	value int64
	label string
}{
	{10000000, "Crores"},
	{100000, "Lakhs"},
	{1000, "Thousand"},
}

// AmountInWords renders a rupee amount in Indian English words, rounded to
// the nearest rupee. Example: 913183 -> "Nine Lakhs Thirteen Thousand One
// Hundred and Eighty Three Rupees Only/-".
func AmountInWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountInWords(-amount)
	}

	rupees := int64(math.Round(amount))
	if rupees == 0 {
		return "Zero Rupees Only/-"
	}

	return wordsForRupees(rupees) + " Rupees Only/-"
}

func wordsForRupees(n int64) string {
	var parts []string

	for _, scale := range indianScales {
		if n >= scale.value {
			parts = append(parts, wordsUnder100(n/scale.value)+" "+scale.label)
			n %= scale.value
		}
	}

	if n >= 100 {
		parts = append(parts, unitWords[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		tail := wordsUnder100(n)
		if len(parts) > 0 {
			tail = "and " + tail
		}
		parts = append(parts, tail)
	}

	return strings.Join(parts, " ")
}

func wordsUnder100(n int64) string {
	if n < 20 {
		return unitWords[n]
	}
	word := tensWords[n/10]
	if n%10 != 0 {
		word += " " + unitWords[n%10]
	}
	return word
}
