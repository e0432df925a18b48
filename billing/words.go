package billing

import (
	"math"
	"strings"
)

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountToWords renders a non-negative currency amount in Indian-English
// numbering (thousand, lakh, crore) for invoice printing, e.g.
// "One Lakh Fifty Thousand Seventy Five Rupees and Fifty Paise Only".
// Negative amounts are not a supported input.
func AmountToWords(amount float64) string {
	rupees := int64(math.Floor(amount))
	paise := int64(math.Round((amount - math.Floor(amount)) * 100))

	var sb strings.Builder
	if rupees == 0 {
		sb.WriteString("Zero")
	} else {
		sb.WriteString(numberWords(rupees))
	}
	sb.WriteString(" Rupees")
	if paise > 0 {
		sb.WriteString(" and ")
		sb.WriteString(numberWords(paise))
		sb.WriteString(" Paise")
	}
	sb.WriteString(" Only")
	return sb.String()
}

// numberWords converts a positive integer recursively, grouping by the
// Indian system: hundreds, thousands (1e3), lakhs (1e5), crores (1e7).
func numberWords(n int64) string {
	switch {
	case n < 10:
		return onesWords[n]
	case n < 20:
		return teenWords[n-10]
	case n < 100:
		return joinWords(tensWords[n/10], numberWords(n%10))
	case n < 1000:
		return joinWords(onesWords[n/100]+" Hundred", numberWords(n%100))
	case n < 100000:
		return joinWords(numberWords(n/1000)+" Thousand", numberWords(n%1000))
	case n < 10000000:
		return joinWords(numberWords(n/100000)+" Lakh", numberWords(n%100000))
	default:
		return joinWords(numberWords(n/10000000)+" Crore", numberWords(n%10000000))
	}
}

func joinWords(head, rest string) string {
	if rest == "" {
		return head
	}
	return head + " " + rest
}
