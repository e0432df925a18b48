package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{15, "Fifteen Rupees Only"},
		{42, "Forty Two Rupees Only"},
		{100, "One Hundred Rupees Only"},
		{705, "Seven Hundred Five Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{11000, "Eleven Thousand Rupees Only"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{150075.50, "One Lakh Fifty Thousand Seventy Five Rupees and Fifty Paise Only"},
		{10000000, "One Crore Rupees Only"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
		{0.25, "Zero Rupees and Twenty Five Paise Only"},
		{99.99, "Ninety Nine Rupees and Ninety Nine Paise Only"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AmountToWords(c.amount), "amount %v", c.amount)
	}
}

func TestAmountToWordsPaiseRounding(t *testing.T) {
	// paise rounds to the nearest integer
	assert.Equal(t, "Ten Rupees and Thirteen Paise Only", AmountToWords(10.125))
	assert.Equal(t, "Ten Rupees and Twelve Paise Only", AmountToWords(10.124))
}
