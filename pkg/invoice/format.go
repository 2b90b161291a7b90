package invoice

import (
	"fmt"
	"strconv"
)

// FormatAmount formats an amount in cents as a decimal string with thousands
// separators and two decimal places, e.g. 3750000 -> "37,500.00".
func FormatAmount(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	out := fmt.Sprintf("%s.%02d", grouped, frac)
	if negative {
		return "-" + out
	}
	return out
}
