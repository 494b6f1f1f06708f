package chain

import (
	"math/big"
	"strings"
)

// ParseHexAmount parses a 0x-prefixed (or bare) hex quantity into big.Int.
// Empty strings parse to zero, matching node behavior for empty results.
func ParseHexAmount(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), true
	}

	n := new(big.Int)
	if _, ok := n.SetString(s, 16); !ok {
		return nil, false
	}
	return n, true
}

// FormatDecimalAmount converts a big.Int to a human-readable string with the
// given decimal places. Trailing zeros after the decimal point are removed.
// For example, 1500000000000000000 with 18 decimals returns "1.5".
func FormatDecimalAmount(amount *big.Int, decimalPlaces int) string {
	if amount == nil {
		return "0"
	}

	str := amount.String()
	if decimalPlaces <= 0 {
		return str
	}

	// Pad with leading zeros if necessary
	for len(str) <= decimalPlaces {
		str = "0" + str
	}

	// Insert decimal point
	decimalPos := len(str) - decimalPlaces
	result := str[:decimalPos] + "." + str[decimalPos:]

	// Remove unnecessary trailing zeros
	for len(result) > 1 && result[len(result)-1] == '0' && result[len(result)-2] != '.' {
		result = result[:len(result)-1]
	}
	result = strings.TrimSuffix(result, ".0")

	return result
}
