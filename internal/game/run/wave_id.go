package run

import (
	"fmt"
	"strconv"
)

// splitWaveID splits "Wave009" into ("Wave", "009").
func splitWaveID(id string) (prefix, digits string) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	return id[:i], id[i:]
}

// ExtractWaveNumber returns the trailing number of a wave id ("Wave009" → 9).
func ExtractWaveNumber(id string) (int, bool) {
	_, digits := splitWaveID(id)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextWaveID increments the trailing number keeping its width
// ("Wave009" → "Wave010", "W9" → "W10").
func NextWaveID(id string) (string, bool) {
	prefix, digits := splitWaveID(id)
	n, ok := ExtractWaveNumber(id)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s%0*d", prefix, len(digits), n+1), true
}
