package skill

import (
	"math"
	"strconv"
	"strings"
)

// FormatExplain renders an offer description for rolled value x.
//
//	""            → "x"
//	"+{0}% ATK"   → "+12% ATK"
//	"ATK +x%"     → "ATK +12%"   (both x and X are replaced)
//	"Power"       → "Power (12)"
func FormatExplain(template string, x int) string {
	v := strconv.Itoa(x)
	if strings.TrimSpace(template) == "" {
		return v
	}
	if strings.Contains(template, "{0}") {
		return strings.ReplaceAll(template, "{0}", v)
	}
	if strings.ContainsAny(template, "xX") {
		return strings.NewReplacer("x", v, "X", v).Replace(template)
	}
	return template + " (" + v + ")"
}

// ParseCooldown parses a sheet cooldown in seconds. Blank, "-" and
// unparsable values return def.
func ParseCooldown(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
