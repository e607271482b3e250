package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// namedColors maps the CSS color names accepted by the Thumbor dialect to
// their RGB components.
var namedColors = map[string][3]int{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"lime":    {0, 255, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"aqua":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"fuchsia": {255, 0, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"maroon":  {128, 0, 0},
	"olive":   {128, 128, 0},
	"purple":  {128, 0, 128},
	"teal":    {0, 128, 128},
	"navy":    {0, 0, 128},
	"orange":  {255, 165, 0},
}

// ParseHTMLColor converts an HTML color (a name, "#RRGGBB", "#RGB", or the
// same hex forms without the leading "#") to its RGB components.
func ParseHTMLColor(s string) (r, g, b int, err error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if rgb, ok := namedColors[name]; ok {
		return rgb[0], rgb[1], rgb[2], nil
	}
	hex := strings.TrimPrefix(name, "#")
	switch len(hex) {
	case 3:
		// Shorthand: each digit doubles ("fa0" -> "ffaa00").
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	v, perr := strconv.ParseUint(hex, 16, 32)
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}

// NormalizeHexColor strips a leading "#" and lowercases the color string,
// the form slash-dialect filters embed directly in the path.
func NormalizeHexColor(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "#"))
}
