package animate

import (
	"math"
	"strconv"
	"strings"
)

// Element is a styleable node. Implementations write inline styles.
type Element interface {
	SetStyle(property, value string)
}

// Style is a set of inline style properties.
type Style map[string]string

// Apply writes every property to el. A nil element is skipped and reported.
func (s Style) Apply(el Element) bool {
	if el == nil {
		return false
	}
	for prop, value := range s {
		el.SetStyle(prop, value)
	}
	return true
}

// Transform composes CSS transform functions in a stable order.
type Transform struct {
	TranslateX string
	TranslateY string
	Scale      *float64
	Rotate     string
}

func (t Transform) String() string {
	var parts []string
	if t.TranslateX != "" {
		parts = append(parts, "translateX("+t.TranslateX+")")
	}
	if t.TranslateY != "" {
		parts = append(parts, "translateY("+t.TranslateY+")")
	}
	if t.Rotate != "" {
		parts = append(parts, "rotate("+t.Rotate+")")
	}
	if t.Scale != nil {
		parts = append(parts, "scale("+formatFloat(*t.Scale)+")")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func px(v float64) string {
	return formatFloat(v) + "px"
}

func percent(v float64) string {
	return formatFloat(v) + "%"
}

func deg(v float64) string {
	return formatFloat(v) + "deg"
}

// formatFloat rounds to four decimals so equal inputs always produce equal
// style strings.
func formatFloat(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatPtr(v float64) *float64 { return &v }
