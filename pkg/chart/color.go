package chart

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorPolicy decides how slices are colored. Colors never depend on a
// slice's value or sweep.
type ColorPolicy int

const (
	// PolicyPalette cycles DefaultPalette by slice position.
	PolicyPalette ColorPolicy = iota
	// PolicyHash derives a hue from the slice label, so a label keeps its
	// color when other slices come and go.
	PolicyHash
)

// DefaultPalette is the ten-color cycle used by PolicyPalette.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
	"#9c755f", "#bab0ab",
}

const (
	hashSaturation = 0.55
	hashLightness  = 0.55
)

// String returns the policy name accepted by ParseColorPolicy.
func (p ColorPolicy) String() string {
	switch p {
	case PolicyPalette:
		return "palette"
	case PolicyHash:
		return "hash"
	default:
		return fmt.Sprintf("ColorPolicy(%d)", int(p))
	}
}

// ParseColorPolicy parses "palette" or "hash". The empty string means palette.
func ParseColorPolicy(s string) (ColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "palette":
		return PolicyPalette, nil
	case "hash":
		return PolicyHash, nil
	default:
		return 0, fmt.Errorf("unknown color policy %q (must be 'palette' or 'hash')", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p ColorPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ColorPolicy) UnmarshalText(b []byte) error {
	v, err := ParseColorPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Color returns the fill color of the slice at position i labeled label.
func (p ColorPolicy) Color(i int, label string) string {
	if p == PolicyHash {
		return colorForLabel(label)
	}
	return DefaultPalette[i%len(DefaultPalette)]
}

func colorForLabel(label string) string {
	h := fnv.New32a()
	h.Write([]byte(label))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsl(hue, hashSaturation, hashLightness).Hex()
}
