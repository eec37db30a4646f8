package chart

import (
	"regexp"
	"testing"
)

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestParseColorPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorPolicy
		wantErr bool
	}{
		{"", PolicyPalette, false},
		{"palette", PolicyPalette, false},
		{" Hash ", PolicyHash, false},
		{"rainbow", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColorPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColorPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorPolicyText(t *testing.T) {
	var p ColorPolicy
	if err := p.UnmarshalText([]byte("hash")); err != nil || p != PolicyHash {
		t.Fatalf("UnmarshalText(hash) = %v, %v", p, err)
	}
	b, _ := p.MarshalText()
	if string(b) != "hash" {
		t.Errorf("MarshalText() = %s, want hash", b)
	}
}

func TestHashColor(t *testing.T) {
	a := PolicyHash.Color(0, "North")
	if a != PolicyHash.Color(7, "North") {
		t.Error("hash color must not depend on position")
	}
	if a == PolicyHash.Color(0, "South") {
		t.Error("different labels should produce different colors")
	}
	if !hexColor.MatchString(a) {
		t.Errorf("hash color %q is not a hex color", a)
	}
}

func TestPaletteColorCycles(t *testing.T) {
	if PolicyPalette.Color(0, "x") != PolicyPalette.Color(len(DefaultPalette), "y") {
		t.Error("palette should cycle after its last color")
	}
}
