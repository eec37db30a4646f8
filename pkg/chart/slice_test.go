package chart

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

const tolerance = 1e-6

func mapOf(entries ...Entry) Input { return Input{Data: NewMap(entries...)} }

func TestBuildFiltersNonPositive(t *testing.T) {
	in := mapOf(
		Entry{"A", 10},
		Entry{"B", 0},
		Entry{"C", -5},
		Entry{"D", 5},
	)

	slices := Build(in, DefaultOptions())
	if len(slices) != 2 {
		t.Fatalf("len(slices) = %d, want 2", len(slices))
	}
	if slices[0].Label != "A" || slices[1].Label != "D" {
		t.Errorf("labels = %q, %q; want A, D", slices[0].Label, slices[1].Label)
	}
	for _, s := range slices {
		if s.Value <= 0 {
			t.Errorf("slice %s has non-positive value %v", s.Label, s.Value)
		}
	}
}

func TestBuildDropsNonFinite(t *testing.T) {
	in := Input{Items: []Entry{
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"neg-inf", math.Inf(-1)},
		{"ok", 3},
	}}

	slices := Build(in, DefaultOptions())
	if len(slices) != 1 || slices[0].Label != "ok" {
		t.Fatalf("Build() = %+v, want only %q", slices, "ok")
	}
	if math.Abs(slices[0].SweepAngle-360) > tolerance {
		t.Errorf("SweepAngle = %v, want 360", slices[0].SweepAngle)
	}
}

func TestBuildEmpty(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"no sources", Input{}},
		{"empty map", Input{Data: NewMap()}},
		{"all zero", mapOf(Entry{"A", 0}, Entry{"B", 0})},
		{"all negative", Input{Items: []Entry{{"A", -1}}}},
		{"restricted away", Input{Items: []Entry{{"A", 1}}, Labels: []string{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.in, DefaultOptions()); len(got) != 0 {
				t.Errorf("Build() returned %d slices, want 0", len(got))
			}
		})
	}
}

func TestBuildAngleSumAndContinuity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(12)
		items := make([]Entry, n)
		for i := range items {
			items[i] = Entry{Label: string(rune('A' + i)), Value: rng.Float64()*1000 - 200}
		}
		items[rng.Intn(n)].Value = 1 + rng.Float64()*50 // at least one positive

		o := DefaultOptions()
		o.Origin = rng.Float64()*720 - 360
		slices := Build(Input{Items: items}, o)
		if len(slices) == 0 {
			t.Fatalf("run %d: no slices for %v", run, items)
		}

		sum := 0.0
		for i, s := range slices {
			sum += s.SweepAngle
			if i == 0 && s.StartAngle != o.Origin {
				t.Errorf("run %d: first StartAngle = %v, want origin %v", run, s.StartAngle, o.Origin)
			}
			if i > 0 {
				prev := slices[i-1]
				if math.Abs(s.StartAngle-(prev.StartAngle+prev.SweepAngle)) > tolerance {
					t.Errorf("run %d: slice %d starts at %v, previous ends at %v", run, i, s.StartAngle, prev.StartAngle+prev.SweepAngle)
				}
			}
		}
		if math.Abs(sum-360) > tolerance {
			t.Errorf("run %d: sweep sum = %v, want 360", run, sum)
		}
	}
}

func TestBuildPreservesInputOrderOnTies(t *testing.T) {
	in := Input{Items: []Entry{{"z", 5}, {"a", 5}, {"m", 5}}}
	slices := Build(in, DefaultOptions())

	want := []string{"z", "a", "m"}
	for i, s := range slices {
		if s.Label != want[i] {
			t.Errorf("slice %d = %q, want %q", i, s.Label, want[i])
		}
		if math.Abs(s.SweepAngle-120) > tolerance {
			t.Errorf("slice %d sweep = %v, want 120", i, s.SweepAngle)
		}
	}
}

func TestBuildDuplicateItems(t *testing.T) {
	in := Input{Items: []Entry{{"A", 1}, {"A", 1}}}
	if got := len(Build(in, DefaultOptions())); got != 2 {
		t.Errorf("duplicate items produced %d slices, want 2", got)
	}
}

func TestBuildSingleSliceFullCircle(t *testing.T) {
	slices := Build(mapOf(Entry{"A", 100}), DefaultOptions())
	if len(slices) != 1 {
		t.Fatalf("len(slices) = %d, want 1", len(slices))
	}
	if slices[0].SweepAngle != 360 {
		t.Errorf("SweepAngle = %v, want 360", slices[0].SweepAngle)
	}
	if !strings.Contains(slices[0].PathData, "A 90 90 0 1 1") {
		t.Errorf("path %q lacks large-arc outer arc", slices[0].PathData)
	}
}

func TestBuildDominantSliceKeepsItsArc(t *testing.T) {
	slices := Build(mapOf(Entry{"A", 1}, Entry{"B", 1e-7}), DefaultOptions())
	if len(slices) != 2 {
		t.Fatalf("len(slices) = %d, want 2", len(slices))
	}
	a := slices[0]
	if a.SweepAngle >= 360 {
		t.Fatalf("SweepAngle = %v, want just under 360", a.SweepAngle)
	}
	if got := strings.Count(a.PathData, "A 90 90 0 1 1"); got != 2 {
		t.Errorf("outer arc halves = %d, want 2 in %q", got, a.PathData)
	}
	if got := strings.Count(a.PathData, "A 50 50 0 1 0"); got != 2 {
		t.Errorf("inner arc halves = %d, want 2 in %q", got, a.PathData)
	}
}

func TestBuildLargeValues(t *testing.T) {
	in := mapOf(Entry{"A", 1e308}, Entry{"B", 1e308}, Entry{"C", 1_000_000})
	slices := Build(in, DefaultOptions())
	if len(slices) != 3 {
		t.Fatalf("len(slices) = %d, want 3", len(slices))
	}
	if math.Abs(slices[0].SweepAngle-180) > tolerance {
		t.Errorf("slice A sweep = %v, want 180", slices[0].SweepAngle)
	}
}

func TestBuildColorsByPosition(t *testing.T) {
	items := make([]Entry, 12)
	for i := range items {
		items[i] = Entry{Label: string(rune('a' + i)), Value: float64(i + 1)}
	}
	slices := Build(Input{Items: items}, DefaultOptions())
	for i, s := range slices {
		if want := DefaultPalette[i%len(DefaultPalette)]; s.Color != want {
			t.Errorf("slice %d color = %s, want %s", i, s.Color, want)
		}
	}
}

func TestBuildHashColorsFollowLabel(t *testing.T) {
	o := DefaultOptions()
	o.Colors = PolicyHash

	a := Build(Input{Items: []Entry{{"North", 1}, {"South", 2}}}, o)
	b := Build(Input{Items: []Entry{{"South", 9}}}, o)
	if a[1].Color != b[0].Color {
		t.Errorf("South colored %s then %s; hash colors must follow the label", a[1].Color, b[0].Color)
	}
}

func TestInnerRadius(t *testing.T) {
	tests := []struct {
		name      string
		donut     bool
		outer     float64
		thickness float64
		want      float64
	}{
		{"donut", true, 90, 30, 60},
		{"pie ignores thickness", false, 90, 30, 0},
		{"thickness equals radius", true, 90, 90, 0},
		{"thickness exceeds radius", true, 90, 200, 0},
		{"negative thickness clamps to outer", true, 90, -10, 90},
		{"zero thickness", true, 90, 0, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InnerRadius(tt.donut, tt.outer, tt.thickness); got != tt.want {
				t.Errorf("InnerRadius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildThickRingFallsBackToPiePath(t *testing.T) {
	o := DefaultOptions()
	o.Thickness = 500
	slices := Build(mapOf(Entry{"A", 1}, Entry{"B", 1}), o)
	if !strings.HasPrefix(slices[0].PathData, "M 100 100 L") {
		t.Errorf("collapsed ring should draw a wedge from the center, got %q", slices[0].PathData)
	}
}

func TestTotalAndFind(t *testing.T) {
	slices := Build(mapOf(Entry{"A", 10}, Entry{"B", 20}, Entry{"C", 0}), DefaultOptions())
	if got := Total(slices); got != 30 {
		t.Errorf("Total() = %v, want 30", got)
	}
	if _, ok := Find(slices, "C"); ok {
		t.Error("Find(C) should miss a filtered label")
	}
	if s, ok := Find(slices, "B"); !ok || s.Value != 20 {
		t.Errorf("Find(B) = %+v, %v", s, ok)
	}
}
