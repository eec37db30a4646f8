package chart

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("West", 60)
	m.Set("North", 120)
	m.Set("East", 140)
	m.Set("West", 75)

	if got, want := m.Labels(), []string{"West", "North", "East"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if v, _ := m.Get("West"); v != 75 {
		t.Errorf("Get(West) = %v, want 75", v)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestNilMap(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Entries() != nil || m.Labels() != nil {
		t.Error("nil map should behave as empty")
	}
	if _, ok := m.Get("x"); ok {
		t.Error("nil map Get should miss")
	}
}

func TestMapJSONRoundTripOrder(t *testing.T) {
	src := `{"South": 80, "North": 120, "East": 140.5, "West": 0}`

	var m Map
	if err := json.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got, want := m.Labels(), []string{"South", "North", "East", "West"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}

	out, err := json.Marshal(&m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if want := `{"South":80,"North":120,"East":140.5,"West":0}`; string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestMapUnmarshalErrors(t *testing.T) {
	for _, src := range []string{`[1,2]`, `{"a": "x"}`, `{"a": null}`, `{"a": 1`} {
		var m Map
		if err := json.Unmarshal([]byte(src), &m); err == nil {
			t.Errorf("Unmarshal(%s) should fail", src)
		}
	}
}

func TestInputPrecedence(t *testing.T) {
	in := Input{
		Data:  NewMap(Entry{"fromData", 1}),
		Items: []Entry{{"fromItems", 1}},
	}
	got := in.Entries()
	if len(got) != 1 || got[0].Label != "fromData" {
		t.Errorf("Entries() = %v, want data source to win", got)
	}

	in.Data = nil
	got = in.Entries()
	if len(got) != 1 || got[0].Label != "fromItems" {
		t.Errorf("Entries() = %v, want items when data is nil", got)
	}
}

func TestInputLabelRestriction(t *testing.T) {
	in := Input{
		Items:  []Entry{{"A", 1}, {"B", 0}, {"C", 3}, {"D", 4}},
		Labels: []string{"D", "B", "A"},
	}
	got := in.Entries()
	want := []Entry{{"A", 1}, {"B", 0}, {"D", 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	slices := Build(in, DefaultOptions())
	if len(slices) != 2 || slices[0].Label != "A" || slices[1].Label != "D" {
		t.Errorf("Build() labels = %v, want [A D]", slices)
	}

	if all := in.AllLabels(); len(all) != 4 {
		t.Errorf("AllLabels() = %v, want all four labels", all)
	}
}

func TestInputEntriesDoesNotAliasItems(t *testing.T) {
	items := []Entry{{"A", 1}, {"B", 2}}
	in := Input{Items: items, Labels: []string{"B"}}
	_ = in.Entries()
	if items[0].Label != "A" {
		t.Errorf("Entries() modified caller items: %v", items)
	}
}
