// Package interact tracks hover and click interaction over a built chart.
//
// A [State] moves between three modes: Idle, HoveringSlice and
// HoveringCenter. Hover transitions update a read-only [Tooltip]; clicks are
// forwarded synchronously to [Collaborators] and never change the hover mode.
// Center interaction only exists in donut mode.
//
// State is driven by a single event loop and is not safe for concurrent
// mutation.
package interact

import (
	"fmt"

	"github.com/matzehuels/donut/pkg/chart"
)

// DefaultInnerTitle labels the center tooltip when no inner title is set.
const DefaultInnerTitle = "Total"

// Mode is the hover mode of a chart.
type Mode int

const (
	Idle Mode = iota
	HoveringSlice
	HoveringCenter
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case HoveringSlice:
		return "hovering-slice"
	case HoveringCenter:
		return "hovering-center"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Tooltip is the tooltip surface exposed to renderers.
type Tooltip struct {
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

// Collaborators receive selection events. Nil functions are skipped.
type Collaborators struct {
	SliceSelected  func(label string)
	CenterSelected func()
}

// State holds hover and selection state for one chart.
type State struct {
	slices     []chart.Slice
	donut      bool
	innerTitle string
	collab     Collaborators

	mode    Mode
	hovered string
	tooltip Tooltip
}

// New returns an idle state over slices.
func New(slices []chart.Slice, donut bool, collab Collaborators) *State {
	return &State{slices: slices, donut: donut, collab: collab}
}

// SetInnerTitle sets the label of the center tooltip. An empty title falls
// back to DefaultInnerTitle.
func (s *State) SetInnerTitle(title string) {
	s.innerTitle = title
	if s.mode == HoveringCenter {
		s.showCenter()
	}
}

// SetCollaborators replaces the selection collaborators.
func (s *State) SetCollaborators(c Collaborators) { s.collab = c }

// Mode returns the current hover mode.
func (s *State) Mode() Mode { return s.mode }

// Hovered returns the hovered slice label, or "" unless HoveringSlice.
func (s *State) Hovered() string { return s.hovered }

// Tooltip returns the current tooltip.
func (s *State) Tooltip() Tooltip { return s.tooltip }

// Donut reports whether center interaction is enabled.
func (s *State) Donut() bool { return s.donut }

// Slices returns the slice list the state was last informed of.
func (s *State) Slices() []chart.Slice { return s.slices }

// SliceHover moves to HoveringSlice(label). Unknown labels are ignored.
func (s *State) SliceHover(label string) {
	sl, ok := chart.Find(s.slices, label)
	if !ok {
		return
	}
	s.mode = HoveringSlice
	s.hovered = label
	s.tooltip = Tooltip{Visible: true, Label: sl.Label, Value: chart.FormatValue(sl.Value)}
}

// CenterHover moves to HoveringCenter and shows the total. It does nothing
// on pie charts and on charts without slices.
func (s *State) CenterHover() {
	if !s.donut || len(s.slices) == 0 {
		return
	}
	s.mode = HoveringCenter
	s.hovered = ""
	s.showCenter()
}

// PointerLeave returns to Idle and hides the tooltip.
func (s *State) PointerLeave() {
	s.mode = Idle
	s.hovered = ""
	s.tooltip = Tooltip{}
}

// SliceClick forwards label to the slice collaborator once, whatever the
// hover mode. Clicks on unknown labels are ignored.
func (s *State) SliceClick(label string) {
	if _, ok := chart.Find(s.slices, label); !ok {
		return
	}
	if s.collab.SliceSelected != nil {
		s.collab.SliceSelected(label)
	}
}

// CenterClick forwards to the center collaborator once. It never does so
// on pie charts or charts without slices.
func (s *State) CenterClick() {
	if !s.donut || len(s.slices) == 0 {
		return
	}
	if s.collab.CenterSelected != nil {
		s.collab.CenterSelected()
	}
}

// SetSlices informs the state of a rebuilt slice list. A hovered label
// that no longer exists, or center hover on a chart that is no longer a
// donut or has no slices left, resets to Idle. Otherwise the tooltip is
// recomputed.
func (s *State) SetSlices(slices []chart.Slice, donut bool) {
	s.slices = slices
	s.donut = donut

	switch s.mode {
	case HoveringSlice:
		label := s.hovered
		if _, ok := chart.Find(slices, label); !ok {
			s.PointerLeave()
			return
		}
		s.SliceHover(label)
	case HoveringCenter:
		if !donut || len(slices) == 0 {
			s.PointerLeave()
			return
		}
		s.showCenter()
	}
}

func (s *State) showCenter() {
	title := s.innerTitle
	if title == "" {
		title = DefaultInnerTitle
	}
	s.tooltip = Tooltip{Visible: true, Label: title, Value: chart.FormatValue(chart.Total(s.slices))}
}
