package spy

import (
	"reflect"
	"testing"

	"github.com/ziadkadry99/notebook/internal/toc"
)

func TestSpyTransitions(t *testing.T) {
	var s Spy
	if _, ok := s.Active(); ok {
		t.Fatal("zero Spy should be none-active")
	}

	gen := s.Reset()
	if !s.Engage(gen, "intro") {
		t.Error("Engage should activate intro")
	}
	if got, _ := s.Active(); got != "intro" {
		t.Errorf("active = %q, want intro", got)
	}

	if !s.Engage(gen, "setup", "usage") {
		t.Error("Engage with several slugs should change state")
	}
	if got, _ := s.Active(); got != "usage" {
		t.Errorf("last engaged heading should win, got %q", got)
	}

	if s.Engage(gen, "usage") {
		t.Error("re-engaging the active heading is not a change")
	}
	if s.Engage(gen) {
		t.Error("an empty event is not a change")
	}
}

func TestSpyIgnoresStaleGeneration(t *testing.T) {
	var s Spy
	old := s.Reset()
	s.Engage(old, "a")

	current := s.Reset()
	if _, ok := s.Active(); ok {
		t.Error("Reset should return to none-active")
	}
	if s.Engage(old, "late") {
		t.Error("events from an older observation round must be ignored")
	}
	if !s.Engage(current, "b") {
		t.Error("events from the current round should apply")
	}
}

func TestSpyClickIsOptimistic(t *testing.T) {
	var s Spy
	gen := s.Reset()
	s.Engage(gen, "a")
	if !s.Click("c") {
		t.Error("Click should activate c immediately")
	}
	if got, _ := s.Active(); got != "c" {
		t.Errorf("active = %q, want c", got)
	}
	if s.Click("") {
		t.Error("Click with empty slug is not a change")
	}
}

func TestBandContains(t *testing.T) {
	v := Viewport{ScrollTop: 1000, Height: 1000}
	b := DefaultBand

	tests := []struct {
		offset float64
		want   bool
	}{
		{1000, false}, // flush with the top edge
		{1199, false},
		{1201, true},
		{1250, true},
		{1299, true},
		{1301, false},
		{1999, false}, // near the bottom edge
	}
	for _, tt := range tests {
		if got := b.Contains(v, tt.offset); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestBandValid(t *testing.T) {
	if !DefaultBand.Valid() {
		t.Error("DefaultBand should be valid")
	}
	if (Band{Top: 0.5, Bottom: 0.5}).Valid() {
		t.Error("a band with no remaining height is invalid")
	}
	if (Band{Top: -0.1}).Valid() {
		t.Error("negative margins are invalid")
	}
	o := NewObserver(Band{Top: 0.9, Bottom: 0.9})
	if o.band != DefaultBand {
		t.Error("invalid band should fall back to DefaultBand")
	}
}

func TestObserverReportsCrossings(t *testing.T) {
	o := NewObserver(DefaultBand)
	o.Observe(1, []Target{
		{Slug: "usage", Offset: 900},
		{Slug: "intro", Offset: 100},
		{Slug: "setup", Offset: 500},
	})
	if got := o.Targets()[0].Slug; got != "intro" {
		t.Errorf("targets should be kept in document order, first = %q", got)
	}

	vp := func(top float64) Viewport { return Viewport{ScrollTop: top, Height: 1000} }

	// Band for scrollTop 0 is [200, 300]: nothing engaged.
	if got := o.Update(vp(0)); len(got) != 0 {
		t.Errorf("Update(0) = %v, want none", got)
	}
	// scrollTop -150 gives the band [50, 150], which holds intro.
	if got := o.Update(vp(-150)); !reflect.DeepEqual(got, []string{"intro"}) {
		t.Errorf("Update(-150) = %v, want [intro]", got)
	}
	// Leaving the band reports nothing.
	if got := o.Update(vp(-90)); len(got) != 0 {
		t.Errorf("Update(-90) = %v, want none", got)
	}
	// A tall viewport whose band [450, 950] holds both setup and usage.
	tall := Viewport{ScrollTop: -550, Height: 5000}
	if got := o.Update(tall); !reflect.DeepEqual(got, []string{"setup", "usage"}) {
		t.Errorf("Update(tall) = %v, want [setup usage]", got)
	}
}

func TestObserverDisconnect(t *testing.T) {
	o := NewObserver(DefaultBand)
	o.Observe(3, []Target{{Slug: "a", Offset: 250}})
	o.Disconnect()
	if got := o.Update(Viewport{ScrollTop: 0, Height: 1000}); got != nil {
		t.Errorf("disconnected observer reported %v", got)
	}
	if len(o.Targets()) != 0 {
		t.Error("Disconnect should drop targets")
	}
	if o.Generation() != 3 {
		t.Errorf("Generation() = %d, want 3", o.Generation())
	}
}

func TestObserverDrivesSpy(t *testing.T) {
	var s Spy
	o := NewObserver(DefaultBand)

	gen := s.Reset()
	o.Observe(gen, []Target{{Slug: "a", Offset: 250}, {Slug: "b", Offset: 1250}})
	s.Engage(o.Generation(), o.Update(Viewport{ScrollTop: 0, Height: 1000})...)
	if got, _ := s.Active(); got != "a" {
		t.Fatalf("active = %q, want a", got)
	}

	// A new document: detach, reset, re-attach.
	o.Disconnect()
	newGen := s.Reset()
	s.Engage(gen, "b") // late callback from the old round
	if _, ok := s.Active(); ok {
		t.Error("stale callback should not activate anything")
	}
	o.Observe(newGen, []Target{{Slug: "x", Offset: 260}})
	s.Engage(o.Generation(), o.Update(Viewport{ScrollTop: 0, Height: 1000})...)
	if got, _ := s.Active(); got != "x" {
		t.Errorf("active = %q, want x", got)
	}
}

func TestLocate(t *testing.T) {
	idx := toc.NewIndex(toc.Extract("## Setup\n## Usage Notes\n"))
	targets := []Target{{Slug: "setup", Offset: 10}, {Slug: "usage-notes", Offset: 90}}

	if tg, ok := Locate(idx, targets, "setup"); !ok || tg.Offset != 10 {
		t.Errorf("Locate(setup) = %+v, %v", tg, ok)
	}
	if tg, ok := Locate(idx, targets, "Usage Notes"); !ok || tg.Offset != 90 {
		t.Errorf("Locate by title = %+v, %v", tg, ok)
	}
	if _, ok := Locate(idx, targets, "nothing"); ok {
		t.Error("Locate(nothing) should fail")
	}
	if _, ok := Locate(nil, targets, "Usage Notes"); ok {
		t.Error("Locate without an index only matches exact slugs")
	}
}

func TestScrollOffset(t *testing.T) {
	if got := ScrollOffset(Target{Offset: 500}, 20); got != 480 {
		t.Errorf("ScrollOffset = %v, want 480", got)
	}
	if got := ScrollOffset(Target{Offset: 5}, 20); got != 0 {
		t.Errorf("ScrollOffset = %v, want 0", got)
	}
}

func TestBandRootMargin(t *testing.T) {
	tests := []struct {
		band Band
		want string
	}{
		{DefaultBand, "-20% 0px -70% 0px"},
		{Band{Top: 0.125, Bottom: 0}, "-12.5% 0px -0% 0px"},
	}
	for _, tt := range tests {
		if got := tt.band.RootMargin(); got != tt.want {
			t.Errorf("%+v.RootMargin() = %q, want %q", tt.band, got, tt.want)
		}
	}
}
