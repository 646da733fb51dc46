package spy

import (
	"math"
	"sort"
	"strconv"
)

// Band is the engaged region of the viewport, given as the fractions of its
// height cut off at the top and the bottom. A heading is engaged while its
// offset lies inside what remains.
type Band struct {
	Top    float64 `yaml:"top" koanf:"top" json:"top"`
	Bottom float64 `yaml:"bottom" koanf:"bottom" json:"bottom"`
}

// DefaultBand keeps the strip from 20% to 30% of the viewport height, so a
// heading flush with either edge is not treated as being read.
var DefaultBand = Band{Top: 0.20, Bottom: 0.70}

// Valid reports whether the band leaves a non-empty region.
func (b Band) Valid() bool {
	return b.Top >= 0 && b.Bottom >= 0 && b.Top+b.Bottom < 1
}

// RootMargin renders b as an IntersectionObserver rootMargin, e.g.
// "-20% 0px -70% 0px" for DefaultBand.
func (b Band) RootMargin() string {
	pct := func(f float64) string {
		return strconv.FormatFloat(math.Round(f*10000)/100, 'f', -1, 64) + "%"
	}
	return "-" + pct(b.Top) + " 0px -" + pct(b.Bottom) + " 0px"
}

// Viewport is the visible window of the scroll container.
type Viewport struct {
	ScrollTop float64
	Height    float64
}

// Contains reports whether a document offset lies in the band of v.
func (b Band) Contains(v Viewport, offset float64) bool {
	lo := v.ScrollTop + v.Height*b.Top
	hi := v.ScrollTop + v.Height*(1-b.Bottom)
	return offset >= lo && offset <= hi
}

// Target is a rendered heading being observed, at its offset from the top of
// the document.
type Target struct {
	Slug   string
	Offset float64
}

// Observer reports headings whose visibility crosses into the band as the
// viewport moves.
type Observer struct {
	band    Band
	targets []Target
	inside  map[string]bool
	gen     uint64
	live    bool
}

// NewObserver returns a disconnected observer for band.
func NewObserver(band Band) *Observer {
	if !band.Valid() {
		band = DefaultBand
	}
	return &Observer{band: band, inside: make(map[string]bool)}
}

// Observe replaces the observed targets for observation round gen. Targets
// are kept in document order.
func (o *Observer) Observe(gen uint64, targets []Target) {
	o.targets = append([]Target(nil), targets...)
	sort.SliceStable(o.targets, func(i, j int) bool { return o.targets[i].Offset < o.targets[j].Offset })
	o.inside = make(map[string]bool, len(targets))
	o.gen = gen
	o.live = true
}

// Disconnect stops observation and forgets every target.
func (o *Observer) Disconnect() {
	o.targets = nil
	o.inside = make(map[string]bool)
	o.live = false
}

// Generation returns the round the current targets belong to.
func (o *Observer) Generation() uint64 { return o.gen }

// Targets returns the observed targets in document order.
func (o *Observer) Targets() []Target { return o.targets }

// Update moves the viewport and returns, in document order, the slugs that
// entered the band since the previous update. Nothing is reported once the
// observer is disconnected.
func (o *Observer) Update(v Viewport) []string {
	if !o.live {
		return nil
	}
	var engaged []string
	for _, t := range o.targets {
		in := o.band.Contains(v, t.Offset)
		if in && !o.inside[t.Slug] {
			engaged = append(engaged, t.Slug)
		}
		o.inside[t.Slug] = in
	}
	return engaged
}
