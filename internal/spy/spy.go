// Package spy tracks which heading of a scrolled document is currently
// being read.
package spy

// Spy is the active-heading state machine. It is either none-active or
// active(slug). The zero value is none-active at generation 0.
//
// Observation rounds are numbered by generation; Reset starts a new round
// and engagement events carrying an older generation are ignored, so
// callbacks from a torn-down observer can never move the state.
type Spy struct {
	active string
	gen    uint64
}

// Active returns the active slug and whether any heading is active.
func (s *Spy) Active() (string, bool) {
	return s.active, s.active != ""
}

// Generation returns the current observation round.
func (s *Spy) Generation() uint64 { return s.gen }

// Reset returns to none-active and starts a new observation round.
func (s *Spy) Reset() uint64 {
	s.active = ""
	s.gen++
	return s.gen
}

// Engage applies headings that entered the engaged band during round gen.
// When several engage at once the last one wins. It reports whether the
// state changed.
func (s *Spy) Engage(gen uint64, slugs ...string) bool {
	if gen != s.gen || len(slugs) == 0 {
		return false
	}
	last := slugs[len(slugs)-1]
	if last == "" || last == s.active {
		return false
	}
	s.active = last
	return true
}

// Click marks slug active immediately, ahead of the next engagement event.
func (s *Spy) Click(slug string) bool {
	if slug == "" || slug == s.active {
		return false
	}
	s.active = slug
	return true
}
