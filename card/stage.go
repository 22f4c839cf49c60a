package card

import (
	"sync"
)

// Stage holds the off-screen elements being prepared for export.
type Stage struct {
	fonts *Fonts
	scale float64

	mu      sync.Mutex
	mounted map[*Element]struct{}
}

// NewStage returns an empty stage drawing with fonts at scale device pixels
// per CSS pixel.
func NewStage(fonts *Fonts, scale float64) *Stage {
	return &Stage{
		fonts:   fonts,
		scale:   scale,
		mounted: make(map[*Element]struct{}),
	}
}

// Mounted returns the number of elements currently on the stage.
func (s *Stage) Mounted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mounted)
}

// Mount puts a new element for c on the stage and starts its layout.
func (s *Stage) Mount(c Card) *Element {
	e := &Element{stage: s, ready: make(chan struct{})}
	s.mu.Lock()
	s.mounted[e] = struct{}{}
	s.mu.Unlock()

	go func() {
		l, err := layout(c, s.fonts, s.scale)
		e.mu.Lock()
		defer e.mu.Unlock()
		e.layout, e.err = l, err
		if e.unmounted && l != nil {
			// nobody waits for it anymore.
			l.Close()
		}
		close(e.ready)
	}()
	return e
}

// Element is a card mounted on a stage.
type Element struct {
	stage *Stage
	ready chan struct{}

	mu        sync.Mutex
	layout    *Layout
	err       error
	unmounted bool
}

// Ready is closed once the layout is complete, successfully or not.
func (e *Element) Ready() <-chan struct{} { return e.ready }

// Layout returns the computed layout. It must only be called after Ready.
func (e *Element) Layout() (*Layout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout, e.err
}

// Unmount removes the element from its stage. It is safe to call it several
// times, and before the layout is complete.
func (e *Element) Unmount() {
	e.stage.mu.Lock()
	delete(e.stage.mounted, e)
	e.stage.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unmounted {
		return
	}
	e.unmounted = true
	if e.layout != nil {
		e.layout.Close()
	}
}
