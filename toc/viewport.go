package toc

import "sync"

// EventKind identifies a viewport signal.
type EventKind int

const (
	EventResize EventKind = iota + 1
	EventScroll
)

// ViewportEvent is delivered to subscribers after every resize or scroll.
type ViewportEvent struct {
	Kind    EventKind
	Width   float64
	Height  float64
	ScrollY float64
}

type subscription struct {
	id uint64
	fn func(ViewportEvent)
}

// Viewport fans ambient resize and scroll signals out to subscribers.
// Subscribers are called synchronously, in subscription order, on the
// goroutine that reported the signal.
type Viewport struct {
	mu      sync.Mutex
	width   float64
	height  float64
	scrollY float64
	subs    []subscription
	nextID  uint64
}

// NewViewport returns a viewport with an initial size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{width: width, height: height}
}

// Subscribe registers fn and returns a func that removes it. The returned
// func may be called more than once.
func (v *Viewport) Subscribe(fn func(ViewportEvent)) (unsubscribe func()) {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscription{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Viewport) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// Size returns the last reported width and height.
func (v *Viewport) Size() (width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// ScrollY returns the last reported scroll position.
func (v *Viewport) ScrollY() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollY
}

// Resize records a new size and notifies subscribers.
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	v.width, v.height = width, height
	ev := ViewportEvent{Kind: EventResize, Width: width, Height: height, ScrollY: v.scrollY}
	v.mu.Unlock()
	v.publish(ev)
}

// Scroll records a new scroll position and notifies subscribers.
func (v *Viewport) Scroll(y float64) {
	v.mu.Lock()
	v.scrollY = y
	ev := ViewportEvent{Kind: EventScroll, Width: v.width, Height: v.height, ScrollY: y}
	v.mu.Unlock()
	v.publish(ev)
}

func (v *Viewport) publish(ev ViewportEvent) {
	v.mu.Lock()
	subs := make([]subscription, len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()
	for _, s := range subs {
		s.fn(ev)
	}
}
