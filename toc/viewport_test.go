package toc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportDeliversInSubscriptionOrder(t *testing.T) {
	v := NewViewport(100, 100)
	var got []string
	v.Subscribe(func(ViewportEvent) { got = append(got, "a") })
	v.Subscribe(func(ViewportEvent) { got = append(got, "b") })

	v.Scroll(10)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestViewportEventCarriesState(t *testing.T) {
	v := NewViewport(100, 50)
	var last ViewportEvent
	v.Subscribe(func(ev ViewportEvent) { last = ev })

	v.Scroll(42)
	assert.Equal(t, ViewportEvent{Kind: EventScroll, Width: 100, Height: 50, ScrollY: 42}, last)

	v.Resize(300, 200)
	assert.Equal(t, ViewportEvent{Kind: EventResize, Width: 300, Height: 200, ScrollY: 42}, last)

	w, h := v.Size()
	assert.Equal(t, float64(300), w)
	assert.Equal(t, float64(200), h)
	assert.Equal(t, float64(42), v.ScrollY())
}

func TestViewportUnsubscribeIsIdempotent(t *testing.T) {
	v := NewViewport(0, 0)
	calls := 0
	unsubA := v.Subscribe(func(ViewportEvent) { calls++ })
	unsubB := v.Subscribe(func(ViewportEvent) {})

	unsubA()
	unsubA()
	assert.Equal(t, 1, v.Subscribers())

	v.Scroll(1)
	assert.Equal(t, 0, calls)

	unsubB()
	assert.Equal(t, 0, v.Subscribers())
}

func TestViewportUnsubscribeDuringPublish(t *testing.T) {
	v := NewViewport(0, 0)
	var unsub func()
	calls := 0
	unsub = v.Subscribe(func(ViewportEvent) {
		calls++
		unsub()
	})
	v.Scroll(1)
	v.Scroll(2)
	assert.Equal(t, 1, calls)
}

func TestViewportConcurrentSubscribers(t *testing.T) {
	v := NewViewport(0, 0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := v.Subscribe(func(ViewportEvent) {})
			v.Scroll(1)
			unsub()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, v.Subscribers())
}
