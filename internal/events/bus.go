package events

import (
	"slices"
	"sync"
)

// Bus fans events out to its subscribers. The zero value is not usable,
// use NewBus.
type Bus struct {
	mu     sync.Mutex
	subs   []*Subscription
	seq    uint64
	screen Screen
	closed bool
}

// NewBus returns a bus whose current screen is the browser.
func NewBus() *Bus {
	return &Bus{screen: ScreenBrowser}
}

// Subscribe creates a new event subscription. Subscribing to a closed bus
// returns a subscription whose Done channel is already closed.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := newSubscription()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

// Unsubscribe stops delivery to sub and closes its Done channel.
// Unsubscribing twice is a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.Index(b.subs, sub)
	if i < 0 {
		return
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	sub.close()
}

// Screen returns the screen set by the last navigation.
func (b *Bus) Screen() Screen {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen
}

func (b *Bus) PublishLoadStarted() {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := LoadStarted{Seq: b.nextSeqLocked()}
	for _, sub := range b.subs {
		sub.sendStarted(e)
	}
}

func (b *Bus) PublishLoadProgress(current, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := LoadProgress{Seq: b.nextSeqLocked(), Current: current, Total: total}
	for _, sub := range b.subs {
		sub.sendProgress(e)
	}
}

func (b *Bus) PublishLoadFinished(count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := LoadFinished{Seq: b.nextSeqLocked(), Count: count}
	for _, sub := range b.subs {
		sub.sendFinished(e)
	}
}

// Navigate records the current screen and notifies subscribers when it
// changed.
func (b *Bus) Navigate(screen Screen) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if screen == b.screen {
		return
	}
	e := NavigationChanged{Seq: b.nextSeqLocked(), Previous: b.screen, Current: screen}
	b.screen = screen
	for _, sub := range b.subs {
		sub.sendNavigation(e)
	}
}

// Close closes every subscription. Publishing after Close is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.close()
	}
	b.subs = nil
}

func (b *Bus) nextSeqLocked() uint64 {
	b.seq++
	return b.seq
}
