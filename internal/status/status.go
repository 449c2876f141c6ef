// Package status drives the loading-status overlay shown over the song
// browser.
package status

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/songbrowser/internal/events"
)

// LoadingMessage is shown while the library is processing songs.
const LoadingMessage = "Processing songs..."

// DefaultDismissAfter is how long the load summary stays up.
const DefaultDismissAfter = 20 * time.Second

// State is a snapshot of what the overlay shows.
type State struct {
	Visible  bool
	Message  string
	Progress bool // loading bar shown
	Current  int
	Total    int
}

// Overlay holds the overlay state. It is safe for concurrent use.
type Overlay struct {
	mu           sync.Mutex
	dismissAfter time.Duration
	onChange     func(State)

	message    string
	progress   bool
	current    int
	total      int
	active     bool
	persistent bool // restored when coming back to the browser
	away       bool

	timer   *time.Timer
	timerID uint64

	lastLoadSeq uint64
	lastNavSeq  uint64
}

// New returns a hidden overlay. A non-positive dismissAfter uses
// DefaultDismissAfter.
func New(dismissAfter time.Duration) *Overlay {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return &Overlay{dismissAfter: dismissAfter}
}

// OnChange registers fn to be called with the new state after every change.
// fn runs without the overlay lock held.
func (o *Overlay) OnChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onChange = fn
}

// State returns the current overlay state.
func (o *Overlay) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

// ShowMessage shows msg until it is replaced or hidden.
func (o *Overlay) ShowMessage(msg string) {
	o.update(func() {
		o.stopTimerLocked()
		o.setMessageLocked(msg)
		o.persistent = true
	})
}

// ShowMessageFor shows msg and hides the overlay after d.
func (o *Overlay) ShowMessageFor(msg string, d time.Duration) {
	o.update(func() {
		o.stopTimerLocked()
		o.setMessageLocked(msg)
		o.persistent = true
		o.startTimerLocked(d)
	})
}

// Hide hides the overlay and forgets the current message.
func (o *Overlay) Hide() {
	o.update(func() {
		o.stopTimerLocked()
		o.active = false
		o.persistent = false
	})
}

func (o *Overlay) setMessageLocked(msg string) {
	o.message = msg
	o.progress = false
	o.active = true
}

func (o *Overlay) loadStarted(e events.LoadStarted) {
	o.update(func() {
		if e.Seq < o.lastLoadSeq {
			return
		}
		o.lastLoadSeq = e.Seq
		o.stopTimerLocked()
		o.message = LoadingMessage
		o.progress = true
		o.current, o.total = 0, 0
		o.active = true
		o.persistent = true
	})
}

func (o *Overlay) loadProgress(e events.LoadProgress) {
	o.update(func() {
		if e.Seq < o.lastLoadSeq || !o.progress {
			return
		}
		o.lastLoadSeq = e.Seq
		o.current, o.total = e.Current, e.Total
	})
}

func (o *Overlay) loadFinished(e events.LoadFinished) {
	o.update(func() {
		if e.Seq < o.lastLoadSeq {
			return
		}
		o.lastLoadSeq = e.Seq
		o.stopTimerLocked()
		o.message = FinishedMessage(e.Count)
		o.progress = false
		o.active = true
		o.persistent = false
		o.startTimerLocked(o.dismissAfter)
	})
}

func (o *Overlay) navigationChanged(e events.NavigationChanged) {
	o.update(func() {
		if e.Seq < o.lastNavSeq {
			return
		}
		o.lastNavSeq = e.Seq
		if e.Current == events.ScreenBrowser {
			o.away = false
			if o.persistent {
				o.active = true
			}
			return
		}
		o.away = true
		o.active = false
	})
}

// FinishedMessage is the summary shown once count songs are loaded.
func FinishedMessage(count int) string {
	return fmt.Sprintf("%s songs processed", humanize.Comma(int64(count)))
}

// ProgressText formats load progress as "current/total".
func ProgressText(current, total int) string {
	return humanize.Comma(int64(current)) + "/" + humanize.Comma(int64(total))
}

func (o *Overlay) startTimerLocked(d time.Duration) {
	o.timerID++
	id := o.timerID
	o.timer = time.AfterFunc(d, func() {
		o.update(func() {
			// A newer message replaced the one this timer was for
			if id != o.timerID {
				return
			}
			o.timer = nil
			o.active = false
			o.persistent = false
		})
	})
}

func (o *Overlay) stopTimerLocked() {
	o.timerID++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// update applies fn under the lock and notifies the change callback.
func (o *Overlay) update(fn func()) {
	o.mu.Lock()
	fn()
	state := o.stateLocked()
	notify := o.onChange
	o.mu.Unlock()

	if notify != nil {
		notify(state)
	}
}

func (o *Overlay) stateLocked() State {
	return State{
		Visible:  o.active && !o.away,
		Message:  o.message,
		Progress: o.progress,
		Current:  o.current,
		Total:    o.total,
	}
}

// drain applies the events already buffered in sub.
func (o *Overlay) drain(sub *events.Subscription) {
	for {
		select {
		case e := <-sub.LoadStarted:
			o.loadStarted(e)
		case e := <-sub.LoadProgress:
			o.loadProgress(e)
		case e := <-sub.LoadFinished:
			o.loadFinished(e)
		case e := <-sub.NavigationChanged:
			o.navigationChanged(e)
		default:
			return
		}
	}
}

// Attach subscribes the overlay to bus and returns a function that stops
// listening and releases the subscription. Events published before release
// are still applied. Calling release more than once is safe.
func (o *Overlay) Attach(bus *events.Bus) (release func()) {
	sub := bus.Subscribe()
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case e := <-sub.LoadStarted:
				o.loadStarted(e)
			case e := <-sub.LoadProgress:
				o.loadProgress(e)
			case e := <-sub.LoadFinished:
				o.loadFinished(e)
			case e := <-sub.NavigationChanged:
				o.navigationChanged(e)
			case <-sub.Done:
				return
			case <-stop:
				o.drain(sub)
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			bus.Unsubscribe(sub)
		})
	}
}
