// Package notify mirrors the status overlay as a desktop notification.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/llehouerou/songbrowser/internal/status"
)

const (
	appName      = "Song Browser"
	desktopEntry = "songbrowser"
)

// message is the content of the status notification.
type message struct {
	title   string
	body    string
	percent int           // progress bar value, -1 for none
	expire  time.Duration // 0 keeps it until dismissed
}

// transport talks to the notification server.
type transport interface {
	// show displays m, replacing notification replaces when non-zero, and
	// returns the ID of the displayed notification.
	show(replaces uint32, m message) (uint32, error)
	dismiss(id uint32) error
	close() error
}

// Notifier keeps a single desktop notification in step with the status
// overlay. Each change replaces the notification in place; hiding the
// overlay dismisses it.
type Notifier struct {
	mu           sync.Mutex
	t            transport
	dismissAfter time.Duration
	id           uint32
	last         message
}

// New connects to the session's notification server. Without one the
// returned Notifier does nothing.
func New(dismissAfter time.Duration) *Notifier {
	t, err := dial()
	if err != nil {
		log.Printf("notify: desktop notifications unavailable: %v", err)
		t = nopTransport{}
	}
	return newNotifier(t, dismissAfter)
}

func newNotifier(t transport, dismissAfter time.Duration) *Notifier {
	return &Notifier{t: t, dismissAfter: dismissAfter}
}

// Update reflects the overlay state s.
func (n *Notifier) Update(s status.State) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !s.Visible {
		return n.dismissLocked()
	}

	m := message{title: s.Message, percent: -1}
	if s.Progress {
		if s.Total > 0 {
			m.body = status.ProgressText(s.Current, s.Total)
			m.percent = min(100, s.Current*100/s.Total)
		}
	} else {
		m.expire = n.dismissAfter
	}
	if n.id != 0 && m == n.last {
		return nil
	}

	id, err := n.t.show(n.id, m)
	if err != nil {
		return err
	}
	n.id = id
	n.last = m
	return nil
}

// Close releases the connection. A notification that would never expire,
// such as an unfinished progress bar, is dismissed first; a timed one is
// left to expire on the server.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var err error
	if n.last.expire == 0 {
		err = n.dismissLocked()
	}
	if cerr := n.t.close(); err == nil {
		err = cerr
	}
	return err
}

func (n *Notifier) dismissLocked() error {
	n.last = message{}
	if n.id == 0 {
		return nil
	}
	id := n.id
	n.id = 0
	return n.t.dismiss(id)
}

// nopTransport is used when no notification server is reachable.
type nopTransport struct{}

func (nopTransport) show(uint32, message) (uint32, error) { return 0, nil }
func (nopTransport) dismiss(uint32) error               { return nil }
func (nopTransport) close() error                       { return nil }
