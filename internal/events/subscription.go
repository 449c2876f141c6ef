package events

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
// Events of one kind arrive in order. Across kinds, Seq tells which was
// published first.
type Subscription struct {
	LoadStarted       <-chan LoadStarted
	LoadProgress      <-chan LoadProgress
	LoadFinished      <-chan LoadFinished
	NavigationChanged <-chan NavigationChanged
	Done              <-chan struct{}

	// Internal write channels
	startedCh  chan LoadStarted
	progressCh chan LoadProgress
	finishedCh chan LoadFinished
	navCh      chan NavigationChanged
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		startedCh:  make(chan LoadStarted, eventBufferSize),
		progressCh: make(chan LoadProgress, eventBufferSize),
		finishedCh: make(chan LoadFinished, eventBufferSize),
		navCh:      make(chan NavigationChanged, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.LoadStarted = s.startedCh
	s.LoadProgress = s.progressCh
	s.LoadFinished = s.finishedCh
	s.NavigationChanged = s.navCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// Non-blocking sends: a full buffer drops the event.

func (s *Subscription) sendStarted(e LoadStarted) {
	select {
	case s.startedCh <- e:
	default:
	}
}

func (s *Subscription) sendProgress(e LoadProgress) {
	select {
	case s.progressCh <- e:
	default:
	}
}

func (s *Subscription) sendFinished(e LoadFinished) {
	select {
	case s.finishedCh <- e:
	default:
	}
}

func (s *Subscription) sendNavigation(e NavigationChanged) {
	select {
	case s.navCh <- e:
	default:
	}
}
