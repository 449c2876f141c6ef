// Package events carries library and navigation notifications between the
// browser and its observers.
package events

// Screen identifies what the host is showing.
type Screen string

const (
	ScreenBrowser  Screen = "browser"
	ScreenGameplay Screen = "gameplay"
	ScreenSettings Screen = "settings"
)

// LoadStarted is published when the library begins processing songs.
type LoadStarted struct {
	Seq uint64
}

// LoadProgress reports how many level folders have been processed so far.
type LoadProgress struct {
	Seq     uint64
	Current int
	Total   int
}

// LoadFinished is published once the library is loaded.
type LoadFinished struct {
	Seq   uint64
	Count int
}

// NavigationChanged is published when the host switches screens.
type NavigationChanged struct {
	Seq      uint64
	Previous Screen
	Current  Screen
}
