package cli

import "github.com/llehouerou/songbrowser/internal/level"

// listView is the browser's view for one command run: it holds the library
// contents and records what the browser asked it to display.
type listView struct {
	levels    []level.Level
	displayed []level.Level
	cursor    int
}

func newListView(levels []level.Level) *listView {
	return &listView{levels: levels, cursor: -1}
}

func (v *listView) CurrentLevels() []level.Level { return v.levels }

func (v *listView) SetDisplayedLevels(levels []level.Level) {
	v.displayed = levels
	v.cursor = -1
}

func (v *listView) ScrollToIndex(i int) { v.cursor = i }
