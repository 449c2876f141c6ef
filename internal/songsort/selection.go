package songsort

import "github.com/llehouerou/songbrowser/internal/level"

// NoSelection is returned by ResolveSelection for an empty list.
const NoSelection = -1

// ResolveSelection returns the row to select in a freshly sorted list.
// An empty rememberedID means nothing was selected before. A remembered
// level that is no longer in the list falls back to the first row.
func ResolveSelection(sorted []level.Level, rememberedID string) int {
	if len(sorted) == 0 {
		return NoSelection
	}
	if rememberedID == "" {
		return 0
	}
	for i := range sorted {
		if sorted[i].ID == rememberedID {
			return i
		}
	}
	return 0
}
