package library

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/llehouerou/songbrowser/internal/level"
)

// infoFileNames are the metadata files that mark a level folder, by priority.
var infoFileNames = []string{"info.json", "info.dat"}

var (
	errInvalidInfo     = errors.New("invalid level info")
	errMissingSongName = errors.New("level info has no song name")
)

// levelInfo is the metadata read from a level's info file.
type levelInfo struct {
	SongName     string
	SongSubName  string
	AuthorName   string
	Difficulties level.DifficultySet
}

// parseInfo reads both the legacy info.json layout and the underscored
// info.dat layout.
func parseInfo(data []byte) (levelInfo, error) {
	if !gjson.ValidBytes(data) {
		return levelInfo{}, errInvalidInfo
	}
	doc := gjson.ParseBytes(data)

	info := levelInfo{
		SongName:    firstString(doc, "songName", "_songName"),
		SongSubName: firstString(doc, "songSubName", "_songSubName"),
		AuthorName:  firstString(doc, "authorName", "_songAuthorName", "_levelAuthorName"),
	}
	if info.SongName == "" {
		return levelInfo{}, errMissingSongName
	}

	addDifficulty := func(_, v gjson.Result) bool {
		if d, ok := level.ParseDifficulty(v.String()); ok {
			info.Difficulties = info.Difficulties.With(d)
		}
		return true
	}
	doc.Get("difficultyLevels.#.difficulty").ForEach(addDifficulty)
	doc.Get("_difficultyBeatmapSets").ForEach(func(_, set gjson.Result) bool {
		set.Get("_difficultyBeatmaps.#._difficulty").ForEach(addDifficulty)
		return true
	})

	return info, nil
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(doc.Get(p).String()); s != "" {
			return s
		}
	}
	return ""
}

// levelID derives a stable ID from the info file content and the level
// folder, so two copies of the same level anywhere in the collection stay
// distinct.
func levelID(folder string, data []byte) string {
	h := sha1.New() //nolint:gosec // see import
	h.Write(data)
	h.Write([]byte(filepath.ToSlash(filepath.Clean(folder))))
	return level.CustomPrefix + hex.EncodeToString(h.Sum(nil))
}
