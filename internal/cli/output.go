package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/llehouerou/songbrowser/internal/level"
	"github.com/llehouerou/songbrowser/internal/songsort"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

const favoriteMark = "★"

// Column widths in display cells.
const (
	colSong         = 32
	colAuthor       = 18
	colDifficulties = 30
	colAdded        = 14
	colPlays        = 5
)

// listing is the data rendered by the list command.
type listing struct {
	Sort      songsort.SortState
	Levels    []level.Level
	Cursor    int
	Favorites songsort.FavoriteSet
}

type levelEntry struct {
	ID           string    `yaml:"id"`
	Song         string    `yaml:"song"`
	SubName      string    `yaml:"sub_name,omitempty"`
	Author       string    `yaml:"author,omitempty"`
	Difficulties []string  `yaml:"difficulties,omitempty"`
	Created      time.Time `yaml:"created"`
	Plays        int       `yaml:"plays"`
	Favorite     bool      `yaml:"favorite"`
	Selected     bool      `yaml:"selected,omitempty"`
	Path         string    `yaml:"path,omitempty"`
}

type listingDoc struct {
	Sort     string       `yaml:"sort"`
	Inverted bool         `yaml:"inverted"`
	Levels   []levelEntry `yaml:"levels"`
}

func validateOutput(format string) error {
	switch format {
	case outputTable, outputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want %s or %s)", format, outputTable, outputYAML)
}

func writeYAML(w io.Writer, l listing) error {
	doc := listingDoc{
		Sort:     l.Sort.Mode.String(),
		Inverted: l.Sort.Inverted,
		Levels:   make([]levelEntry, 0, len(l.Levels)),
	}
	for i, lv := range l.Levels {
		var diffs []string
		for _, d := range lv.Difficulties.List() {
			diffs = append(diffs, d.String())
		}
		doc.Levels = append(doc.Levels, levelEntry{
			ID:           lv.ID,
			Song:         lv.SongName,
			SubName:      lv.SongSubName,
			Author:       lv.AuthorName,
			Difficulties: diffs,
			Created:      lv.Created.UTC(),
			Plays:        lv.PlayCount,
			Favorite:     l.Favorites.Has(lv.ID),
			Selected:     i == l.Cursor,
			Path:         lv.Path,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, st *styles, l listing, now time.Time) error {
	var b strings.Builder

	header := "     " + fit("SONG", colSong) + "  " + fit("AUTHOR", colAuthor) + "  " +
		fit("DIFFICULTIES", colDifficulties) + "  " + fit("ADDED", colAdded) + "  " + fitLeft("PLAYS", colPlays)
	b.WriteString(st.Header.Render(header))
	b.WriteByte('\n')

	for i, lv := range l.Levels {
		cursor := "  "
		if i == l.Cursor {
			cursor = "> "
		}
		fav := " "
		if l.Favorites.Has(lv.ID) {
			fav = st.Favorite.Render(favoriteMark)
		}

		row := fit(lv.DisplayName(), colSong) + "  " +
			fit(lv.AuthorName, colAuthor) + "  " +
			fit(lv.Difficulties.String(), colDifficulties) + "  " +
			fit(addedAt(lv.Created, now), colAdded) + "  " +
			fitLeft(strconv.Itoa(lv.PlayCount), colPlays)
		if i == l.Cursor {
			row = st.Cursor.Render(row)
		}

		b.WriteString(cursor + fav + "  " + row + "\n")
	}

	summary := fmt.Sprintf("%s levels, sorted by %s", humanize.Comma(int64(len(l.Levels))), sortCaption(l.Sort))
	b.WriteString(st.Muted.Render(summary))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func addedAt(created, now time.Time) string {
	if created.IsZero() {
		return "-"
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

// sortCaption names a sort state the way the buttons do.
func sortCaption(s songsort.SortState) string {
	if s.Inverted {
		return s.Mode.Label() + " (inverted)"
	}
	return s.Mode.Label()
}
