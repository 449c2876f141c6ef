package library

import (
	"context"
	"path/filepath"
)

const numWorkers = 8

// Scan phases, in the order they are reported.
const (
	PhaseScanning   = "scanning"
	PhaseProcessing = "processing"
	PhaseCleaning   = "cleaning"
	PhaseDone       = "done"
)

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase   string
	Current int
	Total   int
	Stats   *ScanStats // Only populated when Phase == PhaseDone
}

// ScanStats holds statistics for a completed scan.
type ScanStats struct {
	Added   []string // folders of added levels, relative to their song dir
	Updated []string // folders whose info file changed
	Removed []string // folders that disappeared
	Failed  []string // folders whose info file could not be read
	Total   int      // levels in the library after the scan
}

// Refresh performs an incremental scan of the given song dirs. Unchanged
// folders are skipped, vanished ones are dropped from the cache. progress is
// closed when Refresh returns.
func (l *Library) Refresh(ctx context.Context, sources []string, progress chan<- ScanProgress) error {
	return l.refresh(ctx, sources, progress, false)
}

// FullRefresh rescans every folder, ignoring modification times.
func (l *Library) FullRefresh(ctx context.Context, sources []string, progress chan<- ScanProgress) error {
	return l.refresh(ctx, sources, progress, true)
}

func (l *Library) refresh(ctx context.Context, sources []string, progress chan<- ScanProgress, forceRescan bool) error {
	defer close(progress)

	stats := &ScanStats{}

	// Phase 1: find level folders
	progress <- ScanProgress{Phase: PhaseScanning}
	folders, discovered, err := discoverFolders(ctx, sources, l.excludes, progress)
	if err != nil {
		return err
	}

	// Phase 2: compare with the cache
	existing, err := l.existingFolders(sources)
	if err != nil {
		return err
	}

	toProcess := make([]folderInfo, 0, len(folders))
	for _, f := range folders {
		if !forceRescan {
			if mtime, ok := existing[f.path]; ok && mtime == f.mtime {
				continue
			}
		}
		toProcess = append(toProcess, f)
	}

	// Phase 3: parse new/modified folders in parallel
	if len(toProcess) > 0 {
		if err := l.processFolders(ctx, toProcess, existing, stats, progress); err != nil {
			return err
		}
	}

	// Phase 4: drop vanished folders
	progress <- ScanProgress{Phase: PhaseCleaning}
	for path := range existing {
		if discovered[path] {
			continue
		}
		if _, err := l.db.Exec(`DELETE FROM levels WHERE path = ?`, path); err != nil {
			return err
		}
		stats.Removed = append(stats.Removed, relativeToSources(sources, path))
	}

	total, err := l.Count()
	if err != nil {
		return err
	}
	stats.Total = total

	progress <- ScanProgress{Phase: PhaseDone, Current: len(folders), Total: len(folders), Stats: stats}
	return nil
}

// existingFolders returns folder->mtime for cached levels under sources.
func (l *Library) existingFolders(sources []string) (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT path, mtime FROM levels`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		for _, src := range sources {
			if inSource(src, path) {
				folders[path] = mtime
				break
			}
		}
	}
	return folders, rows.Err()
}

func relativeToSources(sources []string, path string) string {
	for _, src := range sources {
		if inSource(src, path) {
			return relativePath(src, path)
		}
	}
	return path
}

// inSource reports whether path is the song dir itself or lies below it.
func inSource(src, path string) bool {
	return filepath.Clean(src) == filepath.Clean(path) || isUnder(src, path)
}
