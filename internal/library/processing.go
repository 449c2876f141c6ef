package library

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"
	"time"

	dbutil "github.com/llehouerou/songbrowser/internal/db"
)

// folderResult holds the parsed metadata of a level folder.
type folderResult struct {
	folder folderInfo
	id     string
	info   levelInfo
	err    error
}

// processFolders parses info files in parallel and writes the results in a
// single transaction.
func (l *Library) processFolders(
	ctx context.Context,
	toProcess []folderInfo,
	existing map[string]int64,
	stats *ScanStats,
	progress chan<- ScanProgress,
) error {
	total := len(toProcess)
	var processed atomic.Int64

	workCh := make(chan folderInfo, total)
	resultCh := make(chan folderResult, total)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for f := range workCh {
				if ctx.Err() != nil {
					processed.Add(1)
					continue
				}
				resultCh <- readFolder(f)
				processed.Add(1)
			}
		})
	}

	for _, f := range toProcess {
		workCh <- f
	}
	close(workCh)

	// Progress reporter
	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				progress <- ScanProgress{Phase: PhaseProcessing, Current: int(processed.Load()), Total: total}
			case <-done:
				return
			}
		}
	}()

	wg.Wait()
	close(resultCh)
	close(done)
	<-reporterDone

	if err := ctx.Err(); err != nil {
		return err
	}

	results := make([]folderResult, 0, total)
	for r := range resultCh {
		results = append(results, r)
	}

	now := time.Now().Unix()
	err := dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		for _, r := range results {
			rel := relativePath(r.folder.source, r.folder.path)
			if r.err != nil {
				stats.Failed = append(stats.Failed, rel)
				continue
			}
			if err := upsertLevel(tx, r, now); err != nil {
				return err
			}
			if _, ok := existing[r.folder.path]; ok {
				stats.Updated = append(stats.Updated, rel)
			} else {
				stats.Added = append(stats.Added, rel)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	progress <- ScanProgress{Phase: PhaseProcessing, Current: total, Total: total}
	return nil
}

func readFolder(f folderInfo) folderResult {
	data, err := os.ReadFile(f.infoPath)
	if err != nil {
		return folderResult{folder: f, err: err}
	}
	info, err := parseInfo(data)
	if err != nil {
		return folderResult{folder: f, err: err}
	}
	return folderResult{folder: f, id: levelID(f.path, data), info: info}
}

// upsertLevel inserts or updates a level. created_at is set from the info
// file mtime on first sight and preserved afterwards.
func upsertLevel(ex dbutil.Executor, r folderResult, now int64) error {
	_, err := ex.Exec(`
		INSERT INTO levels (path, id, mtime, song_name, song_sub_name, author_name, difficulties, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			mtime = excluded.mtime,
			song_name = excluded.song_name,
			song_sub_name = excluded.song_sub_name,
			author_name = excluded.author_name,
			difficulties = excluded.difficulties,
			updated_at = excluded.updated_at
	`, r.folder.path, r.id, r.folder.mtime, r.info.SongName, r.info.SongSubName, r.info.AuthorName,
		int64(r.info.Difficulties), r.folder.mtime, now)
	return err
}
