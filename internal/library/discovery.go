package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// folderInfo is a level folder found on disk.
type folderInfo struct {
	path     string // level folder
	infoPath string // info file inside it
	mtime    int64  // info file modification time
	source   string // song dir this folder belongs to
}

// discoverFolders walks the song dirs and returns every folder holding an
// info file. Folders matching an exclude pattern are skipped entirely.
func discoverFolders(
	ctx context.Context,
	sources []string,
	excludes []string,
	progress chan<- ScanProgress,
) (folders []folderInfo, discovered map[string]bool, err error) {
	seen := make(map[string]int) // folder -> index in folders

	for _, src := range sources {
		walkErr := filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Skip unreadable entries and keep scanning the rest
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}

			if d.IsDir() {
				if path != src && isExcluded(excludes, relativePath(src, path)) {
					return filepath.SkipDir
				}
				return nil
			}

			rank := infoFileRank(d.Name())
			if rank < 0 {
				return nil
			}

			info, infoErr := d.Info()
			if infoErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}

			folder := filepath.Dir(path)
			f := folderInfo{
				path:     folder,
				infoPath: path,
				mtime:    info.ModTime().Unix(),
				source:   src,
			}
			if i, ok := seen[folder]; ok {
				if rank < infoFileRank(filepath.Base(folders[i].infoPath)) {
					folders[i] = f
				}
				return nil
			}
			seen[folder] = len(folders)
			folders = append(folders, f)

			if len(folders)%50 == 0 {
				progress <- ScanProgress{Phase: PhaseScanning, Current: len(folders)}
			}
			return nil
		})
		if walkErr != nil && ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
	}

	discovered = make(map[string]bool, len(folders))
	for _, f := range folders {
		discovered[f.path] = true
	}
	return folders, discovered, nil
}

// infoFileRank returns the priority of an info file name, -1 if it is not one.
func infoFileRank(name string) int {
	for i, n := range infoFileNames {
		if strings.EqualFold(name, n) {
			return i
		}
	}
	return -1
}

func isExcluded(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// relativePath returns the path relative to the source, or the full path if not under source.
func relativePath(source, path string) string {
	rel, err := filepath.Rel(source, path)
	if err != nil {
		return path
	}
	return rel
}
