package toolfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-toolfile/toolfile/verbose"
)

// maxToolFileSize caps a tool file at 1MB. Anything above is almost certainly
// not a tool file.
const maxToolFileSize = 1 << 20

// Candidate is a file the scanner accepted by extension, name and size.
// Loading happens in a later phase; the scanner never reads file contents.
type Candidate struct {
	Name  string // tool name derived from the file stem
	Path  string // path as walked, rooted at the scanned directory
	Depth int    // directory levels below the scanned directory (0 = directly inside)
}

// ScanStats counts what a scan saw and what it did with it.
type ScanStats struct {
	DirsVisited           int
	FilesSeen             int
	NameMatched           int
	Accepted              int
	SkippedTooBig         int
	SkippedLoadError      int
	SkippedMissingSymbols int
	SkippedBadDefinition  int
}

// scanDir walks baseDir up to maxDepth and returns tool file candidates in
// lexicographic walk order. baseDir itself is depth 0. Unreadable
// subdirectories are logged and skipped; only a missing or unreadable baseDir
// is an error.
func scanDir(baseDir string, maxDepth int, prefix, suffix, ext string, settings *verbose.Settings) ([]Candidate, ScanStats, error) {
	var (
		candidates []Candidate
		stats      ScanStats
	)

	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, stats, fmt.Errorf("base directory does not exist or is not a directory: %s", baseDir)
	}

	walkErr := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == baseDir {
				return err
			}
			settings.Printf(verbose.Low, "Cannot list directory '%s'. %v", path, err)
			return nil
		}

		if d.IsDir() {
			depth := dirDepth(baseDir, path)
			if depth > maxDepth {
				settings.Printf(verbose.High, "Max depth reached; skipping directory: %s", path)
				return fs.SkipDir
			}
			stats.DirsVisited++
			settings.Printf(verbose.High, "Traversing dir (depth=%d): %s", depth, path)
			return nil
		}

		// Symlinks are resolved for files and refused for directories.
		var target fs.FileInfo
		if d.Type()&fs.ModeSymlink != 0 {
			st, serr := os.Stat(path)
			if serr != nil {
				settings.Printf(verbose.High, "Cannot stat file '%s'. %v", path, serr)
				return nil
			}
			if st.IsDir() {
				settings.Printf(verbose.High, "Skipping symlinked directory: %s", path)
				return nil
			}
			if !st.Mode().IsRegular() {
				return nil
			}
			target = st
		} else if !d.Type().IsRegular() {
			return nil
		}

		stats.FilesSeen++

		name := d.Name()
		if filepath.Ext(name) != ext {
			return nil
		}
		stem := strings.TrimSuffix(name, ext)
		if !strings.HasPrefix(stem, prefix) || !strings.HasSuffix(stem, suffix) {
			return nil
		}
		toolName, nameErr := DeriveName(stem, prefix, suffix)
		if nameErr != nil {
			settings.Printf(verbose.High, "Rejected by name (no middle part): %s", name)
			return nil
		}
		stats.NameMatched++

		if target == nil {
			st, serr := d.Info()
			if serr != nil {
				settings.Printf(verbose.High, "Cannot stat file '%s'. %v", path, serr)
				return nil
			}
			target = st
		}
		if target.Size() > maxToolFileSize {
			stats.SkippedTooBig++
			settings.Printf(verbose.Low, "Skipping file >1MB: %s (%d bytes)", name, target.Size())
			return nil
		}

		candidates = append(candidates, Candidate{
			Name:  toolName,
			Path:  path,
			Depth: dirDepth(baseDir, filepath.Dir(path)),
		})
		return nil
	})
	if walkErr != nil {
		return nil, stats, fmt.Errorf("listing base directory %s: %w", baseDir, walkErr)
	}
	return candidates, stats, nil
}

// dirDepth is the number of path segments between baseDir and dir. baseDir
// itself is depth 0.
func dirDepth(baseDir, dir string) int {
	rel, err := filepath.Rel(baseDir, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
