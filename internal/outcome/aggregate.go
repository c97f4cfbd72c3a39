package outcome

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// LineWriter receives report lines in order.
type LineWriter interface {
	WriteLine(line string) error
}

// Options controls a single aggregation run.
type Options struct {
	// Prefix selects the result directories to scan.
	Prefix string

	// Slots is passed through to Parse.
	Slots int
}

// FileResult is the parsed outcome of a single file.
type FileResult struct {
	Name     string
	Counts   Counts
	Accuracy float64
}

// DirResult is the aggregated outcome of one result directory.
type DirResult struct {
	Dir      string
	Files    []FileResult
	Counts   Counts
	Accuracy float64
}

// Aggregate scans the result directories under root, writing one line per
// file and one total line per non-empty directory to w. It stops at the first
// file that cannot be read or has no classified outcomes; lines written
// before that stay written.
func Aggregate(root string, opts Options, w LineWriter) ([]DirResult, error) {
	dirs, err := DiscoverDirs(root, opts.Prefix)
	if err != nil {
		return nil, err
	}
	slog.Debug("Discovered result directories", "root", root, "prefix", opts.Prefix, "count", len(dirs))

	results := make([]DirResult, 0, len(dirs))
	for _, dir := range dirs {
		res, err := aggregateDir(dir, opts.Slots, w)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func aggregateDir(dir string, slots int, w LineWriter) (DirResult, error) {
	res := DirResult{Dir: filepath.Base(dir)}

	files, err := listFiles(dir)
	if err != nil {
		return res, err
	}

	for _, path := range files {
		c, err := ParseFile(path, slots)
		if err != nil {
			return res, err
		}
		acc, err := c.Accuracy()
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}

		name := filepath.Base(path)
		if err := w.WriteLine(fmt.Sprintf("%s: %s%%", name, FormatPercent(acc*100))); err != nil {
			return res, fmt.Errorf("writing report: %w", err)
		}
		slog.Debug("Parsed outcome file", "path", path, "correct", c.Correct, "incorrect", c.Incorrect)

		res.Files = append(res.Files, FileResult{Name: name, Counts: c, Accuracy: acc})
		res.Counts = res.Counts.Add(c)
	}

	if len(res.Files) == 0 {
		slog.Debug("Result directory has no files", "dir", dir)
		return res, nil
	}

	res.Accuracy, err = res.Counts.Accuracy()
	if err != nil {
		return res, fmt.Errorf("%s: %w", dir, err)
	}
	if err := w.WriteLine(fmt.Sprintf("%s total: %s%%", res.Dir, FormatPercent(res.Accuracy*100))); err != nil {
		return res, fmt.Errorf("writing report: %w", err)
	}
	return res, nil
}
