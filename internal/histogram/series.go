// Package histogram loads the dependency distance histograms written by the
// register dependency tool and pairs full register runs with partial
// register runs.
package histogram

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Series is a histogram: element i is the count for dependency distance i.
type Series []int

// ParseSeries reads comma separated integers from r. Records may span
// several lines and empty fields (such as the trailing comma the tool
// writes) are dropped.
func ParseSeries(r io.Reader) (Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var s Series
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("value %d: %q is not an integer", len(s), field)
			}
			s = append(s, n)
		}
	}
	return s, nil
}

// ParseSeriesFile reads the histogram stored at path.
func ParseSeriesFile(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("histogram: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	s, err := ParseSeries(f)
	if err != nil {
		return nil, fmt.Errorf("histogram: parse %s: %w", path, err)
	}
	return s, nil
}

// Title returns the benchmark name encoded in a histogram file name: the
// base name up to its first underscore.
func Title(path string) string {
	name, _, _ := strings.Cut(filepath.Base(path), "_")
	return name
}
