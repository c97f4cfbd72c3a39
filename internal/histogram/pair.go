package histogram

import (
	"fmt"
	"os"
	"path/filepath"
)

// Pair is a full register histogram file and the partial register file
// compared against it.
type Pair struct {
	Full    string
	Partial string
}

// Panel is a loaded Pair ready to be drawn.
type Panel struct {
	Title   string
	Full    Series
	Partial Series
}

// PairFiles lists both directories and pairs their files by position in the
// listing. File names are not compared, so a.txt may well be paired with
// z.txt. When one directory has more files, the extra files are ignored.
func PairFiles(fullDir, partialDir string) ([]Pair, error) {
	full, err := listFiles(fullDir)
	if err != nil {
		return nil, err
	}
	partial, err := listFiles(partialDir)
	if err != nil {
		return nil, err
	}

	n := min(len(full), len(partial))
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = Pair{Full: full[i], Partial: partial[i]}
	}
	return pairs, nil
}

// Load reads both histograms of p. The panel title comes from the full
// register file name.
func (p Pair) Load() (Panel, error) {
	full, err := ParseSeriesFile(p.Full)
	if err != nil {
		return Panel{}, err
	}
	partial, err := ParseSeriesFile(p.Partial)
	if err != nil {
		return Panel{}, err
	}
	return Panel{Title: Title(p.Full), Full: full, Partial: partial}, nil
}

// LoadPanels pairs the two directories and loads every pair in order.
func LoadPanels(fullDir, partialDir string) ([]Panel, error) {
	pairs, err := PairFiles(fullDir, partialDir)
	if err != nil {
		return nil, err
	}

	panels := make([]Panel, 0, len(pairs))
	for _, p := range pairs {
		panel, err := p.Load()
		if err != nil {
			return nil, err
		}
		panels = append(panels, panel)
	}
	return panels, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("histogram: list %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
