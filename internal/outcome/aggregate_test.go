package outcome

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines []string

func (l *lines) WriteLine(line string) error {
	*l = append(*l, line)
	return nil
}

func TestDiscoverDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "results_b/x.out", "1 1")
	writeFile(t, root, "results_a/x.out", "1 1")
	writeFile(t, root, "other/x.out", "1 1")
	writeFile(t, root, "results_file", "not a directory")

	dirs, err := DiscoverDirs(root, "results")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "results_a"),
		filepath.Join(root, "results_b"),
	}, dirs)
}

func TestDiscoverDirs_FollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(root, "results_linked")))

	dirs, err := DiscoverDirs(root, "results")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "results_linked")}, dirs)
}

func TestDiscoverDirs_MissingRoot(t *testing.T) {
	_, err := DiscoverDirs(filepath.Join(t.TempDir(), "missing"), "results")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAggregate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "results_gshare/bzip.out", "takenCorrect: 5  takenIncorrect: 3 notTakenCorrect: 2 notTakenIncorrect: 1\n")
	writeFile(t, root, "results_gshare/gcc.out", "3 1 0 0")
	writeFile(t, root, "results_pap/gcc.out", "1 0 1 0")
	writeFile(t, root, "ignored/gcc.out", "")

	var out lines
	results, err := Aggregate(root, Options{Prefix: "results"}, &out)
	require.NoError(t, err)

	bzip := 7.0 / 11.0
	total := 10.0 / 15.0
	assert.Equal(t, lines{
		"bzip.out: " + FormatPercent(bzip*100) + "%",
		"gcc.out: 75.0%",
		"results_gshare total: " + FormatPercent(total*100) + "%",
		"gcc.out: 100.0%",
		"results_pap total: 100.0%",
	}, out)

	require.Len(t, results, 2)
	assert.Equal(t, "results_gshare", results[0].Dir)
	assert.Equal(t, Counts{Correct: 10, Incorrect: 5}, results[0].Counts)
	require.Len(t, results[0].Files, 2)
	assert.Equal(t, "bzip.out", results[0].Files[0].Name)
	assert.Equal(t, "results_pap", results[1].Dir)
	assert.Equal(t, 1.0, results[1].Accuracy)
}

func TestAggregate_EmptyDirectoryHasNoTotal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "results_empty"), 0o755))

	var out lines
	results, err := Aggregate(root, Options{Prefix: "results"}, &out)
	require.NoError(t, err)
	assert.Empty(t, out)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Files)
}

func TestAggregate_SkipsNestedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "results/a.out", "1 1")
	writeFile(t, root, "results/nested/b.out", "")

	var out lines
	_, err := Aggregate(root, Options{Prefix: "results"}, &out)
	require.NoError(t, err)
	assert.Equal(t, lines{"a.out: 50.0%", "results total: 50.0%"}, out)
}

func TestAggregate_ZeroOutcomesStopsRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "results/a.out", "1 0")
	writeFile(t, root, "results/b.out", "no numbers here")
	writeFile(t, root, "results/c.out", "1 0")

	var out lines
	_, err := Aggregate(root, Options{Prefix: "results"}, &out)
	require.ErrorIs(t, err, ErrNoOutcomes)
	assert.Contains(t, err.Error(), "b.out")
	assert.Equal(t, lines{"a.out: 100.0%"}, out)
}

func TestAggregate_SlotLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "results/a.out", "1 1 1 1 0 100")

	var unlimited, limited lines
	_, err := Aggregate(root, Options{Prefix: "results"}, &unlimited)
	require.NoError(t, err)
	_, err = Aggregate(root, Options{Prefix: "results", Slots: 4}, &limited)
	require.NoError(t, err)

	acc := 2.0 / 104.0
	assert.Equal(t, "a.out: "+FormatPercent(acc*100)+"%", unlimited[0])
	assert.Equal(t, "a.out: 50.0%", limited[0])
}
