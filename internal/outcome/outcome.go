// Package outcome parses branch predictor outcome files and turns their
// correct/incorrect counts into accuracy reports.
package outcome

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNoOutcomes is returned when accuracy is requested for zero classified
// outcomes.
var ErrNoOutcomes = errors.New("no classified outcomes, accuracy is undefined")

// Counts holds correct and incorrect prediction counts.
type Counts struct {
	Correct   int
	Incorrect int
}

// Total returns the number of classified outcomes.
func (c Counts) Total() int {
	return c.Correct + c.Incorrect
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{Correct: c.Correct + o.Correct, Incorrect: c.Incorrect + o.Incorrect}
}

// Accuracy returns Correct/Total in [0, 1].
func (c Counts) Accuracy() (float64, error) {
	if c.Total() == 0 {
		return 0, ErrNoOutcomes
	}
	return float64(c.Correct) / float64(c.Total()), nil
}

// Parse reads whitespace separated tokens from r. Every token that parses as
// an integer takes the next position: even positions are correct counts, odd
// positions incorrect counts. Other tokens are skipped and do not take a
// position.
//
// slots limits classification to the first slots integers; zero or less means
// every integer in the stream is classified.
func Parse(r io.Reader, slots int) (Counts, error) {
	var c Counts
	sc := bufio.NewScanner(r)
	// A single token may be an arbitrarily long run of junk.
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	sc.Split(bufio.ScanWords)

	i := 0
	for sc.Scan() {
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			continue
		}
		if slots <= 0 || i < slots {
			if i%2 == 0 {
				c.Correct += n
			} else {
				c.Incorrect += n
			}
		}
		i++
	}
	if err := sc.Err(); err != nil {
		return Counts{}, fmt.Errorf("scanning outcomes: %w", err)
	}
	return c, nil
}

// ParseFile parses the outcome file at path.
func ParseFile(path string, slots int) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, fmt.Errorf("opening outcome file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	c, err := Parse(f, slots)
	if err != nil {
		return Counts{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FormatPercent renders a percentage the way the lab report expects: the
// shortest exact decimal, always with a fractional part ("100.0", "62.5").
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
