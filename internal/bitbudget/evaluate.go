package bitbudget

import "fmt"

// DefaultBudget is the per-structure limit the lab predictors were sized against.
const DefaultBudget = 33000

// Entry is a named predictor configuration as it appears in .archlab.yaml.
type Entry struct {
	Name   string         `yaml:"name"`
	Kind   Kind           `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

// Total is a named sum of previously defined predictors.
type Total struct {
	Name string   `yaml:"name"`
	Sum  []string `yaml:"sum"`
}

// Result is one evaluated line of a bit budget report.
type Result struct {
	Name       string
	Bits       int
	OverBudget bool
}

// Evaluate computes the bits of every entry in order, then every total.
// Entries may reference only entries defined before them. A budget of zero
// or less disables the over-budget check.
func Evaluate(entries []Entry, totals []Total, budget int) ([]Result, error) {
	bits := make(map[string]int, len(entries))
	lookup := func(name string) (int, error) {
		b, ok := bits[name]
		if !ok {
			return 0, fmt.Errorf("unknown predictor %q", name)
		}
		return b, nil
	}

	results := make([]Result, 0, len(entries)+len(totals))
	add := func(name string, b int) error {
		if _, dup := bits[name]; dup {
			return fmt.Errorf("duplicate name %q", name)
		}
		bits[name] = b
		results = append(results, Result{
			Name:       name,
			Bits:       b,
			OverBudget: budget > 0 && b > budget,
		})
		return nil
	}

	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("predictor of kind '%s' has no name", e.Kind)
		}
		p, err := Decode(e.Kind, e.Params)
		if err != nil {
			return nil, fmt.Errorf("predictor %q: %w", e.Name, err)
		}
		b, err := p.Bits(lookup)
		if err != nil {
			return nil, fmt.Errorf("predictor %q: %w", e.Name, err)
		}
		if err := add(e.Name, b); err != nil {
			return nil, err
		}
	}

	for _, t := range totals {
		sum := 0
		for _, name := range t.Sum {
			b, err := lookup(name)
			if err != nil {
				return nil, fmt.Errorf("total %q: %w", t.Name, err)
			}
			if sum, err = addBits(sum, b); err != nil {
				return nil, fmt.Errorf("total %q: %w", t.Name, err)
			}
		}
		if err := add(t.Name, sum); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// DefaultEntries reproduces the predictors sized for the branch prediction lab.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Global", Kind: KindGlobal, Params: map[string]any{"pattern_bits": 10, "counter_bits": 2}},
		{Name: "PAp", Kind: KindPAp, Params: map[string]any{"pattern_bits": 2, "bht_size": 1990, "counter_bits": 3}},
		{Name: "TAGE", Kind: KindTAGE, Params: map[string]any{
			"hist_len":        310,
			"counter_bits":    3,
			"tag_bits":        8,
			"useful_bits":     1,
			"comp_index_bits": []int{9, 9, 9, 9, 9},
		}},
		{Name: "Tournament", Kind: KindTournament, Params: map[string]any{
			"first":         "PAp",
			"second":        "Global",
			"selector_size": 1024,
			"counter_bits":  3,
		}},
	}
}

// DefaultTotals pairs each base predictor with TAGE.
func DefaultTotals() []Total {
	return []Total{
		{Name: "Global+TAGE", Sum: []string{"Global", "TAGE"}},
		{Name: "PAp+TAGE", Sum: []string{"PAp", "TAGE"}},
	}
}
