package bitbudget

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Kind names a predictor family in a configuration file.
type Kind string

const (
	KindTAGE   Kind = "tage"
	KindGlobal Kind = "global"
	KindPAp    Kind = "pap"

	// KindTournament selects between two other predictors, referenced by name.
	KindTournament Kind = "tournament"
)

// ErrOverflow is returned when a configuration needs more bits than an int
// can count.
var ErrOverflow = errors.New("bit count overflows int")

// Lookup returns the bit count of an already evaluated predictor.
type Lookup func(name string) (int, error)

// Predictor is a decoded predictor configuration.
type Predictor interface {
	Kind() Kind

	// Bits returns the storage bits the configuration needs. Only predictors
	// that compose others use lookup.
	Bits(lookup Lookup) (int, error)
}

// TypeError reports a parameter whose value has the wrong shape, such as a
// scalar where a list of index widths is required.
type TypeError struct {
	Param string
	Want  string
	Got   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s must be a %s, got %T", e.Param, e.Want, e.Got)
}

// TAGEConfig configures a tagged geometric history length predictor.
type TAGEConfig struct {
	HistLen       int   `mapstructure:"hist_len"`
	CounterBits   int   `mapstructure:"counter_bits"`
	TagBits       int   `mapstructure:"tag_bits"`
	UsefulBits    int   `mapstructure:"useful_bits"`
	CompIndexBits []int `mapstructure:"comp_index_bits"`
}

// Kind returns KindTAGE.
func (c *TAGEConfig) Kind() Kind { return KindTAGE }

// Bits returns the TAGE formula for c.
func (c *TAGEConfig) Bits(Lookup) (int, error) {
	entries := 0
	for _, b := range c.CompIndexBits {
		var err error
		if entries, err = addBits(entries, 1<<b); err != nil {
			return 0, err
		}
	}
	width, err := addBits(c.CounterBits, c.TagBits)
	if err != nil {
		return 0, err
	}
	if width, err = addBits(width, c.UsefulBits); err != nil {
		return 0, err
	}
	if err := mulAdd(width, entries, c.HistLen); err != nil {
		return 0, err
	}
	return TAGE(c.HistLen, c.CounterBits, c.TagBits, c.UsefulBits, c.CompIndexBits), nil
}

// GlobalConfig configures a global history predictor.
type GlobalConfig struct {
	PatternBits int `mapstructure:"pattern_bits"`
	CounterBits int `mapstructure:"counter_bits"`
}

// Kind returns KindGlobal.
func (c *GlobalConfig) Kind() Kind { return KindGlobal }

// Bits returns the Global formula for c.
func (c *GlobalConfig) Bits(Lookup) (int, error) {
	if err := mulAdd(1<<c.PatternBits, c.CounterBits, c.PatternBits); err != nil {
		return 0, err
	}
	return Global(c.PatternBits, c.CounterBits), nil
}

// PApConfig configures a per-address two-level predictor.
type PApConfig struct {
	PatternBits int `mapstructure:"pattern_bits"`
	BHTSize     int `mapstructure:"bht_size"`
	CounterBits int `mapstructure:"counter_bits"`
}

// Kind returns KindPAp.
func (c *PApConfig) Kind() Kind { return KindPAp }

// Bits returns the PAp formula for c.
func (c *PApConfig) Bits(Lookup) (int, error) {
	history, err := mulBits(c.PatternBits, c.BHTSize)
	if err != nil {
		return 0, err
	}
	perEntry, err := mulBits(c.CounterBits, 1<<c.PatternBits)
	if err != nil {
		return 0, err
	}
	if err := mulAdd(c.BHTSize, perEntry, history); err != nil {
		return 0, err
	}
	return PAp(c.PatternBits, c.BHTSize, c.CounterBits), nil
}

// TournamentConfig configures a selector between two named predictors.
type TournamentConfig struct {
	First        string `mapstructure:"first"`
	Second       string `mapstructure:"second"`
	SelectorSize int    `mapstructure:"selector_size"`
	CounterBits  int    `mapstructure:"counter_bits"`
}

// Kind returns KindTournament.
func (c *TournamentConfig) Kind() Kind { return KindTournament }

// Bits looks up both predictors and adds the selector table.
func (c *TournamentConfig) Bits(lookup Lookup) (int, error) {
	first, err := lookup(c.First)
	if err != nil {
		return 0, err
	}
	second, err := lookup(c.Second)
	if err != nil {
		return 0, err
	}
	sum, err := addBits(first, second)
	if err != nil {
		return 0, err
	}
	if err := mulAdd(c.SelectorSize, c.CounterBits, sum); err != nil {
		return 0, err
	}
	return Tournament(first, second, c.SelectorSize, c.CounterBits), nil
}

// Decode builds a predictor of the given kind from its parameter map.
func Decode(kind Kind, params map[string]any) (Predictor, error) {
	switch kind {
	case KindTAGE:
		raw, ok := params["comp_index_bits"]
		if !ok || !isSequence(raw) {
			return nil, &TypeError{Param: "comp_index_bits", Want: "list", Got: raw}
		}
		var v TAGEConfig
		if err := decode(params, &v); err != nil {
			return nil, err
		}
		if err := nonNegative(
			field{"hist_len", v.HistLen},
			field{"counter_bits", v.CounterBits},
			field{"tag_bits", v.TagBits},
			field{"useful_bits", v.UsefulBits},
		); err != nil {
			return nil, err
		}
		for i, b := range v.CompIndexBits {
			if b < 0 || b > maxIndexBits {
				return nil, fmt.Errorf("comp_index_bits[%d] must be between 0 and %d, got %d", i, maxIndexBits, b)
			}
		}
		return &v, nil
	case KindGlobal:
		var v GlobalConfig
		if err := decode(params, &v); err != nil {
			return nil, err
		}
		if err := checkIndexBits("pattern_bits", v.PatternBits); err != nil {
			return nil, err
		}
		if err := nonNegative(field{"counter_bits", v.CounterBits}); err != nil {
			return nil, err
		}
		return &v, nil
	case KindPAp:
		var v PApConfig
		if err := decode(params, &v); err != nil {
			return nil, err
		}
		if err := checkIndexBits("pattern_bits", v.PatternBits); err != nil {
			return nil, err
		}
		if err := nonNegative(field{"bht_size", v.BHTSize}, field{"counter_bits", v.CounterBits}); err != nil {
			return nil, err
		}
		return &v, nil
	case KindTournament:
		var v TournamentConfig
		if err := decode(params, &v); err != nil {
			return nil, err
		}
		if v.First == "" || v.Second == "" {
			return nil, fmt.Errorf("tournament needs both 'first' and 'second' predictors")
		}
		if err := nonNegative(field{"selector_size", v.SelectorSize}, field{"counter_bits", v.CounterBits}); err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid predictor kind", kind)
	}
}

// maxIndexBits keeps 1<<b inside a 64-bit int. Products are checked when
// the bits are counted.
const maxIndexBits = 48

func decode(params map[string]any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return d.Decode(params)
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func checkIndexBits(name string, v int) error {
	if v < 0 || v > maxIndexBits {
		return fmt.Errorf("%s must be between 0 and %d, got %d", name, maxIndexBits, v)
	}
	return nil
}

type field struct {
	name  string
	value int
}

// nonNegative reports the first negative field in argument order.
func nonNegative(fields ...field) error {
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

// addBits and mulBits operate on non-negative counts.
func addBits(a, b int) (int, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > math.MaxInt {
		return 0, ErrOverflow
	}
	return int(sum), nil
}

func mulBits(a, b int) (int, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, ErrOverflow
	}
	return int(lo), nil
}

// mulAdd reports whether a*b+extra is countable.
func mulAdd(a, b, extra int) error {
	product, err := mulBits(a, b)
	if err != nil {
		return err
	}
	_, err = addBits(product, extra)
	return err
}
