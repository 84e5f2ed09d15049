package benchmarks

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Ordering selects the order in which keys are fed to the tree.
type Ordering string

const (
	Random     Ordering = "random"
	Ascending  Ordering = "ascending"
	Descending Ordering = "descending"
)

// Orderings lists every ordering in the order the harness evaluates them.
var Orderings = []Ordering{Random, Ascending, Descending}

// FileName is the conventional key file name of the ordering.
func (o Ordering) FileName() string {
	switch o {
	case Ascending:
		return "sorted_asc.txt"
	case Descending:
		return "sorted_desc.txt"
	default:
		return "random.txt"
	}
}

func ParseOrdering(s string) (Ordering, error) {
	for _, o := range Orderings {
		if string(o) == s {
			return o, nil
		}
	}
	return "", errors.Errorf("unknown ordering %q", s)
}

type GenOptions struct {
	// Count is the number of keys generated.
	Count int
	// Max bounds random keys to [0, Max).
	Max int64
	Seed int64
	// Unique draws random keys without repetition.
	Unique bool
}

func DefaultGenOptions() GenOptions {
	return GenOptions{
		Count: 100_000,
		Max:   1_000_000,
		Seed:  1,
	}
}

// Generate returns the keys of one dataset:
//   - Random: Count keys uniformly drawn from [0, Max), repeats allowed unless Unique
//   - Ascending: 0 .. Count-1
//   - Descending: Count down to 1
func Generate(o Ordering, opts GenOptions) ([]int64, error) {
	if opts.Count < 0 {
		return nil, errors.Errorf("negative key count %d", opts.Count)
	}
	keys := make([]int64, opts.Count)
	switch o {
	case Random:
		if opts.Max <= 0 {
			return nil, errors.Errorf("random keys need a positive max, got %d", opts.Max)
		}
		if opts.Unique && int64(opts.Count) > opts.Max {
			return nil, errors.Errorf("cannot draw %d unique keys from [0, %d)", opts.Count, opts.Max)
		}
		r := rand.New(rand.NewSource(uint64(opts.Seed)))
		seen := make(map[int64]struct{})
		for i := range keys {
			k := r.Int63n(opts.Max)
			if opts.Unique {
				for {
					if _, ok := seen[k]; !ok {
						break
					}
					k = r.Int63n(opts.Max)
				}
				seen[k] = struct{}{}
			}
			keys[i] = k
		}
	case Ascending:
		for i := range keys {
			keys[i] = int64(i)
		}
	case Descending:
		for i := range keys {
			keys[i] = int64(opts.Count - i)
		}
	default:
		return nil, errors.Errorf("unknown ordering %q", o)
	}
	return keys, nil
}
