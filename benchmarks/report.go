package benchmarks

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

func (r *Result) Report(w io.Writer) {
	fmt.Fprintf(w, "%s: keys=%s unique=%s height=%d\n",
		r.Name,
		humanize.Comma(int64(r.Keys)),
		humanize.Comma(r.Unique),
		r.Height)
	for _, p := range r.Passes {
		fmt.Fprintf(w, " %-6s dur=%s ops/s=%s hits=%s rotations=%s\n",
			p.Pass,
			p.Duration.Round(time.Microsecond),
			humanize.Comma(int64(p.OpsPerSecond())),
			humanize.Comma(int64(p.Hits)),
			humanize.Comma(p.Rotations))
	}
}

type Results []*Result

func (rs Results) Report(w io.Writer) {
	for i, r := range rs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r.Report(w)
	}
}

type yamlReport struct {
	Generated string        `yaml:"generated"`
	Datasets  []yamlDataset `yaml:"datasets"`
}

type yamlDataset struct {
	Name   string     `yaml:"name"`
	Keys   int        `yaml:"keys"`
	Unique int64      `yaml:"unique"`
	Height int8       `yaml:"height"`
	Passes []yamlPass `yaml:"passes"`
}

type yamlPass struct {
	Pass         string  `yaml:"pass"`
	Ops          int     `yaml:"ops"`
	Hits         int     `yaml:"hits"`
	Duration     string  `yaml:"duration"`
	Seconds      float64 `yaml:"seconds"`
	OpsPerSecond int64   `yaml:"ops_per_second"`
	Rotations    int64   `yaml:"rotations"`
}

// WriteYAML writes a machine readable summary of all results.
func (rs Results) WriteYAML(w io.Writer) error {
	doc := yamlReport{Generated: time.Now().UTC().Format(time.RFC3339)}
	for _, r := range rs {
		ds := yamlDataset{Name: r.Name, Keys: r.Keys, Unique: r.Unique, Height: r.Height}
		for _, p := range r.Passes {
			ds.Passes = append(ds.Passes, yamlPass{
				Pass:         string(p.Pass),
				Ops:          p.Ops,
				Hits:         p.Hits,
				Duration:     p.Duration.String(),
				Seconds:      p.Duration.Seconds(),
				OpsPerSecond: int64(p.OpsPerSecond()),
				Rotations:    p.Rotations,
			})
		}
		doc.Datasets = append(doc.Datasets, ds)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
