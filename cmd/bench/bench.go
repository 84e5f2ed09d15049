package bench

import (
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	avl "github.com/laud222/AVL-map"
	"github.com/laud222/AVL-map/benchmarks"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var log = zlog.Output(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.Stamp,
})

type dataset struct {
	name string
	keys []int64
}

func Command() *cobra.Command {
	var (
		dir            string
		genOpts        = benchmarks.DefaultGenOptions()
		verify         bool
		timeOperations bool
		histBins       int
		reportPath     string
		usePrometheus  bool
		prometheusAddr string
		cpuProfile     string
		debug          bool
	)
	cmd := &cobra.Command{
		Use:   "bench [key files...]",
		Short: "time insert, search and delete passes",
		Long: `Feeds each dataset through a fresh tree three times: insert every key, search
every key, delete every key. Each pass is timed on its own.

Datasets are read from the key files given as arguments, or from the files
written by "gen" in --dir. Without either the random, ascending and
descending datasets are generated in memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer func() {
					pprof.StopCPUProfile()
					f.Close()
				}()
			}

			datasets, err := loadDatasets(args, dir, genOpts)
			if err != nil {
				return err
			}

			runner := &benchmarks.Runner{
				Verify:         verify,
				TimeOperations: timeOperations,
				Logger:         avl.NewZeroLogger(log),
			}
			if debug {
				runner.Logger = avl.NewDebugLogger(cmd.ErrOrStderr())
			}
			if usePrometheus {
				p := newPrometheusMetricsProxy()
				p.Serve(prometheusAddr)
				defer p.Close()
				runner.MetricsProxy = p
				log.Info().Str("addr", prometheusAddr).Msg("serving metrics")
			}

			out := cmd.OutOrStdout()
			var results benchmarks.Results
			for _, ds := range datasets {
				res, err := runner.Run(cmd.Context(), ds.name, ds.keys)
				if err != nil {
					return err
				}
				res.Report(out)
				if timeOperations {
					if err := res.Metrics.QueryReport(out, histBins); err != nil {
						return err
					}
				}
				results = append(results, res)
			}

			if reportPath != "" {
				f, err := os.Create(reportPath)
				if err != nil {
					return err
				}
				if err := results.WriteYAML(f); err != nil {
					f.Close()
					return errors.Wrap(err, reportPath)
				}
				if err := f.Close(); err != nil {
					return err
				}
				log.Info().Str("path", reportPath).Msg("wrote report")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the files written by gen")
	cmd.Flags().IntVar(&genOpts.Count, "count", genOpts.Count, "keys per generated dataset")
	cmd.Flags().Int64Var(&genOpts.Max, "max", genOpts.Max, "exclusive upper bound of generated random keys")
	cmd.Flags().Int64Var(&genOpts.Seed, "seed", genOpts.Seed, "random seed for generated datasets")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the tree invariants after the insert pass")
	cmd.Flags().BoolVar(&timeOperations, "time-ops", false, "time every operation and print latency histograms")
	cmd.Flags().IntVar(&histBins, "hist-bins", 20, "histogram bins for --time-ops")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a yaml summary to this file")
	cmd.Flags().BoolVar(&usePrometheus, "prometheus", false, "enable prometheus metrics")
	cmd.Flags().StringVar(&prometheusAddr, "prometheus-addr", ":2112", "listen address of the metrics endpoint")
	cmd.Flags().StringVar(&cpuProfile, "cpu-profile", "", "write cpu profile to file")
	cmd.Flags().BoolVar(&debug, "debug", false, "log tree and runner events at debug level as slog text to stderr")
	return cmd
}

func loadDatasets(files []string, dir string, opts benchmarks.GenOptions) ([]dataset, error) {
	if len(files) > 0 && dir != "" {
		return nil, errors.New("key files and --dir are mutually exclusive")
	}
	var datasets []dataset
	switch {
	case len(files) > 0:
		for _, path := range files {
			keys, err := benchmarks.ReadFile(path)
			if err != nil {
				return nil, err
			}
			datasets = append(datasets, dataset{name: filepath.Base(path), keys: keys})
		}
	case dir != "":
		for _, o := range benchmarks.Orderings {
			keys, err := benchmarks.ReadFile(filepath.Join(dir, o.FileName()))
			if err != nil {
				return nil, err
			}
			datasets = append(datasets, dataset{name: string(o), keys: keys})
		}
	default:
		for _, o := range benchmarks.Orderings {
			keys, err := benchmarks.Generate(o, opts)
			if err != nil {
				return nil, err
			}
			datasets = append(datasets, dataset{name: string(o), keys: keys})
		}
	}
	return datasets, nil
}
