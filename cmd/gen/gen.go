package gen

import (
	"os"
	"time"

	"github.com/laud222/AVL-map/benchmarks"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var log = zlog.Output(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.Stamp,
})

func Command() *cobra.Command {
	var (
		out  string
		opts = benchmarks.DefaultGenOptions()
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "write the random, ascending and descending key files",
		Long: `Writes one key per line into random.txt, sorted_asc.txt and sorted_desc.txt.
random.txt holds --count keys drawn from [0, --max), sorted_asc.txt holds
0 .. count-1 and sorted_desc.txt holds count .. 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			paths, err := benchmarks.GenerateFiles(out, opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				log.Info().Str("path", p).Int("keys", opts.Count).Msg("wrote dataset")
			}
			log.Info().Dur("dur", time.Since(start)).Msg("done")
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "data", "output directory")
	cmd.Flags().IntVar(&opts.Count, "count", opts.Count, "keys per dataset")
	cmd.Flags().Int64Var(&opts.Max, "max", opts.Max, "exclusive upper bound of random keys")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().BoolVar(&opts.Unique, "unique", false, "draw random keys without repetition")
	return cmd
}
