package main

import (
	"fmt"
	"strings"

	"github.com/laud222/AVL-map/cmd/bench"
	"github.com/laud222/AVL-map/cmd/dot"
	"github.com/laud222/AVL-map/cmd/gen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "AVLMAP"
	keyConfig = "config"
)

func RootCommand() (*cobra.Command, error) {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "avlmap",
		Short: "benchmark and inspect an AVL ordered set",
		Long: `Tools around the AVL ordered set.

Every flag can also be given in the config file passed with --config or as an
environment variable, e.g. --prometheus-addr as AVLMAP_PROMETHEUS_ADDR.
Flags given on the command line take precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return errors.Wrap(initializeConfig(cmd, cfgFile), "failed to initialize configuration")
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, keyConfig, "", "config file (yaml, json or toml)")
	cmd.AddCommand(
		gen.Command(),
		bench.Command(),
		dot.Command(),
	)
	return cmd, nil
}

func initializeConfig(cmd *cobra.Command, cfgFile string) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return bindFlags(cmd, v)
}

// bindFlags applies config and environment values to every flag not set on
// the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == keyConfig || f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := fmt.Sprintf("%v", v.Get(f.Name))
		if strings.HasSuffix(f.Value.Type(), "Slice") {
			val = strings.Join(v.GetStringSlice(f.Name), ",")
		}
		if err := cmd.Flags().Set(f.Name, val); err != nil {
			bindErr = errors.Wrapf(err, "setting flag %q", f.Name)
		}
	})
	return bindErr
}
