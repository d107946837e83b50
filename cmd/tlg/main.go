// Command tlg is a demo driver for the tensorlogic engine. It grounds
// small first-order formulas end to end: the smoke subcommand walks
// the broadcasting and diagonal machinery, the classify subcommand
// grounds a binary classification axiom set with closed-form
// predicates and reports per-axiom satisfaction.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sbl8/tensorlogic/kernels"
	"github.com/sbl8/tensorlogic/logic"
)

// Version is set at build time.
var Version = "0.1.0"

type appConfig struct {
	Operators string  `koanf:"operators"`
	P         float64 `koanf:"p"`
	Verbose   bool    `koanf:"verbose"`
}

// app carries the loaded configuration and logger shared by all
// subcommands.
type app struct {
	cfg appConfig
	log *slog.Logger
}

// loadConfig layers configuration in ascending precedence: defaults,
// yaml config file, TLG_ environment variables, explicitly set flags.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (appConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"operators": "product",
		"p":         logic.DefaultP,
		"verbose":   false,
	}, "."), nil); err != nil {
		return appConfig{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat("tlg.yaml"); err == nil {
			cfgFile = "tlg.yaml"
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return appConfig{}, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider("TLG_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TLG_"))
	}), nil); err != nil {
		return appConfig{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags the user actually set override the file and env.
			if !f.Changed {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return appConfig{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg appConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return appConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}

// evaluator builds a logic evaluator from the loaded configuration.
func (a *app) evaluator() (*logic.Evaluator, error) {
	ops, ok := kernels.Families[a.cfg.Operators]
	if !ok {
		names := make([]string, 0, len(kernels.Families))
		for n := range kernels.Families {
			names = append(names, n)
		}
		return nil, fmt.Errorf("unknown operator family %q (available: %s)",
			a.cfg.Operators, strings.Join(names, ", "))
	}
	return logic.New(logic.WithOperators(ops), logic.WithDefaultP(a.cfg.P)), nil
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "tlg",
		Short:   "tlg - fuzzy first-order logic over tensors",
		Long:    "tlg grounds first-order fuzzy-logic formulas over tensors of individuals,\nbroadcasting predicates across variables and aggregating with generalized means.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := loadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			a.log.Debug("configured", "operators", cfg.Operators, "p", cfg.P)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tlg.yaml)")
	rootCmd.PersistentFlags().String("operators", "", "connective family (product|lukasiewicz|goedel)")
	rootCmd.PersistentFlags().Float64("p", 0, "aggregator exponent for quantifiers (p >= 1)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("operators", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"product", "lukasiewicz", "goedel"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newSmokeCmd(a))
	rootCmd.AddCommand(newClassifyCmd(a))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
