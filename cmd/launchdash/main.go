package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/launchdash"
	"github.com/bft-labs/launchdash/internal/adapters/fs"
	"github.com/bft-labs/launchdash/internal/cliconfig"
	"github.com/bft-labs/launchdash/internal/summary"
	"github.com/bft-labs/launchdash/pkg/log"
)

const helpDescription = `
Explore SpaceX launch records in the browser.

Pick a launch site to see how its launches split between success and
failure, or all sites to compare successful launches per site. Narrow the
payload range to see how payload mass relates to the launch outcome for
each booster version category.

The dataset is a CSV file with at least the columns "Launch Site",
"Payload Mass (kg)", "Booster Version Category" and "class".
`

var exampleUsage = strings.TrimSpace(`
  launchdash --dataset spacex_launch_dash.csv
  launchdash --config $HOME/.launchdash/config.toml --listen :8050
  launchdash summary --dataset spacex_launch_dash.csv --markdown
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := log.NewConsoleLogger(os.Stderr)

	root := &cobra.Command{
		Use:          "launchdash",
		Short:        "Interactive dashboard for SpaceX launch records",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfgPath, &cfg); err != nil {
				return err
			}

			l, err := cfg.Logger(os.Stderr)
			if err != nil {
				return err
			}
			logger = l
			logger.Info().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return launchdash.Run(ctx, cfg, logger)
		},
	}

	var markdown bool
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print launch counts and payload statistics per site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, cfgPath, &cfg); err != nil {
				return err
			}
			if err := log.SetLevel(cfg.LogLevel); err != nil {
				return err
			}

			loader := fs.NewCSVLoader(cfg.DatasetPath, log.NewZerologAdapterWithLogger(logger))
			ds, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}

			mode := summary.ASCII
			if markdown {
				mode = summary.Markdown
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary.Render(summary.Compute(ds, cfg.SiteList()), mode))
			return nil
		},
	}
	summaryCmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown table")
	root.AddCommand(summaryCmd)

	// Shared flags
	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.launchdash/config.toml)")
	pf.StringVar(&cfg.DatasetPath, "dataset", cfg.DatasetPath, "launch records CSV file")
	pf.StringArrayVar(&cfg.Sites, "site", cfg.Sites, "launch site offered by the selector, repeatable (default: sites found in the dataset)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	// Server flags
	f := root.Flags()
	f.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address to serve the dashboard on")
	f.StringVar(&cfg.Title, "title", cfg.Title, "page heading")
	f.Float64Var(&cfg.PayloadStep, "payload-step", cfg.PayloadStep, "payload range selector step in kg")
	f.IntVar(&cfg.ChartWidth, "chart-width", cfg.ChartWidth, "chart width in pixels")
	f.IntVar(&cfg.ChartHeight, "chart-height", cfg.ChartHeight, "chart height in pixels")
	f.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP request read timeout")
	f.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "time allowed for in-flight requests on shutdown")
	f.BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload the log level when the config file changes")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("launchdash")
		os.Exit(1)
	}
}

// loadConfig applies the config file and LAUNCHDASH_* environment on top of
// the flag values, then validates. Flags set on the command line win.
func loadConfig(cmd *cobra.Command, cfgPath string, cfg *cliconfig.Config) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgPath != "" && !cliconfig.FileExists(cfgPath) {
		return fmt.Errorf("config file %s not found", cfgPath)
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
		cfg.ConfigPath = cfgFile
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}
