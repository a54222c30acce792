package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jcroyoaun/compamx/internal/compare"
	"github.com/jcroyoaun/compamx/internal/config"
	"github.com/jcroyoaun/compamx/internal/domain"
	"github.com/jcroyoaun/compamx/internal/fiscal"
	"github.com/jcroyoaun/compamx/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type app struct {
	settings       *Settings
	logger         *zap.Logger
	store          *fiscal.Store
	source         *fiscal.PostgresSource
	fiscalOverride string
}

// loadFiscal fills the store from Postgres when a database URL is
// configured, otherwise from the fiscal YAML file. An explicit --fiscal
// flag wins over both.
func (a *app) loadFiscal(ctx context.Context) error {
	if a.fiscalOverride != "" {
		fy, err := fiscal.LoadFile(a.fiscalOverride)
		if err != nil {
			return err
		}
		return a.store.Load(fy)
	}
	if a.settings.DatabaseURL != "" {
		source, err := fiscal.OpenPostgres(ctx, a.settings.DatabaseURL)
		if err != nil {
			return err
		}
		a.source = source
		fy, err := source.ActiveFiscalYear(ctx)
		if err != nil {
			return err
		}
		return a.store.Load(fy)
	}

	fy, err := fiscal.LoadFile(a.settings.FiscalFile)
	if err != nil {
		return err
	}
	return a.store.Load(fy)
}

func (a *app) close() {
	if a.source != nil {
		a.source.Close()
	}
	_ = a.logger.Sync()
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	logger, err := initializeLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return nil, err
	}
	override, _ := cmd.Flags().GetString("fiscal")
	return &app{
		settings:       settings,
		logger:         logger,
		store:          fiscal.NewStore(logger),
		fiscalOverride: override,
	}, nil
}

func (a *app) runComparison(ctx context.Context, pkgs []domain.PackageInput, format string) error {
	fy, err := a.store.Active()
	if err != nil {
		return err
	}

	engine := compare.NewEngine(fy, a.logger)
	set, err := engine.Compare(ctx, pkgs)
	if err != nil {
		return err
	}

	formatter, err := output.ByName(format)
	if err != nil {
		return err
	}
	rendered, err := formatter.Format(set)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, rendered)
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "compamx",
	Short: "Mexican compensation package calculator",
	Long:  "Take-home pay calculator and comparator for Mexican employment offers",
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the packages in an offers file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if err := a.loadFiscal(ctx); err != nil {
			return err
		}

		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		return a.runComparison(ctx, req.Packages, format)
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate the breakdown of one package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if err := a.loadFiscal(ctx); err != nil {
			return err
		}

		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("package")
		pkgs := req.Packages
		if name != "" {
			pkgs = nil
			for _, pkg := range req.Packages {
				if pkg.Name == name {
					pkgs = []domain.PackageInput{pkg}
					break
				}
			}
			if pkgs == nil {
				return fmt.Errorf("package %q not found in %s", name, args[0])
			}
		} else if len(req.Packages) > 1 {
			return fmt.Errorf("file has %d packages, pick one with --package", len(req.Packages))
		}

		format, _ := cmd.Flags().GetString("format")
		return a.runComparison(ctx, pkgs, format)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an offers file and the fiscal tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.loadFiscal(cmd.Context()); err != nil {
			return fmt.Errorf("fiscal tables: %w", err)
		}
		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		fy, _ := a.store.Active()
		fmt.Fprintf(os.Stdout, "OK: %d packages, fiscal year %d\n", len(req.Packages), fy.Year)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the current exchange rate and UMA values",
	Long:  "Fetches USD/MXN from Banxico and the UMA from INEGI, updating the database when one is configured. With --daemon, keeps refreshing on a schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if err := a.loadFiscal(ctx); err != nil {
			return err
		}

		refresher, err := fiscal.NewRefresher(
			a.store,
			a.source,
			fiscal.NewBanxicoClient(a.settings.BanxicoToken, a.logger),
			fiscal.NewINEGIClient(a.settings.INEGIToken, a.logger),
			fiscal.RefresherConfig{
				BanxicoSchedule: a.settings.BanxicoSchedule,
				INEGISchedule:   a.settings.INEGISchedule,
				Timezone:        a.settings.Timezone,
			},
			a.logger,
		)
		if err != nil {
			return err
		}

		if err := refresher.RunOnce(ctx); err != nil {
			return err
		}

		daemon, _ := cmd.Flags().GetBool("daemon")
		if !daemon {
			fy, _ := a.store.Active()
			fmt.Fprintf(os.Stdout, "USD/MXN: %s  UMA (daily): %s\n",
				fy.USDMXNRate.StringFixed(4), fy.UMADaily.StringFixed(2))
			return nil
		}

		refresher.Start()
		defer refresher.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "compamx %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintln(os.Stdout, bi.Main.Path)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("fiscal", "", "fiscal tables YAML file, overrides settings and database")
	compareCmd.Flags().String("format", "table", "output format: table, json or csv")
	calculateCmd.Flags().String("format", "table", "output format: table, json or csv")
	calculateCmd.Flags().String("package", "", "name of the package to calculate")
	refreshCmd.Flags().Bool("daemon", false, "keep refreshing on the configured schedule")

	rootCmd.AddCommand(compareCmd, calculateCmd, validateCmd, refreshCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
