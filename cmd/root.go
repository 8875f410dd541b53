package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/statsctl/internal/config"
	"github.com/KaramelBytes/statsctl/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Input flags (override config if set)
	flagDelimiter  string
	flagMaxRows    int
	flagWorkers    int
	flagSheetName  string
	flagSheetIndex int
	flagStrict     bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Per-invocation logger, annotated with the run ID
	logger = zap.NewNop()
	runID  string
)

var rootCmd = &cobra.Command{
	Use:   "statsctl",
	Short: "statsctl: quick statistics for CSV, TSV and XLSX files",
	Long: `statsctl loads a delimited text file or workbook, infers column types and
reports descriptive statistics, missing data, correlations, type summaries,
terminal plots and dataset comparisons.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = setup
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.statsctl/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "maximum data rows to load (0 = unlimited)")
	pf.IntVar(&flagWorkers, "workers", 0, "parallel workers for per-column work (0 = number of CPUs)")
	pf.StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name to read")
	pf.IntVar(&flagSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	pf.BoolVar(&flagStrict, "strict", false, "reject rows with more fields than the header instead of truncating")
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	// STATSCTL_* settings may come from a .env file in the working directory
	_ = godotenv.Load()
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so `config set` can repair a bad file
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("delimiter") {
		if _, err := cfgpkg.ParseDelimiter(flagDelimiter); err != nil {
			return fmt.Errorf("unsupported --delimiter: %w", err)
		}
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("max-rows") {
		if flagMaxRows < 0 {
			return fmt.Errorf("--max-rows must be >= 0")
		}
		cfg.MaxRows = flagMaxRows
	}
	if f.Changed("workers") {
		if flagWorkers < 0 {
			return fmt.Errorf("--workers must be >= 0")
		}
		cfg.Workers = flagWorkers
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	base, err := logging.NewWithWriter(logging.Config{Level: level, Encoding: cfg.LogEncoding}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	runID = uuid.NewString()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, runID)
	cmd.SetContext(ctx)
	logger = logging.FromContext(ctx, base).With(zap.String("command", cmd.Name()))
	logger.Debug("configuration loaded",
		zap.String("config_file", cfgFile),
		zap.Int("workers", cfg.Workers),
		zap.Int("max_rows", cfg.MaxRows),
		zap.String("delimiter", cfg.Delimiter))
	return nil
}
