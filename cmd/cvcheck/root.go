package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/audit"
	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/config"
	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/exporter"
)

var (
	flagConfig     string
	flagReports    string
	flagPDFRoot    string
	flagOutput     string
	flagOutputName string
	flagDate       string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cvcheck",
	Short: "Check equipment PDFs against the CompositeView/Substation diff reports",
	Long: `cvcheck validates that the CompositeView and Substation diff reports are
fresh (dated within the last five weekdays), merges them, filters for
Circuit Breaker and Switch equipment, and checks each equipment name
against the offline PDF tree. The result is written as a single table
listing every equipment with its PDF status and resolved path.

Paths default to the ADMS data-engineering shares and can be overridden
via config.toml, CVCHECK_* environment variables, or flags.`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config.toml (default: next to the executable)")
	rootCmd.Flags().StringVar(&flagReports, "diffreport", "", "folder holding the diff report CSVs")
	rootCmd.Flags().StringVar(&flagPDFRoot, "pdf-path", "", "base path to search for PDF files")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for the result table")
	rootCmd.Flags().StringVar(&flagOutputName, "output-filename", "", "output filename, .csv or .xlsx (default: _CVOfflineCheck.csv)")
	rootCmd.Flags().StringVar(&flagDate, "date", "", "reference date override, YYYY-MM-DD (default: today)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagVerbose)
	defer logger.Sync()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagReports != "" {
		cfg.Paths.ReportsDir = flagReports
	}
	if flagPDFRoot != "" {
		cfg.Paths.PDFRoot = flagPDFRoot
	}
	if flagOutput != "" {
		cfg.Output.Dir = flagOutput
	}
	if flagOutputName != "" {
		cfg.Output.Filename = flagOutputName
	}

	ref := time.Now()
	if flagDate != "" {
		ref, err = time.Parse("2006-01-02", flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", flagDate, err)
		}
	}

	fmt.Println("================================================================================")
	fmt.Println("PDF STATUS CHECK")
	fmt.Println("================================================================================")
	fmt.Printf("DiffReport folder: %s\n", cfg.Paths.ReportsDir)
	fmt.Printf("PDF base path:     %s\n", cfg.Paths.PDFRoot)
	fmt.Printf("Output:            %s\n", filepath.Join(cfg.Output.Dir, cfg.Output.Filename))
	fmt.Printf("Reference date:    %s\n", ref.Format("2006-01-02"))

	if _, err := os.Stat(cfg.Paths.ReportsDir); err != nil {
		return fmt.Errorf("DiffReport folder not accessible: %w", err)
	}
	if _, err := os.Stat(cfg.Paths.PDFRoot); err != nil {
		// The check can still run; every PDF will come back missing.
		fmt.Printf("WARNING: PDF base path not accessible: %v\n", err)
		logger.Warn("pdf base path not accessible",
			zap.String("path", cfg.Paths.PDFRoot), zap.Error(err))
	}

	outDir, err := config.EnsureOutputDir(cfg)
	if err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}
	outPath := filepath.Join(outDir, cfg.Output.Filename)

	pipeline := audit.New(audit.Options{
		ReportsDir:    cfg.Paths.ReportsDir,
		SearchRoot:    cfg.Paths.PDFRoot,
		ReferenceDate: ref,
		Progress:      printProgress,
	}, logger)

	result, err := pipeline.Run()
	if err != nil {
		fmt.Printf("\nVALIDATION FAILED: %v\n", err)
		return err
	}

	if err := exporter.Write(result, outPath); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	printSummary(result, outPath)
	return nil
}

// printProgress mirrors the pipeline's synchronous events on the console.
func printProgress(e audit.Event) {
	switch e.Type {
	case audit.EventStart:
		fmt.Printf("\n%s\n", e.Message)
	case audit.EventReport:
		fmt.Printf("  %s\n", e.Message)
	case audit.EventCheck:
		fmt.Printf("  [%d/%d] Checking: %s\n", e.Index, e.Total, e.Message)
	case audit.EventDone:
		fmt.Printf("\n%s\n", e.Message)
	}
}

func printSummary(result *audit.Result, outPath string) {
	fmt.Println("================================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Printf("Total Equipment Checked: %d\n", result.Summary.Total)
	fmt.Printf("  PDFs Found:   %d (%.1f%%)\n", result.Summary.Exists, result.Summary.ExistsPct)
	fmt.Printf("  PDFs Missing: %d (%.1f%%)\n", result.Summary.Missing, result.Summary.MissingPct)

	if missing := result.MissingEntries(); len(missing) > 0 {
		fmt.Println("\nMissing PDFs:")
		for _, e := range missing {
			fmt.Printf("  - %s (%s)\n", e.Name, e.Type)
		}
	}

	fmt.Println("================================================================================")
	fmt.Printf("Results saved to: %s\n", outPath)
}
