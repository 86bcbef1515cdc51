package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/josecaster/loan-amortization-calculator/internal/calculation"
	"github.com/josecaster/loan-amortization-calculator/internal/config"
	"github.com/josecaster/loan-amortization-calculator/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zerologLogger adapts zerolog to the calculation.Logger interface.
type zerologLogger struct{}

func (zerologLogger) Debugf(format string, args ...any) { log.Debug().Msgf(format, args...) }
func (zerologLogger) Infof(format string, args ...any)  { log.Info().Msgf(format, args...) }
func (zerologLogger) Warnf(format string, args ...any)  { log.Warn().Msgf(format, args...) }
func (zerologLogger) Errorf(format string, args ...any) { log.Error().Msgf(format, args...) }

var rootCmd = &cobra.Command{
	Use:   "loanamort",
	Short: "Loan amortization schedule calculator",
	Long:  "Computes month-by-month amortization schedules for annuity and fixed-interest loans, with early payments, multi-product allocation and tax adjustment",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate the amortization schedule for a loan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugEnabled, _ := cmd.Flags().GetBool("debug")
		if debugEnabled {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}

		parser := config.NewInputParser()
		loan, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewCalculationEngine()
		engine.SetLogger(zerologLogger{})
		result, err := engine.Calculate(loan)
		if err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("format")
		formatter, err := output.NewFormatter(formatName)
		if err != nil {
			return err
		}
		payload, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			_, err = cmd.OutOrStdout().Write(payload)
			return err
		}
		if err := os.WriteFile(outputFile, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		log.Info().Str("file", outputFile).Str("format", formatter.Name()).Msg("schedule written")
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "loanamort %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	calculateCmd.Flags().String("format", "console", "Output format: console, csv or json")
	calculateCmd.Flags().String("output", "", "Write the formatted schedule to a file instead of stdout")
	calculateCmd.Flags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("calculation failed")
		os.Exit(1)
	}
}
