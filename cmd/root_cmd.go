// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xataio/clinnorm/cmd/config"
	"github.com/xataio/clinnorm/internal/log/zerolog"
	"github.com/xataio/clinnorm/internal/profiling"
	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/otel"
	"github.com/xataio/clinnorm/pkg/study"
)

// Version is the clinnorm version
var (
	Version = "development"
	Env     string
)

const trueStr = "true"

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "clinnorm",
		Short:        "Cleans and normalizes clinical study data against a mapping specification",
		SilenceUsage: true,
		Version:      version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			return nil
		},
	}

	// configuration keys already carry the CLINNORM_ prefix
	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with clinnorm if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().String("log-format", "console", "log output format. One of console, json")

	// normalize cmd
	normalizeCmd.Flags().String("clinical-file", "", "Clinical data file to normalize")
	normalizeCmd.Flags().StringP("output-directory", "d", "", "Directory where the processed file is written. Defaults to the clinical file directory")
	normalizeCmd.Flags().StringP("map-file", "m", "", "Mapping specification file (.txt, .tsv or .yaml) used to normalize the attributes")
	normalizeCmd.Flags().BoolP("genomic-alterations", "g", false, "Whether to add the number of genomic alterations of every sample")
	normalizeCmd.Flags().String("mutations-file", "", "Mutation file used to count genomic alterations. Defaults to data_mutations_extended.txt next to the clinical file")
	normalizeCmd.Flags().Int("workers", 0, "Number of samples normalized concurrently")
	normalizeCmd.Flags().Bool("progress", false, "Whether to display a progress bar while normalizing samples")
	normalizeCmd.Flags().Bool("profile", false, "Whether to produce CPU and memory profile files in the profile directory")
	normalizeCmd.Flags().String("profile-directory", ".", "Directory where the profile files are written")
	normalizeCmd.Flags().Bool("json", false, "Output the result in JSON format")

	// validate cmd
	// validate rules cmd
	validateRulesCmd.Flags().StringP("map-file", "m", "", "Mapping specification file to validate")
	validateRulesCmd.Flags().Bool("json", false, "Output the validation status in JSON format")
	validateCmd.AddCommand(validateRulesCmd)

	// sequenced samples cmd
	sequencedSamplesCmd.Flags().StringP("source-file", "s", "", "File holding the sequenced sample ids (mutation or clinical file)")
	sequencedSamplesCmd.Flags().StringP("maf-file", "m", "", "Mutation file to tag with the sequenced samples")
	sequencedSamplesCmd.Flags().StringP("output-directory", "d", ".", "Directory where the tagged mutation file is written")
	sequencedSamplesCmd.Flags().Bool("json", false, "Output the result in JSON format")
	sequencedSamplesCmd.MarkFlagRequired("source-file")
	sequencedSamplesCmd.MarkFlagRequired("maf-file")

	// subset cmd
	subsetCmd.Flags().StringP("subset-file", "f", "", "File listing the sample ids of the subset, one per line")
	subsetCmd.Flags().StringP("subset-identifier", "s", study.DefaultSubsetID, "Suffix appended to the filtered files")
	subsetCmd.Flags().StringP("input-directory", "i", ".", "Study directory to filter")
	subsetCmd.Flags().Bool("json", false, "Output the result in JSON format")
	subsetCmd.MarkFlagRequired("subset-file")

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(sequencedSamplesCmd)
	rootCmd.AddCommand(subsetCmd)
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

// withSignalWatcher cancels the command context on the first interrupt or
// termination signal.
func withSignalWatcher(fn func(ctx context.Context, cmd *cobra.Command) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(),
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer cancel()
		return fn(ctx, cmd)
	}
}

func withProfiling(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if flagValue(cmd.Flags(), "profile") != trueStr {
			return fn(cmd, args)
		}

		profile, err := profiling.Start(flagValue(cmd.Flags(), "profile-directory"))
		if err != nil {
			return err
		}
		defer func() {
			if stopErr := profile.Stop(); stopErr != nil && err == nil {
				err = stopErr
			}
		}()

		return fn(cmd, args)
	}
}

func flagValue(flags *pflag.FlagSet, name string) string {
	return flags.Lookup(name).Value.String()
}

func rootFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("CLINNORM_LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("CLINNORM_LOG_FORMAT", cmd.PersistentFlags().Lookup("log-format"))
}

// newLogger sets up the process wide logger from the log flags and returns
// it wrapped for the clinnorm packages.
func newLogger() loglib.Logger {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: config.LogLevel(),
		JSON:     viper.GetString("CLINNORM_LOG_FORMAT") == "json",
		Out:      os.Stderr,
	})
	zerolog.SetGlobalLogger(logger)
	return zerolog.NewStdLogger(logger)
}

func version() string {
	if Env != "" {
		return Env + " (" + Version + ")"
	}
	return Version
}

func newInstrumentationProvider() (otel.InstrumentationProvider, error) {
	cfg, err := config.ParseInstrumentationConfig()
	if err != nil {
		return nil, fmt.Errorf("parsing instrumentation config: %w", err)
	}

	p, err := otel.NewInstrumentationProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialising instrumentation provider: %w", err)
	}
	return p, nil
}
