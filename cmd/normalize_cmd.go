// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/clinnorm/cmd/config"
	"github.com/xataio/clinnorm/internal/progress"
	"github.com/xataio/clinnorm/pkg/cleanup"
)

var normalizeCmd = &cobra.Command{
	Use:     "normalize",
	Short:   "Cleans a clinical data file and normalizes its attributes with the provided mapping specification",
	PreRunE: normalizeFlagBinding,
	RunE:    withProfiling(withSignalWatcher(normalize)),
	Example: `
	clinnorm normalize --clinical-file data_clinical.txt --map-file mapping.txt
	clinnorm normalize --clinical-file data_clinical.txt -m mapping.yaml -d output/ -g
	clinnorm normalize --clinical-file data_clinical.txt -m mapping.txt --workers 4 --progress
	clinnorm normalize --config config.yaml --log-level debug
	clinnorm normalize --config config.env --json`,
}

func normalize(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger()

	cleanupConfig, err := config.ParseCleanupConfig()
	if err != nil {
		return fmt.Errorf("parsing cleanup config: %w", err)
	}

	provider, err := newInstrumentationProvider()
	if err != nil {
		return err
	}
	defer provider.Close()

	opts := []cleanup.Option{}
	var sp *pterm.SpinnerPrinter
	if flagValue(cmd.Flags(), "progress") == trueStr {
		opts = append(opts, cleanup.WithProgressBar(func(total int) progress.Bar {
			return progress.NewSamplesBar(total, "normalizing samples", os.Stderr)
		}))
	} else {
		sp, _ = pterm.DefaultSpinner.WithText("normalizing clinical data...").Start()
	}

	result, err := cleanup.Run(ctx, logger, cleanupConfig, provider.NewInstrumentation("normalize"), opts...)
	if err != nil {
		if sp != nil {
			sp.Fail(err.Error())
		}
		return err
	}
	if sp != nil {
		sp.Success("clinical data normalized")
	}

	if err := print(cmd, result); err != nil {
		return fmt.Errorf("failed to format cleanup result: %w", err)
	}
	return nil
}

func normalizeFlagBinding(cmd *cobra.Command, _ []string) error {
	// to be able to overwrite configuration with flags when yaml config file is
	// provided
	yamlBindings := map[string]string{
		"clinical-file":       "input.clinical_file",
		"output-directory":    "output.directory",
		"map-file":            "mapping.map_file",
		"genomic-alterations": "genomic_alterations.enabled",
		"mutations-file":      "genomic_alterations.mutations_file",
		"workers":             "workers",
	}
	for flag, key := range yamlBindings {
		if cmd.Flags().Lookup(flag).Changed {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
		}
	}

	// to be able to overwrite configuration with flags when env config file is
	// provided or when no configuration is provided
	viper.BindPFlag("CLINNORM_CLINICAL_FILE", cmd.Flags().Lookup("clinical-file"))
	viper.BindPFlag("CLINNORM_OUTPUT_DIRECTORY", cmd.Flags().Lookup("output-directory"))
	viper.BindPFlag("CLINNORM_MAP_FILE", cmd.Flags().Lookup("map-file"))
	viper.BindPFlag("CLINNORM_GENOMIC_ALTERATIONS_ENABLED", cmd.Flags().Lookup("genomic-alterations"))
	viper.BindPFlag("CLINNORM_MUTATIONS_FILE", cmd.Flags().Lookup("mutations-file"))
	viper.BindPFlag("CLINNORM_WORKERS", cmd.Flags().Lookup("workers"))
	return nil
}
