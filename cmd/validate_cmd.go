// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/clinnorm/cmd/config"
	"github.com/xataio/clinnorm/pkg/cleanup"
)

// parent command for validation subcommands
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate different parts of the clinnorm configuration",
}

var (
	errNoMapFile    = errors.New("mapping file is required for rules validation")
	errInvalidRules = errors.New("invalid mapping rules")
)

var validateRulesCmd = &cobra.Command{
	Use:     "rules",
	Short:   "Validates that the mapping specification builds a consistent rule table",
	PreRunE: validateRulesFlagBinding,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, _ := pterm.DefaultSpinner.WithText("validating clinnorm mapping rules...").Start()

		err := func() error {
			cleanupConfig, err := config.ParseCleanupConfig()
			if err != nil {
				return fmt.Errorf("parsing cleanup config: %w", err)
			}

			if cleanupConfig.Mapping == nil || cleanupConfig.Mapping.MapFile == "" {
				return errNoMapFile
			}

			rulesStatus := cleanup.ValidateRules(newLogger(), cleanupConfig.Mapping.MapFile)
			if rulesStatus.Valid {
				sp.Success("mapping rules are valid")
			} else {
				sp.Warning("clinnorm validation check identified issues: ", strings.Join(rulesStatus.Errors, ", "))
			}

			if err := print(cmd, rulesStatus); err != nil {
				return fmt.Errorf("failed to format clinnorm validation status: %w", err)
			}

			if !rulesStatus.Valid {
				return errInvalidRules
			}
			return nil
		}()
		if err != nil && !errors.Is(err, errInvalidRules) {
			sp.Fail(err.Error())
		}

		return err
	},
	Example: `
	clinnorm validate rules -m mapping.txt
	clinnorm validate rules -c config.env
	clinnorm validate rules -c config.yaml --json
	`,
}

func validateRulesFlagBinding(cmd *cobra.Command, _ []string) error {
	// to be able to overwrite configuration with flags when yaml config file is
	// provided
	if cmd.Flags().Lookup("map-file").Changed {
		viper.BindPFlag("mapping.map_file", cmd.Flags().Lookup("map-file"))
	}

	// to be able to overwrite configuration with flags when env config file is
	// provided or when no configuration is provided
	viper.BindPFlag("CLINNORM_MAP_FILE", cmd.Flags().Lookup("map-file"))
	return nil
}
