// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/xataio/clinnorm/pkg/study"
)

var subsetCmd = &cobra.Command{
	Use:   "subset",
	Short: "Filters the files of a study directory down to a subset of samples",
	RunE:  withSignalWatcher(subset),
	Example: `
	clinnorm subset -f subset.txt -i study/
	clinnorm subset --subset-file subset.txt --input-directory study/ --subset-identifier cohort_a --json`,
}

func subset(ctx context.Context, cmd *cobra.Command) error {
	sp, _ := pterm.DefaultSpinner.WithText("filtering study by subset...").Start()

	processor := study.New(study.WithLogger(newLogger()))
	result, err := processor.FilterBySubset(ctx, &study.SubsetConfig{
		SubsetFile:     flagValue(cmd.Flags(), "subset-file"),
		InputDirectory: flagValue(cmd.Flags(), "input-directory"),
		SubsetID:       flagValue(cmd.Flags(), "subset-identifier"),
	})
	if err != nil {
		sp.Fail(err.Error())
		return err
	}

	if errs := result.GetErrors(); len(errs) == 0 {
		sp.Success("study filtered")
	} else {
		skipped := make([]string, 0, len(errs))
		for file := range errs {
			skipped = append(skipped, file)
		}
		slices.Sort(skipped)
		sp.Warning("subset skipped ", strings.Join(skipped, ", "))
	}

	return print(cmd, result)
}
