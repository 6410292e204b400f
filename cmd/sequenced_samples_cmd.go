// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/clinnorm/pkg/study"
)

var sequencedSamplesCmd = &cobra.Command{
	Use:   "sequenced-samples",
	Short: "Tags a mutation file with the list of sequenced samples of a source file",
	RunE:  withSignalWatcher(sequencedSamples),
	Example: `
	clinnorm sequenced-samples -s data_mutations_extended.txt -m data_mutations_extended.txt -d output/
	clinnorm sequenced-samples --source-file data_clinical.txt --maf-file data_mutations_extended.txt`,
}

func sequencedSamples(ctx context.Context, cmd *cobra.Command) error {
	sp, _ := pterm.DefaultSpinner.WithText("tagging sequenced samples...").Start()

	processor := study.New(study.WithLogger(newLogger()))
	result, err := processor.TagSequencedSamples(ctx,
		flagValue(cmd.Flags(), "source-file"),
		flagValue(cmd.Flags(), "maf-file"),
		flagValue(cmd.Flags(), "output-directory"))
	if err != nil {
		sp.Fail(err.Error())
		return err
	}
	sp.Success(fmt.Sprintf("%d sequenced samples tagged", len(result.Samples)))

	return print(cmd, result)
}
