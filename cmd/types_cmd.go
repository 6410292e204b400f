// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/clinnorm/pkg/rules"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Lists the processing types accepted in a mapping specification",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pterm.DefaultTable.
			WithHasHeader().
			WithWriter(cmd.OutOrStdout()).
			WithData(processingTypesTable()).
			Render()
	},
}

func processingTypesTable() pterm.TableData {
	data := pterm.TableData{{"PROCESSING_TYPE", "DESCRIPTION"}}
	for _, ptype := range rules.ProcessingTypes() {
		data = append(data, []string{ptype.String(), ptype.Description()})
	}
	return data
}
