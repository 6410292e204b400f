// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xataio/clinnorm/internal/json"
)

type printer interface {
	PrettyPrint() string
}

func print(cmd *cobra.Command, p printer) error {
	str := p.PrettyPrint()
	if flagValue(cmd.Flags(), "json") == trueStr {
		jsonData, err := json.MarshalIndent(p)
		if err != nil {
			return err
		}
		str = string(jsonData)
	}

	fmt.Fprintln(cmd.OutOrStdout(), str)
	return nil
}
