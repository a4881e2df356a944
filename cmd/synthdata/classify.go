// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/synthdata/classify"
)

func newClassifyCmd() *cobra.Command {
	var roles []string
	cmd := &cobra.Command{
		Use:   "classify <input>",
		Short: "Print the role assigned to every column and the rule that chose it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, hints, err := loadSource(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}
			overrides, err := parseRoles(roles)
			if err != nil {
				return err
			}
			for name, r := range hints {
				if _, set := overrides[name]; !set {
					overrides[name] = r
				}
			}

			res := classify.Classify(src, overrides)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "column\trole\tdistinct\tratio\trule")
			for _, d := range res.Decisions {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%s\n", d.Column, d.Role, d.Unique, d.Ratio, d.Rule)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role overrides as column=role")

	return cmd
}
