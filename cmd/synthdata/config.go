// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/synthdata/config"
)

func newConfigCmd() *cobra.Command {
	var env bool
	cmd := &cobra.Command{
		Use:   "config [file]",
		Short: "Validate a run configuration and print it as resolved with the environment.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if env {
				u, err := config.Usage()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), u)
				return nil
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			f, err := config.Load(path)
			if err != nil {
				return err
			}
			if _, err := f.ToSynthesis(); err != nil {
				return err
			}

			return f.Write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&env, "env", false, "list the environment variables instead")

	return cmd
}
