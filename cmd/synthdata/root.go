// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/synthdata/table"
	"github.com/katalvlaran/synthdata/tableio"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "synthdata",
		Short:         "Synthesize tabular data that resembles a source table.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "development logging at debug level")
	root.PersistentFlags().String("meta", "", "YAML sidecar with labels, formats and role hints")
	root.PersistentFlags().String("db", "", "sqlite database; the input argument is then a query")

	root.AddCommand(newRunCmd(), newClassifyCmd(), newConfigCmd())

	return root
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// loadSource reads the input argument as a file, or as a query when --db is
// set, and applies the sidecar. It returns the sidecar role hints.
func loadSource(ctx context.Context, cmd *cobra.Command, input string) (*table.Table, map[string]table.Role, error) {
	dsn, _ := cmd.Flags().GetString("db")
	var (
		src *table.Table
		err error
	)
	if dsn != "" {
		db, oerr := tableio.OpenSQLite(ctx, dsn)
		if oerr != nil {
			return nil, nil, oerr
		}
		defer db.Close()
		src, err = tableio.LoadSQL(ctx, db, input)
	} else {
		src, err = tableio.LoadCSV(input)
	}
	if err != nil {
		return nil, nil, err
	}

	metaPath, _ := cmd.Flags().GetString("meta")
	if metaPath == "" {
		return src, nil, nil
	}
	meta, err := tableio.LoadMeta(metaPath)
	if err != nil {
		return nil, nil, err
	}
	if err := meta.Apply(src); err != nil {
		return nil, nil, err
	}
	roles, err := meta.Roles()
	if err != nil {
		return nil, nil, err
	}

	return src, roles, nil
}

// parseRoles reads "col=role" pairs.
func parseRoles(pairs []string) (map[string]table.Role, error) {
	out := make(map[string]table.Role, len(pairs))
	for _, p := range pairs {
		name, role, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("--role %q: want column=role", p)
		}
		r, err := table.ParseRole(strings.TrimSpace(role))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(name)] = r
	}

	return out, nil
}

// sidecarPath is where the metadata of output path is written.
func sidecarPath(path string) string {
	ext := ""
	if i := strings.LastIndexByte(path, '.'); i > strings.LastIndexAny(path, `/\`) {
		ext = path[i:]
	}

	return strings.TrimSuffix(path, ext) + ".meta.yaml"
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", path, err)
	}

	return f, nil
}
