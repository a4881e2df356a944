// SPDX-License-Identifier: MIT

// Command synthdata synthesizes a table that resembles a CSV, TSV or sqlite
// source without reproducing its records.
//
//	synthdata run people.csv -o synthetic.csv --n 1000 --seed 42 --compare
//	synthdata classify people.csv --meta people.meta.yaml
//	synthdata config synth.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
