// SPDX-License-Identifier: MIT

// Package synthdata synthesizes tabular datasets that statistically resemble
// a source table (distributions, correlations, panel structure, missingness)
// without reproducing any source record.
//
// Everything is organized as small root-level packages:
//
//	table/        column-oriented Table, Column, Role; NaN / "" as missing
//	matrix/       dense matrices, Cholesky, correlation, ridge regularization
//	rng/          seedable random streams, replicate seeds, Normal/Gamma/NegBinomial draws
//	stats/        moments, quantiles, ECDF, frequency tables, OLS, Cramér's V, ICC
//	classify/     ordered decision tree assigning a role to every column
//	profile/      skewness/kurtosis profiles; empirical vs parametric partition
//	detect/       derived-variable search and categorical-association pairing
//	generate/     parametric, empirical (copula), sequential, bootstrap, permutation, adaptive
//	panel/        rows-per-unit model, unit expansion, random effects, trend
//	constraint/   bounds, no-extreme buffer, auto and user constraints, date ordering
//	privacy/      missingness replication, nearest-record distance check
//	diagnostics/  metadata restoration and original-vs-synthetic comparison
//	synth/        the pipeline; Engine.Run and Engine.RunReplicates
//	config/       YAML + SYNTH_* environment configuration
//	tableio/      CSV/TSV and sqlite loaders, CSV writer, YAML metadata sidecar
//	cmd/synthdata  command-line front end
//
// A minimal run:
//
//	src, _ := tableio.LoadCSV("people.csv")
//	cfg := synth.DefaultConfig()
//	cfg.N, cfg.Seed = 1000, 42
//	res, err := synth.New().Run(src, cfg)
package synthdata
