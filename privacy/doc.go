// SPDX-License-Identifier: MIT

// Package privacy holds the disclosure-control steps that run on a finished
// synthetic table: replication of the source missingness and a
// nearest-neighbour distance check against the source records.
//
// Neither step is a formal privacy guarantee. The distance check is a
// heuristic report, not a filter.
package privacy
