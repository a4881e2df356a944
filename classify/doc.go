// SPDX-License-Identifier: MIT

// Package classify assigns a synthesis role to every column of a table.
//
// The decision tree is ordered, first match wins:
//
//  1. text storage                                   → string
//  2. explicit override                              → that role
//  3. value-label map                                → categorical
//  4. date/time display format                       → date
//  5. ≤ 10 distinct values                           → categorical
//  6. display format with decimals                   → continuous
//  7. ratio > 0.50, or distinct > 50 and ratio > 0.20 → continuous
//  8. ratio < 0.05 and distinct ≤ 30                 → categorical
//  9. whole numbers with ≤ 25 distinct values        → categorical
//  10. otherwise                                     → continuous
//
// ratio is distinct values over non-missing rows. A numeric column with no
// observed value is continuous (and later synthesized as all missing).
//
// Continuous columns that were not overridden are then promoted to integer
// when they are numeric, unlabelled, not date-formatted, have more than 20
// distinct values and hold only whole numbers.
//
// Classify is a pure function of the table and the overrides.
package classify
