// SPDX-License-Identifier: MIT

package tableio

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cast"

	"github.com/katalvlaran/synthdata/table"
)

// OpenSQLite opens and pings a sqlite database.
func OpenSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// LoadSQL runs query and materializes the result set. Columns whose values
// are all driver numbers become numeric, all time.Time become dates, and
// the rest go through the same inference as CSV cells. NULL is missing.
func LoadSQL(ctx context.Context, db *sqlx.DB, query string, args ...any) (*table.Table, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	names, err := headerNames(header)
	if err != nil {
		return nil, err
	}

	values := make([][]any, len(names))
	for rows.Next() {
		rec := make(map[string]any, len(header))
		if err := rows.MapScan(rec); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for j, h := range header {
			values[j] = append(values[j], rec[h])
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	cols := make([]*table.Column, len(names))
	for j, name := range names {
		if cols[j], err = sqlColumn(name, values[j]); err != nil {
			return nil, err
		}
	}

	return table.New(cols...)
}

func sqlColumn(name string, vals []any) (*table.Column, error) {
	native, dates := true, true
	for _, v := range vals {
		switch v.(type) {
		case nil:
		case int64, int32, int, float64, float32, bool:
			dates = false
		case time.Time:
			native = false
		default:
			native, dates = false, false
		}
	}

	switch {
	case native:
		num := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				num[i] = math.NaN()
				continue
			}
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, fmt.Errorf("%q row %d: %w", name, i+1, err)
			}
			num[i] = f
		}
		return table.NewNumeric(name, num), nil
	case dates:
		num := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				num[i] = math.NaN()
				continue
			}
			num[i] = float64(DayNumber(v.(time.Time)))
		}
		c := table.NewNumeric(name, num)
		c.Format = table.DateFormat
		return c, nil
	}

	cells := make([]string, len(vals))
	for i, v := range vals {
		var err error
		switch x := v.(type) {
		case nil:
		case time.Time:
			cells[i] = x.Format("2006-01-02")
		default:
			if cells[i], err = cast.ToStringE(x); err != nil {
				return nil, fmt.Errorf("%q row %d: %w", name, i+1, err)
			}
		}
	}

	return infer(name, cells, map[string]bool{"": true}), nil
}
