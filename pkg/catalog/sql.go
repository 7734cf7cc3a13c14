// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// Database column names for table-backed catalogs.
const (
	SQLColumnID              = "raw_material_id"
	SQLColumnSimilarityClass = "similarity_index"
	SQLColumnPrice           = "price"
	SQLColumnMeltingPoint    = "melting_point"
	SQLColumnAvailability    = "availability"

	// DefaultTable is the table read when the URI names none.
	DefaultTable = "ingredients"

	driverPostgres = "pgx"
	driverSQLite   = "sqlite"

	pgUndefinedTable = "42P01"
)

var (
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// SQLSource reads a catalog table from Postgres or SQLite. Rows are
// returned in the order the database yields them unless an orderBy
// column is configured.
type SQLSource struct {
	uri     string
	driver  string
	dsn     string
	table   string
	orderBy string
}

// NewSQLSource returns a source reading table through driver ("pgx" or
// "sqlite"). Empty table defaults to DefaultTable.
func NewSQLSource(driver, dsn, table, orderBy string) (*SQLSource, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid catalog table name", map[string]any{"table": table})
	}
	if orderBy != "" && !identRe.MatchString(orderBy) {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid catalog orderBy column", map[string]any{"orderBy": orderBy})
	}
	return &SQLSource{
		uri:     fmt.Sprintf("%s:%s#%s", driver, redactDSN(dsn), table),
		driver:  driver,
		dsn:     dsn,
		table:   table,
		orderBy: orderBy,
	}, nil
}

// newSQLSourceFromURI accepts postgres://...?table=t&orderBy=c and
// sqlite://path?table=t&orderBy=c.
func newSQLSourceFromURI(uri string, scheme Scheme) (*SQLSource, error) {
	u, err := parseURI(uri)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	table := q.Get("table")
	orderBy := q.Get("orderBy")
	q.Del("table")
	q.Del("orderBy")

	var src *SQLSource
	switch scheme {
	case SchemePostgres:
		u.RawQuery = q.Encode()
		src, err = NewSQLSource(driverPostgres, u.String(), table, orderBy)
	case SchemeSQLite:
		path, _, _ := strings.Cut(strings.TrimPrefix(uri, string(SchemeSQLite)+"://"), "?")
		if path == "" {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"invalid SQLite catalog URI: expected sqlite://path", map[string]any{"uri": uri})
		}
		src, err = NewSQLSource(driverSQLite, path, table, orderBy)
	default:
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported SQL scheme %q", scheme), map[string]any{"uri": uri})
	}
	if err != nil {
		return nil, err
	}
	src.uri = redactDSN(uri)
	return src, nil
}

// URI returns the catalog location with credentials removed.
func (s *SQLSource) URI() string { return s.uri }

// Load queries the table and parses every row. A missing table or SQLite
// file is reported as NOT_FOUND.
func (s *SQLSource) Load(ctx context.Context) ([]Ingredient, error) {
	if s.driver == driverSQLite {
		// the driver creates missing files, which would mask a bad path
		if _, err := os.Stat(s.dsn); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, notFound(s.uri, err)
			}
			return nil, withSource(s.uri, err)
		}
	}

	openMu.Lock()
	db, err := sqlOpen(s.driver, s.dsn)
	openMu.Unlock()
	if err != nil {
		return nil, withSource(s.uri, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("failed to close catalog database", "uri", s.uri, "error", cerr)
		}
	}()

	rows, err := db.QueryContext(ctx, s.query())
	if err != nil {
		if isMissingTable(err) {
			return nil, notFound(s.uri, err)
		}
		return nil, withSource(s.uri, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Ingredient
	n := 0
	for rows.Next() {
		n++
		var id, class, price, mp, avail sql.NullString
		if err := rows.Scan(&id, &class, &price, &mp, &avail); err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat,
				"failed to scan catalog row", err, map[string]any{"row": n, "uri": s.uri})
		}
		ing, err := ParseRow(n, Row{
			ID:              id.String,
			SimilarityClass: class.String,
			Price:           price.String,
			MeltingPoint:    mp.String,
			Availability:    avail.String,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, withSource(s.uri, err)
	}

	return out, nil
}

func (s *SQLSource) query() string {
	q := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s",
		SQLColumnID, SQLColumnSimilarityClass, SQLColumnPrice,
		SQLColumnMeltingPoint, SQLColumnAvailability, s.table)
	if s.orderBy != "" {
		q += " ORDER BY " + s.orderBy
	}
	return q
}

func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
