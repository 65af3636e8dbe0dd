package unitconv

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// OpenCatalogSQLite opens a catalog database read-only and builds a validated
// catalog from it.
func OpenCatalogSQLite(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", SQLiteDSN(path, "ro"))
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadCatalogSQLite(ctx, db)
}

// SQLiteDSN builds a file: URI for path opened with the given sqlite mode
// (ro, rw, rwc). Path segments are percent-escaped so names containing '?',
// '#' or '%' address the file literally.
func SQLiteDSN(path, mode string) string {
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return "file:" + strings.Join(segs, "/") + "?mode=" + mode
}

func initCatalogSchema(ctx context.Context, tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS units (
			name TEXT PRIMARY KEY,
			category_id TEXT NOT NULL REFERENCES categories(id),
			factor REAL NOT NULL,
			position INTEGER NOT NULL
		);`,
	}
	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// SaveCatalogSQLite replaces the catalog tables in db with c.
func SaveCatalogSQLite(ctx context.Context, db *sql.DB, c *Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := initCatalogSchema(ctx, tx); err != nil {
		return fmt.Errorf("init catalog schema: %w", err)
	}
	for _, q := range []string{`DELETE FROM units;`, `DELETE FROM categories;`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	for i, cat := range c.categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (id, position) VALUES (?, ?)`, string(cat), i); err != nil {
			return fmt.Errorf("insert category %s: %w", cat, err)
		}
		for j, u := range c.units[cat] {
			_, err := tx.ExecContext(ctx, `INSERT INTO units (name, category_id, factor, position) VALUES (?, ?, ?, ?)`,
				u.Name, string(cat), u.Factor, j)
			if err != nil {
				return fmt.Errorf("insert unit %s: %w", u.Name, err)
			}
		}
	}
	return tx.Commit()
}

// LoadCatalogSQLite reads the tables written by SaveCatalogSQLite and
// validates them with NewCatalog.
func LoadCatalogSQLite(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, `SELECT c.id, u.name, u.factor
		FROM categories c JOIN units u ON u.category_id = c.id
		ORDER BY c.position, u.position`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var defs []CategoryDef
	for rows.Next() {
		var (
			cat string
			ud  UnitDef
		)
		if err := rows.Scan(&cat, &ud.Name, &ud.Factor); err != nil {
			return nil, err
		}
		if n := len(defs); n == 0 || defs[n-1].Category != Category(cat) {
			defs = append(defs, CategoryDef{Category: Category(cat)})
		}
		defs[len(defs)-1].Units = append(defs[len(defs)-1].Units, ud)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewCatalog(defs)
}
