package arxivtex

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Index is a local SQLite database of table records with a full-text index
// over captions and referencing paragraphs.
type Index struct {
	path string
	db   *sql.DB
	fts  bool
}

// IndexedTable is a table record stored in the index.
type IndexedTable struct {
	TableRecord
	Year    int
	PaperID string
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	idx := &Index{path: path, db: db}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return idx, nil
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// HasFTS reports whether full-text search is available.
func (x *Index) HasFTS() bool {
	return x.fts
}

func (x *Index) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tables (
		year        INTEGER NOT NULL,
		label       TEXT NOT NULL,
		filename    TEXT NOT NULL DEFAULT '',
		paper_id    TEXT NOT NULL DEFAULT '',
		caption     TEXT NOT NULL DEFAULT '',
		content     TEXT NOT NULL DEFAULT '',
		paragraphs  TEXT NOT NULL DEFAULT '[]',
		ref_count   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (year, label)
	);
	CREATE INDEX IF NOT EXISTS tables_paper_id ON tables(paper_id);
	CREATE INDEX IF NOT EXISTS tables_ref_count ON tables(ref_count);
	`
	if _, err := x.db.Exec(schema); err != nil {
		return err
	}

	// Upserts fire the update trigger; REPLACE would skip the delete trigger.
	ftsSchema := `
	CREATE VIRTUAL TABLE IF NOT EXISTS tables_fts USING fts5(
		caption,
		paragraphs,
		content='tables',
		content_rowid='rowid'
	);

	CREATE TRIGGER IF NOT EXISTS tables_ai AFTER INSERT ON tables BEGIN
		INSERT INTO tables_fts(rowid, caption, paragraphs)
		VALUES (NEW.rowid, NEW.caption, NEW.paragraphs);
	END;

	CREATE TRIGGER IF NOT EXISTS tables_ad AFTER DELETE ON tables BEGIN
		INSERT INTO tables_fts(tables_fts, rowid, caption, paragraphs)
		VALUES ('delete', OLD.rowid, OLD.caption, OLD.paragraphs);
	END;

	CREATE TRIGGER IF NOT EXISTS tables_au AFTER UPDATE ON tables BEGIN
		INSERT INTO tables_fts(tables_fts, rowid, caption, paragraphs)
		VALUES ('delete', OLD.rowid, OLD.caption, OLD.paragraphs);
		INSERT INTO tables_fts(rowid, caption, paragraphs)
		VALUES (NEW.rowid, NEW.caption, NEW.paragraphs);
	END;
	`
	if _, err := x.db.Exec(ftsSchema); err != nil {
		// FTS5 not available; Search falls back to LIKE.
		return nil
	}
	x.fts = true
	return nil
}

// LoadRecords stores one year's records in a single transaction. A record
// whose (year, label) already exists is updated.
func (x *Index) LoadRecords(ctx context.Context, year int, records []TableRecord) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tables
		(year, label, filename, paper_id, caption, content, paragraphs, ref_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, label) DO UPDATE SET
			filename = excluded.filename,
			paper_id = excluded.paper_id,
			caption = excluded.caption,
			content = excluded.content,
			paragraphs = excluded.paragraphs,
			ref_count = excluded.ref_count
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		paras := r.ReferencingParagraphs
		if paras == nil {
			paras = []string{}
		}
		data, err := json.Marshal(paras)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			year,
			r.Label,
			r.Filename,
			PaperIDFromFilename(r.Filename),
			r.Caption,
			r.Content,
			string(data),
			len(paras),
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", r.Label, err)
		}
	}
	return tx.Commit()
}

// SearchOptions narrows Search.
type SearchOptions struct {
	// Year restricts results to one year; 0 means all.
	Year int

	// ReferencedOnce restricts results to tables cited by exactly one paragraph.
	ReferencedOnce bool

	Limit int
}

const tableColumns = `t.year, t.label, t.filename, t.paper_id, t.caption, t.content, t.paragraphs`

// Search finds tables whose caption or referencing paragraphs match query.
// With FTS5 the query uses FTS5 syntax and results are ranked; otherwise
// it is a substring match.
func (x *Index) Search(ctx context.Context, query string, opts *SearchOptions) ([]IndexedTable, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	var q string
	var args []any
	if x.fts {
		q = `SELECT ` + tableColumns + `
			FROM tables t
			JOIN tables_fts fts ON t.rowid = fts.rowid
			WHERE tables_fts MATCH ?`
		args = append(args, query)
	} else {
		q = `SELECT ` + tableColumns + `
			FROM tables t
			WHERE (t.caption LIKE '%' || ? || '%' OR t.paragraphs LIKE '%' || ? || '%')`
		args = append(args, query, query)
	}
	if opts.Year != 0 {
		q += " AND t.year = ?"
		args = append(args, opts.Year)
	}
	if opts.ReferencedOnce {
		q += " AND t.ref_count = 1"
	}
	if x.fts {
		q += " ORDER BY rank"
	} else {
		q += " ORDER BY t.year, t.label"
	}
	q += " LIMIT ?"
	args = append(args, limit)

	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []IndexedTable
	for rows.Next() {
		var t IndexedTable
		var paras string
		if err := rows.Scan(&t.Year, &t.Label, &t.Filename, &t.PaperID, &t.Caption, &t.Content, &paras); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(paras), &t.ReferencingParagraphs); err != nil {
			return nil, fmt.Errorf("decode paragraphs of %s: %w", t.Label, err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// IndexStats contains statistics about the index.
type IndexStats struct {
	Tables         int64
	ReferencedOnce int64
	Unreferenced   int64
	Papers         int64
	Years          int64
}

// Stats returns index statistics.
func (x *Index) Stats(ctx context.Context) (*IndexStats, error) {
	stats := &IndexStats{}
	err := x.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(ref_count = 1), 0),
			COALESCE(SUM(ref_count = 0), 0),
			COUNT(DISTINCT NULLIF(paper_id, '')),
			COUNT(DISTINCT year)
		FROM tables
	`).Scan(&stats.Tables, &stats.ReferencedOnce, &stats.Unreferenced, &stats.Papers, &stats.Years)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RebuildFTS rebuilds the full-text index from the tables table.
func (x *Index) RebuildFTS(ctx context.Context) error {
	if !x.fts {
		return nil
	}
	_, err := x.db.ExecContext(ctx, `INSERT INTO tables_fts(tables_fts) VALUES ('rebuild')`)
	return err
}
