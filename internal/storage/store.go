package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/M-Smaran/test-mcp-server/internal/core"
	"github.com/M-Smaran/test-mcp-server/internal/log"

	_ "modernc.org/sqlite"
)

// logFrom recovers the request logger from the context, scoped to this
// package's component.
func logFrom(ctx context.Context) *log.Logger {
	return log.FromContext(ctx).WithComponent(log.ComponentStorage)
}

// Store is the single-table expense ledger. Every operation issues one
// parameterized statement against the shared on-disk database; the only
// serialization guarantee is SQLite's own WAL isolation.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at dbPath, enables WAL, runs the
// schema migrations, and performs a canary write to fail fast when the
// storage path is not writable. Any error here is fatal to the caller:
// nothing should serve requests over a store that failed to initialize.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// WAL lets readers proceed while a writer holds its transaction.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.canaryWrite(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("verify write access: %w", err)
	}

	logFrom(ctx).InfoContext(ctx, "Expense store initialized", log.FieldDBPath, dbPath)
	return s, nil
}

// canaryWrite inserts a sentinel row and deletes it again, purely to
// confirm write permission before the process starts serving.
func (s *Store) canaryWrite(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses(date, amount, category) VALUES ('2000-01-01', 0, 'test')"); err != nil {
		return fmt.Errorf("canary insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE category = 'test'"); err != nil {
		return fmt.Errorf("canary delete: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the on-disk location of the database file.
func (s *Store) Path() string {
	return s.path
}

// Insert adds one expense and returns the id the store assigned to it.
// No validation beyond the NOT NULL columns: date format and amount sign
// are the caller's business.
func (s *Store) Insert(ctx context.Context, e core.Expense) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses(date, amount, category, subcategory, note) VALUES (?,?,?,?,?)",
		e.Date, e.Amount, e.Category, e.Subcategory, e.Note)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	logFrom(ctx).InfoContext(ctx, "Expense added",
		log.FieldExpenseID, id, log.FieldDate, e.Date,
		log.FieldAmount, e.Amount, log.FieldCategory, e.Category)
	return id, nil
}

// ListRange returns every expense whose date falls in the inclusive
// [start, end] range, newest first (same-day rows most recently inserted
// first). The comparison is lexicographic on the stored date text.
func (s *Store) ListRange(ctx context.Context, start, end string) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, category, subcategory, note
		FROM expenses
		WHERE date BETWEEN ? AND ?
		ORDER BY date DESC, id DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Subcategory, &e.Note); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// SummarizeRange aggregates amount and row count per category over the
// inclusive [start, end] range, optionally filtered to one category,
// ordered by total amount descending. Categories with no matching rows
// are absent, never zero-filled.
func (s *Store) SummarizeRange(ctx context.Context, start, end, category string) ([]core.CategorySummary, error) {
	query := `
		SELECT category, SUM(amount) AS total_amount, COUNT(*) AS count
		FROM expenses
		WHERE date BETWEEN ? AND ?`
	args := []any{start, end}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " GROUP BY category ORDER BY total_amount DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	summaries := []core.CategorySummary{}
	for rows.Next() {
		var cs core.CategorySummary
		if err := rows.Scan(&cs.Category, &cs.TotalAmount, &cs.Count); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}

	return summaries, nil
}

// Delete removes at most one expense by primary key. Deleting an id with
// no matching row is ErrNotFound, not a silent success.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	logFrom(ctx).InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id)
	return nil
}

// Update applies a partial update to one expense. Only the patch fields
// that are present end up in the SET clause; everything else keeps its
// prior value. An empty patch is ErrNoFields and never reaches the
// database.
func (s *Store) Update(ctx context.Context, id int64, patch core.ExpensePatch) error {
	if patch.IsEmpty() {
		return ErrNoFields
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Subcategory != nil {
		sets = append(sets, "subcategory = ?")
		args = append(args, *patch.Subcategory)
	}
	if patch.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *patch.Note)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	logFrom(ctx).InfoContext(ctx, "Expense updated", log.FieldExpenseID, id, "fields", len(sets))
	return nil
}

// Statistics computes the whole-table rollup: row count, amount total,
// date bounds, and the per-category breakdown ordered by total
// descending. The empty table yields zeros and nil date bounds.
func (s *Store) Statistics(ctx context.Context) (core.Statistics, error) {
	var stats core.Statistics

	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), SUM(amount) FROM expenses").Scan(&stats.TotalExpenses, &total)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("query totals: %w", err)
	}
	if total.Valid {
		stats.TotalAmount = total.Float64
	}

	var minDate, maxDate sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT MIN(date), MAX(date) FROM expenses").Scan(&minDate, &maxDate)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("query date range: %w", err)
	}
	if minDate.Valid {
		stats.DateRange.FirstExpense = &minDate.String
	}
	if maxDate.Valid {
		stats.DateRange.LastExpense = &maxDate.String
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*), SUM(amount)
		FROM expenses
		GROUP BY category
		ORDER BY SUM(amount) DESC`)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("query category breakdown: %w", err)
	}
	defer rows.Close()

	stats.ByCategory = []core.CategoryStat{}
	for rows.Next() {
		var cs core.CategoryStat
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.Total); err != nil {
			return core.Statistics{}, fmt.Errorf("scan category stat: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, cs)
	}
	if err := rows.Err(); err != nil {
		return core.Statistics{}, fmt.Errorf("iterate category stats: %w", err)
	}

	return stats, nil
}
