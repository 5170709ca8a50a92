/*
Package sqlite provides a SQLite-backed loan store.

PURPOSE:
  Persists loan definitions and their computed amortization schedules.
  In production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  loans:     Loan definitions (factory JSON + metadata, versioned)
  payments:  Computed schedule rows, one per period per loan

  Schedule rows are derived data: they are replaced wholesale whenever the
  loan definition changes. Amounts are stored as decimal strings so no
  precision is lost crossing the database boundary.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/loans.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - factory/loan.go: The JSON definition format stored in loans
  - loan/schedule.go: The Payment rows stored in payments
  - store/rediscache: Cache layer in front of schedule computation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/loan-engine/loan"
)

// Store persists loans and schedules using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Loan definitions
	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		definition_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_loans_name
		ON loans(name);

	-- Computed schedule rows (derived from the definition, replaced on change)
	CREATE TABLE IF NOT EXISTS payments (
		loan_id TEXT NOT NULL REFERENCES loans(id) ON DELETE CASCADE,
		period INTEGER NOT NULL,
		period_start TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		interest TEXT NOT NULL,
		principal TEXT NOT NULL,
		special_principal TEXT NOT NULL,
		total_principal TEXT NOT NULL,
		total_payment TEXT NOT NULL,
		balance TEXT NOT NULL,
		PRIMARY KEY (loan_id, period)
	);

	CREATE INDEX IF NOT EXISTS idx_payments_loan
		ON payments(loan_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAN STORE
// =============================================================================

// LoanRecord is a stored loan definition with its JSON body.
type LoanRecord struct {
	ID             string
	Name           string
	DefinitionJSON string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaveLoan saves a loan record. Saving an existing id replaces the
// definition and bumps the version.
func (s *Store) SaveLoan(ctx context.Context, rec LoanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO loans (id, name, definition_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			definition_json = excluded.definition_json,
			version = loans.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.DefinitionJSON, 1, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

// GetLoan retrieves a loan by ID. Returns nil if not found.
func (s *Store) GetLoan(ctx context.Context, id string) (*LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec LoanRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, definition_json, version, created_at, updated_at FROM loans WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Name, &rec.DefinitionJSON, &rec.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// ListLoans returns all loans.
func (s *Store) ListLoans(ctx context.Context) ([]LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, definition_json, version, created_at, updated_at FROM loans ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []LoanRecord
	for rows.Next() {
		var rec LoanRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.DefinitionJSON, &rec.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		loans = append(loans, rec)
	}
	return loans, rows.Err()
}

// DeleteLoan removes a loan and, via the foreign key, its schedule rows.
func (s *Store) DeleteLoan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM loans WHERE id = ?", id)
	return err
}

// =============================================================================
// SCHEDULE STORE
// =============================================================================

// SaveSchedule replaces the stored schedule rows for a loan.
func (s *Store) SaveSchedule(ctx context.Context, loanID string, payments []loan.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM payments WHERE loan_id = ?", loanID); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	query := `
		INSERT INTO payments
		(loan_id, period, period_start, payment_date, interest, principal,
		 special_principal, total_principal, total_payment, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, p := range payments {
		_, err := sqlTx.ExecContext(ctx, query,
			loanID,
			p.Period,
			p.Start.String(),
			p.End.String(),
			p.Interest.String(),
			p.Principal.String(),
			p.SpecialPrincipal.String(),
			p.TotalPrincipal.String(),
			p.TotalPayment.String(),
			p.Balance.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to save schedule row %d: %w", p.Period, err)
		}
	}

	return sqlTx.Commit()
}

// GetSchedule returns the stored schedule rows for a loan, in period order.
// Returns an empty slice if no schedule is stored.
func (s *Store) GetSchedule(ctx context.Context, loanID string) ([]loan.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT period, period_start, payment_date, interest, principal,
		       special_principal, total_principal, total_payment, balance
		FROM payments
		WHERE loan_id = ?
		ORDER BY period ASC
	`

	rows, err := s.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	var payments []loan.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(rows *sql.Rows) (loan.Payment, error) {
	var (
		p                loan.Payment
		periodStart      string
		paymentDate      string
		interest         string
		principal        string
		specialPrincipal string
		totalPrincipal   string
		totalPayment     string
		balance          string
	)

	err := rows.Scan(
		&p.Period, &periodStart, &paymentDate, &interest, &principal,
		&specialPrincipal, &totalPrincipal, &totalPayment, &balance,
	)
	if err != nil {
		return p, fmt.Errorf("failed to scan schedule row: %w", err)
	}

	if p.Start, err = loan.ParseDate(periodStart); err != nil {
		return p, fmt.Errorf("bad period_start in row %d: %w", p.Period, err)
	}
	if p.End, err = loan.ParseDate(paymentDate); err != nil {
		return p, fmt.Errorf("bad payment_date in row %d: %w", p.Period, err)
	}

	fields := []struct {
		dst *loan.Money
		src string
		col string
	}{
		{&p.Interest, interest, "interest"},
		{&p.Principal, principal, "principal"},
		{&p.SpecialPrincipal, specialPrincipal, "special_principal"},
		{&p.TotalPrincipal, totalPrincipal, "total_principal"},
		{&p.TotalPayment, totalPayment, "total_payment"},
		{&p.Balance, balance, "balance"},
	}
	for _, f := range fields {
		m, err := loan.ParseMoney(f.src)
		if err != nil {
			return p, fmt.Errorf("bad %s in row %d: %w", f.col, p.Period, err)
		}
		*f.dst = m
	}

	return p, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"payments", "loans"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
