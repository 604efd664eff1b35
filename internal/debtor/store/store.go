package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
)

// foreignKeyViolation is the Postgres SQLSTATE for a missing parent row.
const foreignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDebtorColumns = `
	d.id, d.first_name, d.last_name, d.company, d.email, d.phone, d.address, d.created_at, d.updated_at
`

// scanDebtor expects the columns of selectDebtorColumns followed by extra.
func scanDebtor(s scanner, extra ...any) (*debtor.Debtor, error) {
	var d debtor.Debtor

	var company, email, phone, address sql.NullString

	dest := []any{
		&d.ID, &d.FirstName, &d.LastName, &company, &email, &phone, &address, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	d.Company = company.String
	d.Email = email.String
	d.Phone = phone.String
	d.Address = address.String

	return &d, nil
}

const selectDebtColumns = `
	t.id, t.debtor_id, t.amount, t.description, t.date_incurred, t.created_at, t.updated_at
`

func scanDebt(s scanner, extra ...any) (*debtor.Debt, error) {
	var debt debtor.Debt

	dest := []any{
		&debt.ID, &debt.DebtorID, &debt.Amount, &debt.Description, &debt.DateIncurred, &debt.CreatedAt, &debt.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	return &debt, nil
}

func nullable(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// likePattern escapes LIKE wildcards so the query matches literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const insertDebtorQuery = `
	INSERT INTO debtors (first_name, last_name, company, email, phone, address, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func insertDebtor(ctx context.Context, q queryer, d *debtor.Debtor) error {
	err := q.QueryRowContext(ctx, insertDebtorQuery,
		d.FirstName,
		d.LastName,
		nullable(d.Company),
		nullable(d.Email),
		nullable(d.Phone),
		nullable(d.Address),
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating debtor: %w", err)
	}

	return nil
}

func (s *Store) CreateDebtor(ctx context.Context, d *debtor.Debtor) error {
	return insertDebtor(ctx, s.db, d)
}

func (s *Store) GetDebtor(ctx context.Context, id int64) (*debtor.Debtor, error) {
	query := `SELECT ` + selectDebtorColumns + ` FROM debtors d WHERE d.id = $1`

	d, err := scanDebtor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, debtor.ErrNotFound
		}

		return nil, fmt.Errorf("getting debtor: %w", err)
	}

	return d, nil
}

// ListDebtors sums debts and payments in separate subqueries so that a debtor
// with several debts does not have its payments counted once per debt.
func (s *Store) ListDebtors(ctx context.Context, filter debtor.ListFilter) ([]*debtor.Summary, error) {
	query := `SELECT ` + selectDebtorColumns + `,
		COALESCE((SELECT SUM(t.amount) FROM debts t WHERE t.debtor_id = d.id), 0) AS total_debt,
		COALESCE((
			SELECT SUM(p.amount) FROM payments p
			JOIN debts t ON t.id = p.debt_id
			WHERE t.debtor_id = d.id
		), 0) AS total_paid
		FROM debtors d`

	var args []any

	argIdx := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		query += fmt.Sprintf(` WHERE (d.first_name ILIKE $%[1]d OR d.last_name ILIKE $%[1]d
			OR d.company ILIKE $%[1]d OR d.phone ILIKE $%[1]d)`, argIdx)

		args = append(args, likePattern(q))
		argIdx++
	}

	query += " ORDER BY d.created_at DESC, d.id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing debtors: %w", err)
	}
	defer rows.Close()

	var out []*debtor.Summary

	for rows.Next() {
		var totalDebt, totalPaid decimal.Decimal

		d, err := scanDebtor(rows, &totalDebt, &totalPaid)
		if err != nil {
			return nil, fmt.Errorf("scanning debtor: %w", err)
		}

		out = append(out, &debtor.Summary{Debtor: d, TotalDebt: totalDebt, TotalPaid: totalPaid})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debtor rows: %w", err)
	}

	return out, nil
}

func (s *Store) RecentDebtors(ctx context.Context, limit int) ([]*debtor.Debtor, error) {
	query := `SELECT ` + selectDebtorColumns + `
		FROM debtors d
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent debtors: %w", err)
	}
	defer rows.Close()

	var out []*debtor.Debtor

	for rows.Next() {
		d, err := scanDebtor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debtor: %w", err)
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debtor rows: %w", err)
	}

	return out, nil
}

// DeleteDebtor relies on ON DELETE CASCADE to remove debts and payments.
func (s *Store) DeleteDebtor(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM debtors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting debtor: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting debtor: %w", err)
	}

	if n == 0 {
		return debtor.ErrNotFound
	}

	return nil
}

func (s *Store) CreateDebt(ctx context.Context, debt *debtor.Debt) error {
	query := `
		INSERT INTO debts (debtor_id, amount, description, date_incurred, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		debt.DebtorID,
		debt.Amount,
		debt.Description,
		debt.DateIncurred,
	).Scan(&debt.ID, &debt.CreatedAt, &debt.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return debtor.ErrNotFound
		}

		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

func (s *Store) ListDebts(ctx context.Context, debtorID int64) ([]*debtor.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts t
		WHERE t.debtor_id = $1
		ORDER BY t.date_incurred DESC, t.id DESC`

	rows, err := s.db.QueryContext(ctx, query, debtorID)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var out []*debtor.Debt

	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		out = append(out, debt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debt rows: %w", err)
	}

	return out, nil
}

func (s *Store) RecentDebts(ctx context.Context, limit int) ([]*debtor.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `, ` + selectDebtorColumns + `
		FROM debts t
		JOIN debtors d ON d.id = t.debtor_id
		ORDER BY t.date_incurred DESC, t.id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent debts: %w", err)
	}
	defer rows.Close()

	var out []*debtor.Debt

	for rows.Next() {
		var d debtor.Debtor

		var company, email, phone, address sql.NullString

		debt, err := scanDebt(rows,
			&d.ID, &d.FirstName, &d.LastName, &company, &email, &phone, &address, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		d.Company = company.String
		d.Email = email.String
		d.Phone = phone.String
		d.Address = address.String
		debt.Debtor = &d

		out = append(out, debt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debt rows: %w", err)
	}

	return out, nil
}

func (s *Store) TotalDebt(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM debts`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing debts: %w", err)
	}

	return total, nil
}

func (s *Store) ListPayments(ctx context.Context, debtorID int64) ([]*debtor.Payment, error) {
	query := `
		SELECT p.id, p.debt_id, p.amount, p.date_paid, p.notes, p.created_at, p.updated_at
		FROM payments p
		JOIN debts t ON t.id = p.debt_id
		WHERE t.debtor_id = $1
		ORDER BY p.date_paid DESC, p.id DESC`

	rows, err := s.db.QueryContext(ctx, query, debtorID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var out []*debtor.Payment

	for rows.Next() {
		var p debtor.Payment

		var notes sql.NullString

		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.DatePaid, &notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Notes = notes.String
		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return out, nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (debtor.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateDebtors(ctx context.Context, debtors []*debtor.Debtor) error {
	for _, d := range debtors {
		if err := insertDebtor(ctx, itx.tx, d); err != nil {
			return err
		}
	}

	return nil
}

type paymentTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPayment(ctx context.Context) (debtor.PaymentTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: dbTx}, nil
}

func (ptx *paymentTx) Commit() error   { return ptx.tx.Commit() }
func (ptx *paymentTx) Rollback() error { return ptx.tx.Rollback() }

// LockDebt holds the debt row until the transaction ends, serializing
// concurrent payments against it.
func (ptx *paymentTx) LockDebt(ctx context.Context, id int64) (*debtor.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts t WHERE t.id = $1 FOR UPDATE`

	debt, err := scanDebt(ptx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, debtor.ErrNotFound
		}

		return nil, fmt.Errorf("locking debt: %w", err)
	}

	return debt, nil
}

func (ptx *paymentTx) PaidOnDebt(ctx context.Context, id int64) (decimal.Decimal, error) {
	var paid decimal.Decimal

	err := ptx.tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE debt_id = $1`, id,
	).Scan(&paid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing payments: %w", err)
	}

	return paid, nil
}

func (ptx *paymentTx) CreatePayment(ctx context.Context, p *debtor.Payment) error {
	query := `
		INSERT INTO payments (debt_id, amount, date_paid, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := ptx.tx.QueryRowContext(ctx, query,
		p.DebtID,
		p.Amount,
		p.DatePaid,
		nullable(p.Notes),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}
