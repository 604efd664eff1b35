package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

const foreignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectSupplierColumns = `
	s.id, s.name, s.contact_person, s.email, s.phone, s.address, s.created_at, s.updated_at
`

// supplierRow collects the nullable columns of a supplier before conversion.
type supplierRow struct {
	s                              supplier.Supplier
	contact, email, phone, address sql.NullString
}

func (r *supplierRow) dest() []any {
	return []any{&r.s.ID, &r.s.Name, &r.contact, &r.email, &r.phone, &r.address, &r.s.CreatedAt, &r.s.UpdatedAt}
}

func (r *supplierRow) toSupplier() *supplier.Supplier {
	r.s.ContactPerson = r.contact.String
	r.s.Email = r.email.String
	r.s.Phone = r.phone.String
	r.s.Address = r.address.String

	return &r.s
}

func scanSupplier(sc scanner, extra ...any) (*supplier.Supplier, error) {
	var r supplierRow
	if err := sc.Scan(append(r.dest(), extra...)...); err != nil {
		return nil, err
	}

	return r.toSupplier(), nil
}

const selectCreditColumns = `
	c.id, c.supplier_id, c.amount, c.description, c.date_incurred, c.created_at, c.updated_at
`

func scanCredit(sc scanner, extra ...any) (*supplier.Credit, error) {
	var c supplier.Credit

	dest := []any{&c.ID, &c.SupplierID, &c.Amount, &c.Description, &c.DateIncurred, &c.CreatedAt, &c.UpdatedAt}
	if err := sc.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	return &c, nil
}

func nullable(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func insertSupplier(ctx context.Context, q queryer, sup *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact_person, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		sup.Name,
		nullable(sup.ContactPerson),
		nullable(sup.Email),
		nullable(sup.Phone),
		nullable(sup.Address),
	).Scan(&sup.ID, &sup.CreatedAt, &sup.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating supplier: %w", err)
	}

	return nil
}

func (s *Store) CreateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	return insertSupplier(ctx, s.db, sup)
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*supplier.Supplier, error) {
	query := `SELECT ` + selectSupplierColumns + ` FROM suppliers s WHERE s.id = $1`

	sup, err := scanSupplier(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, supplier.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplier: %w", err)
	}

	return sup, nil
}

func (s *Store) ListSuppliers(ctx context.Context, filter supplier.ListFilter) ([]*supplier.Summary, error) {
	query := `SELECT ` + selectSupplierColumns + `,
		COALESCE((SELECT SUM(c.amount) FROM credits c WHERE c.supplier_id = s.id), 0) AS total_credit,
		COALESCE((
			SELECT SUM(p.amount) FROM supplier_payments p
			JOIN credits c ON c.id = p.credit_id
			WHERE c.supplier_id = s.id
		), 0) AS total_paid
		FROM suppliers s`

	var args []any

	argIdx := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		query += fmt.Sprintf(` WHERE (s.name ILIKE $%[1]d OR s.contact_person ILIKE $%[1]d OR s.phone ILIKE $%[1]d)`, argIdx)

		args = append(args, likePattern(q))
		argIdx++
	}

	query += " ORDER BY s.created_at DESC, s.id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var out []*supplier.Summary

	for rows.Next() {
		var total, paid decimal.Decimal

		sup, err := scanSupplier(rows, &total, &paid)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}

		out = append(out, &supplier.Summary{Supplier: sup, TotalCredit: total, TotalPaid: paid})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplier rows: %w", err)
	}

	return out, nil
}

func (s *Store) RecentSuppliers(ctx context.Context, limit int) ([]*supplier.Supplier, error) {
	query := `SELECT ` + selectSupplierColumns + `
		FROM suppliers s
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent suppliers: %w", err)
	}
	defer rows.Close()

	var out []*supplier.Supplier

	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}

		out = append(out, sup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplier rows: %w", err)
	}

	return out, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	if n == 0 {
		return supplier.ErrNotFound
	}

	return nil
}

func (s *Store) CreateCredit(ctx context.Context, c *supplier.Credit) error {
	query := `
		INSERT INTO credits (supplier_id, amount, description, date_incurred, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.SupplierID,
		c.Amount,
		c.Description,
		c.DateIncurred,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return supplier.ErrNotFound
		}

		return fmt.Errorf("creating credit: %w", err)
	}

	return nil
}

func (s *Store) ListCredits(ctx context.Context, supplierID int64) ([]*supplier.Credit, error) {
	query := `SELECT ` + selectCreditColumns + `
		FROM credits c
		WHERE c.supplier_id = $1
		ORDER BY c.date_incurred DESC, c.id DESC`

	rows, err := s.db.QueryContext(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("listing credits: %w", err)
	}
	defer rows.Close()

	var out []*supplier.Credit

	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning credit: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit rows: %w", err)
	}

	return out, nil
}

func (s *Store) RecentCredits(ctx context.Context, limit int) ([]*supplier.Credit, error) {
	query := `SELECT ` + selectCreditColumns + `, ` + selectSupplierColumns + `
		FROM credits c
		JOIN suppliers s ON s.id = c.supplier_id
		ORDER BY c.date_incurred DESC, c.id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent credits: %w", err)
	}
	defer rows.Close()

	var out []*supplier.Credit

	for rows.Next() {
		var owner supplierRow

		c, err := scanCredit(rows, owner.dest()...)
		if err != nil {
			return nil, fmt.Errorf("scanning credit: %w", err)
		}

		c.Supplier = owner.toSupplier()
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit rows: %w", err)
	}

	return out, nil
}

func (s *Store) TotalCredit(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM credits`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing credits: %w", err)
	}

	return total, nil
}

func (s *Store) ListPayments(ctx context.Context, supplierID int64) ([]*supplier.Payment, error) {
	query := `
		SELECT p.id, p.credit_id, p.amount, p.date_paid, p.notes, p.created_at, p.updated_at
		FROM supplier_payments p
		JOIN credits c ON c.id = p.credit_id
		WHERE c.supplier_id = $1
		ORDER BY p.date_paid DESC, p.id DESC`

	rows, err := s.db.QueryContext(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("listing supplier payments: %w", err)
	}
	defer rows.Close()

	var out []*supplier.Payment

	for rows.Next() {
		var p supplier.Payment

		var notes sql.NullString

		if err := rows.Scan(&p.ID, &p.CreditID, &p.Amount, &p.DatePaid, &notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning supplier payment: %w", err)
		}

		p.Notes = notes.String
		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplier payment rows: %w", err)
	}

	return out, nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (supplier.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateSuppliers(ctx context.Context, suppliers []*supplier.Supplier) error {
	for _, sup := range suppliers {
		if err := insertSupplier(ctx, itx.tx, sup); err != nil {
			return err
		}
	}

	return nil
}

type paymentTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPayment(ctx context.Context) (supplier.PaymentTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: dbTx}, nil
}

func (ptx *paymentTx) Commit() error   { return ptx.tx.Commit() }
func (ptx *paymentTx) Rollback() error { return ptx.tx.Rollback() }

func (ptx *paymentTx) LockCredit(ctx context.Context, id int64) (*supplier.Credit, error) {
	query := `SELECT ` + selectCreditColumns + ` FROM credits c WHERE c.id = $1 FOR UPDATE`

	c, err := scanCredit(ptx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, supplier.ErrNotFound
		}

		return nil, fmt.Errorf("locking credit: %w", err)
	}

	return c, nil
}

func (ptx *paymentTx) PaidOnCredit(ctx context.Context, id int64) (decimal.Decimal, error) {
	var paid decimal.Decimal

	err := ptx.tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM supplier_payments WHERE credit_id = $1`, id,
	).Scan(&paid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing supplier payments: %w", err)
	}

	return paid, nil
}

func (ptx *paymentTx) CreatePayment(ctx context.Context, p *supplier.Payment) error {
	query := `
		INSERT INTO supplier_payments (credit_id, amount, date_paid, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := ptx.tx.QueryRowContext(ctx, query,
		p.CreditID,
		p.Amount,
		p.DatePaid,
		nullable(p.Notes),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating supplier payment: %w", err)
	}

	return nil
}
