// Package importer creates debtors or suppliers in bulk from a CSV contact
// list exported by a spreadsheet.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

type Kind string

const (
	KindDebtors   Kind = "debiteurs"
	KindSuppliers Kind = "fournisseurs"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type DebtorCreator interface {
	CreateBatch(ctx context.Context, params []debtor.CreateParams) ([]*debtor.Debtor, error)
}

type SupplierCreator interface {
	CreateBatch(ctx context.Context, params []supplier.CreateParams) ([]*supplier.Supplier, error)
}

type Service struct {
	debtors   DebtorCreator
	suppliers SupplierCreator
}

func NewService(debtors DebtorCreator, suppliers SupplierCreator) *Service {
	return &Service{debtors: debtors, suppliers: suppliers}
}

// Import parses r and creates every row in one transaction. It returns the
// number of records created.
func (s *Service) Import(ctx context.Context, kind Kind, r io.Reader) (int, error) {
	switch kind {
	case KindDebtors:
		params, err := ParseDebtors(r)
		if err != nil {
			return 0, err
		}

		created, err := s.debtors.CreateBatch(ctx, params)
		if err != nil {
			return 0, fmt.Errorf("creating debtors: %w", err)
		}

		return len(created), nil
	case KindSuppliers:
		params, err := ParseSuppliers(r)
		if err != nil {
			return 0, err
		}

		created, err := s.suppliers.CreateBatch(ctx, params)
		if err != nil {
			return 0, fmt.Errorf("creating suppliers: %w", err)
		}

		return len(created), nil
	}

	return 0, fmt.Errorf("unknown import kind: %s", kind)
}

// Rejected reports whether err comes from the content of the upload rather
// than from storing it.
func Rejected(err error) bool {
	var lineErr *LineError

	return errors.As(err, &lineErr) ||
		errors.Is(err, ErrNotText) ||
		errors.Is(err, ErrMixedEncoding) ||
		errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrNoRows) ||
		errors.Is(err, ErrMissingColumns)
}
