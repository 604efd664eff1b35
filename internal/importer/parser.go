package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

// MaxUploadSize bounds the CSV files accepted for import.
const MaxUploadSize = 5 << 20

var (
	ErrEmpty          = errors.New("file has no header line")
	ErrNoRows         = errors.New("file has no data rows")
	ErrMissingColumns = errors.New("missing required columns")
)

// LineError locates a rejected row in the uploaded file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

type record struct {
	line   int
	values map[string]string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type debtorRow struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Company   string `validate:"max=200"`
	Email     string `validate:"omitempty,email,max=254"`
	Phone     string `validate:"max=30"`
	Address   string
}

type supplierRow struct {
	Name          string `validate:"required,max=200"`
	ContactPerson string `validate:"max=200"`
	Email         string `validate:"omitempty,email,max=254"`
	Phone         string `validate:"max=30"`
	Address       string
}

// ParseDebtors reads a contact file into debtor creation params.
func ParseDebtors(r io.Reader) ([]debtor.CreateParams, error) {
	records, err := readRecords(r, debtorProfile)
	if err != nil {
		return nil, err
	}

	params := make([]debtor.CreateParams, 0, len(records))

	for _, rec := range records {
		row := debtorRow{
			FirstName: rec.values["first_name"],
			LastName:  rec.values["last_name"],
			Company:   rec.values["company"],
			Email:     rec.values["email"],
			Phone:     rec.values["phone"],
			Address:   rec.values["address"],
		}
		if err := validate.Struct(row); err != nil {
			return nil, &LineError{Line: rec.line, Err: describe(err)}
		}

		params = append(params, debtor.CreateParams(row))
	}

	return params, nil
}

// ParseSuppliers reads a contact file into supplier creation params.
func ParseSuppliers(r io.Reader) ([]supplier.CreateParams, error) {
	records, err := readRecords(r, supplierProfile)
	if err != nil {
		return nil, err
	}

	params := make([]supplier.CreateParams, 0, len(records))

	for _, rec := range records {
		row := supplierRow{
			Name:          rec.values["name"],
			ContactPerson: rec.values["contact_person"],
			Email:         rec.values["email"],
			Phone:         rec.values["phone"],
			Address:       rec.values["address"],
		}
		if err := validate.Struct(row); err != nil {
			return nil, &LineError{Line: rec.line, Err: describe(err)}
		}

		params = append(params, supplier.CreateParams(row))
	}

	return params, nil
}

func readRecords(r io.Reader, p profile) ([]record, error) {
	text, err := NewTextReader(io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(text)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	data, err = ensureUTF8(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}

	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, missing := p.match(header)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var records []record

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &LineError{Line: perr.StartLine, Err: perr.Err}
			}

			return nil, fmt.Errorf("read csv: %w", err)
		}

		if blank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(cols))
		for field, idx := range cols {
			values[field] = cellValue(row, idx)
		}

		records = append(records, record{line: line, values: values})
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}

	return records, nil
}

// detectDelimiter picks ';' or ',' from whichever appears more in the header.
func detectDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))

	if bytes.Count(first, []byte(";")) >= bytes.Count(first, []byte(",")) && bytes.Contains(first, []byte(";")) {
		return ';'
	}

	return ','
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// describe turns the first validation failure into "<column>: <problem>".
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: value is required", fe.Field())
	case "email":
		return fmt.Errorf("%s: %q is not a valid e-mail address", fe.Field(), fe.Value())
	case "max":
		return fmt.Errorf("%s: longer than %s characters", fe.Field(), fe.Param())
	}

	return fmt.Errorf("%s: failed %s", fe.Field(), fe.Tag())
}
