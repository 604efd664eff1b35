package form_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ardoise/internal/http/form"
)

func post(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func TestBind_Debtor(t *testing.T) {
	type testCase struct {
		name   string
		values url.Values
		valid  bool
		errors map[string]string
	}

	tests := []testCase{
		{
			name:   "Valid",
			values: url.Values{"first_name": {" Awa "}, "last_name": {"Diop"}, "email": {"awa@example.com"}},
			valid:  true,
		},
		{
			name:   "MissingRequired",
			values: url.Values{"first_name": {"  "}},
			errors: map[string]string{
				"first_name": "Ce champ est obligatoire.",
				"last_name":  "Ce champ est obligatoire.",
			},
		},
		{
			name:   "BadEmail",
			values: url.Values{"first_name": {"Awa"}, "last_name": {"Diop"}, "email": {"awa"}},
			errors: map[string]string{"email": "Saisissez une adresse e-mail valide."},
		},
		{
			name:   "PhoneTooLong",
			values: url.Values{"first_name": {"Awa"}, "last_name": {"Diop"}, "phone": {strings.Repeat("7", 31)}},
			errors: map[string]string{"phone": "Assurez-vous que cette valeur comporte au plus 30 caractères."},
		},
		{
			name:   "LongPhoneWithExtension",
			values: url.Values{"first_name": {"Awa"}, "last_name": {"Diop"}, "phone": {"+221 77 000 00 00 poste 12"}},
			valid:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := form.New(form.DebtorForm)

			var in form.DebtorInput

			valid, err := f.Bind(post(tt.values), &in)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)

			for name, msg := range tt.errors {
				assert.Equal(t, msg, f.Error(name), name)
			}

			if tt.valid {
				assert.Equal(t, "Awa", in.Params().FirstName)
				assert.Equal(t, "Awa", f.Value("first_name"))
			}
		})
	}
}

func TestBind_AmountMessages(t *testing.T) {
	type testCase struct {
		amount string
		msg    string
	}

	tests := []testCase{
		{amount: "abc", msg: "Saisissez un nombre."},
		{amount: "-5", msg: "Assurez-vous que cette valeur est supérieure ou égale à 0."},
		{amount: "1.234", msg: "Assurez-vous qu'il n'y a pas plus de 2 chiffres après la virgule."},
		{amount: "123456789", msg: "Assurez-vous qu'il n'y a pas plus de 8 chiffres avant la virgule."},
		{amount: "12,50"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			f := form.New(form.DebtForm)
			f.SetOptions("debtor", []form.Option{{Value: "1", Label: "Awa Diop"}})

			var in form.DebtInput

			_, err := f.Bind(post(url.Values{
				"debtor":        {"1"},
				"amount":        {tt.amount},
				"description":   {"Sacs de riz"},
				"date_incurred": {"2025-03-01"},
			}), &in)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, f.Error("amount"))

			if tt.msg == "" {
				p := in.Params()
				assert.Equal(t, int64(1), p.DebtorID)
				assert.True(t, p.Amount.Equal(decimal.RequireFromString("12.50")))
				assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), p.DateIncurred)
			}
		})
	}
}

func TestBind_RejectsChoiceOutsideOptions(t *testing.T) {
	f := form.New(form.PaymentForm)
	f.SetOptions("debt", []form.Option{{Value: "10", Label: "Sacs de riz"}})

	var in form.PaymentInput

	valid, err := f.Bind(post(url.Values{
		"debt":      {"11"},
		"amount":    {"5"},
		"date_paid": {"2025-03-01"},
	}), &in)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Contains(t, f.Error("debt"), "Sélectionnez un choix valide")

	fields := f.Fields()
	require.Len(t, fields, len(form.PaymentForm.Fields))
	assert.Equal(t, "11", fields[0].Value)
	assert.Len(t, fields[0].Options, 1)
}

func TestForm_NonFieldErrors(t *testing.T) {
	f := form.New(form.SupplierForm)
	assert.True(t, f.Valid())

	f.AddError("", "Erreur générale")
	assert.False(t, f.Valid())
	assert.Equal(t, []string{"Erreur générale"}, f.NonField)
}

func TestCheck(t *testing.T) {
	errs, err := form.Check(&form.SupplierInput{Name: "Sonatel"})
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = form.Check(&form.SupplierInput{Email: "nope"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"name":  "Ce champ est obligatoire.",
		"email": "Saisissez une adresse e-mail valide.",
	}, errs)
}

func TestBind_SupplierLengths(t *testing.T) {
	type testCase struct {
		name   string
		values url.Values
		valid  bool
		errors map[string]string
	}

	tests := []testCase{
		{
			name: "LongContactAndPhone",
			values: url.Values{
				"name":           {"Sotrac"},
				"contact_person": {strings.Repeat("n", 150)},
				"phone":          {"+221 33 800 00 00 poste 12"},
			},
			valid: true,
		},
		{
			name:   "ContactTooLong",
			values: url.Values{"name": {"Sotrac"}, "contact_person": {strings.Repeat("n", 201)}},
			errors: map[string]string{"contact_person": "Assurez-vous que cette valeur comporte au plus 200 caractères."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := form.New(form.SupplierForm)

			var in form.SupplierInput

			valid, err := f.Bind(post(tt.values), &in)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)

			for name, msg := range tt.errors {
				assert.Equal(t, msg, f.Error(name), name)
			}
		})
	}
}
