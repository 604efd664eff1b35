package importer_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/importer"
	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
)

func TestParseDebtors(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		want     []debtor.CreateParams
		wantErr  error
		wantLine int
	}

	tests := []testCase{
		{
			name: "FrenchSemicolon",
			input: "Prénom;Nom;Entreprise;Téléphone;E-mail\n" +
				"Awa;Diop;Acme;77 123 45 67;awa@acme.sn\n" +
				"Moussa;Ba;;;\n",
			want: []debtor.CreateParams{
				{FirstName: "Awa", LastName: "Diop", Company: "Acme", Phone: "77 123 45 67", Email: "awa@acme.sn"},
				{FirstName: "Moussa", LastName: "Ba"},
			},
		},
		{
			name: "EnglishCommaQuoted",
			input: "first name,last name,address,company\n" +
				"Fatou,Sall,\"12 rue Carnot, Dakar\",\n",
			want: []debtor.CreateParams{
				{FirstName: "Fatou", LastName: "Sall", Address: "12 rue Carnot, Dakar"},
			},
		},
		{
			name:  "BlankLinesSkipped",
			input: "prenom;nom\n\n;\nAwa;Diop\n",
			want:  []debtor.CreateParams{{FirstName: "Awa", LastName: "Diop"}},
		},
		{
			name:    "MissingColumn",
			input:   "Prénom;Entreprise\nAwa;Acme\n",
			wantErr: importer.ErrMissingColumns,
		},
		{
			name:    "HeaderOnly",
			input:   "Prénom;Nom\n",
			wantErr: importer.ErrNoRows,
		},
		{
			name:     "MissingValue",
			input:    "Prénom;Nom\nAwa;Diop\n;Ba\n",
			wantLine: 3,
		},
		{
			name:     "BadEmail",
			input:    "Prénom;Nom;Email\nAwa;Diop;awa@\n",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.ParseDebtors(strings.NewReader(tt.input))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			if tt.wantLine != 0 {
				var lineErr *importer.LineError
				require.ErrorAs(t, err, &lineErr)
				assert.Equal(t, tt.wantLine, lineErr.Line)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDebtors_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Prénom;Nom\nHélène;Faye\n")
	require.NoError(t, err)

	got, err := importer.ParseDebtors(strings.NewReader(encoded))

	require.NoError(t, err)
	assert.Equal(t, []debtor.CreateParams{{FirstName: "Hélène", LastName: "Faye"}}, got)
}

func TestParseDebtors_StrayByteAfterSniffWindow(t *testing.T) {
	body := strings.Repeat("Awa;Diop\n", 600) + "Ren\xe9;Sall\n"

	got, err := importer.ParseDebtors(strings.NewReader("prenom;nom\n" + body))

	require.NoError(t, err)
	require.Len(t, got, 601)
	assert.Equal(t, "René", got[600].FirstName)
	assert.True(t, utf8.ValidString(got[600].FirstName))
}

func TestParseDebtors_MixedEncodingRejected(t *testing.T) {
	body := strings.Repeat("Awa;Diop\n", 600) + "Ren\xe9;Sall\n"

	_, err := importer.ParseDebtors(strings.NewReader("Prénom;Nom\n" + body))

	require.ErrorIs(t, err, importer.ErrMixedEncoding)
	assert.True(t, importer.Rejected(err))
}

func TestParseDebtors_LineErrorMessage(t *testing.T) {
	_, err := importer.ParseDebtors(strings.NewReader("Prénom;Nom\nAwa;\n"))

	assert.EqualError(t, err, "line 2: LastName: value is required")
}

func TestParseSuppliers(t *testing.T) {
	input := "Nom du fournisseur;Personne à contacter;Téléphone\n" +
		"Sotrac;M. Ndiaye;33 800 00 00\n" +
		"Quincaillerie Acme;;\n"

	got, err := importer.ParseSuppliers(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []supplier.CreateParams{
		{Name: "Sotrac", ContactPerson: "M. Ndiaye", Phone: "33 800 00 00"},
		{Name: "Quincaillerie Acme"},
	}, got)
}

func TestParseSuppliers_Empty(t *testing.T) {
	_, err := importer.ParseSuppliers(strings.NewReader(""))

	assert.Error(t, err)
}
