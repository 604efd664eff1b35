package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// column is a destination field and the header spellings accepted for it.
// Aliases are compared after folding case and accents.
type column struct {
	field    string
	aliases  []string
	required bool
}

// profile is the column layout of one kind of contact file.
type profile []column

var debtorProfile = profile{
	{field: "first_name", aliases: []string{"prenom", "first name", "first_name", "firstname"}, required: true},
	{field: "last_name", aliases: []string{"nom", "nom de famille", "last name", "last_name", "lastname", "surname"}, required: true},
	{field: "company", aliases: []string{"entreprise", "societe", "company"}},
	{field: "email", aliases: []string{"email", "e-mail", "adresse e-mail", "courriel"}},
	{field: "phone", aliases: []string{"telephone", "tel", "numero de telephone", "phone"}},
	{field: "address", aliases: []string{"adresse", "address"}},
}

var supplierProfile = profile{
	{field: "name", aliases: []string{"nom", "nom du fournisseur", "fournisseur", "name", "supplier"}, required: true},
	{field: "contact_person", aliases: []string{"contact", "personne a contacter", "contact person", "contact_person"}},
	{field: "email", aliases: []string{"email", "e-mail", "adresse e-mail", "courriel"}},
	{field: "phone", aliases: []string{"telephone", "tel", "numero de telephone", "phone"}},
	{field: "address", aliases: []string{"adresse", "address"}},
}

// match maps each field of the profile to its index in header. Missing
// required fields are returned by name.
func (p profile) match(header []string) (map[string]int, []string) {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		key := foldHeader(h)
		if _, dup := seen[key]; !dup && key != "" {
			seen[key] = i
		}
	}

	cols := make(map[string]int, len(p))

	var missing []string

	for _, c := range p {
		for _, alias := range c.aliases {
			if idx, ok := seen[alias]; ok {
				cols[c.field] = idx
				break
			}
		}

		if _, ok := cols[c.field]; !ok && c.required {
			missing = append(missing, c.field)
		}
	}

	return cols, missing
}

// foldHeader lowercases and strips accents: "Prénom " becomes "prenom".
func foldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}

	return folded
}
