// Package form declares the HTML forms of the site and binds submitted
// values to validated input structs.
package form

type Widget string

const (
	WidgetText     Widget = "text"
	WidgetEmail    Widget = "email"
	WidgetTel      Widget = "tel"
	WidgetTextarea Widget = "textarea"
	WidgetNumber   Widget = "number"
	WidgetDate     Widget = "date"
	WidgetSelect   Widget = "select"
)

// Field is the static description of one input.
type Field struct {
	Name        string
	Label       string
	Widget      Widget
	Required    bool
	Rows        int
	Step        string
	Placeholder string
}

type Declaration struct {
	Name   string
	Fields []Field
}

var DebtorForm = Declaration{
	Name: "debtor",
	Fields: []Field{
		{Name: "first_name", Label: "Prénom", Widget: WidgetText, Required: true},
		{Name: "last_name", Label: "Nom", Widget: WidgetText, Required: true},
		{Name: "company", Label: "Entreprise", Widget: WidgetText},
		{Name: "email", Label: "E-mail", Widget: WidgetEmail},
		{Name: "phone", Label: "Téléphone", Widget: WidgetTel},
		{Name: "address", Label: "Adresse", Widget: WidgetTextarea, Rows: 3},
	},
}

var DebtForm = Declaration{
	Name: "debt",
	Fields: []Field{
		{Name: "debtor", Label: "Débiteur", Widget: WidgetSelect, Required: true},
		{Name: "amount", Label: "Montant", Widget: WidgetNumber, Step: "0.01", Required: true},
		{Name: "description", Label: "Description", Widget: WidgetTextarea, Rows: 3, Required: true},
		{Name: "date_incurred", Label: "Date", Widget: WidgetDate, Required: true},
	},
}

var PaymentForm = Declaration{
	Name: "payment",
	Fields: []Field{
		{Name: "debt", Label: "Dette", Widget: WidgetSelect, Required: true},
		{Name: "amount", Label: "Montant", Widget: WidgetNumber, Step: "0.01", Required: true},
		{Name: "date_paid", Label: "Date du paiement", Widget: WidgetDate, Required: true},
		{Name: "notes", Label: "Notes", Widget: WidgetTextarea, Rows: 2},
	},
}

var SupplierForm = Declaration{
	Name: "supplier",
	Fields: []Field{
		{Name: "name", Label: "Nom", Widget: WidgetText, Required: true},
		{Name: "contact_person", Label: "Personne à contacter", Widget: WidgetText},
		{Name: "email", Label: "E-mail", Widget: WidgetEmail},
		{Name: "phone", Label: "Téléphone", Widget: WidgetTel},
		{Name: "address", Label: "Adresse", Widget: WidgetTextarea, Rows: 3},
	},
}

var CreditForm = Declaration{
	Name: "credit",
	Fields: []Field{
		{Name: "supplier", Label: "Fournisseur", Widget: WidgetSelect, Required: true},
		{Name: "amount", Label: "Montant", Widget: WidgetNumber, Step: "0.01", Required: true},
		{Name: "description", Label: "Description", Widget: WidgetTextarea, Rows: 3, Required: true},
		{Name: "date_incurred", Label: "Date", Widget: WidgetDate, Required: true},
	},
}

var SupplierPaymentForm = Declaration{
	Name: "supplier_payment",
	Fields: []Field{
		{Name: "credit", Label: "Crédit", Widget: WidgetSelect, Required: true},
		{Name: "amount", Label: "Montant", Widget: WidgetNumber, Step: "0.01", Required: true},
		{Name: "date_paid", Label: "Date du paiement", Widget: WidgetDate, Required: true},
		{Name: "notes", Label: "Notes", Widget: WidgetTextarea, Rows: 2},
	},
}

// Page feeds the generic create form template.
type Page struct {
	Title  string
	Action string
	Back   string
	Form   *Form
}
