package supplier

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ardoise/internal/supplier"
	"github.com/MrJamesThe3rd/ardoise/internal/http/form"
	"github.com/MrJamesThe3rd/ardoise/internal/http/render"
	"github.com/MrJamesThe3rd/ardoise/internal/importer"
	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/statement"
)

const nav = "suppliers"

type Handler struct {
	svc      *supplier.Service
	importer *importer.Service
	pdf      *statement.Renderer
	pages    *render.Renderer
	money    *money.Formatter
	metrics  *metrics.Metrics
}

func NewHandler(
	svc *supplier.Service,
	importSvc *importer.Service,
	pdf *statement.Renderer,
	pages *render.Renderer,
	fmtr *money.Formatter,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		svc:      svc,
		importer: importSvc,
		pdf:      pdf,
		pages:    pages,
		money:    fmtr,
		metrics:  m,
	}
}

// Routes mounts the supplier pages under /fournisseurs.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/ajouter/", h.newSupplier)
	r.Post("/ajouter/", h.createSupplier)
	r.Get("/importer/", h.importForm)
	r.Post("/importer/", h.importCSV)
	r.Get("/{id}/", h.detail)
	r.Post("/{id}/", h.pay)
	r.Get("/{id}/releve.pdf", h.statementPDF)
}

// CreditRoutes mounts the credit creation form under /credits.
func (h *Handler) CreditRoutes(r chi.Router) {
	r.Get("/ajouter/", h.newCredit)
	r.Post("/ajouter/", h.createCredit)
}

type listData struct {
	Query   string
	Suppliers []*supplier.Summary
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	suppliers, err := h.svc.List(r.Context(), supplier.ListFilter{Query: query})
	if err != nil {
		h.internalError(w, r, "failed to list suppliers", err)
		return
	}

	h.pages.HTML(w, r, http.StatusOK, "supplier_list", nav, listData{Query: query, Suppliers: suppliers})
}

type detailData struct {
	Statement *supplier.Statement
	Form      *form.Form
	CanPay    bool
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStatement(w, r)
	if !ok {
		return
	}

	f := h.paymentForm(st)
	f.SetValue("date_paid", today())

	h.renderDetail(w, r, http.StatusOK, st, f)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStatement(w, r)
	if !ok {
		return
	}

	f := h.paymentForm(st)

	var in form.SupplierPaymentInput

	valid, err := f.Bind(r, &in)
	if err != nil {
		h.pages.Error(w, r, http.StatusBadRequest, "Formulaire illisible.")
		return
	}

	if !valid {
		h.renderDetail(w, r, http.StatusUnprocessableEntity, st, f)
		return
	}

	_, err = h.svc.RecordPayment(r.Context(), st.Supplier.ID, in.Params())
	if errors.Is(err, supplier.ErrCreditNotOwned) || errors.Is(err, supplier.ErrCreditNotOutstanding) {
		f.AddError("credit", form.InvalidChoice)
		h.renderDetail(w, r, http.StatusUnprocessableEntity, st, f)

		return
	}

	if err != nil {
		h.internalError(w, r, "failed to record payment", err)
		return
	}

	h.metrics.RecordPayment(metrics.SideSupplier)
	slog.InfoContext(r.Context(), "payment recorded", "supplier_id", st.Supplier.ID, "credit_id", in.CreditID)

	http.Redirect(w, r, fmt.Sprintf("/fournisseurs/%d/", st.Supplier.ID), http.StatusSeeOther)
}

func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, status int, st *supplier.Statement, f *form.Form) {
	h.pages.HTML(w, r, status, "supplier_detail", nav, detailData{
		Statement: st,
		Form:      f,
		CanPay:    len(supplier.OutstandingCredits(st)) > 0,
	})
}

// paymentForm offers only the credits that still have something to pay.
func (h *Handler) paymentForm(st *supplier.Statement) *form.Form {
	f := form.New(form.SupplierPaymentForm)

	var opts []form.Option
	for _, l := range supplier.OutstandingCredits(st) {
		opts = append(opts, form.Option{
			Value: strconv.FormatInt(l.Credit.ID, 10),
			Label: fmt.Sprintf("%s (%s) · reste %s",
				l.Credit.Description, l.Credit.DateIncurred.Format("02/01/2006"), h.money.Format(l.Remaining)),
		})
	}

	f.SetOptions("credit", opts)

	return f
}

func (h *Handler) loadStatement(w http.ResponseWriter, r *http.Request) (*supplier.Statement, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.pages.Error(w, r, http.StatusNotFound, "Fournisseur introuvable.")
		return nil, false
	}

	st, err := h.svc.Statement(r.Context(), id)
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			h.pages.Error(w, r, http.StatusNotFound, "Fournisseur introuvable.")
			return nil, false
		}

		h.internalError(w, r, "failed to load supplier", err)

		return nil, false
	}

	return st, true
}

func (h *Handler) newSupplier(w http.ResponseWriter, r *http.Request) {
	h.renderSupplierForm(w, r, http.StatusOK, form.New(form.SupplierForm))
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	f := form.New(form.SupplierForm)

	var in form.SupplierInput

	valid, err := f.Bind(r, &in)
	if err != nil {
		h.pages.Error(w, r, http.StatusBadRequest, "Formulaire illisible.")
		return
	}

	if !valid {
		h.renderSupplierForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	s, err := h.svc.Create(r.Context(), in.Params())
	if err != nil {
		h.internalError(w, r, "failed to create supplier", err)
		return
	}

	h.metrics.RecordCreated(metrics.KindSupplier, 1)
	slog.InfoContext(r.Context(), "supplier created", "supplier_id", s.ID)

	http.Redirect(w, r, "/fournisseurs/", http.StatusSeeOther)
}

func (h *Handler) renderSupplierForm(w http.ResponseWriter, r *http.Request, status int, f *form.Form) {
	h.pages.HTML(w, r, status, "form", nav, form.Page{
		Title:  "Ajouter un fournisseur",
		Action: "/fournisseurs/ajouter/",
		Back:   "/fournisseurs/",
		Form:   f,
	})
}

func (h *Handler) newCredit(w http.ResponseWriter, r *http.Request) {
	f, err := h.creditForm(r)
	if err != nil {
		h.internalError(w, r, "failed to list suppliers", err)
		return
	}

	f.SetValue("supplier", r.URL.Query().Get("fournisseur"))
	f.SetValue("date_incurred", today())

	h.renderCreditForm(w, r, http.StatusOK, f)
}

func (h *Handler) createCredit(w http.ResponseWriter, r *http.Request) {
	f, err := h.creditForm(r)
	if err != nil {
		h.internalError(w, r, "failed to list suppliers", err)
		return
	}

	var in form.CreditInput

	valid, err := f.Bind(r, &in)
	if err != nil {
		h.pages.Error(w, r, http.StatusBadRequest, "Formulaire illisible.")
		return
	}

	if !valid {
		h.renderCreditForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	credit, err := h.svc.CreateCredit(r.Context(), in.Params())
	if errors.Is(err, supplier.ErrNotFound) {
		f.AddError("supplier", form.InvalidChoice)
		h.renderCreditForm(w, r, http.StatusUnprocessableEntity, f)

		return
	}

	if err != nil {
		h.internalError(w, r, "failed to create credit", err)
		return
	}

	h.metrics.RecordCreated(metrics.KindCredit, 1)
	slog.InfoContext(r.Context(), "credit created", "credit_id", credit.ID, "supplier_id", credit.SupplierID)

	http.Redirect(w, r, "/fournisseurs/", http.StatusSeeOther)
}

func (h *Handler) creditForm(r *http.Request) (*form.Form, error) {
	suppliers, err := h.svc.List(r.Context(), supplier.ListFilter{})
	if err != nil {
		return nil, err
	}

	opts := make([]form.Option, len(suppliers))
	for i, s := range suppliers {
		opts[i] = form.Option{Value: strconv.FormatInt(s.Supplier.ID, 10), Label: s.Supplier.DisplayName()}
	}

	f := form.New(form.CreditForm)
	f.SetOptions("supplier", opts)

	return f, nil
}

func (h *Handler) renderCreditForm(w http.ResponseWriter, r *http.Request, status int, f *form.Form) {
	h.pages.HTML(w, r, status, "form", nav, form.Page{
		Title:  "Ajouter un crédit",
		Action: "/credits/ajouter/",
		Back:   "/fournisseurs/",
		Form:   f,
	})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	h.pages.Error(w, r, http.StatusInternalServerError, "Une erreur interne est survenue.")
}
