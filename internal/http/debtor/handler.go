package debtor

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ardoise/internal/debtor"
	"github.com/MrJamesThe3rd/ardoise/internal/http/form"
	"github.com/MrJamesThe3rd/ardoise/internal/http/render"
	"github.com/MrJamesThe3rd/ardoise/internal/importer"
	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
	"github.com/MrJamesThe3rd/ardoise/internal/statement"
)

const nav = "debtors"

type Handler struct {
	svc      *debtor.Service
	importer *importer.Service
	pdf      *statement.Renderer
	pages    *render.Renderer
	money    *money.Formatter
	metrics  *metrics.Metrics
}

func NewHandler(
	svc *debtor.Service,
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

// Routes mounts the debtor pages under /debiteurs.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/ajouter/", h.newDebtor)
	r.Post("/ajouter/", h.createDebtor)
	r.Get("/importer/", h.importForm)
	r.Post("/importer/", h.importCSV)
	r.Get("/{id}/", h.detail)
	r.Post("/{id}/", h.pay)
	r.Get("/{id}/releve.pdf", h.statementPDF)
}

// DebtRoutes mounts the debt creation form under /dettes.
func (h *Handler) DebtRoutes(r chi.Router) {
	r.Get("/ajouter/", h.newDebt)
	r.Post("/ajouter/", h.createDebt)
}

type listData struct {
	Query   string
	Debtors []*debtor.Summary
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	debtors, err := h.svc.List(r.Context(), debtor.ListFilter{Query: query})
	if err != nil {
		h.internalError(w, r, "failed to list debtors", err)
		return
	}

	h.pages.HTML(w, r, http.StatusOK, "debtor_list", nav, listData{Query: query, Debtors: debtors})
}

type detailData struct {
	Statement *debtor.Statement
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

	var in form.PaymentInput

	valid, err := f.Bind(r, &in)
	if err != nil {
		h.pages.Error(w, r, http.StatusBadRequest, "Formulaire illisible.")
		return
	}

	if !valid {
		h.renderDetail(w, r, http.StatusUnprocessableEntity, st, f)
		return
	}

	_, err = h.svc.RecordPayment(r.Context(), st.Debtor.ID, in.Params())
	if errors.Is(err, debtor.ErrDebtNotOwned) || errors.Is(err, debtor.ErrDebtNotOutstanding) {
		f.AddError("debt", form.InvalidChoice)
		h.renderDetail(w, r, http.StatusUnprocessableEntity, st, f)

		return
	}

	if err != nil {
		h.internalError(w, r, "failed to record payment", err)
		return
	}

	h.metrics.RecordPayment(metrics.SideDebtor)
	slog.InfoContext(r.Context(), "payment recorded", "debtor_id", st.Debtor.ID, "debt_id", in.DebtID)

	http.Redirect(w, r, fmt.Sprintf("/debiteurs/%d/", st.Debtor.ID), http.StatusSeeOther)
}

func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, status int, st *debtor.Statement, f *form.Form) {
	h.pages.HTML(w, r, status, "debtor_detail", nav, detailData{
		Statement: st,
		Form:      f,
		CanPay:    len(debtor.OutstandingDebts(st)) > 0,
	})
}

// paymentForm offers only the debts that still have something to pay.
func (h *Handler) paymentForm(st *debtor.Statement) *form.Form {
	f := form.New(form.PaymentForm)

	var opts []form.Option
	for _, l := range debtor.OutstandingDebts(st) {
		opts = append(opts, form.Option{
			Value: strconv.FormatInt(l.Debt.ID, 10),
			Label: fmt.Sprintf("%s (%s) · reste %s",
				l.Debt.Description, l.Debt.DateIncurred.Format("02/01/2006"), h.money.Format(l.Remaining)),
		})
	}

	f.SetOptions("debt", opts)

	return f
}

func (h *Handler) loadStatement(w http.ResponseWriter, r *http.Request) (*debtor.Statement, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.pages.Error(w, r, http.StatusNotFound, "Débiteur introuvable.")
		return nil, false
	}

	st, err := h.svc.Statement(r.Context(), id)
	if err != nil {
		if errors.Is(err, debtor.ErrNotFound) {
			h.pages.Error(w, r, http.StatusNotFound, "Débiteur introuvable.")
			return nil, false
		}

		h.internalError(w, r, "failed to load debtor", err)

		return nil, false
	}

	return st, true
}

func (h *Handler) newDebtor(w http.ResponseWriter, r *http.Request) {
	h.renderDebtorForm(w, r, http.StatusOK, form.New(form.DebtorForm))
}

func (h *Handler) createDebtor(w http.ResponseWriter, r *http.Request) {
	f := form.New(form.DebtorForm)

	var in form.DebtorInput

	valid, err := f.Bind(r, &in)
	if err != nil {
		h.pages.Error(w, r, http.StatusBadRequest, "Formulaire illisible.")
		return
	}

	if !valid {
		h.renderDebtorForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	d, err := h.svc.Create(r.Context(), in.Params())
	if err != nil {
		h.internalError(w, r, "failed to create debtor", err)
		return
	}

	h.metrics.RecordCreated(metrics.KindDebtor, 1)
	slog.InfoContext(r.Context(), "debtor created", "debtor_id", d.ID)

	http.Redirect(w, r, "/debiteurs/", http.StatusSeeOther)
}

func (h *Handler) renderDebtorForm(w http.ResponseWriter, r *http.Request, status int, f *form.Form) {
	h.pages.HTML(w, r, status, "form", nav, form.Page{
		Title:  "Ajouter un débiteur",
		Action: "/debiteurs/ajouter/",
		Back:   "/debiteurs/",
		Form:   f,
	})
}

func (h *Handler) newDebt(w http.ResponseWriter, r *http.Request) {
	f, err := h.debtForm(r)
	if err != nil {
		h.internalError(w, r, "failed to list debtors", err)
		return
	}

	f.SetValue("debtor", r.URL.Query().Get("debiteur"))
	f.SetValue("date_incurred", today())

	h.renderDebtForm(w, r, http.StatusOK, f)
}

func (h *Handler) createDebt(w http.ResponseWriter, r *http.Request) {
	f, err := h.debtForm(r)
	if err != nil {
		h.internalError(w, r, "failed to list debtors", err)
		return
	}

	var in form.DebtInput

	valid, err := f.Bind(r, &in)
	if err != nil {
		h.pages.Error(w, r, http.StatusBadRequest, "Formulaire illisible.")
		return
	}

	if !valid {
		h.renderDebtForm(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	debt, err := h.svc.CreateDebt(r.Context(), in.Params())
	if errors.Is(err, debtor.ErrNotFound) {
		f.AddError("debtor", form.InvalidChoice)
		h.renderDebtForm(w, r, http.StatusUnprocessableEntity, f)

		return
	}

	if err != nil {
		h.internalError(w, r, "failed to create debt", err)
		return
	}

	h.metrics.RecordCreated(metrics.KindDebt, 1)
	slog.InfoContext(r.Context(), "debt created", "debt_id", debt.ID, "debtor_id", debt.DebtorID)

	http.Redirect(w, r, "/debiteurs/", http.StatusSeeOther)
}

func (h *Handler) debtForm(r *http.Request) (*form.Form, error) {
	debtors, err := h.svc.List(r.Context(), debtor.ListFilter{})
	if err != nil {
		return nil, err
	}

	opts := make([]form.Option, len(debtors))
	for i, s := range debtors {
		opts[i] = form.Option{Value: strconv.FormatInt(s.Debtor.ID, 10), Label: s.Debtor.DisplayName()}
	}

	f := form.New(form.DebtForm)
	f.SetOptions("debtor", opts)

	return f, nil
}

func (h *Handler) renderDebtForm(w http.ResponseWriter, r *http.Request, status int, f *form.Form) {
	h.pages.HTML(w, r, status, "form", nav, form.Page{
		Title:  "Ajouter une dette",
		Action: "/dettes/ajouter/",
		Back:   "/debiteurs/",
		Form:   f,
	})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	h.pages.Error(w, r, http.StatusInternalServerError, "Une erreur interne est survenue.")
}
