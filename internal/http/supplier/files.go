package supplier

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/ardoise/internal/importer"
	"github.com/MrJamesThe3rd/ardoise/internal/metrics"
	"github.com/MrJamesThe3rd/ardoise/internal/statement"
)

const importColumns = "Nom ; Contact ; E-mail ; Téléphone ; Adresse"

type importData struct {
	Title   string
	Action  string
	Back    string
	Columns string
	Error   string
}

func (h *Handler) importForm(w http.ResponseWriter, r *http.Request) {
	h.renderImport(w, r, http.StatusOK, "")
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(importer.MaxUploadSize); err != nil {
		h.renderImport(w, r, http.StatusBadRequest, "Fichier trop volumineux ou formulaire invalide.")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.renderImport(w, r, http.StatusUnprocessableEntity, "Sélectionnez un fichier à importer.")
		return
	}
	defer file.Close()

	n, err := h.importer.Import(r.Context(), importer.KindSuppliers, file)
	if err != nil {
		if importer.Rejected(err) {
			h.renderImport(w, r, http.StatusUnprocessableEntity, "Fichier refusé : "+err.Error())
			return
		}

		h.internalError(w, r, "failed to import suppliers", err)

		return
	}

	h.metrics.RecordCreated(metrics.KindSupplier, n)
	slog.InfoContext(r.Context(), "suppliers imported", "count", n)

	http.Redirect(w, r, "/fournisseurs/", http.StatusSeeOther)
}

func (h *Handler) renderImport(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.pages.HTML(w, r, status, "import", nav, importData{
		Title:   "Importer des fournisseurs",
		Action:  "/fournisseurs/importer/",
		Back:    "/fournisseurs/",
		Columns: importColumns,
		Error:   msg,
	})
}

func (h *Handler) statementPDF(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadStatement(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.pdf.Render(&buf, statement.FromSupplier(st)); err != nil {
		h.internalError(w, r, "failed to render statement", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="releve-fournisseur-%d.pdf"`, st.Supplier.ID))

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write statement", "supplier_id", st.Supplier.ID, "error", err)
	}
}

func today() string {
	return time.Now().Format(time.DateOnly)
}
