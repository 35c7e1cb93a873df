package roster

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ecopuntos/ecoroster/internal/repository"
)

// maxUploadBytes caps roster uploads at 10 MiB, matching the template size
// guidance given to school staff.
const maxUploadBytes = 10 << 20

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type sectionInfo struct {
	CourseName   *string `json:"curso_nombre"`
	ParallelName *string `json:"paralelo_nombre"`
}

type importResponse struct {
	Inserted         int          `json:"insertados"`
	Updated          int          `json:"actualizados"`
	Skipped          int          `json:"omitidos"`
	ErrorCount       int          `json:"errores_count"`
	AffectedStudents int          `json:"estudiantes_afectados"`
	Errors           []RowError   `json:"errores"`
	Messages         []string     `json:"mensajes"`
	Section          *sectionInfo `json:"curso_info"`
}

// ImportHandler exposes the importer as a multipart upload endpoint.
type ImportHandler struct {
	service *Service
}

// NewImportHandler wraps the service with a POST endpoint.
func NewImportHandler(service *Service) http.Handler {
	return &ImportHandler{service: service}
}

func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Message: "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: fmt.Sprintf("invalid form data: %v", err)})
		return
	}

	file, header, err := r.FormFile("archivo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "El archivo es obligatorio."})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		writeJSON(w, http.StatusUnprocessableEntity, envelope{
			Success: false,
			Message: fmt.Sprintf("Formato no soportado (%s). Sube la plantilla en formato .xlsx.", ext),
		})
		return
	}

	outcome := h.service.ImportReader(r.Context(), file)

	message := fmt.Sprintf(
		"Importación completada: %d nuevos insertados, %d actualizados, %d omitidos, %d errores",
		outcome.Inserted, outcome.Updated, outcome.Skipped, outcome.ErrorCount(),
	)

	var section *sectionInfo
	if outcome.CourseName != nil || outcome.ParallelName != nil {
		section = &sectionInfo{CourseName: outcome.CourseName, ParallelName: outcome.ParallelName}
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: message,
		Data: importResponse{
			Inserted:         outcome.Inserted,
			Updated:          outcome.Updated,
			Skipped:          outcome.Skipped,
			ErrorCount:       outcome.ErrorCount(),
			AffectedStudents: outcome.Inserted + outcome.Updated,
			Errors:           outcome.Errors,
			Messages:         outcome.Messages,
			Section:          section,
		},
	})
}

// TemplateHandler serves the downloadable roster template.
type TemplateHandler struct{}

// NewTemplateHandler returns the template download endpoint.
func NewTemplateHandler() http.Handler {
	return &TemplateHandler{}
}

func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Message: "method not allowed"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", TemplateFileName))
	if err := WriteTemplate(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HistoryHandler lists past import runs, newest first.
type HistoryHandler struct {
	history repository.ImportHistoryRepository
}

// NewHistoryHandler returns the import history listing endpoint.
func NewHistoryHandler(history repository.ImportHistoryRepository) http.Handler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Message: "method not allowed"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.history.List(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok", Data: entries})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
