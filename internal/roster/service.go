package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ecopuntos/ecoroster/internal/domain"
	"github.com/ecopuntos/ecoroster/internal/repository"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Fixed template layout: section header in row 2, column headers in row 12,
// student rows from 13 down.
const (
	headerRow      = 2
	courseColumn   = "B"
	parallelColumn = "E"
	dataStartRow   = 13

	namesColumn     = "A"
	surnameColumn   = "B"
	emailColumn     = "C"
	birthDateColumn = "D"
	genderColumn    = "E"

	placeholderMarker = "[Escriba aquí"
)

var (
	courseLabelPattern   = regexp.MustCompile(`(?i)^\s*curso\s*[:\-]?\s*`)
	parallelLabelPattern = regexp.MustCompile(`(?i)^\s*paralelo\s*[:\-]?\s*`)
	bracketPrefixPattern = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)

	birthDateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"02/01/2006",
		"01/02/2006",
		time.RFC3339,
	}
)

// Service imports student rosters from the fixed xlsx template.
type Service struct {
	users    repository.UserRepository
	students repository.StudentRepository
	sections repository.SectionRepository
	history  repository.ImportHistoryRepository
	validate *validator.Validate
	logger   *log.Logger
}

// NewService creates a new roster import service.
func NewService(
	users repository.UserRepository,
	students repository.StudentRepository,
	sections repository.SectionRepository,
	history repository.ImportHistoryRepository,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		users:    users,
		students: students,
		sections: sections,
		history:  history,
		validate: validator.New(),
		logger:   logger,
	}
}

// RowError describes why one spreadsheet row was rejected.
type RowError struct {
	Row     int    `json:"fila"`
	Message string `json:"mensaje"`
}

// Outcome is the aggregate result of one import run. It is owned by a single
// invocation and never shared.
type Outcome struct {
	Inserted     int        `json:"insertados"`
	Updated      int        `json:"actualizados"`
	Skipped      int        `json:"omitidos"`
	Errors       []RowError `json:"errores"`
	Messages     []string   `json:"mensajes"`
	CourseName   *string    `json:"curso_nombre"`
	ParallelName *string    `json:"paralelo_nombre"`
}

func newOutcome() Outcome {
	return Outcome{Errors: []RowError{}, Messages: []string{}}
}

// ErrorCount returns the number of rejected rows plus fatal errors.
func (o Outcome) ErrorCount() int {
	return len(o.Errors)
}

func (o Outcome) withError(row int, message string) Outcome {
	o.Errors = append(o.Errors, RowError{Row: row, Message: message})
	return o
}

func (o Outcome) withMessage(message string) Outcome {
	o.Messages = append(o.Messages, message)
	return o
}

// RosterRow is one validated candidate student extracted from a sheet row.
type RosterRow struct {
	Names     string
	Surname   string
	Email     string
	BirthDate *time.Time
	Gender    string
}

// importTarget is the section resolved from the header region, computed once
// per run.
type importTarget struct {
	sectionID uuid.UUID
	resolved  bool
}

// ImportReader runs an import over an uploaded xlsx stream. A workbook that
// cannot be opened produces a row-0 error; the history entry is still
// attempted.
func (s *Service) ImportReader(ctx context.Context, r io.Reader) Outcome {
	ws, err := OpenWorkbook(r)
	if err != nil {
		outcome := newOutcome().withError(0, "Error al leer el archivo: "+err.Error())
		s.finalize(ctx, importTarget{}, outcome)
		return outcome
	}
	defer func() { _ = ws.Close() }()

	return s.Import(ctx, ws)
}

// ImportFile runs an import over an xlsx file on disk.
func (s *Service) ImportFile(ctx context.Context, path string) Outcome {
	ws, err := OpenWorkbookFile(path)
	if err != nil {
		outcome := newOutcome().withError(0, "Error al leer el archivo: "+err.Error())
		s.finalize(ctx, importTarget{}, outcome)
		return outcome
	}
	defer func() { _ = ws.Close() }()

	return s.Import(ctx, ws)
}

// Import resolves the target section from the sheet header, folds every data
// row through validation and reconciliation, and always records exactly one
// history entry. Row failures never abort the run.
func (s *Service) Import(ctx context.Context, ws Worksheet) Outcome {
	outcome := newOutcome()

	target, outcome := s.resolveTarget(ctx, ws, outcome)
	if target.resolved {
		highest := ws.HighestRow()
		for row := dataStartRow; row <= highest; row++ {
			outcome = s.processRow(ctx, ws, target.sectionID, row, outcome)
		}
	}

	s.finalize(ctx, target, outcome)
	return outcome
}

// resolveTarget reads the course name from B2 and the parallel name from E2
// and resolves the (course, parallel) section. Any failure here is fatal for
// the whole run.
func (s *Service) resolveTarget(ctx context.Context, ws Worksheet, outcome Outcome) (importTarget, Outcome) {
	courseRaw := ws.Cell(courseColumn, headerRow).String()
	parallelRaw := ws.Cell(parallelColumn, headerRow).String()

	if strings.Contains(courseRaw, placeholderMarker) || strings.Contains(parallelRaw, placeholderMarker) {
		return importTarget{}, outcome.withError(headerRow,
			"Reemplaza el texto de ejemplo en B2 y E2 por el Curso y el Paralelo reales.")
	}

	courseName := stripHeaderLabel(courseRaw, courseLabelPattern)
	parallelName := stripHeaderLabel(parallelRaw, parallelLabelPattern)

	if courseName == "" {
		outcome = outcome.withError(headerRow, "Falta escribir el Curso en la celda B2.")
	}
	if parallelName == "" {
		outcome = outcome.withError(headerRow, "Falta escribir el Paralelo en la celda E2.")
	}
	if len(outcome.Errors) > 0 {
		return importTarget{}, outcome
	}

	courses, err := s.sections.ListCourses(ctx)
	if err != nil {
		return importTarget{}, outcome.withError(headerRow, "No se pudo leer el Curso (B2) y Paralelo (E2). Detalle: "+err.Error())
	}
	courseKey := NormalizeCourse(courseName)
	var courseID uuid.UUID
	courseFound := false
	for _, course := range courses {
		if NormalizeCourse(course.Name) == courseKey {
			courseID = course.ID
			courseFound = true
			break
		}
	}
	if !courseFound {
		outcome = outcome.withError(headerRow,
			fmt.Sprintf("El Curso '%s' no existe. Revisa que esté escrito igual que en el sistema.", courseName))
	}

	parallels, err := s.sections.ListParallels(ctx)
	if err != nil {
		return importTarget{}, outcome.withError(headerRow, "No se pudo leer el Curso (B2) y Paralelo (E2). Detalle: "+err.Error())
	}
	parallelKey := NormalizeParallel(parallelName)
	var parallelID uuid.UUID
	parallelFound := false
	for _, parallel := range parallels {
		if NormalizeParallel(parallel.Name) == parallelKey {
			parallelID = parallel.ID
			parallelFound = true
			break
		}
	}
	if !parallelFound {
		outcome = outcome.withError(headerRow,
			fmt.Sprintf("El Paralelo '%s' no existe. Revisa que esté escrito igual que en el sistema.", parallelName))
	}

	if len(outcome.Errors) > 0 {
		return importTarget{}, outcome
	}

	section, err := s.sections.GetByCourseAndParallel(ctx, courseID, parallelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return importTarget{}, outcome.withError(headerRow,
				"No encontramos ese Curso con ese Paralelo. Verifica que ambos existan y correspondan.")
		}
		return importTarget{}, outcome.withError(headerRow, "No se pudo leer el Curso (B2) y Paralelo (E2). Detalle: "+err.Error())
	}

	outcome = outcome.withMessage("Listo: se encontró el curso y paralelo para asignar a todos los estudiantes.")
	outcome.CourseName = &courseName
	outcome.ParallelName = &parallelName

	return importTarget{sectionID: section.ID, resolved: true}, outcome
}

// processRow validates one sheet row and reconciles it against existing
// records. Exactly one of inserted/updated/skipped/error advances per
// non-blank row.
func (s *Service) processRow(ctx context.Context, ws Worksheet, sectionID uuid.UUID, rowIdx int, outcome Outcome) Outcome {
	row := RosterRow{
		Names:     ws.Cell(namesColumn, rowIdx).String(),
		Surname:   ws.Cell(surnameColumn, rowIdx).String(),
		Email:     ws.Cell(emailColumn, rowIdx).String(),
		BirthDate: parseBirthDate(ws.Cell(birthDateColumn, rowIdx)),
		Gender:    normalizeGender(ws.Cell(genderColumn, rowIdx).String()),
	}

	// Blank separator rows are skipped silently.
	if row.Names == "" && row.Surname == "" && row.Email == "" {
		return outcome
	}

	if row.Names == "" || row.Surname == "" || row.Email == "" {
		return outcome.withError(rowIdx, "Nombres, apellidos y email son obligatorios")
	}
	if err := s.validate.Var(row.Email, "required,email"); err != nil {
		return outcome.withError(rowIdx, "Email inválido")
	}
	if row.Gender != "" && row.Gender != "M" && row.Gender != "F" {
		return outcome.withError(rowIdx, "Género debe ser M o F")
	}

	result, message, err := s.reconcile(ctx, sectionID, row)
	if err != nil {
		return outcome.withError(rowIdx, "Error al procesar: "+err.Error())
	}

	switch result {
	case rowInserted:
		outcome.Inserted++
	case rowUpdated:
		outcome.Updated++
	case rowSkipped:
		outcome.Skipped++
	}
	return outcome.withMessage(fmt.Sprintf("Fila %d: %s", rowIdx, message))
}

type rowResult int

const (
	rowInserted rowResult = iota
	rowUpdated
	rowSkipped
)

// reconcile decides the fate of one validated row against existing records.
func (s *Service) reconcile(ctx context.Context, sectionID uuid.UUID, row RosterRow) (rowResult, string, error) {
	user, err := s.users.GetByEmail(ctx, row.Email)
	if errors.Is(err, repository.ErrNotFound) {
		created, createErr := s.users.Create(ctx, domain.NewStudentUser(row.Names, row.Surname, row.Email, row.BirthDate, row.Gender))
		if createErr != nil {
			return 0, "", createErr
		}
		if _, createErr := s.students.Create(ctx, domain.Student{UserID: created.ID, SectionID: sectionID}); createErr != nil {
			return 0, "", createErr
		}
		return rowInserted, "Nuevo estudiante creado: " + row.Email, nil
	}
	if err != nil {
		return 0, "", err
	}

	if _, lookupErr := s.students.GetByUserAndSection(ctx, user.ID, sectionID); lookupErr == nil {
		return rowSkipped, "Estudiante ya existe en este curso: " + row.Email, nil
	} else if !errors.Is(lookupErr, repository.ErrNotFound) {
		return 0, "", lookupErr
	}

	// Refresh names from the sheet; the email is the identity and never changes.
	user.Names = row.Names
	user.FirstSurname, user.SecondSurname = domain.SplitSurname(row.Surname)
	if _, updateErr := s.users.Update(ctx, user); updateErr != nil {
		return 0, "", updateErr
	}

	if _, lookupErr := s.students.GetByUser(ctx, user.ID); lookupErr == nil {
		if moveErr := s.students.UpdateSection(ctx, user.ID, sectionID); moveErr != nil {
			return 0, "", moveErr
		}
		return rowUpdated, "Estudiante movido de curso anterior al nuevo curso: " + row.Email, nil
	} else if !errors.Is(lookupErr, repository.ErrNotFound) {
		return 0, "", lookupErr
	}

	if _, createErr := s.students.Create(ctx, domain.Student{UserID: user.ID, SectionID: sectionID}); createErr != nil {
		return 0, "", createErr
	}
	return rowUpdated, "Usuario existente agregado al curso: " + row.Email, nil
}

// finalize writes the history entry for this run. The write is best effort
// and never alters the outcome returned to the caller. When header resolution
// failed, the entry is keyed by the first available section so the failure
// stays visible in history; with no sections at all the write is skipped.
func (s *Service) finalize(ctx context.Context, target importTarget, outcome Outcome) {
	sectionID := target.sectionID
	if !target.resolved {
		section, err := s.sections.First(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("skipping import history entry: no sections exist")
			} else {
				s.logger.Error("failed to pick fallback section for import history", "error", err)
			}
			return
		}
		sectionID = section.ID
	}

	entry := domain.ImportHistoryEntry{
		SectionID:  sectionID,
		Inserted:   outcome.Inserted,
		Updated:    outcome.Updated,
		Skipped:    outcome.Skipped,
		ErrorCount: len(outcome.Errors),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Error("failed to record import history", "error", err)
	}
}

func stripHeaderLabel(value string, label *regexp.Regexp) string {
	value = label.ReplaceAllString(value, "")
	value = bracketPrefixPattern.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

// parseBirthDate interprets numeric cells as Excel date serials and text
// cells through a fixed layout list. Unparseable dates are nil, never a row
// error.
func parseBirthDate(cell Cell) *time.Time {
	switch cell.Kind {
	case CellNumber:
		ts, err := excelize.ExcelDateToTime(cell.Number, false)
		if err != nil {
			return nil
		}
		return &ts
	case CellText:
		raw := strings.TrimSpace(cell.Text)
		for _, layout := range birthDateLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return &ts
			}
		}
		return nil
	default:
		return nil
	}
}
