package analyses

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/extract"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/middleware"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/respond"
)

const (
	maxUploadFiles = 10
	maxFileBytes   = 10 << 20
)

// allowedDocumentTypes covers document analysis uploads. Image uploads are
// accepted here too since scanned plans arrive as photos.
var allowedDocumentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"text/csv":   {},
	"text/plain": {},
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Handler serves the analysis endpoints.
type Handler struct {
	Service *Service
	Now     func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service, Now: time.Now}
}

// Register mounts the analysis routes on the given group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("/plans/analyze", h.AnalyzePlan)
	group.GET("/plans/:year", h.GetPlan)
	group.POST("/trainings/analyze", h.AnalyzeTraining)
	group.POST("/photos/analyze", h.AnalyzePhoto)
}

// AnalyzePlan analyzes annual audit plan documents.
func (h *Handler) AnalyzePlan(c *gin.Context) {
	h.analyze(c, PlanFlow(), allowedDocumentTypes)
}

// AnalyzeTraining analyzes annual training plan documents.
func (h *Handler) AnalyzeTraining(c *gin.Context) {
	h.analyze(c, TrainingFlow(), allowedDocumentTypes)
}

// AnalyzePhoto analyzes photographed plan documents.
func (h *Handler) AnalyzePhoto(c *gin.Context) {
	h.analyze(c, PhotoFlow(), allowedImageTypes)
}

// GetPlan returns the stored plan analysis for a year.
func (h *Handler) GetPlan(c *gin.Context) {
	org := middleware.OrgFromContext(c)
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		respond.Error(c, http.StatusBadRequest, "INVALID_YEAR", "year must be a four digit year", nil)
		return
	}
	record, err := h.Service.GetPlan(c.Request.Context(), org.OrganizationID, year)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "NOT_FOUND", "no plan analysis stored for this year", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load plan analysis", nil)
		return
	}
	respond.OK(c, gin.H{"record": record})
}

func (h *Handler) analyze(c *gin.Context, policy FlowPolicy, allowed map[string]struct{}) {
	org := middleware.OrgFromContext(c)

	year, ok := h.parseYear(c)
	if !ok {
		return
	}

	files, ok := h.readFiles(c, allowed)
	if !ok {
		return
	}

	outcome, err := h.Service.Analyze(c.Request.Context(), policy, AnalyzeInput{
		OrgID:   org.OrganizationID,
		ActorID: org.ActorID,
		Year:    year,
		Files:   files,
	})
	if err != nil {
		h.respondAnalyzeError(c, err)
		return
	}

	respond.Success(c, gin.H{
		"year":    outcome.Result.Year,
		"summary": outcome.Result.Summary,
		"items":   outcome.Result.Items,
		"meta":    outcome.Meta,
	}, outcome.Persisted)
}

// parseYear reads the year form field, defaulting to the current year.
func (h *Handler) parseYear(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.PostForm("year"))
	if raw == "" {
		return h.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		respond.Error(c, http.StatusBadRequest, "INVALID_YEAR", "year must be a four digit year", nil)
		return 0, false
	}
	return year, true
}

func (h *Handler) readFiles(c *gin.Context, allowed map[string]struct{}) ([]extract.Document, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeNoFiles, "multipart form with files is required", nil)
		return nil, false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeNoFiles, "at least one file is required", nil)
		return nil, false
	}
	if len(headers) > maxUploadFiles {
		respond.Error(c, http.StatusBadRequest, "TOO_MANY_FILES",
			fmt.Sprintf("at most %d files per request", maxUploadFiles), nil)
		return nil, false
	}

	files := make([]extract.Document, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxFileBytes {
			respond.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("%s exceeds the %d MiB limit", header.Filename, maxFileBytes>>20), nil)
			return nil, false
		}
		contentType := normalizeContentType(header)
		if _, ok := allowed[contentType]; !ok {
			respond.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
				fmt.Sprintf("%s has unsupported type %s", header.Filename, contentType), nil)
			return nil, false
		}
		data, err := readFile(header)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "UNREADABLE_FILE",
				fmt.Sprintf("unable to read %s", header.Filename), nil)
			return nil, false
		}
		files = append(files, extract.Document{
			Name:     header.Filename,
			MimeType: contentType,
			Data:     data,
		})
	}
	return files, true
}

func (h *Handler) respondAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoFiles):
		respond.Error(c, http.StatusBadRequest, ErrorCodeNoFiles, "at least one file is required", nil)
	case errors.Is(err, ErrUnreadableInput):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeUnreadableInput, "none of the uploaded files could be read", nil)
	case errors.Is(err, ErrInsufficientContent):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeInsufficientContent, "the uploaded documents contain too little text to analyze", nil)
	case errors.Is(err, llm.ErrExhausted):
		if retryable, ok := llm.AsRetryable(err); ok && retryable.Status == http.StatusTooManyRequests {
			respond.Error(c, http.StatusTooManyRequests, ErrorCodeRateLimited, "the analysis models are rate limited, try again shortly", nil)
			return
		}
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeModelUnavailable, "the analysis models are unavailable, try again later", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "analysis failed", nil)
	}
}

func normalizeContentType(header *multipart.FileHeader) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(header.Header.Get("Content-Type"), ";")[0]))
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
