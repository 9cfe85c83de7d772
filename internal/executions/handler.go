package executions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/middleware"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/respond"
)

// Handler serves execution tracking endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Register mounts the execution routes on the given group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.GET("/executions/:year", h.List)
	group.PATCH("/executions/:id/complete", h.Complete)
	group.PATCH("/executions/:id/undo", h.Undo)
}

// List returns the execution records for a plan year.
func (h *Handler) List(c *gin.Context) {
	org := middleware.OrgFromContext(c)
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		respond.Error(c, http.StatusBadRequest, "INVALID_YEAR", "year must be a four digit year", nil)
		return
	}
	records, err := h.Service.List(c.Request.Context(), org.OrganizationID, year)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list execution records", nil)
		return
	}
	respond.OK(c, gin.H{"records": records})
}

// Complete marks one record as executed by the current member.
func (h *Handler) Complete(c *gin.Context) {
	org := middleware.OrgFromContext(c)
	record, err := h.Service.MarkExecuted(c.Request.Context(), org.OrganizationID, c.Param("id"), org.ActorID)
	h.respondRecord(c, record, err)
}

// Undo clears the executed state of one record.
func (h *Handler) Undo(c *gin.Context) {
	org := middleware.OrgFromContext(c)
	record, err := h.Service.UndoExecuted(c.Request.Context(), org.OrganizationID, c.Param("id"))
	h.respondRecord(c, record, err)
}

func (h *Handler) respondRecord(c *gin.Context, record Record, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "NOT_FOUND", "execution record not found", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update execution record", nil)
		return
	}
	respond.OK(c, gin.H{"record": record})
}
