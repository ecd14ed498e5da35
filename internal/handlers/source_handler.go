package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/schedule"
	"finown/internal/services"
)

// SourceHandler handles income, expense and subscription source requests.
type SourceHandler struct {
	sourceService services.SourceServicer
	auditService  services.AuditServicer
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(sourceService services.SourceServicer, auditService services.AuditServicer) *SourceHandler {
	return &SourceHandler{sourceService: sourceService, auditService: auditService}
}

// CreateSourceRequest represents the request payload for creating a source
type CreateSourceRequest struct {
	Type   models.SourceType `json:"type" binding:"required,source_type"`
	Kind   models.SourceKind `json:"kind" binding:"required,source_kind"`
	Title  string            `json:"title" binding:"required,min=1,max=200"`
	Amount decimal.Decimal   `json:"amount" binding:"required"`

	Date       string `json:"date" binding:"omitempty,date_string"`
	StartDate  string `json:"start_date" binding:"omitempty,date_string"`
	EndDate    string `json:"end_date" binding:"omitempty,date_string"`
	DayOfMonth int    `json:"day_of_month" binding:"omitempty,day_of_month"`
	Note       string `json:"note" binding:"max=500"`
}

// UpdateSourceRequest represents the request payload for updating a source
type UpdateSourceRequest struct {
	Kind   models.SourceKind `json:"kind" binding:"required,source_kind"`
	Title  string            `json:"title" binding:"required,min=1,max=200"`
	Amount decimal.Decimal   `json:"amount" binding:"required"`

	Date       string `json:"date" binding:"omitempty,date_string"`
	StartDate  string `json:"start_date" binding:"omitempty,date_string"`
	EndDate    string `json:"end_date" binding:"omitempty,date_string"`
	DayOfMonth int    `json:"day_of_month" binding:"omitempty,day_of_month"`
	Note       string `json:"note" binding:"max=500"`
}

// sourceListQuery holds the list endpoint's query parameters.
type sourceListQuery struct {
	pagination.PageRequest
	Type *models.SourceType `form:"type" binding:"omitempty,source_type"`
}

// occurrencesQuery holds the month view query parameters. Month is
// zero-based (0 = January) to stay compatible with stored tracker keys
// and existing clients.
type occurrencesQuery struct {
	Type  *models.SourceType `form:"type" binding:"omitempty,source_type"`
	Year  int                `form:"year" binding:"required,min=1"`
	Month *int               `form:"month" binding:"required,min=0,max=11"`
}

// CreateSource handles the creation of a new source
// @Summary     Create a source
// @Description Create a new one-time or recurring income, expense, or subscription
// @Tags        sources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSourceRequest true "Source details"
// @Success     201 {object} models.Source "Source created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /sources [post]
func (h *SourceHandler) CreateSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.sourceService.CreateSource(userID, req.Type, services.SourceFields{
		Kind:       req.Kind,
		Title:      req.Title,
		Amount:     req.Amount,
		Date:       req.Date,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		DayOfMonth: req.DayOfMonth,
		Note:       req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SOURCE", "source", source.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "type": req.Type, "kind": req.Kind})

	c.JSON(http.StatusCreated, gin.H{"source": source})
}

// GetSources returns the user's sources
// @Summary     List sources
// @Description Get a paginated list of the authenticated user's sources, optionally filtered by type
// @Tags        sources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       type query string false "Source type filter (income, expense, subscription)"
// @Success     200 {object} pagination.PageResponse[models.Source] "Sources"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /sources [get]
func (h *SourceHandler) GetSources(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query sourceListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.sourceService.GetUserSources(userID, query.PageRequest, query.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOccurrences returns the user's sources materialized for a view month
// @Summary     Month view
// @Description Materialize the user's sources into dated occurrences for a given month. The month parameter is zero-based: 0 is January.
// @Tags        sources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "View year"
// @Param       month query int true "View month, zero-based (0-11)"
// @Param       type query string false "Source type filter"
// @Success     200 {array} services.MonthOccurrence "Occurrences"
// @Failure     400 {object} ErrorResponse "Invalid view month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /sources/occurrences [get]
func (h *SourceHandler) GetOccurrences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query occurrencesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month := schedule.ViewMonth{
		Year:  query.Year,
		Month: time.Month(*query.Month + 1),
	}

	occurrences, err := h.sourceService.MonthView(userID, query.Type, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrences": occurrences})
}

// GetSource returns one source
// @Summary     Get a source
// @Description Get one of the authenticated user's sources by ID
// @Tags        sources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Source ID"
// @Success     200 {object} models.Source "Source"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sources/{id} [get]
func (h *SourceHandler) GetSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	source, err := h.sourceService.GetSourceByID(userID, sourceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"source": source})
}

// UpdateSource updates a source
// @Summary     Update a source
// @Description Update one of the authenticated user's sources
// @Tags        sources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Source ID"
// @Param       request body UpdateSourceRequest true "Fields to update"
// @Success     200 {object} models.Source "Source updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sources/{id} [put]
func (h *SourceHandler) UpdateSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.sourceService.UpdateSource(userID, sourceID, services.SourceFields{
		Kind:       req.Kind,
		Title:      req.Title,
		Amount:     req.Amount,
		Date:       req.Date,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		DayOfMonth: req.DayOfMonth,
		Note:       req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SOURCE", "source", source.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title})

	c.JSON(http.StatusOK, gin.H{"source": source})
}

// DeleteSource deletes a source
// @Summary     Delete a source
// @Description Delete one of the authenticated user's sources
// @Tags        sources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Source ID"
// @Success     200 {object} MessageResponse "Source deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sources/{id} [delete]
func (h *SourceHandler) DeleteSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sourceService.DeleteSource(userID, sourceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SOURCE", "source", sourceID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Source deleted"})
}
