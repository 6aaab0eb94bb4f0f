package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"regal/models"
	"regal/services/booking"
)

// FormSessionHandler serves the step-by-step booking form API.
type FormSessionHandler struct {
	Sessions booking.FormSessionService
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewFormSessionHandler builds a FormSessionHandler.
func NewFormSessionHandler(sessions booking.FormSessionService, logger *zap.Logger) *FormSessionHandler {
	return &FormSessionHandler{Sessions: sessions, Logger: logger, Now: time.Now}
}

// sessionResponse is the form state rendered for the client: the session,
// the visible month's day cells, and the price estimate once a tier is set.
type sessionResponse struct {
	Session  *models.FormSession   `json:"session"`
	Cells    []models.DayCell      `json:"cells"`
	Estimate *models.PriceEstimate `json:"estimate,omitempty"`
}

func (h *FormSessionHandler) render(c *gin.Context, status int, s *models.FormSession) {
	today := h.Now().Format(booking.DateLayout)
	cells, err := booking.BuildDayCells(*s, today)
	if err != nil {
		h.Logger.Error("form session: failed to render calendar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render calendar"})
		return
	}

	resp := sessionResponse{Session: s, Cells: cells}
	if s.GuestTier != "" {
		if est, ok := booking.EstimateRange(s.GuestTier); ok {
			resp.Estimate = est
		}
	}
	c.JSON(status, resp)
}

func (h *FormSessionHandler) fail(c *gin.Context, err error) {
	switch booking.ErrCode(err) {
	case booking.CodeSessionNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": booking.UserMessage(err)})
	case booking.CodeInvalidRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": booking.UserMessage(err)})
	case booking.CodeInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": booking.UserMessage(err)})
	default:
		h.Logger.Error("form session: request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": booking.UserMessage(err)})
	}
}

// CreateSession starts a new booking form session.
func (h *FormSessionHandler) CreateSession(c *gin.Context) {
	s, err := h.Sessions.Create(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusCreated, s)
}

// GetSession returns the current form state.
func (h *FormSessionHandler) GetSession(c *gin.Context) {
	s, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, s)
}

// ApplyEvent applies one form event to the session.
func (h *FormSessionHandler) ApplyEvent(c *gin.Context) {
	var ev models.FormEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form event", "details": err.Error()})
		return
	}

	s, err := h.Sessions.Apply(c.Request.Context(), c.Param("sessionID"), ev)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, s)
}

// SubmitSession runs the gated submission for the session.
func (h *FormSessionHandler) SubmitSession(c *gin.Context) {
	s, err := h.Sessions.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, s)
}
