package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulsehr/feedback-flow/internal/core/domain"
	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

// FeedbackHandler handles HTTP requests for the feedback workflow.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type createRequestRequest struct {
	ClientEmail string `json:"clientEmail" validate:"required,email"`
	ClientName  string `json:"clientName" validate:"required"`
}

type createRequestResponse struct {
	Success      bool   `json:"success"`
	Token        string `json:"token"`
	FeedbackLink string `json:"feedbackLink"`
}

type verifyErrorResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

type verifyRequestResponse struct {
	Valid       bool   `json:"valid"`
	ClientEmail string `json:"clientEmail"`
	ClientName  string `json:"clientName"`
	HREmail     string `json:"hrEmail"`
	HRName      string `json:"hrName"`
	Status      string `json:"status"`
}

type submitFeedbackRequest struct {
	Token    string `json:"token" validate:"required"`
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

type submitFeedbackResponse struct {
	Success     bool   `json:"success"`
	ClientEmail string `json:"clientEmail"`
	ClientName  string `json:"clientName"`
	HREmail     string `json:"hrEmail"`
	HRName      string `json:"hrName"`
}

// Create handles POST /feedback/request — issues a new tokenized feedback
// link for a client. The HR actor is taken from the verified session, never
// from the body.
//
// @Summary      Create a feedback request
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Feedback subject"
// @Success      201   {object}  createRequestResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /feedback/request [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.CreateRequest(c.Request().Context(), ports.CreateRequestInput{
		HRUserID:    userID,
		ClientEmail: req.ClientEmail,
		ClientName:  req.ClientName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createRequestResponse{
		Success:      true,
		Token:        result.Token,
		FeedbackLink: result.Link,
	})
}

// Verify handles GET /feedback/verify?token= — resolves a token to the
// metadata the feedback form needs. Read-only.
//
// @Summary      Verify a feedback token
// @Tags         feedback
// @Produce      json
// @Param        token  query     string  true  "Feedback request token"
// @Success      200    {object}  verifyRequestResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /feedback/verify [get]
func (h *FeedbackHandler) Verify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, verifyErrorResponse{Valid: false, Error: "token is required"})
	}

	detail, err := h.service.VerifyRequest(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return c.JSON(http.StatusNotFound, verifyErrorResponse{Valid: false, Error: "invalid token"})
		}
		return err
	}

	return c.JSON(http.StatusOK, verifyRequestResponse{
		Valid:       true,
		ClientEmail: detail.ClientEmail,
		ClientName:  detail.ClientName,
		HREmail:     detail.HREmail,
		HRName:      detail.HRName,
		Status:      string(detail.Status),
	})
}

// Submit handles POST /feedback/submit — the single pending→submitted
// transition for a token.
//
// @Summary      Submit feedback for a token
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Feedback payload"
// @Success      200   {object}  submitFeedbackResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /feedback/submit [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.SubmitFeedback(c.Request().Context(), ports.SubmitFeedbackInput{
		Token:    req.Token,
		Feedback: req.Feedback,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, submitFeedbackResponse{
		Success:     true,
		ClientEmail: result.ClientEmail,
		ClientName:  result.ClientName,
		HREmail:     result.HREmail,
		HRName:      result.HRName,
	})
}
