package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

type QuotesHandler struct {
	quotes *services.QuoteService
	logger *zap.Logger
}

func NewQuotesHandler(quotes *services.QuoteService, logger *zap.Logger) *QuotesHandler {
	return &QuotesHandler{quotes: quotes, logger: logger}
}

// SetQuote godoc
// @Summary     Set a quote
// @Description Records the price for a quote-gated plan. The amount is in cents and must be a positive integer.
// @Description If the database has not been migrated yet the response is 409 with the SQL that fixes it in `remediation`.
// @Tags        quotes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.SetQuoteRequest true "Quote"
// @Success     200 {object} models.Submission
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /submissions/{id}/quote [put]
func (h *QuotesHandler) SetQuote(c *gin.Context) {
	var req models.SetQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	amount, err := lifecycle.ParseQuoteAmount(req.Amount.String())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	sub, err := h.quotes.SetQuote(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Checkout godoc
// @Summary     Start checkout
// @Description Starts payment for a submission whose price is known: the plan price, or the quote for quote-gated plans.
// @Tags        quotes
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     200 {object} models.CheckoutResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submissions/{id}/checkout [post]
func (h *QuotesHandler) Checkout(c *gin.Context) {
	id := c.Param("id")
	session, amount, err := h.quotes.Checkout(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.CheckoutResponse{
		SubmissionID: id,
		SessionID:    session.SessionID,
		CheckoutURL:  session.CheckoutURL,
		AmountCents:  amount,
	})
}
