package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	paymentdomain "github.com/coachably/coachpay/internal/payment/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) HandlePaymentWebhook(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	err = s.webhookSvc.IngestWebhook(c.Request.Context(), provider, payload, c.Request.Header)
	if err != nil {
		switch {
		case errors.Is(err, paymentdomain.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, paymentdomain.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, paymentdomain.ErrInvalidPayload),
			errors.Is(err, paymentdomain.ErrInvalidEvent),
			errors.Is(err, paymentdomain.ErrInvalidAmount),
			errors.Is(err, paymentdomain.ErrInvalidClient):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// Transient failures (lock timeout, persistence) surface as
			// 500 so the processor redelivers.
			s.log.Error("webhook ingest failed", zap.String("provider", provider), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
