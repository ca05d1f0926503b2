package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-screenshot-detector/internal/config"
	"go-screenshot-detector/internal/detector"
	apperrors "go-screenshot-detector/internal/errors"
	"go-screenshot-detector/internal/logger"
	"go-screenshot-detector/internal/observer"
	"go-screenshot-detector/internal/service"
	"go-screenshot-detector/pkg/models"
)

// NewHandler builds the HTTP surface: detection, health and running
// counters.
func NewHandler(detections service.DetectionService, counts *observer.CountsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/stats", detectionStats(counts))
	r.POST("/detect", detectScreenshot(detections, cfg))

	return r
}

func detectScreenshot(detections service.DetectionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing screenshot detection request")

		var req models.DetectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		ref := req.Reference()
		if ref == "" {
			respondError(c, http.StatusBadRequest, "invalid request",
				apperrors.NewValidationError("either path or url must be provided", nil))
			return
		}
		if req.Path != "" && req.URL != "" {
			respondError(c, http.StatusBadRequest, "invalid request",
				apperrors.NewValidationError("path and url are mutually exclusive", nil))
			return
		}

		opts := detector.DefaultOptions()
		opts.Verbose = req.Verbose
		// Verbose in the query string takes precedence over the JSON body
		if verboseQuery := c.Query("verbose"); verboseQuery != "" {
			opts.Verbose = verboseQuery == "true"
		}
		profile := c.Query("profile")

		response, err := detections.DetectWithProfile(ctx, ref, profile, opts)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"source": ref,
				"ip":     c.ClientIP(),
			}).Error("Screenshot detection failed")
			respondError(c, apperrors.GetStatusCode(err), "detection failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"source":             ref,
			"score":              response.Score,
			"is_screenshot":      response.IsScreenshot,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Screenshot detection completed")

		c.JSON(http.StatusOK, response)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func detectionStats(counts *observer.CountsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counts == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, counts.Counts())
	}
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
