package middlewares

import (
	"io"
	"log/slog"
	"time"

	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RequestLogger tags every request with an id and logs one line when the
// handler returns. A nil log still tags requests but writes nothing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New("littlelemon-api", io.Discard, false)
	}
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		ctx.Set(requestIDKey, requestID)
		ctx.Header(requestIDHeader, requestID)

		start := time.Now()
		ctx.Next()

		attrs := []slog.Attr{
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.FullPath()),
			slog.Int("status", ctx.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if p := CurrentPrincipal(ctx); p.Authenticated {
			attrs = append(attrs, slog.Uint64("user_id", uint64(p.UserID)))
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", ctx.Errors.String()))
		}

		switch status := ctx.Writer.Status(); {
		case status >= 500:
			log.Warn("http_request", requestID, "request failed", attrs...)
		default:
			log.Info("http_request", requestID, "request completed", attrs...)
		}
	}
}

func RequestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}
