package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// withAccessLog opens the request's pipeline record and, once the rest of
// the chain returns, reports it: a local log line, request metrics and an
// access log record queued for the external sink. Queueing never blocks
// and its failures never change the response.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rc := &models.RequestContext{
			Path:           r.URL.Path,
			Method:         r.Method,
			ClientIdentity: utils.ClientIP(r),
			StartTime:      start,
			State:          models.StateStart,
		}

		lw := &responseWriter{ResponseWriter: w}
		ctx := utils.WithRequestContext(r.Context(), rc)

		next.ServeHTTP(lw, r.WithContext(ctx))

		elapsed := time.Since(start)
		if !rc.State.IsTerminal() {
			rc.State = models.StateCompleted
		}
		service := h.routes.Service(rc.Path)

		logger.FromContext(ctx).Info().
			Str("uri", r.RequestURI).
			Str("method", rc.Method).
			Str("client", rc.ClientIdentity).
			Str("service", service).
			Str("state", string(rc.State)).
			Int("status", lw.Status()).
			Dur("duration", elapsed).
			Int("size", lw.size).
			Send()

		h.metrics.RecordRequest(service, rc.Method, string(rc.State), lw.Status(), elapsed)
		h.services.AccessLogService.Record(ctx, models.AccessLogRecord{
			Timestamp:  start.UTC(),
			Service:    service,
			Endpoint:   rc.Path,
			Method:     rc.Method,
			StatusCode: lw.Status(),
			ElapsedMs:  elapsed.Milliseconds(),
		})
	})
}
