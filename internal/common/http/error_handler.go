package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/realtyhub/backend/internal/common/errors"
	"github.com/realtyhub/backend/internal/common/httpmetrics"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/observability/metrics"
)

// HandleError translates any error escaping a service into a JSON error
// envelope. Only classified domain errors carry their own status and message;
// everything else is reported as a generic internal error.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status := domainErr.HTTPStatus()

		if log.ShouldLog(logger.DEBUG) {
			log.WithFields(ctx, logger.Fields{
				"error_code": domainErr.Code(),
				"category":   string(domainErr.Category()),
				"status":     status,
			}).Debugf("domain error: %s", domainErr.Error())
		}

		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()
		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(status),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()

		WriteErrorEnvelope(w, status, domainErr.Code(), domainErr.Message(), domainErr.Details())
		return
	}

	log.WithFields(ctx, logger.Fields{
		"error": err.Error(),
		"path":  r.URL.Path,
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
