// Common helpers for the gin handlers: envelope writing, error mapping and
// date parameters.

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
	"github.com/turtacn/ShipCert-Intelligence/pkg/types/common"
)

// writeData wraps data in a success envelope.
func writeData[T any](c *gin.Context, status int, data T) {
	c.JSON(status, common.NewSuccessResponse(data, middleware.GetRequestID(c)))
}

// writeAppError maps err to an HTTP status through the error-code table.
// Unclassified and 5xx errors are masked.
func writeAppError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	if code == errors.CodeUnknown {
		status = http.StatusInternalServerError
	}

	message, detail := errors.DefaultMessageForCode(errors.ErrCodeInternal), ""
	if status < http.StatusInternalServerError {
		message, detail = errors.ChainMessage(err)
	} else {
		code = errors.ErrCodeInternal
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(string(code), message, detail, middleware.GetRequestID(c)))
}

// parseDateParam reads an optional YYYY-MM-DD (or any stored layout) query
// parameter.  Absent yields the zero time.
func parseDateParam(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, errors.InvalidParam(name + " is not a valid date").WithDetail(raw)
	}
	return *t, nil
}

//Personal.AI order the ending
