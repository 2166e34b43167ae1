package response

import (
	"errors"
	"net/http"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/constants"
	"ticketeer/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		RequestID:  c.GetString(constants.CtxRequestID),
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes err with the status code of its apperr class. Details
// of internal failures are logged, not returned.
func RespondError(c *gin.Context, message string, err error) {
	code := apperr.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		logger.GetDefault().LogHTTPError(c, err, code)
		RespondJSON(c, "error", code, message, nil, "internal error")
		return
	}

	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		RespondJSON(c, "error", code, message, nil, vErr)
		return
	}
	RespondJSON(c, "error", code, message, nil, err.Error())
}
