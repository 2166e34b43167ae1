package request

import (
	"strconv"

	"ticketeer/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// IDParam parses a positive int64 path parameter.
func IDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("request", name, "must be a positive integer")
	}
	return id, nil
}
