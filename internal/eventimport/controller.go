package eventimport

import (
	"io"
	"net/http"

	"ticketeer/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

const maxFeedBytes = 5 << 20

type Controller struct {
	importer *Importer
}

func NewController(importer *Importer) *Controller {
	return &Controller{importer: importer}
}

// Import serves POST /admin/events/import with a JSON array of feed records.
func (c *Controller) Import(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxFeedBytes))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	records, err := DecodeRecords(body)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid feed payload", nil, err.Error())
		return
	}

	summary := c.importer.Import(ctx.Request.Context(), records)
	response.RespondJSON(ctx, "success", http.StatusOK, "Feed imported", summary, nil)
}
