package tickets_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"ticketeer/internal/shared/constants"
	"ticketeer/internal/testutil/fixture"
	"ticketeer/internal/tickets"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser stands in for the JWT middleware, taking identity from headers.
func asUser(c *gin.Context) {
	if id, err := strconv.ParseInt(c.GetHeader("X-Test-User"), 10, 64); err == nil {
		c.Set(constants.CtxUserID, id)
	}
	c.Set(constants.CtxUserRole, c.GetHeader("X-Test-Role"))
	c.Next()
}

func newRouter(app *fixture.App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tickets.SetupTicketRoutes(r.Group("/api/v1"), tickets.NewController(app.Tickets), asUser)
	return r
}

func do(r *gin.Engine, method, path, body string, user int64, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", strconv.FormatInt(user, 10))
	req.Header.Set("X-Test-Role", role)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

func TestTicketEndpoints(t *testing.T) {
	app := fixture.New()
	seat := singleSeatEvent(t, app)
	app.Store.SeedUser(1, 10)
	app.Store.SeedUser(2, 3)
	r := newRouter(app)
	buy := fmt.Sprintf(`{"event_seat_id":%d,"price":10}`, seat.ID)

	w := do(r, http.MethodPost, "/api/v1/tickets", buy, 1, constants.RoleEventManager)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/v1/tickets", buy, 2, constants.RoleUser)
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	w = do(r, http.MethodPost, "/api/v1/tickets", buy, 1, constants.RoleUser)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var result tickets.PurchaseResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.Ticket)
	ticketPath := fmt.Sprintf("/api/v1/tickets/%d", result.Ticket.ID)

	w = do(r, http.MethodPost, "/api/v1/tickets", buy, 1, constants.RoleUser)
	assert.Equal(t, http.StatusConflict, w.Code, "seat already sold")

	w = do(r, http.MethodGet, ticketPath, "", 2, constants.RoleUser)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/tickets", "", 1, constants.RoleUser)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":1`)

	w = do(r, http.MethodDelete, ticketPath, "", 1, constants.RoleUser)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/tickets/abc", "", 1, constants.RoleUser)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
