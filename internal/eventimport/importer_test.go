package eventimport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ticketeer/internal/events"
	"ticketeer/internal/shared/apperr"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCreator answers CreateEvent from a per-name script of errors.
type stubCreator struct {
	mu     sync.Mutex
	errs   map[string][]error
	nextID int64
	calls  []string
}

func (s *stubCreator) CreateEvent(_ context.Context, req events.CreateEventRequest) (*events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req.Name)
	if queue := s.errs[req.Name]; len(queue) > 0 {
		s.errs[req.Name] = queue[1:]
		if queue[0] != nil {
			return nil, queue[0]
		}
	}
	s.nextID++
	return &events.Event{ID: s.nextID, Name: req.Name, LayoutID: req.LayoutID}, nil
}

func record(name string) FeedRecord {
	start := time.Date(2099, 5, 1, 18, 0, 0, 0, time.UTC)
	return FeedRecord{Name: name, Description: "d", LayoutID: 1, Start: start, End: start.Add(time.Hour), ImageURL: "i"}
}

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords([]byte(` [{"name":"a","layout_id":2},{"name":"b"}] `))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].LayoutID)

	records, err = DecodeRecords([]byte(`{"name":"solo","start":"2099-01-01T10:00:00Z"}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2099, records[0].Start.Year())

	_, err = DecodeRecords([]byte("  "))
	assert.Error(t, err)
	_, err = DecodeRecords([]byte(`[{"name":`))
	assert.Error(t, err)
}

func TestImportSummarizesBatch(t *testing.T) {
	creator := &stubCreator{errs: map[string][]error{
		"clash":  {apperr.Invalid("event", "time_start", "conflicts with event 1")},
		"broken": {errors.New("connection reset")},
	}}
	imp := NewImporter(creator)

	summary := imp.Import(context.Background(), []FeedRecord{record("ok"), record("clash"), record("broken"), record("ok2")})

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 4)
	assert.Equal(t, StatusRejected, summary.Results[1].Status)
	assert.Contains(t, summary.Results[1].Reason, "conflicts with event 1")
	assert.Equal(t, "internal error", summary.Results[2].Reason)
	assert.Equal(t, 3, summary.Results[3].Index)
	assert.NotZero(t, summary.Results[3].EventID)
}

func newTestConsumer(creator *stubCreator) *FeedConsumer {
	cfg := DefaultConsumerConfig([]string{"localhost:9092"}, "g", "event-feed")
	cfg.RetryBackoffDuration = time.Millisecond
	cfg.MaxRetries = 2
	return NewFeedConsumerWithGroup(nil, cfg, NewImporter(creator))
}

func message(t *testing.T, records ...FeedRecord) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(records)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: "event-feed", Value: payload}
}

func TestHandleMessageRetriesOnlyFailedRecords(t *testing.T) {
	creator := &stubCreator{errs: map[string][]error{
		"flaky": {errors.New("timeout"), nil},
	}}
	c := newTestConsumer(creator)

	ok := c.handleMessage(context.Background(), message(t, record("steady"), record("flaky")))

	assert.True(t, ok)
	assert.Equal(t, []string{"steady", "flaky", "flaky"}, creator.calls)
}

func TestHandleMessageGivesUpAfterRetries(t *testing.T) {
	down := errors.New("database down")
	creator := &stubCreator{errs: map[string][]error{"stuck": {down, down, down, down}}}
	c := newTestConsumer(creator)

	ok := c.handleMessage(context.Background(), message(t, record("stuck")))

	assert.False(t, ok, "offset must not be committed")
	assert.Len(t, creator.calls, 3)
}

func TestHandleMessageSkipsRejectedAndGarbage(t *testing.T) {
	creator := &stubCreator{errs: map[string][]error{
		"bad": {apperr.Invalid("event", "name", "must not be blank")},
	}}
	c := newTestConsumer(creator)

	assert.True(t, c.handleMessage(context.Background(), message(t, record("bad"))))
	assert.True(t, c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")}))
	assert.Equal(t, []string{"bad"}, creator.calls)
}

func TestImportEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	creator := &stubCreator{errs: map[string][]error{}}
	r := gin.New()
	r.POST("/import", NewController(NewImporter(creator)).Import)

	t.Run("imports batch", func(t *testing.T) {
		body, err := json.Marshal([]FeedRecord{record("a"), record("b")})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(string(body))))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data Summary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Data.Created)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("<xml/>")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
