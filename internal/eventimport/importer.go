package eventimport

import (
	"context"
	"net/http"

	"ticketeer/internal/events"
	"ticketeer/internal/shared/apperr"
	"ticketeer/pkg/logger"
)

// EventCreator is the event catalog entry point imported records go
// through, with the same validation as any other caller.
type EventCreator interface {
	CreateEvent(ctx context.Context, req events.CreateEventRequest) (*events.Event, error)
}

type Importer struct {
	events EventCreator
	log    *logger.Logger
}

func NewImporter(creator EventCreator) *Importer {
	return &Importer{events: creator, log: logger.GetDefault()}
}

// Import creates one event per record. Records are independent: a rejected
// record does not stop the rest of the batch.
func (i *Importer) Import(ctx context.Context, records []FeedRecord) Summary {
	summary := Summary{Results: make([]RecordResult, 0, len(records))}
	for idx, rec := range records {
		res := i.ImportOne(ctx, rec)
		res.Index = idx
		switch res.Status {
		case StatusCreated:
			summary.Created++
		case StatusRejected:
			summary.Rejected++
		default:
			summary.Failed++
		}
		summary.Results = append(summary.Results, res)
	}

	i.log.InfoContext(ctx, "Event Feed Imported",
		"records", len(records), "created", summary.Created, "rejected", summary.Rejected, "failed", summary.Failed)
	return summary
}

// ImportOne creates the event for rec. Caller errors mark the record
// rejected; anything else marks it failed and may succeed on retry.
func (i *Importer) ImportOne(ctx context.Context, rec FeedRecord) RecordResult {
	event, err := i.events.CreateEvent(ctx, events.CreateEventRequest{
		LayoutID:    rec.LayoutID,
		Name:        rec.Name,
		Description: rec.Description,
		ImageURL:    rec.ImageURL,
		TimeStart:   rec.Start,
		TimeEnd:     rec.End,
	})
	if err == nil {
		return RecordResult{Name: rec.Name, Status: StatusCreated, EventID: event.ID}
	}

	if apperr.HTTPStatus(err) >= http.StatusInternalServerError {
		i.log.ErrorContext(ctx, "event import failed", "name", rec.Name, "layout_id", rec.LayoutID, "error", err)
		return RecordResult{Name: rec.Name, Status: StatusFailed, Reason: "internal error"}
	}
	return RecordResult{Name: rec.Name, Status: StatusRejected, Reason: err.Error()}
}
