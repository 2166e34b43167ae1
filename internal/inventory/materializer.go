package inventory

import (
	"context"
	"fmt"

	"ticketeer/internal/eventareas"
	"ticketeer/internal/shared/database"
)

// Materializer snapshots a layout into the live areas and seats of an event.
type Materializer struct {
	tx       database.Transactor
	repos    Repositories
	cascader *Cascader
}

// Materialize copies every area of the layout into an event area priced at
// the area's base price, and every seat into a free event seat. Both levels
// are inserted in batches inside one transaction, so an event is either fully
// materialized or not at all. A layout without areas yields no event areas.
func (m *Materializer) Materialize(ctx context.Context, eventID, layoutID int64) (int, int, error) {
	var areaCount, seatCount int
	err := m.tx.WithTx(ctx, func(ctx context.Context) error {
		templates, err := m.repos.Areas.AreasByLayout(ctx, layoutID)
		if err != nil {
			return fmt.Errorf("load layout areas: %w", err)
		}
		if len(templates) == 0 {
			return nil
		}

		live := make([]eventareas.EventArea, len(templates))
		templateIDs := make([]int64, len(templates))
		for i, a := range templates {
			templateIDs[i] = a.ID
			live[i] = eventareas.EventArea{
				EventID:     eventID,
				Description: a.Description,
				CoordX:      a.CoordX,
				CoordY:      a.CoordY,
				Price:       a.BasePrice,
				Version:     1,
			}
		}
		if err := m.repos.EventAreas.CreateEventAreas(ctx, live); err != nil {
			return fmt.Errorf("create event areas: %w", err)
		}

		eventAreaOf := make(map[int64]int64, len(templates))
		for i, a := range templates {
			eventAreaOf[a.ID] = live[i].ID
		}

		seats, err := m.repos.Areas.SeatsByAreas(ctx, templateIDs)
		if err != nil {
			return fmt.Errorf("load layout seats: %w", err)
		}
		liveSeats := make([]eventareas.EventSeat, len(seats))
		for i, s := range seats {
			liveSeats[i] = eventareas.EventSeat{
				EventAreaID: eventAreaOf[s.AreaID],
				Row:         s.Row,
				Number:      s.Number,
				State:       eventareas.SeatFree,
				Version:     1,
			}
		}
		if err := m.repos.EventAreas.CreateEventSeats(ctx, liveSeats); err != nil {
			return fmt.Errorf("create event seats: %w", err)
		}

		areaCount, seatCount = len(live), len(liveSeats)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return areaCount, seatCount, nil
}

// Rematerialize replaces the live areas and seats of an event with a fresh
// copy of layoutID. It fails without changes if any current seat is occupied.
func (m *Materializer) Rematerialize(ctx context.Context, eventID, layoutID int64) (int, int, error) {
	var areaCount, seatCount int
	err := m.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := m.cascader.ClearEvent(ctx, eventID); err != nil {
			return err
		}
		var err error
		areaCount, seatCount, err = m.Materialize(ctx, eventID, layoutID)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return areaCount, seatCount, nil
}
