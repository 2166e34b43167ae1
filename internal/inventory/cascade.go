package inventory

import (
	"context"
	"fmt"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/database"
	"ticketeer/pkg/logger"
)

// Cascader deletes a node with its whole subtree. Every delete runs in three
// steps inside one transaction: plan the descendant ids level by level, lock
// the descendant event seats and reject if any is occupied, then delete
// bottom-up one level at a time.
type Cascader struct {
	tx    database.Transactor
	repos Repositories
	log   *logger.Logger
}

// plan holds the ids of every descendant below the node being deleted.
type plan struct {
	layoutIDs    []int64
	areaIDs      []int64
	eventIDs     []int64
	eventAreaIDs []int64
}

func (c *Cascader) DeleteVenue(ctx context.Context, id int64) error {
	return c.run(ctx, "venue", id, func(ctx context.Context) (plan, error) {
		if _, err := c.repos.Venues.GetVenueByID(ctx, id); err != nil {
			return plan{}, err
		}
		layoutIDs, err := c.repos.Venues.LayoutIDsByVenue(ctx, id)
		if err != nil {
			return plan{}, fmt.Errorf("plan venue %d: %w", id, err)
		}
		return c.planLayouts(ctx, layoutIDs)
	}, func(ctx context.Context, counts map[string]int) error {
		counts["venues"] = 1
		return c.repos.Venues.DeleteVenue(ctx, id)
	})
}

func (c *Cascader) DeleteLayout(ctx context.Context, id int64) error {
	return c.run(ctx, "layout", id, func(ctx context.Context) (plan, error) {
		return c.planLayouts(ctx, []int64{id})
	}, nil)
}

// DeleteArea removes a template area and its seats. Event areas copied from it
// are independent, so there is nothing to guard.
func (c *Cascader) DeleteArea(ctx context.Context, id int64) error {
	return c.run(ctx, "area", id, func(ctx context.Context) (plan, error) {
		if _, err := c.repos.Areas.GetAreaByID(ctx, id); err != nil {
			return plan{}, err
		}
		return plan{areaIDs: []int64{id}}, nil
	}, nil)
}

func (c *Cascader) DeleteEvent(ctx context.Context, id int64) error {
	return c.run(ctx, "event", id, func(ctx context.Context) (plan, error) {
		if _, err := c.repos.Events.GetEventByID(ctx, id); err != nil {
			return plan{}, err
		}
		return c.planEvents(ctx, []int64{id})
	}, nil)
}

func (c *Cascader) DeleteEventArea(ctx context.Context, id int64) error {
	return c.run(ctx, "event area", id, func(ctx context.Context) (plan, error) {
		if _, err := c.repos.EventAreas.GetEventAreaByID(ctx, id); err != nil {
			return plan{}, err
		}
		return plan{eventAreaIDs: []int64{id}}, nil
	}, nil)
}

// ClearEvent removes the event areas and seats of an event but keeps the
// event itself.
func (c *Cascader) ClearEvent(ctx context.Context, eventID int64) error {
	return c.run(ctx, "event", eventID, func(ctx context.Context) (plan, error) {
		eventAreaIDs, err := c.repos.EventAreas.EventAreaIDsByEvents(ctx, []int64{eventID})
		if err != nil {
			return plan{}, fmt.Errorf("plan event %d: %w", eventID, err)
		}
		return plan{eventAreaIDs: eventAreaIDs}, nil
	}, nil)
}

// run executes one cascade. after, if set, deletes the root row when it is
// not part of the plan itself.
func (c *Cascader) run(
	ctx context.Context,
	entity string,
	id int64,
	planFn func(ctx context.Context) (plan, error),
	after func(ctx context.Context, counts map[string]int) error,
) error {
	var counts map[string]int
	err := c.tx.WithTx(ctx, func(ctx context.Context) error {
		p, err := planFn(ctx)
		if err != nil {
			return err
		}
		if err := c.guard(ctx, entity, id, p); err != nil {
			return err
		}
		counts, err = c.execute(ctx, p)
		if err != nil {
			return err
		}
		if after != nil {
			return after(ctx, counts)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.log.LogCascadeDeleted(ctx, entity, id, counts)
	return nil
}

// planLayouts locks the layouts so no event can be scheduled on them while
// they are being removed, then collects everything below them.
func (c *Cascader) planLayouts(ctx context.Context, layoutIDs []int64) (plan, error) {
	for _, id := range layoutIDs {
		if _, err := c.repos.Venues.LockLayout(ctx, id); err != nil {
			return plan{}, err
		}
	}

	areaIDs, err := c.repos.Areas.AreaIDsByLayouts(ctx, layoutIDs)
	if err != nil {
		return plan{}, fmt.Errorf("plan layout areas: %w", err)
	}
	eventIDs, err := c.repos.Events.EventIDsByLayouts(ctx, layoutIDs)
	if err != nil {
		return plan{}, fmt.Errorf("plan layout events: %w", err)
	}

	p, err := c.planEvents(ctx, eventIDs)
	if err != nil {
		return plan{}, err
	}
	p.layoutIDs = layoutIDs
	p.areaIDs = areaIDs
	return p, nil
}

func (c *Cascader) planEvents(ctx context.Context, eventIDs []int64) (plan, error) {
	eventAreaIDs, err := c.repos.EventAreas.EventAreaIDsByEvents(ctx, eventIDs)
	if err != nil {
		return plan{}, fmt.Errorf("plan event areas: %w", err)
	}
	return plan{eventIDs: eventIDs, eventAreaIDs: eventAreaIDs}, nil
}

// guard locks every event seat in the plan. The locks are held until the
// transaction ends, so no purchase can slip in between the check and the
// delete.
func (c *Cascader) guard(ctx context.Context, entity string, id int64, p plan) error {
	occupied, err := c.repos.EventAreas.LockOccupiedCount(ctx, p.eventAreaIDs)
	if err != nil {
		return fmt.Errorf("check occupancy of %s %d: %w", entity, id, err)
	}
	if occupied > 0 {
		return apperr.Occupied(entity, id, occupied)
	}
	return nil
}

// execute deletes the plan bottom-up: event seats, event areas, events, then
// seats, areas, layouts.
func (c *Cascader) execute(ctx context.Context, p plan) (map[string]int, error) {
	counts := make(map[string]int, 6)
	steps := []struct {
		table string
		del   func(ctx context.Context) (int, error)
	}{
		{"event_seats", func(ctx context.Context) (int, error) {
			return c.repos.EventAreas.DeleteEventSeatsByAreas(ctx, p.eventAreaIDs)
		}},
		{"event_areas", func(ctx context.Context) (int, error) {
			return c.repos.EventAreas.DeleteEventAreas(ctx, p.eventAreaIDs)
		}},
		{"events", func(ctx context.Context) (int, error) {
			return c.repos.Events.DeleteEvents(ctx, p.eventIDs)
		}},
		{"seats", func(ctx context.Context) (int, error) {
			return c.repos.Areas.DeleteSeatsByAreas(ctx, p.areaIDs)
		}},
		{"areas", func(ctx context.Context) (int, error) {
			return c.repos.Areas.DeleteAreas(ctx, p.areaIDs)
		}},
		{"layouts", func(ctx context.Context) (int, error) {
			return c.repos.Venues.DeleteLayouts(ctx, p.layoutIDs)
		}},
	}

	for _, step := range steps {
		n, err := step.del(ctx)
		if err != nil {
			return nil, fmt.Errorf("delete %s: %w", step.table, err)
		}
		counts[step.table] = n
	}
	return counts, nil
}
