package memstore

import (
	"cmp"
	"context"
	"slices"

	"ticketeer/internal/areas"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/pagination"
	"ticketeer/internal/venues"
)

// ============= VENUES =============

func (s *Store) CreateVenue(ctx context.Context, venue *venues.Venue) error {
	return s.do(ctx, "CreateVenue", func(st *state) error {
		for _, v := range st.venues {
			if v.Name == venue.Name {
				return duplicate("venue")
			}
		}
		venue.ID = s.id()
		venue.CreatedAt, venue.UpdatedAt = s.now(), s.now()
		st.venues[venue.ID] = *venue
		return nil
	})
}

func (s *Store) GetVenueByID(ctx context.Context, id int64) (*venues.Venue, error) {
	var out venues.Venue
	err := s.do(ctx, "GetVenueByID", func(st *state) error {
		v, ok := st.venues[id]
		if !ok {
			return apperr.NotFound("venue", id)
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListVenues(ctx context.Context, q pagination.Query) ([]venues.Venue, int64, error) {
	var all []venues.Venue
	_ = s.do(ctx, "ListVenues", func(st *state) error {
		all = rows(st.venues, nil)
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateVenue(ctx context.Context, venue *venues.Venue) error {
	return s.do(ctx, "UpdateVenue", func(st *state) error {
		cur, ok := st.venues[venue.ID]
		if err := checkVersion("venue", venue.ID, ok, cur.Version, venue.Version); err != nil {
			return err
		}
		cur.Name, cur.Address, cur.Phone, cur.Description = venue.Name, venue.Address, venue.Phone, venue.Description
		cur.Version++
		cur.UpdatedAt = s.now()
		st.venues[venue.ID] = cur
		venue.Version = cur.Version
		return nil
	})
}

func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.do(ctx, "DeleteVenue", func(st *state) error {
		if deleteIDs(st.venues, []int64{id}) == 0 {
			return apperr.NotFound("venue", id)
		}
		return nil
	})
}

func (s *Store) VenueNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "VenueNameExists", func(st *state) error {
		found = len(rows(st.venues, func(v *venues.Venue) bool { return v.Name == name && v.ID != excludeID })) > 0
		return nil
	})
	return found, err
}

// ============= LAYOUTS =============

func (s *Store) CreateLayout(ctx context.Context, layout *venues.Layout) error {
	return s.do(ctx, "CreateLayout", func(st *state) error {
		for _, l := range st.layouts {
			if l.VenueID == layout.VenueID && l.Name == layout.Name {
				return duplicate("layout")
			}
		}
		layout.ID = s.id()
		layout.CreatedAt, layout.UpdatedAt = s.now(), s.now()
		st.layouts[layout.ID] = *layout
		return nil
	})
}

func (s *Store) GetLayoutByID(ctx context.Context, id int64) (*venues.Layout, error) {
	var out venues.Layout
	err := s.do(ctx, "GetLayoutByID", func(st *state) error {
		l, ok := st.layouts[id]
		if !ok {
			return apperr.NotFound("layout", id)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LockLayout needs no row lock here: the caller already holds the store.
func (s *Store) LockLayout(ctx context.Context, id int64) (*venues.Layout, error) {
	return s.GetLayoutByID(ctx, id)
}

func (s *Store) ListLayouts(ctx context.Context, venueID int64, q pagination.Query) ([]venues.Layout, int64, error) {
	var all []venues.Layout
	_ = s.do(ctx, "ListLayouts", func(st *state) error {
		all = rows(st.layouts, func(l *venues.Layout) bool { return venueID == 0 || l.VenueID == venueID })
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateLayout(ctx context.Context, layout *venues.Layout) error {
	return s.do(ctx, "UpdateLayout", func(st *state) error {
		cur, ok := st.layouts[layout.ID]
		if err := checkVersion("layout", layout.ID, ok, cur.Version, layout.Version); err != nil {
			return err
		}
		cur.VenueID, cur.Name, cur.Description = layout.VenueID, layout.Name, layout.Description
		cur.Version++
		cur.UpdatedAt = s.now()
		st.layouts[layout.ID] = cur
		layout.Version = cur.Version
		return nil
	})
}

func (s *Store) LayoutNameExists(ctx context.Context, venueID int64, name string, excludeID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "LayoutNameExists", func(st *state) error {
		found = len(rows(st.layouts, func(l *venues.Layout) bool {
			return l.VenueID == venueID && l.Name == name && l.ID != excludeID
		})) > 0
		return nil
	})
	return found, err
}

func (s *Store) LayoutIDsByVenue(ctx context.Context, venueID int64) ([]int64, error) {
	var ids []int64
	err := s.do(ctx, "LayoutIDsByVenue", func(st *state) error {
		for _, l := range rows(st.layouts, func(l *venues.Layout) bool { return l.VenueID == venueID }) {
			ids = append(ids, l.ID)
		}
		return nil
	})
	return ids, err
}

func (s *Store) DeleteLayouts(ctx context.Context, ids []int64) (int, error) {
	var n int
	err := s.do(ctx, "DeleteLayouts", func(st *state) error {
		n = deleteIDs(st.layouts, ids)
		return nil
	})
	return n, err
}

// ============= AREAS =============

func (s *Store) CreateArea(ctx context.Context, area *areas.Area) error {
	return s.do(ctx, "CreateArea", func(st *state) error {
		if areaClash(st, area) {
			return duplicate("area")
		}
		area.ID = s.id()
		area.CreatedAt, area.UpdatedAt = s.now(), s.now()
		st.areas[area.ID] = *area
		return nil
	})
}

func areaClash(st *state, area *areas.Area) bool {
	for _, a := range st.areas {
		if a.ID == area.ID || a.LayoutID != area.LayoutID {
			continue
		}
		if a.Description == area.Description || (a.CoordX == area.CoordX && a.CoordY == area.CoordY) {
			return true
		}
	}
	return false
}

func (s *Store) GetAreaByID(ctx context.Context, id int64) (*areas.Area, error) {
	var out areas.Area
	err := s.do(ctx, "GetAreaByID", func(st *state) error {
		a, ok := st.areas[id]
		if !ok {
			return apperr.NotFound("area", id)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListAreas(ctx context.Context, layoutID int64, q pagination.Query) ([]areas.Area, int64, error) {
	var all []areas.Area
	_ = s.do(ctx, "ListAreas", func(st *state) error {
		all = rows(st.areas, func(a *areas.Area) bool { return layoutID == 0 || a.LayoutID == layoutID })
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateArea(ctx context.Context, area *areas.Area) error {
	return s.do(ctx, "UpdateArea", func(st *state) error {
		cur, ok := st.areas[area.ID]
		if err := checkVersion("area", area.ID, ok, cur.Version, area.Version); err != nil {
			return err
		}
		if areaClash(st, area) {
			return duplicate("area")
		}
		cur.LayoutID, cur.Description = area.LayoutID, area.Description
		cur.CoordX, cur.CoordY, cur.BasePrice = area.CoordX, area.CoordY, area.BasePrice
		cur.Version++
		cur.UpdatedAt = s.now()
		st.areas[area.ID] = cur
		area.Version = cur.Version
		return nil
	})
}

func (s *Store) AreaDescriptionExists(ctx context.Context, layoutID int64, description string, excludeID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "AreaDescriptionExists", func(st *state) error {
		found = len(rows(st.areas, func(a *areas.Area) bool {
			return a.LayoutID == layoutID && a.Description == description && a.ID != excludeID
		})) > 0
		return nil
	})
	return found, err
}

func (s *Store) AreaCoordsExist(ctx context.Context, layoutID int64, x, y int, excludeID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "AreaCoordsExist", func(st *state) error {
		found = len(rows(st.areas, func(a *areas.Area) bool {
			return a.LayoutID == layoutID && a.CoordX == x && a.CoordY == y && a.ID != excludeID
		})) > 0
		return nil
	})
	return found, err
}

func (s *Store) AreasByLayout(ctx context.Context, layoutID int64) ([]areas.Area, error) {
	var out []areas.Area
	err := s.do(ctx, "AreasByLayout", func(st *state) error {
		out = rows(st.areas, func(a *areas.Area) bool { return a.LayoutID == layoutID })
		return nil
	})
	return out, err
}

func (s *Store) AreaIDsByLayouts(ctx context.Context, layoutIDs []int64) ([]int64, error) {
	var ids []int64
	err := s.do(ctx, "AreaIDsByLayouts", func(st *state) error {
		for _, a := range rows(st.areas, func(a *areas.Area) bool { return slices.Contains(layoutIDs, a.LayoutID) }) {
			ids = append(ids, a.ID)
		}
		return nil
	})
	return ids, err
}

func (s *Store) DeleteAreas(ctx context.Context, ids []int64) (int, error) {
	var n int
	err := s.do(ctx, "DeleteAreas", func(st *state) error {
		n = deleteIDs(st.areas, ids)
		return nil
	})
	return n, err
}

// ============= SEATS =============

func (s *Store) CreateSeat(ctx context.Context, seat *areas.Seat) error {
	return s.do(ctx, "CreateSeat", func(st *state) error {
		if seatClash(st, seat) {
			return duplicate("seat")
		}
		seat.ID = s.id()
		seat.CreatedAt, seat.UpdatedAt = s.now(), s.now()
		st.seats[seat.ID] = *seat
		return nil
	})
}

func seatClash(st *state, seat *areas.Seat) bool {
	for _, o := range st.seats {
		if o.ID != seat.ID && o.AreaID == seat.AreaID && o.Row == seat.Row && o.Number == seat.Number {
			return true
		}
	}
	return false
}

func (s *Store) GetSeatByID(ctx context.Context, id int64) (*areas.Seat, error) {
	var out areas.Seat
	err := s.do(ctx, "GetSeatByID", func(st *state) error {
		seat, ok := st.seats[id]
		if !ok {
			return apperr.NotFound("seat", id)
		}
		out = seat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListSeats(ctx context.Context, areaID int64, q pagination.Query) ([]areas.Seat, int64, error) {
	var all []areas.Seat
	_ = s.do(ctx, "ListSeats", func(st *state) error {
		all = rows(st.seats, func(seat *areas.Seat) bool { return areaID == 0 || seat.AreaID == areaID })
		return nil
	})
	return page(all, q)
}

func (s *Store) UpdateSeat(ctx context.Context, seat *areas.Seat) error {
	return s.do(ctx, "UpdateSeat", func(st *state) error {
		cur, ok := st.seats[seat.ID]
		if err := checkVersion("seat", seat.ID, ok, cur.Version, seat.Version); err != nil {
			return err
		}
		if seatClash(st, seat) {
			return duplicate("seat")
		}
		cur.AreaID, cur.Row, cur.Number = seat.AreaID, seat.Row, seat.Number
		cur.Version++
		cur.UpdatedAt = s.now()
		st.seats[seat.ID] = cur
		seat.Version = cur.Version
		return nil
	})
}

func (s *Store) DeleteSeat(ctx context.Context, id int64) error {
	return s.do(ctx, "DeleteSeat", func(st *state) error {
		if deleteIDs(st.seats, []int64{id}) == 0 {
			return apperr.NotFound("seat", id)
		}
		return nil
	})
}

func (s *Store) SeatPositionExists(ctx context.Context, areaID int64, row, number int, excludeID int64) (bool, error) {
	var found bool
	err := s.do(ctx, "SeatPositionExists", func(st *state) error {
		found = seatClash(st, &areas.Seat{ID: excludeID, AreaID: areaID, Row: row, Number: number})
		return nil
	})
	return found, err
}

// SeatsByAreas orders like the gorm query: area, row, number.
func (s *Store) SeatsByAreas(ctx context.Context, areaIDs []int64) ([]areas.Seat, error) {
	var out []areas.Seat
	err := s.do(ctx, "SeatsByAreas", func(st *state) error {
		out = rows(st.seats, func(seat *areas.Seat) bool { return slices.Contains(areaIDs, seat.AreaID) })
		slices.SortStableFunc(out, func(a, b areas.Seat) int {
			if a.AreaID != b.AreaID {
				return cmp.Compare(a.AreaID, b.AreaID)
			}
			if a.Row != b.Row {
				return cmp.Compare(a.Row, b.Row)
			}
			return cmp.Compare(a.Number, b.Number)
		})
		return nil
	})
	return out, err
}

func (s *Store) DeleteSeatsByAreas(ctx context.Context, areaIDs []int64) (int, error) {
	var n int
	err := s.do(ctx, "DeleteSeatsByAreas", func(st *state) error {
		for id, seat := range st.seats {
			if slices.Contains(areaIDs, seat.AreaID) {
				delete(st.seats, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
