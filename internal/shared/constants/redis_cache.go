package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs.
// Pattern: ticketeer:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_MEDIUM = 12 * time.Hour  // venues and layouts rarely change
	TTL_SEMI_STATIC   = 2 * time.Hour   // event details
	TTL_DYNAMIC_SHORT = 5 * time.Minute // lists that include seat state
)

const (
	CACHE_PREFIX = "ticketeer"
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_VENUE_DETAIL  = CACHE_PREFIX + ":venues:detail:id:"  // + venue-id
	CACHE_KEY_LAYOUT_DETAIL = CACHE_PREFIX + ":venues:layout:id:" // + layout-id
)

const (
	TTL_VENUE_DETAIL  = TTL_STATIC_MEDIUM
	TTL_LAYOUT_DETAIL = TTL_STATIC_MEDIUM
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:id:" // + event-id
)

const (
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_VENUES_ALL = CACHE_PREFIX + ":venues:*"
	PATTERN_INVALIDATE_EVENTS_ALL = CACHE_PREFIX + ":events:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildVenueDetailKey(venueID int64) string {
	return CACHE_KEY_VENUE_DETAIL + fmt.Sprintf("%d", venueID)
}

func BuildLayoutDetailKey(layoutID int64) string {
	return CACHE_KEY_LAYOUT_DETAIL + fmt.Sprintf("%d", layoutID)
}

func BuildEventDetailKey(eventID int64) string {
	return CACHE_KEY_EVENT_DETAIL + fmt.Sprintf("%d", eventID)
}
