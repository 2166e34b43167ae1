package events

import (
	"fmt"
	"strings"
)

// SchedulingRule reports whether candidate may not share a layout with
// existing.
type SchedulingRule func(candidate, existing *Event) bool

// ContainmentRule rejects a candidate when one window contains the other,
// in either direction. Partially overlapping windows are accepted.
func ContainmentRule(candidate, existing *Event) bool {
	return contains(candidate, existing) || contains(existing, candidate)
}

func contains(outer, inner *Event) bool {
	return !outer.TimeStart.After(inner.TimeStart) &&
		!outer.TimeEnd.Before(inner.TimeEnd)
}

// IntersectionRule rejects any overlap of the half-open windows
// [start, end). Back-to-back events are accepted.
func IntersectionRule(candidate, existing *Event) bool {
	return candidate.TimeStart.Before(existing.TimeEnd) &&
		existing.TimeStart.Before(candidate.TimeEnd)
}

const (
	RuleContainment  = "containment"
	RuleIntersection = "intersection"
)

// RuleByName resolves the EVENT_OVERLAP_RULE setting.
func RuleByName(name string) (SchedulingRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RuleContainment:
		return ContainmentRule, nil
	case RuleIntersection:
		return IntersectionRule, nil
	default:
		return nil, fmt.Errorf("unknown event overlap rule %q", name)
	}
}
