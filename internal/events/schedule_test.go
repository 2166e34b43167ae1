package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2099, 1, 1, hour, minute, 0, 0, time.UTC)
}

func window(startH, startM, endH, endM int) *Event {
	return &Event{TimeStart: at(startH, startM), TimeEnd: at(endH, endM)}
}

func TestSchedulingRules(t *testing.T) {
	existing := window(10, 0, 12, 0)

	tests := []struct {
		name         string
		candidate    *Event
		containment  bool
		intersection bool
	}{
		{"identical", window(10, 0, 12, 0), true, true},
		{"candidate contains existing", window(9, 0, 13, 0), true, true},
		{"candidate inside existing", window(10, 30, 11, 30), true, true},
		{"shares start, ends earlier", window(10, 0, 11, 0), true, true},
		{"overlaps start", window(9, 0, 11, 0), false, true},
		{"overlaps end", window(11, 0, 13, 0), false, true},
		{"back to back after", window(12, 0, 14, 0), false, false},
		{"back to back before", window(8, 0, 10, 0), false, false},
		{"disjoint", window(15, 0, 16, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.containment, ContainmentRule(tt.candidate, existing), "containment")
			assert.Equal(t, tt.intersection, IntersectionRule(tt.candidate, existing), "intersection")
		})
	}
}

func TestRuleByName(t *testing.T) {
	for _, name := range []string{"", "containment", " Containment "} {
		rule, err := RuleByName(name)
		require.NoError(t, err)
		assert.True(t, rule(window(9, 0, 13, 0), window(10, 0, 12, 0)))
		assert.True(t, rule(window(10, 30, 11, 30), window(10, 0, 12, 0)))
		assert.False(t, rule(window(11, 0, 13, 0), window(10, 0, 12, 0)))
	}

	rule, err := RuleByName("INTERSECTION")
	require.NoError(t, err)
	assert.True(t, rule(window(11, 0, 13, 0), window(10, 0, 12, 0)))

	_, err = RuleByName("strict")
	assert.Error(t, err)
}

func TestStatusAt(t *testing.T) {
	e := window(10, 0, 12, 0)

	assert.Equal(t, StatusUpcoming, StatusAt(e, at(9, 59)))
	assert.Equal(t, StatusActive, StatusAt(e, at(10, 0)))
	assert.Equal(t, StatusEnded, StatusAt(e, at(12, 0)))
}
