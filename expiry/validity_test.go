package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	testDefs := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"plain addition", date(2024, time.March, 10), 1, date(2024, time.April, 10)},
		{"across year boundary", date(2024, time.November, 15), 3, date(2025, time.February, 15)},
		{"jan 31 clamps to leap feb", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 clamps to non-leap feb", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"may 31 clamps to june 30", date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{"twelve months keeps day", date(2024, time.January, 10), 12, date(2025, time.January, 10)},
		{"feb 29 plus a year clamps", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
	}

	for _, def := range testDefs {
		t.Run(def.name, func(t *testing.T) {
			assert.Equal(t, def.expected, AddMonths(def.start, def.months))
		})
	}
}

func TestDerivedExpiry(t *testing.T) {
	issue := date(2024, time.January, 10)

	assert.Equal(t, date(2025, time.January, 10), DerivedExpiry(issue, nil))

	six := 6
	assert.Equal(t, date(2024, time.July, 10), DerivedExpiry(issue, &six))

	// End-of-month issue dates must not roll into the next month.
	one := 1
	assert.Equal(t, date(2024, time.February, 29), DerivedExpiry(date(2024, time.January, 31), &one))
}
