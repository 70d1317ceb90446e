package index

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexcalc/pkg/contracts/domain"
)

func monthEnd(year int, month time.Month) time.Time {
	return MonthEnd.Anchor(time.Date(year, month, 15, 0, 0, 0, 0, time.UTC))
}

func obs(id string, date time.Time, price, shares float64) domain.SecurityPeriod {
	return domain.SecurityPeriod{
		SecurityID:        id,
		Date:              date,
		Price:             price,
		SharesOutstanding: shares,
		Return:            math.NaN(),
		ReturnAdjusted:    math.NaN(),
		PriceFactor:       1,
		SharesFactor:      1,
	}
}

// TestLagColumn verifies calendar alignment of lagged values
func TestLagColumn(t *testing.T) {
	jan := monthEnd(2020, time.January)
	feb := monthEnd(2020, time.February)
	mar := monthEnd(2020, time.March)
	apr := monthEnd(2020, time.April)

	panel := []domain.SecurityPeriod{
		obs("A", jan, 10, 100),
		obs("A", feb, 12, 100),
		// A has no March observation: a coverage gap.
		obs("A", apr, 15, 100),
		obs("B", feb, 20, 50),
	}

	lagged := LagColumn(panel, domain.SecurityPeriod.MarketCap, MonthEnd)

	t.Run("value from prior period", func(t *testing.T) {
		v, ok := LookupLag(lagged, "A", feb, MonthEnd)
		require.True(t, ok)
		assert.InDelta(t, 1000, v, 1e-9)

		v, ok = LookupLag(lagged, "A", mar, MonthEnd)
		require.True(t, ok)
		assert.InDelta(t, 1200, v, 1e-9)
	})

	t.Run("no lag at first period per entity", func(t *testing.T) {
		_, ok := LookupLag(lagged, "A", jan, MonthEnd)
		assert.False(t, ok)
		_, ok = LookupLag(lagged, "B", feb, MonthEnd)
		assert.False(t, ok)
	})

	t.Run("never lags across a gap", func(t *testing.T) {
		// A observed Feb but not Mar, so the April lag slot is empty; the
		// February value must not leak two periods forward.
		_, ok := LookupLag(lagged, "A", apr, MonthEnd)
		assert.False(t, ok)

		v, ok := LookupLag(lagged, "A", monthEnd(2020, time.May), MonthEnd)
		require.True(t, ok)
		assert.InDelta(t, 1500, v, 1e-9)
	})

	t.Run("entities are matched by identity", func(t *testing.T) {
		v, ok := LookupLag(lagged, "B", mar, MonthEnd)
		require.True(t, ok)
		assert.InDelta(t, 1000, v, 1e-9)
	})
}

// TestLagRoundTrip checks that lagging then shifting forward reproduces the
// original column except at the boundary
func TestLagRoundTrip(t *testing.T) {
	dates := []time.Time{
		monthEnd(2020, time.January),
		monthEnd(2020, time.February),
		monthEnd(2020, time.March),
		monthEnd(2020, time.April),
	}
	panel := make([]domain.SecurityPeriod, 0, len(dates))
	for i, d := range dates {
		panel = append(panel, obs("A", d, float64(10+i), 100))
	}

	lagged := LagColumn(panel, domain.SecurityPeriod.MarketCap, MonthEnd)

	for i, sp := range panel {
		// Unlag: the value stored one period ahead must equal the original.
		v, ok := LookupLag(lagged, "A", MonthEnd.Next(dates[i]), MonthEnd)
		require.True(t, ok, "lag missing one period after %v", dates[i])
		assert.InDelta(t, sp.MarketCap(), v, 1e-9)
	}

	// Boundary: nothing precedes the first observation.
	_, ok := LookupLag(lagged, "A", dates[0], MonthEnd)
	assert.False(t, ok)
}
