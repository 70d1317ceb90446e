package index

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateIndexApproximations runs A and B end-to-end over a small panel and
// checks the joined output
func TestCreateIndexApproximations(t *testing.T) {
	panel, intervals, reference := approxFixture()

	rows := CreateIndexApproximations(panel, intervals, reference, ApproximationOptions{
		Start:       date(2020, 1, 1),
		End:         date(2020, 12, 31),
		Calibration: CalibrationFactors{ApproxScale: 1, ReferenceScale: 1},
	})
	require.Len(t, rows, 3, "every reference period has a cap row and a simulation row")

	t.Run("first period", func(t *testing.T) {
		first := rows[0]
		assert.Equal(t, monthEnd(2020, time.January), first.Date)
		assert.Zero(t, first.Return, "approximation A first return defaults to zero")
		assert.True(t, math.IsNaN(first.ReturnB), "simulation B first return is null")
		assert.True(t, math.IsNaN(first.CumulativeReturnB))
		assert.InDelta(t, reference[0].Level, first.NormalizedMarketCap, 1e-9)
	})

	t.Run("simulation B return matches hand calculation", func(t *testing.T) {
		// January constituent weights: A=1000/3000, B=2000/3000.
		want := (1000.0/3000)*0.10 + (2000.0/3000)*(-0.05)
		assert.InDelta(t, want, rows[1].ReturnB, 1e-9)
		assert.InDelta(t, 1+want, rows[1].CumulativeReturnB, 1e-9)
	})

	t.Run("cumulative B compounds across periods", func(t *testing.T) {
		retFeb := (1000.0/3000)*0.10 + (2000.0/3000)*(-0.05)
		assert.InDelta(t, (1+retFeb)*(1+rows[2].ReturnB), rows[2].CumulativeReturnB, 1e-9)
	})

	t.Run("reversed range yields empty output", func(t *testing.T) {
		empty := CreateIndexApproximations(panel, intervals, reference, ApproximationOptions{
			Start: date(2021, 1, 1),
			End:   date(2020, 1, 1),
		})
		assert.Empty(t, empty)
	})
}
