package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexcalc/pkg/contracts/domain"
)

// TestMergeIndices verifies inner-join semantics across the three tables
func TestMergeIndices(t *testing.T) {
	jan := monthEnd(2020, time.January)
	feb := monthEnd(2020, time.February)
	mar := monthEnd(2020, time.March)
	apr := monthEnd(2020, time.April)

	reference := []domain.ReferencePeriod{
		{Date: jan, Level: 3200, Return: 0.01},
		{Date: feb, Level: 3100, Return: -0.03},
		{Date: mar, Level: 2900, Return: -0.06},
		// April exists only in the reference series.
		{Date: apr, Level: 3000, Return: 0.03},
	}
	vw := []ValueWeightedRow{
		{Date: feb, Return: -0.029, ReturnAdjusted: -0.031, TotalMarketCap: 1e6},
		{Date: mar, Return: -0.058, ReturnAdjusted: -0.062, TotalMarketCap: 9e5},
	}
	ew := []EqualWeightedRow{
		{Date: jan, Return: 0.012, ReturnAdjusted: 0.011, Count: 3},
		{Date: feb, Return: -0.027, ReturnAdjusted: -0.028, Count: 3},
		{Date: mar, Return: -0.055, ReturnAdjusted: -0.057, Count: 2},
	}

	rows := MergeIndices(reference, vw, ew)
	require.Len(t, rows, 2, "only dates present in all three sources survive")

	assert.Equal(t, feb, rows[0].Date)
	assert.Equal(t, mar, rows[1].Date)

	// Reference and recomputed columns coexist on the joined row.
	assert.InDelta(t, 3100, rows[0].ReferenceLevel, 1e-9)
	assert.InDelta(t, -0.03, rows[0].ReferenceReturn, 1e-9)
	assert.InDelta(t, -0.029, rows[0].VWReturn, 1e-9)
	assert.InDelta(t, -0.031, rows[0].VWReturnAdjusted, 1e-9)
	assert.InDelta(t, 1e6, rows[0].TotalMarketCap, 1e-9)
	assert.InDelta(t, -0.027, rows[0].EWReturn, 1e-9)
	assert.Equal(t, 3, rows[0].ContributorCount)
}

func TestMergeIndicesEmpty(t *testing.T) {
	rows := MergeIndices(nil, nil, nil)
	assert.Empty(t, rows)
}
