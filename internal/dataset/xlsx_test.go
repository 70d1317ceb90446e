package dataset

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "panel.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadSecurityPanelXLSX(t *testing.T) {
	loader := NewLoader(nil)

	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"security_id", "date", "price", "shares_outstanding", "return", "return_adjusted"},
		{"A", "2020-01-31", 10.5, 100, 0.01, 0.009},
		{"B", "2020-01-31", 20, 50, "", 0.002},
	})

	panel, err := loader.LoadSecurityPanelXLSX(path, "")
	require.NoError(t, err)
	require.Len(t, panel, 2)

	assert.Equal(t, "A", panel[0].SecurityID)
	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), panel[0].Date)
	assert.InDelta(t, 1050, panel[0].MarketCap(), 1e-9)
	assert.True(t, math.IsNaN(panel[1].Return))
	assert.True(t, math.IsNaN(panel[1].PriceFactor), "absent factor column defaults to null")
}

// TestLoadSecurityPanelFile checks the extension dispatch used by the CLI
func TestLoadSecurityPanelFile(t *testing.T) {
	loader := NewLoader(nil)

	t.Run("xlsx extension selects the workbook loader", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", [][]interface{}{
			{"security_id", "date", "price", "shares_outstanding"},
			{"A", "2020-01-31", 10, 100},
		})
		panel, err := loader.LoadSecurityPanelFile(path)
		require.NoError(t, err)
		require.Len(t, panel, 1)
		assert.Equal(t, "A", panel[0].SecurityID)
	})

	t.Run("csv extension selects the csv loader", func(t *testing.T) {
		path := writeFile(t, "panel.csv",
			"security_id,date,price,shares_outstanding\n"+
				"A,2020-01-31,10,100\n")
		panel, err := loader.LoadSecurityPanelFile(path)
		require.NoError(t, err)
		require.Len(t, panel, 1)
		assert.Equal(t, "A", panel[0].SecurityID)
	})
}

func TestLoadSecurityPanelXLSXErrors(t *testing.T) {
	loader := NewLoader(nil)

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.LoadSecurityPanelXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
		require.Error(t, err)
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", [][]interface{}{
			{"security_id", "date"},
		})
		_, err := loader.LoadSecurityPanelXLSX(path, "Trading")
		require.Error(t, err)
	})

	t.Run("malformed row is fatal", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", [][]interface{}{
			{"security_id", "date", "price"},
			{"A", "2020-01-31", "ten"},
		})
		_, err := loader.LoadSecurityPanelXLSX(path, "")
		require.Error(t, err)
	})
}
