package main

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexcalc/internal/config"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// TestRunEndToEnd exercises the full pipeline from provider CSVs to output
// files
func TestRunEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	writeDataFile(t, dataDir, "security_panel.csv",
		"security_id,date,price,shares_outstanding,return,return_adjusted,price_factor,shares_factor\n"+
			"A,2020-01-31,10,100,0.01,0.01,1,1\n"+
			"B,2020-01-31,20,100,0.01,0.01,1,1\n"+
			"A,2020-02-29,11,100,0.10,0.10,1,1\n"+
			"B,2020-02-29,19,100,-0.05,-0.05,1,1\n"+
			"A,2020-03-31,11,100,0,0,1,1\n"+
			"B,2020-03-31,19,100,0,0,1,1\n")
	writeDataFile(t, dataDir, "reference_index.csv",
		"date,index_level,index_return\n"+
			"2020-01-31,3000,0.012\n"+
			"2020-02-29,2950,-0.017\n"+
			"2020-03-31,2900,-0.017\n")
	writeDataFile(t, dataDir, "memberships.csv",
		"security_id,membership_start_date,membership_end_date\n"+
			"A,2020-01-01,2020-12-31\n"+
			"B,2020-01-01,2020-12-31\n")

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Paths.DataDir = dataDir
	cfg.Paths.OutputDir = outDir
	cfg.Calculation.StartDate = "2020-01-01"
	cfg.Calculation.EndDate = "2020-12-31"

	require.NoError(t, run(cfg, slog.Default()))

	t.Run("merged indices written", func(t *testing.T) {
		f, err := os.Open(filepath.Join(outDir, "merged_indices.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		// Header plus February and March: January has no lagged weights.
		require.Len(t, rows, 3)
		assert.Equal(t, "2020-02-29", rows[1][0])
	})

	t.Run("approximations written", func(t *testing.T) {
		f, err := os.Open(filepath.Join(outDir, "index_approximations.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4, "header plus all three joined periods")
	})
}

func TestRunMissingInput(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()

	assert.Error(t, run(cfg, slog.Default()))
}
