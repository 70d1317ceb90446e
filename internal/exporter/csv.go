package exporter

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"indexcalc/internal/index"
)

// WriteMergedIndices saves the reconciled index table to a CSV file. Computed
// columns carry the _manual suffix next to the official reference columns.
func WriteMergedIndices(rows []index.MergedIndexRow, outputPath string) error {
	header := []string{
		"date",
		"index_level",
		"index_return",
		"value_weighted_return_manual",
		"value_weighted_return_adjusted_manual",
		"total_market_cap_manual",
		"equal_weighted_return_manual",
		"equal_weighted_return_adjusted_manual",
		"contributor_count_manual",
	}

	sorted := make([]index.MergedIndexRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	records := make([][]string, 0, len(sorted))
	for _, row := range sorted {
		records = append(records, []string{
			formatDate(row.Date),
			formatFloat(row.ReferenceLevel, 4),
			formatFloat(row.ReferenceReturn, 8),
			formatFloat(row.VWReturn, 8),
			formatFloat(row.VWReturnAdjusted, 8),
			formatFloat(row.TotalMarketCap, 2),
			formatFloat(row.EWReturn, 8),
			formatFloat(row.EWReturnAdjusted, 8),
			strconv.Itoa(row.ContributorCount),
		})
	}
	return writeCSV(outputPath, header, records)
}

// WriteApproximations saves the joined approximation table to a CSV file
func WriteApproximations(rows []index.ApproximationRow, outputPath string) error {
	header := []string{
		"date",
		"index_level",
		"index_return",
		"total_market_cap",
		"constituent_count",
		"normalized_market_cap",
		"approx_return_a",
		"approx_cumulative_return_a",
		"reference_cumulative_return",
		"approx_return_b",
		"approx_cumulative_return_b",
	}

	sorted := make([]index.ApproximationRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	records := make([][]string, 0, len(sorted))
	for _, row := range sorted {
		records = append(records, []string{
			formatDate(row.Date),
			formatFloat(row.ReferenceLevel, 4),
			formatFloat(row.ReferenceReturn, 8),
			formatFloat(row.TotalMarketCap, 2),
			strconv.Itoa(row.ConstituentCount),
			formatFloat(row.NormalizedMarketCap, 4),
			formatFloat(row.Return, 8),
			formatFloat(row.CumulativeReturn, 8),
			formatFloat(row.ReferenceCumulative, 8),
			formatFloat(row.ReturnB, 8),
			formatFloat(row.CumulativeReturnB, 8),
		})
	}
	return writeCSV(outputPath, header, records)
}

// writeCSV creates the output file (and directory) and writes header plus
// records
func writeCSV(outputPath string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// formatFloat renders a value with fixed precision; NaN becomes an empty cell
func formatFloat(v float64, precision int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// formatDate renders a date in the provider layout
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
