package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"indexcalc/pkg/contracts/domain"
)

// LoadSecurityPanelFile selects a loader by file extension: .xlsx paths are
// read as workbooks (first sheet), anything else as CSV.
func (l *Loader) LoadSecurityPanelFile(path string) ([]domain.SecurityPeriod, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.LoadSecurityPanelXLSX(path, "")
	}
	return l.LoadSecurityPanel(path)
}

// LoadSecurityPanelXLSX reads the security-period panel from a provider
// workbook. The sheet's first row is treated as the column header with the
// same names and normalization rules as the CSV loader. An empty sheet name
// selects the workbook's first sheet.
func (l *Loader) LoadSecurityPanelXLSX(path, sheet string) ([]domain.SecurityPeriod, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", path, sheet)
	}

	h := newHeader(rows[0])
	panel := make([]domain.SecurityPeriod, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue // excelize reports trailing blank rows as empty slices
		}
		sp, err := parseSecurityPeriod(h, row)
		if err != nil {
			return nil, fmt.Errorf("%s sheet %q row %d: %w", path, sheet, i+2, err)
		}
		if err := l.validate.Struct(sp); err != nil {
			return nil, fmt.Errorf("%s sheet %q row %d: validate record: %w", path, sheet, i+2, err)
		}
		panel = append(panel, sp)
	}

	l.logger.Info("loaded security panel workbook",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("records", len(panel)))
	return panel, nil
}
