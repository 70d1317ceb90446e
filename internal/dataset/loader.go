package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"indexcalc/pkg/contracts/domain"
)

// DateLayout is the date format expected in provider tables
const DateLayout = "2006-01-02"

// Loader reads provider tables into validated domain records
type Loader struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewLoader creates a loader. A nil logger falls back to slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		validate: validator.New(),
	}
}

// header maps column names to their position, tracking which optional columns
// the provider actually supplied.
type header struct {
	pos map[string]int
}

func newHeader(row []string) header {
	pos := make(map[string]int, len(row))
	for i, name := range row {
		pos[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header{pos: pos}
}

func (h header) has(name string) bool {
	_, ok := h.pos[name]
	return ok
}

// cell returns the trimmed cell value for a named column, or "" when the
// column is absent or the row is short.
func (h header) cell(row []string, name string) string {
	i, ok := h.pos[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// requiredString fails on a blank cell in a required column
func (h header) requiredString(row []string, name string) (string, error) {
	v := h.cell(row, name)
	if v == "" {
		return "", fmt.Errorf("missing required column %q", name)
	}
	return v, nil
}

// requiredDate parses a required date cell
func (h header) requiredDate(row []string, name string) (time.Time, error) {
	v, err := h.requiredString(row, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q as date: %w", name, err)
	}
	return t, nil
}

// optionalFloat parses an optional numeric cell. Absent columns and blank
// cells yield NaN, the null sentinel; a non-numeric cell is a fatal type
// error.
func (h header) optionalFloat(row []string, name string) (float64, error) {
	v := h.cell(row, name)
	if v == "" {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q as float: %w", name, err)
	}
	return f, nil
}

// optionalString returns an optional classification cell, defaulting blanks
// and absent columns to the unknown sentinel
func (h header) optionalString(row []string, name string) string {
	if v := h.cell(row, name); v != "" {
		return v
	}
	return domain.UnknownClassification
}

// LoadSecurityPanel reads the security-period panel from a CSV file.
// Required columns: security_id, date. All numeric columns are optional and
// default to NaN when absent or blank.
func (l *Loader) LoadSecurityPanel(path string) ([]domain.SecurityPeriod, error) {
	var panel []domain.SecurityPeriod
	err := l.readCSV(path, func(h header, row []string) error {
		sp, err := parseSecurityPeriod(h, row)
		if err != nil {
			return err
		}
		if err := l.validate.Struct(sp); err != nil {
			return fmt.Errorf("validate record: %w", err)
		}
		panel = append(panel, sp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("loaded security panel",
		slog.String("path", path),
		slog.Int("records", len(panel)))
	return panel, nil
}

// LoadReferenceIndex reads the reference index series from a CSV file
func (l *Loader) LoadReferenceIndex(path string) ([]domain.ReferencePeriod, error) {
	var series []domain.ReferencePeriod
	err := l.readCSV(path, func(h header, row []string) error {
		date, err := h.requiredDate(row, "date")
		if err != nil {
			return err
		}
		level, err := h.optionalFloat(row, "index_level")
		if err != nil {
			return err
		}
		ret, err := h.optionalFloat(row, "index_return")
		if err != nil {
			return err
		}
		rp := domain.ReferencePeriod{Date: date, Level: level, Return: ret}
		if err := l.validate.Struct(rp); err != nil {
			return fmt.Errorf("validate record: %w", err)
		}
		series = append(series, rp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("loaded reference index",
		slog.String("path", path),
		slog.Int("records", len(series)))
	return series, nil
}

// LoadMemberships reads the constituent membership table from a CSV file.
// Optional classification columns default to domain.UnknownClassification
// when the provider omitted them.
func (l *Loader) LoadMemberships(path string) ([]domain.MembershipInterval, error) {
	var intervals []domain.MembershipInterval
	missingLogged := false
	err := l.readCSV(path, func(h header, row []string) error {
		if !missingLogged {
			for _, name := range []string{"index_number", "member_flag", "index_family"} {
				if !h.has(name) {
					l.logger.Warn("optional membership column absent, filling sentinel",
						slog.String("column", name))
				}
			}
			missingLogged = true
		}
		id, err := h.requiredString(row, "security_id")
		if err != nil {
			return err
		}
		start, err := h.requiredDate(row, "membership_start_date")
		if err != nil {
			return err
		}
		end, err := h.requiredDate(row, "membership_end_date")
		if err != nil {
			return err
		}
		mi := domain.MembershipInterval{
			SecurityID:  id,
			Start:       start,
			End:         end,
			IndexNumber: h.optionalString(row, "index_number"),
			MemberFlag:  h.optionalString(row, "member_flag"),
			IndexFamily: h.optionalString(row, "index_family"),
		}
		if err := l.validate.Struct(mi); err != nil {
			return fmt.Errorf("validate record: %w", err)
		}
		intervals = append(intervals, mi)
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("loaded membership intervals",
		slog.String("path", path),
		slog.Int("records", len(intervals)))
	return intervals, nil
}

// readCSV streams a headered CSV file row by row through parse
func (l *Loader) readCSV(path string, parse func(header, []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be shorter than the header

	headerRow, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}
	h := newHeader(headerRow)

	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s line %d: %w", path, line+1, err)
		}
		line++
		if err := parse(h, row); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}

// parseSecurityPeriod builds one panel record from a CSV row
func parseSecurityPeriod(h header, row []string) (domain.SecurityPeriod, error) {
	id, err := h.requiredString(row, "security_id")
	if err != nil {
		return domain.SecurityPeriod{}, err
	}
	date, err := h.requiredDate(row, "date")
	if err != nil {
		return domain.SecurityPeriod{}, err
	}
	sp := domain.SecurityPeriod{SecurityID: id, Date: date}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"price", &sp.Price},
		{"shares_outstanding", &sp.SharesOutstanding},
		{"return", &sp.Return},
		{"return_adjusted", &sp.ReturnAdjusted},
		{"price_factor", &sp.PriceFactor},
		{"shares_factor", &sp.SharesFactor},
	}
	for _, f := range fields {
		v, err := h.optionalFloat(row, f.name)
		if err != nil {
			return domain.SecurityPeriod{}, err
		}
		*f.dst = v
	}
	return sp, nil
}
