package market

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// barRow is the CSV wire format for historical bars:
// time,open,high,low,close with RFC3339 or date-only timestamps.
type barRow struct {
	Time  string          `csv:"time"`
	Open  decimal.Decimal `csv:"open"`
	High  decimal.Decimal `csv:"high"`
	Low   decimal.Decimal `csv:"low"`
	Close decimal.Decimal `csv:"close"`
}

const dateOnly = "2006-01-02"

func parseBarTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateOnly, s)
}

// LoadBars reads an ordered bar series from path. Plain CSV is read
// directly, ".xz" files are decompressed on the fly, and ".zip"
// datasets are extracted and the first CSV member is loaded.
func LoadBars(path string) ([]Bar, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return loadZip(path)
	case ".xz":
		return loadXZ(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open bars: %w", err)
		}
		defer f.Close()
		return ReadBars(f)
	}
}

// ReadBars decodes CSV bars from r and validates their ordering.
func ReadBars(r io.Reader) ([]Bar, error) {
	var rows []barRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}

	bars := make([]Bar, 0, len(rows))
	for i, row := range rows {
		t, err := parseBarTime(row.Time)
		if err != nil {
			return nil, fmt.Errorf("bar %d: bad time %q: %w", i, row.Time, err)
		}
		bars = append(bars, Bar{
			Time:  t,
			Open:  row.Open,
			High:  row.High,
			Low:   row.Low,
			Close: row.Close,
		})
	}
	return NewSeries(bars)
}

func loadXZ(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}
	return ReadBars(r)
}

func loadZip(path string) ([]Bar, error) {
	dir, err := os.MkdirTemp("", "deskcore-bars-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var csvPath string
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if csvPath == "" && !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".csv") {
			csvPath = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if csvPath == "" {
		return nil, fmt.Errorf("no CSV member in %s", path)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBars(f)
}
