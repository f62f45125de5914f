// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/deskcore/ledger"
)

// CSVJournal appends positions and fills to two CSV files. The
// positions file is an append-only mirror: the last row for a symbol
// is its current state.
type CSVJournal struct {
	positions *csv.Writer
	fills     *csv.Writer
	pf, ff    *os.File
}

func NewCSV(positionsPath, fillsPath string) (*CSVJournal, error) {
	pf, err := os.Create(positionsPath)
	if err != nil {
		return nil, err
	}
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}

	pw := csv.NewWriter(pf)
	fw := csv.NewWriter(ff)

	if err := pw.Write([]string{"symbol", "quantity", "avg_cost", "realized_pnl"}); err != nil {
		return nil, err
	}
	if err := fw.Write([]string{"fill_id", "symbol", "side", "quantity", "price", "time"}); err != nil {
		return nil, err
	}

	pw.Flush()
	if err := pw.Error(); err != nil {
		return nil, err
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{pw, fw, pf, ff}, nil
}

func (j *CSVJournal) UpsertPosition(p ledger.Position) error {
	err := j.positions.Write([]string{
		p.Symbol,
		strconv.FormatInt(p.Quantity, 10),
		p.AvgCost.String(),
		p.RealizedPnL.String(),
	})
	if err != nil {
		return err
	}

	j.positions.Flush()
	return j.positions.Error()
}

func (j *CSVJournal) RecordFill(f FillRecord) error {
	err := j.fills.Write([]string{
		f.ID,
		f.Symbol,
		f.Side,
		strconv.FormatInt(f.Quantity, 10),
		f.Price.String(),
		f.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSVJournal) Close() error {
	j.positions.Flush()
	j.fills.Flush()

	if err := j.pf.Close(); err != nil {
		_ = j.ff.Close()
		return err
	}
	return j.ff.Close()
}
