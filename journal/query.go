package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/deskcore/ledger"
)

// GetPosition returns the stored state for one symbol.
func (j *SQLite) GetPosition(symbol string) (ledger.Position, error) {
	row := j.db.QueryRow(`
		SELECT symbol, quantity, avg_cost, realized_pnl
		FROM positions
		WHERE symbol = ?`, symbol)

	pos, err := scanPosition(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.Position{}, fmt.Errorf("position %q not found", symbol)
		}
		return ledger.Position{}, err
	}
	return pos, nil
}

// ListPositions returns every stored position, ordered by symbol.
func (j *SQLite) ListPositions() ([]ledger.Position, error) {
	rows, err := j.db.Query(`
		SELECT symbol, quantity, avg_cost, realized_pnl
		FROM positions
		ORDER BY symbol ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, rows.Err()
}

// ListFillsBySymbol returns the stored fills for symbol in time order.
func (j *SQLite) ListFillsBySymbol(symbol string) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT fill_id, symbol, side, quantity, price, time
		FROM fills
		WHERE symbol = ?
		ORDER BY time ASC, fill_id ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var rec FillRecord
		var price string
		var ts time.Time
		if err := rows.Scan(&rec.ID, &rec.Symbol, &rec.Side, &rec.Quantity, &price, &ts); err != nil {
			return nil, err
		}
		rec.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("fill %s: bad price %q: %w", rec.ID, price, err)
		}
		rec.Time = ts
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (ledger.Position, error) {
	var pos ledger.Position
	var avg, realized string

	if err := row.Scan(&pos.Symbol, &pos.Quantity, &avg, &realized); err != nil {
		return ledger.Position{}, err
	}

	var err error
	if pos.AvgCost, err = decimal.NewFromString(avg); err != nil {
		return ledger.Position{}, fmt.Errorf("position %s: bad avg_cost %q: %w", pos.Symbol, avg, err)
	}
	if pos.RealizedPnL, err = decimal.NewFromString(realized); err != nil {
		return ledger.Position{}, fmt.Errorf("position %s: bad realized_pnl %q: %w", pos.Symbol, realized, err)
	}
	return pos, nil
}
