package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/deskcore/ledger"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) UpsertPosition(p ledger.Position) error {
	_, err := j.db.Exec(`
		INSERT INTO positions (symbol, quantity, avg_cost, realized_pnl)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			quantity = excluded.quantity,
			avg_cost = excluded.avg_cost,
			realized_pnl = excluded.realized_pnl`,
		p.Symbol, p.Quantity, p.AvgCost.String(), p.RealizedPnL.String(),
	)
	return err
}

func (j *SQLite) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills (fill_id, symbol, side, quantity, price, time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Symbol, f.Side, f.Quantity, f.Price.String(), f.Time,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
