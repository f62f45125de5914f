// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	symbol TEXT PRIMARY KEY,
	quantity INTEGER NOT NULL,
	avg_cost TEXT NOT NULL,
	realized_pnl TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fills (
	fill_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_symbol ON fills(symbol);
`
