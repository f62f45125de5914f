package indicators

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SimpleMA is a streaming Simple Moving Average indicator
type SimpleMA struct {
	period int
	closes []decimal.Decimal
}

// NewSMA creates a Simple Moving Average indicator with the given period
func NewSMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		closes: make([]decimal.Decimal, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(close decimal.Decimal) {
	m.closes = append(m.closes, close)
	// Keep only the last 'period' closes
	if len(m.closes) > m.period {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.period
}

func (m *SimpleMA) Value() decimal.Decimal {
	if !m.Ready() {
		return decimal.Decimal{}
	}

	sum := decimal.Decimal{}
	for _, c := range m.closes {
		sum = sum.Add(c)
	}
	return sum.Div(decimal.NewFromInt(int64(len(m.closes))))
}
