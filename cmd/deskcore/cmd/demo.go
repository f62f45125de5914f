package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/deskcore/alerts"
	"github.com/rustyeddy/deskcore/feed"
	"github.com/rustyeddy/deskcore/ledger"
	"github.com/rustyeddy/deskcore/market"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a synthetic session through the event dispatcher",
	Long: `Demo wires the ledger, alert evaluator and bar aggregator to the
inbound event dispatcher, then pushes a synthetic tick walk and a few
fills through it. Useful for seeing how the pieces compose without a
broker connection.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	const symbol = "AAPL"

	dispatcher := feed.NewDispatcher()
	book := ledger.New(nil)
	evaluator := alerts.NewEvaluator()
	aggregator := market.NewAggregator()
	snapshots := feed.NewSnapshotBuilder()

	fired := 0
	err := evaluator.Register(symbol,
		alerts.PriceAtOrAbove(decimal.NewFromInt(105)),
		alerts.ActionFunc(func(sym string) {
			fired++
			fmt.Printf("  ALERT %s at or above 105\n", sym)
		}))
	if err != nil {
		return err
	}

	if err := dispatcher.OnFill(func(ev feed.FillEvent) {
		if err := book.ApplyFill(ev.Fill); err != nil {
			fmt.Printf("  fill rejected: %v\n", err)
		}
	}); err != nil {
		return err
	}
	if err := dispatcher.OnTick(func(ev feed.TickEvent) {
		snapshots.Apply(ev)
		aggregator.Update(ev.Symbol, ev.Price, ev.Time)
	}); err != nil {
		return err
	}
	if err := dispatcher.OnError(func(ev feed.ErrorEvent) {
		fmt.Printf("  broker error %d: %s\n", ev.Code, ev.Message)
	}); err != nil {
		return err
	}

	start := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

	dispatcher.PublishFill(feed.FillEvent{
		Fill: ledger.Fill{Symbol: symbol, Side: ledger.Buy, Price: decimal.NewFromInt(100), Quantity: 10},
		Time: start,
	})

	// Deterministic walk: 100 -> 109 over ten ticks, one every 20s.
	for i := 0; i < 10; i++ {
		px := decimal.NewFromInt(int64(100 + i))
		dispatcher.PublishTick(feed.TickEvent{
			Symbol: symbol,
			Price:  px,
			Time:   start.Add(time.Duration(i) * 20 * time.Second),
		})
		evaluator.Evaluate(snapshots.Current())
	}

	dispatcher.PublishFill(feed.FillEvent{
		Fill: ledger.Fill{Symbol: symbol, Side: ledger.Sell, Price: decimal.NewFromInt(109), Quantity: 4},
		Time: start.Add(4 * time.Minute),
	})

	fmt.Printf("\nSession complete\n")
	last, _ := snapshots.Current().Price(symbol)
	for _, pos := range book.Positions() {
		fmt.Printf("  %s: qty=%d avg=%s realized=%s unrealized=%s\n",
			pos.Symbol, pos.Quantity,
			pos.AvgCost.StringFixed(2),
			pos.RealizedPnL.StringFixed(2),
			book.UnrealizedPnL(pos.Symbol, last).StringFixed(2))
	}
	fmt.Printf("  alerts fired: %d\n", fired)
	fmt.Printf("  minute bars aggregated: %d\n", len(aggregator.Bars(symbol)))

	return nil
}
