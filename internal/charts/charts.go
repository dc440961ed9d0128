// Package charts renders the dashboard's daily and per-category expense
// series as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"finboard/internal/aggregation"
	"finboard/internal/money"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

const (
	width  = 900
	height = 400

	defaultBarColor = "2563eb" // blue-600
)

// fallbackPalette colors categories that have no color of their own.
var fallbackPalette = []string{"2563eb", "16a34a", "dc2626", "d97706", "7c3aed", "0891b2", "db2777", "65a30d"}

// DailyExpenses renders one bar per day, labelled dd/MM.
func DailyExpenses(days []aggregation.DayTotal) ([]byte, error) {
	if len(days) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, len(days))
	max := decimal.Zero
	for i, d := range days {
		bars[i] = chart.Value{
			Label: d.Label,
			Value: d.Total.InexactFloat64(),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(defaultBarColor),
				StrokeColor: drawing.ColorFromHex(defaultBarColor),
			},
		}
		if d.Total.GreaterThan(max) {
			max = d.Total
		}
	}

	graph := chart.BarChart{
		Title:  "Despesas por dia",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: barWidth(len(bars)),
		YAxis: chart.YAxis{
			ValueFormatter: brlTick,
		},
		Bars: bars,
	}
	if !max.IsPositive() {
		// go-chart cannot scale an all-zero series.
		graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
	}

	return render(graph)
}

// ExpensesByCategory renders each category's share of the total as a pie.
// Categories with a zero total are left out.
func ExpensesByCategory(groups []aggregation.CategoryTotal) ([]byte, error) {
	values := make([]chart.Value, 0, len(groups))
	for i, g := range groups {
		if !g.Total.IsPositive() {
			continue
		}
		color := strings.TrimPrefix(g.Color, "#")
		if color == "" {
			color = fallbackPalette[i%len(fallbackPalette)]
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", g.Name, money.FormatPercent(g.Percent)),
			Value: g.Total.InexactFloat64(),
			Style: chart.Style{FillColor: drawing.ColorFromHex(color)},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	graph := chart.PieChart{
		Title:  "Despesas por categoria",
		Width:  height,
		Height: height,
		Values: values,
	}
	return render(graph)
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func render(graph renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func barWidth(n int) int {
	w := (width - 100) / n
	switch {
	case w > 60:
		return 60
	case w < 4:
		return 4
	}
	return w
}

func brlTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return money.FormatBRL(decimal.NewFromFloat(f))
	}
	return ""
}
