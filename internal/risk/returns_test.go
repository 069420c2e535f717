package risk

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wonny/aurelius/internal/marketdata"
)

// candlesFromCloses builds daily candles with consecutive dates
func candlesFromCloses(closes ...float64) []marketdata.Candle {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]marketdata.Candle, len(closes))
	for i, c := range closes {
		candles[i] = marketdata.Candle{
			Date:  start.AddDate(0, 0, i),
			Close: c,
		}
	}
	return candles
}

func seriesFromCloses(t *testing.T, ticker string, closes ...float64) *ReturnSeries {
	t.Helper()
	s, err := NewReturnSeries(ticker, candlesFromCloses(closes...))
	if err != nil {
		t.Fatalf("NewReturnSeries() error = %v", err)
	}
	return s
}

func TestNewReturnSeries(t *testing.T) {
	s := seriesFromCloses(t, "TEST", 100, 110, 99)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if math.Abs(s.Returns[0]-0.10) > 1e-12 {
		t.Errorf("Returns[0] = %f, want 0.10", s.Returns[0])
	}
	if math.Abs(s.Returns[1]-(-0.10)) > 1e-12 {
		t.Errorf("Returns[1] = %f, want -0.10", s.Returns[1])
	}

	// Dates belong to the second close of each pair
	if !s.Dates[0].After(candlesFromCloses(100)[0].Date) {
		t.Error("return date should be the later candle's date")
	}
}

func TestNewReturnSeriesEmpty(t *testing.T) {
	_, err := NewReturnSeries("EMPTY", nil)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("error = %v, want ErrEmptySeries", err)
	}

	_, err = NewReturnSeries("ONE", candlesFromCloses(100))
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("single candle error = %v, want ErrEmptySeries", err)
	}
}

func TestAlignSeries(t *testing.T) {
	a := seriesFromCloses(t, "A", 100, 101, 102, 103)
	b := seriesFromCloses(t, "B", 50, 51, 52, 53)

	// Knock one date out of b to force a partial join
	b.Dates = b.Dates[:2]
	b.Returns = b.Returns[:2]

	x, y := AlignSeries(a, b)
	if len(x) != 2 || len(y) != 2 {
		t.Fatalf("aligned lengths = %d/%d, want 2/2", len(x), len(y))
	}
}

func TestStatisticsHelpers(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	if got := Mean(values); got != 3 {
		t.Errorf("Mean = %f, want 3", got)
	}
	if got := StdDev(values); math.Abs(got-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("StdDev = %f, want sqrt(2.5)", got)
	}
	if got := Percentile(values, 50); got != 3 {
		t.Errorf("Percentile(50) = %f, want 3", got)
	}
	if got := Percentile(values, 0); got != 1 {
		t.Errorf("Percentile(0) = %f, want 1", got)
	}
	if got := Percentile(values, 100); got != 5 {
		t.Errorf("Percentile(100) = %f, want 5", got)
	}

	// Perfect positive correlation
	if got := Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}); math.Abs(got-1) > 1e-12 {
		t.Errorf("Correlation = %f, want 1", got)
	}
	// Zero variance is a sentinel, not NaN
	if got := Correlation([]float64{1, 1, 1}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("Correlation with flat series = %f, want 0", got)
	}
}
