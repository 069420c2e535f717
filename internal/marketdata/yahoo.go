package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/aurelius/pkg/config"
	"github.com/wonny/aurelius/pkg/httputil"
	"github.com/wonny/aurelius/pkg/logger"
)

// YahooClient fetches quotes and OHLCV data from the Yahoo Finance JSON API
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type YahooClient struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	chartBaseURL string
	quoteBaseURL string
}

// NewYahooClient creates a new Yahoo Finance client
func NewYahooClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *YahooClient {
	return &YahooClient{
		httpClient:   httpClient,
		logger:       log,
		chartBaseURL: cfg.Yahoo.ChartBaseURL,
		quoteBaseURL: cfg.Yahoo.QuoteBaseURL,
	}
}

// =============================================================================
// Chart API (daily OHLCV)
// =============================================================================

// yahooChartResponse mirrors the v8 chart API response shape
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCandles fetches daily OHLCV bars for a lookback period
func (c *YahooClient) FetchDailyCandles(ctx context.Context, ticker string, period string) ([]Candle, error) {
	chartRange, err := ChartRange(period)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, period)
	}

	url := fmt.Sprintf("%s/%s?range=%s&interval=1d", c.chartBaseURL, ticker, chartRange)

	var resp yahooChartResponse
	if err := c.httpClient.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("chart fetch failed for %s: %w", ticker, err)
	}

	candles, err := parseChartResponse(&resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, ticker)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"period": period,
		"count":  len(candles),
	}).Debug("Fetched daily candles")
	return candles, nil
}

// parseChartResponse converts the chart payload into candles
// 휴장일 등으로 null이 섞인 바는 건너뜀
func parseChartResponse(resp *yahooChartResponse) ([]Candle, error) {
	if resp.Chart.Error != nil {
		return nil, ErrNoData
	}
	if len(resp.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	quote := result.Indicators.Quote[0]
	candles := make([]Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		candle := Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}

		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, ErrNoData
	}
	return candles, nil
}

// =============================================================================
// Quote Summary API (market snapshot)
// =============================================================================

// yahooValue wraps Yahoo's {raw, fmt} number encoding
type yahooValue struct {
	Raw float64 `json:"raw"`
}

// yahooQuoteSummaryResponse mirrors the v10 quoteSummary response shape
type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName          string     `json:"shortName"`
				Currency           string     `json:"currency"`
				RegularMarketPrice yahooValue `json:"regularMarketPrice"`
				MarketCap          yahooValue `json:"marketCap"`
			} `json:"price"`
			DefaultKeyStatistics struct {
				SharesOutstanding yahooValue `json:"sharesOutstanding"`
				Beta              yahooValue `json:"beta"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				TotalDebt yahooValue `json:"totalDebt"`
				TotalCash yahooValue `json:"totalCash"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchStockInfo fetches the current market snapshot for a ticker
func (c *YahooClient) FetchStockInfo(ctx context.Context, ticker string) (*StockInfo, error) {
	url := fmt.Sprintf(
		"%s/%s?modules=price,defaultKeyStatistics,financialData",
		c.quoteBaseURL, ticker,
	)

	var resp yahooQuoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("quote fetch failed for %s: %w", ticker, err)
	}

	info, err := parseQuoteSummary(ticker, &resp)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  info.CurrentPrice,
	}).Debug("Fetched stock info")
	return info, nil
}

// parseQuoteSummary converts the quoteSummary payload into a StockInfo
func parseQuoteSummary(ticker string, resp *yahooQuoteSummaryResponse) (*StockInfo, error) {
	if resp.QuoteSummary.Error != nil || len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	r := resp.QuoteSummary.Result[0]
	info := &StockInfo{
		Ticker:            ticker,
		Name:              r.Price.ShortName,
		Currency:          r.Price.Currency,
		CurrentPrice:      r.Price.RegularMarketPrice.Raw,
		MarketCap:         r.Price.MarketCap.Raw,
		SharesOutstanding: r.DefaultKeyStatistics.SharesOutstanding.Raw,
		Beta:              r.DefaultKeyStatistics.Beta.Raw,
		TotalDebt:         r.FinancialData.TotalDebt.Raw,
		TotalCash:         r.FinancialData.TotalCash.Raw,
	}

	if info.CurrentPrice == 0 && info.MarketCap == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}
	return info, nil
}
