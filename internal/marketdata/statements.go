package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/aurelius/pkg/config"
	"github.com/wonny/aurelius/pkg/httputil"
	"github.com/wonny/aurelius/pkg/logger"
)

// StatementsClient scrapes annual financial statements
// ⭐ SSOT: 재무제표 스크래핑은 이 클라이언트에서만
type StatementsClient struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewStatementsClient creates a new statement scraper
func NewStatementsClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *StatementsClient {
	return &StatementsClient{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Statements.BaseURL,
	}
}

// Line-item label fallback table. Sources rename rows occasionally, so each
// target field accepts several labels, checked in order.
// 라벨 → 필드 매핑은 여기서만 관리 (동적 문자열 조회 금지)
var (
	incomeLabels = map[string][]string{
		"revenue":          {"Revenue", "Total Revenue"},
		"gross_profit":     {"Gross Profit"},
		"operating_income": {"Operating Income"},
		"net_income":       {"Net Income", "Net Income Common"},
		"interest_expense": {"Interest Expense", "Interest Expense / Income"},
	}
	cashFlowLabels = map[string][]string{
		"operating_cash_flow": {"Operating Cash Flow", "Cash From Operations"},
		"capex":               {"Capital Expenditures", "Capital Expenditure"},
	}
)

// statementTable holds one parsed statement page: field -> fiscal year -> value
type statementTable map[string]map[int]float64

// FetchFinancials scrapes income statement and cash flow pages and merges
// them into annual records, most recent fiscal year first.
func (c *StatementsClient) FetchFinancials(ctx context.Context, ticker string) ([]FiscalYear, error) {
	income, err := c.fetchStatement(ctx, ticker, "financials", incomeLabels)
	if err != nil {
		return nil, fmt.Errorf("income statement fetch failed for %s: %w", ticker, err)
	}

	cashFlow, err := c.fetchStatement(ctx, ticker, "financials/cash-flow-statement", cashFlowLabels)
	if err != nil {
		// Cash flow page missing is survivable, FCF 관련 필드만 비게 됨
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Cash flow statement unavailable")
		cashFlow = statementTable{}
	}

	years := mergeStatements(income, cashFlow)
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"years":  len(years),
	}).Debug("Fetched financial statements")
	return years, nil
}

// fetchStatement downloads one statement page and extracts the wanted rows
func (c *StatementsClient) fetchStatement(ctx context.Context, ticker, page string, labels map[string][]string) (statementTable, error) {
	url := fmt.Sprintf("%s/%s/%s/", c.baseURL, strings.ToLower(ticker), page)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return parseStatementHTML(string(body), labels)
}

var fiscalYearRe = regexp.MustCompile(`(\d{4})`)

// parseStatementHTML extracts the wanted line items from a statement table.
// 테이블 구조: 헤더 = 회계연도, 각 행 = 라인 아이템 (백만 단위)
func parseStatementHTML(html string, labels map[string][]string) (statementTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoData
	}

	// Header row: first cell is the label column, rest are fiscal years
	var years []int
	table.Find("thead tr").First().Find("th").Each(func(i int, cell *goquery.Selection) {
		if i == 0 {
			return
		}
		if m := fiscalYearRe.FindString(strings.TrimSpace(cell.Text())); m != "" {
			year, _ := strconv.Atoi(m)
			years = append(years, year)
		} else {
			years = append(years, 0) // placeholder: "Current"/"TTM" 등
		}
	})

	if len(years) == 0 {
		return nil, ErrNoData
	}

	result := make(statementTable)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		label := strings.TrimSpace(cells.Eq(0).Text())
		field, ok := matchLabel(label, labels)
		if !ok {
			return
		}

		values := make(map[int]float64)
		cells.Slice(1, cells.Length()).Each(func(i int, cell *goquery.Selection) {
			if i >= len(years) || years[i] == 0 {
				return
			}
			if v, ok := parseStatementValue(cell.Text()); ok {
				// Statement tables report values in millions
				values[years[i]] = v * 1e6
			}
		})

		if len(values) > 0 {
			result[field] = values
		}
	})

	return result, nil
}

// matchLabel resolves a row label against the fallback table
func matchLabel(label string, labels map[string][]string) (string, bool) {
	for field, candidates := range labels {
		for _, candidate := range candidates {
			if strings.EqualFold(label, candidate) {
				return field, true
			}
		}
	}
	return "", false
}

// parseStatementValue parses a formatted cell like "391,035" or "(10,959)"
func parseStatementValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")

	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return 0, false
	}

	// Accounting negatives: (1234)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// mergeStatements combines income + cash flow tables into FiscalYear records,
// most recent first.
func mergeStatements(income, cashFlow statementTable) []FiscalYear {
	yearSet := make(map[int]bool)
	for _, byYear := range income {
		for year := range byYear {
			yearSet[year] = true
		}
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	lookup := func(table statementTable, field string, year int) *float64 {
		byYear, ok := table[field]
		if !ok {
			return nil
		}
		v, ok := byYear[year]
		if !ok {
			return nil
		}
		return &v
	}

	records := make([]FiscalYear, 0, len(years))
	for _, year := range years {
		records = append(records, FiscalYear{
			Year:              year,
			Revenue:           lookup(income, "revenue", year),
			GrossProfit:       lookup(income, "gross_profit", year),
			OperatingIncome:   lookup(income, "operating_income", year),
			NetIncome:         lookup(income, "net_income", year),
			InterestExpense:   lookup(income, "interest_expense", year),
			OperatingCashFlow: lookup(cashFlow, "operating_cash_flow", year),
			CapEx:             lookup(cashFlow, "capex", year),
		})
	}
	return records
}
