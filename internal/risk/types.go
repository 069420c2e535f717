package risk

import (
	"errors"
	"time"
)

// =============================================================================
// Return Series & Conventions
// =============================================================================

var (
	// ErrEmptySeries return series has no observations
	ErrEmptySeries = errors.New("empty return series")
	// ErrInsufficientData not enough aligned observations for the calculation
	ErrInsufficientData = errors.New("insufficient aligned observations")
	// ErrTooFewTickers correlation matrix needs at least two tickers
	ErrTooFewTickers = errors.New("need at least two tickers")
	// ErrInvalidMethod unknown VaR method
	ErrInvalidMethod = errors.New("invalid var method")
)

// VaRConvention VaR 부호 규약
// ⭐ SSOT: Loss를 양수로 표현 (VaR=0.05 → 5% 손실 가능)
// 전체 시스템에서 이 규약을 일관되게 사용
const VaRConvention = "loss_positive"

// TradingDaysPerYear 연환산 기준 거래일수
const TradingDaysPerYear = 252

// ReturnSeries 일별 수익률 시계열 (모든 리스크 계산의 단일 입력)
// Dates[i]는 Returns[i]가 끝나는 날 (두 번째 종가의 날짜)
type ReturnSeries struct {
	Ticker  string      `json:"ticker"`
	Dates   []time.Time `json:"dates"`
	Returns []float64   `json:"returns"`
}

// Len observation count
func (s *ReturnSeries) Len() int {
	return len(s.Returns)
}

// =============================================================================
// VaR/CVaR Types
// =============================================================================

// VaRMethod VaR 계산 방식
type VaRMethod string

const (
	MethodHistorical VaRMethod = "historical"
	MethodParametric VaRMethod = "parametric"
)

// VaRResult VaR 계산 결과
// ⭐ SSOT: VaR/CVaR는 손실을 양수로 표현
// - VaR=0.05 → 95% 신뢰수준에서 최대 5% 손실 가능
// - CVaR=0.07 → tail에서 평균 7% 손실 예상
type VaRResult struct {
	Ticker        string    `json:"ticker"`
	Method        VaRMethod `json:"method"`
	Confidence    float64   `json:"confidence"`
	HoldingPeriod int       `json:"holding_period"` // 일 단위, √t 스케일링
	VaR           float64   `json:"var"`
	CVaR          float64   `json:"cvar"`
	Observations  int       `json:"observations"`
}

// =============================================================================
// Ratio Types
// =============================================================================

// RatioGrade Sharpe/Sortino 정성 해석
type RatioGrade string

const (
	GradeExcellent    RatioGrade = "excellent"     // >= 2
	GradeGood         RatioGrade = "good"          // >= 1
	GradeModerate     RatioGrade = "moderate"      // >= 0.5
	GradeBelowAverage RatioGrade = "below average" // >= 0
	GradePoor         RatioGrade = "poor"          // < 0
)

// RatioResult 연환산 수익률/변동성과 위험조정 비율
// 변동성 0이면 비율은 센티널 0 (NaN 금지)
type RatioResult struct {
	Ticker               string     `json:"ticker"`
	AnnualizedReturn     float64    `json:"annualized_return"`
	AnnualizedVolatility float64    `json:"annualized_volatility"`
	DownsideDeviation    float64    `json:"downside_deviation"`
	RiskFreeRate         float64    `json:"risk_free_rate"`
	Sharpe               float64    `json:"sharpe"`
	Sortino              float64    `json:"sortino"`
	SharpeGrade          RatioGrade `json:"sharpe_grade"`
	SortinoGrade         RatioGrade `json:"sortino_grade"`
}

// =============================================================================
// Drawdown / Volatility Types
// =============================================================================

// DrawdownResult 최대 낙폭 분석 결과 (낙폭은 음수로 표현)
type DrawdownResult struct {
	Ticker          string    `json:"ticker"`
	MaxDrawdown     float64   `json:"max_drawdown"` // <= 0
	PeakDate        time.Time `json:"peak_date"`
	PeakPrice       float64   `json:"peak_price"`
	TroughDate      time.Time `json:"trough_date"`
	TroughPrice     float64   `json:"trough_price"`
	Recovered       bool      `json:"recovered"`
	RecoveryDate    time.Time `json:"recovery_date,omitempty"`
	RecoveryDays    int       `json:"recovery_days"`
	CurrentDrawdown float64   `json:"current_drawdown"` // 현재가 기준, 역대 최대치보다 깊을 수 있음
	AverageDrawdown float64   `json:"average_drawdown"` // 전 구간 평균 낙폭 (<= 0)
}

// VolatilityResult 롤링 변동성 (연환산)
type VolatilityResult struct {
	Ticker         string  `json:"ticker"`
	Window         int     `json:"window"` // 기본 30일
	Historical     float64 `json:"historical"` // 전 구간 연환산 변동성
	Current        float64 `json:"current"`
	PercentileRank float64 `json:"percentile_rank"` // 0-100, 전체 구간 내 현재값 위치
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Average        float64 `json:"average"`
	RiskLevel      string  `json:"risk_level"` // Very Low ~ Very High, 전 구간 변동성 기준
}

// =============================================================================
// Beta / Correlation Types
// =============================================================================

// BetaResult CAPM 베타/알파 (벤치마크와 날짜 inner join 후 계산)
type BetaResult struct {
	Ticker       string  `json:"ticker"`
	Benchmark    string  `json:"benchmark"`
	Beta         float64 `json:"beta"`
	Alpha        float64 `json:"alpha"` // Jensen's alpha, 연환산
	Correlation  float64 `json:"correlation"`
	RSquared     float64 `json:"r_squared"`
	Observations int     `json:"observations"` // 최소 30 필요
}

// CorrelationPair 상관계수가 가장 높은/낮은 종목 쌍
type CorrelationPair struct {
	TickerA     string  `json:"ticker_a"`
	TickerB     string  `json:"ticker_b"`
	Correlation float64 `json:"correlation"`
}

// CorrelationMatrix N×N 피어슨 상관 행렬 (대각선 1.0)
type CorrelationMatrix struct {
	Tickers      []string         `json:"tickers"`
	Matrix       [][]float64      `json:"matrix"`
	Highest      *CorrelationPair `json:"highest,omitempty"`
	Lowest       *CorrelationPair `json:"lowest,omitempty"`
	Observations int              `json:"observations"`
}

// =============================================================================
// Monte Carlo Types
// =============================================================================

// MonteCarloMethod 시뮬레이션 방법
type MonteCarloMethod string

const (
	MCHistoricalBootstrap MonteCarloMethod = "historical_bootstrap" // 과거 수익률 재샘플링
	MCParametricNormal    MonteCarloMethod = "parametric_normal"    // 정규분포 가정
)

// MonteCarloConfig Monte Carlo 시뮬레이션 설정
// ⭐ SSOT: 재현성을 위해 모든 설정을 명시적으로 기록
type MonteCarloConfig struct {
	NumSimulations int              `json:"num_simulations"` // 기본: 10000
	HoldingPeriod  int              `json:"holding_period"`  // 보유 기간 (일, 기본: 5)
	Method         MonteCarloMethod `json:"method"`
	Seed           int64            `json:"seed"`        // 재현성용 시드 (0=랜덤)
	MinSamples     int              `json:"min_samples"` // fail-closed, 기본: 30
}

// DefaultMonteCarloConfig 기본 Monte Carlo 설정
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations: 10000,
		HoldingPeriod:  5,
		Method:         MCHistoricalBootstrap,
		Seed:           0,
		MinSamples:     30,
	}
}

// MonteCarloResult Monte Carlo 시뮬레이션 결과
// Config를 포함해 결과만으로 재현 가능
type MonteCarloResult struct {
	RunID            string           `json:"run_id"`
	RunDate          time.Time        `json:"run_date"`
	Ticker           string           `json:"ticker"`
	Config           MonteCarloConfig `json:"config"`
	InputSampleCount int              `json:"input_sample_count"`
	MeanReturn       float64          `json:"mean_return"`
	StdDev           float64          `json:"std_dev"`
	VaR95            float64          `json:"var_95"`
	VaR99            float64          `json:"var_99"`
	CVaR95           float64          `json:"cvar_95"`
	CVaR99           float64          `json:"cvar_99"`
	Percentiles      map[int]float64  `json:"percentiles"` // 1, 5, 10, 25, 50, 75, 90, 95, 99
}
