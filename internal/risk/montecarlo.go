package risk

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Monte Carlo Simulation
// =============================================================================

// MonteCarloSimulator resamples a return series to estimate the loss
// distribution over a holding period.
// ⭐ SSOT: 시드를 고정하면 동일 입력 → 동일 결과 (재현성)
type MonteCarloSimulator struct {
	config MonteCarloConfig
	rng    *rand.Rand
}

// NewMonteCarloSimulator 새 시뮬레이터 생성
func NewMonteCarloSimulator(config MonteCarloConfig) *MonteCarloSimulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MonteCarloSimulator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Simulate runs the configured simulation against one return series.
// MinSamples 미만이면 fail-closed (부족한 데이터로 리스크 추정 금지)
func (mc *MonteCarloSimulator) Simulate(series *ReturnSeries) (*MonteCarloResult, error) {
	if series == nil || series.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if series.Len() < mc.config.MinSamples {
		return nil, fmt.Errorf("%w: %s has %d samples, need %d",
			ErrInsufficientData, series.Ticker, series.Len(), mc.config.MinSamples)
	}

	var simulated []float64
	switch mc.config.Method {
	case MCParametricNormal:
		simulated = mc.parametricSimulation(series.Returns)
	default:
		simulated = mc.bootstrapSimulation(series.Returns)
	}

	return mc.summarize(series, simulated), nil
}

// bootstrapSimulation 과거 수익률을 보유 기간만큼 복원추출해 누적 수익률 생성
func (mc *MonteCarloSimulator) bootstrapSimulation(returns []float64) []float64 {
	results := make([]float64, mc.config.NumSimulations)
	for i := range results {
		cumReturn := 1.0
		for d := 0; d < mc.config.HoldingPeriod; d++ {
			idx := mc.rng.Intn(len(returns))
			cumReturn *= 1 + returns[idx]
		}
		results[i] = cumReturn - 1
	}
	return results
}

// parametricSimulation 정규분포 가정, 보유 기간 스케일링 적용
func (mc *MonteCarloSimulator) parametricSimulation(returns []float64) []float64 {
	mean := Mean(returns) * float64(mc.config.HoldingPeriod)
	std := StdDev(returns) * math.Sqrt(float64(mc.config.HoldingPeriod))

	results := make([]float64, mc.config.NumSimulations)
	for i := range results {
		results[i] = mean + std*mc.rng.NormFloat64()
	}
	return results
}

// summarize 시뮬레이션 분포에서 VaR/CVaR/백분위수 추출
func (mc *MonteCarloSimulator) summarize(series *ReturnSeries, simulated []float64) *MonteCarloResult {
	// 시뮬레이션 분포 자체가 보유 기간 수익률이므로 추가 √t 스케일링 없음
	var95, cvar95 := historicalVaR(simulated, 0.95)
	var99, cvar99 := historicalVaR(simulated, 0.99)

	sorted := sortedCopy(simulated)
	percentiles := make(map[int]float64, 9)
	for _, p := range []int{1, 5, 10, 25, 50, 75, 90, 95, 99} {
		percentiles[p] = Percentile(sorted, float64(p))
	}

	return &MonteCarloResult{
		RunID:            uuid.New().String(),
		RunDate:          time.Now(),
		Ticker:           series.Ticker,
		Config:           mc.config,
		InputSampleCount: series.Len(),
		MeanReturn:       Mean(simulated),
		StdDev:           StdDev(simulated),
		VaR95:            var95,
		VaR99:            var99,
		CVaR95:           cvar95,
		CVaR99:           cvar99,
		Percentiles:      percentiles,
	}
}
