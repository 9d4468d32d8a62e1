package dataset

// Статусы сравнения с бенчмарком
const (
	StatusBelow    = "below"
	StatusWithin   = "within"
	StatusAbove    = "above"
	StatusCritical = "critical"
)

// Benchmark отраслевой диапазон показателя для SaaS ERP
type Benchmark struct {
	Key      string   `json:"key"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Ideal    float64  `json:"ideal"`
	Critical *float64 `json:"critical,omitempty"`
}

func critical(v float64) *float64 { return &v }

var benchmarks = []Benchmark{
	{Key: UserConversionRate, Min: 8, Max: 15, Ideal: 10.5},
	{Key: LeadConversionRate, Min: 4.5, Max: 6, Ideal: 5.25},
	{Key: CAC, Min: 250, Max: 500, Ideal: 350},
	{Key: CACLTV, Min: 3, Max: 7, Ideal: 4, Critical: critical(3)},
	{Key: ROI, Min: 300, Max: 500, Ideal: 400},
	{Key: AverageTicket, Min: 120, Max: 200, Ideal: 150},
}

// Benchmarks возвращает копию статических бенчмарков
func Benchmarks() []Benchmark {
	out := make([]Benchmark, len(benchmarks))
	copy(out, benchmarks)
	return out
}

// BenchmarkComparison среднее значение показателя относительно бенчмарка
type BenchmarkComparison struct {
	KPI       KPI       `json:"kpi"`
	Benchmark Benchmark `json:"benchmark"`
	Mean      float64   `json:"mean"`
	Status    string    `json:"status"`
}

// Classify определяет статус значения относительно бенчмарка
func (b Benchmark) Classify(value float64) string {
	switch {
	case b.Critical != nil && value < *b.Critical:
		return StatusCritical
	case value < b.Min:
		return StatusBelow
	case value > b.Max:
		return StatusAbove
	default:
		return StatusWithin
	}
}

// CompareBenchmarks сравнивает средние значения таблицы с бенчмарками
func CompareBenchmarks(t *Table) ([]BenchmarkComparison, error) {
	out := make([]BenchmarkComparison, 0, len(benchmarks))
	for _, b := range benchmarks {
		kpi, err := Lookup(b.Key)
		if err != nil {
			return nil, err
		}
		values, err := t.Column(b.Key)
		if err != nil {
			return nil, err
		}
		mean := Mean(values)
		out = append(out, BenchmarkComparison{
			KPI:       kpi,
			Benchmark: b,
			Mean:      mean,
			Status:    b.Classify(mean),
		})
	}
	return out, nil
}
