package dataset

import (
	"encoding/json"
	"math"
)

// Mean среднее значение; для пустого среза возвращает 0
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PercentChange изменение от первого к последнему значению в процентах.
// ok = false, если первое значение равно нулю или данных нет.
func PercentChange(values []float64) (change float64, ok bool) {
	if len(values) == 0 || values[0] == 0 {
		return 0, false
	}
	first := values[0]
	last := values[len(values)-1]
	return (last - first) / first * 100, true
}

// Card карточка основного показателя: среднее и изменение за период
type Card struct {
	KPI           KPI     `json:"kpi"`
	Mean          float64 `json:"mean"`
	Change        float64 `json:"change"`
	ChangeDefined bool    `json:"changeDefined"`
	// InverseDelta рост показателя отображается как негативный
	InverseDelta bool `json:"inverseDelta"`
}

// cardKeys карточки в шапке дашборда
var cardKeys = []struct {
	key     string
	inverse bool
}{
	{CAC, true},
	{LTV, false},
	{ROI, true},
	{LeadConversionRate, true},
}

// Cards возвращает карточки основных показателей по таблице
func Cards(t *Table) ([]Card, error) {
	cards := make([]Card, 0, len(cardKeys))
	for _, c := range cardKeys {
		kpi, err := Lookup(c.key)
		if err != nil {
			return nil, err
		}
		values, err := t.Column(c.key)
		if err != nil {
			return nil, err
		}
		change, ok := PercentChange(values)
		cards = append(cards, Card{
			KPI:           kpi,
			Mean:          Mean(values),
			Change:        change,
			ChangeDefined: ok,
			InverseDelta:  c.inverse,
		})
	}
	return cards, nil
}

// FunnelStage этап воронки конверсии
type FunnelStage struct {
	KPI            KPI     `json:"kpi"`
	Value          float64 `json:"value"`
	PercentInitial float64 `json:"percentInitial"`
}

// Funnel воронка за последний месяц таблицы
type Funnel struct {
	Month   string        `json:"month"`
	Revenue float64       `json:"revenue"`
	Stages  []FunnelStage `json:"stages"`
}

var funnelKeys = []string{Sessions, FirstVisits, Leads, WebCustomers}

// BuildFunnel строит воронку сессии -> первые визиты -> лиды -> клиенты за последний месяц
func BuildFunnel(t *Table) (Funnel, error) {
	if t.Len() == 0 {
		return Funnel{}, ErrNoMonthsSelected
	}
	last := t.Len() - 1

	revenue, err := t.Value(WebRevenue, last)
	if err != nil {
		return Funnel{}, err
	}
	funnel := Funnel{Month: t.months[last], Revenue: revenue}

	var initial float64
	for i, key := range funnelKeys {
		kpi, err := Lookup(key)
		if err != nil {
			return Funnel{}, err
		}
		value, err := t.Value(key, last)
		if err != nil {
			return Funnel{}, err
		}
		if i == 0 {
			initial = value
		}
		stage := FunnelStage{KPI: kpi, Value: value}
		if initial != 0 {
			stage.PercentInitial = value / initial * 100
		}
		funnel.Stages = append(funnel.Stages, stage)
	}
	return funnel, nil
}

// Coefficient коэффициент корреляции; NaN сериализуется как null
type Coefficient float64

func (c Coefficient) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(c)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(c))
}

// CorrelationMatrix матрица корреляций Пирсона между показателями
type CorrelationMatrix struct {
	Keys   []string        `json:"keys"`
	Values [][]Coefficient `json:"values"`
}

// Correlation считает матрицу корреляций Пирсона для указанных показателей.
// Для показателей с нулевой дисперсией коэффициент не определен (NaN).
func Correlation(t *Table, keys []string) (CorrelationMatrix, error) {
	columns := make([][]float64, len(keys))
	for i, key := range keys {
		col, err := t.Column(key)
		if err != nil {
			return CorrelationMatrix{}, err
		}
		columns[i] = col
	}

	matrix := CorrelationMatrix{
		Keys:   append([]string(nil), keys...),
		Values: make([][]Coefficient, len(keys)),
	}
	for i := range columns {
		matrix.Values[i] = make([]Coefficient, len(keys))
		for j := range columns {
			matrix.Values[i][j] = Coefficient(pearson(columns[i], columns[j]))
		}
	}
	return matrix, nil
}

func pearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	mx, my := Mean(x), Mean(y)
	cov, vx, vy := 0.0, 0.0, 0.0
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(vx*vy)
}
