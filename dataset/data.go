package dataset

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUnknownKPI запрошен неизвестный показатель
	ErrUnknownKPI = errors.New("неизвестный KPI")
	// ErrNoMonthsSelected фильтр не оставил ни одного месяца
	ErrNoMonthsSelected = errors.New("не выбран ни один месяц")
)

// Ключи показателей
const (
	Sessions           = "sessions"
	FirstVisits        = "first_visits"
	Leads              = "leads"
	UserConversionRate = "user_conversion_rate"
	WebCustomers       = "web_customers"
	LeadConversionRate = "lead_conversion_rate"
	WebRevenue         = "web_revenue"
	AverageTicket      = "average_ticket"
	MetaCost           = "meta_cost"
	GoogleCost         = "google_cost"
	TotalAds           = "total_ads"
	CAC                = "cac"
	LTV                = "ltv"
	CACLTV             = "cac_ltv"
	ROI                = "roi"
)

// Unit единица измерения показателя
type Unit string

const (
	UnitCount    Unit = "count"
	UnitPercent  Unit = "percent"
	UnitCurrency Unit = "currency"
	UnitRatio    Unit = "ratio"
)

// KPI описание показателя
type KPI struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Unit Unit   `json:"unit"`
}

// catalog порядок столбцов исходной таблицы
var catalog = []KPI{
	{Key: Sessions, Name: "Sessões", Unit: UnitCount},
	{Key: FirstVisits, Name: "Primeira Visita", Unit: UnitCount},
	{Key: Leads, Name: "Leads", Unit: UnitCount},
	{Key: UserConversionRate, Name: "TC Usuários (%)", Unit: UnitPercent},
	{Key: WebCustomers, Name: "Clientes Web", Unit: UnitCount},
	{Key: LeadConversionRate, Name: "TC Leads (%)", Unit: UnitPercent},
	{Key: WebRevenue, Name: "Receita Web", Unit: UnitCurrency},
	{Key: AverageTicket, Name: "Ticket Médio", Unit: UnitCurrency},
	{Key: MetaCost, Name: "Custo Meta", Unit: UnitCurrency},
	{Key: GoogleCost, Name: "Custo Google", Unit: UnitCurrency},
	{Key: TotalAds, Name: "Total Ads", Unit: UnitCurrency},
	{Key: CAC, Name: "CAC", Unit: UnitCurrency},
	{Key: LTV, Name: "LTV", Unit: UnitCurrency},
	{Key: CACLTV, Name: "CAC:LTV", Unit: UnitRatio},
	{Key: ROI, Name: "ROI (%)", Unit: UnitPercent},
}

// DefaultForecastKPIs показатели, для которых строится прогноз
var DefaultForecastKPIs = []string{Leads, WebCustomers, WebRevenue, CAC, LTV, ROI}

// Catalog возвращает копию каталога показателей
func Catalog() []KPI {
	out := make([]KPI, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup ищет показатель по ключу
func Lookup(key string) (KPI, error) {
	for _, k := range catalog {
		if k.Key == key {
			return k, nil
		}
	}
	return KPI{}, fmt.Errorf("%w: %q", ErrUnknownKPI, key)
}

// Table помесячная таблица показателей. Значения не изменяются после создания.
type Table struct {
	months  []string
	columns map[string][]float64
}

// Row строка таблицы за один месяц
type Row struct {
	Month  string             `json:"month"`
	Values map[string]float64 `json:"values"`
}

var (
	loadOnce sync.Once
	loaded   *Table
)

// Load возвращает статическую таблицу маркетинговых показателей.
// Таблица создается один раз за время жизни процесса.
func Load() *Table {
	loadOnce.Do(func() {
		loaded = &Table{
			months: []string{"Mai/25", "Jun/25", "Jul/25", "Ago/25", "Set/25"},
			columns: map[string][]float64{
				Sessions:           {5218, 5600, 5717, 7654, 8028},
				FirstVisits:        {2900, 3562, 3500, 5400, 5548},
				Leads:              {270, 290, 401, 600, 604},
				UserConversionRate: {9.32, 8.79, 11.46, 11.11, 10.89},
				WebCustomers:       {16, 15, 18, 20, 22},
				LeadConversionRate: {5.93, 5.50, 4.50, 3.33, 3.64},
				WebRevenue:         {2114.56, 1991.31, 2591.91, 2728.92, 3001.90},
				AverageTicket:      {132.16, 132.75, 149.99, 136.45, 136.45},
				MetaCost:           {2238.52, 2328.16, 2731.39, 3476.39, 3807.17},
				GoogleCost:         {2934.49, 3083.29, 3194.67, 4932.45, 6127.84},
				TotalAds:           {5173.01, 5411.32, 5926.06, 8408.84, 9935.01},
				CAC:                {323.31, 360.75, 329.23, 420.44, 451.59},
				LTV:                {1585.92, 1593.00, 1799.88, 1637.40, 1637.40},
				CACLTV:             {4.9, 4.4, 5.5, 3.9, 3.6},
				ROI:                {390.52, 341.57, 446.70, 289.45, 262.58},
			},
		}
	})
	return loaded
}

// NewTable создает таблицу из произвольных столбцов (все столбцы одной длины с months)
func NewTable(months []string, columns map[string][]float64) (*Table, error) {
	t := &Table{
		months:  append([]string(nil), months...),
		columns: make(map[string][]float64, len(columns)),
	}
	for key, values := range columns {
		if _, err := Lookup(key); err != nil {
			return nil, err
		}
		if len(values) != len(months) {
			return nil, fmt.Errorf("столбец %s содержит %d значений, ожидалось %d", key, len(values), len(months))
		}
		t.columns[key] = append([]float64(nil), values...)
	}
	return t, nil
}

// Len возвращает количество месяцев
func (t *Table) Len() int {
	return len(t.months)
}

// Months возвращает подписи месяцев
func (t *Table) Months() []string {
	return append([]string(nil), t.months...)
}

// Column возвращает копию столбца показателя
func (t *Table) Column(key string) ([]float64, error) {
	values, ok := t.columns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKPI, key)
	}
	return append([]float64(nil), values...), nil
}

// Value возвращает значение показателя за месяц с индексом i
func (t *Table) Value(key string, i int) (float64, error) {
	values, ok := t.columns[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKPI, key)
	}
	if i < 0 || i >= len(values) {
		return 0, fmt.Errorf("индекс месяца %d вне диапазона 0..%d", i, len(values)-1)
	}
	return values[i], nil
}

// Rows возвращает строки таблицы в исходном порядке
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.months))
	for i, month := range t.months {
		values := make(map[string]float64, len(t.columns))
		for key, col := range t.columns {
			values[key] = col[i]
		}
		rows[i] = Row{Month: month, Values: values}
	}
	return rows
}

// Filter оставляет только выбранные месяцы в исходном порядке.
// Пустой список означает "все месяцы".
func (t *Table) Filter(months []string) (*Table, error) {
	if len(months) == 0 {
		return t, nil
	}

	selected := make(map[string]bool, len(months))
	for _, m := range months {
		selected[strings.TrimSpace(m)] = true
	}

	filtered := &Table{columns: make(map[string][]float64, len(t.columns))}
	var idx []int
	for i, m := range t.months {
		if selected[m] {
			filtered.months = append(filtered.months, m)
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMonthsSelected, strings.Join(months, ", "))
	}

	for key, col := range t.columns {
		values := make([]float64, len(idx))
		for j, i := range idx {
			values[j] = col[i]
		}
		filtered.columns[key] = values
	}
	return filtered, nil
}
