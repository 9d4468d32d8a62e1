package partnership

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters значения симуляции вне допустимых диапазонов
	ErrInvalidParameters = errors.New("некорректные параметры симуляции")
	// ErrInvalidBaseline исходные средние не позволяют посчитать модель
	ErrInvalidBaseline = errors.New("некорректные исходные данные партнерской модели")
)

// Диапазоны параметров симулятора
const (
	MinClients     = 1
	MaxClients     = 50
	DefaultClients = 10
	MinMonths      = 1
	MaxMonths      = 12
	DefaultMonths  = 6
)

// Config условия партнерской программы с бухгалтерами
type Config struct {
	// Сколько месяцев выплачивается комиссия за одного клиента
	CommissionMonths int
	// Доля ежемесячного чека, уходящая партнеру
	CommissionRate float64
	// Диапазон стоимости лида в рекламе
	LeadCostMin float64
	LeadCostMax float64
}

// DefaultConfig возвращает условия программы по умолчанию
func DefaultConfig() Config {
	return Config{
		CommissionMonths: 6,
		CommissionRate:   0.15,
		LeadCostMin:      25,
		LeadCostMax:      50,
	}
}

// Validate проверяет условия программы
func (c Config) Validate() error {
	if c.CommissionMonths <= 0 {
		return fmt.Errorf("%w: срок комиссии должен быть положительным, получено %d", ErrInvalidBaseline, c.CommissionMonths)
	}
	if c.CommissionRate <= 0 || c.CommissionRate >= 1 {
		return fmt.Errorf("%w: ставка комиссии должна быть в (0, 1), получено %v", ErrInvalidBaseline, c.CommissionRate)
	}
	if c.LeadCostMin <= 0 || c.LeadCostMax < c.LeadCostMin {
		return fmt.Errorf("%w: некорректный диапазон стоимости лида %v..%v", ErrInvalidBaseline, c.LeadCostMin, c.LeadCostMax)
	}
	return nil
}

// Inputs средние значения показателей за выбранный период
type Inputs struct {
	AverageTicket float64 `json:"averageTicket"`
	ROI           float64 `json:"roi"`
	LTV           float64 `json:"ltv"`
	CAC           float64 `json:"cac"`
}

// LeadCostComparison комиссия относительно стоимости рекламного лида
type LeadCostComparison struct {
	MinCost    float64 `json:"minCost"`
	MaxCost    float64 `json:"maxCost"`
	MidCost    float64 `json:"midCost"`
	Commission float64 `json:"commission"`
	// Комиссия в процентах от стоимости лида
	RatioAtMinCost float64 `json:"ratioAtMinCost"`
	RatioAtMaxCost float64 `json:"ratioAtMaxCost"`
	RatioAtMidCost float64 `json:"ratioAtMidCost"`
	// Healthy комиссия не превышает среднюю стоимость лида
	Healthy bool `json:"healthy"`
}

// ClientMonth доход и комиссия по одному привлеченному клиенту за месяц
type ClientMonth struct {
	Month      int     `json:"month"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
	Profit     float64 `json:"profit"`
}

// CACComparison сравнение стоимости привлечения через рекламу и через партнера
type CACComparison struct {
	AdsCAC           float64 `json:"adsCac"`
	ReferralCAC      float64 `json:"referralCac"`
	Savings          float64 `json:"savings"`
	SavingsPercent   float64 `json:"savingsPercent"`
	AdsLTVRatio      float64 `json:"adsLtvRatio"`
	ReferralLTVRatio float64 `json:"referralLtvRatio"`
}

// Target целевые значения мониторинга программы на определенный месяц.
// Количественные цели задают нижнюю границу.
type Target struct {
	Month              int     `json:"month"`
	ActivePartners     int     `json:"activePartners"`
	QualifiedReferrals int     `json:"qualifiedReferrals"`
	ConversionRate     float64 `json:"conversionRate"`
	CAC                float64 `json:"cac"`
	LTV                float64 `json:"ltv"`
	ConversionDays     int     `json:"conversionDays"`
	PartnerNPS         int     `json:"partnerNps"`
	RevenueShare       float64 `json:"revenueShare"`
}

// Baseline экономика партнерской программы на одного клиента
type Baseline struct {
	Inputs            Inputs             `json:"inputs"`
	CommissionMonths  int                `json:"commissionMonths"`
	CommissionRate    float64            `json:"commissionRate"`
	MonthlyCommission float64            `json:"monthlyCommission"`
	TotalCommission   float64            `json:"totalCommission"`
	MonthlyRevenue    float64            `json:"monthlyRevenue"`
	WindowRevenue     float64            `json:"windowRevenue"`
	LeadCost          LeadCostComparison `json:"leadCost"`
	Schedule          []ClientMonth      `json:"schedule"`
	CAC               CACComparison      `json:"cac"`
	Targets           []Target           `json:"targets"`
}

// MonthProjection выручка и комиссия в одном месяце симуляции
type MonthProjection struct {
	Month         int     `json:"month"`
	NewClients    int     `json:"newClients"`
	ActiveClients int     `json:"activeClients"`
	Revenue       float64 `json:"revenue"`
	Commission    float64 `json:"commission"`
}

// Simulation результат симуляции потока привлеченных клиентов
type Simulation struct {
	ID                  string            `json:"id"`
	Clients             int               `json:"clients"`
	Months              int               `json:"months"`
	TotalClients        int               `json:"totalClients"`
	CommissionPerMonth  float64           `json:"commissionPerMonth"`
	CommissionTotal     float64           `json:"commissionTotal"`
	RevenuePerMonth     float64           `json:"revenuePerMonth"`
	RevenueTotal        float64           `json:"revenueTotal"`
	ReferralROI         float64           `json:"referralRoi"`
	TotalSavings        float64           `json:"totalSavings"`
	Projection          []MonthProjection `json:"projection"`
	LastMonthRevenue    float64           `json:"lastMonthRevenue"`
	LastMonthCommission float64           `json:"lastMonthCommission"`
	NetMargin           float64           `json:"netMargin"`
}
