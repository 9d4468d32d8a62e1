package partnership

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/LilVoxy/marketing_dashboard/dataset"
)

// NewBaseline рассчитывает экономику программы по средним значениям показателей
func NewBaseline(cfg Config, in Inputs) (*Baseline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if in.AverageTicket <= 0 || in.CAC <= 0 {
		return nil, fmt.Errorf("%w: средний чек %.2f, CAC %.2f", ErrInvalidBaseline, in.AverageTicket, in.CAC)
	}

	monthlyCommission := in.AverageTicket * cfg.CommissionRate
	totalCommission := monthlyCommission * float64(cfg.CommissionMonths)

	b := &Baseline{
		Inputs:            in,
		CommissionMonths:  cfg.CommissionMonths,
		CommissionRate:    cfg.CommissionRate,
		MonthlyCommission: monthlyCommission,
		TotalCommission:   totalCommission,
		MonthlyRevenue:    in.AverageTicket,
		WindowRevenue:     in.AverageTicket * float64(cfg.CommissionMonths),
	}

	midCost := (cfg.LeadCostMin + cfg.LeadCostMax) / 2
	b.LeadCost = LeadCostComparison{
		MinCost:        cfg.LeadCostMin,
		MaxCost:        cfg.LeadCostMax,
		MidCost:        midCost,
		Commission:     monthlyCommission,
		RatioAtMinCost: monthlyCommission / cfg.LeadCostMin * 100,
		RatioAtMaxCost: monthlyCommission / cfg.LeadCostMax * 100,
		RatioAtMidCost: monthlyCommission / midCost * 100,
	}
	b.LeadCost.Healthy = b.LeadCost.RatioAtMidCost <= 100

	b.Schedule = make([]ClientMonth, cfg.CommissionMonths)
	for i := range b.Schedule {
		b.Schedule[i] = ClientMonth{
			Month:      i + 1,
			Revenue:    in.AverageTicket,
			Commission: monthlyCommission,
			Profit:     in.AverageTicket - monthlyCommission,
		}
	}

	// CAC привлечения через партнера равен сумме всех выплаченных комиссий
	savings := in.CAC - totalCommission
	b.CAC = CACComparison{
		AdsCAC:           in.CAC,
		ReferralCAC:      totalCommission,
		Savings:          savings,
		SavingsPercent:   savings / in.CAC * 100,
		AdsLTVRatio:      in.LTV / in.CAC,
		ReferralLTVRatio: in.LTV / totalCommission,
	}

	b.Targets = []Target{
		{Month: 3, ActivePartners: 15, QualifiedReferrals: 10, ConversionRate: 40, CAC: totalCommission, LTV: in.LTV, ConversionDays: 30, PartnerNPS: 8, RevenueShare: 10},
		{Month: 6, ActivePartners: 30, QualifiedReferrals: 20, ConversionRate: 45, CAC: totalCommission * 0.9, LTV: in.LTV * 1.1, ConversionDays: 25, PartnerNPS: 9, RevenueShare: 20},
		{Month: 12, ActivePartners: 50, QualifiedReferrals: 30, ConversionRate: 50, CAC: totalCommission * 0.8, LTV: in.LTV * 1.2, ConversionDays: 20, PartnerNPS: 9, RevenueShare: 30},
	}

	return b, nil
}

// FromTable строит базовую модель по средним значениям таблицы
func FromTable(cfg Config, t *dataset.Table) (*Baseline, error) {
	var in Inputs
	fields := []struct {
		key string
		dst *float64
	}{
		{dataset.AverageTicket, &in.AverageTicket},
		{dataset.ROI, &in.ROI},
		{dataset.LTV, &in.LTV},
		{dataset.CAC, &in.CAC},
	}
	for _, f := range fields {
		values, err := t.Column(f.key)
		if err != nil {
			return nil, fmt.Errorf("не удалось получить %s: %w", f.key, err)
		}
		*f.dst = dataset.Mean(values)
	}
	return NewBaseline(cfg, in)
}

// ValidateParameters проверяет значения ползунков симулятора
func ValidateParameters(clients, months int) error {
	if clients < MinClients || clients > MaxClients {
		return fmt.Errorf("%w: клиентов в месяц %d, допустимо %d..%d", ErrInvalidParameters, clients, MinClients, MaxClients)
	}
	if months < MinMonths || months > MaxMonths {
		return fmt.Errorf("%w: период %d мес., допустимо %d..%d", ErrInvalidParameters, months, MinMonths, MaxMonths)
	}
	return nil
}

// Simulate моделирует приток clients новых клиентов в месяц в течение months месяцев.
// Комиссию и выручку в месяце дают клиенты, пришедшие за последние CommissionMonths месяцев.
func (b *Baseline) Simulate(clients, months int) (*Simulation, error) {
	if err := ValidateParameters(clients, months); err != nil {
		return nil, err
	}

	s := &Simulation{
		ID:                 uuid.NewString(),
		Clients:            clients,
		Months:             months,
		TotalClients:       clients * months,
		CommissionPerMonth: float64(clients) * b.MonthlyCommission,
		RevenuePerMonth:    float64(clients) * b.MonthlyRevenue,
	}
	s.CommissionTotal = s.CommissionPerMonth * float64(months)
	s.RevenueTotal = s.RevenuePerMonth * float64(months)
	s.ReferralROI = (s.RevenueTotal - s.CommissionTotal) / s.CommissionTotal * 100
	s.TotalSavings = b.CAC.Savings * float64(s.TotalClients)

	s.Projection = make([]MonthProjection, months)
	for i := range s.Projection {
		active := clients * min(i+1, b.CommissionMonths)
		s.Projection[i] = MonthProjection{
			Month:         i + 1,
			NewClients:    clients,
			ActiveClients: active,
			Revenue:       float64(active) * b.MonthlyRevenue,
			Commission:    float64(active) * b.MonthlyCommission,
		}
	}

	last := s.Projection[months-1]
	s.LastMonthRevenue = last.Revenue
	s.LastMonthCommission = last.Commission
	s.NetMargin = (last.Revenue - last.Commission) / last.Revenue * 100

	return s, nil
}
