package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
	"github.com/LilVoxy/marketing_dashboard/partnership"
)

// Config содержит конфигурацию сервиса дашборда
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Forecast    ForecastConfig    `mapstructure:"forecast"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Partnership PartnershipConfig `mapstructure:"partnership"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ForecastConfig параметры прогнозирования
type ForecastConfig struct {
	// Количество периодов для прогноза
	Horizon int `mapstructure:"horizon"`
	// Политика доверительной полосы: residual или fixed
	BandPolicy string `mapstructure:"band_policy"`
	// Доля для политики fixed (0.10 означает ±10%)
	BandPercent float64 `mapstructure:"band_percent"`
	// Показатели, для которых строится прогноз
	KPIs []string `mapstructure:"kpis"`
	// Минимальное значение R², ниже которого модель помечается в логе
	MinR2 float64 `mapstructure:"min_r2"`
}

// SchedulerConfig настройки обновления снимка
type SchedulerConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// PartnershipConfig условия партнерской программы
type PartnershipConfig struct {
	CommissionMonths int     `mapstructure:"commission_months"`
	CommissionRate   float64 `mapstructure:"commission_rate"`
	LeadCostMin      float64 `mapstructure:"lead_cost_min"`
	LeadCostMax      float64 `mapstructure:"lead_cost_max"`
}

// LoggingConfig настройки логирования
type LoggingConfig struct {
	Verbose bool `mapstructure:"verbose"`
	// Каталог для файла лога; пустое значение отключает запись в файл
	Dir string `mapstructure:"dir"`
}

// Load читает конфигурацию из файла и переменных окружения
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Ищем .dashboard.yaml в текущем каталоге и в домашней конфигурации
		v.SetConfigName(".dashboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dashboard")
	}

	// Переменные окружения: DASHBOARD_FORECAST_HORIZON и т.п.
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
		}
		// Файл не найден, используются значения по умолчанию
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	return &cfg, nil
}

// Default возвращает конфигурацию по умолчанию без чтения файла и окружения
func Default() *Config {
	p := partnership.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Forecast: ForecastConfig{
			Horizon:     3,
			BandPolicy:  forecast.BandResidual,
			BandPercent: 0.10,
			KPIs:        append([]string(nil), dataset.DefaultForecastKPIs...),
			MinR2:       forecast.R2ModerateThreshold,
		},
		Scheduler: SchedulerConfig{RefreshInterval: 10 * time.Minute},
		Partnership: PartnershipConfig{
			CommissionMonths: p.CommissionMonths,
			CommissionRate:   p.CommissionRate,
			LeadCostMin:      p.LeadCostMin,
			LeadCostMax:      p.LeadCostMax,
		},
	}
}

// setDefaults задает значения по умолчанию
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)

	v.SetDefault("forecast.horizon", d.Forecast.Horizon)
	v.SetDefault("forecast.band_policy", d.Forecast.BandPolicy)
	v.SetDefault("forecast.band_percent", d.Forecast.BandPercent)
	v.SetDefault("forecast.kpis", d.Forecast.KPIs)
	v.SetDefault("forecast.min_r2", d.Forecast.MinR2)

	v.SetDefault("scheduler.refresh_interval", d.Scheduler.RefreshInterval)

	v.SetDefault("partnership.commission_months", d.Partnership.CommissionMonths)
	v.SetDefault("partnership.commission_rate", d.Partnership.CommissionRate)
	v.SetDefault("partnership.lead_cost_min", d.Partnership.LeadCostMin)
	v.SetDefault("partnership.lead_cost_max", d.Partnership.LeadCostMax)

	v.SetDefault("logging.verbose", false)
	v.SetDefault("logging.dir", "")
}

// validate проверяет конфигурацию на ошибки
func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return errors.New("не задан адрес сервера")
	}
	if cfg.Forecast.Horizon < 0 {
		return fmt.Errorf("горизонт прогноза не может быть отрицательным: %d", cfg.Forecast.Horizon)
	}
	if _, err := cfg.Band(); err != nil {
		return err
	}
	for _, key := range cfg.Forecast.KPIs {
		if _, err := dataset.Lookup(key); err != nil {
			return err
		}
	}
	if cfg.Scheduler.RefreshInterval <= 0 {
		return fmt.Errorf("интервал обновления должен быть положительным: %v", cfg.Scheduler.RefreshInterval)
	}
	return cfg.PartnershipConfig().Validate()
}

// Band возвращает политику доверительной полосы из конфигурации
func (c *Config) Band() (forecast.BandPolicy, error) {
	return forecast.ParseBandPolicy(c.Forecast.BandPolicy, c.Forecast.BandPercent)
}

// PartnershipConfig возвращает условия партнерской программы
func (c *Config) PartnershipConfig() partnership.Config {
	return partnership.Config{
		CommissionMonths: c.Partnership.CommissionMonths,
		CommissionRate:   c.Partnership.CommissionRate,
		LeadCostMin:      c.Partnership.LeadCostMin,
		LeadCostMax:      c.Partnership.LeadCostMax,
	}
}

// DashboardConfig собирает настройки построителя дашборда
func (c *Config) DashboardConfig() (dashboard.Config, error) {
	band, err := c.Band()
	if err != nil {
		return dashboard.Config{}, err
	}
	return dashboard.Config{
		KPIs: append([]string(nil), c.Forecast.KPIs...),
		Forecast: forecast.Config{
			Horizon:        c.Forecast.Horizon,
			Band:           band,
			MinR2Threshold: c.Forecast.MinR2,
		},
		Partnership: c.PartnershipConfig(),
	}, nil
}
