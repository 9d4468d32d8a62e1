// output/printer.go
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
)

// Printer форматированный вывод для CLI
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter создает принтер. Цвета отключаются при NO_COLOR и TERM=dumb.
func NewPrinter(out io.Writer, useColors bool) *Printer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}
	if os.Getenv("TERM") == "dumb" {
		useColors = false
	}
	return &Printer{out: out, useColors: useColors}
}

// Writer куда пишет принтер
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Header печатает заголовок раздела
func (p *Printer) Header(title string) {
	underline := strings.Repeat("─", len([]rune(title)))
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", underline)
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, underline)
}

// Success печатает сообщение об успехе
func (p *Printer) Success(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

// Warning печатает предупреждение
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.out, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[WARN] "+format+"\n", args...)
}

// Print печатает строку без оформления
func (p *Printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Badge окрашивает метку оценки модели или статуса бенчмарка
func (p *Printer) Badge(label string) string {
	if !p.useColors {
		return label
	}
	switch label {
	case forecast.FitExcellent, forecast.ErrorLow, forecast.TrendUp, dataset.StatusWithin:
		return color.GreenString(label)
	// ErrorModerate совпадает с FitModerate
	case forecast.FitModerate, forecast.TrendNotSignificant, dataset.StatusAbove:
		return color.YellowString(label)
	case forecast.FitLow, forecast.ErrorHigh, forecast.TrendDown, dataset.StatusBelow, dataset.StatusCritical:
		return color.RedString(label)
	default:
		return color.New(color.Faint).Sprint(label)
	}
}

// Number форматирует число с двумя знаками после запятой
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Numbers форматирует ряд чисел через пробел
func Numbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Number(v)
	}
	return strings.Join(parts, " ")
}
