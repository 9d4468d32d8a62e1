package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

var monthAbbr = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// NextPeriodLabels возвращает подписи h месяцев, следующих за last ("Set/25" -> "Out/25", ...).
// Если подпись не разбирается, используются "+1".."+h".
func NextPeriodLabels(last string, h int) []string {
	if h <= 0 {
		return []string{}
	}

	labels := make([]string, h)
	month, year, ok := parseMonthLabel(last)
	for i := 0; i < h; i++ {
		if !ok {
			labels[i] = fmt.Sprintf("+%d", i+1)
			continue
		}
		month++
		if month == 12 {
			month = 0
			year = (year + 1) % 100
		}
		labels[i] = fmt.Sprintf("%s/%02d", monthAbbr[month], year)
	}
	return labels
}

func parseMonthLabel(label string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(label), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	month = -1
	for i, abbr := range monthAbbr {
		if strings.EqualFold(abbr, parts[0]) {
			month = i
			break
		}
	}
	if month < 0 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 0 || year > 99 {
		return 0, 0, false
	}
	return month, year, true
}
