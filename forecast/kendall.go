package forecast

import (
	"math"
	"sort"
)

// exactKendallMaxN ряды короче этого порога без повторов считаются по точному распределению
const exactKendallMaxN = 8

// Методы расчета p-значения
const (
	MethodExact      = "exact"
	MethodAsymptotic = "asymptotic"
)

// KendallTau считает tau-b Кендалла между индексом периода и значениями ряда
// и двустороннее p-значение гипотезы об отсутствии монотонного тренда
func KendallTau(values []float64) TrendTest {
	n := len(values)
	if n < 2 {
		return TrendTest{}
	}

	// Индекс строго возрастает, поэтому знак пары определяется только разностью значений
	concordant, discordant := 0, 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case values[j] > values[i]:
				concordant++
			case values[j] < values[i]:
				discordant++
			}
		}
	}

	tieGroups := tieGroupSizes(values)
	tiedPairs := 0
	varianceTies := 0.0
	for _, t := range tieGroups {
		tf := float64(t)
		tiedPairs += t * (t - 1) / 2
		varianceTies += tf * (tf - 1) * (2*tf + 5)
	}

	total := n * (n - 1) / 2
	if total-tiedPairs == 0 {
		// Постоянный ряд: ранговая корреляция не определена
		return TrendTest{}
	}

	tau := float64(concordant-discordant) / math.Sqrt(float64(total)*float64(total-tiedPairs))
	result := TrendTest{
		Tau:     tau,
		Defined: true,
	}

	if tiedPairs == 0 && n < exactKendallMaxN {
		result.Method = MethodExact
		result.PValue = kendallExactPValue(n, discordant)
		return result
	}

	// Нормальное приближение с поправкой на повторы в значениях
	m := float64(n * (n - 1))
	variance := (m*(2*float64(n)+5) - varianceTies) / 18
	z := float64(concordant-discordant) / math.Sqrt(variance)
	result.Method = MethodAsymptotic
	result.PValue = math.Erfc(math.Abs(z) / math.Sqrt2)
	return result
}

// kendallExactPValue двустороннее p-значение по распределению числа инверсий
// среди всех n! перестановок
func kendallExactPValue(n, discordant int) float64 {
	total := n * (n - 1) / 2
	c := discordant
	if total-discordant < c {
		c = total - discordant
	}

	dist := inversionCounts(n)
	permutations := 0.0
	for _, v := range dist {
		permutations += v
	}

	tail := 0.0
	for k := 0; k <= c; k++ {
		tail += dist[k]
	}

	p := 2 * tail / permutations
	if p > 1 {
		p = 1
	}
	return p
}

// inversionCounts возвращает количество перестановок длины n с k инверсиями, k = 0..n(n-1)/2
func inversionCounts(n int) []float64 {
	dist := []float64{1}
	for size := 2; size <= n; size++ {
		next := make([]float64, len(dist)+size-1)
		for k, count := range dist {
			// Новый элемент добавляет от 0 до size-1 инверсий
			for add := 0; add < size; add++ {
				next[k+add] += count
			}
		}
		dist = next
	}
	return dist
}

// tieGroupSizes возвращает размеры групп одинаковых значений (только группы размером > 1)
func tieGroupSizes(values []float64) []int {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var groups []int
	run := 1
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i] == sorted[i-1] {
			run++
			continue
		}
		if run > 1 {
			groups = append(groups, run)
		}
		run = 1
	}
	return groups
}
