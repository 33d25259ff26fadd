package router

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNum разбирает число, терпимо относясь к разделителям тысяч.
func parseNum(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// grahamValue оценивает справедливую цену по формуле Грэма
// V = EPS * (8.5 + 2g), где g ограничен диапазоном 0..20%.
func grahamValue(eps, growth *float64) (*float64, string) {
	if eps == nil {
		return nil, na
	}
	g := 0.0
	if growth != nil {
		g = *growth
		if g > 1 {
			g /= 100
		}
	}
	if g < 0 {
		g = 0
	}
	if g > 0.20 {
		g = 0.20
	}
	gPercent := g * 100
	intrinsic := *eps * (8.5 + 2*gPercent)
	return &intrinsic, fmt.Sprintf("%.1f%%", gPercent)
}

// marginOfSafety возвращает запас прочности в процентах от текущей цены.
func marginOfSafety(intrinsic, price *float64) *float64 {
	if intrinsic == nil || price == nil || *price == 0 {
		return nil
	}
	margin := (*intrinsic - *price) / *price * 100
	return &margin
}
