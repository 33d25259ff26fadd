package router

import (
	"fmt"
	"strings"
)

const na = "N/A"

// withCommas форматирует число с разделителями тысяч.
func withCommas(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	result := sign + b.String()
	if hasFrac {
		result += "." + fracPart
	}
	return result
}

// fmtPrice форматирует цену в долларах. Цены меньше доллара
// показываются с шестью знаками.
func fmtPrice(value *float64) string {
	if value == nil {
		return na
	}
	if *value >= 1 || *value <= -1 {
		return "$" + withCommas(*value, 2)
	}
	return fmt.Sprintf("$%.6f", *value)
}

// fmtPct форматирует процентное изменение со знаком.
func fmtPct(value *float64) string {
	if value == nil {
		return na
	}
	return fmt.Sprintf("%+.2f%%", *value)
}

// fmtCap форматирует капитализацию с суффиксами T/B/M.
func fmtCap(value *float64) string {
	if value == nil {
		return na
	}
	v := *value
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return "$" + withCommas(v, 0)
	}
}

// fmtNum форматирует число с префиксом и суффиксом.
func fmtNum(value *float64, prefix, suffix string) string {
	if value == nil {
		return na
	}
	return prefix + withCommas(*value, 2) + suffix
}

// fmtRate форматирует валютный курс.
func fmtRate(value *float64) string {
	if value == nil {
		return na
	}
	return fmt.Sprintf("%.5f", *value)
}

// fmtVolume форматирует объём торгов целым числом.
func fmtVolume(value *float64) string {
	if value == nil {
		return na
	}
	return withCommas(*value, 0)
}

// section собирает markdown-блок с жирным заголовком.
func section(title, body string) string {
	return "*" + title + "*\n" + body
}

// kv собирает строку "метка: значение".
func kv(label, value string) string {
	return "*" + label + ":* " + value
}

// truncate обрезает строку до limit рун с многоточием.
func truncate(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
