package router

import (
	"fmt"
	"sort"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

// quoteRow связывает символ с котировкой для списочных представлений.
type quoteRow struct {
	Symbol string
	Quote  domain.Quote
}

// sortQuotes упорядочивает котировки по режиму сортировки.
// Режим popular сохраняет исходный порядок, строки без данных уходят в конец.
func sortQuotes(rows []quoteRow, mode string) []quoteRow {
	sorted := make([]quoteRow, len(rows))
	copy(sorted, rows)
	switch mode {
	case "popular":
		return sorted
	case "losers":
		sort.SliceStable(sorted, func(i, j int) bool {
			return lessByPct(sorted[i], sorted[j], true)
		})
	case "volume":
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].Quote.Volume, sorted[j].Quote.Volume
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a > *b
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return lessByPct(sorted[i], sorted[j], false)
		})
	}
	return sorted
}

func lessByPct(a, b quoteRow, asc bool) bool {
	pa, pb := a.Quote.ChangePct, b.Quote.ChangePct
	if pa == nil {
		return false
	}
	if pb == nil {
		return true
	}
	if asc {
		return *pa < *pb
	}
	return *pa > *pb
}

var sortLabels = map[string]string{
	"gainers": "btn.top_gainers",
	"losers":  "btn.top_losers",
	"volume":  "btn.top_volume",
}

// sortButtons строит кнопки переключения сортировки, кроме текущей.
func sortButtons(lang, action, current string, withVolume bool) []domain.Button {
	modes := []string{"gainers", "losers"}
	if withVolume {
		modes = append(modes, "volume")
	}
	var buttons []domain.Button
	for _, mode := range modes {
		if mode == current {
			continue
		}
		buttons = append(buttons, domain.Button{
			Label:  i18n.T(lang, sortLabels[mode]),
			Action: fmt.Sprintf("action:%s:%s:1", action, mode),
		})
	}
	return buttons
}

// pageButtons строит кнопки перелистывания.
func pageButtons(lang, action, sortMode string, page, totalPages int) []domain.Button {
	var buttons []domain.Button
	if page > 1 {
		buttons = append(buttons, domain.Button{
			Label:  i18n.T(lang, "btn.prev"),
			Action: fmt.Sprintf("action:%s:%s:%d", action, sortMode, page-1),
		})
	}
	if page < totalPages {
		buttons = append(buttons, domain.Button{
			Label:  i18n.T(lang, "btn.next"),
			Action: fmt.Sprintf("action:%s:%s:%d", action, sortMode, page+1),
		})
	}
	return buttons
}

// quoteLine форматирует одну строку списка котировок.
func quoteLine(idx int, row quoteRow, description string) string {
	line := fmt.Sprintf("%d. *%s* %s (%s)", idx, row.Symbol, fmtPrice(row.Quote.Price), fmtPct(row.Quote.ChangePct))
	if description != "" {
		line += "\n   _" + description + "_"
	}
	return line
}

// quoteListView строит пагинированный список котировок с сортировкой.
func (s *Service) quoteListView(lang, action, titleKey string, rows []quoteRow, payload, defaultSort string, perPage int, withVolume bool, describe func(symbol string) string) domain.UIMessage {
	sortMode, page := parseSortPage(payload, defaultSort)
	sorted := sortQuotes(rows, sortMode)
	pageRows, page, totalPages := domain.Paginate(sorted, page, perPage)

	lines := make([]string, 0, len(pageRows))
	offset := (page - 1) * perPage
	for i, row := range pageRows {
		description := ""
		if describe != nil {
			description = describe(row.Symbol)
		}
		lines = append(lines, quoteLine(offset+i+1, row, description))
	}
	text := section(i18n.T(lang, titleKey), strings.Join(lines, "\n"))

	var buttons [][]domain.Button
	if sorts := sortButtons(lang, action, sortMode, withVolume); len(sorts) > 0 {
		buttons = append(buttons, sorts)
	}
	if pages := pageButtons(lang, action, sortMode, page, totalPages); len(pages) > 0 {
		buttons = append(buttons, pages)
	}
	buttons = append(buttons, navRow(lang, backMenuFor(action)))
	return domain.UIMessage{Text: text, Buttons: buttons, ParseMode: "Markdown"}
}
