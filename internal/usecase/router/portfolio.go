package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
	"tg-invest-bot/internal/usecase/portfolio"
)

func (s *Service) dispatchPortfolio(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "portfolio_add":
		return domain.UIMessage{
			Text: i18n.T(lang, "msg.portfolio_add_choose_type"),
			Buttons: [][]domain.Button{
				{btn(lang, "btn.add_stock", "action:portfolio_add_type:stock"), btn(lang, "btn.add_crypto", "action:portfolio_add_type:crypto")},
				{btn(lang, "btn.add_fund", "action:portfolio_add_type:fund"), btn(lang, "btn.add_custom", "action:portfolio_add_custom")},
				navRow(lang, "portfolio"),
			},
		}
	case "portfolio_add_type":
		assetType := strings.ToLower(strings.TrimSpace(payload))
		if assetType == "" {
			assetType = "crypto"
		}
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.send_portfolio_details"),
			ExpectInput: InputPortfolioAddDetails + ":" + assetType,
		}
	case "portfolio_add_custom":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.send_portfolio_add"),
			ExpectInput: InputPortfolioAdd,
		}
	case "portfolio_remove":
		return s.portfolioRemovePicker(user, payload)
	case "portfolio_remove_symbol":
		return s.portfolioRemove(user, payload)
	case "portfolio_list":
		return s.portfolioHoldingsView(ctx, user)
	case "portfolio_pnl":
		return s.portfolioPnLView(ctx, user)
	case "portfolio_allocation":
		return s.portfolioAllocationView(ctx, user)
	case "portfolio_export_csv":
		return s.portfolioExportView(user)
	case "portfolio_import_csv":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.import_csv_hint"),
			ExpectInput: InputImportCSV,
		}
	case "portfolio_sync_exchange":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.sync_exchange_hint"),
			ExpectInput: InputLinkExchange,
		}
	case "portfolio_sync_wallet":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.sync_wallet_hint"),
			ExpectInput: InputLinkWallet,
		}
	case "portfolio_sync_run":
		return s.portfolioSyncRun(ctx, user)
	case "portfolio_sync_links":
		return s.portfolioLinksView(user)
	case "portfolio_sync_unlink":
		return s.portfolioUnlink(user, payload)
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func (s *Service) portfolioRemovePicker(user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	items, err := s.portfolio.List(user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось получить портфель")
	}
	if len(items) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_holdings")}
	}

	symbols := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, item := range items {
		symbol := strings.ToUpper(item.Symbol)
		if !seen[symbol] {
			seen[symbol] = true
			symbols = append(symbols, symbol)
		}
	}

	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(payload)); err == nil && parsed >= 1 {
		page = parsed
	}
	pageSymbols, page, totalPages := domain.Paginate(symbols, page, 8)

	var buttons [][]domain.Button
	var row []domain.Button
	for _, symbol := range pageSymbols {
		row = append(row, domain.Button{Label: symbol, Action: "action:portfolio_remove_symbol:" + symbol})
		if len(row) == 2 {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}
	var nav []domain.Button
	if page > 1 {
		nav = append(nav, btn(lang, "btn.prev", fmt.Sprintf("action:portfolio_remove:%d", page-1)))
	}
	if page < totalPages {
		nav = append(nav, btn(lang, "btn.next", fmt.Sprintf("action:portfolio_remove:%d", page+1)))
	}
	if len(nav) > 0 {
		buttons = append(buttons, nav)
	}
	buttons = append(buttons, navRow(lang, "portfolio"))

	text := i18n.TF(lang, "msg.choose_remove", map[string]string{"count": strconv.Itoa(len(symbols))})
	return domain.UIMessage{Text: text, Buttons: buttons}
}

func (s *Service) portfolioRemove(user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	symbol := strings.ToUpper(strings.TrimSpace(payload))
	if symbol == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
	}
	count, err := s.portfolio.Remove(user.ID, symbol)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("не удалось удалить позицию")
		count = 0
	}
	s.recordAudit(user, "portfolio_remove", symbol)
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.asset_removed", map[string]string{"count": strconv.FormatInt(count, 10)}),
	}
}

func positionLine(p portfolio.Position) string {
	line := fmt.Sprintf("• *%s* %s", strings.ToUpper(p.Item.Symbol), withCommas(p.Item.Amount, 2))
	if value := p.Value(); value != nil {
		line += " = " + fmtPrice(value)
	}
	if pct := p.PnLPct(); pct != nil {
		line += " (" + fmtPct(pct) + ")"
	}
	return line
}

func (s *Service) portfolioHoldingsView(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	positions, err := s.portfolio.Valuations(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось оценить портфель")
	}
	if len(positions) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_holdings")}
	}

	lines := make([]string, 0, len(positions)+1)
	var total float64
	hasTotal := false
	for _, position := range positions {
		lines = append(lines, positionLine(position))
		if value := position.Value(); value != nil {
			total += *value
			hasTotal = true
		}
	}
	if hasTotal {
		lines = append(lines, "", kv(i18n.T(lang, "label.balance"), fmtPrice(&total)))
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.holdings"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) portfolioPnLView(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	positions, err := s.portfolio.Valuations(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось оценить портфель")
	}
	if len(positions) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_holdings")}
	}

	var totalValue, totalInvested float64
	lines := make([]string, 0, len(positions)+2)
	for _, position := range positions {
		pnl := position.PnL()
		line := fmt.Sprintf("• *%s*", strings.ToUpper(position.Item.Symbol))
		if pnl != nil {
			line += " " + fmtPrice(pnl)
			if pct := position.PnLPct(); pct != nil {
				line += " (" + fmtPct(pct) + ")"
			}
		} else {
			line += " " + na
		}
		lines = append(lines, line)
		if value := position.Value(); value != nil {
			totalValue += *value
			totalInvested += position.Item.CostBasis * position.Item.Amount
		}
	}
	totalPnL := totalValue - totalInvested
	lines = append(lines, "", kv("Σ", fmtPrice(&totalPnL)))

	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.pnl"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) portfolioAllocationView(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	values, err := s.portfolio.Allocation(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось построить распределение")
	}
	if len(values) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_holdings")}
	}

	var total float64
	for _, value := range values {
		total += value
	}
	symbols := make([]string, 0, len(values))
	for symbol := range values {
		symbols = append(symbols, symbol)
	}
	// Крупные позиции первыми.
	for i := range symbols {
		for j := i + 1; j < len(symbols); j++ {
			if values[symbols[j]] > values[symbols[i]] {
				symbols[i], symbols[j] = symbols[j], symbols[i]
			}
		}
	}
	lines := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		share := values[symbol] / total * 100
		lines = append(lines, fmt.Sprintf("• *%s* %.1f%%", symbol, share))
	}

	msg := domain.UIMessage{
		Text:      section(i18n.T(lang, "section.allocation"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
	if chart, err := s.portfolio.AllocationChart(ctx, user.ID); err == nil {
		msg.Photo = chart
	} else {
		s.log.Warn().Err(err).Msg("не удалось отрисовать диаграмму")
	}
	return msg
}

func (s *Service) portfolioExportView(user domain.User) domain.UIMessage {
	lang := user.Language
	csvText, err := s.portfolio.ExportCSV(user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось выгрузить портфель")
	}
	if csvText == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.export_empty")}
	}
	return domain.UIMessage{
		Text:      "```\n" + strings.TrimRight(csvText, "\n") + "\n```",
		ParseMode: "Markdown",
	}
}

func (s *Service) portfolioSyncRun(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	links, err := s.portfolio.Links(user.ID)
	if err == nil && len(links) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_no_links")}
	}

	result, err := s.portfolio.SyncRun(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("синхронизация не удалась")
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_exchange_failed")}
	}
	s.recordAudit(user, "portfolio_sync", fmt.Sprintf("assets=%d", result.Assets))
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.sync_done", map[string]string{
			"wallets":   strconv.Itoa(result.Wallets),
			"exchanges": strconv.Itoa(result.Exchanges),
			"assets":    strconv.Itoa(result.Assets),
		}),
	}
}

func (s *Service) portfolioLinksView(user domain.User) domain.UIMessage {
	lang := user.Language
	links, err := s.portfolio.Links(user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось получить привязки")
	}
	if len(links) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_no_links")}
	}

	lines := make([]string, 0, len(links))
	var buttons [][]domain.Button
	for _, link := range links {
		lines = append(lines, fmt.Sprintf("• %s (%s, %s)", link.Label, link.Kind, link.Provider))
		buttons = append(buttons, []domain.Button{{
			Label:  "❌ " + link.Label,
			Action: fmt.Sprintf("action:portfolio_sync_unlink:%d", link.ID),
			Style:  domain.StyleDanger,
		}})
	}
	buttons = append(buttons, navRow(lang, "sync"))

	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.sync_links"), strings.Join(lines, "\n")),
		Buttons:   buttons,
		ParseMode: "Markdown",
	}
}

func (s *Service) portfolioUnlink(user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	linkID, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
	}
	removed, err := s.portfolio.Unlink(user.ID, linkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Error().Err(err).Int64("link_id", linkID).Msg("не удалось удалить привязку")
	}
	if !removed {
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_no_links")}
	}
	s.recordAudit(user, "portfolio_unlink", payload)
	return domain.UIMessage{Text: i18n.T(lang, "msg.sync_removed")}
}
