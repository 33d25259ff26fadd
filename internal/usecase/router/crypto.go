package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

func (s *Service) dispatchCrypto(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "crypto_prices":
		return s.cryptoPricesView(ctx, user, payload)
	case "crypto_top":
		return s.cryptoTopView(ctx, user, payload)
	case "crypto_find":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.crypto_find"),
			ExpectInput: InputCryptoFind,
		}
	case "crypto_dominance":
		return s.cryptoDominanceView(ctx, user)
	case "crypto_onchain":
		return domain.UIMessage{Text: i18n.T(lang, "msg.onchain_unavailable")}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func cryptoLine(idx int, asset domain.CryptoAsset) string {
	rank := idx
	if asset.Rank != nil {
		rank = *asset.Rank
	}
	return fmt.Sprintf("%d. *%s* %s (%s) · %s",
		rank, asset.Symbol, fmtPrice(asset.Price), fmtPct(asset.Change24h), fmtCap(asset.MarketCap))
}

// cryptoPricesView строит сводку: топ крипты, акции и фонды.
func (s *Service) cryptoPricesView(ctx context.Context, user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	backMenu := "crypto"
	switch strings.TrimSpace(payload) {
	case "onboarding", "main":
		backMenu = strings.TrimSpace(payload)
	}

	var sections []string

	listings, err := s.crypto.Listings(ctx, 10)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить листинг криптовалют")
	}
	if len(listings) > 0 {
		lines := make([]string, 0, len(listings))
		for i, asset := range listings {
			lines = append(lines, cryptoLine(i+1, asset))
		}
		sections = append(sections, section(i18n.T(lang, "section.crypto_top"), strings.Join(lines, "\n")))
	}

	stockRows := s.fetchQuoteRows(ctx, stockTopSymbols[:10])
	lines := make([]string, 0, len(stockRows))
	for i, row := range stockRows {
		lines = append(lines, quoteLine(i+1, row, ""))
	}
	sections = append(sections, section(i18n.T(lang, "section.stocks_top"), strings.Join(lines, "\n")))

	fundRows := s.fetchQuoteRows(ctx, etfTopSymbols)
	lines = lines[:0]
	for i, row := range fundRows {
		lines = append(lines, quoteLine(i+1, row, i18n.T(lang, "fund."+strings.ToLower(row.Symbol))))
	}
	sections = append(sections, section(i18n.T(lang, "section.funds_top"), strings.Join(lines, "\n")))

	return domain.UIMessage{
		Text:      strings.Join(sections, "\n\n"),
		Buttons:   [][]domain.Button{navRow(lang, backMenu)},
		ParseMode: "Markdown",
	}
}

// cryptoTopView показывает топ-100 криптовалют с пагинацией.
func (s *Service) cryptoTopView(ctx context.Context, user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	listings, err := s.crypto.Listings(ctx, 100)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить листинг криптовалют")
	}
	if len(listings) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.crypto_not_found")}
	}

	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(payload)); err == nil && parsed >= 1 {
		page = parsed
	}
	pageAssets, page, totalPages := domain.Paginate(listings, page, 10)

	offset := (page - 1) * 10
	lines := make([]string, 0, len(pageAssets))
	for i, asset := range pageAssets {
		lines = append(lines, cryptoLine(offset+i+1, asset))
	}

	var nav []domain.Button
	if page > 1 {
		nav = append(nav, btn(lang, "btn.prev", fmt.Sprintf("page:crypto_top:%d", page-1)))
	}
	if page < totalPages {
		nav = append(nav, btn(lang, "btn.next", fmt.Sprintf("page:crypto_top:%d", page+1)))
	}
	buttons := [][]domain.Button{}
	if len(nav) > 0 {
		buttons = append(buttons, nav)
	}
	buttons = append(buttons, navRow(lang, "crypto"))

	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.crypto_top"), strings.Join(lines, "\n")),
		Buttons:   buttons,
		ParseMode: "Markdown",
	}
}

func (s *Service) cryptoDominanceView(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	dominance, err := s.crypto.Dominance(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить доминацию")
	}
	lines := []string{
		kv(i18n.T(lang, "label.btc_dominance"), fmtPct(dominance.BTC)),
		kv(i18n.T(lang, "label.eth_dominance"), fmtPct(dominance.ETH)),
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.dominance"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

// CryptoAssetView строит карточку криптоактива по введённому символу.
func (s *Service) CryptoAssetView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	return s.ensureNav(user, s.cryptoAssetView(ctx, user, input), "crypto")
}

func (s *Service) cryptoAssetView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	lang := user.Language
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.crypto_find")}
	}

	asset, err := s.crypto.Asset(ctx, fields[0])
	if err != nil || asset.Price == nil {
		return domain.UIMessage{Text: i18n.T(lang, "msg.crypto_not_found")}
	}

	name := asset.Name
	if name == "" {
		name = asset.Symbol
	}
	lines := []string{
		kv(i18n.T(lang, "label.price"), fmtPrice(asset.Price)),
		kv(i18n.T(lang, "label.change_24h"), fmtPct(asset.Change24h)),
		kv(i18n.T(lang, "label.market_cap"), fmtCap(asset.MarketCap)),
		kv(i18n.T(lang, "label.volume"), fmtCap(asset.Volume24h)),
	}
	return domain.UIMessage{
		Text:      section(name+" ("+asset.Symbol+")", strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}
