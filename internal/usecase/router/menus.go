package router

import (
	"context"
	"fmt"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

func btn(lang, labelKey, action string) domain.Button {
	return domain.Button{Label: i18n.T(lang, labelKey), Action: action}
}

// Menu строит меню по идентификатору. Неизвестный идентификатор
// открывает главное меню.
func (s *Service) Menu(ctx context.Context, user domain.User, id string) domain.UIMessage {
	lang := user.Language
	switch id {
	case "markets":
		return s.menuStatic(lang, "markets", "main", [][]domain.Button{
			{btn(lang, "btn.stocks", "menu:stocks"), btn(lang, "btn.etfs", "menu:etfs")},
			{btn(lang, "btn.forex", "menu:forex")},
		})
	case "onboarding":
		return s.menuStatic(lang, "onboarding", "main", [][]domain.Button{
			{btn(lang, "btn.prices", "action:crypto_prices:onboarding")},
			{btn(lang, "btn.add_asset", "action:portfolio_add")},
			{btn(lang, "btn.create_alert", "menu:alerts")},
			{btn(lang, "btn.mini_lessons", "action:education_lessons")},
		})
	case "stocks":
		return s.menuStatic(lang, "stocks", "markets", [][]domain.Button{
			{btn(lang, "btn.price", "action:stocks_price"), btn(lang, "btn.fundamentals", "action:stocks_fundamentals")},
			{btn(lang, "btn.ratios", "action:stocks_ratios"), btn(lang, "btn.earnings", "action:stocks_earnings")},
			{btn(lang, "btn.dividends", "action:stocks_dividends"), btn(lang, "btn.find_stock", "action:stocks_find")},
			{btn(lang, "btn.top_stocks", "action:stocks_top"), btn(lang, "btn.valuation", "action:stocks_valuation")},
		})
	case "etfs":
		return s.menuStatic(lang, "etfs", "markets", [][]domain.Button{
			{btn(lang, "btn.list", "action:etf_top")},
		})
	case "forex":
		return s.menuStatic(lang, "forex", "markets", [][]domain.Button{
			{btn(lang, "btn.rates", "action:forex_rates")},
			{btn(lang, "btn.top_pairs", "action:forex_top"), btn(lang, "btn.find_pair", "action:forex_find")},
		})
	case "crypto":
		return s.menuStatic(lang, "crypto", "main", [][]domain.Button{
			{btn(lang, "btn.prices", "action:crypto_prices:crypto"), btn(lang, "btn.top_100", "action:crypto_top")},
			{btn(lang, "btn.find_asset", "action:crypto_find"), btn(lang, "btn.dominance", "action:crypto_dominance")},
			{btn(lang, "btn.onchain", "action:crypto_onchain"), btn(lang, "btn.alerts", "menu:alerts")},
		})
	case "ton":
		return s.menuStatic(lang, "ton", "main", [][]domain.Button{
			{btn(lang, "btn.wallet_info", "action:ton_wallet"), btn(lang, "btn.usernames", "action:ton_usernames")},
			{btn(lang, "btn.gifts", "action:ton_gifts"), btn(lang, "btn.projects", "action:ton_projects")},
		})
	case "nft":
		return s.menuStatic(lang, "nft", "main", [][]domain.Button{
			{btn(lang, "btn.floor_prices", "action:nft_floor"), btn(lang, "btn.collections", "action:nft_collections")},
			{btn(lang, "btn.search", "action:nft_search")},
		})
	case "portfolio":
		return s.menuPortfolio(user)
	case "sync":
		return s.menuStatic(lang, "sync", "portfolio", [][]domain.Button{
			{btn(lang, "btn.sync_exchange", "action:portfolio_sync_exchange"), btn(lang, "btn.sync_wallet", "action:portfolio_sync_wallet")},
			{btn(lang, "btn.sync_run", "action:portfolio_sync_run"), btn(lang, "btn.sync_links", "action:portfolio_sync_links")},
			{btn(lang, "btn.csv_import", "action:portfolio_import_csv"), btn(lang, "btn.csv_export", "action:portfolio_export_csv")},
		})
	case "alerts":
		return s.menuStatic(lang, "alerts", "main", [][]domain.Button{
			{btn(lang, "btn.price_alert", "action:alert_price"), btn(lang, "btn.percent_alert", "action:alert_percent")},
			{btn(lang, "btn.view_alerts", "action:alerts_list")},
		})
	case "education":
		return s.menuStatic(lang, "education", "main", [][]domain.Button{
			{btn(lang, "btn.mini_lessons", "action:education_lessons"), btn(lang, "btn.glossary", "action:education_glossary")},
			{btn(lang, "btn.quizzes", "action:education_quiz")},
		})
	case "news":
		return s.menuStatic(lang, "news", "main", [][]domain.Button{
			{btn(lang, "btn.headlines", "action:news_headlines"), btn(lang, "btn.project_news", "action:news_project")},
		})
	case "settings":
		return s.menuSettings(user)
	case "language":
		return s.menuStatic(lang, "language", "settings", [][]domain.Button{
			{btn(lang, "btn.lang_ru", "action:lang_set:ru"), btn(lang, "btn.lang_en", "action:lang_set:en")},
		})
	case "profile":
		return s.menuProfile(user)
	case "admin":
		return s.menuAdmin(user)
	}
	return s.menuMain(user)
}

func (s *Service) menuStatic(lang, id, parent string, rows [][]domain.Button) domain.UIMessage {
	text := section(i18n.T(lang, "menu."+id+".title"), i18n.T(lang, "menu."+id+".body"))
	rows = append(rows, navRow(lang, parent))
	return domain.UIMessage{Text: text, Buttons: rows, ParseMode: "Markdown"}
}

func (s *Service) menuMain(user domain.User) domain.UIMessage {
	lang := user.Language
	username := user.Username
	if username == "" {
		username = user.PlatformUserID
	}
	intro := i18n.TF(lang, "menu.main.intro", map[string]string{
		"username": username,
		"tier":     i18n.T(lang, "tier."+string(user.Tier)),
	})
	text := section(i18n.T(lang, "menu.main.title"), intro)

	rows := [][]domain.Button{
		{btn(lang, "btn.start_here", "menu:onboarding"), btn(lang, "btn.quick_prices", "action:crypto_prices:main")},
		{btn(lang, "btn.markets", "menu:markets"), btn(lang, "btn.crypto", "menu:crypto")},
		{btn(lang, "btn.nft", "menu:nft"), btn(lang, "btn.ton", "menu:ton")},
		{btn(lang, "btn.portfolio", "menu:portfolio"), btn(lang, "btn.education", "menu:education")},
		{btn(lang, "btn.news", "menu:news"), btn(lang, "btn.settings", "menu:settings")},
		{btn(lang, "btn.profile", "menu:profile")},
	}
	var extra []domain.Button
	if s.discordURL != "" {
		extra = append(extra, btn(lang, "btn.discord", "url:"+s.discordURL))
	}
	if s.webAppURL != "" {
		extra = append(extra, btn(lang, "btn.open_app", "webapp:"+s.webAppURL))
	}
	if len(extra) > 0 {
		rows = append(rows, extra)
	}
	return domain.UIMessage{Text: text, Buttons: rows, ParseMode: "Markdown"}
}

func (s *Service) menuPortfolio(user domain.User) domain.UIMessage {
	lang := user.Language
	body := i18n.T(lang, "menu.portfolio.body")
	items, err := s.portfolio.List(user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось получить портфель")
	}
	if len(items) > 0 {
		var b strings.Builder
		for i, item := range items {
			if i == 15 {
				break
			}
			fmt.Fprintf(&b, "• %s — %s (%s)\n", item.Symbol, withCommas(item.Amount, 2), item.AssetType)
		}
		body = strings.TrimRight(b.String(), "\n")
	}
	text := section(i18n.T(lang, "menu.portfolio.title"), body)

	rows := [][]domain.Button{
		{btn(lang, "btn.add_asset", "action:portfolio_add"), btn(lang, "btn.remove_asset", "action:portfolio_remove")},
		{btn(lang, "btn.holdings", "action:portfolio_list"), btn(lang, "btn.pnl", "action:portfolio_pnl")},
		{btn(lang, "btn.allocation", "action:portfolio_allocation"), btn(lang, "btn.sync", "menu:sync")},
		{btn(lang, "btn.alerts_menu", "menu:alerts")},
		navRow(lang, "main"),
	}
	return domain.UIMessage{Text: text, Buttons: rows, ParseMode: "Markdown"}
}

func (s *Service) menuSettings(user domain.User) domain.UIMessage {
	lang := user.Language
	body := i18n.TF(lang, "menu.settings.body", map[string]string{
		"tier": i18n.T(lang, "tier."+string(user.Tier)),
	})
	text := section(i18n.T(lang, "menu.settings.title"), body)

	rows := [][]domain.Button{
		{btn(lang, "btn.upgrade_pro", "action:sub_upgrade:pro"), btn(lang, "btn.upgrade_elite", "action:sub_upgrade:elite")},
		{btn(lang, "btn.billing", "action:sub_billing"), btn(lang, "btn.language", "menu:language")},
	}
	if user.IsAdmin {
		rows = append(rows, []domain.Button{btn(lang, "btn.admin", "menu:admin")})
	}
	rows = append(rows, navRow(lang, "main"))
	return domain.UIMessage{Text: text, Buttons: rows, ParseMode: "Markdown"}
}

func (s *Service) menuProfile(user domain.User) domain.UIMessage {
	lang := user.Language
	username := user.Username
	if username == "" {
		username = user.PlatformUserID
	}
	badge := user.Badge.Icon()
	if badge == "" {
		badge = i18n.T(lang, "badge.none")
	}
	body := i18n.TF(lang, "menu.profile.body", map[string]string{
		"badge":    badge,
		"username": username,
		"tier":     i18n.T(lang, "tier."+string(user.Tier)),
	})
	text := section(i18n.T(lang, "menu.profile.title"), body)
	return domain.UIMessage{
		Text:      text,
		Buttons:   [][]domain.Button{navRow(lang, "main")},
		ParseMode: "Markdown",
	}
}

func (s *Service) menuAdmin(user domain.User) domain.UIMessage {
	lang := user.Language
	if !user.IsAdmin || !user.HasAccess("admin_panel") {
		return domain.UIMessage{
			Text:    i18n.T(lang, "msg.admin_required"),
			Buttons: [][]domain.Button{navRow(lang, "settings")},
		}
	}
	rows := [][]domain.Button{
		{btn(lang, "btn.broadcast", "action:admin_broadcast"), btn(lang, "btn.user_stats", "action:admin_stats")},
		{btn(lang, "btn.feature_toggle", "action:admin_toggle"), btn(lang, "btn.verify", "action:admin_verify")},
		navRow(lang, "settings"),
	}
	return domain.UIMessage{
		Text:      "*" + i18n.T(lang, "menu.admin.title") + "*",
		Buttons:   rows,
		ParseMode: "Markdown",
	}
}
