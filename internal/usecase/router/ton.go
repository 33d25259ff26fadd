package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

var giftKeywords = []string{"gift", "present", "telegram", "gifts", "подар", "сувенир"}

func (s *Service) dispatchTon(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "ton_wallet":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.ton_wallet_hint"),
			ExpectInput: InputTonWallet,
		}
	case "ton_usernames":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.ton_username_hint"),
			ExpectInput: InputTonUsernames,
		}
	case "ton_gifts":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.ton_gifts_hint"),
			ExpectInput: InputTonGifts,
		}
	case "ton_projects":
		return s.tonProjectsView(ctx, user, payload)
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

// looksLikeAddress отличает адрес кошелька от доменного имени.
func looksLikeAddress(input string) bool {
	trimmed := strings.TrimSpace(input)
	return strings.HasPrefix(trimmed, "0:") || strings.HasPrefix(trimmed, "EQ") || len(trimmed) > 40
}

// normalizeDomain приводит ввод к имени вида "name.ton".
func normalizeDomain(input string) string {
	name := strings.ToLower(strings.TrimSpace(input))
	name = strings.TrimPrefix(name, "@")
	if name != "" && !strings.Contains(name, ".") {
		name += ".ton"
	}
	return name
}

func (s *Service) tonProjectsView(ctx context.Context, user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(payload)); err == nil && parsed >= 1 {
		page = parsed
	}

	jettons, err := s.ton.Jettons(ctx, 10, (page-1)*10)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить жетоны")
	}
	if len(jettons) == 0 && page == 1 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.news_empty")}
	}

	lines := make([]string, 0, len(jettons))
	for i, jetton := range jettons {
		holders := na
		if jetton.Holders != nil {
			holders = withCommas(float64(*jetton.Holders), 0)
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s) | %s: %s | %s: %s",
			(page-1)*10+i+1, jetton.Name, jetton.Symbol,
			i18n.T(lang, "label.holders"), holders,
			i18n.T(lang, "label.verification"), jetton.Verification))
	}

	buttons := [][]domain.Button{}
	var nav []domain.Button
	if page > 1 {
		nav = append(nav, btn(lang, "btn.prev", fmt.Sprintf("action:ton_projects:%d", page-1)))
	}
	if len(jettons) > 0 {
		nav = append(nav, btn(lang, "btn.next", fmt.Sprintf("action:ton_projects:%d", page+1)))
	}
	if len(nav) > 0 {
		buttons = append(buttons, nav)
	}
	buttons = append(buttons, navRow(lang, "ton"))

	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.ton_projects"), strings.Join(lines, "\n")),
		Buttons:   buttons,
		ParseMode: "Markdown",
	}
}

// TonWalletView строит карточку кошелька по введённому адресу.
func (s *Service) TonWalletView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	return s.ensureNav(user, s.tonWalletView(ctx, user, input), "ton")
}

func (s *Service) tonWalletView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	lang := user.Language
	address := strings.TrimSpace(input)
	if address == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.ton_wallet_hint")}
	}

	wallet, err := s.ton.Wallet(ctx, address)
	if err != nil {
		return domain.UIMessage{Text: i18n.T(lang, "msg.ton_wallet_not_found")}
	}

	balance := na
	if wallet.BalanceTON != nil {
		balance = withCommas(*wallet.BalanceTON, 2) + " TON"
		if price, err := s.ton.Price(ctx); err == nil && price.Price != nil {
			usd := *wallet.BalanceTON * *price.Price
			balance += " (" + fmtPrice(&usd) + ")"
		}
	}
	title := wallet.Name
	if title == "" {
		title = shortAddress(wallet.Address)
	}
	lines := []string{
		kv(i18n.T(lang, "label.balance"), balance),
		kv(i18n.T(lang, "label.status"), wallet.Status),
	}

	jettons, err := s.ton.WalletJettons(ctx, address)
	if err == nil && len(jettons) > 0 {
		for i, jetton := range jettons {
			if i == 10 {
				break
			}
			amount := na
			if jetton.Balance != nil {
				amount = withCommas(*jetton.Balance, 2)
			}
			lines = append(lines, fmt.Sprintf("• %s: %s", jetton.Symbol, amount))
		}
	}
	return domain.UIMessage{
		Text:      section(title, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func shortAddress(address string) string {
	runes := []rune(address)
	if len(runes) <= 12 {
		return address
	}
	return string(runes[:6]) + "…" + string(runes[len(runes)-4:])
}

// TonUsernamesView показывает домены аккаунта или данные одного домена.
func (s *Service) TonUsernamesView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	return s.ensureNav(user, s.tonUsernamesView(ctx, user, input), "ton")
}

func (s *Service) tonUsernamesView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	lang := user.Language
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.ton_username_hint")}
	}

	if looksLikeAddress(trimmed) {
		domains, err := s.ton.AccountDomains(ctx, trimmed)
		if err != nil || len(domains) == 0 {
			return domain.UIMessage{Text: i18n.T(lang, "msg.ton_no_domains")}
		}
		lines := make([]string, 0, len(domains))
		for _, d := range domains {
			lines = append(lines, "• "+d.Name)
		}
		if expiring := expiringDomains(domains, time.Now()); len(expiring) > 0 {
			lines = append(lines, "", "*"+i18n.T(lang, "section.ton_expiring")+"*")
			for _, d := range expiring {
				lines = append(lines, fmt.Sprintf("• %s — %s", d.Name, d.ExpiresAt.Format("2006-01-02")))
			}
		}
		return domain.UIMessage{
			Text:      section(i18n.T(lang, "section.ton_usernames"), strings.Join(lines, "\n")),
			ParseMode: "Markdown",
		}
	}

	name := normalizeDomain(trimmed)
	record, err := s.ton.ResolveDomain(ctx, name)
	if err != nil {
		return domain.UIMessage{Text: i18n.TF(lang, "msg.ton_domain_not_found", map[string]string{"domain": name})}
	}
	lines := []string{
		kv(i18n.T(lang, "label.domain"), record.Name),
		kv(i18n.T(lang, "label.wallet"), shortAddress(record.Owner)),
	}
	if record.ExpiresAt != nil {
		lines = append(lines, kv(i18n.T(lang, "label.expires"), record.ExpiresAt.Format("2006-01-02")))
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.ton_usernames"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

// TonGiftsView ищет подарочные NFT в кошельке.
func (s *Service) TonGiftsView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	return s.ensureNav(user, s.tonGiftsView(ctx, user, input), "ton")
}

func (s *Service) tonGiftsView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	lang := user.Language
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.ton_gifts_hint")}
	}

	address := trimmed
	if !looksLikeAddress(trimmed) {
		record, err := s.ton.ResolveDomain(ctx, normalizeDomain(trimmed))
		if err != nil || record.Owner == "" {
			return domain.UIMessage{Text: i18n.T(lang, "msg.ton_wallet_not_found")}
		}
		address = record.Owner
	}

	nfts, err := s.ton.AccountNFTs(ctx, address, 50)
	if err != nil {
		return domain.UIMessage{Text: i18n.T(lang, "msg.ton_wallet_not_found")}
	}
	if len(nfts) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.ton_gifts_empty")}
	}

	gifts := filterGifts(nfts)
	if len(gifts) == 0 {
		if len(nfts) > 5 {
			nfts = nfts[:5]
		}
		gifts = nfts
	}
	if len(gifts) > 10 {
		gifts = gifts[:10]
	}

	lines := make([]string, 0, len(gifts))
	for i, nft := range gifts {
		line := fmt.Sprintf("%d. %s", i+1, nft.Name)
		if nft.Collection != "" {
			line += " — " + nft.Collection
		}
		if nft.Verified {
			line += " ✅"
		}
		lines = append(lines, line)
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.ton_gifts"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

// expiringDomains отбирает домены, истекающие в ближайшие 30 дней.
func expiringDomains(domains []domain.TonDomain, now time.Time) []domain.TonDomain {
	deadline := now.AddDate(0, 0, 30)
	var expiring []domain.TonDomain
	for _, d := range domains {
		if d.ExpiresAt == nil {
			continue
		}
		if d.ExpiresAt.After(now) && d.ExpiresAt.Before(deadline) {
			expiring = append(expiring, d)
		}
	}
	return expiring
}

func filterGifts(nfts []domain.TonNFT) []domain.TonNFT {
	var gifts []domain.TonNFT
	for _, nft := range nfts {
		haystack := strings.ToLower(nft.Name + " " + nft.Collection)
		for _, keyword := range giftKeywords {
			if strings.Contains(haystack, keyword) {
				gifts = append(gifts, nft)
				break
			}
		}
	}
	return gifts
}
