package router

import (
	"context"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

func (s *Service) dispatchSubscription(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	if s.payments == nil || !s.payments.Configured() {
		return domain.UIMessage{Text: i18n.T(lang, "msg.payments_unavailable")}
	}

	switch key {
	case "sub_upgrade":
		tier := domain.Tier(strings.ToLower(strings.TrimSpace(payload)))
		if tier != domain.TierPro && tier != domain.TierElite {
			return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
		}
		link, err := s.payments.CheckoutURL(ctx, user, tier)
		if err != nil {
			s.log.Error().Err(err).Str("tier", string(tier)).Msg("не удалось создать платёжную сессию")
			return domain.UIMessage{Text: i18n.T(lang, "msg.payments_unavailable")}
		}
		s.recordAudit(user, "sub_upgrade", string(tier))
		return domain.UIMessage{
			Text: i18n.TF(lang, "msg.subscription_upgrade", map[string]string{
				"tier": i18n.T(lang, "tier."+string(tier)),
				"link": link,
			}),
		}
	case "sub_billing":
		link, err := s.payments.PortalURL(ctx, user)
		if err != nil {
			s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("не удалось открыть платёжный портал")
			return domain.UIMessage{Text: i18n.T(lang, "msg.payments_unavailable")}
		}
		return domain.UIMessage{
			Text: i18n.TF(lang, "msg.subscription_manage", map[string]string{"link": link}),
		}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func (s *Service) dispatchLanguage(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	if key != "lang_set" {
		return domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")}
	}
	code := i18n.Normalize(payload)
	if err := s.users.UpdateLanguage(user.ID, code); err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось сменить язык")
		return domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")}
	}

	labelKey := "btn.lang_en"
	if code == "ru" {
		labelKey = "btn.lang_ru"
	}
	return domain.UIMessage{
		Text: i18n.TF(code, "msg.language_set", map[string]string{
			"language": i18n.T(code, labelKey),
		}),
	}
}

func (s *Service) dispatchAdmin(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "admin_broadcast":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.broadcast_hint"),
			ExpectInput: InputAdminBroadcast,
		}
	case "admin_toggle":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.feature_toggle_hint"),
			ExpectInput: InputAdminToggle,
		}
	case "admin_verify":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.verify_hint"),
			ExpectInput: InputAdminVerify,
		}
	case "admin_stats":
		return s.adminStatsView(user)
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func (s *Service) adminStatsView(user domain.User) domain.UIMessage {
	lang := user.Language
	counts, err := s.users.CountByTier()
	if err != nil {
		s.log.Error().Err(err).Msg("не удалось посчитать пользователей")
		counts = map[domain.Tier]int{}
	}
	total := counts[domain.TierFree] + counts[domain.TierPro] + counts[domain.TierElite]
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.user_stats", map[string]string{
			"total": strconv.Itoa(total),
			"free":  strconv.Itoa(counts[domain.TierFree]),
			"pro":   strconv.Itoa(counts[domain.TierPro]),
			"elite": strconv.Itoa(counts[domain.TierElite]),
		}),
	}
}
