package router

import (
	"context"
	"fmt"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

func (s *Service) dispatchAlerts(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "alert_price":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.send_alert_price"),
			ExpectInput: InputAlertPrice,
		}
	case "alert_percent":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.send_alert_percent"),
			ExpectInput: InputAlertPercent,
		}
	case "alerts_list":
		return s.alertsListView(user)
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func alertLine(alert domain.Alert) string {
	target := fmt.Sprintf("%g", alert.TargetValue)
	if alert.Condition == "percent" {
		target += "%"
	} else {
		target = "$" + target
	}
	return fmt.Sprintf("• *%s* %s %s %s", strings.ToUpper(alert.Symbol), alert.AssetType, alert.Condition, target)
}

func (s *Service) alertsListView(user domain.User) domain.UIMessage {
	lang := user.Language
	alerts, err := s.alerts.ListActive(user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось получить алерты")
	}
	if len(alerts) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_active_alerts")}
	}
	lines := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		lines = append(lines, alertLine(alert))
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "btn.alerts"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}
