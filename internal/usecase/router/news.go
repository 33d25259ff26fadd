package router

import (
	"context"
	"fmt"
	"html"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

const newsPerPage = 5

func (s *Service) dispatchNews(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	switch key {
	case "news_headlines":
		return s.newsView(ctx, user, key, payload, "")
	case "news_project":
		return s.newsView(ctx, user, key, payload, "ton")
	}
	return domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")}
}

// newsView строит ленту новостей с пагинацией и переводом по запросу.
func (s *Service) newsView(ctx context.Context, user domain.User, action, payload, query string) domain.UIMessage {
	lang := user.Language
	page, mode := parsePageMode(payload)

	var items []domain.NewsItem
	var err error
	if query == "" {
		items, err = s.news.Headlines(ctx, 30)
	} else {
		items, err = s.news.Search(ctx, query, 30)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("не удалось получить новости")
	}
	if len(items) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.news_empty")}
	}

	pageItems, page, totalPages := domain.Paginate(items, page, newsPerPage)

	var notice string
	translated := false
	if mode == "tr" {
		pageItems, translated, notice = s.translateNews(ctx, lang, pageItems)
	}

	lines := make([]string, 0, len(pageItems))
	offset := (page - 1) * newsPerPage
	for i, item := range pageItems {
		lines = append(lines, newsLine(offset+i+1, item))
	}
	body := strings.Join(lines, "\n\n")
	if notice != "" {
		body = notice + "\n\n" + body
	}
	text := "<b>" + html.EscapeString(i18n.T(lang, "section.news")) + "</b>\n\n" + body

	currentMode := "orig"
	if translated {
		currentMode = "tr"
	}
	var buttons [][]domain.Button
	if toggle := s.translateToggle(lang, action, page, currentMode); toggle != nil {
		buttons = append(buttons, toggle)
	}
	var nav []domain.Button
	if page > 1 {
		nav = append(nav, btn(lang, "btn.prev", fmt.Sprintf("page:%s:%d:%s", action, page-1, currentMode)))
	}
	if page < totalPages {
		nav = append(nav, btn(lang, "btn.next", fmt.Sprintf("page:%s:%d:%s", action, page+1, currentMode)))
	}
	if len(nav) > 0 {
		buttons = append(buttons, nav)
	}
	buttons = append(buttons, navRow(lang, "news"))

	return domain.UIMessage{Text: text, Buttons: buttons, ParseMode: "HTML"}
}

func newsLine(idx int, item domain.NewsItem) string {
	title := html.EscapeString(item.Title)
	if item.URL != "" {
		title = fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(item.URL), title)
	}
	line := fmt.Sprintf("<b>%d.</b> %s", idx, title)

	meta := item.Source
	if !item.PublishedAt.IsZero() {
		if meta != "" {
			meta += " · "
		}
		meta += item.PublishedAt.Format("02.01.2006")
	}
	if meta != "" {
		line += "\n<i>" + html.EscapeString(meta) + "</i>"
	}
	if summary := truncate(item.Description, 220); summary != "" {
		line += "\n" + html.EscapeString(summary)
	}
	return line
}

// translateNews переводит заголовки и описания страницы новостей.
// Возвращает также уведомление для пользователя, если перевод не удался.
func (s *Service) translateNews(ctx context.Context, lang string, items []domain.NewsItem) ([]domain.NewsItem, bool, string) {
	if s.translator == nil || !s.translator.Configured() {
		return items, false, html.EscapeString(i18n.T(lang, "msg.translate_unavailable"))
	}
	if !s.translator.Available(ctx, lang) {
		return items, false, html.EscapeString(i18n.T(lang, "msg.translate_offline"))
	}

	texts := make([]string, 0, len(items)*2)
	for _, item := range items {
		texts = append(texts, item.Title, item.Description)
	}
	translated, ok := s.translator.TranslateAll(ctx, texts, lang)
	if !ok || len(translated) != len(texts) {
		return items, false, html.EscapeString(i18n.T(lang, "msg.translate_failed"))
	}

	result := make([]domain.NewsItem, len(items))
	copy(result, items)
	for i := range result {
		result[i].Title = translated[i*2]
		result[i].Description = translated[i*2+1]
	}
	return result, true, ""
}

func (s *Service) translateToggle(lang, action string, page int, mode string) []domain.Button {
	if s.translator == nil || !s.translator.Configured() {
		return nil
	}
	if mode == "tr" {
		return []domain.Button{btn(lang, "btn.original", fmt.Sprintf("page:%s:%d:orig", action, page))}
	}
	return []domain.Button{btn(lang, "btn.translate", fmt.Sprintf("page:%s:%d:tr", action, page))}
}
