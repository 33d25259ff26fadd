package router

import (
	"fmt"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

var lessonsEN = []string{
	"Diversification: do not keep the whole portfolio in one asset.",
	"A stock is a share of a business, not a lottery ticket.",
	"P/E shows how many years of profit you pay for the price.",
	"Dividends are part of profit paid to shareholders.",
	"An ETF is a basket of assets in a single paper.",
	"Volatility is the price of long-term returns.",
	"Dollar cost averaging removes the need to time the market.",
	"A stop loss limits the loss, not the probability of it.",
	"Market cap matters more than the price of one share.",
	"Leverage multiplies losses as fast as gains.",
	"Cash is a position too: it buys dips.",
	"On-chain data shows what holders do, not what they say.",
	"A cold wallet protects from exchanges, not from yourself.",
	"Commissions and taxes quietly eat returns.",
	"An investment plan beats any forecast.",
}

var lessonsRU = []string{
	"Диверсификация: не держите весь портфель в одном активе.",
	"Акция — это доля бизнеса, а не лотерейный билет.",
	"P/E показывает, за сколько лет прибыли вы платите цену.",
	"Дивиденды — часть прибыли, которую платят акционерам.",
	"ETF — корзина активов в одной бумаге.",
	"Волатильность — плата за долгосрочную доходность.",
	"Усреднение снимает задачу угадать дно рынка.",
	"Стоп-лосс ограничивает убыток, а не его вероятность.",
	"Капитализация важнее цены одной акции.",
	"Плечо умножает убытки так же быстро, как и прибыль.",
	"Кэш — тоже позиция: на него покупают просадки.",
	"Он-чейн данные показывают, что делают держатели, а не что они говорят.",
	"Холодный кошелёк защищает от бирж, но не от вас самих.",
	"Комиссии и налоги незаметно съедают доходность.",
	"Инвестиционный план сильнее любого прогноза.",
}

var glossaryEN = []string{
	"*Ticker* — short symbol of an asset on an exchange.",
	"*Spread* — difference between the buy and sell price.",
	"*Liquidity* — how fast an asset converts to cash.",
	"*Bear market* — a prolonged decline of 20% or more.",
}

var glossaryRU = []string{
	"*Тикер* — короткий символ актива на бирже.",
	"*Спред* — разница между ценой покупки и продажи.",
	"*Ликвидность* — скорость обмена актива на деньги.",
	"*Медвежий рынок* — затяжное падение на 20% и больше.",
}

func (s *Service) dispatchEducation(user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "education_lessons":
		return s.lessonsView(user, payload)
	case "education_glossary":
		entries := glossaryEN
		if i18n.Normalize(lang) == "ru" {
			entries = glossaryRU
		}
		return domain.UIMessage{
			Text:      section(i18n.T(lang, "btn.glossary"), strings.Join(entries, "\n")),
			ParseMode: "Markdown",
		}
	case "education_quiz":
		return domain.UIMessage{Text: i18n.T(lang, "msg.quiz")}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func (s *Service) lessonsView(user domain.User, payload string) domain.UIMessage {
	lang := user.Language
	lessons := lessonsEN
	if i18n.Normalize(lang) == "ru" {
		lessons = lessonsRU
	}

	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(payload)); err == nil && parsed >= 1 {
		page = parsed
	}
	pageLessons, page, totalPages := domain.Paginate(lessons, page, 5)

	offset := (page - 1) * 5
	lines := make([]string, 0, len(pageLessons))
	for i, lesson := range pageLessons {
		lines = append(lines, fmt.Sprintf("%d. %s", offset+i+1, lesson))
	}

	var nav []domain.Button
	if page > 1 {
		nav = append(nav, btn(lang, "btn.prev", fmt.Sprintf("action:education_lessons:%d", page-1)))
	}
	if page < totalPages {
		nav = append(nav, btn(lang, "btn.next", fmt.Sprintf("action:education_lessons:%d", page+1)))
	}
	buttons := [][]domain.Button{}
	if len(nav) > 0 {
		buttons = append(buttons, nav)
	}
	buttons = append(buttons, navRow(lang, "education"))

	return domain.UIMessage{
		Text:      section(i18n.T(lang, "btn.mini_lessons"), strings.Join(lines, "\n")),
		Buttons:   buttons,
		ParseMode: "Markdown",
	}
}
