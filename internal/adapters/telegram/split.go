// Package telegram содержит утилиты рендеринга под ограничения Bot API.
package telegram

import "strings"

// MessageLimit задаёт лимит Telegram на длину текста сообщения, в рунах.
// Его же использует обработчик при выборе между правкой и новой отправкой.
const MessageLimit = 4096

// SplitMessage режет длинный текст на сообщения не длиннее MessageLimit.
// Разрез идёт по границе абзаца, затем по границе строки, чтобы
// markdown-секции не рвались посередине; сплошной блок режется жёстко.
// Клавиатура вешается на последнюю часть, поэтому порядок частей
// совпадает с порядком текста.
func SplitMessage(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var parts []string
	for len(runes) > 0 {
		if len(runes) <= MessageLimit {
			if part := strings.TrimSpace(string(runes)); part != "" {
				parts = append(parts, part)
			}
			break
		}
		cut := cutPoint(runes)
		if part := strings.TrimSpace(string(runes[:cut])); part != "" {
			parts = append(parts, part)
		}
		runes = runes[cut:]
	}
	return parts
}

// cutPoint ищет правую границу абзаца в пределах лимита, затем границу
// строки; текст без переносов режется ровно по лимиту.
func cutPoint(runes []rune) int {
	window := string(runes[:MessageLimit])
	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return len([]rune(window[:i]))
	}
	if i := strings.LastIndexByte(window, '\n'); i > 0 {
		return len([]rune(window[:i]))
	}
	return MessageLimit
}
