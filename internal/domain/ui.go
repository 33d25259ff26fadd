package domain

import "strings"

// ButtonStyle описывает визуальный стиль кнопки.
type ButtonStyle string

const (
	StylePrimary ButtonStyle = "primary"
	StyleSuccess ButtonStyle = "success"
	StyleDanger  ButtonStyle = "danger"
)

// Button описывает кнопку под сообщением. Action с префиксом "url:"
// открывает ссылку, с префиксом "webapp:" — мини-приложение, иначе
// значение уходит обратно в роутер как callback-токен.
type Button struct {
	Label  string
	Action string
	Style  ButtonStyle
}

// UIMessage описывает платформенно-независимый ответ роутера.
// ExpectInput содержит тег ожидаемого ввода, пустая строка означает
// отсутствие ожидания.
type UIMessage struct {
	Text        string
	Buttons     [][]Button
	ParseMode   string
	ExpectInput string
	InputHint   string
	Photo       []byte
}

var (
	dangerKeys  = []string{"remove", "delete", "cancel", "toggle", "off", "stop", "unsubscribe", "danger", "удал", "отмен", "стоп"}
	successKeys = []string{"add", "create", "start", "open", "upgrade", "buy", "confirm", "success", "добав", "созд", "нач", "откры", "апгрейд"}
)

// InferStyle подбирает стиль кнопки по ключевым словам надписи и действия.
func InferStyle(b Button) ButtonStyle {
	if b.Style != "" {
		return b.Style
	}
	label := strings.ToLower(b.Label)
	action := strings.ToLower(b.Action)
	for _, k := range dangerKeys {
		if strings.Contains(label, k) || strings.Contains(action, k) {
			return StyleDanger
		}
	}
	for _, k := range successKeys {
		if strings.Contains(label, k) || strings.Contains(action, k) {
			return StyleSuccess
		}
	}
	return StylePrimary
}

// Paginate возвращает страницу списка, скорректированный номер страницы
// и общее число страниц. Пустой список считается одной пустой страницей.
func Paginate[T any](items []T, page, perPage int) ([]T, int, int) {
	if perPage < 1 {
		perPage = 1
	}
	total := (len(items) + perPage - 1) / perPage
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, total
}
