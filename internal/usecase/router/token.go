package router

import (
	"strconv"
	"strings"
)

// Token описывает разобранный callback-токен вида
// menu:<id>, action:<key>[:payload] или page:<key>:<payload>.
type Token struct {
	Kind    string
	Key     string
	Payload string
}

// ParseToken разбирает callback-токен. Второе значение false означает
// нераспознанный токен.
func ParseToken(raw string) (Token, bool) {
	raw = strings.TrimSpace(raw)
	kind, rest, ok := strings.Cut(raw, ":")
	if !ok || rest == "" {
		return Token{}, false
	}
	switch kind {
	case "menu":
		return Token{Kind: "menu", Key: rest}, true
	case "action", "page":
		key, payload, _ := strings.Cut(rest, ":")
		if key == "" {
			return Token{}, false
		}
		return Token{Kind: kind, Key: key, Payload: payload}, true
	}
	return Token{}, false
}

var sortModes = map[string]struct{}{
	"gainers": {},
	"losers":  {},
	"volume":  {},
	"popular": {},
}

// parseSortPage разбирает payload вида "sort:page", "sort" или "page".
func parseSortPage(payload, defaultSort string) (string, int) {
	sortMode := defaultSort
	page := 1
	for _, part := range strings.Split(payload, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := sortModes[part]; ok {
			sortMode = part
			continue
		}
		if parsed, err := strconv.Atoi(part); err == nil && parsed >= 1 {
			page = parsed
		}
	}
	return sortMode, page
}

// parsePageMode разбирает payload вида "page:mode" для новостных лент.
func parsePageMode(payload string) (int, string) {
	page := 1
	mode := "orig"
	for _, part := range strings.Split(payload, ":") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "tr", "orig":
			mode = part
		default:
			if parsed, err := strconv.Atoi(part); err == nil && parsed >= 1 {
				page = parsed
			}
		}
	}
	return page, mode
}
