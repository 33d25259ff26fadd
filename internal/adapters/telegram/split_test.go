package telegram

import (
	"strings"
	"testing"
)

func TestSplitMessagePrefersParagraphBoundary(t *testing.T) {
	text := strings.Repeat("a", 3000) + "\n\n" + strings.Repeat("b", 2000)
	parts := SplitMessage(text)
	if len(parts) != 2 {
		t.Fatalf("ожидалось 2 части, получено %d", len(parts))
	}
	if parts[0] != strings.Repeat("a", 3000) {
		t.Fatal("первая часть должна закончиться на границе абзаца")
	}
	if parts[1] != strings.Repeat("b", 2000) {
		t.Fatal("вторая часть должна начаться со следующего абзаца")
	}
}

func TestSplitMessageFallsBackToLineBoundary(t *testing.T) {
	text := strings.Repeat("a", 3000) + "\n" + strings.Repeat("b", 2000)
	parts := SplitMessage(text)
	if len(parts) != 2 {
		t.Fatalf("ожидалось 2 части, получено %d", len(parts))
	}
	if parts[0] != strings.Repeat("a", 3000) || parts[1] != strings.Repeat("b", 2000) {
		t.Fatal("разрез должен пройти по переносу строки")
	}
}

func TestSplitMessageHardCutWithoutNewlines(t *testing.T) {
	parts := SplitMessage(strings.Repeat("x", 9000))
	if len(parts) != 3 {
		t.Fatalf("ожидалось 3 части, получено %d", len(parts))
	}
	for i, part := range parts {
		if length := len([]rune(part)); length > MessageLimit {
			t.Fatalf("часть %d длиннее лимита: %d", i, length)
		}
	}
	if len([]rune(parts[0])) != MessageLimit || len([]rune(parts[2])) != 9000-2*MessageLimit {
		t.Fatalf("неожиданные длины частей: %d, %d, %d",
			len([]rune(parts[0])), len([]rune(parts[1])), len([]rune(parts[2])))
	}
}

func TestSplitMessageShortText(t *testing.T) {
	parts := SplitMessage("  привет  ")
	if len(parts) != 1 || parts[0] != "привет" {
		t.Fatalf("короткий текст должен вернуться одной частью без пробелов: %v", parts)
	}
}

func TestSplitMessageEmpty(t *testing.T) {
	if parts := SplitMessage("   \n  "); parts != nil {
		t.Fatalf("пустой ввод должен давать nil, получено %v", parts)
	}
}
