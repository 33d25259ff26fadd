package i18n

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"ru":    "ru",
		"ru-RU": "ru",
		"RU":    "ru",
		"en":    "en",
		"de":    "en",
		"":      "en",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}

func TestTFallsBackToEnglish(t *testing.T) {
	if got := T("de", "btn.back"); got != "⬅️ Back" {
		t.Fatalf("неизвестный язык должен давать английский текст, получено %q", got)
	}
}

func TestTUnknownKeyReturnsKey(t *testing.T) {
	if got := T("en", "msg.nope"); got != "msg.nope" {
		t.Fatalf("для неизвестного ключа ожидается сам ключ, получено %q", got)
	}
}

func TestTFSubstitution(t *testing.T) {
	got := TF("en", "msg.sync_done", map[string]string{
		"wallets": "1", "exchanges": "2", "assets": "7",
	})
	want := "Sync finished: 1 wallet(s), 2 exchange(s), 7 asset(s)."
	if got != want {
		t.Fatalf("подстановка аргументов: получено %q, ожидалось %q", got, want)
	}
}

func TestRussianCatalogCovered(t *testing.T) {
	for key, e := range catalog {
		if e.en == "" {
			t.Fatalf("ключ %s без английского текста", key)
		}
		if e.ru == "" {
			t.Fatalf("ключ %s без русского текста", key)
		}
	}
}
