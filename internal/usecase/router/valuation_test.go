package router

import (
	"math"
	"testing"
)

func TestParseNum(t *testing.T) {
	if got := parseNum("1,234.5"); got == nil || *got != 1234.5 {
		t.Fatalf("parseNum(\"1,234.5\") = %v, ожидалось 1234.5", got)
	}
	if got := parseNum("  "); got != nil {
		t.Fatalf("parseNum пустой строки должен вернуть nil, получено %v", got)
	}
	if got := parseNum("abc"); got != nil {
		t.Fatalf("parseNum мусора должен вернуть nil, получено %v", got)
	}
}

func TestGrahamValue(t *testing.T) {
	if v, label := grahamValue(nil, fptr(10)); v != nil || label != "N/A" {
		t.Fatalf("без EPS оценка должна быть (nil, N/A), получено (%v, %q)", v, label)
	}

	// Без роста формула вырождается в EPS*8.5.
	v, label := grahamValue(fptr(4), nil)
	if v == nil || math.Abs(*v-34) > 1e-9 || label != "0.0%" {
		t.Fatalf("grahamValue(4, nil) = (%v, %q), ожидалось (34, 0.0%%)", v, label)
	}

	// Рост больше единицы трактуется как проценты.
	v, label = grahamValue(fptr(2), fptr(15))
	if v == nil || math.Abs(*v-77) > 1e-9 || label != "15.0%" {
		t.Fatalf("grahamValue(2, 15) = (%v, %q), ожидалось (77, 15.0%%)", v, label)
	}

	// Доля 0.5 означает 50% и срезается до потолка 20%.
	v, label = grahamValue(fptr(1), fptr(0.5))
	if v == nil || math.Abs(*v-48.5) > 1e-9 || label != "20.0%" {
		t.Fatalf("рост должен срезаться до 20%%, получено (%v, %q)", v, label)
	}

	// Отрицательный рост обнуляется.
	v, label = grahamValue(fptr(3), fptr(-5))
	if v == nil || math.Abs(*v-25.5) > 1e-9 || label != "0.0%" {
		t.Fatalf("отрицательный рост должен обнуляться, получено (%v, %q)", v, label)
	}
}

func TestMarginOfSafety(t *testing.T) {
	if got := marginOfSafety(nil, fptr(100)); got != nil {
		t.Fatalf("без оценки запас прочности должен быть nil, получено %v", got)
	}
	if got := marginOfSafety(fptr(120), nil); got != nil {
		t.Fatalf("без цены запас прочности должен быть nil, получено %v", got)
	}
	if got := marginOfSafety(fptr(120), fptr(0)); got != nil {
		t.Fatalf("нулевая цена должна давать nil, получено %v", got)
	}
	got := marginOfSafety(fptr(120), fptr(100))
	if got == nil || math.Abs(*got-20) > 1e-9 {
		t.Fatalf("marginOfSafety(120, 100) = %v, ожидалось 20", got)
	}
}
