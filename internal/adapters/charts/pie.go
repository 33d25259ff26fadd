package charts

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"tg-invest-bot/internal/domain"
)

// Renderer строит PNG-диаграммы для сообщений бота.
type Renderer struct {
	width  int
	height int
}

// NewRenderer создаёт рендерер диаграмм.
func NewRenderer() *Renderer {
	return &Renderer{width: 512, height: 512}
}

var _ domain.ChartRenderer = (*Renderer)(nil)

// AllocationPie реализует domain.ChartRenderer.
func (r *Renderer) AllocationPie(values map[string]float64) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for key, value := range values {
		if value > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, errors.New("нет данных для диаграммы")
	}
	sort.Strings(keys)

	slices := make([]chart.Value, 0, len(keys))
	for _, key := range keys {
		slices = append(slices, chart.Value{
			Label: fmt.Sprintf("%s (%.0f)", key, values[key]),
			Value: values[key],
		})
	}

	pie := chart.PieChart{
		Width:  r.width,
		Height: r.height,
		Values: slices,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}
