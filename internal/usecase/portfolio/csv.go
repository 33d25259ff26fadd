package portfolio

import (
	"encoding/csv"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
)

// Синонимы колонок, встречающиеся в выгрузках брокеров и бирж.
var (
	typeColumns   = []string{"asset_type", "type", "asset", "category"}
	symbolColumns = []string{"symbol", "ticker", "coin", "currency"}
	amountColumns = []string{"amount", "qty", "quantity", "balance"}
	costColumns   = []string{"cost_basis", "cost", "price", "avg_price", "purchase_price"}
)

func columnIndex(header []string, names []string) int {
	for _, name := range names {
		for i, column := range header {
			if strings.EqualFold(strings.TrimSpace(column), name) {
				return i
			}
		}
	}
	return -1
}

func parseAmount(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ImportCSV разбирает CSV с заголовком и заменяет позиции с источником
// "csv" на разобранные строки. Возвращает число импортированных позиций.
func (s *Service) ImportCSV(userID int64, text string) (int, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return 0, ErrInvalidCSV
	}

	header := records[0]
	symbolIdx := columnIndex(header, symbolColumns)
	amountIdx := columnIndex(header, amountColumns)
	if symbolIdx < 0 || amountIdx < 0 {
		return 0, ErrInvalidCSV
	}
	typeIdx := columnIndex(header, typeColumns)
	costIdx := columnIndex(header, costColumns)

	var items []domain.PortfolioItem
	for _, record := range records[1:] {
		if symbolIdx >= len(record) || amountIdx >= len(record) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[symbolIdx]))
		amount, ok := parseAmount(record[amountIdx])
		if symbol == "" || !ok || amount <= 0 {
			continue
		}
		assetType := "crypto"
		if typeIdx >= 0 && typeIdx < len(record) {
			if t := strings.ToLower(strings.TrimSpace(record[typeIdx])); t != "" {
				assetType = t
			}
		}
		var cost float64
		if costIdx >= 0 && costIdx < len(record) {
			if v, ok := parseAmount(record[costIdx]); ok {
				cost = v
			}
		}
		items = append(items, domain.PortfolioItem{
			UserID:    userID,
			AssetType: assetType,
			Symbol:    symbol,
			Amount:    amount,
			CostBasis: cost,
		})
	}
	if len(items) == 0 {
		return 0, ErrInvalidCSV
	}
	if err := s.repo.ReplaceBySource(userID, "csv", items); err != nil {
		return 0, err
	}
	return len(items), nil
}
