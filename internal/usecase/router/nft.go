package router

import (
	"context"
	"fmt"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

// Слоги коллекций для сводки флор-цен.
var nftFloorSlugs = []string{"boredapeyachtclub", "cryptopunks", "azuki", "doodles-official", "pudgypenguins"}

func (s *Service) dispatchNFT(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "nft_floor":
		return s.nftFloorView(ctx, user)
	case "nft_collections":
		return s.nftCollectionsView(ctx, user)
	case "nft_search":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.nft_search_hint"),
			ExpectInput: InputNFTSearch,
		}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

func floorLine(idx int, collection domain.NFTCollection) string {
	name := collection.Name
	if name == "" {
		name = collection.Slug
	}
	floor := na
	if collection.FloorPrice != nil {
		floor = fmt.Sprintf("%.4f %s", *collection.FloorPrice, collection.Currency)
	}
	return fmt.Sprintf("%d. %s — %s", idx, name, floor)
}

func (s *Service) nftFloorView(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	lines := make([]string, 0, len(nftFloorSlugs))
	for i, slug := range nftFloorSlugs {
		collection, err := s.nft.Collection(ctx, slug)
		if err != nil {
			collection = domain.NFTCollection{Slug: slug, Currency: "ETH"}
		}
		lines = append(lines, floorLine(i+1, collection))
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "btn.floor_prices"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) nftCollectionsView(ctx context.Context, user domain.User) domain.UIMessage {
	lang := user.Language
	collections, err := s.nft.TopCollections(ctx, 5)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить коллекции")
	}
	if len(collections) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.nft_not_found")}
	}
	lines := make([]string, 0, len(collections))
	for i, collection := range collections {
		lines = append(lines, floorLine(i+1, collection))
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "btn.collections"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

// NFTSearchView ищет коллекцию по введённому запросу.
func (s *Service) NFTSearchView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	return s.ensureNav(user, s.nftSearchView(ctx, user, input), "nft")
}

func (s *Service) nftSearchView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	lang := user.Language
	query := strings.TrimSpace(input)
	if query == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.nft_search_hint")}
	}

	collections, err := s.nft.Search(ctx, query)
	if err != nil || len(collections) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.nft_not_found")}
	}
	lines := make([]string, 0, len(collections))
	for i, collection := range collections {
		lines = append(lines, floorLine(i+1, collection))
	}
	return domain.UIMessage{
		Text:      section(i18n.T(lang, "btn.collections"), strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}
