package i18n

import "strings"

// Catalog хранит тексты интерфейса на английском и русском.
type entry struct {
	en string
	ru string
}

// Normalize приводит языковой код к поддерживаемому ("en" или "ru").
func Normalize(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	if strings.HasPrefix(l, "ru") {
		return "ru"
	}
	return "en"
}

// T возвращает текст по ключу. Для неизвестного ключа возвращается сам ключ.
func T(lang, key string) string {
	e, ok := catalog[key]
	if !ok {
		return key
	}
	if Normalize(lang) == "ru" && e.ru != "" {
		return e.ru
	}
	return e.en
}

// TF возвращает текст с подстановкой аргументов вида {name}.
func TF(lang, key string, args map[string]string) string {
	text := T(lang, key)
	for name, value := range args {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

var catalog = map[string]entry{
	// Кнопки.
	"btn.start_here":     {"🚀 Start here", "🚀 С чего начать"},
	"btn.quick_prices":   {"⚡ Quick prices", "⚡ Быстрые цены"},
	"btn.markets":        {"📈 Markets", "📈 Рынки"},
	"btn.crypto":         {"🪙 Crypto", "🪙 Крипта"},
	"btn.nft":            {"🖼 NFT", "🖼 NFT"},
	"btn.ton":            {"💎 TON", "💎 TON"},
	"btn.portfolio":      {"💼 Portfolio", "💼 Портфель"},
	"btn.education":      {"🎓 Education", "🎓 Обучение"},
	"btn.news":           {"📰 News", "📰 Новости"},
	"btn.settings":       {"⚙️ Settings", "⚙️ Настройки"},
	"btn.profile":        {"👤 Profile", "👤 Профиль"},
	"btn.discord":        {"💬 Discord", "💬 Discord"},
	"btn.open_app":       {"📱 Open app", "📱 Открыть приложение"},
	"btn.stocks":         {"🏦 Stocks", "🏦 Акции"},
	"btn.etfs":           {"📦 ETFs", "📦 Фонды"},
	"btn.forex":          {"💱 Forex", "💱 Валюты"},
	"btn.back":           {"⬅️ Back", "⬅️ Назад"},
	"btn.main_menu":      {"🏠 Main menu", "🏠 Главное меню"},
	"btn.prices":         {"💲 Prices", "💲 Цены"},
	"btn.add_asset":      {"➕ Add asset", "➕ Добавить актив"},
	"btn.create_alert":   {"🔔 Create alert", "🔔 Создать алерт"},
	"btn.mini_lessons":   {"📚 Mini-lessons", "📚 Мини-уроки"},
	"btn.price":          {"💲 Price", "💲 Цена"},
	"btn.fundamentals":   {"📊 Fundamentals", "📊 Фундаментал"},
	"btn.ratios":         {"🧮 Ratios", "🧮 Коэффициенты"},
	"btn.earnings":       {"🗓 Earnings", "🗓 Отчётность"},
	"btn.dividends":      {"💰 Dividends", "💰 Дивиденды"},
	"btn.find_stock":     {"🔎 Find stock", "🔎 Найти акцию"},
	"btn.top_stocks":     {"🏆 Top stocks", "🏆 Топ акций"},
	"btn.valuation":      {"⚖️ Valuation", "⚖️ Оценка"},
	"btn.top_gainers":    {"📈 Gainers", "📈 Растущие"},
	"btn.top_losers":     {"📉 Losers", "📉 Падающие"},
	"btn.top_volume":     {"🔊 Volume", "🔊 Объём"},
	"btn.list":           {"📋 List", "📋 Список"},
	"btn.rates":          {"💱 Rates", "💱 Курсы"},
	"btn.top_pairs":      {"🏆 Top pairs", "🏆 Топ пар"},
	"btn.find_pair":      {"🔎 Find pair", "🔎 Найти пару"},
	"btn.alerts":         {"🔔 Alerts", "🔔 Алерты"},
	"btn.dominance":      {"👑 Dominance", "👑 Доминация"},
	"btn.onchain":        {"⛓ On-chain", "⛓ Он-чейн"},
	"btn.find_asset":     {"🔎 Find asset", "🔎 Найти актив"},
	"btn.top_100":        {"🏆 Top 100", "🏆 Топ 100"},
	"btn.wallet_info":    {"👛 Wallet info", "👛 Кошелёк"},
	"btn.usernames":      {"🆔 Usernames", "🆔 Домены"},
	"btn.nfts":           {"🖼 NFTs", "🖼 NFT"},
	"btn.gifts":          {"🎁 Gifts", "🎁 Подарки"},
	"btn.projects":       {"🚀 Projects", "🚀 Проекты"},
	"btn.floor_prices":   {"🧱 Floor prices", "🧱 Флор-цены"},
	"btn.collections":    {"🗂 Collections", "🗂 Коллекции"},
	"btn.search":         {"🔎 Search", "🔎 Поиск"},
	"btn.remove_asset":   {"➖ Remove asset", "➖ Удалить актив"},
	"btn.holdings":       {"📋 Holdings", "📋 Активы"},
	"btn.pnl":            {"📈 P&L", "📈 P&L"},
	"btn.allocation":     {"🥧 Allocation", "🥧 Распределение"},
	"btn.sync":           {"🔄 Sync", "🔄 Синхронизация"},
	"btn.alerts_menu":    {"🔔 Alerts", "🔔 Алерты"},
	"btn.sync_exchange":  {"🏦 Link exchange", "🏦 Привязать биржу"},
	"btn.sync_wallet":    {"👛 Link wallet", "👛 Привязать кошелёк"},
	"btn.sync_run":       {"▶️ Run sync", "▶️ Запустить синк"},
	"btn.sync_links":     {"📋 Linked accounts", "📋 Привязки"},
	"btn.csv_import":     {"📥 Import CSV", "📥 Импорт CSV"},
	"btn.csv_export":     {"📤 Export CSV", "📤 Экспорт CSV"},
	"btn.price_alert":    {"💲 Price alert", "💲 Алерт по цене"},
	"btn.percent_alert":  {"％ Percent alert", "％ Алерт по проценту"},
	"btn.view_alerts":    {"📋 My alerts", "📋 Мои алерты"},
	"btn.glossary":       {"📖 Glossary", "📖 Глоссарий"},
	"btn.quizzes":        {"🧩 Quizzes", "🧩 Квизы"},
	"btn.headlines":      {"🗞 Headlines", "🗞 Заголовки"},
	"btn.project_news":   {"🚀 Project news", "🚀 Новости проекта"},
	"btn.upgrade_pro":    {"⭐ Upgrade to Pro", "⭐ Перейти на Pro"},
	"btn.upgrade_elite":  {"💎 Upgrade to Elite", "💎 Перейти на Elite"},
	"btn.subscription":   {"⭐ Subscription", "⭐ Подписка"},
	"btn.billing":        {"💳 Billing", "💳 Оплата"},
	"btn.language":       {"🌐 Language", "🌐 Язык"},
	"btn.admin":          {"🛡 Admin", "🛡 Админка"},
	"btn.broadcast":      {"📣 Broadcast", "📣 Рассылка"},
	"btn.user_stats":     {"📊 User stats", "📊 Статистика"},
	"btn.feature_toggle": {"🎚 Feature toggle", "🎚 Фичи"},
	"btn.verify":         {"✅ Verify user", "✅ Верификация"},
	"btn.lang_ru":        {"🇷🇺 Русский", "🇷🇺 Русский"},
	"btn.lang_en":        {"🇬🇧 English", "🇬🇧 English"},
	"btn.prev":           {"⬅️ Prev", "⬅️ Назад"},
	"btn.next":           {"➡️ Next", "➡️ Вперёд"},
	"btn.enter_ticker":   {"⌨️ Enter ticker", "⌨️ Ввести тикер"},
	"btn.from_portfolio": {"💼 From portfolio", "💼 Из портфеля"},
	"btn.add_stock":      {"🏦 Stock", "🏦 Акция"},
	"btn.add_crypto":     {"🪙 Crypto", "🪙 Крипта"},
	"btn.add_fund":       {"📦 Fund", "📦 Фонд"},
	"btn.add_custom":     {"✏️ Custom", "✏️ Вручную"},
	"btn.translate":      {"🌐 Translate", "🌐 Перевести"},
	"btn.original":       {"🔤 Original", "🔤 Оригинал"},

	// Меню.
	"menu.main.title":      {"📊 Invest Assistant", "📊 Инвест-ассистент"},
	"menu.main.intro":      {"Hi, {username}! Your plan: {tier}.\nPick a section below.", "Привет, {username}! Ваш тариф: {tier}.\nВыберите раздел ниже."},
	"menu.markets.title":   {"📈 Markets", "📈 Рынки"},
	"menu.markets.body":    {"Stocks, ETFs and currency pairs.", "Акции, фонды и валютные пары."},
	"menu.onboarding.title": {"🚀 Start here", "🚀 С чего начать"},
	"menu.onboarding.body": {"Three quick steps:\n1. Check prices\n2. Add assets to the portfolio\n3. Create an alert", "Три быстрых шага:\n1. Посмотрите цены\n2. Добавьте активы в портфель\n3. Создайте алерт"},
	"menu.stocks.title":    {"🏦 Stocks", "🏦 Акции"},
	"menu.stocks.body":     {"Quotes, fundamentals, valuation and corporate events.", "Котировки, фундаментал, оценка и корпоративные события."},
	"menu.etfs.title":      {"📦 ETFs", "📦 Фонды"},
	"menu.etfs.body":       {"Popular funds and their quotes.", "Популярные фонды и их котировки."},
	"menu.forex.title":     {"💱 Forex", "💱 Валюты"},
	"menu.forex.body":      {"Exchange rates for major pairs.", "Курсы основных валютных пар."},
	"menu.crypto.title":    {"🪙 Crypto", "🪙 Крипта"},
	"menu.crypto.body":     {"Prices, market structure and on-chain data.", "Цены, структура рынка и он-чейн данные."},
	"menu.ton.title":       {"💎 TON", "💎 TON"},
	"menu.ton.body":        {"Wallets, domains, jettons and gifts in TON.", "Кошельки, домены, жетоны и подарки в TON."},
	"menu.nft.title":       {"🖼 NFT", "🖼 NFT"},
	"menu.nft.body":        {"Collections and floor prices.", "Коллекции и флор-цены."},
	"menu.portfolio.title": {"💼 Portfolio", "💼 Портфель"},
	"menu.portfolio.body":  {"Track your holdings in one place.", "Все ваши активы в одном месте."},
	"menu.sync.title":      {"🔄 Sync", "🔄 Синхронизация"},
	"menu.sync.body":       {"Link exchanges and wallets to import balances automatically.", "Привяжите биржи и кошельки, чтобы импортировать балансы автоматически."},
	"menu.alerts.title":    {"🔔 Alerts", "🔔 Алерты"},
	"menu.alerts.body":     {"Get notified about price moves.", "Получайте уведомления о движениях цены."},
	"menu.education.title": {"🎓 Education", "🎓 Обучение"},
	"menu.education.body":  {"Mini-lessons, glossary and quizzes.", "Мини-уроки, глоссарий и квизы."},
	"menu.news.title":      {"📰 News", "📰 Новости"},
	"menu.news.body":       {"Market headlines and project updates.", "Рыночные заголовки и новости проекта."},
	"menu.settings.title":  {"⚙️ Settings", "⚙️ Настройки"},
	"menu.settings.body":   {"Plan: {tier}. Manage subscription and language.", "Тариф: {tier}. Управление подпиской и языком."},
	"menu.language.title":  {"🌐 Language", "🌐 Язык"},
	"menu.language.body":   {"Choose interface language.", "Выберите язык интерфейса."},
	"menu.profile.title":   {"👤 Profile", "👤 Профиль"},
	"menu.profile.body":    {"{badge} {username}\nPlan: {tier}", "{badge} {username}\nТариф: {tier}"},
	"menu.admin.title":     {"🛡 Admin", "🛡 Админка"},

	// Сообщения.
	"msg.unknown_action":            {"Unknown action. Use the menu below.", "Неизвестное действие. Используйте меню ниже."},
	"msg.rate_limited":              {"Too many requests. Please slow down.", "Слишком много запросов. Пожалуйста, помедленнее."},
	"msg.no_holdings":               {"Your portfolio is empty. Add the first asset.", "Портфель пуст. Добавьте первый актив."},
	"msg.stocks_find":               {"Send a ticker, e.g. AAPL", "Отправьте тикер, например AAPL"},
	"msg.stocks_valuation_hint":     {"Send a ticker to estimate fair value, e.g. MSFT", "Отправьте тикер для оценки справедливой цены, например MSFT"},
	"msg.choose_stock_source":       {"Where to take the ticker from?", "Откуда взять тикер?"},
	"msg.no_stock_holdings":         {"No stocks or funds in your portfolio yet.", "В портфеле пока нет акций или фондов."},
	"msg.choose_stock":              {"Choose a ticker ({count} in portfolio):", "Выберите тикер ({count} в портфеле):"},
	"msg.choose_remove":             {"Choose an asset to remove ({count}):", "Выберите актив для удаления ({count}):"},
	"msg.asset_removed":             {"Removed {count} position(s).", "Удалено позиций: {count}."},
	"msg.dividends_empty":           {"No dividend payments found for the period.", "Дивидендных выплат за период не найдено."},
	"msg.earnings_empty":            {"No earnings reports found for the period.", "Отчётов за период не найдено."},
	"msg.quote_not_found":           {"Quote not found: {symbol}", "Котировка не найдена: {symbol}"},
	"msg.crypto_not_found":          {"Crypto asset not found.", "Криптоактив не найден."},
	"msg.forex_not_found":           {"Currency pair not found.", "Валютная пара не найдена."},
	"msg.news_empty":                {"No news right now.", "Новостей пока нет."},
	"msg.crypto_find":               {"Send a coin symbol, e.g. BTC or TON", "Отправьте символ монеты, например BTC или TON"},
	"msg.forex_find":                {"Send a pair, e.g. EUR/USD", "Отправьте пару, например EUR/USD"},
	"msg.alerts_hint":               {"Pick an alert type below.", "Выберите тип алерта ниже."},
	"msg.send_alert_price":          {"Send: TYPE SYMBOL PRICE\nExample: crypto BTC 65000", "Отправьте: ТИП СИМВОЛ ЦЕНА\nПример: crypto BTC 65000"},
	"msg.send_alert_percent":        {"Send: TYPE SYMBOL PERCENT\nExample: stock AAPL 5", "Отправьте: ТИП СИМВОЛ ПРОЦЕНТ\nПример: stock AAPL 5"},
	"msg.alert_price_created":       {"Price alert created.", "Алерт по цене создан."},
	"msg.alert_price_invalid":       {"Invalid format. Example: crypto BTC 65000", "Неверный формат. Пример: crypto BTC 65000"},
	"msg.alert_percent_created":     {"Percent alert created.", "Алерт по проценту создан."},
	"msg.alert_percent_invalid":     {"Invalid format. Example: stock AAPL 5", "Неверный формат. Пример: stock AAPL 5"},
	"msg.no_active_alerts":          {"No active alerts.", "Активных алертов нет."},
	"msg.ton_username_hint":         {"Send a .ton domain or a wallet address.", "Отправьте .ton домен или адрес кошелька."},
	"msg.ton_no_domains":            {"No domains found for this account.", "Домены для этого аккаунта не найдены."},
	"msg.ton_domain_not_found":      {"Domain {domain} not found.", "Домен {domain} не найден."},
	"msg.ton_wallet_hint":           {"Send a TON wallet address.", "Отправьте адрес TON-кошелька."},
	"msg.ton_wallet_not_found":      {"Wallet not found.", "Кошелёк не найден."},
	"msg.ton_gifts_hint":            {"Send a wallet address to look for gift NFTs.", "Отправьте адрес кошелька для поиска подарочных NFT."},
	"msg.ton_gifts_empty":           {"No gifts found in this wallet.", "Подарков в этом кошельке не найдено."},
	"msg.nft_search_hint":           {"Send a collection name or slug.", "Отправьте название или slug коллекции."},
	"msg.nft_not_found":             {"Collection not found.", "Коллекция не найдена."},
	"msg.portfolio_add_choose_type": {"What are you adding?", "Что добавляем?"},
	"msg.send_portfolio_add":        {"Send: TYPE SYMBOL AMOUNT COST\nExample: crypto TON 100 5.2", "Отправьте: ТИП СИМВОЛ КОЛ-ВО ЦЕНА\nПример: crypto TON 100 5.2"},
	"msg.send_portfolio_details":    {"Send: SYMBOL AMOUNT COST\nExample: AAPL 5 180.50", "Отправьте: СИМВОЛ КОЛ-ВО ЦЕНА\nПример: AAPL 5 180.50"},
	"msg.asset_added":               {"Added: {symbol}", "Добавлено: {symbol}"},
	"msg.asset_invalid":             {"Invalid format. Example: AAPL 5 180.50", "Неверный формат. Пример: AAPL 5 180.50"},
	"msg.sync_exchange_hint":        {"Send: PROVIDER API_KEY API_SECRET [PASSPHRASE]\nProviders: binance, bybit, okx", "Отправьте: ПРОВАЙДЕР API_KEY API_SECRET [PASSPHRASE]\nПровайдеры: binance, bybit, okx"},
	"msg.sync_wallet_hint":          {"Send: ton ADDRESS [LABEL]", "Отправьте: ton АДРЕС [МЕТКА]"},
	"msg.sync_exchange_added":       {"Exchange linked: {label}", "Биржа привязана: {label}"},
	"msg.sync_exchange_unknown":     {"Unknown provider: {provider}", "Неизвестный провайдер: {provider}"},
	"msg.sync_exchange_missing":     {"Exchange integration is not available right now.", "Интеграция с биржами сейчас недоступна."},
	"msg.sync_exchange_failed":      {"Failed to fetch exchange balances.", "Не удалось получить балансы биржи."},
	"msg.sync_wallet_added":         {"Wallet linked: {label}", "Кошелёк привязан: {label}"},
	"msg.sync_wallet_unknown":       {"Unknown wallet provider: {provider}", "Неизвестный провайдер кошелька: {provider}"},
	"msg.sync_no_links":             {"No linked accounts yet.", "Привязанных аккаунтов пока нет."},
	"msg.sync_removed":              {"Link removed.", "Привязка удалена."},
	"msg.sync_done":                 {"Sync finished: {wallets} wallet(s), {exchanges} exchange(s), {assets} asset(s).", "Синхронизация завершена: кошельков {wallets}, бирж {exchanges}, активов {assets}."},
	"msg.import_csv_hint":           {"Send CSV text with a header, e.g.\nasset_type,symbol,amount,cost_basis", "Отправьте CSV с заголовком, например\nasset_type,symbol,amount,cost_basis"},
	"msg.import_csv_done":           {"Imported {count} row(s).", "Импортировано строк: {count}."},
	"msg.invalid_csv":               {"Could not parse CSV. Check the header and rows.", "Не удалось разобрать CSV. Проверьте заголовок и строки."},
	"msg.export_empty":              {"Nothing to export yet.", "Пока нечего экспортировать."},
	"msg.subscription_upgrade":      {"Upgrade to {tier}:\n{link}", "Переход на {tier}:\n{link}"},
	"msg.subscription_manage":       {"Manage your subscription:\n{link}", "Управление подпиской:\n{link}"},
	"msg.payments_unavailable":      {"Payments are not configured.", "Платежи не настроены."},
	"msg.language_set":              {"Language switched: {language}", "Язык переключён: {language}"},
	"msg.admin_required":            {"Admin access required.", "Требуются права администратора."},
	"msg.broadcast_hint":            {"Send the broadcast text.", "Отправьте текст рассылки."},
	"msg.broadcast_queued":          {"Broadcast queued.", "Рассылка поставлена в очередь."},
	"msg.user_stats":                {"Users: {total}\nfree: {free} | pro: {pro} | elite: {elite}", "Пользователей: {total}\nfree: {free} | pro: {pro} | elite: {elite}"},
	"msg.feature_toggle_hint":       {"Send a feature key to toggle.", "Отправьте ключ фичи для переключения."},
	"msg.feature_toggled":           {"Feature toggled: {feature}", "Фича переключена: {feature}"},
	"msg.verify_hint":               {"Send: USER_ID BADGE (major, hodl, verified, none)", "Отправьте: USER_ID БЕЙДЖ (major, hodl, verified, none)"},
	"msg.verify_done":               {"Badge updated: {badge}", "Бейдж обновлён: {badge}"},
	"msg.verify_invalid":            {"Unknown badge or user.", "Неизвестный бейдж или пользователь."},
	"msg.feature_requires":          {"This feature requires the {tier} plan. Open Settings to upgrade.", "Эта функция доступна на тарифе {tier}. Откройте Настройки для апгрейда."},
	"msg.translating":               {"Translating…", "Перевожу…"},
	"msg.translate_unavailable":     {"Translation is not configured.", "Перевод не настроен."},
	"msg.translate_offline":         {"Translation service is unavailable for this language.", "Сервис перевода недоступен для этого языка."},
	"msg.translate_failed":          {"Translation failed, showing the original.", "Перевод не удался, показан оригинал."},
	"msg.price_moved":               {"{symbol} moved {pct} in the last check. Price: {price}", "{symbol} изменился на {pct} с прошлой проверки. Цена: {price}"},
	"msg.quiz":                      {"Quiz: which metric compares price to earnings?\nAnswer: P/E.", "Квиз: какая метрика сравнивает цену с прибылью?\nОтвет: P/E."},
	"msg.onchain_unavailable":       {"On-chain provider not configured.", "Он-чейн провайдер не настроен."},
	"msg.help": {
		"Commands:\n/menu — main menu\n/price AAPL — stock quote\n/crypto BTC — crypto quote\n/valuation MSFT — fair value estimate\n/help — this message",
		"Команды:\n/menu — главное меню\n/price AAPL — котировка акции\n/crypto BTC — котировка монеты\n/valuation MSFT — оценка справедливой цены\n/help — это сообщение",
	},

	// Подписи значений.
	"label.asset_type":     {"Type", "Тип"},
	"label.amount":         {"Amount", "Кол-во"},
	"label.cost_basis":     {"Cost basis", "Цена покупки"},
	"label.market_cap":     {"Market cap", "Капитализация"},
	"label.eps":            {"EPS (TTM)", "EPS (TTM)"},
	"label.dividend_yield": {"Dividend yield", "Дивидендная доходность"},
	"label.high_52w":       {"52w high", "Максимум 52 нед"},
	"label.low_52w":        {"52w low", "Минимум 52 нед"},
	"label.beta":           {"Beta", "Бета"},
	"label.pe":             {"P/E", "P/E"},
	"label.pb":             {"P/B", "P/B"},
	"label.roe":            {"ROE", "ROE"},
	"label.debt_to_equity": {"Debt/Equity", "Долг/Капитал"},
	"label.current_ratio":  {"Current ratio", "Текущая ликвидность"},
	"label.price":          {"Price", "Цена"},
	"label.change":         {"Change", "Изменение"},
	"label.change_24h":     {"24h change", "Изменение за 24ч"},
	"label.volume":         {"Volume", "Объём"},
	"label.rate":           {"Rate", "Курс"},
	"label.open":           {"Open", "Открытие"},
	"label.prev_close":     {"Prev close", "Пред. закрытие"},
	"label.high":           {"High", "Максимум"},
	"label.low":            {"Low", "Минимум"},
	"label.graham_value":   {"Graham value", "Оценка Грэма"},
	"label.growth_used":    {"Growth used", "Учтённый рост"},
	"label.margin_safety":  {"Margin of safety", "Запас прочности"},
	"label.score":          {"Score", "Скор"},
	"label.mentions":       {"Mentions", "Упоминания"},
	"label.pos_neg":        {"Pos/Neg", "Поз/Нег"},
	"label.holders":        {"Holders", "Держатели"},
	"label.verification":   {"Verification", "Верификация"},
	"label.domain":         {"Domain", "Домен"},
	"label.wallet":         {"Wallet", "Кошелёк"},
	"label.expires":        {"Expires", "Истекает"},
	"label.status":         {"Status", "Статус"},
	"label.balance":        {"Balance", "Баланс"},
	"label.floor":          {"Floor", "Флор"},
	"label.btc_dominance":  {"BTC dominance", "Доминация BTC"},
	"label.eth_dominance":  {"ETH dominance", "Доминация ETH"},

	// Секции.
	"section.holdings":     {"Holdings", "Активы"},
	"section.valuation":    {"Valuation", "Оценка"},
	"section.community":    {"Community sentiment", "Настроение сообщества"},
	"section.news":         {"News", "Новости"},
	"section.crypto_top":   {"Top crypto", "Топ крипты"},
	"section.stocks_top":   {"Top stocks", "Топ акций"},
	"section.funds_top":    {"Top funds", "Топ фондов"},
	"section.ton_usernames": {"TON usernames", "TON домены"},
	"section.ton_expiring": {"Expiring soon", "Скоро истекают"},
	"section.ton_gifts":    {"Gifts", "Подарки"},
	"section.ton_projects": {"TON projects", "TON проекты"},
	"section.sync_links":   {"Linked accounts", "Привязанные аккаунты"},
	"section.fundamentals": {"Fundamentals", "Фундаментал"},
	"section.allocation":   {"Allocation", "Распределение"},
	"section.pnl":          {"P&L", "P&L"},
	"section.dominance":    {"Market dominance", "Доминация рынка"},
	"section.onchain":      {"On-chain summary", "Он-чейн сводка"},
	"section.earnings":     {"Earnings", "Отчётность"},
	"section.dividends":    {"Dividends", "Дивиденды"},
	"section.rates":        {"Rates", "Курсы"},

	// Подсказки к метрикам.
	"hint.market_cap":     {"total value of all shares", "стоимость всех акций"},
	"hint.eps":            {"earnings per share", "прибыль на акцию"},
	"hint.dividend":       {"annual payout vs price", "годовая выплата к цене"},
	"hint.range_52w":      {"price range over a year", "диапазон цены за год"},
	"hint.beta":           {"volatility vs market", "волатильность к рынку"},
	"hint.pe":             {"price vs earnings", "цена к прибыли"},
	"hint.pb":             {"price vs book value", "цена к балансовой стоимости"},
	"hint.roe":            {"return on equity", "рентабельность капитала"},
	"hint.debt_to_equity": {"leverage level", "уровень долга"},
	"hint.current_ratio":  {"short-term liquidity", "краткосрочная ликвидность"},

	// Тарифы и бейджи.
	"tier.free":      {"Free", "Free"},
	"tier.pro":       {"Pro", "Pro"},
	"tier.elite":     {"Elite", "Elite"},
	"badge.none":     {"no badge", "без бейджа"},
	"badge.major":    {"major", "мейджор"},
	"badge.hodl":     {"hodl", "ходлер"},
	"badge.verified": {"verified", "верифицирован"},

	// Описания фондов.
	"fund.spy": {"S&P 500 index fund", "Фонд на индекс S&P 500"},
	"fund.qqq": {"Nasdaq-100 index fund", "Фонд на индекс Nasdaq-100"},
	"fund.vti": {"Total US stock market", "Весь рынок акций США"},
	"fund.iwm": {"US small caps", "Малые компании США"},
	"fund.dia": {"Dow Jones index fund", "Фонд на индекс Dow Jones"},
	"fund.xlk": {"Technology sector", "Технологический сектор"},
	"fund.xlf": {"Financial sector", "Финансовый сектор"},
	"fund.xlv": {"Healthcare sector", "Сектор здравоохранения"},
}
