package router

// Теги ожидаемого пользовательского ввода. Тег хранится в сессии чата
// и определяет, как будет интерпретировано следующее сообщение.
const (
	InputStocksFind          = "stocks_find"
	InputCryptoFind          = "crypto_find"
	InputForexFind           = "forex_find"
	InputNFTSearch           = "nft_search"
	InputTonWallet           = "ton_wallet"
	InputTonUsernames        = "ton_usernames"
	InputTonGifts            = "ton_gifts"
	InputPortfolioAdd        = "portfolio_add"
	InputPortfolioAddDetails = "portfolio_add_details"
	InputPortfolioRemove     = "portfolio_remove"
	InputLinkExchange        = "portfolio_link_exchange"
	InputLinkWallet          = "portfolio_link_wallet"
	InputImportCSV           = "portfolio_import_csv"
	InputAlertPrice          = "alert_price"
	InputAlertPercent        = "alert_percent"
	InputAdminBroadcast      = "admin_broadcast"
	InputAdminToggle         = "admin_toggle"
	InputAdminVerify         = "admin_verify"
)
