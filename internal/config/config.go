package config

import "time"

type Config struct {
	Shopify     ShopifyConfig
	Webhook     WebhookConfig
	Server      ServerConfig
	TelegramBot TelegramBotConfig
}

type ShopifyConfig struct {
	ShopDomain string
	Token      string
	APIVersion string
	// LocationID, when set, wins over the store's primary location for
	// inventory writes.
	LocationID string
	Timeout    time.Duration
}

type WebhookConfig struct {
	Secret string
}

type ServerConfig struct {
	Addr string
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}
