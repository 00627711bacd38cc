package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultAPIVersion = "2024-07"

func requriedString(key string) (string, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return "", fmt.Errorf("missing requried env var: %s", key)
	}
	return variable, nil
}

func stringWithDefault(key, def string) string {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	return variable
}

func intWithDefault(key string, def int) (int, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	number, err := strconv.Atoi(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return number, nil
}

// Load reads the full webhook server configuration from the environment.
// Shop domain, API token and webhook secret are required; everything else
// has a default or is optional.
func Load() (Config, error) {
	shop, err := requriedString("SHOPIFY_SHOP")
	if err != nil {
		return Config{}, err
	}
	token, err := requriedString("SHOPIFY_API_TOKEN")
	if err != nil {
		return Config{}, err
	}
	secret, err := requriedString("WEBHOOK_SECRET")
	if err != nil {
		return Config{}, err
	}
	timeoutSec, err := intWithDefault("SHOPIFY_TIMEOUT_SECONDS", 15)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Shopify: ShopifyConfig{
			ShopDomain: shop,
			Token:      token,
			APIVersion: stringWithDefault("SHOPIFY_API_VERSION", defaultAPIVersion),
			LocationID: stringWithDefault("SHOPIFY_LOCATION_ID", ""),
			Timeout:    time.Duration(timeoutSec) * time.Second,
		},
		Webhook: WebhookConfig{
			Secret: secret,
		},
		Server: ServerConfig{
			Addr: stringWithDefault("HTTP_ADDR", ":10000"),
		},
		TelegramBot: TelegramBotConfig{
			ChatId: stringWithDefault("TELEGRAM_CHAT_ID", ""),
			Token:  stringWithDefault("TELEGRAM_BOT_TOKEN", ""),
		},
	}, nil
}
