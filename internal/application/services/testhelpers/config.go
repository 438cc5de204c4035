package testhelpers

import (
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/config"
)

const (
	TestKeyID         = "rzp_test_key"
	TestKeySecret     = "test_key_secret"
	TestWebhookSecret = "test_webhook_secret"
)

func GatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		KeyID:           TestKeyID,
		KeySecret:       TestKeySecret,
		WebhookSecret:   TestWebhookSecret,
		BaseURL:         "https://api.razorpay.com",
		Timeout:         5 * time.Second,
		DefaultCurrency: "INR",
	}
}

func CaptureConfig() config.CaptureConfig {
	return config.CaptureConfig{PriceTolerance: "0.01"}
}
