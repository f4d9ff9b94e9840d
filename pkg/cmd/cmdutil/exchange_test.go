package cmdutil

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bbgo-margin/pkg/config"
	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
)

func TestLoadConfig_FlagOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("binance-api-key", "flag-key")
	viper.Set("binance-api-secret", "flag-secret")
	viper.Set("recv-window", 10000)
	viper.Set("strict-transfer-amount", true)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "flag-key", cfg.Binance.Key)
	assert.Equal(t, "flag-secret", cfg.Binance.Secret)
	assert.Equal(t, 10000, cfg.Binance.RecvWindow)
	assert.True(t, cfg.StrictTransferAmount)
	assert.False(t, cfg.Binance.SyncServerTime)
}

func TestNewRestClient(t *testing.T) {
	ctx := context.Background()

	_, err := NewRestClient(ctx, config.BinanceConfig{})
	assert.Error(t, err)

	_, err = NewRestClient(ctx, config.BinanceConfig{Key: "key"})
	assert.Error(t, err)

	_, err = NewRestClient(ctx, config.BinanceConfig{Key: "key", Secret: "secret", RateLimit: "bogus"})
	assert.Error(t, err)

	client, err := NewRestClient(ctx, config.BinanceConfig{
		Key:        "key",
		Secret:     "secret",
		BaseURL:    "https://testnet.binance.vision",
		RecvWindow: binanceapi.DefaultRecvWindow,
		RateLimit:  "5+1/1s",
	})
	require.NoError(t, err)
	assert.Equal(t, "testnet.binance.vision", client.BaseURL.Host)
}
