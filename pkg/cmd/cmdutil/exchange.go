package cmdutil

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/c9s/bbgo-margin/pkg/config"
	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
	"github.com/c9s/bbgo-margin/pkg/util"
	"github.com/c9s/bbgo-margin/pkg/util/backoff"
)

// LoadConfig loads the config file given by --config, flags and env vars override the file values.
func LoadConfig() (*config.Config, error) {
	var cfg config.Config

	if configFile := viper.GetString("config"); len(configFile) > 0 {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}

		cfg = *loaded
	}

	overrideString(&cfg.Binance.Key, "binance-api-key")
	overrideString(&cfg.Binance.Secret, "binance-api-secret")
	overrideString(&cfg.Binance.BaseURL, "binance-api-base-url")
	overrideString(&cfg.Binance.RateLimit, "rate-limit")

	if v := viper.GetInt("recv-window"); v > 0 {
		cfg.Binance.RecvWindow = v
	}

	if viper.GetBool("sync-time") {
		cfg.Binance.SyncServerTime = true
	}

	if viper.GetBool("strict-transfer-amount") {
		cfg.StrictTransferAmount = true
	}

	return &cfg, nil
}

func overrideString(dst *string, key string) {
	if v := viper.GetString(key); len(v) > 0 {
		*dst = v
	}
}

// NewRestClient creates the authenticated binance client from the binance config section.
func NewRestClient(ctx context.Context, cfg config.BinanceConfig) (*binanceapi.RestClient, error) {
	if len(cfg.Key) == 0 {
		return nil, errors.New("binance: empty api key, set --binance-api-key or BINANCE_API_KEY")
	}

	client := binanceapi.NewClient(cfg.BaseURL)

	switch {
	case len(cfg.PrivateKeyFile) > 0:
		privateKey, err := cfg.LoadPrivateKey()
		if err != nil {
			return nil, err
		}
		client.AuthEd25519(cfg.Key, privateKey)

	case len(cfg.Secret) > 0:
		client.Auth(cfg.Key, cfg.Secret)

	default:
		return nil, errors.New("binance: empty api secret, set --binance-api-secret or BINANCE_API_SECRET")
	}

	if cfg.RecvWindow > 0 {
		client.SetRecvWindow(cfg.RecvWindow)
	}

	if len(cfg.RateLimit) > 0 {
		limiter, err := util.ParseRateLimitSyntax(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		client.SetRateLimiter(limiter)
	}

	if cfg.SyncServerTime {
		if err := backoff.RetryGeneral(ctx, func() error {
			return client.SetTimeOffsetFromServer(ctx)
		}); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// NewMarginService builds the margin service from the flags, env vars and the config file.
func NewMarginService(ctx context.Context) (*binanceapi.MarginService, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	client, err := NewRestClient(ctx, cfg.Binance)
	if err != nil {
		return nil, err
	}

	service := client.NewMarginService()
	service.StrictTransferAmount = cfg.StrictTransferAmount
	return service, nil
}
