package config

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
)

type BinanceConfig struct {
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`

	// PrivateKeyFile points to a PKCS#8 PEM encoded Ed25519 key, it replaces the HMAC secret when set
	PrivateKeyFile string `json:"privateKeyFile,omitempty" yaml:"privateKeyFile,omitempty"`

	BaseURL    string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	RecvWindow int    `json:"recvWindow,omitempty" yaml:"recvWindow,omitempty"`

	// RateLimit uses the b+n/duration syntax, e.g. "10+5/1s"
	RateLimit string `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`

	SyncServerTime bool `json:"syncServerTime,omitempty" yaml:"syncServerTime,omitempty"`
}

type Config struct {
	Binance BinanceConfig `json:"binance" yaml:"binance"`

	// StrictTransferAmount rejects non-numeric isolated transfer amounts before they are sent
	StrictTransferAmount bool `json:"strictTransferAmount,omitempty" yaml:"strictTransferAmount,omitempty"`
}

// Load reads the yaml config file, ${VAR} references are expanded from the environment.
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), &config); err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", configFile)
	}

	config.Binance.applyDefaults()
	return &config, nil
}

func (c *BinanceConfig) applyDefaults() {
	if c.RecvWindow == 0 {
		c.RecvWindow = binanceapi.DefaultRecvWindow
	}
}

// LoadPrivateKey loads the Ed25519 private key from PrivateKeyFile.
func (c *BinanceConfig) LoadPrivateKey() (ed25519.PrivateKey, error) {
	content, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(content)
	if block == nil {
		return nil, errors.Errorf("no pem block found in %s", c.PrivateKeyFile)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse private key %s", c.PrivateKeyFile)
	}

	privateKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.Errorf("unexpected private key type %T, ed25519 is required", key)
	}

	return privateKey, nil
}
