package testutil

import (
	"os"
	"regexp"
	"testing"
)

var secretPattern = regexp.MustCompile(`\b(\w{4})\w+\b`)

func maskSecret(s string) string {
	return secretPattern.ReplaceAllString(s, "$1******")
}

// IntegrationTestConfigured reports whether the live api test of the exchange prefix is enabled,
// it requires {PREFIX}_API_KEY, {PREFIX}_API_SECRET and TEST_{PREFIX}=1.
func IntegrationTestConfigured(t *testing.T, prefix string) (key, secret string, ok bool) {
	var hasKey, hasSecret bool
	key, hasKey = os.LookupEnv(prefix + "_API_KEY")
	secret, hasSecret = os.LookupEnv(prefix + "_API_SECRET")
	ok = hasKey && hasSecret && os.Getenv("TEST_"+prefix) == "1"
	if ok {
		t.Logf("%s api integration test enabled, key = %s, secret = %s", prefix, maskSecret(key), maskSecret(secret))
	}

	return key, secret, ok
}

// IntegrationTestSymbol returns {PREFIX}_TEST_SYMBOL or the fallback symbol.
func IntegrationTestSymbol(prefix, fallback string) string {
	if s, ok := os.LookupEnv(prefix + "_TEST_SYMBOL"); ok && s != "" {
		return s
	}

	return fallback
}
