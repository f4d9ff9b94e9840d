package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags for environments
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", "", "config file")
	flags.String("dotenv", ".env.local", "the dotenv file you want to load")
	flags.String("log-file", "", "write json logs to the rotated log file")

	flags.String("binance-api-key", "", "binance api key")
	flags.String("binance-api-secret", "", "binance api secret")
	flags.String("binance-api-base-url", "", "binance api base url, defaults to https://api.binance.com")
	flags.Int("recv-window", 0, "recvWindow of the signed requests in milliseconds")
	flags.String("rate-limit", "", "request rate limit, e.g. 10+5/1s")
	flags.Bool("sync-time", false, "sync the request timestamp with the binance server time")
	flags.Bool("strict-transfer-amount", false, "reject non-numeric transfer amounts")
}
