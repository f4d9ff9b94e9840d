package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
	"github.com/c9s/bbgo-margin/pkg/style"
)

func init() {
	RootCmd.AddCommand(ServerTimeCmd)
}

// ServerTimeCmd shows the clock drift between the local machine and the binance api server
var ServerTimeCmd = &cobra.Command{
	Use:          "server-time",
	Short:        "show the binance server time and the local clock offset",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client := binanceapi.NewClient(viper.GetString("binance-api-base-url"))
		if err := client.SetTimeOffsetFromServer(ctx); err != nil {
			return err
		}

		now := time.Now()
		t := style.NewTableWriter(cmd.OutOrStdout(), "Server Time", "Local Time", "Server Time", "Offset")
		t.AppendRow([]interface{}{
			now.Format(time.RFC3339Nano),
			now.Add(client.TimeOffset()).Format(time.RFC3339Nano),
			client.TimeOffset().String(),
		})
		t.Render()
		return nil
	},
}
