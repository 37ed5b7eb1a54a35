package cmd

import (
	"github.com/ArnaudCalmettes/histeq/bot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var token string

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Discord bot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := equalizeOptions(viper.GetViper())
		if err != nil {
			return err
		}
		db := openDB()
		defer db.Close()

		if token != "" {
			viper.Set("bot.token", token)
		}
		return bot.Run(db, opts)
	},
}

func init() {
	rootCmd.AddCommand(botCmd)

	botCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
	botCmd.Flags().String("prefix", ".", "command prefix")
	viper.BindPFlag("bot.prefix", botCmd.Flags().Lookup("prefix"))
}
