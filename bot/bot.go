package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ArnaudCalmettes/histeq/imp"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
)

// Run runs the bot until it's interrupted.
func Run(db *gorm.DB, opts imp.Options) error {
	dg, err := discordgo.New("Bot " + viper.GetString("bot.token"))
	if err != nil {
		return fmt.Errorf("couldn't create Discord session: %w", err)
	}

	eq := &equalizer{opts: opts}

	router := exrouter.New()
	router.Use(logMiddleware, dbMiddleware(db))

	router.On("equalize", eq.equalizeAttachments).Desc("equalize attached images (alias: eq)").Alias("eq")
	router.On("history", listRuns).Desc("list recent equalizations (alias: hist)").Alias("hist")

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var f func(depth int, r *exrouter.Route) string
		f = func(depth int, r *exrouter.Route) string {
			text := ""
			for _, v := range r.Routes {
				text += strings.Repeat("  ", depth) + v.Name + ": " + v.Description + "\n"
				text += f(depth+1, &exrouter.Route{Route: v})
			}
			return text
		}
		ctx.Reply("```" + f(0, router) + "```")
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	prefix := viper.GetString("bot.prefix")
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		router.FindAndExecute(s, prefix, s.State.User.ID, m.Message)
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	// Cleanly close down the Discord session.
	defer dg.Close()

	fmt.Println("Up & running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}
