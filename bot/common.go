package bot

import (
	"errors"
	"fmt"

	"github.com/ArnaudCalmettes/histeq/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
)

var errNoDB = errors.New("no run database in context")

// Reactions left on a request once every attachment has been handled.
const (
	reactAllDone    = "👍"
	reactSomeFailed = "⚠️"
	reactAllFailed  = "💩"
)

// outcomeReaction picks the reaction matching how many of total
// attachments were equalized.
func outcomeReaction(done, total int) string {
	switch {
	case done == 0:
		return reactAllFailed
	case done < total:
		return reactSomeFailed
	default:
		return reactAllDone
	}
}

// markOutcome reacts to the request message with its outcome.
func markOutcome(ctx *exrouter.Context, done, total int) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, outcomeReaction(done, total))
}

// runSummary is the caption sent along with an equalized image.
func runSummary(name string, run models.Run) string {
	return fmt.Sprintf("**%s** (%dx%d %s): entropy %.3f → %.3f bits",
		name, run.Width, run.Height, run.ColorSpace, run.EntropyBefore, run.EntropyAfter,
	)
}

// attachmentFailure explains why an attachment couldn't be equalized.
func attachmentFailure(att *discordgo.MessageAttachment, err error) string {
	return fmt.Sprintf("Couldn't equalize **%s**: `%s`", att.Filename, err)
}

func usageText(command, syntax string) string {
	if syntax == "" {
		return fmt.Sprintf("syntax: `%s`", command)
	}
	return fmt.Sprintf("syntax: `%s %s`", command, syntax)
}

func sendWarning(ctx *exrouter.Context, msg string) {
	ctx.Reply("⚠️  ", msg)
}

// Report an internal error
func internalError(ctx *exrouter.Context, err error) {
	ctx.Reply("📛 ", fmt.Errorf("Internal error (`%w`)", err))
}

func sendUsage(ctx *exrouter.Context, syntax string) {
	sendWarning(ctx, usageText(ctx.Args[0], syntax))
}

// Get the run database from the context
func getDB(ctx *exrouter.Context) (db *gorm.DB, err error) {
	db, _ = ctx.Get("db").(*gorm.DB)
	if db == nil {
		err = errNoDB
	}
	return
}
