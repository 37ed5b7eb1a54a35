package bot

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ArnaudCalmettes/histeq/imp"
	"github.com/ArnaudCalmettes/histeq/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type equalizer struct {
	opts imp.Options
}

// equalized holds the encoded results of an equalized attachment.
type equalized struct {
	files []*discordgo.File
	run   models.Run
}

// equalizeImage decodes an image named name from r, equalizes it and encodes
// the result (plus the charts, if requested).
func equalizeImage(r io.Reader, name string, opts imp.Options) (*equalized, error) {
	ext, err := imp.CheckExtension(name)
	if err != nil {
		return nil, err
	}

	buf, err := imp.Read(r)
	if err != nil {
		return nil, err
	}

	res, err := imp.Equalize(buf, opts)
	if err != nil {
		return nil, err
	}

	out := &equalized{
		run: models.Run{
			Input:         name,
			Output:        imp.EqualizedName(ext),
			Source:        models.SourceDiscord,
			Width:         buf.Width,
			Height:        buf.Height,
			ColorSpace:    buf.ColorSpace.String(),
			Workers:       opts.Workers,
			EntropyBefore: res.Before.Entropy(),
			EntropyAfter:  res.After.Entropy(),
		},
	}

	var b bytes.Buffer
	if err := imp.Encode(&b, buf, ext, opts.Quality); err != nil {
		return nil, err
	}
	out.files = append(out.files, &discordgo.File{Name: out.run.Output, Reader: &b})

	if opts.Diagnostics {
		for _, chart := range []struct {
			name string
			img  *image.NRGBA
		}{
			{imp.HistogramBeforeFile, res.BeforeChart},
			{imp.HistogramAfterFile, res.AfterChart},
		} {
			var cb bytes.Buffer
			if err := imp.EncodeImage(&cb, chart.img, ".jpg", opts.Quality); err != nil {
				return nil, err
			}
			out.files = append(out.files, &discordgo.File{Name: chart.name, Reader: &cb})
		}
	}
	return out, nil
}

func (e *equalizer) equalizeAttachments(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) == 0 {
		sendWarning(ctx, "Attach at least one image to equalize.")
		return
	}

	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}

	done := 0
	for _, att := range ctx.Msg.Attachments {
		out, err := e.equalizeAttachment(att)
		if err != nil {
			sendWarning(ctx, attachmentFailure(att, err))
			continue
		}

		_, err = ctx.Ses.ChannelMessageSendComplex(ctx.Msg.ChannelID, &discordgo.MessageSend{
			Content: runSummary(att.Filename, out.run),
			Files:   out.files,
		})
		if err != nil {
			internalError(ctx, err)
			continue
		}

		if err := out.run.Create(db); err != nil {
			log.Println("couldn't record run:", err)
		}
		done++
	}

	markOutcome(ctx, done, len(ctx.Msg.Attachments))
}

func (e *equalizer) equalizeAttachment(att *discordgo.MessageAttachment) (*equalized, error) {
	// Fail early rather than downloading something we can't handle.
	if _, err := imp.CheckExtension(att.Filename); err != nil {
		return nil, err
	}

	log.Println("Downloading attachment", att.URL)
	resp, err := httpClient.Get(att.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}

	return equalizeImage(resp.Body, att.Filename, e.opts)
}

// List recent equalization runs
func listRuns(ctx *exrouter.Context) {
	limit := 10
	if len(ctx.Args) > 2 {
		sendUsage(ctx, "[count]")
		return
	} else if len(ctx.Args) == 2 {
		n, err := strconv.Atoi(ctx.Args[1])
		if err != nil || n <= 0 {
			sendUsage(ctx, "[count]")
			return
		}
		limit = n
	}

	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	runs, err := models.ListRuns(db, limit)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if len(runs) == 0 {
		sendWarning(ctx, "Nothing has been equalized yet.")
		return
	}
	ctx.Reply("```" + formatRuns(runs) + "```")
}

func formatRuns(runs []models.Run) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INPUT\tSIZE\tSPACE\tENTROPY\t")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.3f → %.3f\t\n",
			r.Input, r.Width, r.Height, r.ColorSpace, r.EntropyBefore, r.EntropyAfter,
		)
	}
	w.Flush()
	return b.String()
}
