package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/histeq/models"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded equalization runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openDB()
		defer db.Close()

		runs, err := models.ListRuns(db, historyLimit)
		if err != nil {
			return err
		}
		return printRuns(cmd.OutOrStdout(), runs)
	},
}

func printRuns(out io.Writer, runs []models.Run) error {
	w := tabwriter.NewWriter(out, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tSOURCE\tINPUT\tSIZE\tSPACE\tENTROPY\t")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%.3f -> %.3f\t\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.Input,
			r.Width, r.Height, r.ColorSpace, r.EntropyBefore, r.EntropyAfter,
		)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
}
