package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArnaudCalmettes/histeq/imp"
	"github.com/ArnaudCalmettes/histeq/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

var errNoInput = errors.New("no input file given")

// equalizeCmd represents the equalize command
var equalizeCmd = &cobra.Command{
	Use:     "equalize [file]",
	Aliases: []string{"eq"},
	Short:   "Equalize an image",
	Long: `Equalize the histogram of an image and write the result as
equalized_image<ext> in the output directory. With diagnostics enabled,
histogram_before.jpg and histogram_after.jpg are written as well.

When no file is given, its name is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) > 0 {
			input = args[0]
		} else {
			var err error
			if input, err = promptFilename(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
		}

		opts, err := equalizeOptions(viper.GetViper())
		if err != nil {
			return err
		}
		if verbose {
			opts.OnStage = func(s imp.Stage) {
				log.Printf("[%s] %s\n", input, s)
			}
		}

		outputDir := viper.GetString("output_dir")
		run, err := equalizeFile(input, outputDir, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Equalized image saved as '%s'\n", run.Output)
		if opts.Diagnostics {
			fmt.Fprintf(cmd.OutOrStdout(), "Histogram before and after equalization saved as '%s' and '%s'\n",
				filepath.Join(outputDir, imp.HistogramBeforeFile),
				filepath.Join(outputDir, imp.HistogramAfterFile),
			)
		}

		if viper.GetBool("record") {
			db := openDB()
			defer db.Close()
			if err := run.Create(db); err != nil {
				log.Println("couldn't record run:", err)
			}
		}
		return nil
	},
}

// promptFilename asks for an image file name on r.
func promptFilename(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter the image file name (with extension): ")
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errNoInput
	}
	name := strings.TrimSpace(sc.Text())
	if name == "" {
		return "", errNoInput
	}
	return name, nil
}

// equalizeFile equalizes input and writes the result (and the charts, when
// requested) to outDir. The returned run isn't saved yet.
func equalizeFile(input, outDir string, opts imp.Options) (*models.Run, error) {
	ext, err := imp.CheckExtension(input)
	if err != nil {
		return nil, err
	}

	buf, err := imp.ReadFile(input)
	if err != nil {
		return nil, err
	}

	res, err := imp.Equalize(buf, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	output := filepath.Join(outDir, imp.EqualizedName(ext))
	if err := imp.Save(output, buf, opts.Quality); err != nil {
		return nil, err
	}

	if opts.Diagnostics {
		if err := imp.SaveImage(filepath.Join(outDir, imp.HistogramBeforeFile), res.BeforeChart, opts.Quality); err != nil {
			return nil, err
		}
		if err := imp.SaveImage(filepath.Join(outDir, imp.HistogramAfterFile), res.AfterChart, opts.Quality); err != nil {
			return nil, err
		}
	}

	return &models.Run{
		Input:         input,
		Output:        output,
		Source:        models.SourceCLI,
		Width:         buf.Width,
		Height:        buf.Height,
		ColorSpace:    buf.ColorSpace.String(),
		Workers:       opts.Workers,
		EntropyBefore: res.Before.Entropy(),
		EntropyAfter:  res.After.Entropy(),
	}, nil
}

func init() {
	rootCmd.AddCommand(equalizeCmd)

	equalizeCmd.Flags().StringP("output-dir", "o", ".", "directory where results are written")
	viper.BindPFlag("output_dir", equalizeCmd.Flags().Lookup("output-dir"))
	equalizeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every equalization stage")
}
