package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "histeq",
	Short: "Global histogram equalization of images",
	Long: `Histeq remaps the intensities of an image so they fill the whole dynamic
range, and can render bar charts of the histogram before and after.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.histeq.yaml)")
	flags.String("db", "histeq.sqlite", "database recording equalization runs")
	flags.IntP("workers", "w", 0, "number of workers, capped at the CPU count (0 means one per CPU)")
	flags.IntP("quality", "q", 75, "JPEG quality of written images (1-100)")
	flags.Bool("diagnostics", true, "render histogram charts before and after equalization")
	flags.String("chart-scaling", "max", "bar chart scaling: max or fixed")
	flags.Float64("chart-divisor", 1000, "divisor used by fixed chart scaling")
	flags.Bool("record", true, "record runs in the database")

	viper.BindPFlag("db", flags.Lookup("db"))
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.BindPFlag("quality", flags.Lookup("quality"))
	viper.BindPFlag("diagnostics", flags.Lookup("diagnostics"))
	viper.BindPFlag("chart.scaling", flags.Lookup("chart-scaling"))
	viper.BindPFlag("chart.divisor", flags.Lookup("chart-divisor"))
	viper.BindPFlag("record", flags.Lookup("record"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".histeq" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".histeq")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("HISTEQ")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
