package cmd

import (
	"fmt"

	"github.com/ArnaudCalmettes/histeq/imp"
	"github.com/spf13/viper"
)

// equalizeOptions builds the engine options from the current configuration.
func equalizeOptions(v *viper.Viper) (imp.Options, error) {
	opts := imp.DefaultOptions()
	opts.Workers = v.GetInt("workers")
	opts.Diagnostics = v.GetBool("diagnostics")

	opts.Quality = v.GetInt("quality")
	if opts.Quality < 1 || opts.Quality > 100 {
		return opts, fmt.Errorf("quality should be between 1 and 100 (got %d)", opts.Quality)
	}

	scaling, err := imp.ParseChartScaling(v.GetString("chart.scaling"))
	if err != nil {
		return opts, err
	}
	opts.Chart.Scaling = scaling

	opts.Chart.FixedDivisor = v.GetFloat64("chart.divisor")
	if scaling == imp.ScaleFixed && opts.Chart.FixedDivisor <= 0 {
		return opts, fmt.Errorf("chart divisor should be positive (got %v)", opts.Chart.FixedDivisor)
	}
	return opts, nil
}
