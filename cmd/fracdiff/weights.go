package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sartorproj/fracdiff/fracdiff"
	"github.com/sartorproj/fracdiff/timeseries"
)

var (
	weightsThreshold float64

	diffThreshold  float64
	diffDateColumn string
	diffColumns    []string
	diffOutput     string
	diffNoLog      bool
)

// newWeightsCmd implements 'fracdiff weights <d>'
func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights <d>",
		Short: "Print the FFD kernel for order d",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrapf(err, "parse order %q", args[0])
			}
			w, err := fracdiff.Weights(d, weightsThreshold)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "lag\tweight\t")
			for i := len(w) - 1; i >= 0; i-- {
				fmt.Fprintf(tw, "%d\t%.10f\t\n", len(w)-1-i, w[i])
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Printf("width=%d\n", len(w))
			return nil
		},
	}

	cmd.Flags().Float64Var(&weightsThreshold, "threshold", fracdiff.DefaultThreshold, "FFD weight cutoff")
	return cmd
}

// newDiffCmd implements 'fracdiff diff <file.csv> <d>'
func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file.csv> <d>",
		Short: "Difference every value column of a CSV file at a fixed order",
		Long: `Read <file.csv>, take logs unless --no-log is set, and apply the FFD
kernel for order d. Each column is differenced independently and written
next to the input as <file>_<column>_fracdiff.csv, or under --output.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	f := cmd.Flags()
	f.Float64Var(&diffThreshold, "threshold", fracdiff.DefaultThreshold, "FFD weight cutoff")
	f.StringVar(&diffDateColumn, "date-column", "Date", "Date column name")
	f.StringSliceVar(&diffColumns, "columns", []string{"Close"}, "Value columns to difference")
	f.StringVar(&diffOutput, "output", "", "Output directory (default: next to the input)")
	f.BoolVar(&diffNoLog, "no-log", false, "Difference raw values instead of log values")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	path := args[0]
	d, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.Wrapf(err, "parse order %q", args[1])
	}

	opts := timeseries.DefaultCSVOptions()
	opts.DateColumn = diffDateColumn
	opts.ValueColumns = diffColumns

	frame, err := timeseries.LoadFrame(path, opts)
	if err != nil {
		return err
	}
	if !diffNoLog {
		for i := range frame.Columns {
			frame.Columns[i] = frame.Column(i).Log().Values
		}
	}

	out, err := fracdiff.FFDFrame(frame, d, diffThreshold)
	if err != nil {
		return err
	}

	dir := diffOutput
	if dir == "" {
		dir = filepath.Dir(path)
	}
	writer := timeseries.NewCSVWriter(dir)
	writer.Logger = logger
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, s := range out {
		if err := writer.Write(cmd.Context(), s, fmt.Sprintf("%s_%s_fracdiff.csv", base, s.Name)); err != nil {
			return err
		}
	}
	return nil
}
