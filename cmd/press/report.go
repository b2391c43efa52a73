package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/presskit/press"
)

type report struct {
	Codec         string
	Original      int
	Packed        int
	Elapsed       time.Duration
	DecodeElapsed time.Duration
	Err           error
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// humanSize formats n bytes with a binary unit prefix.
func humanSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[unit])
}

func printReport(w io.Writer, r report) {
	fmt.Fprintf(w, "%s: %s -> %s, ratio %.2f%%, %v\n",
		r.Codec, humanSize(r.Original), humanSize(r.Packed),
		press.Ratio(r.Original, r.Packed), r.Elapsed.Round(time.Microsecond))
}

func printTable(w io.Writer, results []report) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "codec\tsize\tratio\tcompress\tdecompress\t")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%v\n", r.Codec, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%v\t%v\t\n",
			r.Codec, humanSize(r.Packed), press.Ratio(r.Original, r.Packed),
			r.Elapsed.Round(time.Microsecond), r.DecodeElapsed.Round(time.Microsecond))
	}
	tw.Flush()
}
