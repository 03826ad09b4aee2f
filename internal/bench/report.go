package bench

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var scenarioHeader = color.New(color.FgCyan, color.Bold)

// WriteReport renders one table per scenario, preserving result order.
func WriteReport(w io.Writer, results []Result) {
	descriptions := make(map[string]string)
	for _, sc := range Scenarios() {
		descriptions[sc.Name] = sc.Description
	}

	var open string
	var table *tablewriter.Table
	flush := func() {
		if table != nil {
			table.Render()
			fmt.Fprintln(w)
		}
	}
	for _, r := range results {
		if r.Scenario != open {
			flush()
			open = r.Scenario
			scenarioHeader.Fprintf(w, "%s", open)
			if desc := descriptions[open]; desc != "" {
				fmt.Fprintf(w, "  (%s)", desc)
			}
			fmt.Fprintln(w)
			table = tablewriter.NewWriter(w)
			table.SetHeader([]string{"Workload", "Iters", "Total Time", "Allocs", "Deallocs", "Max Bytes", "Live Bytes"})
			table.SetAutoFormatHeaders(false)
			table.SetAlignment(tablewriter.ALIGN_RIGHT)
		}
		table.Append(resultRow(r))
	}
	flush()
}

func resultRow(r Result) []string {
	row := []string{
		r.Workload,
		strconv.Itoa(r.Iterations),
		r.Elapsed.Round(10 * time.Microsecond).String(),
	}
	if r.Metrics == nil {
		return append(row, "-", "-", "-", "-")
	}
	return append(row,
		strconv.FormatInt(r.Metrics.NumAllocs, 10),
		strconv.FormatInt(r.Metrics.NumDeallocs, 10),
		humanize.IBytes(uint64(r.Metrics.MaxBytes)),
		humanize.IBytes(uint64(r.Metrics.LiveBytes)),
	)
}
