package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/August26/proxyscan-go/internal/model"
)

// PrintResultsTable prints the final ranked table of working proxies.
// Callers are expected to have sorted results by response time already.
func PrintResultsTable(w io.Writer, results []model.Result) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "RANK\tIP ADDRESS\tRESPONSE TIME\tLOCATION")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%d ms\t%s\n", i+1, r.IP, r.ResponseTimeMs, r.Location)
	}

	tw.Flush()
}

// PrintNoResults is the closing message for an empty result set.
func PrintNoResults(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "No working HTTP proxies were found.")
}

// PrintSummary prints the aggregated run stats.
func PrintSummary(w io.Writer, stats model.RunStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Candidates tested:   %d\n", stats.Candidates)
	fmt.Fprintf(w, "  Working proxies:     %d\n", stats.Working)
	fmt.Fprintf(w, "  Failed checks:       %d\n", stats.Failures)
	fmt.Fprintf(w, "  Task faults:         %d\n", stats.Faults)
	fmt.Fprintf(w, "  Success rate:        %.1f%%\n", stats.SuccessRatePct)
	if stats.Working > 0 {
		fmt.Fprintf(w, "  Avg response time:   %.1f ms\n", stats.AvgLatencyMs)
		fmt.Fprintf(w, "  Best response time:  %d ms\n", stats.BestLatencyMs)
	}
	fmt.Fprintf(w, "  Run time:            %.2f s\n", float64(stats.TotalProcessingTimeMs)/1000.0)
}

// WriteFile exports the sorted results to path in csv or json format.
func WriteFile(path string, format string, results []model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	switch format {
	case "csv":
		return writeCSV(f, results)
	case "json":
		return writeJSON(f, results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeCSV writes one row per working proxy, mirroring the table order.
func writeCSV(w io.Writer, results []model.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"IP Address", "Response Time (ms)", "Location"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.IP.String(),
			fmt.Sprintf("%d", r.ResponseTimeMs),
			r.Location,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

func writeJSON(w io.Writer, results []model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
