package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/August26/proxyscan-go/internal/analytics"
	"github.com/August26/proxyscan-go/internal/checker"
	"github.com/August26/proxyscan-go/internal/logging"
	"github.com/August26/proxyscan-go/internal/model"
	"github.com/August26/proxyscan-go/internal/output"
	"github.com/August26/proxyscan-go/internal/parser"
	"github.com/August26/proxyscan-go/internal/pipeline"
	"github.com/August26/proxyscan-go/internal/progress"
	"github.com/August26/proxyscan-go/internal/scanner"
)

func main() {
	var cfg model.Config

	flag.StringVar(&cfg.Subnet, "subnet", "", "subnet to scan in CIDR notation (e.g. 192.168.1.0/24)")
	flag.StringVar(&cfg.InputFile, "input", "", "CSV file of candidate proxies to test (skips scanning)")
	flag.IntVar(&cfg.Port, "port", 7890, "port to scan, and default port for file records")
	flag.IntVar(&cfg.ScanTimeoutMs, "scan-timeout", 200, "TCP connect timeout per scanned host, in milliseconds")
	flag.IntVar(&cfg.TestTimeoutS, "test-timeout", 10, "timeout for each proxy test, in seconds")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "print detailed real-time logs")
	flag.StringVar(&cfg.OutputFile, "output", "", "optional path to save results")
	flag.StringVar(&cfg.OutputFormat, "format", "csv", "output format: csv | json")

	flag.Parse()

	log := logging.NewLogger(cfg.Verbose)

	if (cfg.Subnet == "") == (cfg.InputFile == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -subnet or -input is required")
		os.Exit(1)
	}

	log.Debug("starting proxyscan-go",
		"subnet", cfg.Subnet,
		"input", cfg.InputFile,
		"port", cfg.Port,
		"scan_timeout_ms", cfg.ScanTimeoutMs,
		"test_timeout_s", cfg.TestTimeoutS,
	)

	// Progress bar for a fixed-size file, spinner for an open-ended sweep.
	// Counting the file up front also makes an unreadable or malformed
	// candidate list a hard error before anything runs.
	var disp *progress.Display
	if cfg.InputFile != "" {
		total, err := parser.CountRecords(cfg.InputFile)
		if err != nil {
			log.Error("failed to read candidate list", "err", err, "path", cfg.InputFile)
			os.Exit(1)
		}
		disp = progress.NewBar(total, cfg.Verbose, os.Stderr)
	} else {
		disp = progress.NewSpinner(cfg.Verbose, os.Stderr)
	}

	candidates := make(chan model.Candidate, pipeline.ChannelCapacity)

	prodErr := make(chan error, 1)
	go func() {
		if cfg.Subnet != "" {
			scanner.Scan(cfg.Subnet, cfg.Port, time.Duration(cfg.ScanTimeoutMs)*time.Millisecond, log, candidates)
			prodErr <- nil
			return
		}
		prodErr <- parser.Read(cfg.InputFile, cfg.Port, candidates)
	}()

	verify := checker.New(time.Duration(cfg.TestTimeoutS) * time.Second)

	start := time.Now()
	results, tally := pipeline.Run(context.Background(), candidates, verify.Verify, disp)
	disp.Finish()

	if err := <-prodErr; err != nil {
		log.Error("failed to read candidate list", "err", err, "path", cfg.InputFile)
		os.Exit(1)
	}

	stats := analytics.Compute(results, tally, time.Since(start))

	if len(results) == 0 {
		output.PrintNoResults(os.Stdout)
	} else {
		fmt.Println("\n--- Final Results ---")
		output.PrintResultsTable(os.Stdout, results)

		if cfg.OutputFile != "" {
			if err := output.WriteFile(cfg.OutputFile, cfg.OutputFormat, results); err != nil {
				log.Error("failed to write output file", "err", err, "path", cfg.OutputFile)
				os.Exit(1)
			}
			fmt.Printf("\nResults saved to %s\n", cfg.OutputFile)
		}
	}

	output.PrintSummary(os.Stdout, stats)
}
