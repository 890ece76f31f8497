package progress

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"github.com/August26/proxyscan-go/internal/model"
)

const spinnerTemplate = `{{ cycle . "." ".." "..." "...." }} scanning subnet`

var (
	tagFound   = color.New(color.FgCyan, color.Bold).Sprint("FOUND")
	tagSuccess = color.New(color.FgGreen, color.Bold).Sprint("SUCCESS")
	tagGeo     = color.New(color.FgBlue, color.Bold).Sprint("GEO")
	tagFail    = color.New(color.FgRed, color.Bold).Sprint("FAIL")
	tagError   = color.New(color.FgYellow, color.Bold).Sprint("ERROR")
)

// Display is the console progress indicator plus the optional real-time
// status lines. File mode gets a determinate bar sized to the record count;
// subnet mode gets an indeterminate spinner since the number of hits is
// unknown until the sweep ends.
type Display struct {
	bar         *pb.ProgressBar
	w           io.Writer
	verbose     bool
	determinate bool
}

// NewBar returns a determinate display for a known candidate count.
func NewBar(total int, verbose bool, w io.Writer) *Display {
	bar := pb.New(total)
	bar.SetWriter(w)
	bar.Start()
	return &Display{bar: bar, w: w, verbose: verbose, determinate: true}
}

// NewSpinner returns an indeterminate display for an open-ended sweep.
func NewSpinner(verbose bool, w io.Writer) *Display {
	bar := pb.ProgressBarTemplate(spinnerTemplate).New(0)
	bar.SetWriter(w)
	bar.Start()
	return &Display{bar: bar, w: w, verbose: verbose}
}

func (d *Display) Found(addr netip.AddrPort) {
	d.logf("[%s]   Potential proxy at %s", tagFound, addr)
}

func (d *Display) Success(res model.Result) {
	d.logf("[%s] %s connected in %dms", tagSuccess, res.IP, res.ResponseTimeMs)
	d.logf("[%s]      %s located in %s", tagGeo, res.IP, res.Location)
}

func (d *Display) Failure(addr netip.AddrPort, err error) {
	d.logf("[%s]     %s: %v", tagFail, addr, err)
}

func (d *Display) Fault(err error) {
	d.logf("[%s]   A test task failed: %v", tagError, err)
}

// Completed advances the bar by one finished verification. The spinner has no
// position to advance.
func (d *Display) Completed() {
	if d.determinate {
		d.bar.Increment()
	}
}

// Finish stops the indicator once the pipeline has drained.
func (d *Display) Finish() {
	d.bar.Finish()
}

func (d *Display) logf(format string, args ...any) {
	if d.verbose {
		fmt.Fprintf(d.w, format+"\n", args...)
	}
}
