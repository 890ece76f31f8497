package pipeline

import (
	"context"
	"fmt"
	"net/netip"
	"sort"

	"github.com/August26/proxyscan-go/internal/model"
)

// ChannelCapacity bounds the candidate channel between the address source and
// the verifier pool. Range scanning is bursty; the bound is what stops
// discovery from running arbitrarily far ahead of verification.
const ChannelCapacity = 200

// VerifyFunc runs the proxy test for one candidate and returns its outcome.
type VerifyFunc func(ctx context.Context, c model.Candidate) model.Outcome

// Reporter receives pipeline events in real time: a candidate entering the
// pool, each classified outcome, and a completion tick per finished unit.
type Reporter interface {
	Found(addr netip.AddrPort)
	Success(res model.Result)
	Failure(addr netip.AddrPort, err error)
	Fault(err error)
	Completed()
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Found(netip.AddrPort)          {}
func (NopReporter) Success(model.Result)          {}
func (NopReporter) Failure(netip.AddrPort, error) {}
func (NopReporter) Fault(error)                   {}
func (NopReporter) Completed()                    {}

// Tally counts every outcome class seen during a run.
type Tally struct {
	Candidates int
	Failures   int
	Faults     int
}

// Run is the aggregator loop. It multiplexes two events with no preference
// between them: a candidate arriving on the channel, for which it immediately
// spawns one verification goroutine, and a verification finishing, whose
// outcome it classifies. New candidates keep being accepted while
// verifications are outstanding, and outcomes keep draining after the source
// closes; the loop exits only when the channel is closed and drained and
// nothing is outstanding.
//
// Each candidate is owned by exactly one goroutine. A goroutine that panics
// instead of returning an outcome is surfaced as a fault, not a crash of the
// run. Successes are returned sorted ascending by response time; ties keep
// completion order.
func Run(ctx context.Context, candidates <-chan model.Candidate, verify VerifyFunc, rep Reporter) ([]model.Result, Tally) {
	outcomes := make(chan model.Outcome)
	outstanding := 0

	var tally Tally
	var successes []model.Result

	in := candidates
	for in != nil || outstanding > 0 {
		select {
		case c, ok := <-in:
			if !ok {
				// End of candidates. Receiving on a nil channel blocks
				// forever, which leaves only the outcome case live.
				in = nil
				continue
			}
			rep.Found(c.Addr)
			tally.Candidates++
			outstanding++
			go runUnit(ctx, c, verify, outcomes)

		case o := <-outcomes:
			outstanding--
			rep.Completed()
			switch {
			case o.Fault != nil:
				tally.Faults++
				rep.Fault(o.Fault)
			case o.Err != nil:
				tally.Failures++
				rep.Failure(o.Endpoint, o.Err)
			default:
				successes = append(successes, *o.Result)
				rep.Success(*o.Result)
			}
		}
	}

	sort.SliceStable(successes, func(i, j int) bool {
		return successes[i].ResponseTimeMs < successes[j].ResponseTimeMs
	})
	return successes, tally
}

// runUnit executes one verification and always delivers exactly one outcome,
// converting a panic into a fault so the aggregator never leaks an
// outstanding slot.
func runUnit(ctx context.Context, c model.Candidate, verify VerifyFunc, outcomes chan<- model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcomes <- model.Outcome{
				Endpoint: c.Addr,
				Fault:    fmt.Errorf("verification task crashed: %v", r),
			}
		}
	}()
	outcomes <- verify(ctx, c)
}
