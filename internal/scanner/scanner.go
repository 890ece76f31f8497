package scanner

import (
	"log/slog"
	"net"
	"net/netip"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go4.org/netipx"

	"github.com/August26/proxyscan-go/internal/model"
)

// Scan probes every usable host in subnet for an open TCP port and emits the
// hits into out as candidates, closing out once the sweep finishes. Probes run
// on a worker pool sized to the machine's compute units; a host that refuses,
// times out or is unreachable is dropped without a trace. Emission order is
// whatever order the probes happen to succeed in.
//
// A subnet that fails to parse yields an empty sweep rather than a failed run.
func Scan(subnet string, port int, timeout time.Duration, log *slog.Logger, out chan<- model.Candidate) {
	defer close(out)

	prefix, err := netip.ParsePrefix(subnet)
	if err != nil {
		log.Debug("subnet did not parse, nothing to scan", "subnet", subnet, "err", err)
		return
	}

	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		log.Debug("scan pool unavailable", "err", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, ip := range Hosts(prefix.Masked()) {
		addr := netip.AddrPortFrom(ip, uint16(port))
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if probe(addr, timeout) {
				// Blocking send: the channel's bound is what keeps the sweep
				// from racing ahead of verification.
				out <- model.Candidate{Addr: addr}
			}
		})
		if err != nil {
			wg.Done()
		}
	}
	wg.Wait()
}

// Hosts enumerates the usable addresses of a prefix in order. For IPv4
// prefixes wider than /31 the network and broadcast addresses are excluded;
// /31 and /32 (and IPv6) yield every address.
func Hosts(p netip.Prefix) []netip.Addr {
	r := netipx.RangeOfPrefix(p)
	if !r.IsValid() {
		return nil
	}

	from, to := r.From(), r.To()
	if p.Addr().Is4() && p.Bits() < 31 {
		from = from.Next()
		to = to.Prev()
	}

	var hosts []netip.Addr
	for a := from; a.IsValid() && a.Compare(to) <= 0; a = a.Next() {
		hosts = append(hosts, a)
	}
	return hosts
}

// probe reports whether a TCP connect to addr succeeds within timeout.
func probe(addr netip.AddrPort, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", addr.String(), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
