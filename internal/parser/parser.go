package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/August26/proxyscan-go/internal/model"
)

// column header the input file must carry for the address field.
const addrColumn = "IP Address"

// CountRecords reads the whole candidate file once and returns the number of
// data rows. It is used to size the progress bar before the pipeline starts,
// which also means an unreadable or structurally malformed file fails the run
// up front instead of mid-scan.
func CountRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	_, ok, err := readHeader(r)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	n := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read input file: %w", err)
		}
		n++
	}
	return n, nil
}

// Read streams candidates from the CSV file into out, in file order, and
// closes out when the file is exhausted. Address values are either "ip:port"
// or a bare "ip", in which case defaultPort applies. Rows whose address value
// parses as neither are skipped silently; the list is assumed pre-filtered.
func Read(path string, defaultPort int, out chan<- model.Candidate) error {
	defer close(out)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	col, ok, err := readHeader(r)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		if col >= len(rec) {
			continue
		}

		addr, ok := parseAddr(strings.TrimSpace(rec[col]), defaultPort)
		if !ok {
			continue
		}
		out <- model.Candidate{Addr: addr}
	}
}

// readHeader consumes the header row and returns the index of the address
// column. A completely empty file is not an error, it just has no records;
// a header that lacks the address column is.
func readHeader(r *csv.Reader) (int, bool, error) {
	header, err := r.Read()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read input header: %w", err)
	}
	for i, name := range header {
		if strings.TrimSpace(name) == addrColumn {
			return i, true, nil
		}
	}
	return 0, false, fmt.Errorf("input file has no %q column", addrColumn)
}

// parseAddr accepts "ip:port" and bare "ip" forms.
func parseAddr(s string, defaultPort int) (netip.AddrPort, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap, true
	}
	if ip, err := netip.ParseAddr(s); err == nil {
		return netip.AddrPortFrom(ip, uint16(defaultPort)), true
	}
	return netip.AddrPort{}, false
}
