package model

import "net/netip"

// Candidate is one endpoint to be tested as an HTTP forward proxy.
// Produced by the scanner (range mode) or the parser (file mode),
// consumed exactly once by a verification goroutine.
type Candidate struct {
	Addr netip.AddrPort
}

// Result is a verified, working proxy. Only successes are retained;
// the final report is sorted ascending by ResponseTimeMs.
type Result struct {
	IP             netip.Addr `json:"ip_address"`
	ResponseTimeMs int64      `json:"response_time_ms"`
	Location       string     `json:"location"` // "city, country", "Unknown" when the API omits a field
}

// Outcome is what one verification unit hands back to the pipeline.
// Exactly one of Result / Err / Fault is set:
//   Result: the candidate works as a proxy
//   Err:    the proxy test failed (connect, timeout, bad JSON, API "fail" status)
//   Fault:  the unit itself did not run to completion (recovered panic)
type Outcome struct {
	Endpoint netip.AddrPort
	Result   *Result
	Err      error
	Fault    error
}

// GeoResponse matches the fields we read from the ip-api.com JSON body.
type GeoResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	City    string `json:"city"`
	Message string `json:"message"`
}
