package model

type Config struct {
	Subnet        string // CIDR to scan; mutually exclusive with InputFile
	InputFile     string // CSV candidate list; mutually exclusive with Subnet
	Port          int    // port to scan / default port for file records
	ScanTimeoutMs int    // per-host TCP connect timeout while scanning
	TestTimeoutS  int    // full proxy-test budget per candidate
	Verbose       bool
	OutputFile    string // optional export path
	OutputFormat  string // csv or json
}

// RunStats aggregates summary analytics for an entire run.
type RunStats struct {
	Candidates            int     `json:"candidates"`
	Working               int     `json:"working"`
	Failures              int     `json:"failures"`
	Faults                int     `json:"faults"`
	SuccessRatePct        float64 `json:"success_rate_pct"`
	AvgLatencyMs          float64 `json:"avg_latency_ms"`
	BestLatencyMs         int64   `json:"best_latency_ms"`
	TotalProcessingTimeMs int64   `json:"total_processing_time_ms"`
}
