package internaldefs

import (
	dgpl "github.com/Tejaswanth2406/dgpl"
)

// CounterDef maps one engine counter to an exported metric name.
type CounterDef struct {
	ID   dgpl.MetricID
	Name string
	Help string
}

// HistogramDef maps one engine histogram to an exported metric name.
type HistogramDef struct {
	ID   dgpl.MetricID
	Name string
	Help string
}

// CounterDefs lists every engine counter in export order.
var CounterDefs = []CounterDef{
	{ID: dgpl.MetricRegisterSuccess, Name: "dgpl_register_success_total", Help: "Accounts created."},
	{ID: dgpl.MetricRegisterDuplicate, Name: "dgpl_register_duplicate_total", Help: "Registrations rejected for a taken username."},
	{ID: dgpl.MetricRegisterFailure, Name: "dgpl_register_failure_total", Help: "Registrations failed for any other reason."},
	{ID: dgpl.MetricLoginSuccess, Name: "dgpl_login_success_total", Help: "Successful logins."},
	{ID: dgpl.MetricLoginFailure, Name: "dgpl_login_failure_total", Help: "Rejected credentials."},
	{ID: dgpl.MetricTokenAccepted, Name: "dgpl_token_accepted_total", Help: "Tokens that passed verification."},
	{ID: dgpl.MetricTokenRejected, Name: "dgpl_token_rejected_total", Help: "Tokens rejected for any reason other than expiry."},
	{ID: dgpl.MetricTokenExpired, Name: "dgpl_token_expired_total", Help: "Tokens rejected as expired."},
	{ID: dgpl.MetricAuthorizeDenied, Name: "dgpl_authorize_denied_total", Help: "Role checks that failed."},
}

// HistogramDefs lists every engine histogram in export order.
var HistogramDefs = []HistogramDef{
	{ID: dgpl.MetricValidateLatency, Name: "dgpl_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, matching the
// engine's fixed bucket layout.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds rendered as instrument name suffixes
// for backends that cannot carry a le label.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
