package pnlreport

import "fmt"

// Severity classifies a Finding.
type Severity int

const (
	// Info findings describe an expected situation worth mentioning.
	Info Severity = iota
	// Warning findings describe data that was used but is likely wrong.
	Warning
	// Error findings describe data that was excluded from the report.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Finding is a non-fatal data-quality note produced while building a report.
type Finding struct {
	Severity Severity
	Message  string
}

func (f Finding) String() string { return f.Message }

// Findings is an ordered list of findings.
type Findings []Finding

// Add appends a new finding to fs.
func (fs *Findings) Add(s Severity, format string, args ...any) {
	*fs = append(*fs, Finding{Severity: s, Message: fmt.Sprintf(format, args...)})
}

// Merge concatenates findings lists in order into a new list.
func Merge(lists ...Findings) Findings {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make(Findings, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Dedup returns the findings with duplicate messages removed. The first
// occurrence wins and the insertion order is preserved.
func (fs Findings) Dedup() Findings {
	seen := make(map[string]struct{}, len(fs))
	out := make(Findings, 0, len(fs))
	for _, f := range fs {
		if _, ok := seen[f.Message]; ok {
			continue
		}
		seen[f.Message] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Strings returns the messages, in order.
func (fs Findings) Strings() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Message
	}
	return out
}

// Has reports whether a finding with this exact message exists.
func (fs Findings) Has(message string) bool {
	for _, f := range fs {
		if f.Message == message {
			return true
		}
	}
	return false
}
