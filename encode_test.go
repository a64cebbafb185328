package pnlreport

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeReportContext(t *testing.T) {
	rc := Build(Input{Records: sampleRecords()})

	var buf bytes.Buffer
	if err := EncodeReportContext(&buf, rc); err != nil {
		t.Fatalf("EncodeReportContext() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	base := got["base_totals"].(map[string]any)
	if base["pnl"] != 250.0 || base["pnl_pct"] != 12.5 || base["win_count"] != 1.0 {
		t.Errorf("base_totals = %v", base)
	}
	if got["narrative_source"] != "generated" {
		t.Errorf("narrative_source = %v, want generated", got["narrative_source"])
	}
	if scenarios, ok := got["scenarios"].([]any); !ok || len(scenarios) != 0 {
		t.Errorf("scenarios = %v, want []", got["scenarios"])
	}

	// keys keep their declaration order
	out := buf.String()
	order := []string{`"base_totals"`, `"longs"`, `"shorts"`, `"positions"`, `"scenarios"`, `"quality_findings"`, `"narrative_text"`}
	last := -1
	for _, key := range order {
		i := strings.Index(out, key)
		if i <= last {
			t.Errorf("key %s out of order in\n%s", key, out)
		}
		last = i
	}
	if !strings.Contains(out, `"symbol": "AAPL"`) {
		t.Errorf("positions are not flattened:\n%s", out)
	}
}
