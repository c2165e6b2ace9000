package crisis

import (
	"strings"
	"testing"
)

func TestResponseForSeverities(t *testing.T) {
	cases := []struct {
		severity Severity
		want     string
	}{
		{SeverityHigh, "crisis support resources"},
		{SeverityMedium, "support resources"},
		{SeverityLow, "here to listen"},
		{SeverityNone, "How are you feeling right now?"},
		{Severity("unexpected"), "How are you feeling right now?"},
	}

	for _, tc := range cases {
		got := ResponseFor(tc.severity)
		if got == "" {
			t.Fatalf("severity %s: empty response", tc.severity)
		}
		if !strings.Contains(got, tc.want) {
			t.Fatalf("severity %s: response %q missing %q", tc.severity, got, tc.want)
		}
	}
}
