package respond

import "testing"

func TestParseAccept(t *testing.T) {
	ranges := parseAccept("application/json;q=0.5;q=0.9, , text")
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].q != 0.9 {
		t.Fatalf("expected last q value to win, got %f", ranges[0].q)
	}
	if ranges[1].typ != "text" || ranges[1].subtype != "*" {
		t.Fatalf("expected text/*, got %s/%s", ranges[1].typ, ranges[1].subtype)
	}
}

func TestParseAcceptInvalidQ(t *testing.T) {
	for _, header := range []string{"application/json;q=invalid", "application/json;q=2.0", "application/json;q=-0.5"} {
		ranges := parseAccept(header)
		if len(ranges) != 1 || ranges[0].q != 1.0 {
			t.Fatalf("%q: expected single range with q=1, got %+v", header, ranges)
		}
	}
}

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		accept string
		cbor   bool
	}{
		{"", false},
		{"*/*", false},
		{"application/*", false},
		{"application/json", false},
		{"application/cbor", true},
		{"application/problem+cbor", true},
		{"application/*+cbor", true},
		{"application/*+json", false},
		{"text/html", false},
		{"image/png, text/plain", false},
		{"application/cbor, application/json", false},
		{"application/cbor, application/json;q=0.5", true},
		{"application/cbor;q=0, application/json", false},
		{"application/json;q=0, application/cbor", true},
		{"application/json;q=0, application/cbor;q=0", false},
		{"*/*;q=0", false},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			if got := selectFormat(tt.accept); got != tt.cbor {
				t.Fatalf("selectFormat(%q) = %v, want %v", tt.accept, got, tt.cbor)
			}
		})
	}
}
