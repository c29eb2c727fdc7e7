package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger(t *testing.T, opts Options) (*Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("LOG_FORMAT", "")
	var buf bytes.Buffer
	opts.Output = &buf
	return New(opts), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestInfoCarriesServiceName(t *testing.T) {
	log, buf := newTestLogger(t, Options{ServiceName: "tillcore"})

	log.Info(context.Background(), "catalog loaded")

	entry := decodeLine(t, buf)
	if entry["service"] != "tillcore" {
		t.Fatalf("service = %v", entry["service"])
	}
	if entry["message"] != "catalog loaded" {
		t.Fatalf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Fatalf("level = %v", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	log, buf := newTestLogger(t, Options{Level: zerolog.WarnLevel})

	log.Debug(context.Background(), "dropped")
	log.Info(context.Background(), "dropped too")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output below warn level: %q", buf.String())
	}

	log.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("warn entry missing")
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	log, buf := newTestLogger(t, Options{ServiceName: "tillcore"})

	ctx := log.WithSaleID(context.Background(), "sale-123")
	ctx = log.WithCatalogPath(ctx, "products.txt")
	log.Info(ctx, "checkout complete")

	entry := decodeLine(t, buf)
	if entry["sale_id"] != "sale-123" {
		t.Fatalf("sale_id = %v", entry["sale_id"])
	}
	if entry["catalog_path"] != "products.txt" {
		t.Fatalf("catalog_path = %v", entry["catalog_path"])
	}
}

func TestContextFieldsDoNotLeakAcrossContexts(t *testing.T) {
	log, buf := newTestLogger(t, Options{})

	_ = log.WithLedgerPath(context.Background(), "sales.txt")
	log.Info(context.Background(), "plain entry")

	entry := decodeLine(t, buf)
	if _, ok := entry["ledger_path"]; ok {
		t.Fatal("ledger_path leaked into an unrelated context")
	}
}

func TestWithFields(t *testing.T) {
	log, buf := newTestLogger(t, Options{})

	ctx := log.WithFields(context.Background(), map[string]any{
		"format": "csv",
		"items":  12,
	})
	log.Info(ctx, "catalog converted")

	entry := decodeLine(t, buf)
	if entry["format"] != "csv" {
		t.Fatalf("format = %v", entry["format"])
	}
	if entry["items"] != float64(12) {
		t.Fatalf("items = %v", entry["items"])
	}
}

func TestErrorIncludesCauseAndStack(t *testing.T) {
	log, buf := newTestLogger(t, Options{})

	log.Error(context.Background(), "ledger append failed", fmt.Errorf("disk full"))

	entry := decodeLine(t, buf)
	if entry["error"] != "disk full" {
		t.Fatalf("error = %v", entry["error"])
	}
	stack, ok := entry["stack"].(string)
	if !ok || stack == "" {
		t.Fatal("error entry missing stack")
	}
}

func TestWarnStackOptIn(t *testing.T) {
	log, buf := newTestLogger(t, Options{WarnStack: true})
	log.Warn(context.Background(), "catalog save retried")
	entry := decodeLine(t, buf)
	if _, ok := entry["stack"].(string); !ok {
		t.Fatal("warn entry missing stack with WarnStack enabled")
	}

	log, buf = newTestLogger(t, Options{})
	log.Warn(context.Background(), "catalog save retried")
	entry = decodeLine(t, buf)
	if _, ok := entry["stack"]; ok {
		t.Fatal("warn entry carries stack without WarnStack")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		"error":   zerolog.ErrorLevel,
		"Info":    zerolog.InfoLevel,
		"trace":   zerolog.TraceLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"unknown": zerolog.InfoLevel,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestNilContextUsesBase(t *testing.T) {
	log, buf := newTestLogger(t, Options{ServiceName: "tillcore"})
	log.Info(nil, "tolerates nil context") //nolint:staticcheck
	entry := decodeLine(t, buf)
	if entry["message"] != "tolerates nil context" {
		t.Fatalf("message = %v", entry["message"])
	}
}
