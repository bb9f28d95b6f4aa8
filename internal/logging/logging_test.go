package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-filecms/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, DocumentsModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}

	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, WebModule)

	if len(provider.requested) != 1 || provider.requested[0] != WebModule {
		t.Fatalf("expected module %s requested, got %v", WebModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields applied once, got %d", len(rec.fields))
	}
	if got, ok := rec.fields[0]["module"]; !ok || got != WebModule {
		t.Fatalf("expected module field %s, got %v", WebModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}

	ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != RootModule {
		t.Fatalf("expected root module fallback, got %v", provider.requested)
	}
}

func TestWithFieldsSkipsPlainLoggers(t *testing.T) {
	logger := WithFields(NoOp(), map[string]any{"key": "value"})
	if logger == nil {
		t.Fatal("expected a logger back")
	}

	if got := WithFields(nil, map[string]any{"key": "value"}); got != nil {
		t.Fatalf("expected nil passthrough, got %T", got)
	}

	base := NoOp()
	if got := WithFields(base, nil); got != base {
		t.Fatalf("expected empty fields to return the logger unchanged")
	}
}

func TestWithFieldsCopiesMap(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"key": "value"}

	WithFields(rec, fields)
	fields["key"] = "mutated"

	if rec.fields[0]["key"] != "value" {
		t.Fatalf("expected fields copied before mutation, got %v", rec.fields[0])
	}
}
