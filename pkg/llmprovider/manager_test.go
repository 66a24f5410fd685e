package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockProvider struct {
	name     string
	class    Class
	calls    int
	generate func(calls int) (*Response, error)
	stream   func(onChunk ChunkHandler) (*Response, error)
}

func (p *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	p.calls++
	return p.generate(p.calls)
}

func (p *mockProvider) GenerateStream(ctx context.Context, req *Request, onChunk ChunkHandler) (*Response, error) {
	p.calls++
	return p.stream(onChunk)
}

func (p *mockProvider) Name() string  { return p.name }
func (p *mockProvider) Model() string { return p.name + "-model" }
func (p *mockProvider) Class() Class  { return p.class }

func okResponse(content string) (*Response, error) {
	return &Response{Content: content, Usage: &Usage{TotalTokens: 10}}, nil
}

func TestGenerateContentFallback(t *testing.T) {
	t.Run("First Provider Succeeds", func(t *testing.T) {
		primary := &mockProvider{name: "primary", class: ClassHosted,
			generate: func(int) (*Response, error) { return okResponse("hello") }}
		backup := &mockProvider{name: "backup", class: ClassHosted,
			generate: func(int) (*Response, error) { return okResponse("unused") }}

		m := NewManager([]Provider{primary, backup},
			&Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})

		resp, err := m.GenerateContent(context.Background(), &Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content != "hello" || resp.ProviderName != "primary" {
			t.Errorf("unexpected response %+v", resp)
		}
		if backup.calls != 0 {
			t.Errorf("backup should not be called, got %d calls", backup.calls)
		}
	})

	t.Run("Falls Back On Failure", func(t *testing.T) {
		primary := &mockProvider{name: "primary", class: ClassHosted,
			generate: func(int) (*Response, error) { return nil, errors.New("boom") }}
		backup := &mockProvider{name: "backup", class: ClassHosted,
			generate: func(int) (*Response, error) { return okResponse("saved") }}

		m := NewManager([]Provider{primary, backup},
			&Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})

		resp, err := m.GenerateContent(context.Background(), &Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ProviderName != "backup" {
			t.Errorf("expected backup provider, got %s", resp.ProviderName)
		}
	})

	t.Run("Fallback Disabled Stops After First", func(t *testing.T) {
		primary := &mockProvider{name: "primary", class: ClassHosted,
			generate: func(int) (*Response, error) { return nil, errors.New("boom") }}
		backup := &mockProvider{name: "backup", class: ClassHosted,
			generate: func(int) (*Response, error) { return okResponse("unused") }}

		m := NewManager([]Provider{primary, backup},
			&Config{FallbackEnabled: false, RetryAttempts: 1}, &mockLogger{})

		_, err := m.GenerateContent(context.Background(), &Request{})
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
		if backup.calls != 0 {
			t.Errorf("backup should not be called when fallback disabled")
		}
	})

	t.Run("Retries Before Falling Back", func(t *testing.T) {
		flaky := &mockProvider{name: "flaky", class: ClassHosted,
			generate: func(calls int) (*Response, error) {
				if calls < 2 {
					return nil, errors.New("transient")
				}
				return okResponse("recovered")
			}}

		m := NewManager([]Provider{flaky},
			&Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Millisecond}, &mockLogger{})

		resp, err := m.GenerateContent(context.Background(), &Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content != "recovered" {
			t.Errorf("expected recovered content, got %q", resp.Content)
		}
		if flaky.calls != 2 {
			t.Errorf("expected 2 attempts, got %d", flaky.calls)
		}
	})

	t.Run("No Providers", func(t *testing.T) {
		m := NewManager(nil, &Config{}, &mockLogger{})
		_, err := m.GenerateContent(context.Background(), &Request{})
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})
}

func TestGenerateStream(t *testing.T) {
	t.Run("Chunks Forwarded And Accumulated", func(t *testing.T) {
		p := &mockProvider{name: "p", class: ClassHosted,
			stream: func(onChunk ChunkHandler) (*Response, error) {
				for _, c := range []string{"a", "b", "c"} {
					if err := onChunk(c); err != nil {
						return nil, err
					}
				}
				return &Response{Content: "abc", Usage: &Usage{}}, nil
			}}

		m := NewManager([]Provider{p}, &Config{FallbackEnabled: true}, &mockLogger{})

		var got []string
		resp, err := m.GenerateStream(context.Background(), &Request{}, func(chunk string) error {
			got = append(got, chunk)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content != "abc" || len(got) != 3 {
			t.Errorf("unexpected stream result %+v chunks=%v", resp, got)
		}
	})

	t.Run("No Fallback After First Chunk", func(t *testing.T) {
		leaky := &mockProvider{name: "leaky", class: ClassHosted,
			stream: func(onChunk ChunkHandler) (*Response, error) {
				onChunk("partial")
				return nil, errors.New("mid-stream failure")
			}}
		backup := &mockProvider{name: "backup", class: ClassHosted,
			stream: func(onChunk ChunkHandler) (*Response, error) {
				return &Response{Content: "unused", Usage: &Usage{}}, nil
			}}

		m := NewManager([]Provider{leaky, backup}, &Config{FallbackEnabled: true}, &mockLogger{})

		_, err := m.GenerateStream(context.Background(), &Request{}, func(string) error { return nil })
		if err == nil {
			t.Fatal("expected mid-stream error")
		}
		if backup.calls != 0 {
			t.Errorf("backup must not run after chunks were emitted")
		}
	})

	t.Run("Fallback Before First Chunk", func(t *testing.T) {
		dead := &mockProvider{name: "dead", class: ClassHosted,
			stream: func(onChunk ChunkHandler) (*Response, error) {
				return nil, errors.New("connect refused")
			}}
		backup := &mockProvider{name: "backup", class: ClassHosted,
			stream: func(onChunk ChunkHandler) (*Response, error) {
				onChunk("ok")
				return &Response{Content: "ok", Usage: &Usage{}}, nil
			}}

		m := NewManager([]Provider{dead, backup}, &Config{FallbackEnabled: true}, &mockLogger{})

		resp, err := m.GenerateStream(context.Background(), &Request{}, func(string) error { return nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ProviderName != "backup" {
			t.Errorf("expected backup, got %s", resp.ProviderName)
		}
	})
}

func TestPrimaryClass(t *testing.T) {
	local := &mockProvider{name: "ollama", class: ClassLocal}
	hosted := &mockProvider{name: "gemini", class: ClassHosted}

	m := NewManager([]Provider{local, hosted}, &Config{}, &mockLogger{})
	if m.PrimaryClass() != ClassLocal {
		t.Errorf("expected ClassLocal, got %s", m.PrimaryClass())
	}

	empty := NewManager(nil, &Config{}, &mockLogger{})
	if empty.PrimaryClass() != ClassHosted {
		t.Errorf("empty manager should default to hosted")
	}
}
