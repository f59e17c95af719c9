package logging

import (
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	l, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected no-op logger")
	}
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")

	l, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) || !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn level logger")
	}
}

func TestNew_ExplicitLevelWins(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "error")

	l, err := New("DEBUG")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level logger")
	}
}

func TestInitializeAndGetLogger(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := Initialize("info"); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = Initialize("") })

	if !GetLogger().Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected global info logger")
	}
}

func TestLogWebSocketMessage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	LogWebSocketMessage(zap.New(core), "abc", "received", websocket.TextMessage, []byte(`{"type":"submit"}`))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["session"] != "abc" || fields["message_type"] != "text" || fields["content"] != `{"type":"submit"}` {
		t.Fatalf("unexpected fields %v", fields)
	}

	LogWebSocketMessage(nil, "abc", "sent", websocket.TextMessage, nil)
}

func TestTruncate_KeepsRuneBoundaries(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "short", limit: 10, want: "short"},
		{in: "abcdef", limit: 3, want: "abc..."},
		{in: "ñañañ", limit: 2, want: "ña..."},
		{in: "日本語テキスト", limit: 3, want: "日本語..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
