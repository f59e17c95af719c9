package contactform

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

func dialLive(t *testing.T, fns ...OptionFn) *websocket.Conn {
	t.Helper()
	mux := http.NewServeMux()
	paths, err := RegisterRoutes(mux, "", fns...)
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + paths.Live
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, frame Frame) Reply {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply Reply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	return reply
}

func replyFields(reply Reply) []string {
	out := []string{}
	for _, v := range reply.Errors {
		out = append(out, v.Field)
	}
	return out
}

func TestLive_InputShowsFieldError(t *testing.T) {
	conn := dialLive(t)

	reply := exchange(t, conn, Frame{Type: FrameInput, Field: "firstName", Value: "Fi"})
	if reply.Session == "" {
		t.Fatalf("expected session id")
	}
	if diff := cmp.Diff([]string{"firstName"}, replyFields(reply)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if reply.Errors[0].Message != "firstName must be at least 5 characters" {
		t.Fatalf("unexpected message %q", reply.Errors[0].Message)
	}
	if reply.OK || reply.Submitted != nil {
		t.Fatalf("unexpected reply %#v", reply)
	}

	next := exchange(t, conn, Frame{Type: FrameInput, Field: "firstName", Value: "Fiveo"})
	if len(next.Errors) != 0 {
		t.Fatalf("expected no visible errors, got %v", next.Errors)
	}
	if next.Session != reply.Session {
		t.Fatalf("session id changed between frames")
	}
}

func TestLive_SubmitFlow(t *testing.T) {
	conn := dialLive(t)

	reply := exchange(t, conn, Frame{Type: FrameSubmit})
	if diff := cmp.Diff([]string{"firstName", "lastName", "email"}, replyFields(reply)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	exchange(t, conn, Frame{Type: FrameInput, Field: "firstName", Value: "Fiveo"})
	exchange(t, conn, Frame{Type: FrameInput, Field: "lastName", Value: "Lastname"})
	exchange(t, conn, Frame{Type: FrameInput, Field: "email", Value: "a@b.com"})
	reply = exchange(t, conn, Frame{Type: FrameSubmit})
	if !reply.OK || reply.Submitted == nil {
		t.Fatalf("expected accepted submission, got %#v", reply)
	}
	if reply.Submitted.Email != "a@b.com" {
		t.Fatalf("unexpected submitted email %q", reply.Submitted.Email)
	}

	reply = exchange(t, conn, Frame{Type: FrameReset})
	if reply.Submitted != nil || len(reply.Errors) != 0 {
		t.Fatalf("expected reset state, got %#v", reply)
	}
}

func TestLive_BadFrames(t *testing.T) {
	conn := dialLive(t)

	reply := exchange(t, conn, Frame{Type: "shout"})
	if !strings.Contains(reply.Error, "unknown frame type") {
		t.Fatalf("unexpected error %q", reply.Error)
	}

	reply = exchange(t, conn, Frame{Type: FrameInput, Field: "phone", Value: "1"})
	if reply.Error == "" {
		t.Fatalf("expected error for unknown field")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, ok := raw["error"]; !ok {
		t.Fatalf("expected error key in reply, got %v", raw)
	}
	if string(raw["submitted"]) != "null" {
		t.Fatalf("expected null submitted, got %s", raw["submitted"])
	}
}

func TestLive_RejectsNonGet(t *testing.T) {
	h := LiveHandler()
	req := httptest.NewRequest(http.MethodPost, "/contact/live", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
