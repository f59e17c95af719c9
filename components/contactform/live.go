package contactform

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Frame types accepted on the live socket.
const (
	FrameInput  = "input"
	FrameSubmit = "submit"
	FrameReset  = "reset"
)

// Frame is one client message.
type Frame struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// Reply is sent after every frame. Errors holds the visible annotations;
// OK reports whether the current values pass every rule.
type Reply struct {
	Session   string                `json:"session"`
	Errors    validation.Violations `json:"errors"`
	Submitted *model.FieldValues    `json:"submitted"`
	OK        bool                  `json:"ok"`
	Error     string                `json:"error,omitempty"`
}

const writeTimeout = 10 * time.Second

// LiveHandler upgrades to a websocket bound to a fresh form state.
func LiveHandler(fns ...OptionFn) http.Handler {
	return LiveHandlerWithOptions(NewOptions(fns...))
}

// LiveHandlerWithOptions builds the live handler from a pre-built Options value.
func LiveHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     opts.CheckOrigin,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		state, err := opts.Orchestrator.NewState(r.Context(), orchestrator.Request{Document: opts.Document})
		if err != nil {
			opts.Logger.Error("contact form unavailable", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			opts.Logger.Debug("websocket upgrade failed", zap.Error(err))
			return
		}

		session := &liveSession{
			id:     uuid.NewString(),
			conn:   conn,
			state:  state,
			opts:   opts,
			logger: opts.Logger,
		}
		session.run(r)
	})
}

type liveSession struct {
	id     string
	conn   *websocket.Conn
	state  *form.State
	opts   Options
	logger *zap.Logger
}

func (s *liveSession) run(r *http.Request) {
	defer s.conn.Close()

	s.logger.Debug("live session opened",
		zap.String("session", s.id),
		zap.String("remote_addr", r.RemoteAddr),
	)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-r.Context().Done():
			_ = s.conn.Close()
		case <-done:
		}
	}()

	s.conn.SetReadLimit(s.opts.MaxMessageSize)
	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout)); err != nil {
			return
		}
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("live session read failed", zap.String("session", s.id), zap.Error(err))
			}
			s.logger.Debug("live session closed", zap.String("session", s.id))
			return
		}
		logging.LogWebSocketMessage(s.logger, s.id, "received", messageType, data)

		reply := s.handle(data)
		if err := s.write(reply); err != nil {
			s.logger.Debug("live session write failed", zap.String("session", s.id), zap.Error(err))
			return
		}
	}
}

func (s *liveSession) handle(data []byte) Reply {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return s.reply(fmt.Errorf("decode frame: %w", err))
	}
	return s.reply(s.apply(frame))
}

func (s *liveSession) apply(frame Frame) error {
	switch frame.Type {
	case FrameInput:
		return s.state.Input(frame.Field, frame.Value)
	case FrameSubmit:
		result := s.state.Submit()
		s.logger.Debug("live submission",
			zap.String("session", s.id),
			zap.Bool("ok", result.OK),
		)
		return nil
	case FrameReset:
		s.state.Reset()
		return nil
	default:
		return fmt.Errorf("unknown frame type %q", frame.Type)
	}
}

func (s *liveSession) reply(err error) Reply {
	reply := Reply{
		Session: s.id,
		Errors:  s.state.VisibleViolations(),
		OK:      s.state.Violations().Empty(),
	}
	if reply.Errors == nil {
		reply.Errors = validation.Violations{}
	}
	if submitted, ok := s.state.Submitted(); ok {
		reply.Submitted = &submitted
	}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}

func (s *liveSession) write(reply Reply) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	logging.LogWebSocketMessage(s.logger, s.id, "sent", websocket.TextMessage, payload)
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}
