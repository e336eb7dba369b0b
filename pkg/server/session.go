package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/labelselect/internal/config"
	"github.com/vango-dev/labelselect/pkg/middleware"
)

// Session is one WebSocket connection and the page it drives.
type Session struct {
	id      string
	conn    *websocket.Conn
	server  *Server
	page    *Page
	logger  *slog.Logger
	reloads chan *config.Config

	done      chan struct{}
	closeOnce sync.Once
}

func newSession(s *Server, conn *websocket.Conn, page *Page) *Session {
	return &Session{
		id:      page.ID,
		conn:    conn,
		server:  s,
		page:    page,
		logger:  s.logger.With("page", page.ID),
		reloads: make(chan *config.Config, 1),
		done:    make(chan struct{}),
	}
}

// ID returns the page id.
func (s *Session) ID() string {
	return s.id
}

// queueReload hands cfg to the session goroutine, replacing any reload that
// has not been applied yet.
func (s *Session) queueReload(cfg *config.Config) {
	for {
		select {
		case s.reloads <- cfg:
			return
		case <-s.done:
			return
		default:
		}
		select {
		case <-s.reloads:
		default:
		}
	}
}

// run serves the connection until the client goes away. It owns the page:
// every message and reload is handled here, and only here.
func (s *Session) run() {
	defer s.Close()

	msgs := make(chan []byte)
	readErr := make(chan error, 1)
	go s.readPump(msgs, readErr)

	if err := s.render(nil, nil); err != nil {
		return
	}

	for {
		select {
		case data := <-msgs:
			s.handle(data)
		case cfg := <-s.reloads:
			s.reload(cfg)
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "error", err)
				middleware.RecordWebSocketError("read")
			}
			return
		}
	}
}

func (s *Session) readPump(msgs chan<- []byte, readErr chan<- error) {
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}
		select {
		case msgs <- data:
		case <-s.done:
			return
		}
	}
}

func (s *Session) handle(data []byte) {
	msg, err := DecodeClientMessage(data)
	if err != nil {
		s.logger.Debug("bad message", "error", err)
		s.render(nil, err)
		return
	}

	var result any
	switch msg.Type {
	case MsgClick:
		err = s.page.Click(msg.HID)
	case MsgCall:
		result, err = s.page.Call(context.Background(), msg.Host, msg.Args)
	}
	if err != nil {
		s.logger.Debug("message failed", "type", msg.Type, "error", err)
	}
	s.render(result, err)
}

func (s *Session) reload(cfg *config.Config) {
	page, err := NewPage(cfg, s.server.registryOptions(s.logger)...)
	if err != nil {
		s.logger.Error("reload failed", "error", err)
		s.render(nil, err)
		return
	}
	page.ID = s.id
	s.page.Registry.Close()
	s.page = page
	s.logger.Info("page reloaded")
	s.render(nil, nil)
}

func (s *Session) render(result any, err error) error {
	msg := ServerMessage{
		Type:   MsgRender,
		HTML:   s.page.AppHTML(),
		Events: s.page.Drain(),
		Result: result,
		Error:  wireError(err),
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if werr := s.conn.WriteJSON(msg); werr != nil {
		s.logger.Warn("write failed", "error", werr)
		middleware.RecordWebSocketError("write")
		return werr
	}
	return nil
}

// Close ends the session. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		s.server.removeSession(s)
		if s.server.config.Metrics {
			middleware.RecordPageClose()
		}
		s.logger.Debug("session closed")
	})
}
