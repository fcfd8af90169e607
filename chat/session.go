package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 16
	readLimit    = 1 << 20
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// Gateway runs live sessions: it registers each one, relays inbound frames
// and always releases the registry entry when the session ends.
type Gateway struct {
	relay    *Relay
	presence Presence
	validate *validator.Validate
	log      logrus.FieldLogger
}

func NewGateway(relay *Relay, presence Presence, log logrus.FieldLogger) *Gateway {
	if presence == nil {
		presence = RegistryPresence{Registry: relay.Registry()}
	}
	return &Gateway{relay: relay, presence: presence, validate: validator.New(), log: log}
}

func (g *Gateway) Presence() Presence { return g.presence }

// Session is one connected websocket. It implements Endpoint.
type Session struct {
	ID     string
	UserID string

	conn      *websocket.Conn
	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(userID string, conn *websocket.Conn) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
		send:   make(chan Event, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Deliver queues evt without blocking. A full buffer drops the event.
func (s *Session) Deliver(evt Event) error {
	select {
	case <-s.done:
		return ErrEndpointClosed
	default:
	}
	select {
	case s.send <- evt:
		return nil
	default:
		return ErrEndpointBusy
	}
}

// Close ends the session. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

// Serve blocks until the session ends through a client close, a transport
// error, a replacing connection or ctx cancellation.
func (g *Gateway) Serve(ctx context.Context, conn *websocket.Conn, userID string) {
	s := newSession(userID, conn)
	log := g.log.WithFields(logrus.Fields{"user_id": userID, "session_id": s.ID})

	registry := g.relay.Registry()
	registry.Connect(userID, s)
	if err := g.presence.MarkOnline(ctx, userID); err != nil {
		log.WithError(err).Warn("presence update failed")
	}
	log.Info("session connected")

	defer func() {
		s.Close()
		if registry.Release(userID, s) {
			// ctx may already be cancelled on shutdown.
			if err := g.presence.MarkOffline(context.Background(), userID); err != nil {
				log.WithError(err).Warn("presence update failed")
			}
		}
		log.Info("session disconnected")
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
	go g.writer(ctx, s, log)
	g.reader(ctx, s, log)
}

func (g *Gateway) reader(ctx context.Context, s *Session, log logrus.FieldLogger) {
	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("read failed")
			}
			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			_ = s.Deliver(errorEvent("invalid message format"))
			continue
		}
		if err := g.validate.Struct(frame); err != nil {
			_ = s.Deliver(errorEvent("receiver_id and message are required"))
			continue
		}

		if _, _, err := g.relay.Send(ctx, s.UserID, frame.ReceiverID, frame.Message); err != nil {
			log.WithError(err).Error("cannot send message")
			_ = s.Deliver(errorEvent("cannot send message"))
		}
	}
}

func (g *Gateway) writer(ctx context.Context, s *Session, log logrus.FieldLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case evt := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(evt); err != nil {
				log.WithError(err).Debug("write failed")
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			if err := g.presence.MarkOnline(ctx, s.UserID); err != nil {
				log.WithError(err).Debug("presence refresh failed")
			}
		case <-s.done:
			return
		}
	}
}
