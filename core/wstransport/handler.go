package wstransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/core/logger"
	"github.com/dmitrymomot/wsbroker/pkg/clientip"
)

const (
	// DefaultWriteTimeout bounds a single frame write.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultReadLimit is the largest inbound message accepted.
	DefaultReadLimit = 64 << 10
)

// Handler upgrades HTTP requests to websocket connections and feeds their
// events to a broker dispatcher through its loop. The request path decides
// the connection's role.
type Handler struct {
	loop       *broker.Loop
	dispatcher *broker.Dispatcher
	logger     *slog.Logger

	upgrader       websocket.Upgrader
	responseHeader http.Header
	readLimit      int64
	writeTimeout   time.Duration
	pingInterval   time.Duration
	messageType    int

	mu    sync.Mutex
	conns map[*conn]struct{}
}

// New creates a handler. The loop must be running for connections to make
// progress.
func New(loop *broker.Loop, dispatcher *broker.Dispatcher, opts ...Option) *Handler {
	h := &Handler{
		loop:       loop,
		dispatcher: dispatcher,
		logger:     logger.Discard(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		readLimit:    DefaultReadLimit,
		writeTimeout: DefaultWriteTimeout,
		messageType:  websocket.TextMessage,
		conns:        make(map[*conn]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP runs one connection from upgrade to close.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, h.responseHeader)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		h.logger.DebugContext(r.Context(), "websocket upgrade failed",
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
		return
	}

	// Hijacked connections outlive request cancellation; the conn owns its
	// own lifetime from here on.
	base := context.WithoutCancel(r.Context())
	c := newConn(base, uuid.NewString(), clientip.GetIP(r), ws)
	h.track(c)
	defer h.untrack(c)

	var role broker.Role
	if err := h.loop.Do(c.ctx, func() {
		role = h.dispatcher.OnEstablish(c, r.URL.Path)
	}); err != nil {
		c.close(websocket.CloseTryAgainLater, "broker unavailable")
		return
	}

	log := h.logger.With(logger.ConnID(c.id), logger.Role(role.String()))
	log.InfoContext(r.Context(), "connection established",
		logger.Path(r.URL.Path),
		logger.ClientIP(c.addr),
	)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writePump(c, log)
	}()

	h.readPump(c, role, log)
	c.close(websocket.CloseNormalClosure, "")
	<-writerDone

	if err := h.loop.Do(base, func() { h.dispatcher.OnClose(c) }); err != nil {
		log.Debug("close not delivered to broker", logger.Error(err))
	}
	log.Info("connection closed")
}

// readPump reads until the peer goes away. Publisher messages go to the
// dispatcher in arrival order; subscriber data frames are discarded.
func (h *Handler) readPump(c *conn, role broker.Role, log *slog.Logger) {
	c.ws.SetReadLimit(h.readLimit)
	if h.pingInterval > 0 {
		pongWait := 2 * h.pingInterval
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		c.ws.SetPongHandler(func(string) error {
			return c.ws.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !c.isClosed() && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read failed", logger.Error(err))
			}
			return
		}
		if role != broker.RolePublisher {
			continue
		}

		if err := h.loop.Post(c.ctx, func() {
			if err := h.dispatcher.OnMessage(c, data); err != nil && !errors.Is(err, broker.ErrBufferFull) {
				// Buffer-full drops are logged by the dispatcher itself.
				log.Debug("message not buffered", logger.Error(err), logger.Bytes(len(data)))
			}
		}); err != nil {
			return
		}
	}
}

// writePump turns writability requests into frames.
func (h *Handler) writePump(c *conn, log *slog.Logger) {
	var ping <-chan time.Time
	if h.pingInterval > 0 {
		t := time.NewTicker(h.pingInterval)
		defer t.Stop()
		ping = t.C
	}

	for {
		select {
		case <-c.closed:
			return

		case <-c.wake:
			var werr error
			if err := h.loop.Do(c.ctx, func() { werr = h.dispatcher.OnWritable(c) }); err != nil {
				c.close(websocket.CloseGoingAway, "")
				return
			}
			if werr != nil {
				log.Warn("closing subscriber", logger.Error(werr))
				c.close(websocket.CloseInternalServerErr, "write failed")
				return
			}

			select {
			case p := <-c.outbox:
				if err := h.send(c, p); err != nil {
					log.Debug("write failed", logger.Error(err), logger.Bytes(len(p)))
					c.close(websocket.CloseGoingAway, "")
					return
				}
			default:
			}

		case <-ping:
			deadline := time.Now().Add(h.writeTimeout)
			if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Debug("ping failed", logger.Error(err))
				c.close(websocket.CloseGoingAway, "")
				return
			}
		}
	}
}

func (h *Handler) send(c *conn, p []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(h.messageType, p)
}

// CloseAll disconnects every open connection. http.Server.Shutdown does not
// touch hijacked connections, so call this during shutdown.
func (h *Handler) CloseAll() {
	h.mu.Lock()
	conns := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.close(websocket.CloseGoingAway, "server shutting down")
	}
}

// Len returns the number of open connections.
func (h *Handler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Handler) track(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Handler) untrack(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}
