package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second

	// slowClientThreshold is the number of consecutive failed handoffs
	// before a connection is evicted. A single full buffer can be transient
	// pressure from a burst; a writer that never drains keeps failing.
	slowClientThreshold = 3
)

// --- Command types ---

type channelCmd interface{ channelCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) channelCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) channelCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) channelCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) channelCmd() {}

type cmdStop struct{}

func (cmdStop) channelCmd() {}

// Channel is the set of live connections subscribed to one entity type's
// notifications. A single goroutine owns the membership map; all access goes
// through the command channel.
type Channel struct {
	name       string
	cmdCh      chan channelCmd
	clients    map[*websocket.Conn]*clientWriter
	maxClients int
	clock      clockwork.Clock
	wsMetrics  *metrics.WebSocketMetrics
	done       chan struct{}
}

// newChannel creates and starts a channel. maxClients <= 0 means no cap.
// wsMetrics may be nil.
func newChannel(name string, maxClients int, clock clockwork.Clock, wsMetrics *metrics.WebSocketMetrics) *Channel {
	ch := &Channel{
		name:       name,
		cmdCh:      make(chan channelCmd, 256),
		clients:    make(map[*websocket.Conn]*clientWriter),
		maxClients: maxClients,
		clock:      clock,
		wsMetrics:  wsMetrics,
		done:       make(chan struct{}),
	}
	go ch.run()
	return ch
}

// Name returns the entity type this channel carries notifications for.
func (ch *Channel) Name() string {
	return ch.name
}

// Register adds a connection to the channel's membership set.
// Returns an error only if the client cap is reached.
func (ch *Channel) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	ch.cmdCh <- cmdRegister{conn: conn, errCh: errCh}

	timer := ch.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register on channel %s timed out after %v", ch.name, commandTimeout)
	}
}

// Unregister removes a connection. Removing an absent connection is a no-op.
func (ch *Channel) Unregister(conn *websocket.Conn) {
	ch.cmdCh <- cmdUnregister{conn: conn}
}

// Broadcast pushes the already-serialized message to every live connection.
// Best-effort: a connection that cannot accept the message is dropped from
// the membership set, and delivery to the rest continues.
func (ch *Channel) Broadcast(data []byte) {
	ch.cmdCh <- cmdBroadcast{data: data}
}

// ClientCount returns the number of live connections, or -1 on timeout.
func (ch *Channel) ClientCount() int {
	replyCh := make(chan int, 1)
	ch.cmdCh <- cmdClientCount{replyCh: replyCh}

	timer := ch.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "channel", ch.name, "timeout", commandTimeout)
		return -1
	}
}

// Stop closes every connection and shuts the channel goroutine down.
func (ch *Channel) Stop() {
	ch.cmdCh <- cmdStop{}

	timer := ch.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-ch.done:
	case <-timer.Chan():
		slog.Warn("Channel stop timeout exceeded", "channel", ch.name, "timeout", stopTimeout)
	}
}

func (ch *Channel) run() {
	defer close(ch.done)

	for cmd := range ch.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			ch.handleRegister(c)
		case cmdUnregister:
			ch.handleUnregister(c.conn)
		case cmdBroadcast:
			ch.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(ch.clients)
		case cmdStop:
			ch.handleStop()
			return
		}
	}
}

func (ch *Channel) handleRegister(c cmdRegister) {
	if ch.maxClients > 0 && len(ch.clients) >= ch.maxClients {
		slog.Warn("Rejecting client: max clients reached", "channel", ch.name, "max_clients", ch.maxClients)
		_ = c.conn.Close()
		c.errCh <- fmt.Errorf("max clients per channel (%d) reached", ch.maxClients)
		return
	}

	ch.clients[c.conn] = newClientWriter(c.conn, ch.clock)

	if ch.wsMetrics != nil {
		ch.wsMetrics.ActiveConnections.Inc()
	}
	slog.Debug("Client registered", "channel", ch.name, "total_clients", len(ch.clients))
	c.errCh <- nil
}

func (ch *Channel) handleUnregister(conn *websocket.Conn) {
	cw, exists := ch.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(ch.clients, conn)

	if ch.wsMetrics != nil {
		ch.wsMetrics.ActiveConnections.Dec()
	}
	slog.Debug("Client unregistered", "channel", ch.name, "remaining_clients", len(ch.clients))
}

func (ch *Channel) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, cw := range ch.clients {
		if cw.trySend(data) {
			cw.sendFailures = 0
			continue
		}
		cw.sendFailures++
		if cw.sendFailures >= slowClientThreshold {
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow client", "channel", ch.name)
		if ch.wsMetrics != nil {
			ch.wsMetrics.SlowClientsEvicted.Inc()
		}
		ch.handleUnregister(conn)
	}

	if ch.wsMetrics != nil {
		ch.wsMetrics.MessagesPublished.Inc()
	}
}

func (ch *Channel) handleStop() {
	slog.Info("Channel shutting down", "channel", ch.name, "clients", len(ch.clients))
	for conn, cw := range ch.clients {
		cw.stopGraceful("Server shutting down")
		delete(ch.clients, conn)
		if ch.wsMetrics != nil {
			ch.wsMetrics.ActiveConnections.Dec()
		}
	}
}
