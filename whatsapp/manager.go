package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// Errors surfaced to HTTP callers. "not initialized" and "not yet
// connected" are deliberately distinct.
var (
	ErrNotInitialized = errors.New("whatsapp client is not initialized, call start first")
	ErrNotConnected   = errors.New("whatsapp is not connected yet")
)

// ConnState names the connection lifecycle states.
type ConnState string

const (
	StateIdle       ConnState = "idle"
	StateConnecting ConnState = "connecting"
	StateOpen       ConnState = "open"
	StateClosed     ConnState = "closed"
)

// InboundHandler is the conversation engine seen from the transport.
type InboundHandler interface {
	HandleInbound(identity, pushName, text string) (string, error)
}

// Status is the read-only connection snapshot.
type Status struct {
	Connected bool   `json:"connected"`
	Identity  string `json:"identity,omitempty"`
}

// Manager owns the single whatsmeow connection: credential store,
// pairing, sending, and the reconnect supervisor. Start is safe to call
// repeatedly; each call rebuilds the client from the persisted
// credentials.
type Manager struct {
	storeDir string
	engine   InboundHandler
	log      *logrus.Logger

	mu        sync.Mutex
	client    *whatsmeow.Client
	state     ConnState
	connected bool
	qrPrinted bool
	identity  string

	// schedule hands a delay to the supervisor loop. Swapped out in
	// tests to observe scheduling without sleeping.
	schedule func(delay time.Duration)
	retryCh  chan time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewManager(storeDir string, engine InboundHandler, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	m := &Manager{
		storeDir: storeDir,
		engine:   engine,
		log:      log,
		state:    StateIdle,
		retryCh:  make(chan time.Duration, 1),
		done:     make(chan struct{}),
	}
	m.schedule = m.enqueueReconnect
	go m.supervise()
	return m
}

// Start loads the persisted credentials, opens the connection and
// registers the event handler. Errors propagate to the caller; once
// running, later failures are handled by the reconnect supervisor.
func (m *Manager) Start() error {
	m.mu.Lock()
	previous := m.client
	m.client = nil
	m.state = StateConnecting
	m.connected = false
	m.qrPrinted = false
	m.identity = ""
	m.mu.Unlock()

	// A restart rebuilds the whole connection object, never resumes.
	if previous != nil {
		previous.RemoveEventHandlers()
		previous.Disconnect()
	}

	if err := os.MkdirAll(m.storeDir, 0o755); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	ctx := context.Background()
	dbLog := waLog.Stdout("WADB", "WARN", false)
	address := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(m.storeDir, "credentials.db"))
	container, err := sqlstore.New(ctx, "sqlite3", address, dbLog)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return fmt.Errorf("load device credentials: %w", err)
	}

	client := whatsmeow.NewClient(device, waLog.Stdout("WAClient", "WARN", false))
	// Reconnection belongs to the supervisor so disconnect causes
	// always flow through classifyDisconnect.
	client.EnableAutoReconnect = false
	client.AddEventHandler(m.handleEvent)

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	if err := client.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

// Stop logs out if a client exists and marks the manager disconnected.
// The supervisor loop is shut down with it.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })

	m.mu.Lock()
	client := m.client
	m.client = nil
	m.connected = false
	m.identity = ""
	m.state = StateIdle
	m.mu.Unlock()

	if client != nil {
		client.RemoveEventHandlers()
		if err := client.Logout(context.Background()); err != nil {
			m.log.WithError(err).Warn("logout failed, disconnecting anyway")
		}
		client.Disconnect()
	}
}

// GetConnectionStatus returns the current snapshot.
func (m *Manager) GetConnectionStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{Connected: m.connected, Identity: m.identity}
}

// GeneratePairingCode requests a one-time phone-pairing code. The phone
// number is reduced to digits and must be 10-15 digits long.
func (m *Manager) GeneratePairingCode(rawPhoneNumber string) (string, error) {
	digits := digitsOnly(rawPhoneNumber)
	if len(digits) < 10 || len(digits) > 15 {
		return "", fmt.Errorf("invalid phone number %q: expected 10-15 digits, got %d", rawPhoneNumber, len(digits))
	}

	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return "", ErrNotInitialized
	}
	// Pairing happens on the pre-login socket, so check the socket, not
	// the logged-in flag.
	if !client.IsConnected() {
		return "", ErrNotConnected
	}

	code, err := client.PairPhone(context.Background(), digits, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
	if err != nil {
		return "", fmt.Errorf("request pairing code: %w", err)
	}
	return code, nil
}

// SendMessage sends a plain text message to the given identity.
func (m *Manager) SendMessage(identity, text string) error {
	m.mu.Lock()
	client := m.client
	connected := m.connected
	m.mu.Unlock()

	if client == nil {
		return ErrNotInitialized
	}
	if !connected {
		return ErrNotConnected
	}

	jid := types.NewJID(normalizeIdentity(identity), types.DefaultUserServer)
	_, err := client.SendMessage(context.Background(), jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("send to %s: %w", identity, err)
	}
	return nil
}

func (m *Manager) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.QR:
		m.handleQR(v)
	case *events.PairSuccess:
		m.log.WithField("jid", v.ID.String()).Info("device paired")
	case *events.Connected:
		m.handleConnected()
	case *events.Message:
		m.handleMessage(v)
	case *events.LoggedOut, *events.ClientOutdated, *events.StreamReplaced,
		*events.KeepAliveTimeout, *events.Disconnected, *events.ConnectFailure:
		m.handleClose(evt)
	}
}

// handleQR renders the pairing prompt once per connection attempt.
// Repeated QR events while still unconnected are suppressed.
func (m *Manager) handleQR(evt *events.QR) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.qrPrinted || m.connected {
		return
	}
	m.qrPrinted = true
	if len(evt.Codes) > 0 {
		m.log.WithField("qr", evt.Codes[0]).Info("scan the QR code with WhatsApp, or request a pairing code")
	}
}

func (m *Manager) handleConnected() {
	m.mu.Lock()
	m.connected = true
	m.qrPrinted = false
	m.state = StateOpen
	if m.client != nil && m.client.Store.ID != nil {
		m.identity = m.client.Store.ID.User
	}
	identity := m.identity
	m.mu.Unlock()
	m.log.WithField("identity", identity).Info("whatsapp connected")
}

// handleClose classifies the disconnect cause and schedules a full
// restart unless the cause is terminal.
func (m *Manager) handleClose(evt interface{}) {
	cause := classifyDisconnect(evt)

	m.mu.Lock()
	m.connected = false
	m.identity = ""
	m.state = StateClosed
	if cause == causeLoggedOut {
		// Clear the debounce so a fresh pairing prompt appears after a
		// manual restart.
		m.qrPrinted = false
		m.state = StateIdle
	}
	m.mu.Unlock()

	delay, retry := reconnectDelay(cause)
	if !retry {
		m.log.WithField("cause", cause.String()).Warn("terminal disconnect, not reconnecting")
		return
	}
	m.log.WithFields(logrus.Fields{
		"cause": cause.String(),
		"delay": delay.String(),
	}).Info("connection closed, scheduling reconnect")
	m.schedule(delay)
}

// handleMessage forwards one inbound message to the engine. Engine
// failures are logged and reported, never propagated back into the
// event loop.
func (m *Manager) handleMessage(evt *events.Message) {
	defer func() {
		if r := recover(); r != nil {
			m.log.WithField("panic", r).Error("conversation handler panicked")
			sentry.CurrentHub().Recover(r)
		}
	}()

	if evt.Info.IsFromMe {
		return
	}
	// Groups, newsletters and broadcast lists stay out of the funnel.
	if evt.Info.Chat.Server != types.DefaultUserServer {
		return
	}

	text := extractText(evt.Message)
	if text == "" {
		return
	}
	identity := evt.Info.Sender.User

	reply, err := m.engine.HandleInbound(identity, evt.Info.PushName, text)
	if err != nil {
		m.log.WithError(err).WithField("identity", identity).Error("conversation handling failed")
		sentry.CaptureException(err)
		return
	}
	if reply == "" {
		return
	}
	if err := m.SendMessage(identity, reply); err != nil {
		m.log.WithError(err).WithField("identity", identity).Error("reply send failed")
	}
}

// supervise owns retry scheduling. At most one reconnect attempt is
// pending at a time; a failed attempt re-enters the queue with the
// default delay.
func (m *Manager) supervise() {
	for {
		select {
		case <-m.done:
			return
		case delay := <-m.retryCh:
			timer := time.NewTimer(delay)
			select {
			case <-m.done:
				timer.Stop()
				return
			case <-timer.C:
			}
			m.log.Info("reconnecting")
			if err := m.Start(); err != nil {
				m.log.WithError(err).Error("reconnect attempt failed")
				m.enqueueReconnect(defaultRetryDelay)
			}
		}
	}
}

func (m *Manager) enqueueReconnect(delay time.Duration) {
	select {
	case m.retryCh <- delay:
	default:
	}
}

// extractText pulls the text content out of a message payload. Media
// and reaction payloads yield "" and are dropped upstream.
func extractText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if text := msg.GetConversation(); text != "" {
		return text
	}
	return msg.GetExtendedTextMessage().GetText()
}

// normalizeIdentity accepts either a bare number or a full JID string.
func normalizeIdentity(identity string) string {
	if at := strings.IndexByte(identity, '@'); at >= 0 {
		identity = identity[:at]
	}
	return digitsOnly(identity)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
