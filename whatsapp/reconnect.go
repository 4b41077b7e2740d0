package whatsapp

import (
	"time"

	"go.mau.fi/whatsmeow/types/events"
)

// disconnectCause classifies why the transport closed. The cause alone
// decides the reconnect policy.
type disconnectCause int

const (
	causeUnknown disconnectCause = iota
	causeLoggedOut
	causeRestartRequired
	causeTimedOut
	causeConnectionLost
)

func (c disconnectCause) String() string {
	switch c {
	case causeLoggedOut:
		return "logged_out"
	case causeRestartRequired:
		return "restart_required"
	case causeTimedOut:
		return "timed_out"
	case causeConnectionLost:
		return "connection_lost"
	default:
		return "unknown"
	}
}

// Fixed reconnect delays. No exponential growth and no retry cutoff;
// only a terminal logout stops the cycle.
const (
	restartRequiredDelay = 3 * time.Second
	connectionLostDelay  = 10 * time.Second
	defaultRetryDelay    = 5 * time.Second
)

// classifyDisconnect maps a close-ish transport event to a cause.
func classifyDisconnect(evt interface{}) disconnectCause {
	switch e := evt.(type) {
	case *events.LoggedOut:
		return causeLoggedOut
	case *events.ClientOutdated:
		// Reconnecting an outdated client would loop forever.
		return causeLoggedOut
	case *events.StreamReplaced:
		return causeRestartRequired
	case *events.KeepAliveTimeout:
		return causeTimedOut
	case *events.Disconnected:
		return causeConnectionLost
	case *events.ConnectFailure:
		if e.Reason == events.ConnectFailureLoggedOut {
			return causeLoggedOut
		}
		return causeUnknown
	default:
		return causeUnknown
	}
}

// reconnectDelay returns the delay before the next full restart and
// whether a restart should happen at all.
func reconnectDelay(cause disconnectCause) (time.Duration, bool) {
	switch cause {
	case causeLoggedOut:
		return 0, false
	case causeRestartRequired:
		return restartRequiredDelay, true
	case causeTimedOut, causeConnectionLost:
		return connectionLostDelay, true
	default:
		return defaultRetryDelay, true
	}
}
