package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mau.fi/whatsmeow/types/events"
)

func TestClassifyDisconnect(t *testing.T) {
	tests := []struct {
		name string
		evt  interface{}
		want disconnectCause
	}{
		{"logged out", &events.LoggedOut{}, causeLoggedOut},
		{"client outdated", &events.ClientOutdated{}, causeLoggedOut},
		{"stream replaced", &events.StreamReplaced{}, causeRestartRequired},
		{"keepalive timeout", &events.KeepAliveTimeout{}, causeTimedOut},
		{"disconnected", &events.Disconnected{}, causeConnectionLost},
		{"connect failure logged out", &events.ConnectFailure{Reason: events.ConnectFailureLoggedOut}, causeLoggedOut},
		{"connect failure other", &events.ConnectFailure{}, causeUnknown},
		{"something else", struct{}{}, causeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDisconnect(tt.evt))
		})
	}
}

func TestReconnectDelay(t *testing.T) {
	tests := []struct {
		cause disconnectCause
		delay time.Duration
		retry bool
	}{
		{causeLoggedOut, 0, false},
		{causeRestartRequired, restartRequiredDelay, true},
		{causeTimedOut, connectionLostDelay, true},
		{causeConnectionLost, connectionLostDelay, true},
		{causeUnknown, defaultRetryDelay, true},
	}
	for _, tt := range tests {
		t.Run(tt.cause.String(), func(t *testing.T) {
			delay, retry := reconnectDelay(tt.cause)
			assert.Equal(t, tt.delay, delay)
			assert.Equal(t, tt.retry, retry)
		})
	}
}
