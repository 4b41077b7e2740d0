package controller

import (
	"log"

	"github.com/gofiber/websocket/v2"

	"quotabot/bot"
)

// NewLiveMessageHandler streams newly logged messages to a dashboard
// websocket. Both conversation directions flow through as they are
// persisted.
func NewLiveMessageHandler(feed *bot.Broadcaster, logger *log.Logger) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		events, cancel := feed.Subscribe()
		defer cancel()

		// Drain (and ignore) client frames so closes are noticed.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case msg, ok := <-events:
				if !ok {
					return
				}
				if err := c.WriteJSON(msg); err != nil {
					logger.Printf("Live feed write failed: %v", err)
					return
				}
			}
		}
	}
}
