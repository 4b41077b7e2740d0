package bot

import (
	"sync"

	"quotabot/models"
)

// Broadcaster fans persisted messages out to dashboard subscribers.
// Publishing never blocks; a subscriber that falls behind loses events
// rather than stalling the conversation path.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan models.BotMessage]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan models.BotMessage]struct{})}
}

// Subscribe returns a buffered event channel and a cancel function.
func (b *Broadcaster) Subscribe() (<-chan models.BotMessage, func()) {
	ch := make(chan models.BotMessage, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Broadcaster) Publish(msg models.BotMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
