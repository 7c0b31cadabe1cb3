package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShowsPubSub broadcasts occupancy changes per show time so other processes
// (or a future seat-map UI) can drop their cached availability.
type ShowsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewShowsPubSub(rdb *redis.Client) *ShowsPubSub {
	return &ShowsPubSub{
		rdb:     rdb,
		channel: ChannelShowsChanged(),
	}
}

type showChangedMsg struct {
	Type   string `json:"type"`
	Show   string `json:"show"`
	TsUnix int64  `json:"ts_unix"`
}

// PublishShowChanged signals that the seat occupancy of a show time changed.
// The show argument is the slot in wire form.
func (p *ShowsPubSub) PublishShowChanged(ctx context.Context, show string) error {
	msg := showChangedMsg{
		Type:   "show_changed",
		Show:   show,
		TsUnix: time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *ShowsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, show string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev showChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil && ev.Show != "" {
				handler(ctx, ev.Show)
			}
		}
	}
}
