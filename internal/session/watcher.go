// Package session carries the profile row-change push channel. Every write
// that touches a profile row (token rotation, approval, sign-out) publishes
// the updated row on that profile's Redis channel; devices hold a
// subscription scoped to their own profile id and react to
// active_session_token changes. Both this push path and the explicit
// refresh-session poll converge on the same terminal outcome — the stale
// device signs out — so racing deliveries are harmless.
package session

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
)

const channelPrefix = "profiles:"

// ProfileEvent is the updated profiles row delivered on UPDATE.
type ProfileEvent struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	Role               string  `json:"role"`
	Approved           bool    `json:"approved"`
	ActiveSessionToken *string `json:"active_session_token"`
}

// Notifier publishes and subscribes profile row changes.
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier { return &Notifier{rdb: rdb} }

// PublishProfile pushes the updated row to subscribers of this profile.
// Best effort: a failed publish is logged, never surfaced — the poll path
// still catches the invalidation.
func (n *Notifier) PublishProfile(ctx context.Context, p *model.Profile) {
	ev := ProfileEvent{
		ID:                 p.ID.String(),
		FullName:           p.FullName,
		Role:               p.Role,
		Approved:           p.Approved,
		ActiveSessionToken: p.ActiveSessionToken,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("session: marshal profile event")
		return
	}
	if err := n.rdb.Publish(ctx, channelPrefix+ev.ID, payload).Err(); err != nil {
		log.Warn().Err(err).Str("profile_id", ev.ID).Msg("session: publish profile event")
	}
}

// Subscribe opens a row-change subscription scoped to one profile id.
// Events arrive on the returned channel until ctx is cancelled; the
// subscription and the channel are torn down with it so an unmounted
// listener never acts on a stale identity.
func (n *Notifier) Subscribe(ctx context.Context, profileID string) <-chan ProfileEvent {
	sub := n.rdb.Subscribe(ctx, channelPrefix+profileID)
	out := make(chan ProfileEvent)

	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev ProfileEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Error().Err(err).Msg("session: unmarshal profile event")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
