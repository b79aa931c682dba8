package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"nostrcal"
	"nostrcal/internal/usecase"
)

const (
	dialTimeout = 10 * time.Second
	readTimeout = 15 * time.Second
)

// RelayGateway fetches records from a set of relays over websocket.
// Responses are cached per filter fingerprint so repeated views within the
// TTL do not re-hit the network.
type RelayGateway struct {
	relays []string
	cache  *cache.Cache
}

func NewRelayGateway(relays []string) *RelayGateway {
	return &RelayGateway{
		relays: relays,
		cache:  cache.New(1*time.Minute, 5*time.Minute),
	}
}

// Fetch queries every relay for the filter and merges the responses,
// deduplicating by record ID. A relay that fails is skipped; the fetch only
// errors when no relay answered at all.
func (g *RelayGateway) Fetch(ctx context.Context, filter nostrcal.Filter) ([]nostrcal.Record, error) {
	key := fingerprint(filter)
	if cached, found := g.cache.Get(key); found {
		return cached.([]nostrcal.Record), nil
	}

	seen := make(map[string]struct{})
	var merged []nostrcal.Record
	var answered int
	var lastErr error

	for _, relay := range g.relays {
		records, err := g.fetchOne(ctx, relay, filter)
		if err != nil {
			lastErr = err
			continue
		}
		answered++
		for _, rec := range records {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			merged = append(merged, rec)
		}
	}

	if answered == 0 && len(g.relays) > 0 {
		return nil, errors.Wrap(lastErr, "all relays failed")
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt < merged[j].CreatedAt
	})

	g.cache.Set(key, merged, cache.DefaultExpiration)
	return merged, nil
}

func (g *RelayGateway) fetchOne(ctx context.Context, relay string, filter nostrcal.Filter) ([]nostrcal.Record, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, relay, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial relay %s", relay)
	}
	defer conn.Close()

	subID := uuid.NewString()

	req, err := json.Marshal([]any{"REQ", subID, wireFilter(filter)})
	if err != nil {
		return nil, err
	}
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		return nil, errors.Wrapf(err, "failed to subscribe on %s", relay)
	}

	var records []nostrcal.Record
	for {
		if deadline, ok := ctx.Deadline(); ok {
			conn.SetReadDeadline(deadline)
		} else {
			conn.SetReadDeadline(time.Now().Add(readTimeout))
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return nil, errors.Wrapf(err, "read from relay %s", relay)
		}

		var envelope []json.RawMessage
		if err := json.Unmarshal(message, &envelope); err != nil || len(envelope) < 2 {
			continue
		}

		var label string
		if err := json.Unmarshal(envelope[0], &label); err != nil {
			continue
		}

		switch label {
		case "EVENT":
			if len(envelope) < 3 {
				continue
			}
			var rec nostrcal.Record
			if err := json.Unmarshal(envelope[2], &rec); err != nil {
				continue
			}
			records = append(records, rec)
		case "EOSE":
			closeMsg, _ := json.Marshal([]any{"CLOSE", subID})
			conn.WriteMessage(websocket.TextMessage, closeMsg)
			return records, nil
		case "CLOSED", "NOTICE":
			return records, nil
		}
	}
}

// wireFilter renders the filter in the relay wire shape. Tag conditions go
// out as "#<name>" keys alongside the plain fields.
func wireFilter(filter nostrcal.Filter) map[string]any {
	out := make(map[string]any)
	if len(filter.IDs) > 0 {
		out["ids"] = filter.IDs
	}
	if len(filter.Authors) > 0 {
		out["authors"] = filter.Authors
	}
	if len(filter.Kinds) > 0 {
		out["kinds"] = filter.Kinds
	}
	if filter.Since != nil {
		out["since"] = *filter.Since
	}
	if filter.Until != nil {
		out["until"] = *filter.Until
	}
	if filter.Limit > 0 {
		out["limit"] = filter.Limit
	}
	for name, values := range filter.Tags {
		out["#"+name] = values
	}
	return out
}

// fingerprint hashes the filter into a stable cache key. Map keys are
// sorted first so equal filters always collide.
func fingerprint(filter nostrcal.Filter) string {
	wire := wireFilter(filter)

	keys := make([]string, 0, len(wire))
	for k := range wire {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]any, 0, len(wire)*2)
	for _, k := range keys {
		ordered = append(ordered, k, wire[k])
	}

	raw, _ := json.Marshal(ordered)
	return fmt.Sprintf("%016x", xxh3.Hash(raw))
}

var _ usecase.RelayGateway = (*RelayGateway)(nil)
