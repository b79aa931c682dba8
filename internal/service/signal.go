package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RefreshSignal is broadcast whenever a background refresh produced a new
// view. Subscribers re-render from the cache instead of refetching.
type RefreshSignal struct {
	Channel string `json:"channel"`
	Events  int    `json:"events"`
	Stamp   int64  `json:"stamp"`
}

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, channel string, signal RefreshSignal) error {

	jsonstr, err := json.Marshal(signal)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}
