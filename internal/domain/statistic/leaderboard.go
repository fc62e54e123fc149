package statistic

import (
	"context"
	"fmt"
	"strings"

	"github.com/wanderlands/backend/pkg/xredis"
)

const globalKey = "global"

type Score struct {
	Username string
	Score    int
}

// Leaderboard keeps cumulative scores per room plus a global board.
// Scores are flushed into it when a player disconnects.
type Leaderboard interface {
	AddScore(ctx context.Context, room, username string, score int) error
	TopPlayers(ctx context.Context, room string, limit int) ([]Score, error)
}

type redisLeaderboard struct {
	redisClient xredis.Client
}

func NewLeaderboard(redisClient xredis.Client) *redisLeaderboard {
	return &redisLeaderboard{redisClient: redisClient}
}

func (l *redisLeaderboard) AddScore(ctx context.Context, room, username string, score int) error {
	if score <= 0 {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key(room), int64(score), username); err != nil {
		return err
	}

	return l.redisClient.ZIncrBy(ctx, key(globalKey), int64(score), username)
}

func (l *redisLeaderboard) TopPlayers(ctx context.Context, room string, limit int) ([]Score, error) {
	zs, err := l.redisClient.ZRevRangeWithScores(ctx, key(room), 0, limit)
	if err != nil {
		return nil, err
	}

	result := make([]Score, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		result = append(result, Score{Username: member, Score: int(z.Score)})
	}

	return result, nil
}

func key(room string) string {
	return fmt.Sprintf("leaderboard:%s", strings.ToLower(room))
}
