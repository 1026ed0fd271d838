package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// Leaderboard keeps per-category bests in Redis so rankings survive restarts
// and are shared across instances. Layout:
//
//	ZADD leaderboard:board:{category} {score} {clientID}
//	HSET leaderboard:entries:{category} {clientID} {json entry}
//	SADD leaderboard:categories {category}
//	INCR leaderboard:games:{clientID}
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

// Record counts the run and keeps it if it beats the client's previous best
// for the category.
func (l *Leaderboard) Record(ctx context.Context, entry domain.LeaderboardEntry) error {
	if err := l.client.Incr(ctx, l.gamesKey(entry.ClientID)).Err(); err != nil {
		return err
	}

	existing, err := l.client.ZScore(ctx, l.boardKey(entry.Category), entry.ClientID).Result()
	switch {
	case err == nil:
		if int(existing) >= entry.Score {
			return nil
		}
	case errors.Is(err, redis.Nil):
		// first run for this category
	default:
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, l.boardKey(entry.Category), redis.Z{Score: float64(entry.Score), Member: entry.ClientID})
	pipe.HSet(ctx, l.entriesKey(entry.Category), entry.ClientID, data)
	pipe.SAdd(ctx, l.categoriesKey(), entry.Category)
	_, err = pipe.Exec(ctx)
	return err
}

// Top returns the best runs for a category, highest score first. Ties go to
// the earlier finisher, then to the name.
func (l *Leaderboard) Top(ctx context.Context, category string, limit int) ([]domain.LeaderboardEntry, error) {
	clientIDs, err := l.client.ZRevRange(ctx, l.boardKey(category), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(clientIDs) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	raw, err := l.client.HMGet(ctx, l.entriesKey(category), clientIDs...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for _, value := range raw {
		text, ok := value.(string)
		if !ok {
			continue
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	// The zset breaks score ties lexically by member; sort the full board so
	// ties follow finish time and name before trimming, matching the
	// in-memory board.
	sortEntries(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ForClient returns the play count and per-category bests for one client.
func (l *Leaderboard) ForClient(ctx context.Context, clientID string) (domain.PlayerStats, error) {
	stats := domain.PlayerStats{}

	games, err := l.client.Get(ctx, l.gamesKey(clientID)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.PlayerStats{}, err
	}
	stats.Games = games

	categories, err := l.client.SMembers(ctx, l.categoriesKey()).Result()
	if err != nil {
		return domain.PlayerStats{}, err
	}

	for _, category := range categories {
		text, err := l.client.HGet(ctx, l.entriesKey(category), clientID).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return domain.PlayerStats{}, err
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			continue
		}
		stats.Bests = append(stats.Bests, entry)
	}
	sort.Slice(stats.Bests, func(i, j int) bool {
		return stats.Bests[i].Category < stats.Bests[j].Category
	})
	return stats, nil
}

func (l *Leaderboard) boardKey(category string) string {
	return "leaderboard:board:" + category
}

func (l *Leaderboard) entriesKey(category string) string {
	return "leaderboard:entries:" + category
}

func (l *Leaderboard) categoriesKey() string {
	return "leaderboard:categories"
}

func (l *Leaderboard) gamesKey(clientID string) string {
	return "leaderboard:games:" + clientID
}

func sortEntries(entries []domain.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if !entries[i].FinishedAt.Equal(entries[j].FinishedAt) {
			return entries[i].FinishedAt.Before(entries[j].FinishedAt)
		}
		return entries[i].Name < entries[j].Name
	})
}
