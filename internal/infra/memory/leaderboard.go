package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// Leaderboard keeps each client's best recorded run per category in memory.
type Leaderboard struct {
	mu    sync.RWMutex
	bests map[string]map[string]domain.LeaderboardEntry // category -> clientID -> best run
	games map[string]int                                // clientID -> finished runs
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		bests: make(map[string]map[string]domain.LeaderboardEntry),
		games: make(map[string]int),
	}
}

// Record counts the run and keeps it if it beats the client's previous best
// for the category. On an equal score the earlier run stands.
func (l *Leaderboard) Record(_ context.Context, entry domain.LeaderboardEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.games[entry.ClientID]++

	byClient, ok := l.bests[entry.Category]
	if !ok {
		byClient = make(map[string]domain.LeaderboardEntry)
		l.bests[entry.Category] = byClient
	}
	if existing, ok := byClient[entry.ClientID]; ok && existing.Score >= entry.Score {
		return nil
	}
	byClient[entry.ClientID] = entry
	return nil
}

// Top returns the best runs for a category, highest score first. Ties go to
// the earlier finisher, then to the name.
func (l *Leaderboard) Top(_ context.Context, category string, limit int) ([]domain.LeaderboardEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	byClient := l.bests[category]
	entries := make([]domain.LeaderboardEntry, 0, len(byClient))
	for _, entry := range byClient {
		entries = append(entries, entry)
	}
	sortEntries(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ForClient returns the play count and per-category bests for one client.
func (l *Leaderboard) ForClient(_ context.Context, clientID string) (domain.PlayerStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := domain.PlayerStats{Games: l.games[clientID]}
	for _, byClient := range l.bests {
		if entry, ok := byClient[clientID]; ok {
			stats.Bests = append(stats.Bests, entry)
		}
	}
	sort.Slice(stats.Bests, func(i, j int) bool {
		return stats.Bests[i].Category < stats.Bests[j].Category
	})
	return stats, nil
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
