package sqlc

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager counts games per server. A nil querier turns every
// call into a no-op so the server runs without a database.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) RecordGameFinished(ctx context.Context, serverIpNet pqtype.Inet, humanWon bool) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesFinishedCount(ctx, IncrementGamesFinishedCountParams{
		HumanWon: humanWon,
		ServerIp: serverIpNet,
	})
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetServerAnalytics(ctx context.Context, serverIpNet pqtype.Inet) (GameServerAnalytic, error) {
	if !a.Enabled() {
		return GameServerAnalytic{ServerIp: serverIpNet}, nil
	}
	return a.queries.GetServerAnalytics(ctx, serverIpNet)
}

// Record runs fn with a bounded context and only logs a failure;
// analytics never interrupt a game.
func (a *AnalyticsManager) Record(name string, fn func(ctx context.Context) error) {
	if !a.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		log.Warn("analytics query failed", "query", name, "err", err)
	}
}
