package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/sea-battle/db/sqlc"
	mc "github.com/saeidalz13/sea-battle/models/connection"
)

// HandleServerAnalytics reports the counters of this server. A server
// that has not created a game yet reports zeros.
func (rp RequestProcessor) HandleServerAnalytics(w http.ResponseWriter, r *http.Request) {
	if !rp.analytics.Enabled() {
		http.Error(w, "analytics are disabled", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	resp := mc.RespServerAnalytics{ServerIp: rp.ipnet.String()}

	row, err := rp.analytics.GetServerAnalytics(ctx, rp.serverInet())
	switch {
	case err == nil:
		resp.GamesCreated = row.GamesCreated
		resp.GamesFinished = row.GamesFinished
		resp.HumanWins = row.HumanWins
		resp.UpdatedAt = &row.UpdatedAt

	case errors.Is(err, sql.ErrNoRows):

	default:
		log.Error("failed to fetch server analytics", "err", err)
		http.Error(w, "failed to fetch server analytics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warn("failed to write server analytics", "err", err)
	}
}
