package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/sea-battle/db/sqlc"
	"github.com/saeidalz13/sea-battle/internal/config"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
	mc "github.com/saeidalz13/sea-battle/models/connection"
)

const (
	defaultPort     int           = 8000
	shutdownTimeout time.Duration = time.Second * 10
)

type Server struct {
	port           int
	stage          string
	seed           uint64
	Db             *sql.DB
	GameManager    *mb.BattleshipGameManager
	SessionManager *mc.BattleshipSessionManager
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	server := Server{
		port:  defaultPort,
		stage: config.StageDev,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}

	server.SessionManager = mc.NewBattleshipSessionManager()
	server.GameManager = mb.NewBattleshipGameManager(server.seed)

	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return cerr.ErrInvalidStage(stage)
		}
		s.stage = stage
		return nil
	}
}

// WithDb enables analytics. A nil db is accepted and leaves them off.
func WithDb(db *sql.DB) Option {
	return func(s *Server) error {
		s.Db = db
		return nil
	}
}

// WithSeed makes fleet placement and computer shots reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Server) error {
		s.seed = seed
		return nil
	}
}

func (s *Server) Port() int {
	return s.port
}

func (s *Server) Stage() string {
	return s.stage
}

func (s *Server) querier() sqlc.Querier {
	if s.Db == nil {
		return nil
	}
	return sqlc.New(s.Db)
}

func (s *Server) Handler() http.Handler {
	rp := NewRequestProcessor(s.SessionManager, s.GameManager, sqlc.NewDbManager(s.querier()))

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	mux.HandleFunc("GET /analytics", rp.HandleServerAnalytics)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.SessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", s.port, "stage", s.stage, "analytics", s.Db != nil)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
