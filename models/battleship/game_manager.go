package battleship

import (
	"sync"
	"sync/atomic"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

type GameManager interface {
	CreateGame() *Game
	FetchGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	GamesCount() int
}

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex

	// Each game owns its Random; seed 0 means clock seeded.
	seed    uint64
	created atomic.Uint64
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager(seed uint64) *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
		seed:  seed,
	}
}

func (bgm *BattleshipGameManager) newRandom() Random {
	n := bgm.created.Add(1)
	if bgm.seed == 0 {
		return NewRandom(0)
	}
	return NewRandom(bgm.seed + n)
}

func (bgm *BattleshipGameManager) CreateGame() *Game {
	game := NewGame(bgm.newRandom())

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	return game
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) GamesCount() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
