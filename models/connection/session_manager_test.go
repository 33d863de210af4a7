package connection

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

func TestGenerateAndTerminateSession(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	session := bsm.GenerateNewSession(nil)
	if _, err := base64.RawURLEncoding.DecodeString(session.Id()); err != nil {
		t.Fatalf("session id is not url safe base64: %v", err)
	}

	found, err := bsm.FindSession(session.Id())
	if err != nil {
		t.Fatal(err)
	}
	if found != session {
		t.Fatal("expected the generated session")
	}
	if bsm.SessionsCount() != 1 {
		t.Fatalf("expected sessions: %d\t got: %d", 1, bsm.SessionsCount())
	}

	bsm.TerminateSession(session.Id())
	if _, err := bsm.FindSession(session.Id()); err == nil {
		t.Fatal("expected the session to be gone")
	}
}

func TestCleanupStale(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Millisecond * 10))

	stale := bsm.GenerateNewSession(nil)
	stale.createdAt = time.Now().Add(-time.Second)
	fresh := bsm.GenerateNewSession(nil)

	bsm.cleanupStale()

	if _, err := bsm.FindSession(stale.Id()); err == nil {
		t.Fatal("expected the stale session to be removed")
	}
	if _, err := bsm.FindSession(fresh.Id()); err != nil {
		t.Fatal(err)
	}
}

func TestCleanupPeriodicallyStopsOnCancel(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithCleanupInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bsm.CleanupPeriodically(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestHandleAbnormalClosureSession(t *testing.T) {
	t.Run("no game", func(t *testing.T) {
		bsm := NewBattleshipSessionManager()
		session := bsm.GenerateNewSession(nil)

		err := bsm.HandleAbnormalClosureSession(session)
		var connErr ConnErr
		if !errors.As(err, &connErr) || connErr.Code() != ConnLoopBreak {
			t.Fatalf("expected code: %d\t got: %v", ConnLoopBreak, err)
		}
	})

	t.Run("grace period over", func(t *testing.T) {
		bsm := NewBattleshipSessionManager(WithGracePeriod(time.Millisecond * 10))
		session := bsm.GenerateNewSession(nil)
		session.SetGame(mb.NewGame(mb.NewRandom(1)))

		if err := bsm.HandleAbnormalClosureSession(session); err == nil {
			t.Fatal("expected the grace period to run out")
		}
	})

	t.Run("reconnected", func(t *testing.T) {
		bsm := NewBattleshipSessionManager(WithGracePeriod(time.Second * 5))
		session := bsm.GenerateNewSession(nil)
		session.SetGame(mb.NewGame(mb.NewRandom(1)))

		errCh := make(chan error, 1)
		go func() {
			errCh <- bsm.HandleAbnormalClosureSession(session)
		}()

		if err := reconnectWhenWaiting(session, nil); err != nil {
			t.Fatal(err)
		}
		if err := <-errCh; err != nil {
			t.Fatalf("expected reconnection, got: %v", err)
		}
	})
}

// reconnectWhenWaiting retries until the session has entered its grace
// period.
func reconnectWhenWaiting(session *Session, conn *websocket.Conn) error {
	var err error
	for i := 0; i < 200; i++ {
		if err = session.reconnectionAfterAbnormalClosure(conn); err == nil {
			return nil
		}
		time.Sleep(time.Millisecond * 5)
	}
	return err
}

type connPair struct {
	server *websocket.Conn
	client *websocket.Conn
}

// newConnPairs opens n websocket connections and returns both ends.
func newConnPairs(t *testing.T, n int) []connPair {
	t.Helper()

	serverConns := make(chan *websocket.Conn, n)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	pairs := make([]connPair, 0, n)
	for i := 0; i < n; i++ {
		client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { client.Close() })

		server := <-serverConns
		t.Cleanup(func() { server.Close() })
		pairs = append(pairs, connPair{server: server, client: client})
	}
	return pairs
}

func TestReconnectSession(t *testing.T) {
	pairs := newConnPairs(t, 2)
	bsm := NewBattleshipSessionManager(WithGracePeriod(time.Second * 5))

	session := bsm.GenerateNewSession(pairs[0].server)
	session.SetGame(mb.NewGame(mb.NewRandom(1)))

	// A live session cannot be taken over
	err := bsm.ReconnectSession(session.Id(), pairs[1].server)
	if err == nil {
		t.Fatal("expected the reconnection to be refused outside the grace period")
	}
	if session.Conn() != pairs[0].server {
		t.Fatal("a refused reconnection must keep the current connection")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bsm.HandleAbnormalClosureSession(session)
	}()

	if err := reconnectWhenWaiting(session, pairs[1].server); err != nil {
		t.Fatal(err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("expected reconnection, got: %v", err)
	}

	if session.Conn() != pairs[1].server {
		t.Fatal("expected the session to use the new connection")
	}
	if err := pairs[0].server.WriteMessage(websocket.TextMessage, []byte("ping")); err == nil {
		t.Fatal("expected the previous connection to be closed")
	}

	var resp Message[RespSessionId]
	if err := pairs[1].client.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != CodeSessionID || resp.Payload.SessionID != session.Id() {
		t.Fatalf("expected session id: %s\t got: %s (code %d)", session.Id(), resp.Payload.SessionID, resp.Code)
	}

	// The grace period is over once reconnected
	if err := session.reconnectionAfterAbnormalClosure(nil); err == nil {
		t.Fatal("expected a second reconnection to be refused")
	}
}

func TestFetchCodeFromMsg(t *testing.T) {
	tests := []struct {
		name         string
		payload      []byte
		expectedCode uint8
		expectErr    bool
		sentinel     error
	}{
		{"attack", []byte(`{"code":3,"payload":{"row":1}}`), CodeAttack, false, nil},
		{"session id code", []byte(`{"code":0}`), CodeSessionID, false, nil},
		{"missing code", []byte(`{"payload":{}}`), 255, true, cerr.ErrSignalAbsent},
		{"null code", []byte(`{"code":null}`), 255, true, cerr.ErrSignalAbsent},
		{"not json", []byte(`A 5`), 255, true, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, err := FetchCodeFromMsg(test.payload)
			if (err != nil) != test.expectErr {
				t.Fatalf("expected error: %t\t got: %v", test.expectErr, err)
			}
			if test.sentinel != nil && !errors.Is(err, test.sentinel) {
				t.Fatalf("expected err: %v\t got: %v", test.sentinel, err)
			}
			if code != test.expectedCode {
				t.Fatalf("expected code: %d\t got: %d", test.expectedCode, code)
			}
		})
	}
}
