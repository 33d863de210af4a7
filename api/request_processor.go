package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/sea-battle/db/sqlc"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
	mc "github.com/saeidalz13/sea-battle/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	dbManager sqlc.DbManager,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      dbManager.Analytics,
		ipnet:          findServerIpNet(),
	}
}

// findServerIpNet picks the first IPv4 address of an interface that is
// up and not a loopback. Hosts without one report 127.0.0.1/32.
func findServerIpNet() net.IPNet {
	loopback := net.IPNet{
		IP:   net.IPv4(127, 0, 0, 1).To4(),
		Mask: net.CIDRMask(32, 32),
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("failed to list network interfaces", "err", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			log.Warn("failed to read interface addresses", "iface", iface.Name, "err", err)
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	log.Warn("no external ipv4 address found; using loopback")
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "remote", r.RemoteAddr, "err", err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Info("a new connection established", "remote", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			// This either means an expired session or invalid session ID
			log.Warn("reconnection refused", "session", sessionIdQuery, "err", err)
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
		}
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeCreateGame:
			// A session plays one game at a time; a new request abandons
			// the previous one.
			if prev := session.Game(); prev != nil {
				rp.gameManager.TerminateGame(prev.Uuid())
			}

			game, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			session.SetGame(game)
			log.Info("game created", "session", sessionId, "game", game.Uuid())

			rp.analytics.Record("increment games created", func(ctx context.Context) error {
				return rp.analytics.IncrementGamesCreatedCount(ctx, rp.serverInet())
			})

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAttack:
			game := session.Game()
			respMsg := NewRequest(payload).HandleAttack(game)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// This means attack operation did not complete
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if game.Turn() == mb.TurnComputer && !game.IsFinished() {
				if err := rp.playComputerTurn(session, game); err != nil {
					break sessionLoop
				}
			}

			if game.IsFinished() {
				if err := rp.endGame(session, game); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeFetchBoards:
			respMsg := NewRequest(payload).HandleFetchBoards(session.Game())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

// playComputerTurn sends one message per computer shot.
func (rp RequestProcessor) playComputerTurn(session *mc.Session, game *mb.Game) error {
	shots, err := game.ComputerTurn()
	if err != nil {
		log.Error("computer turn failed", "session", session.Id(), "game", game.Uuid(), "err", err)
		return err
	}

	for _, msg := range NewComputerAttackMessages(game, shots) {
		if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
			return err
		}
	}
	return nil
}

func (rp RequestProcessor) endGame(session *mc.Session, game *mb.Game) error {
	winner, _ := game.Winner()
	log.Info("game finished", "session", session.Id(), "game", game.Uuid(), "winner", winner, "duration", time.Since(game.CreatedAt()).Round(time.Second))

	rp.analytics.Record("increment games finished", func(ctx context.Context) error {
		return rp.analytics.RecordGameFinished(ctx, rp.serverInet(), winner == mb.TurnHuman)
	})

	if err := rp.sessionManager.WriteToSessionConn(session, NewEndGameMessage(game), mc.MessageTypeJSON); err != nil {
		return err
	}

	rp.gameManager.TerminateGame(game.Uuid())
	session.SetGame(nil)
	return nil
}
