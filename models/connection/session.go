package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn) error
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client playing one game at a time against
// the computer. The connection is swapped on reconnection, so it is
// only reached through Conn.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	game                   *mb.Game
	reconnectionSignalChan chan bool
	awaitingReconnection   bool
	createdAt              time.Time
	mu                     sync.Mutex
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan bool),
		createdAt:              time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) Game() *mb.Game {
	return s.game
}

func (s *Session) SetGame(game *mb.Game) {
	s.game = game
}

// startGracePeriod opens the session to a reconnection and returns the
// channel closed when one arrives.
func (s *Session) startGracePeriod() chan bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaitingReconnection = true
	return s.reconnectionSignalChan
}

func (s *Session) endGracePeriod() {
	s.mu.Lock()
	s.awaitingReconnection = false
	s.mu.Unlock()
}

func (s *Session) remoteAddr() string {
	conn := s.Conn()
	if conn == nil {
		return ""
	}
	return conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn("timeout error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn("high server load/traffic error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	// Mobile clients going to background close abnormally
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Warn("abnormal closure error", "session", s.id, "err", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Info("close error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Error("critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	// Payloads a client of this game never sends: binary frames,
	// invalid UTF-8, oversized messages.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Warn("non-critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	log.Error("unexpected error", "session", s.id, "err", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. It also
// handles the abnormal or other types of errors of
// writing to a websocket connection.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

	for {
		conn := s.Conn()
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries >= maxWriteWsRetries {
				log.Error("max retries reached for writing to ws", "remote", s.remoteAddr(), "err", err)
				return NewConnErr(ConnLoopBreak).WithCause(err)
			}
			retries++
			log.Warn("writing to ws failed; retrying", "remote", s.remoteAddr(), "retry", retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).WithCause(err)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop").WithCause(err)
		}
	}
}

// Handles the errors that occurs when reading from
// ws connection. `ConnLoopContinue` asks the caller to read again.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries >= maxWriteWsRetries {
			return ConnLoopBreak
		}
		log.Warn("failed to read from ws conn; retrying", "remote", s.remoteAddr(), "retry", retries+1)
		time.Sleep(time.Duration((retries+1)*backOffFactor) * time.Second)
		return ConnLoopContinue

	default:
		log.Info("break ws conn loop", "remote", s.remoteAddr(), "err", err)
		return ConnLoopBreak
	}
}

// reconnectionAfterAbnormalClosure hands the session to conn. Only a
// session in its grace period accepts one. The client is told its
// session id on the new connection before the session loop resumes
// writing to it.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingReconnection {
		return cerr.ErrSessionNotReconnectable(s.id)
	}

	if conn != nil {
		resp := NewMessage[RespSessionId](CodeSessionID)
		resp.AddPayload(RespSessionId{SessionID: s.id})
		if err := conn.WriteJSON(resp); err != nil {
			return err
		}
	}

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			log.Debug("closing previous connection", "session", s.id, "err", err)
		}
	}

	// Wakes up the goroutine waiting in the grace period
	close(s.reconnectionSignalChan)

	s.conn = conn
	s.reconnectionSignalChan = make(chan bool)
	s.awaitingReconnection = false
	return nil
}
