package server

import (
	"context"
	"encoding/gob"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/spinlines/config"
	"github.com/zucenko/spinlines/model"
)

// frame is how often a session polls its rotation clock.
const frame = 16 * time.Millisecond

func NewGameServer(cfg config.Config, logger log.FieldLogger) *GameServer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &GameServer{
		GameSessions:  make(map[int32]*GameSession),
		GameRequests:  make(chan GameRequest),
		CountRequests: make(chan chan int),
		Finished:      make(chan int32),
		Upgrader:      &websocket.Upgrader{},
		cfg:           cfg,
		log:           logger,
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := s.cfg.SessionTimeout()
	return func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			s.log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			if gca.ResponseCode != GAME_READY {
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			s.log.Warn("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied
			s.log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			gca.GameSession.abandon()
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			s.log.Warn("HandleHttpCall PlayerConnectRequests TIMEOUTED")
			gca.GameSession.abandon()
			return
		}

		<-gameOver
		s.log.WithField("session", gca.GameSession.Id).Debug("HandleHttpCall game over")
	}
}

func (s *GameServer) HandleHealth() http.HandlerFunc {
	timeout := s.cfg.SessionTimeout()
	return func(w http.ResponseWriter, r *http.Request) {
		count := make(chan int, 1)
		select {
		case s.CountRequests <- count:
		case <-time.After(timeout):
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		select {
		case n := <-count:
			fmt.Fprintf(w, "ok sessions=%d\n", n)
		case <-time.After(timeout):
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
}

// Loop owns the session registry until ctx is done.
func (s *GameServer) Loop(ctx context.Context) {
	s.log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("GameServer.Loop stopped")
			return
		case gameReq := <-s.GameRequests:
			if max := s.cfg.Server.MaxSessions; max > 0 && len(s.GameSessions) >= max {
				s.log.Warnf("refusing session, %d running", len(s.GameSessions))
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_UNAVAILABLE}
				continue
			}
			s.nextId++
			gs := s.newSession(s.nextId, s.cfg.Seed())
			s.GameSessions[gs.Id] = gs
			go gs.Loop(ctx, s.Finished)
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case id := <-s.Finished:
			if gs, ok := s.GameSessions[id]; ok {
				s.log.WithField("session", id).Infof("session finished %s", gs.State.Name())
				delete(s.GameSessions, id)
			}
		case count := <-s.CountRequests:
			count <- len(s.GameSessions)
		}
	}
}

func (s *GameServer) newSession(id int32, seed int64) *GameSession {
	logger := s.log.WithFields(log.Fields{"session": id, "seed": seed})
	logger.Info("create GameSession")
	return &GameSession{
		State:                 GS_NEW,
		Id:                    id,
		Seed:                  seed,
		Puzzle:                model.New(s.cfg.Options(0, 0), rand.New(rand.NewSource(seed)), logger),
		Errors:                make(chan int32),
		Clicks:                make(chan model.Click),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		frame:                 frame,
		started:               time.Now(),
		done:                  make(chan struct{}),
		log:                   logger,
	}
}

// abandon ends a session whose connection never arrived.
func (gs *GameSession) abandon() {
	select {
	case gs.Errors <- gs.Id:
	case <-gs.done:
	}
}

func (gs *GameSession) Loop(ctx context.Context, finished chan<- int32) {
	gs.log.Debug("GameSession.Loop start")
	ticker := time.NewTicker(gs.frame)
	defer func() {
		ticker.Stop()
		if gs.PlayerSession != nil {
			close(gs.PlayerSession.GameOver)
		}
		close(gs.done)
		select {
		case finished <- gs.Id:
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-ctx.Done():
			gs.State = GS_OVER
			if gs.PlayerSession != nil {
				gs.PlayerSession.State = PS_OVER
			}
			return
		case pcr := <-gs.PlayerConnectRequests:
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			gs.PlayerSession.State = PS_PLAY
			gs.send(gs.MakeGameSetupMessage())
		case <-gs.Errors:
			gs.log.Warn("killing GS")
			gs.State = GS_ERR
			if gs.PlayerSession != nil {
				gs.PlayerSession.State = PS_ERR
			}
			return
		case click := <-gs.Clicks:
			gs.send(gs.Turn(click))
		case now := <-ticker.C:
			if gs.State != GS_PLAY {
				continue
			}
			ms := int64(now.Sub(gs.started) / time.Millisecond)
			if gs.Puzzle.Advance(ms) {
				gs.send(model.ServerMessage{
					Rotations: []model.Rotation{{Angle: gs.Puzzle.Grid().Angle(), At: ms}},
				})
			}
		}
	}
}

// Turn applies one click and reports the outcome.
func (gs *GameSession) Turn(click model.Click) model.ServerMessage {
	res := gs.Puzzle.Click(click.Col, click.Row)
	a := gs.Puzzle.Avatar()
	return model.ServerMessage{Moves: []model.MoveOutcome{{
		Col:       click.Col,
		Row:       click.Row,
		Result:    res,
		AvatarCol: a.Col,
		AvatarRow: a.Row,
		Moves:     a.Moves,
	}}}
}

func (gs *GameSession) MakeGameSetupMessage() model.ServerMessage {
	s := gs.Puzzle.Snapshot()
	return model.ServerMessage{
		Setup: []model.Setup{{
			Session:  gs.Id,
			Size:     s.GridSize,
			Seed:     gs.Seed,
			Blocking: s.Blocking,
			Interval: s.Interval,
			Angle:    s.Angle,
			Col:      s.Col,
			Row:      s.Row,
		}},
	}
}

func (gs *GameSession) send(m model.ServerMessage) {
	if gs.PlayerSession == nil {
		return
	}
	select {
	case gs.PlayerSession.MessagesToSend <- m:
	default:
		gs.log.Warn("dropping message, MessagesToSend FULL")
	}
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) {
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             gs.Id,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSession = ps
}

func (ps *PlayerSession) fail() {
	select {
	case ps.GameSession.Errors <- ps.Id:
	case <-ps.GameSession.done:
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	logger := ps.GameSession.log
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			logger.Debugf("LoopChannelRead err reading message from Conn %v", err)
			ps.fail()
			return
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			logger.Warnf("LoopChannelRead cant decode %v", err)
			ps.fail()
			return
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		for _, click := range cm.Clicks {
			select {
			case ps.GameSession.Clicks <- click:
			case <-ps.GameSession.done:
				return
			}
		}
	}
}

// this function only consumes. no worries about full buffer stuck
func (ps *PlayerSession) LoopChannelWrite() {
	logger := ps.GameSession.log
	for {
		select {
		case <-ps.GameSession.done:
			return
		case mes := <-ps.MessagesToSend:
			w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				logger.Warnf("LoopChannelWrite cant get writer %v", err)
				ps.fail()
				return
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				logger.Warnf("LoopChannelWrite cant encode %v", err)
				ps.fail()
				return
			}
			if err := w.Close(); err != nil {
				logger.Warnf("LoopChannelWrite cant flush %v", err)
				ps.fail()
				return
			}
			ps.DebugOutMessages++
		}
	}
}
