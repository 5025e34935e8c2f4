package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/spinlines/config"
	"github.com/zucenko/spinlines/model"
)

type GameServer struct {
	GameSessions  map[int32]*GameSession
	GameRequests  chan GameRequest
	CountRequests chan chan int
	Finished      chan int32
	Upgrader      *websocket.Upgrader

	cfg    config.Config
	log    log.FieldLogger
	nextId int32
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession hosts one puzzle for one connection.
type GameSession struct {
	State         GameSessionState
	Id            int32
	Seed          int64
	Puzzle        *model.Puzzle
	PlayerSession *PlayerSession

	Errors                chan int32
	Clicks                chan model.Click
	PlayerConnectRequests chan PlayerConnectRequest

	frame   time.Duration
	started time.Time
	done    chan struct{}
	log     log.FieldLogger
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
