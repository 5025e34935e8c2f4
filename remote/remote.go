// Package remote plays a puzzle hosted by a spinlines server. The server
// owns the state; the client keeps a mirror of it for drawing.
package remote

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/spinlines/model"
)

type Client struct {
	conn     *websocket.Conn
	setup    model.Setup
	messages chan model.ServerMessage
	log      log.FieldLogger
	err      error
}

// Dial connects to url and waits for the session setup.
func Dial(ctx context.Context, url string, logger log.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	first, err := read(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read setup: %w", err)
	}
	if len(first.Setup) != 1 {
		conn.Close()
		return nil, errors.New("first message carries no setup")
	}
	conn.SetReadDeadline(time.Time{})

	c := &Client{
		conn:     conn,
		setup:    first.Setup[0],
		messages: make(chan model.ServerMessage, 16),
		log:      logger.WithField("session", first.Setup[0].Session),
	}
	go c.loopRead()
	return c, nil
}

func read(conn *websocket.Conn) (model.ServerMessage, error) {
	var m model.ServerMessage
	_, r, err := conn.NextReader()
	if err != nil {
		return m, err
	}
	err = gob.NewDecoder(r).Decode(&m)
	return m, err
}

func (c *Client) loopRead() {
	defer close(c.messages)
	for {
		m, err := read(c.conn)
		if err != nil {
			c.err = err
			c.log.Debugf("remote read ended %v", err)
			return
		}
		c.messages <- m
	}
}

func (c *Client) Setup() model.Setup {
	return c.setup
}

// Messages is closed when the connection ends, Err tells why.
func (c *Client) Messages() <-chan model.ServerMessage {
	return c.messages
}

func (c *Client) Err() error {
	return c.err
}

// Click asks the server to move the avatar to (col, row). Not safe for
// concurrent use.
func (c *Client) Click(col, row int) error {
	w, err := c.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(model.ClientMessage{Clicks: []model.Click{{Col: col, Row: row}}}); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *Client) Close() error {
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// Mirror rebuilds the server's puzzle locally for a width x height viewport.
func Mirror(setup model.Setup, width, height int, logger log.FieldLogger) *model.Puzzle {
	p := model.New(model.Options{
		Width:            width,
		Height:           height,
		GridSize:         setup.Size,
		RotationInterval: setup.Interval,
		Blocking:         setup.Blocking,
	}, rand.New(rand.NewSource(setup.Seed)), logger)
	p.SetAngle(setup.Angle)
	p.Place(setup.Col, setup.Row, 0)
	return p
}

// Apply copies a server message into the mirror and returns the move
// outcomes it carried.
func Apply(p *model.Puzzle, m model.ServerMessage) []model.MoveOutcome {
	for _, s := range m.Setup {
		p.SetAngle(s.Angle)
		p.Place(s.Col, s.Row, 0)
	}
	for _, r := range m.Rotations {
		p.SetAngle(r.Angle)
	}
	for _, mv := range m.Moves {
		p.Place(mv.AvatarCol, mv.AvatarRow, mv.Moves)
	}
	return m.Moves
}
