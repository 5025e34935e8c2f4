package remote

import (
	"context"
	"encoding/gob"
	"io/ioutil"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/spinlines/model"
)

func quiet() log.FieldLogger {
	l := log.New()
	l.Out = ioutil.Discard
	return l
}

func TestMirrorRebuildsGrid(t *testing.T) {
	setup := model.Setup{Size: 10, Seed: 77, Blocking: true, Interval: 1000, Angle: 180, Col: 3, Row: 4}
	p := Mirror(setup, 1200, 1200, quiet())

	want := model.NewGrid(10, rand.New(rand.NewSource(77)))
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			assert.Equal(t, want.DirectionAt(i, j), p.Grid().DirectionAt(i, j))
			assert.Equal(t, want.ColorAt(i, j), p.Grid().ColorAt(i, j))
		}
	}
	assert.Equal(t, 180, p.Grid().Angle())
	assert.Equal(t, model.Avatar{Col: 3, Row: 4}, p.Avatar())
}

func TestApply(t *testing.T) {
	p := Mirror(model.Setup{Size: 10, Seed: 1, Blocking: true, Interval: 1000, Col: 0, Row: 9}, 1200, 1200, quiet())
	moves := Apply(p, model.ServerMessage{
		Rotations: []model.Rotation{{Angle: 90, At: 1000}, {Angle: 180, At: 2000}},
		Moves: []model.MoveOutcome{
			{Col: 1, Row: 9, Result: model.Blocked, AvatarCol: 0, AvatarRow: 9},
			{Col: 0, Row: 8, Result: model.Moved, AvatarCol: 0, AvatarRow: 8, Moves: 1},
		},
	})
	assert.Len(t, moves, 2)
	assert.Equal(t, 180, p.Grid().Angle())
	assert.Equal(t, model.Avatar{Col: 0, Row: 8, Moves: 1}, p.Avatar())
}

// fakeServer answers with a setup and echoes every click back as a move.
func fakeServer(t *testing.T, first model.ServerMessage) string {
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if err := write(conn, first); err != nil {
			return
		}
		for {
			var cm model.ClientMessage
			if err := readClient(conn, &cm); err != nil {
				return
			}
			for _, c := range cm.Clicks {
				write(conn, model.ServerMessage{Moves: []model.MoveOutcome{{
					Col: c.Col, Row: c.Row, Result: model.Moved, AvatarCol: c.Col, AvatarRow: c.Row, Moves: 1,
				}}})
			}
		}
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestDialAndClick(t *testing.T) {
	url := fakeServer(t, model.ServerMessage{Setup: []model.Setup{{Session: 4, Size: 10, Seed: 3, Col: 0, Row: 9}}})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := Dial(ctx, url, quiet())
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, int32(4), c.Setup().Session)

	require.NoError(t, c.Click(1, 9))
	select {
	case m := <-c.Messages():
		require.Len(t, m.Moves, 1)
		assert.Equal(t, 1, m.Moves[0].AvatarCol)
	case <-time.After(2 * time.Second):
		t.Fatal("no echo")
	}
}

func TestDialWithoutSetup(t *testing.T) {
	url := fakeServer(t, model.ServerMessage{Rotations: []model.Rotation{{Angle: 90}}})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Dial(ctx, url, quiet())
	assert.Error(t, err)
}

func TestDialRefused(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Dial(ctx, "ws://127.0.0.1:1/play", quiet())
	assert.Error(t, err)
}

func write(conn *websocket.Conn, m model.ServerMessage) error {
	w, err := conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(m); err != nil {
		return err
	}
	return w.Close()
}

func readClient(conn *websocket.Conn, cm *model.ClientMessage) error {
	_, r, err := conn.NextReader()
	if err != nil {
		return err
	}
	return gob.NewDecoder(r).Decode(cm)
}
