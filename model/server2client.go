package model

// ServerMessage is one gob frame from the server. Only the slices that
// carry news are filled.
type ServerMessage struct {
	Setup     []Setup
	Moves     []MoveOutcome
	Rotations []Rotation
}

// Setup is enough to rebuild the server's puzzle: the grid comes from
// NewGrid(Size, rand.New(rand.NewSource(Seed))).
type Setup struct {
	Session  int32
	Size     int
	Seed     int64
	Blocking bool
	Interval int64
	Angle    int
	Col, Row int
}

type MoveOutcome struct {
	Col, Row int
	Result   MoveResult
	// avatar after the move
	AvatarCol, AvatarRow int
	Moves                int
}

type Rotation struct {
	Angle int
	At    int64
}

type ClientMessage struct {
	Clicks []Click
}

type Click struct {
	Col, Row int
}
