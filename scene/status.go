package scene

import (
	"fmt"

	"github.com/zucenko/spinlines/model"
)

// Status renders the one line HUD summary of a snapshot.
func Status(s model.Snapshot, remote bool) string {
	axis := "N/S"
	if s.Angle%180 != 0 {
		axis = "E/W"
	}
	if !s.Blocking {
		axis = "any"
	}
	mode := "local"
	if remote {
		mode = "remote"
	}
	return fmt.Sprintf("%3d°  open %s  moves %d  %s", s.Angle, axis, s.Moves, mode)
}
