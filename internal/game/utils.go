package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/config"
	"github.com/iburimskiy/hand-constellation/internal/geom"
)

// ToScreen maps a normalized landmark position to window pixels.
func ToScreen(p geom.Point3D) geom.Point2D {
	return geom.Point2D{
		X: geom.Clamp01(p.X) * config.WindowWidth,
		Y: geom.Clamp01(p.Y) * config.WindowHeight,
	}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
