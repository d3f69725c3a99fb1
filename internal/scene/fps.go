package scene

import "time"

// NextLevel returns the level to use after a sampling window in which frames
// were drawn. A window below MinFPS drops exactly one level; Low is the floor.
func NextLevel(current Level, frames int, window time.Duration) Level {
	if window <= 0 || current <= Low {
		return max(current, Low)
	}
	fps := float64(frames) / window.Seconds()
	if fps < MinFPS {
		return current - 1
	}
	return current
}
