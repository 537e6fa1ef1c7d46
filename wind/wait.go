package wind

import "time"

// WaitKey blocks until a key is pressed, delay has elapsed (when positive)
// or every window in windows is closed. It returns the key, or NoKey for
// the other two cases. While waiting it re-renders windows whose size the
// window manager changed. An empty windows returns at once.
func (r *Registry) WaitKey(windows []*Window, delay time.Duration) int {
	start := r.now()
	for {
		if key := r.host.PollKey(r.pollInterval); key != NoKey {
			return key
		}
		if delay > 0 && r.now().Sub(start) >= delay {
			return NoKey
		}
		if allClosed(windows) {
			return NoKey
		}
		for _, w := range windows {
			w.checkResize()
		}
	}
}

func allClosed(windows []*Window) bool {
	for _, w := range windows {
		if w.Alive() {
			return false
		}
	}
	return true
}
