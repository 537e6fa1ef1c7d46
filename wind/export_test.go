package wind

// CheckResize exposes checkResize to the external tests.
func (w *Window) CheckResize() { w.checkResize() }
