package wind

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rjkroege/plotwin/interact"
	"github.com/rjkroege/plotwin/plot"
)

// DefaultPollInterval is how long WaitKey lets the host wait for a key on
// each iteration.
const DefaultPollInterval = time.Millisecond

// Option configures a Registry.
type Option func(*Registry)

// WithPollInterval sets the per-iteration key poll timeout of WaitKey.
func WithPollInterval(d time.Duration) Option {
	return func(r *Registry) {
		r.pollInterval = d
	}
}

// WithClock replaces time.Now for WaitKey's timeout.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithControllerOptions sets options for the controller of every window
// created afterwards.
func WithControllerOptions(opts ...interact.Option) Option {
	return func(r *Registry) {
		r.controllerOpts = opts
	}
}

// Registry maps window names to open Windows on one Host.
type Registry struct {
	host Host

	mu      sync.Mutex
	windows map[string]*Window

	pollInterval   time.Duration
	now            func() time.Time
	controllerOpts []interact.Option
}

// NewRegistry returns an empty Registry on host.
func NewRegistry(host Host, opts ...Option) *Registry {
	r := &Registry{
		host:         host,
		windows:      make(map[string]*Window),
		pollInterval: DefaultPollInterval,
		now:          time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Registry) Host() Host { return r.host }

// Lookup returns the open Window registered under name.
func (r *Registry) Lookup(name string) (*Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[name]
	return w, ok
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

// NewWindow opens a cols x rows window called name showing surface. Any
// window already open under name is closed first; the newest window with
// a given name wins.
func (r *Registry) NewWindow(name string, surface plot.Surface, cols, rows int) (*Window, error) {
	if old, ok := r.Lookup(name); ok {
		if err := old.Close(); err != nil {
			log.Printf("wind: closing previous window %q: %v", name, err)
		}
	}
	// The host may still hold a window of that name that this registry
	// never owned.
	if h, ok := r.host.Lookup(name); ok {
		if alive, err := r.host.Alive(h); err == nil && alive {
			if err := r.host.Destroy(h); err != nil {
				log.Printf("wind: destroying stale window %q: %v", name, err)
			}
		}
	}

	h, err := r.host.Create(name, cols, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: create %q: %v", ErrHost, name, err)
	}
	w := &Window{
		reg:        r,
		name:       name,
		handle:     h,
		cols:       cols,
		rows:       rows,
		controller: interact.NewController(surface, r.controllerOpts...),
	}
	w.image = surface.Render(cols, rows)
	w.show()
	r.host.SetMouseCallback(h, r.mouseCallback, name)

	r.mu.Lock()
	r.windows[name] = w
	r.mu.Unlock()
	return w, nil
}

// remove drops w from the table if it is still the window registered
// under its name.
func (r *Registry) remove(w *Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.windows[w.name] == w {
		delete(r.windows, w.name)
	}
}

// mouseCallback routes raw host input to the Window registered under token.
func (r *Registry) mouseCallback(kind interact.Kind, x, y int, flags interact.Flags, token string) {
	w, ok := r.Lookup(token)
	if !ok {
		return
	}
	// Pick up a resize before positions are interpreted against the
	// cached image size.
	w.checkResize()
	ev := interact.NewPointerEvent(w.Surface(), w.imageSize(), kind, x, y, flags)
	if w.controller.Dispatch(ev) {
		w.Update()
	}
}

// Show opens a window for surface, waits until a key is pressed or the
// window is closed, then closes it. It returns the key or NoKey.
func (r *Registry) Show(name string, surface plot.Surface, cols, rows int) (int, error) {
	w, err := r.NewWindow(name, surface, cols, rows)
	if err != nil {
		return NoKey, err
	}
	key := w.WaitKey(0)
	return key, w.Close()
}
