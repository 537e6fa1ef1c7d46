// Package host implements wind.Host on devdraw, one display connection
// per window.
package host

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sort"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/rjkroege/plotwin/draw"
	"github.com/rjkroege/plotwin/internal/ui"
	"github.com/rjkroege/plotwin/wind"
)

// ErrUnknownWindow is returned for handles that were never created.
var ErrUnknownWindow = errors.New("host: unknown window")

// Opener opens one devdraw display. *draw.Device is the real one.
type Opener interface {
	NewDisplay(errch chan<- error, fontname, label, winsize string) (draw.Display, error)
}

// Option configures a Plan9 host.
type Option func(*Plan9)

// WithFont sets the font passed to every display. Empty means the
// devdraw default.
func WithFont(name string) Option {
	return func(p *Plan9) {
		p.fontname = name
	}
}

// WithDoubleClick sets the double click interval in milliseconds.
func WithDoubleClick(msec uint32) Option {
	return func(p *Plan9) {
		p.doubleClickMsec = msec
	}
}

var _ = wind.Host((*Plan9)(nil))

// Plan9 is a wind.Host whose windows are devdraw displays. Keyboard input
// from every window is merged into one channel by per-window goroutines.
// Mouse and resize notifications are consumed only inside PollKey, so
// pointer callbacks run on the caller's goroutine.
type Plan9 struct {
	opener          Opener
	fontname        string
	doubleClickMsec uint32

	mu      sync.Mutex
	next    wind.Handle
	screens map[wind.Handle]*screen
	byName  map[string]wind.Handle

	keys chan rune
}

type screen struct {
	name    string
	display draw.Display
	mouse   *draw.Mousectl
	errch   chan error
	done    chan struct{}
	dead    bool
	tracker *ui.ButtonTracker

	cb    wind.MouseCallback
	token string
}

// NewPlan9 returns a host that opens its windows with opener.
func NewPlan9(opener Opener, opts ...Option) *Plan9 {
	p := &Plan9{
		opener:  opener,
		screens: make(map[wind.Handle]*screen),
		byName:  make(map[string]wind.Handle),
		keys:    make(chan rune, 32),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Plan9) Create(name string, cols, rows int) (wind.Handle, error) {
	errch := make(chan error, 4)
	d, err := p.opener.NewDisplay(errch, p.fontname, name, fmt.Sprintf("%dx%d", cols, rows))
	if err != nil {
		return 0, fmt.Errorf("open display %q: %w", name, err)
	}
	if err := d.Attach(draw.Refnone); err != nil {
		d.Close()
		return 0, fmt.Errorf("attach %q: %w", name, err)
	}
	s := &screen{
		name:    name,
		display: d,
		mouse:   d.InitMouse(),
		errch:   errch,
		done:    make(chan struct{}),
		tracker: ui.NewButtonTracker(p.doubleClickMsec),
	}
	go p.forwardKeys(d.InitKeyboard(), s.done)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	h := p.next
	p.screens[h] = s
	p.byName[name] = h
	return h, nil
}

func (p *Plan9) forwardKeys(kc *draw.Keyboardctl, done <-chan struct{}) {
	for {
		select {
		case r := <-kc.C:
			select {
			case p.keys <- r:
			case <-done:
				return
			}
		case <-done:
			return
		}
	}
}

func (p *Plan9) screen(h wind.Handle) (*screen, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.screens[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindow, h)
	}
	return s, nil
}

func (p *Plan9) Lookup(name string) (wind.Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.byName[name]
	return h, ok
}

func (p *Plan9) Destroy(h wind.Handle) error {
	s, err := p.screen(h)
	if err != nil {
		return err
	}
	if s.dead {
		return nil
	}
	s.dead = true
	close(s.done)
	return s.display.Close()
}

// Alive reports false once the display has reported an error, which is
// how devdraw signals that the user closed the window.
func (p *Plan9) Alive(h wind.Handle) (bool, error) {
	s, err := p.screen(h)
	if err != nil {
		return false, err
	}
	s.checkHangup()
	return !s.dead, nil
}

func (s *screen) checkHangup() {
	if s.dead {
		return
	}
	select {
	case err := <-s.errch:
		log.Printf("host: window %q: %v", s.name, err)
		s.dead = true
		close(s.done)
	default:
	}
}

func (p *Plan9) ImageRect(h wind.Handle) (image.Rectangle, error) {
	s, err := p.screen(h)
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rectangle{Max: s.display.ScreenImage().R().Size()}, nil
}

// Show stretches img over the client area and uploads it.
func (p *Plan9) Show(h wind.Handle, img image.Image) error {
	s, err := p.screen(h)
	if err != nil {
		return err
	}
	if s.dead {
		return fmt.Errorf("show %q: window closed", s.name)
	}
	dst := s.display.ScreenImage()
	sr := dst.R()
	if sr.Empty() {
		return nil
	}

	frame := image.NewRGBA(image.Rectangle{Max: sr.Size()})
	if img.Bounds().Size() == sr.Size() {
		xdraw.Copy(frame, image.Point{}, img, img.Bounds(), xdraw.Src, nil)
	} else {
		xdraw.BiLinear.Scale(frame, frame.Rect, img, img.Bounds(), xdraw.Src, nil)
	}

	src, err := s.display.AllocImage(frame.Rect, draw.RGBA32, false, draw.Notacolor)
	if err != nil {
		return fmt.Errorf("show %q: %w", s.name, err)
	}
	defer src.Free()
	if _, err := src.Load(frame.Rect, rgba32(frame)); err != nil {
		return fmt.Errorf("show %q: load: %w", s.name, err)
	}
	dst.Draw(sr, src, nil, image.Point{})
	return s.display.Flush()
}

// rgba32 lays out img in devdraw's RGBA32 order, which is a little-endian
// r8g8b8a8 word per pixel.
func rgba32(img *image.RGBA) []byte {
	w, hgt := img.Rect.Dx(), img.Rect.Dy()
	buf := make([]byte, 0, 4*w*hgt)
	for y := 0; y < hgt; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := 0; x < len(row); x += 4 {
			buf = append(buf, row[x+3], row[x+2], row[x+1], row[x])
		}
	}
	return buf
}

func (p *Plan9) SetMouseCallback(h wind.Handle, cb wind.MouseCallback, token string) {
	s, err := p.screen(h)
	if err != nil {
		return
	}
	s.cb = cb
	s.token = token
}

// PollKey first handles the resize and mouse notifications that are
// already queued for every live window, then waits up to timeout for a
// key. A timeout of zero or less does not wait.
func (p *Plan9) PollKey(timeout time.Duration) int {
	p.mu.Lock()
	handles := make([]wind.Handle, 0, len(p.screens))
	for h := range p.screens {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	screens := make([]*screen, len(handles))
	for i, h := range handles {
		screens[i] = p.screens[h]
	}
	p.mu.Unlock()

	for _, s := range screens {
		s.drain()
	}

	if timeout <= 0 {
		select {
		case r := <-p.keys:
			return int(r)
		default:
			return wind.NoKey
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case r := <-p.keys:
		return int(r)
	case <-t.C:
		return wind.NoKey
	}
}

func (s *screen) drain() {
	for {
		s.checkHangup()
		if s.dead {
			return
		}
		select {
		case <-s.mouse.Resize:
			if err := s.display.Attach(draw.Refnone); err != nil {
				log.Printf("host: reattach %q: %v", s.name, err)
			}
		case m := <-s.mouse.C:
			s.deliver(m)
		default:
			return
		}
	}
}

func (s *screen) deliver(m draw.Mouse) {
	origin := s.display.ScreenImage().R().Min
	for _, ev := range s.tracker.Track(m.Point.Sub(origin), m.Buttons, m.Msec) {
		// A callback may have destroyed the window.
		if s.cb == nil || s.dead {
			return
		}
		s.cb(ev.Kind, ev.Point.X, ev.Point.Y, ev.Flags, s.token)
	}
}
