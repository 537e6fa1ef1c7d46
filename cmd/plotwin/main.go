// Plotwin opens one or more interactive plot windows and waits for a key.
//
// Middle-drag pans, right-drag zooms around the press point, the wheel
// zooms around the pointer and a right double-click autoscales. Typing
// 'a' autoscales every window; 'q' quits.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"math"
	"os"

	"github.com/sanity-io/litter"

	"github.com/rjkroege/plotwin/config"
	"github.com/rjkroege/plotwin/draw"
	"github.com/rjkroege/plotwin/host"
	"github.com/rjkroege/plotwin/interact"
	"github.com/rjkroege/plotwin/plot"
	"github.com/rjkroege/plotwin/wind"
)

var configflag = flag.String("c", "", "Configuration file (TOML)")
var nwinflag = flag.Int("n", 1, "Number of windows (> 0)")
var winsize = flag.String("W", "", "Window Size (WidthxHeight), overrides the configuration")
var fontflag = flag.String("f", "", "Font, overrides the configuration")
var debugflag = flag.Bool("debug", false, "Log every pointer event")
var dumpconfigflag = flag.Bool("dumpconfig", false, "Print the effective configuration and exit")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configflag)
	if err != nil {
		log.Fatalf("can't load configuration: %v", err)
	}
	if *winsize != "" {
		cols, rows, err := parseWinsize(*winsize)
		if err != nil {
			log.Fatalf("bad -W: %v", err)
		}
		cfg.Cols, cfg.Rows = cols, rows
	}
	if *fontflag != "" {
		cfg.Font = *fontflag
	}
	cfg.Debug = cfg.Debug || *debugflag
	if err := cfg.Validate(); err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	if *dumpconfigflag {
		if err := cfg.Write(os.Stdout); err != nil {
			log.Fatalf("can't write configuration: %v", err)
		}
		return
	}
	if *nwinflag <= 0 {
		log.Fatalf("-n must be positive, not %d", *nwinflag)
	}

	h := host.NewPlan9(&draw.Device{},
		host.WithFont(cfg.Font),
		host.WithDoubleClick(uint32(cfg.DoubleClickMsec)))
	reg := wind.NewRegistry(h,
		wind.WithPollInterval(cfg.PollInterval()),
		wind.WithControllerOptions(
			interact.WithWheelBase(cfg.WheelBase),
			interact.WithDragScale(cfg.DragPixels)))

	windows := make([]*wind.Window, 0, *nwinflag)
	for i := 0; i < *nwinflag; i++ {
		name := fmt.Sprintf("plotwin-%d", i)
		w, err := reg.NewWindow(name, plot.NewAxes(wave(i)), cfg.Cols, cfg.Rows)
		if err != nil {
			log.Fatalf("can't open window %s: %v", name, err)
		}
		if cfg.Debug {
			w.SetEventHandler(traceEvent)
		}
		windows = append(windows, w)
	}

	for {
		switch reg.WaitKey(windows, 0) {
		case wind.NoKey:
			log.Println("all windows closed")
			return
		case 'q', 'Q':
			for _, w := range windows {
				if err := w.Close(); err != nil {
					log.Printf("close %s: %v", w.Name(), err)
				}
			}
			return
		case 'a':
			for _, w := range windows {
				w.Surface().SetXAutoscale()
				w.Surface().SetYAutoscale()
				w.Update()
			}
		}
	}
}

func parseWinsize(s string) (int, int, error) {
	var cols, rows int
	if n, err := fmt.Sscanf(s, "%dx%d", &cols, &rows); n != 2 || err != nil {
		return 0, 0, fmt.Errorf("%q is not WidthxHeight", s)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%q is not a positive size", s)
	}
	return cols, rows, nil
}

// wave samples a sine shifted by a quarter period per window.
func wave(i int) []plot.Point {
	const n = 200
	phase := float64(i) * math.Pi / 2
	pts := make([]plot.Point, n)
	for j := range pts {
		x := float64(j) * 4 * math.Pi / n
		pts[j] = plot.Point{X: x, Y: math.Sin(x + phase)}
	}
	return pts
}

type eventTrace struct {
	Kind  string
	Outer image.Point
	Inner image.Point
	Data  plot.Point
	Flags string
	Wheel float64
}

func traceEvent(ev interact.PointerEvent) bool {
	log.Print(litter.Sdump(eventTrace{
		Kind:  ev.Kind().String(),
		Outer: ev.OuterPoint(),
		Inner: ev.InnerPoint(),
		Data:  ev.Pos(),
		Flags: ev.Flags().String(),
		Wheel: ev.Flags().WheelDelta(),
	}))
	return false
}
