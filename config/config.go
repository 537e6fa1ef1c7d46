// Package config holds the settings of the plotwin command. Defaults are
// compiled in, a TOML file may override them and PLOTWIN_* environment
// variables override both.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// ErrConfig wraps every failure to load or validate a configuration.
var ErrConfig = errors.New("config")

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "PLOTWIN"

type Config struct {
	// Initial client size of each window.
	Cols int `toml:"cols" split_words:"true"`
	Rows int `toml:"rows" split_words:"true"`

	// Font passed to devdraw. Empty selects its default.
	Font string `toml:"font" split_words:"true"`

	PollMsec        int     `toml:"poll_msec" split_words:"true"`
	DoubleClickMsec int     `toml:"double_click_msec" split_words:"true"`
	WheelBase       float64 `toml:"wheel_base" split_words:"true"`
	DragPixels      float64 `toml:"drag_pixels" split_words:"true"`

	Debug bool `toml:"debug" split_words:"true"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Cols:            640,
		Rows:            480,
		PollMsec:        1,
		DoubleClickMsec: 500,
		WheelBase:       1.2,
		DragPixels:      100,
	}
}

// Load returns the defaults overridden by the TOML file at path, if path is
// not empty, and then by the environment. The result is validated.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrConfig, path, strings.Join(keys, ", "))
		}
	}
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %v", ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no window could work with.
func (c Config) Validate() error {
	switch {
	case c.Cols <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: window size %dx%d is not positive", ErrConfig, c.Cols, c.Rows)
	case c.PollMsec <= 0:
		return fmt.Errorf("%w: poll_msec %d is not positive", ErrConfig, c.PollMsec)
	case c.DoubleClickMsec < 0:
		return fmt.Errorf("%w: double_click_msec %d is negative", ErrConfig, c.DoubleClickMsec)
	case c.WheelBase <= 0:
		return fmt.Errorf("%w: wheel_base %g is not positive", ErrConfig, c.WheelBase)
	case c.DragPixels <= 0:
		return fmt.Errorf("%w: drag_pixels %g is not positive", ErrConfig, c.DragPixels)
	}
	return nil
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollMsec) * time.Millisecond
}

// Write encodes c as TOML in the form Load reads.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
