package piecetable

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/piecetable/buffer"
	"github.com/npillmayer/piecetable/ranktree"
	"github.com/npillmayer/schuko"
)

// Configuration keys read by ConfigFrom.
const (
	KeyAlpha          = "piecetable.alpha"
	KeyBufferCapacity = "piecetable.buffer-capacity"
)

// Config holds the tuning parameters of a document.
type Config struct {
	Alpha          float64 // balance parameter of the piece tree, in (0.5, 1)
	BufferCapacity int     // maximum bytes per buffer, in (0, buffer.MaxSize]
}

// DefaultConfig returns the configuration used by Open and FromString.
func DefaultConfig() Config {
	return Config{
		Alpha:          ranktree.DefaultAlpha,
		BufferCapacity: buffer.MaxSize,
	}
}

func (conf Config) validate() error {
	if !(conf.Alpha > 0.5 && conf.Alpha < 1.0) {
		return fmt.Errorf("%w: alpha must be in (0.5, 1), is %v", ErrInvalidConfig, conf.Alpha)
	}
	if conf.BufferCapacity <= 0 || conf.BufferCapacity > buffer.MaxSize {
		return fmt.Errorf("%w: buffer capacity must be in (0, %d], is %d",
			ErrInvalidConfig, buffer.MaxSize, conf.BufferCapacity)
	}
	return nil
}

// ConfigFrom reads a document configuration from an application
// configuration. Keys not set keep their default values.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	c := DefaultConfig()
	if conf == nil {
		return c, nil
	}
	if conf.IsSet(KeyAlpha) {
		alpha, err := strconv.ParseFloat(conf.GetString(KeyAlpha), 64)
		if err != nil {
			return c, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyAlpha, err)
		}
		c.Alpha = alpha
	}
	if conf.IsSet(KeyBufferCapacity) {
		c.BufferCapacity = conf.GetInt(KeyBufferCapacity)
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}
