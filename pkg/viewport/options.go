package viewport

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/errors"
)

// Defaults for interactive pan and zoom.
const (
	DefaultMinZoom       = 0.3
	DefaultMaxZoom       = 3.0
	DefaultBoundsPadding = 0.2
	DefaultZoomStep      = 1.4
	DefaultSmoothFrames  = 10
	DefaultWheelSpeed    = 1.0
)

// Options configures a Controller.
type Options struct {
	MinZoom float64
	MaxZoom float64

	// BoundsPadding is the fraction of the surface trimmed from each side to
	// form the inner box the content must keep overlapping.
	BoundsPadding float64

	ZoomStep     float64 // multiplier of one zoom button press
	SmoothFrames int
	Easing       Easing
	Animator     Animator
	WheelSpeed   float64
	Logger       *log.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the standard pan/zoom behaviour.
func DefaultOptions() Options {
	return Options{
		MinZoom:       DefaultMinZoom,
		MaxZoom:       DefaultMaxZoom,
		BoundsPadding: DefaultBoundsPadding,
		ZoomStep:      DefaultZoomStep,
		SmoothFrames:  DefaultSmoothFrames,
		Easing:        EaseInOut,
		Animator:      Immediate{},
		WheelSpeed:    DefaultWheelSpeed,
	}
}

// WithZoomRange sets the interactive zoom limits.
func WithZoomRange(lo, hi float64) Option {
	return func(o *Options) { o.MinZoom, o.MaxZoom = lo, hi }
}

// WithBoundsPadding sets the elastic bounds padding.
func WithBoundsPadding(p float64) Option {
	return func(o *Options) { o.BoundsPadding = p }
}

// WithZoomStep sets the zoom button multiplier.
func WithZoomStep(step float64) Option {
	return func(o *Options) { o.ZoomStep = step }
}

// WithSmoothZoom sets the frame count and easing of smooth zoom.
func WithSmoothZoom(frames int, easing Easing) Option {
	return func(o *Options) { o.SmoothFrames, o.Easing = frames, easing }
}

// WithAnimator replaces the frame driver used by smooth zoom.
func WithAnimator(a Animator) Option {
	return func(o *Options) { o.Animator = a }
}

// WithWheelSpeed scales wheel deltas.
func WithWheelSpeed(speed float64) Option {
	return func(o *Options) { o.WheelSpeed = speed }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Resolve applies opts to the defaults and validates the result.
func Resolve(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o *Options) validate() error {
	if o.MinZoom <= 0 || o.MaxZoom < o.MinZoom {
		return errors.New(errors.ErrCodeInvalidInput, "invalid zoom range [%g, %g]", o.MinZoom, o.MaxZoom)
	}
	if o.BoundsPadding < 0 || o.BoundsPadding >= 0.5 {
		return errors.New(errors.ErrCodeInvalidInput, "bounds padding must be in [0, 0.5), got %g", o.BoundsPadding)
	}
	if o.ZoomStep <= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "zoom step must be greater than 1, got %g", o.ZoomStep)
	}
	if o.SmoothFrames < 1 {
		o.SmoothFrames = 1
	}
	if o.Easing == nil {
		o.Easing = EaseInOut
	}
	if o.Animator == nil {
		o.Animator = Immediate{}
	}
	if o.WheelSpeed <= 0 {
		o.WheelSpeed = DefaultWheelSpeed
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}
