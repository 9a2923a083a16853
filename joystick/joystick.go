// Package joystick calibrates a two-axis analog joystick read through an ADC
// and maps raw samples to a signed percentage per axis.
package joystick

import (
	"errors"
	"fmt"
)

// Dead zone thresholds on the 12-bit ADC scale (about 1.8 V and 0.5 V).
const (
	DeadZoneMax = 2950
	DeadZoneMin = 820
)

// PoolSize is the number of joysticks that can be open at once.
const PoolSize = 4

var (
	// ErrCalibration reports an implausible or degenerate calibration reading.
	ErrCalibration = errors.New("joystick: calibration reading rejected")
	// ErrNotADirection reports an unknown calibration phase.
	ErrNotADirection = errors.New("joystick: not a direction")
	// ErrExhausted reports that every pool slot is open.
	ErrExhausted = errors.New("joystick: no free handle")
	// ErrNotCalibrated reports that XY was called before calibration finished.
	ErrNotCalibrated = errors.New("joystick: not calibrated")
	// ErrClosed reports use of a closed handle.
	ErrClosed = errors.New("joystick: handle closed")
)

// Sample is one ADC conversion result.
type Sample struct {
	Channel uint16
	Value   uint32
}

// Sampler exposes the most recent ADC samples, refreshed by the ADC collaborator.
type Sampler interface {
	Samples() []Sample
}

// XY is a pair of axis readings.
type XY struct {
	X int32
	Y int32
}

// Phase is a calibration step. Phases are run in declaration order.
type Phase uint8

const (
	Center Phase = iota
	YMax
	YMin
	XMax
	XMin
)

// Phases lists the calibration sequence.
var Phases = [...]Phase{Center, YMax, YMin, XMax, XMin}

func (p Phase) String() string {
	switch p {
	case Center:
		return "CENTER"
	case YMax:
		return "Y_MAX"
	case YMin:
		return "Y_MIN"
	case XMax:
		return "X_MAX"
	case XMin:
		return "X_MIN"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Prompt is the operator instruction for p.
func (p Phase) Prompt() string {
	switch p {
	case Center:
		return "Please move the joystick to its center position."
	case YMax:
		return "Please move the joystick to its maximum extent in the y-direction."
	case YMin:
		return "Please move the joystick to its minimum extent in the y-direction."
	case XMax:
		return "Please move the joystick all the way to the right."
	case XMin:
		return "Please move the joystick all the way to the left."
	default:
		return ""
	}
}

// calibration is the committed state of one joystick.
type calibration struct {
	channelX, channelY uint16
	centerX, centerY   int32
	xMax, yMax         int32
	xMin, yMin         int32
	xDir, yDir         uint8
	done               uint8 // bit per completed phase
}

const allPhases = 1<<Center | 1<<YMax | 1<<YMin | 1<<XMax | 1<<XMin

// Joystick is an open pool handle.
type Joystick struct {
	src  Sampler
	open bool
	cal  calibration
}

// Pool owns a fixed set of joystick handles.
type Pool struct {
	handles [PoolSize]Joystick
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Open claims a free handle reading channels chX and chY from src.
func (p *Pool) Open(src Sampler, chX, chY uint16) (*Joystick, error) {
	if src == nil {
		return nil, fmt.Errorf("joystick: nil sampler")
	}
	for i := range p.handles {
		h := &p.handles[i]
		if h.open {
			continue
		}
		*h = Joystick{
			src:  src,
			open: true,
			cal:  calibration{channelX: chX, channelY: chY},
		}
		return h, nil
	}
	return nil, ErrExhausted
}

// InUse returns the number of open handles.
func (p *Pool) InUse() int {
	n := 0
	for i := range p.handles {
		if p.handles[i].open {
			n++
		}
	}
	return n
}

// Close returns the handle to its pool. Closing twice is a no-op.
func (j *Joystick) Close() {
	if j == nil || !j.open {
		return
	}
	*j = Joystick{}
}

// Channels returns the ADC channels currently mapped to the x and y axes.
func (j *Joystick) Channels() (x, y uint16) {
	return j.cal.channelX, j.cal.channelY
}

// Calibrated reports whether every phase has completed.
func (j *Joystick) Calibrated() bool {
	return j.cal.done&allPhases == allPhases
}

// RawXY returns the uncalibrated readings. A channel missing from the
// sample set reads as 0.
func (j *Joystick) RawXY() XY {
	return j.raw(j.cal.channelX, j.cal.channelY)
}

func (j *Joystick) raw(chX, chY uint16) XY {
	var out XY
	if j.src == nil {
		return out
	}
	for _, s := range j.src.Samples() {
		if s.Channel == chX {
			out.X = int32(s.Value)
		} else if s.Channel == chY {
			out.Y = int32(s.Value)
		}
	}
	return out
}

func outsideDeadZone(v int32) bool {
	return v >= DeadZoneMax || v <= DeadZoneMin
}

// direction returns 1 when the extent is above the dead zone, 0 when below.
func direction(v int32) (uint8, bool) {
	switch {
	case v >= DeadZoneMax:
		return 1, true
	case v <= DeadZoneMin:
		return 0, true
	default:
		return 0, false
	}
}

// minOnMaxSide reports whether min lies on the wrong side of center.
func minOnMaxSide(min, center int32, dir uint8) bool {
	return (min >= center && dir == 1) || (min <= center && dir == 0)
}

// Calibrate records the reading for phase. The caller runs phases in order,
// one per operator confirmation. A failed phase leaves the joystick unchanged.
func (j *Joystick) Calibrate(phase Phase) error {
	if j == nil || !j.open {
		return ErrClosed
	}
	next := j.cal

	switch phase {
	case Center:
		v := j.raw(next.channelX, next.channelY)
		if v.X == 0 || v.Y == 0 {
			return fmt.Errorf("joystick: %s: zero reading: %w", phase, ErrCalibration)
		}
		next.centerX, next.centerY = v.X, v.Y

	case YMax:
		v := j.raw(next.channelX, next.channelY)
		switch {
		case outsideDeadZone(v.Y):
			next.yMax = v.Y
		case outsideDeadZone(v.X):
			// Axes are wired the other way round; the centres follow their channels.
			next.channelX, next.channelY = next.channelY, next.channelX
			next.centerX, next.centerY = next.centerY, next.centerX
			next.yMax = v.X
		default:
			return fmt.Errorf("joystick: %s: no deflection: %w", phase, ErrCalibration)
		}
		dir, ok := direction(next.yMax)
		if !ok {
			return fmt.Errorf("joystick: %s: %w", phase, ErrCalibration)
		}
		if next.yMax == next.centerY {
			return fmt.Errorf("joystick: %s: max equals center: %w", phase, ErrCalibration)
		}
		next.yDir = dir

	case XMax:
		next.xMax = j.raw(next.channelX, next.channelY).X
		dir, ok := direction(next.xMax)
		if !ok {
			return fmt.Errorf("joystick: %s: no deflection: %w", phase, ErrCalibration)
		}
		if next.xMax == next.centerX {
			return fmt.Errorf("joystick: %s: max equals center: %w", phase, ErrCalibration)
		}
		next.xDir = dir

	case YMin:
		next.yMin = j.raw(next.channelX, next.channelY).Y
		if minOnMaxSide(next.yMin, next.centerY, next.yDir) {
			return fmt.Errorf("joystick: %s: min on max side of center: %w", phase, ErrCalibration)
		}

	case XMin:
		next.xMin = j.raw(next.channelX, next.channelY).X
		if minOnMaxSide(next.xMin, next.centerX, next.xDir) {
			return fmt.Errorf("joystick: %s: min on max side of center: %w", phase, ErrCalibration)
		}

	default:
		return fmt.Errorf("joystick: %s: %w", phase, ErrNotADirection)
	}

	next.done |= 1 << phase
	j.cal = next
	return nil
}

// XY returns the calibrated position as a percentage per axis in [-100, 100].
// Division truncates toward zero.
func (j *Joystick) XY() (XY, error) {
	if j == nil || !j.open {
		return XY{}, ErrClosed
	}
	if !j.Calibrated() {
		return XY{}, ErrNotCalibrated
	}
	raw := j.RawXY()
	c := &j.cal
	return XY{
		X: scale(raw.X, c.centerX, c.xMin, c.xMax, c.xDir),
		Y: scale(raw.Y, c.centerY, c.yMin, c.yMax, c.yDir),
	}, nil
}

func scale(raw, center, min, max int32, dir uint8) int32 {
	maxSide := (dir == 1 && raw >= center) || (dir == 0 && raw <= center)
	span := center - min
	if maxSide {
		span = max - center
	}
	if span == 0 {
		return 0
	}
	pct := (raw - center) * 100 / span
	switch {
	case pct > 100:
		return 100
	case pct < -100:
		return -100
	}
	return pct
}
