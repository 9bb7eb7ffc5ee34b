// Package gradient maps scalar values onto a linear two-color RGB gradient.
//
// Colors are packed 24-bit integers (0xRRGGBB). Each channel is interpolated
// independently and floored:
//
//	channel = floor((value-Min)/(Max-Min)*(end-start) + start)
//
// Values outside [Min, Max] extrapolate linearly. With Clamp set, each channel
// is bounded to [0, 255]; otherwise the packed result is masked to 24 bits.
package gradient

import "math"

// RGB is a packed 24-bit color.
type RGB uint32

// Unpack splits a packed color into its channel bytes.
func Unpack(c RGB) (r, g, b int) {
	return int(c&0xFF0000) >> 16, int(c&0x00FF00) >> 8, int(c & 0x0000FF)
}

// Pack combines channel values into a packed color.
// Channels are expected in [0, 255]; anything else spills into neighbouring bits.
func Pack(r, g, b int) RGB {
	return RGB(uint32((r<<16)+(g<<8)+b) & 0xFFFFFF)
}

// Floats returns the color as normalized float channels, for GPU vertex data.
func (c RGB) Floats() (r, g, b float32) {
	ri, gi, bi := Unpack(c)
	return float32(ri) / 255, float32(gi) / 255, float32(bi) / 255
}

// Calibration is the value domain and endpoint colors of a gradient.
type Calibration struct {
	Min   float64
	Max   float64
	Start RGB
	End   RGB
	Clamp bool
}

// Color maps value onto the gradient described by cal.
// A degenerate domain (Max == Min) yields the start color.
func Color(value float64, cal Calibration) RGB {
	span := cal.Max - cal.Min
	if span == 0 || math.IsNaN(span) {
		return cal.Start
	}
	t := (value - cal.Min) / span

	rs, gs, bs := Unpack(cal.Start)
	re, ge, be := Unpack(cal.End)

	r := channel(t, rs, re, cal.Clamp)
	g := channel(t, gs, ge, cal.Clamp)
	b := channel(t, bs, be, cal.Clamp)
	return Pack(r, g, b)
}

func channel(t float64, start, end int, clamp bool) int {
	v := int(math.Floor(t*float64(end-start) + float64(start)))
	if clamp {
		v = max(0, min(255, v))
	}
	return v
}

// Interpolator is the stateful form of Color: configure once, query many times.
type Interpolator struct {
	cal Calibration
}

// NewInterpolator returns an interpolator over [0, 1] from black to white, clamped.
func NewInterpolator() *Interpolator {
	return &Interpolator{cal: Calibration{Min: 0, Max: 1, Start: 0x000000, End: 0xFFFFFF, Clamp: true}}
}

// SetColorRange sets the endpoint colors.
func (i *Interpolator) SetColorRange(start, end RGB) {
	i.cal.Start = start
	i.cal.End = end
}

// SetValueRange sets the scalar domain.
func (i *Interpolator) SetValueRange(minValue, maxValue float64) {
	i.cal.Min = minValue
	i.cal.Max = maxValue
}

// SetClamp toggles channel clamping for out-of-range values.
func (i *Interpolator) SetClamp(clamp bool) {
	i.cal.Clamp = clamp
}

// Calibration returns the current configuration.
func (i *Interpolator) Calibration() Calibration {
	return i.cal
}

// GetColor maps value onto the configured gradient.
func (i *Interpolator) GetColor(value float64) RGB {
	return Color(value, i.cal)
}
