// Package compensate derives replacement colors that keep their
// appearance when moved from one background to another.
package compensate

import (
	"context"
	"fmt"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/jsvensson/paletteshift/internal/ciecam02"
	"github.com/jsvensson/paletteshift/internal/color"
)

// DefaultAdaptingLuminance is the adapting luminance in cd/m² of a typical
// screen-viewing environment.
const DefaultAdaptingLuminance = 64

// MinBackgroundLuminance is the floor applied to a background's relative
// luminance before it becomes Yb. Pure black would otherwise give Yb = 0,
// for which the viewing conditions are undefined.
const MinBackgroundLuminance = 0.1

// ClampError reports a compensated color that could not be mapped back
// into the sRGB gamut.
type ClampError struct {
	Color color.Color
	Err   error
}

func (e *ClampError) Error() string {
	return fmt.Sprintf("compensated color %s could not be clamped: %v", e.Color, e.Err)
}

func (e *ClampError) Unwrap() error { return e.Err }

// Compensator chains a forward CIECAM02 transform under the source
// background with the inverse transform under the target background.
// The zero value is not usable; call New.
type Compensator struct {
	AdaptingLuminance float64
	White             ciecam02.XYZ
	Surround          ciecam02.Surround

	// Workers bounds the goroutines used by the batch methods. Zero or
	// less means GOMAXPROCS.
	Workers int

	Logger commonlog.Logger
}

// New returns a Compensator for screen viewing: La = 64, the sRGB D65
// white and an average surround.
func New() *Compensator {
	x, y, z := color.WhiteXYZ()
	return &Compensator{
		AdaptingLuminance: DefaultAdaptingLuminance,
		White:             ciecam02.XYZ{X: x, Y: y, Z: z},
		Surround:          ciecam02.Average,
		Logger:            commonlog.GetLogger("paletteshift.compensate"),
	}
}

// Conditions derives the viewing conditions of a stimulus seen on bg.
// The background's relative luminance is used as Yb.
func (c *Compensator) Conditions(bg color.Color) (ciecam02.ViewingConditions, error) {
	_, yb, _ := bg.XYZ()
	if yb < MinBackgroundLuminance {
		yb = MinBackgroundLuminance
	}
	return ciecam02.NewViewingConditions(c.AdaptingLuminance, yb, c.White, c.Surround)
}

// Compensate returns the color that looks on targetBg the way col looks
// on sourceBg. The result is clamped to sRGB and is always opaque.
func (c *Compensator) Compensate(col, sourceBg, targetBg color.Color) (color.Color, error) {
	src, tgt, err := c.pair(sourceBg, targetBg)
	if err != nil {
		return color.Color{}, err
	}
	return c.compensate(col, src, tgt)
}

// Inspect returns the full appearance correlates of col on bg.
func (c *Compensator) Inspect(col, bg color.Color) (ciecam02.Appearance, error) {
	vc, err := c.Conditions(bg)
	if err != nil {
		return ciecam02.Appearance{}, fmt.Errorf("background %s: %w", bg.Hex(), err)
	}
	return ciecam02.Forward(xyzOf(col), c.White, vc)
}

// CompensateBatch compensates every color independently and returns the
// results in input order. The first failure cancels the remaining work
// and is returned together with the index of the offending color.
func (c *Compensator) CompensateBatch(ctx context.Context, colors []color.Color, sourceBg, targetBg color.Color) ([]color.Color, error) {
	out := make([]color.Color, len(colors))
	if len(colors) == 0 {
		return out, nil
	}
	src, tgt, err := c.pair(sourceBg, targetBg)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers())
	for i, col := range colors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.compensate(col, src, tgt)
			if err != nil {
				return fmt.Errorf("color %d (%s): %w", i, col, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log().Debugf("batch of %d aborted: %s", len(colors), err)
		return nil, err
	}
	c.log().Debugf("compensated batch of %d", len(colors))
	return out, nil
}

// Result is the outcome for one color of CompensateEach.
type Result struct {
	Color color.Color
	Err   error
}

// CompensateEach is like CompensateBatch but never aborts: every color
// gets its own result, failures included. Colors not reached before ctx
// is done carry the context error.
func (c *Compensator) CompensateEach(ctx context.Context, colors []color.Color, sourceBg, targetBg color.Color) []Result {
	out := make([]Result, len(colors))
	if len(colors) == 0 {
		return out
	}
	src, tgt, err := c.pair(sourceBg, targetBg)
	if err != nil {
		for i := range out {
			out[i].Err = err
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(c.workers())
	for i, col := range colors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Color, out[i].Err = c.compensate(col, src, tgt)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (c *Compensator) pair(sourceBg, targetBg color.Color) (src, tgt ciecam02.ViewingConditions, err error) {
	src, err = c.Conditions(sourceBg)
	if err != nil {
		return src, tgt, fmt.Errorf("source background %s: %w", sourceBg.Hex(), err)
	}
	tgt, err = c.Conditions(targetBg)
	if err != nil {
		return src, tgt, fmt.Errorf("target background %s: %w", targetBg.Hex(), err)
	}
	return src, tgt, nil
}

func (c *Compensator) compensate(col color.Color, src, tgt ciecam02.ViewingConditions) (color.Color, error) {
	app, err := ciecam02.Forward(xyzOf(col), c.White, src)
	if err != nil {
		return color.Color{}, err
	}
	xyz, err := ciecam02.Inverse(app.JCh(), c.White, tgt)
	if err != nil {
		return color.Color{}, err
	}

	clamped, err := clamp(color.FromXYZ(xyz.X, xyz.Y, xyz.Z))
	if err != nil {
		return color.Color{}, err
	}
	c.log().Debugf("%s -> %s (J=%.2f C=%.2f h=%.1f)", col.Hex(), clamped.Hex(), app.J, app.C, app.H)
	return clamped, nil
}

func clamp(shifted color.Color) (color.Color, error) {
	clamped, err := color.Clamp(shifted)
	if err != nil {
		return color.Color{}, &ClampError{Color: shifted, Err: err}
	}
	return clamped, nil
}

func (c *Compensator) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Compensator) log() commonlog.Logger {
	if c.Logger == nil {
		return commonlog.GetLogger("paletteshift.compensate")
	}
	return c.Logger
}

func xyzOf(col color.Color) ciecam02.XYZ {
	x, y, z := col.XYZ()
	return ciecam02.XYZ{X: x, Y: y, Z: z}
}
