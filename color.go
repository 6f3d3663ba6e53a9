package behave

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a four channel RGBA value used by the Mix strategy.
// The Neutral color is a sentinel and carries no channel values.
type Color struct {
	rgba    mgl32.Vec4
	neutral bool
}

// Neutral marks a contribution that overrides every other color in a mix.
var Neutral = Color{neutral: true}

func NewColor(r, g, b, a float32) Color {
	return Color{rgba: mgl32.Vec4{r, g, b, a}}
}

func ColorFromVec4(v mgl32.Vec4) Color {
	return Color{rgba: v}
}

func (c Color) R() float32 { return c.rgba.X() }
func (c Color) G() float32 { return c.rgba.Y() }
func (c Color) B() float32 { return c.rgba.Z() }
func (c Color) A() float32 { return c.rgba.W() }

func (c Color) Vec4() mgl32.Vec4 {
	return c.rgba
}

func (c Color) IsNeutral() bool {
	return c.neutral
}

func (c Color) String() string {
	if c.neutral {
		return "Color(neutral)"
	}
	return fmt.Sprintf("Color(%g, %g, %g, %g)", c.R(), c.G(), c.B(), c.A())
}
