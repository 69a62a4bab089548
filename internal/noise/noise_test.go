package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleDeterminism(t *testing.T) {
	a := NewField(12345)
	b := NewField(12345)

	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.53
		assert.Equal(t, a.Sample(x, y), b.Sample(x, y), "at (%f, %f)", x, y)
	}
}

func TestSampleRepeatable(t *testing.T) {
	f := NewField(42)
	for i := 0; i < 100; i++ {
		x := float64(i)*0.11 - 5
		y := float64(i)*0.07 - 3
		assert.Equal(t, f.Sample(x, y), f.Sample(x, y))
	}
}

func TestSampleRange(t *testing.T) {
	f := NewField(42)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.1 - 500
		y := float64(i)*0.07 - 350
		v := f.Sample(x, y)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestFractalRange(t *testing.T) {
	f := NewField(7)
	for i := 0; i < 5000; i++ {
		x := float64(i)*1.3 - 3000
		y := float64(i)*0.9 - 2000
		v := f.Fractal(x, y, 4, 0.5, 2.0, 400)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestFractalSmoothness(t *testing.T) {
	f := NewField(77)

	prev := f.Fractal(0, 0, 4, 0.5, 2.0, 400)
	maxStep := 0.0
	for i := 1; i < 1000; i++ {
		v := f.Fractal(float64(i), 0, 4, 0.5, 2.0, 400)
		step := math.Abs(v - prev)
		if step > maxStep {
			maxStep = step
		}
		prev = v
	}
	assert.Less(t, maxStep, 0.2, "adjacent samples should vary smoothly")
}

func TestChannelsUncorrelated(t *testing.T) {
	fields := NewFields(1337)

	channels := []*Field{
		fields.Elevation,
		fields.Moisture,
		fields.Temperature,
		fields.Coastline,
		fields.Settlement,
	}
	for i := 0; i < len(channels); i++ {
		for j := i + 1; j < len(channels); j++ {
			same := 0
			for k := 0; k < 100; k++ {
				x := float64(k) * 0.43
				y := float64(k) * 0.29
				if channels[i].Sample(x, y) == channels[j].Sample(x, y) {
					same++
				}
			}
			assert.Less(t, same, 10, "channels %d and %d look correlated", i, j)
		}
	}
}

func TestFieldsDeterministicAcrossConstruction(t *testing.T) {
	a := NewFields(99)
	b := NewFields(99)

	for i := 0; i < 100; i++ {
		x := float64(i) * 3.7
		y := float64(i) * 2.1
		assert.Equal(t, a.Elevation.Fractal(x, y, 4, 0.5, 2.0, 1200), b.Elevation.Fractal(x, y, 4, 0.5, 2.0, 1200))
		assert.Equal(t, a.Settlement.Sample(x*0.01, y*0.01), b.Settlement.Sample(x*0.01, y*0.01))
	}
}
