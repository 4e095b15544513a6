package noise

import "math"

// HeightField sums an ordered list of terrain layers into a surface
// height. The first layer is remapped to [0,1] and scaled by its
// amplitude on top of the base height; every following layer is added as
// signed noise times its amplitude. A ridge sampler contributes
// |noise| * weight for cliff-like breaks in the rolling terrain.
type HeightField struct {
	Base        float64
	RidgeWeight float64

	samplers []*Sampler
	layers   []Layer
	ridge    *Sampler
}

// NewHeightField builds samplers for each layer plus the ridge field.
// The layer slice is copied, so the caller may keep mutating its own.
func NewHeightField(base float64, layers []Layer, ridgeSeed int64, ridgeFrequency, ridgeWeight float64) *HeightField {
	hf := &HeightField{
		Base:        base,
		RidgeWeight: ridgeWeight,
		layers:      append([]Layer(nil), layers...),
		ridge:       NewSampler(ridgeSeed, ridgeFrequency),
	}
	for _, l := range hf.layers {
		hf.samplers = append(hf.samplers, NewSampler(l.Seed, l.Frequency))
	}
	return hf
}

// At returns the terrain height at a world column, clamped to
// [1, maxHeight-1].
func (hf *HeightField) At(x, z float64, maxHeight int) int {
	h := hf.Base
	for i, s := range hf.samplers {
		v := s.Sample2D(x, z)
		if i == 0 {
			// First layer shapes the broad continent: only positive relief
			h += (v + 1) / 2 * hf.layers[i].Amplitude
		} else {
			h += v * hf.layers[i].Amplitude
		}
	}
	h += math.Abs(hf.ridge.Sample2D(x, z)) * hf.RidgeWeight

	height := int(math.Floor(h))
	if height < 1 {
		height = 1
	}
	if height > maxHeight-1 {
		height = maxHeight - 1
	}
	return height
}
