package noise

// DefaultLayers is the built-in terrain layer stack used whenever no
// persisted settings are available.
func DefaultLayers() []Layer {
	return []Layer{
		{Seed: 0, Frequency: 0.01, Amplitude: 10},
		{Seed: 1, Frequency: 0.03, Amplitude: 5},
		{Seed: 2, Frequency: 0.08, Amplitude: 2},
		{Seed: 4, Frequency: 0.16, Amplitude: 1},
		{Seed: 5, Frequency: 0.32, Amplitude: 0.5},
	}
}
