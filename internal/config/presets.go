package config

var presets = map[string]*Config{
	"threebody": DefaultConfig(),
	"binary": {
		Dt:         0.01,
		G:          1.0,
		Softening:  0.1,
		Speed:      500,
		TrailLimit: DefaultTrailLimit,
		Bodies: []BodyConfig{
			{Mass: 100, Pos: [2]float64{-50, 0}, Vel: [2]float64{0, 0.7}, Color: "yellow"},
			{Mass: 100, Pos: [2]float64{50, 0}, Vel: [2]float64{0, -0.7}, Color: "cyan"},
		},
	},
	// Chenciner-Montgomery figure-eight orbit. Tight scale, so a much
	// smaller softening and a gentler speed multiplier.
	"figure8": {
		Dt:         0.001,
		G:          1.0,
		Softening:  0.001,
		Speed:      2,
		TrailLimit: DefaultTrailLimit,
		Bodies: []BodyConfig{
			{Mass: 1, Pos: [2]float64{0.97000436, -0.24308753}, Vel: [2]float64{0.46620368, 0.43236573}, Color: "red"},
			{Mass: 1, Pos: [2]float64{-0.97000436, 0.24308753}, Vel: [2]float64{0.46620368, 0.43236573}, Color: "green"},
			{Mass: 1, Pos: [2]float64{0, 0}, Vel: [2]float64{-0.93240737, -0.86473146}, Color: "blue"},
		},
	},
}

func GetPreset(name string) *Config {
	return presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
