package scoring

// WeightedPair weights the harmony of items From and To.
type WeightedPair struct {
	From   int     `yaml:"from" json:"from"`
	To     int     `yaml:"to" json:"to"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Weights holds the coefficients of the composite score.
// Changing any of them changes every score the engine produces.
type Weights struct {
	// Harmony weighting used when a combination has exactly len(FourItemPairs)
	// items: shirt/pant, pant/shoe, shirt/jacket, jacket/pant.
	FourItemPairs []WeightedPair

	// Psychological balance: mood = MoodBase - |E-EnergyTarget| - |C-CalmTarget|.
	MoodBase     float64
	EnergyTarget float64
	CalmTarget   float64

	// prof = mean professionalism * ProfessionalismFactor
	ProfessionalismFactor float64
}

// Defaults returns the default scoring weights.
func Defaults() Weights {
	return Weights{
		FourItemPairs: []WeightedPair{
			{From: 0, To: 1, Weight: 3.0},
			{From: 1, To: 2, Weight: 2.0},
			{From: 0, To: 3, Weight: 2.0},
			{From: 3, To: 1, Weight: 1.5},
		},
		MoodBase:              2.5,
		EnergyTarget:          0.5,
		CalmTarget:            0.7,
		ProfessionalismFactor: 1.5,
	}
}

// Options bounds the work done by an Engine.
type Options struct {
	MaxResults      int // candidates kept after ranking
	MaxAccepted     int // accepted candidates per session
	MaxCombinations int // generation cap, <= 0 for unbounded
	Workers         int // parallel scorers, <= 1 scores inline
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		MaxResults:      4,
		MaxAccepted:     5,
		MaxCombinations: 5000,
		Workers:         1,
	}
}
