package spectrum

// current is the 4-dimension, 0-5 scheme. Low scores sit on the
// liberty/global/market/progressive pole.
var current = &Scheme{
	Name: "current",
	Max:  5,
	Dimensions: []Dimension{
		{
			Key:         "C",
			Name:        "Civil Rights",
			Labels:      []string{"Civil Rights"},
			Low:         'L',
			High:        'A',
			LowPole:     "Liberty",
			HighPole:    "Authority",
			Description: "Less state constraint vs more state constraint.",
		},
		{
			Key:         "O",
			Name:        "Openness",
			Labels:      []string{"Openness"},
			Low:         'G',
			High:        'N',
			LowPole:     "Global",
			HighPole:    "National",
			Description: "Supranational integration vs national sovereignty.",
		},
		{
			Key:         "R",
			Name:        "Redistribution",
			Labels:      []string{"Redistribution"},
			Low:         'M',
			High:        'S',
			LowPole:     "Market",
			HighPole:    "Social",
			Description: "Market allocation vs state redistribution.",
		},
		{
			Key:         "E",
			Name:        "Ethics",
			Labels:      []string{"Ethics"},
			Low:         'P',
			High:        'T',
			LowPole:     "Progressive",
			HighPole:    "Traditional",
			Description: "Change-seeking vs preservation-seeking.",
		},
	},
	Tokens: []Token{
		{Glyph: "🟪", Score: 0, Color: "purple"},
		{Glyph: "🟦", Score: 1, Color: "blue"},
		{Glyph: "🟩", Score: 2, Color: "green"},
		{Glyph: "🟨", Score: 3, Color: "yellow"},
		{Glyph: "🟧", Score: 4, Color: "orange"},
		{Glyph: "🟥", Score: 5, Color: "red"},
		{Glyph: "⬜", Score: Unknown, Color: "white"},
	},
	TypeCodeRequired: true,
}

// legacy is the 5-dimension, 0-6 scheme. Each score measures increasing
// government intervention.
var legacy = &Scheme{
	Name: "legacy",
	Max:  6,
	Dimensions: []Dimension{
		{
			Key:    "trade",
			Name:   "Trade",
			Labels: []string{"Trade"},
			Ramp: []string{
				"free trade",
				"minimal tariffs",
				"selective trade agreements",
				"balanced tariffs",
				"strategic protections",
				"heavy tariffs",
				"closed economy",
			},
		},
		{
			Key:    "abortion",
			Name:   "Abortion",
			Labels: []string{"Abortion"},
			Ramp: []string{
				"partial birth abortion",
				"limit after viability",
				"limit after third trimester",
				"limit after second trimester",
				"limit after first trimester",
				"limit after heartbeat detection",
				"no exceptions allowed",
			},
		},
		{
			Key:    "migration",
			Name:   "Migration",
			Labels: []string{"Migration / Immigration", "Migration/Immigration", "Migration", "Immigration"},
			Ramp: []string{
				"open borders",
				"easy pathways to citizenship",
				"expanded quotas",
				"current restrictions",
				"reduced quotas",
				"strict limits only",
				"no immigration",
			},
		},
		{
			Key:    "economics",
			Name:   "Economics",
			Labels: []string{"Economics"},
			Ramp: []string{
				"pure free market",
				"minimal regulation",
				"market-based with safety net",
				"balanced public-private",
				"strong social programs",
				"extensive public ownership",
				"full state control",
			},
		},
		{
			Key:    "rights",
			Name:   "Rights",
			Labels: []string{"Rights (civil liberties)", "Rights"},
			Ramp: []string{
				"full legal equality",
				"protections with few limits",
				"protections with some limits",
				"tolerance without endorsement",
				"traditional definitions only",
				"no legal recognition",
				"criminalization",
			},
		},
	},
	Tokens: []Token{
		{Glyph: "🟪", Score: 0, Color: "purple"},
		{Glyph: "🟦", Score: 1, Color: "blue"},
		{Glyph: "🟩", Score: 2, Color: "green"},
		{Glyph: "🟨", Score: 3, Color: "yellow"},
		{Glyph: "🟧", Score: 4, Color: "orange"},
		{Glyph: "🟥", Score: 5, Color: "red"},
		{Glyph: "⬛", Score: 6, Color: "black"},
		{Glyph: "⬜", Score: Unknown, Color: "white"},
	},
}

// Current returns the 4-dimension scheme (Civil Rights, Openness,
// Redistribution, Ethics). The returned value is shared and must not be
// modified.
func Current() *Scheme {
	return current
}

// Legacy returns the 5-dimension scheme (Trade, Abortion, Migration,
// Economics, Rights). The returned value is shared and must not be modified.
func Legacy() *Scheme {
	return legacy
}
