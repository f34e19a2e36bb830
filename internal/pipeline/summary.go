package pipeline

// Summary contains counts over a set of results
type Summary struct {
	Total      int            `json:"total"`
	Parsed     int            `json:"parsed"`
	Failed     int            `json:"failed"`
	Classified int            `json:"classified"`
	Converted  int            `json:"converted"`
	ByScheme   map[string]int `json:"byScheme"`
	ByCode     map[string]int `json:"byCode"`
	ByFamily   map[string]int `json:"byFamily"`
}

// Summarize computes a Summary for results
func Summarize(results []Result) Summary {
	s := Summary{
		ByScheme: make(map[string]int),
		ByCode:   make(map[string]int),
		ByFamily: make(map[string]int),
	}

	for _, r := range results {
		s.Total++
		if !r.OK() {
			s.Failed++
			continue
		}
		s.Parsed++
		s.ByScheme[r.Scheme]++

		if r.Conversion != nil {
			s.Converted++
		}
		if c := r.Classification; c != nil {
			s.Classified++
			s.ByCode[c.Code]++
			if c.Family != nil {
				s.ByFamily[c.Family.Name]++
			}
		}
	}

	return s
}
