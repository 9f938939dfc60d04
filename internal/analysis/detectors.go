package analysis

// Finding is one observation produced by a pattern detector.
type Finding struct {
	Detector string `json:"detector"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	// Numbers carries the pockets involved, or a histogram for summaries.
	Numbers []int `json:"numbers,omitempty"`
	// Index is the position in the sequence the finding refers to, or -1
	// for whole-sequence summaries.
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Detector is a pure function of an ordered spin sequence. Implementations
// return nil for empty or single-element sequences.
type Detector interface {
	Name() string
	Detect(seq []int) []Finding
}

// DetectorResult groups the findings of one detector.
type DetectorResult struct {
	Detector string    `json:"detector"`
	Findings []Finding `json:"findings"`
}

// DefaultDetectors returns the detector strategy list used by the Engine.
func DefaultDetectors(cfg Config) []Detector {
	return []Detector{
		RepeatDetector{Window: cfg.RepeatWindow},
		StreakDetector{Attribute: AttributeColor},
		StreakDetector{Attribute: AttributeParity},
		StreakDetector{Attribute: AttributeDozen},
		StreakDetector{Attribute: AttributeColumn},
		GapDetector{Small: cfg.GapSmall, Large: cfg.GapLarge},
		ClusterDetector{ArcWidth: cfg.ClusterArc, Deviation: cfg.ClusterDeviation, MinSpins: cfg.ClusterMinSpins},
		DirectionDetector{MinRun: cfg.DirectionMinRun},
		SideSplitDetector{},
		SpiralDetector{MinLength: cfg.SpiralMinLength},
	}
}

// RunDetectors runs each detector independently over seq.
func RunDetectors(detectors []Detector, seq []int) []DetectorResult {
	results := make([]DetectorResult, 0, len(detectors))
	for _, d := range detectors {
		results = append(results, DetectorResult{
			Detector: d.Name(),
			Findings: d.Detect(seq),
		})
	}
	return results
}

func summary(detector, kind, message string, value float64, numbers []int) Finding {
	return Finding{
		Detector: detector,
		Kind:     kind,
		Index:    -1,
		Numbers:  numbers,
		Value:    value,
		Message:  message,
	}
}
