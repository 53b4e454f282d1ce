// SPDX-License-Identifier: EPL-2.0

package analyzer

// Summary aggregates the features of an analysis.
type Summary struct {
	Frames            int
	MeanEnergy        float64
	MaxEnergy         float64
	MeanZeroCrossings float64
}

// Summarize folds features into a Summary. No features give the zero Summary.
func Summarize(features []FrameFeatures) Summary {
	if len(features) == 0 {
		return Summary{}
	}

	s := Summary{Frames: len(features), MaxEnergy: features[0].Energy}

	var energy float64
	var crossings int
	for _, f := range features {
		energy += f.Energy
		crossings += f.ZeroCrossings
		s.MaxEnergy = max(s.MaxEnergy, f.Energy)
	}

	s.MeanEnergy = energy / float64(len(features))
	s.MeanZeroCrossings = float64(crossings) / float64(len(features))

	return s
}
