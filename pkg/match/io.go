package match

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadRecommendations reads a JSON array of recommendations from a file.
func LoadRecommendations(path string) ([]Recommendation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recommendations: %w", err)
	}
	var recs []Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing recommendations: %w", err)
	}
	return recs, nil
}
