package entity

// Scenario is one bingo prompt. Exactly one scenario in a catalog is Free:
// it is pre-marked and always sits at the center of a board.
type Scenario struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Free bool   `json:"free,omitempty"`
}

// ScenarioIDs returns the ids of scenarios in order.
func ScenarioIDs(scenarios []Scenario) []int64 {
	ids := make([]int64, 0, len(scenarios))
	for _, scenario := range scenarios {
		ids = append(ids, scenario.ID)
	}

	return ids
}
