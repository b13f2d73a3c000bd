package models

// BoardEntry is one row of a "best available" view.
type BoardEntry struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Value    Float    `json:"value"`
}

// CombinedMetric counts how many top-K lists a player appears in.
type CombinedMetric struct {
	Name        string `json:"name"`
	InTopADP    bool   `json:"in_top_adp"`
	InTopVORP   bool   `json:"in_top_vorp"`
	InTopVOBP   bool   `json:"in_top_vobp"`
	Count       int    `json:"count"`
	PositionSum int    `json:"position_sum"`
}

// DraftBoardView bundles the live draft views.
type DraftBoardView struct {
	K        int              `json:"k"`
	Drafted  int              `json:"drafted"`
	TopADP   []BoardEntry     `json:"top_adp"`
	TopVORP  []BoardEntry     `json:"top_vorp"`
	TopVOBP  []BoardEntry     `json:"top_vobp"`
	Combined []CombinedMetric `json:"combined"`
}

// FreeAgent is a league free agent joined to the valued table.
type FreeAgent struct {
	ListedName string `json:"listed_name"`
	ValuedPlayer
}

// WeeklyPlayer is a player with a single-week projection from the league
// feed.
type WeeklyPlayer struct {
	Name            string   `json:"name" validate:"required"`
	Position        Position `json:"position" validate:"required"`
	ProjectedPoints float64  `json:"projected_points"`
}

// Improvement is how many weekly points the best free agent at a position
// adds over a rostered player.
type Improvement struct {
	Name        string `json:"name"`
	Improvement Float  `json:"improvement"`
	// Options counts free agents projected above the rostered player.
	Options int `json:"options"`
}

// PositionImprovement is the weekly free-agent picture for one position.
type PositionImprovement struct {
	Position     Position      `json:"position"`
	BestName     string        `json:"best_name"`
	BestPoints   Float         `json:"best_points"`
	FreeAgents   int           `json:"free_agents"`
	Improvements []Improvement `json:"improvements"`
}
