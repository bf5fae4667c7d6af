package evaluation

import "time"

const (
	PlanStatusOpen   = "OPEN"
	PlanStatusClosed = "CLOSED"

	CategorySelf    = "SELF"
	CategoryManager = "MANAGER"
	CategoryPeer    = "PEER"
)

type Plan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Item struct {
	ID       string  `json:"id"`
	PlanID   string  `json:"planId"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category,omitempty"`
}

// Result is one evaluator's aggregate view of one ratee under a plan. A nil
// EvaluatorEmployeeID marks the self-assessment row.
type Result struct {
	ID                   string  `json:"id"`
	PlanID               string  `json:"planId"`
	EmployeeID           string  `json:"employeeId"`
	EvaluatorEmployeeID  *string `json:"evaluatorEmployeeId,omitempty"`
	Score                float64 `json:"score"`
	Comment              string  `json:"comment,omitempty"`
	Grade                string  `json:"grade,omitempty"`
	IsPromotionCandidate bool    `json:"isPromotionCandidate"`
}

type StoredScore struct {
	ItemID string
	Score  float64
}

type ItemScoreInput struct {
	ItemID  string  `json:"itemId"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment,omitempty"`
}

// ItemWithScore is the post-submission read model: every plan item annotated
// with the submitting evaluator's stored score, when one exists.
type ItemWithScore struct {
	Item
	Score   *float64 `json:"score,omitempty"`
	Comment string   `json:"comment,omitempty"`
}

// GradeBand maps a closed score interval to a grade and a promotion flag.
type GradeBand struct {
	MinScore             float64 `json:"minScore"`
	MaxScore             float64 `json:"maxScore"`
	Grade                string  `json:"grade"`
	IsPromotionCandidate bool    `json:"isPromotionCandidate"`
}

type AggregateResult struct {
	Updated int `json:"updated"`
}
