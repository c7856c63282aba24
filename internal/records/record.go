package records

import "math"

// PersonalRecord is one ledger entry. Weight and AddedWeight are optional,
// and BodyweightRatio is derived from them once, at insert time. Date is a
// free-form string, ordered lexicographically when listed by type.
type PersonalRecord struct {
	ID              int      `json:"id"`
	UserID          int      `json:"-"`
	ExerciseID      int      `json:"exo_id"`
	ExerciseName    string   `json:"exo_name,omitempty"`
	Type            string   `json:"pr"`
	Quantity        int      `json:"quantity"`
	Time            string   `json:"time"`
	AddedWeight     *float64 `json:"added_weight"`
	Date            string   `json:"date"`
	Weight          *int     `json:"weight"`
	BodyweightRatio *float64 `json:"bodyweight"`
}

// TypeInfo is a distinct (record type, exercise) pair present in a user's
// ledger, used to drive the filter list on the frontend.
type TypeInfo struct {
	Type         string `json:"pr"`
	ExerciseName string `json:"exercise"`
}

// ComputeBodyweightRatio returns round((weight+addedWeight)/weight, 3) * 100,
// or nil when either operand is absent. The value is stored with the record
// and never recomputed on later reads.
func ComputeBodyweightRatio(weight *int, addedWeight *float64) *float64 {
	if weight == nil || addedWeight == nil {
		return nil
	}
	w := float64(*weight)
	ratio := math.Round((w+*addedWeight)/w*1000) / 1000 * 100
	return &ratio
}
