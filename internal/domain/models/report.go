package models

import "time"

// MonthlyReport is a point-in-time snapshot of one calendar month, produced
// by the scheduler and stored for the treasury's records.
type MonthlyReport struct {
	Year          int       `bson:"year" json:"year"`
	Month         int       `bson:"month" json:"month"`
	Income        float64   `bson:"income" json:"income"`
	Expenses      float64   `bson:"expenses" json:"expenses"`
	Balance       float64   `bson:"balance" json:"balance"`
	TotalMembers  int       `bson:"total_members" json:"totalMembers"`
	ActiveMembers int       `bson:"active_members" json:"activeMembers"`
	GeneratedAt   time.Time `bson:"generated_at" json:"generatedAt"`
}
