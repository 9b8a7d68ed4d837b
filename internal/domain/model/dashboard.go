//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ChangeType is the direction of a stat card's change.
type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
)

// ActivityStatus is the lifecycle state of a recent activity item.
type ActivityStatus string

const (
	ActivityCompleted  ActivityStatus = "completed"
	ActivityInProgress ActivityStatus = "in-progress"
	ActivityPending    ActivityStatus = "pending"
)

// StatCard is one summary widget on the dashboard.
type StatCard struct {
	Title      string     `json:"title"`
	Value      string     `json:"value"`
	Change     string     `json:"change"`
	ChangeType ChangeType `json:"changeType"`
}

// Activity is one row of the recent activity feed.
type Activity struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Title  string         `json:"title"`
	Date   string         `json:"date"`
	Status ActivityStatus `json:"status"`
}

// DashboardSummary is everything the dashboard page renders.
type DashboardSummary struct {
	Greeting       string     `json:"greeting"`
	Stats          []StatCard `json:"stats"`
	RecentActivity []Activity `json:"recentActivity"`
}
