package domain

import "time"

// Status is the lifecycle stage attributed to a tracked item.
type Status string

const (
	StatusDelayed    Status = "Delayed"
	StatusPreview    Status = "Preview"
	StatusAnnounced  Status = "Announced"
	StatusUpgraded   Status = "Upgraded"
	StatusShipped    Status = "Shipped"
	StatusDeprecated Status = "Deprecated"
)

var statusRank = map[Status]int{
	StatusDelayed:    0,
	StatusPreview:    1,
	StatusAnnounced:  2,
	StatusUpgraded:   3,
	StatusShipped:    4,
	StatusDeprecated: 5,
}

// Rank places the status on the fixed promotion order. Deprecated sits
// on top: once an item is known retired, weaker later signals must not
// downgrade it. Unknown statuses rank lowest.
func (s Status) Rank() int {
	return statusRank[s]
}

// Category is the product area guessed from announcement text.
type Category string

const (
	CategoryModelAPI Category = "Model/API"
	CategoryTooling  Category = "Tooling"
	CategoryInfra    Category = "Infra"
	CategoryDeviceAR Category = "Device/AR"
	CategoryRobotics Category = "Robotics"
)

// ChangeType labels how a record entered or changed in the ledger.
type ChangeType string

const (
	ChangeNew    ChangeType = "New"
	ChangeLaunch ChangeType = "Launch"
	ChangeUpdate ChangeType = "Update"
)

// Entry is a raw item yielded by a feed reader before classification.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Published *time.Time
	Updated   *time.Time
}

// Source describes one configured feed endpoint.
type Source struct {
	Name     string
	URL      string
	Vertical string
}

// Record is one tracked item in the ledger, keyed by SourceURL.
type Record struct {
	ID             string
	Company        string
	Product        string
	Category       Category
	Status         Status
	StatusDate     string
	FirstSeen      string
	LastSeen       string
	ChangeType     ChangeType
	Version        string
	Summary        string
	SourceTitle    string
	SourceURL      string
	SourceType     string
	SourcePriority string
	Confidence     string
	Tags           string
	Regions        string
	Notes          string
}
