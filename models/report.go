package models

import "time"

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in-progress"
	StatusResolved   ReportStatus = "resolved"
)

// Statuses lists every handling state a report can be in. There is no
// ordering between them: the admin workflow may move a report from any
// status to any other, including back to pending.
var Statuses = []ReportStatus{StatusPending, StatusInProgress, StatusResolved}

func (s ReportStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type ReportCategory string

const (
	CategoryPothole     ReportCategory = "pothole"
	CategoryStreetlight ReportCategory = "streetlight"
	CategoryGarbage     ReportCategory = "garbage"
	CategoryWater       ReportCategory = "water"
	CategorySidewalk    ReportCategory = "sidewalk"
	CategoryTraffic     ReportCategory = "traffic"
	CategoryGraffiti    ReportCategory = "graffiti"
	CategoryOther       ReportCategory = "other"
)

// Category carries the display metadata for a report category. Label and
// icon are presentation only; the enumerated value is what submission
// validation checks.
type Category struct {
	Value ReportCategory `json:"value"`
	Label string         `json:"label"`
	Icon  string         `json:"icon"`
}

var Categories = []Category{
	{Value: CategoryPothole, Label: "Pothole / Road Damage", Icon: "🕳️"},
	{Value: CategoryStreetlight, Label: "Broken Streetlight", Icon: "💡"},
	{Value: CategoryGarbage, Label: "Garbage / Waste Issue", Icon: "🗑️"},
	{Value: CategoryWater, Label: "Water Leak / Drainage", Icon: "💧"},
	{Value: CategorySidewalk, Label: "Sidewalk Damage", Icon: "🚶"},
	{Value: CategoryTraffic, Label: "Traffic Signal Issue", Icon: "🚦"},
	{Value: CategoryGraffiti, Label: "Graffiti / Vandalism", Icon: "🎨"},
	{Value: CategoryOther, Label: "Other", Icon: "📋"},
}

func (c ReportCategory) Valid() bool {
	for _, cat := range Categories {
		if cat.Value == c {
			return true
		}
	}
	return false
}

// Location is where the problem was observed. Lat/lng of 0,0 mean "unset":
// the submitter typed an address but never resolved coordinates for it.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (l Location) Unset() bool {
	return l.Lat == 0 && l.Lng == 0
}

// Report is a single citizen-submitted civic issue. The JSON field names
// are the persisted slot layout; CreatedAt round-trips as RFC3339.
type Report struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    ReportCategory `json:"category"`
	ImageURL    string         `json:"imageUrl"`
	Location    Location       `json:"location"`
	Status      ReportStatus   `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UserID      string         `json:"userId"`
	UserName    string         `json:"userName"`
}

// ReportDraft is what a submitter hands to the submission workflow. Title
// and description are enforced at the binding layer; category, photo and
// location are validated by the workflow itself, in that order.
type ReportDraft struct {
	Title       string         `json:"title" binding:"required" conform:"trim"`
	Description string         `json:"description" binding:"required" conform:"trim"`
	Category    ReportCategory `json:"category"`
	ImageURL    string         `json:"image_url"`
	Location    Location       `json:"location"`
}

// StatusFilter is a report list filter: one of the statuses, or "all".
type StatusFilter string

const FilterAll StatusFilter = "all"

func (f StatusFilter) Valid() bool {
	return f == FilterAll || ReportStatus(f).Valid()
}

// ReportStats are the aggregate counters shown above the report feed. They
// are always computed from the unfiltered store contents.
type ReportStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

type UpdateStatusRequest struct {
	Status ReportStatus `json:"status" binding:"required"`
}

type ResolveLocationRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}
