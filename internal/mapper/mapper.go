package mapper

import (
	"math"
	"strconv"
	"time"

	"github.com/koreality/koreality-go/internal/datastore"
)

const (
	// IdolNamePlaceholder is shown when an event carries no resolvable performer name.
	IdolNamePlaceholder = "TBA"
	// TimePlaceholder is shown when an event's date or time-of-day is missing.
	TimePlaceholder = "Time pending"

	displayTimeLayout = "2006/01/02 15:04"
)

// EventSummary is the display-ready projection of an event attached to a
// map location.
type EventSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IdolName  string `json:"idol_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// MapLocation is the merged, display-ready projection of a Location plus its
// resolved category and matched events. It is constructed fresh on every
// aggregation and never persisted.
type MapLocation struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Description    string         `json:"description,omitempty"`
	CategoryID     CategoryID     `json:"category"`
	Icon           string         `json:"icon"`
	MarkerColor    string         `json:"marker_color"`
	Phone          string         `json:"phone,omitempty"`
	Website        string         `json:"website,omitempty"`
	Instagram      string         `json:"instagram,omitempty"`
	Rating         float64        `json:"rating,omitempty"`
	UpcomingEvents []EventSummary `json:"upcoming_events"`
}

// HasValidCoordinates reports whether both coordinates parsed to real numbers.
// Locations failing this check must not be placed on the map.
func (ml *MapLocation) HasValidCoordinates() bool {
	return !math.IsNaN(ml.Latitude) && !math.IsNaN(ml.Longitude)
}

// ParseCoordinate converts a stored coordinate to a float. A non-numeric
// value yields NaN; callers reject such locations before rendering rather
// than defaulting to a coordinate.
func ParseCoordinate(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// FormatLocation builds a MapLocation from a raw location row, its matched
// events and an optional category label. When the label is empty the
// location's own stored label is used. Pure transformation, no side effects.
func FormatLocation(location *datastore.Location, events []datastore.Event, label string) MapLocation {
	if label == "" {
		label = location.Category
	}
	category := ResolveCategory(label)

	summaries := make([]EventSummary, 0, len(events))
	for i := range events {
		summaries = append(summaries, summarizeEvent(&events[i]))
	}

	return MapLocation{
		ID:             location.ID,
		Name:           location.Name,
		Address:        location.Address,
		Latitude:       ParseCoordinate(location.Latitude),
		Longitude:      ParseCoordinate(location.Longitude),
		Description:    location.Description,
		CategoryID:     category.ID,
		Icon:           category.Icon,
		MarkerColor:    category.MarkerColor,
		Phone:          location.Phone,
		Website:        location.Website,
		Instagram:      location.Instagram,
		Rating:         location.Rating,
		UpcomingEvents: summaries,
	}
}

// summarizeEvent projects an event into its display summary.
func summarizeEvent(event *datastore.Event) EventSummary {
	return EventSummary{
		ID:        event.ID,
		Title:     event.Title,
		IdolName:  IdolDisplayName(event.Idol),
		StartTime: FormatEventInstant(event.StartDate, event.StartTime),
		EndTime:   FormatEventInstant(event.EndDate, event.EndTime),
	}
}

// IdolDisplayName resolves a performer's display name, falling back through
// stage name, then name, then the TBA placeholder.
func IdolDisplayName(idol *datastore.Idol) string {
	if idol == nil {
		return IdolNamePlaceholder
	}
	if idol.StageName != "" {
		return idol.StageName
	}
	if idol.Name != "" {
		return idol.Name
	}
	return IdolNamePlaceholder
}

// FormatEventInstant combines a calendar date and a time-of-day into a
// human-readable string. When either part is missing or unparsable the
// time-pending placeholder is returned.
func FormatEventInstant(date, timeOfDay string) string {
	if date == "" || timeOfDay == "" {
		return TimePlaceholder
	}

	instant, err := time.Parse("2006-01-02T15:04:05", date+"T"+timeOfDay)
	if err != nil {
		// stored times may omit seconds
		instant, err = time.Parse("2006-01-02T15:04", date+"T"+timeOfDay)
		if err != nil {
			return TimePlaceholder
		}
	}

	return instant.Format(displayTimeLayout)
}
