// model.go this code defines the data model for the application
package datastore

import "time"

// EventStatusUpcoming is the lifecycle tag for events surfaced to users.
const EventStatusUpcoming = "upcoming"

// SoloArtistGroupName is the placeholder group name assigned to solo performers.
const SoloArtistGroupName = "Solo Artist"

// Idol represents an individual performer tracked for birthdays and events.
type Idol struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"index:idx_idols_name" json:"name"`
	StageName    string    `json:"stage_name,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	GroupName    string    `json:"group_name,omitempty"`
	BandID       string    `gorm:"index:idx_idols_band" json:"band_id,omitempty"`
	Birthday     string    `gorm:"index:idx_idols_birthday" json:"birthday"` // YYYY-MM-DD, year not semantically meaningful
	ProfileImage string    `json:"profile_image,omitempty"`
	FanColor     string    `json:"fan_color,omitempty"`
	IsActive     bool      `gorm:"index:idx_idols_active" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Band represents a group entity owning zero or more Idols.
type Band struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"index:idx_bands_name" json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	GroupImage  string    `json:"group_image,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"index:idx_bands_active" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members []Idol `gorm:"foreignKey:BandID" json:"members,omitempty"`
}

// Location represents a physical venue eligible for fan-event hosting.
// The Category column stores the free-text venue-type label; it is the
// canonical category representation and is resolved against the fixed
// category table by the mapper package.
type Location struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Latitude    string    `json:"latitude"`  // decimal degrees, stored as text and coerced by the mapper
	Longitude   string    `json:"longitude"` // decimal degrees, stored as text and coerced by the mapper
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"index:idx_locations_category" json:"category,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Website     string    `json:"website,omitempty"`
	Instagram   string    `json:"instagram,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	Verified    bool      `gorm:"index:idx_locations_verified" json:"verified"`
	CreatedAt   time.Time `gorm:"index:idx_locations_created" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Event represents a scheduled occurrence tying one Idol to one Location
// within a date/time window.
type Event struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	LocationID       string    `gorm:"index:idx_events_location;not null" json:"location_id"`
	IdolID           string    `gorm:"index:idx_events_idol;not null" json:"idol_id"`
	Title            string    `json:"title"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
	StartDate        string    `gorm:"index:idx_events_start" json:"start_date"` // YYYY-MM-DD
	EndDate          string    `json:"end_date"`
	StartTime        string    `json:"start_time,omitempty"` // HH:MM:SS, optional
	EndTime          string    `json:"end_time,omitempty"`
	Status           string    `gorm:"index:idx_events_status;type:varchar(20)" json:"status"`
	MaxCapacity      int       `json:"max_capacity,omitempty"`
	CurrentAttendees int       `json:"current_attendees,omitempty"`
	EntryFee         float64   `json:"entry_fee,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Idol     *Idol     `gorm:"foreignKey:IdolID" json:"idol,omitempty"`
}

// Advertisement represents a carousel advertisement with view/click counters.
type Advertisement struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title      string     `json:"title"`
	ImageURL   string     `json:"image_url"`
	LinkURL    string     `json:"link_url,omitempty"`
	Priority   int        `gorm:"index:idx_ads_priority" json:"priority"`
	IsActive   bool       `gorm:"index:idx_ads_active" json:"is_active"`
	StartsAt   *time.Time `json:"starts_at,omitempty"` // active window start, nil means unbounded
	EndsAt     *time.Time `json:"ends_at,omitempty"`   // active window end, nil means unbounded
	ViewCount  int64      `json:"view_count"`
	ClickCount int64      `json:"click_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
