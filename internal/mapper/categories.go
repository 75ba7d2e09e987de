// Package mapper shapes raw store records into display-ready view models.
package mapper

// CategoryID identifies one of the fixed venue-type categories.
type CategoryID string

// The closed set of venue categories. Labels outside this set resolve to
// CategoryOther.
const (
	CategoryCafe           CategoryID = "cafe"
	CategoryMovie          CategoryID = "movie"
	CategoryPopup          CategoryID = "popup"
	CategoryPhotobooth     CategoryID = "photobooth"
	CategoryBillboard      CategoryID = "billboard"
	CategoryCheckin        CategoryID = "checkin"
	CategoryConcert        CategoryID = "concert"
	CategoryBusAd          CategoryID = "bus_ad"
	CategoryDanceChallenge CategoryID = "dance_challenge"
	CategoryFansign        CategoryID = "fansign"
	CategoryOther          CategoryID = "other"
)

// Category carries the fixed presentation attributes of a venue category.
type Category struct {
	ID          CategoryID `json:"id"`
	Icon        string     `json:"icon"`         // marker glyph
	MarkerColor string     `json:"marker_color"` // hex marker fill color
}

// categoryTable is the authoritative icon and marker color per category.
var categoryTable = map[CategoryID]Category{
	CategoryCafe:           {ID: CategoryCafe, Icon: "☕", MarkerColor: "#f59e0b"},
	CategoryMovie:          {ID: CategoryMovie, Icon: "🎬", MarkerColor: "#6366f1"},
	CategoryPopup:          {ID: CategoryPopup, Icon: "🛍️", MarkerColor: "#ec4899"},
	CategoryPhotobooth:     {ID: CategoryPhotobooth, Icon: "📸", MarkerColor: "#a855f7"},
	CategoryBillboard:      {ID: CategoryBillboard, Icon: "📢", MarkerColor: "#3b82f6"},
	CategoryCheckin:        {ID: CategoryCheckin, Icon: "🌟", MarkerColor: "#10b981"},
	CategoryConcert:        {ID: CategoryConcert, Icon: "🎤", MarkerColor: "#ef4444"},
	CategoryBusAd:          {ID: CategoryBusAd, Icon: "🚌", MarkerColor: "#f97316"},
	CategoryDanceChallenge: {ID: CategoryDanceChallenge, Icon: "💃", MarkerColor: "#8b5cf6"},
	CategoryFansign:        {ID: CategoryFansign, Icon: "✍️", MarkerColor: "#06b6d4"},
	CategoryOther:          {ID: CategoryOther, Icon: "📍", MarkerColor: "#6b7280"},
}

// ResolveCategory looks up a free-text label in the fixed category table.
// Unknown or empty labels resolve to the "other" category.
func ResolveCategory(label string) Category {
	if category, ok := categoryTable[CategoryID(label)]; ok {
		return category
	}
	return categoryTable[CategoryOther]
}

// Categories returns all fixed categories, for clients that render legends.
func Categories() []Category {
	out := make([]Category, 0, len(categoryTable))
	for _, id := range []CategoryID{
		CategoryCafe, CategoryMovie, CategoryPopup, CategoryPhotobooth,
		CategoryBillboard, CategoryCheckin, CategoryConcert, CategoryBusAd,
		CategoryDanceChallenge, CategoryFansign, CategoryOther,
	} {
		out = append(out, categoryTable[id])
	}
	return out
}
