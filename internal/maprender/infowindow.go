package maprender

import (
	htmltemplate "html/template"
	"strings"

	"github.com/koreality/koreality-go/internal/mapper"
)

// infoWindowTemplate renders the fixed-layout marker popup: category badge,
// venue name and address, optional description, and the upcoming-event list
// with links into the event detail view.
var infoWindowTemplate = htmltemplate.Must(htmltemplate.New("infowindow").Funcs(htmltemplate.FuncMap{
	"title": titleCase,
}).Parse(`<div class="iw">
  <div class="iw-header">
    <span class="iw-badge" style="background-color: {{.MarkerColor}}">{{title (printf "%s" .CategoryID)}}</span>
    <h3 class="iw-name">{{.Name}}</h3>
  </div>
  <p class="iw-address">{{.Address}}</p>
  {{- if .Description}}
  <p class="iw-description">{{.Description}}</p>
  {{- end}}
  <div class="iw-events">
    <h4>Upcoming Events:</h4>
    {{- if .UpcomingEvents}}
    {{- range .UpcomingEvents}}
    <a class="iw-event" href="/events/{{.ID}}">
      <div class="iw-event-title">{{.Title}}</div>
      <div class="iw-event-time">{{.StartTime}} - {{.EndTime}}</div>
      <div class="iw-event-idol">{{.IdolName}}</div>
    </a>
    {{- end}}
    {{- else}}
    <div class="iw-empty">No upcoming events</div>
    {{- end}}
  </div>
</div>`))

// InfoWindowHTML renders the popup content for one map location.
func InfoWindowHTML(location *mapper.MapLocation) (string, error) {
	var sb strings.Builder
	if err := infoWindowTemplate.Execute(&sb, location); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// titleCase upper-cases the first letter of a category id for the badge label.
func titleCase(s string) string {
	if s == "" {
		return "VENUE"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
