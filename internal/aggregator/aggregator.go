// Package aggregator assembles display-ready location sets from the datastore.
package aggregator

import (
	"context"
	"log/slog"

	"github.com/koreality/koreality-go/internal/datastore"
	"github.com/koreality/koreality-go/internal/logging"
	"github.com/koreality/koreality-go/internal/mapper"
)

// Aggregator produces view-model location lists scoped to all venues, a
// single idol or a whole band. It is constructed over an explicit datastore
// handle; there is no package-level store state.
//
// Every method follows the same failure policy: a fetch failure is logged and
// yields an empty slice, never an error. Steps after a failed step are
// skipped. Callers pass a context; a superseded request is abandoned by
// cancelling its context rather than by guarding state with a generation
// counter.
type Aggregator struct {
	ds  datastore.Interface
	log *slog.Logger
}

// New creates an Aggregator over the given datastore.
func New(ds datastore.Interface) *Aggregator {
	log := logging.ForService("aggregator")
	if log == nil {
		log = slog.Default().With("service", "aggregator")
	}
	return &Aggregator{ds: ds, log: log}
}

// LocationsForMap returns every verified location with an empty upcoming-event
// list, for the unscoped map view.
func (a *Aggregator) LocationsForMap(ctx context.Context) []mapper.MapLocation {
	locations, err := a.ds.GetVerifiedLocations(ctx)
	if err != nil {
		a.log.Error("fetching verified locations failed", "error", err)
		return []mapper.MapLocation{}
	}

	formatted := make([]mapper.MapLocation, 0, len(locations))
	for i := range locations {
		formatted = append(formatted, mapper.FormatLocation(&locations[i], nil, ""))
	}
	return formatted
}

// LocationsByIdol returns the verified locations hosting upcoming events for
// one idol, each carrying that idol's event summaries.
func (a *Aggregator) LocationsByIdol(ctx context.Context, idolID string) []mapper.MapLocation {
	events, err := a.ds.GetUpcomingEventsByIdol(ctx, idolID)
	if err != nil {
		a.log.Error("fetching events by idol failed", "idol_id", idolID, "error", err)
		return []mapper.MapLocation{}
	}
	if len(events) == 0 {
		return []mapper.MapLocation{}
	}

	return a.locationsForEvents(ctx, events)
}

// LocationsByBand expands the band to its member idols, fetches the union of
// the members' upcoming events and returns the verified locations referenced
// by them. A location visited by several members carries the union of all
// their event summaries, not deduplicated by idol.
func (a *Aggregator) LocationsByBand(ctx context.Context, bandID string) []mapper.MapLocation {
	members, err := a.ds.GetBandMembers(ctx, bandID)
	if err != nil {
		a.log.Error("fetching band members failed", "band_id", bandID, "error", err)
		return []mapper.MapLocation{}
	}
	if len(members) == 0 {
		return []mapper.MapLocation{}
	}

	memberIDs := make([]string, len(members))
	for i := range members {
		memberIDs[i] = members[i].ID
	}

	events, err := a.ds.GetUpcomingEventsByIdols(ctx, memberIDs)
	if err != nil {
		a.log.Error("fetching events for band members failed", "band_id", bandID, "error", err)
		return []mapper.MapLocation{}
	}
	if len(events) == 0 {
		return []mapper.MapLocation{}
	}

	return a.locationsForEvents(ctx, events)
}

// locationsForEvents fetches the verified locations referenced by the given
// events and attaches each location's matching events.
func (a *Aggregator) locationsForEvents(ctx context.Context, events []datastore.Event) []mapper.MapLocation {
	locations, err := a.ds.GetLocationsByIDs(ctx, uniqueLocationIDs(events))
	if err != nil {
		a.log.Error("fetching locations for events failed", "error", err)
		return []mapper.MapLocation{}
	}

	formatted := make([]mapper.MapLocation, 0, len(locations))
	for i := range locations {
		var matched []datastore.Event
		for j := range events {
			if events[j].LocationID == locations[i].ID {
				matched = append(matched, events[j])
			}
		}
		formatted = append(formatted, mapper.FormatLocation(&locations[i], matched, ""))
	}
	return formatted
}

// uniqueLocationIDs returns each event's location id once, in first-seen order.
func uniqueLocationIDs(events []datastore.Event) []string {
	seen := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for i := range events {
		if _, ok := seen[events[i].LocationID]; ok {
			continue
		}
		seen[events[i].LocationID] = struct{}{}
		ids = append(ids, events[i].LocationID)
	}
	return ids
}
