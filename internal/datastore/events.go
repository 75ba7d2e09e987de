// events.go: event queries
package datastore

import (
	"context"
)

// GetUpcomingEvents retrieves all upcoming events with their location and idol
// preloaded, ordered by start date.
func (ds *DataStore) GetUpcomingEvents(ctx context.Context) ([]Event, error) {
	var events []Event

	err := ds.DB.WithContext(ctx).
		Preload("Location").
		Preload("Idol").
		Where("status = ?", EventStatusUpcoming).
		Order("start_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_upcoming_events", "")
	}

	return events, nil
}

// GetUpcomingEventsByIdol retrieves upcoming events for a single idol.
func (ds *DataStore) GetUpcomingEventsByIdol(ctx context.Context, idolID string) ([]Event, error) {
	return ds.GetUpcomingEventsByIdols(ctx, []string{idolID})
}

// GetUpcomingEventsByIdols retrieves upcoming events for a set of idols with
// each event's idol preloaded, replacing the client-side idol lookup step.
func (ds *DataStore) GetUpcomingEventsByIdols(ctx context.Context, idolIDs []string) ([]Event, error) {
	if len(idolIDs) == 0 {
		return []Event{}, nil
	}

	var events []Event
	err := ds.DB.WithContext(ctx).
		Preload("Idol").
		Where("idol_id IN ?", idolIDs).
		Where("status = ?", EventStatusUpcoming).
		Order("start_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_upcoming_events_by_idols", "")
	}

	return events, nil
}

// GetEvent retrieves a single event by id with location and idol preloaded.
func (ds *DataStore) GetEvent(ctx context.Context, id string) (*Event, error) {
	var event Event

	err := ds.DB.WithContext(ctx).
		Preload("Location").
		Preload("Idol").
		First(&event, "id = ?", id).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, newNotFoundError("event", id)
		}
		return nil, newDatabaseError(err, "get_event", id)
	}

	return &event, nil
}
