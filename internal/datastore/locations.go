// locations.go: venue queries
package datastore

import (
	"context"
)

// GetVerifiedLocations retrieves all verified locations, newest first.
// Unverified locations are never surfaced to callers.
func (ds *DataStore) GetVerifiedLocations(ctx context.Context) ([]Location, error) {
	var locations []Location

	err := ds.DB.WithContext(ctx).
		Where("verified = ?", true).
		Order("created_at DESC").
		Find(&locations).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_verified_locations", "")
	}

	return locations, nil
}

// GetLocationsByIDs retrieves the verified locations among the given id set.
func (ds *DataStore) GetLocationsByIDs(ctx context.Context, ids []string) ([]Location, error) {
	if len(ids) == 0 {
		return []Location{}, nil
	}

	var locations []Location
	err := ds.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Where("verified = ?", true).
		Find(&locations).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_locations_by_ids", "")
	}

	return locations, nil
}
