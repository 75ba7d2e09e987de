// idols.go: idol and band queries
package datastore

import (
	"context"
)

// GetActiveIdols retrieves all active idols ordered by birthday.
func (ds *DataStore) GetActiveIdols(ctx context.Context) ([]Idol, error) {
	var idols []Idol

	err := ds.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("birthday ASC").
		Find(&idols).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_active_idols", "")
	}

	return idols, nil
}

// GetSoloArtists retrieves idols performing without a band.
func (ds *DataStore) GetSoloArtists(ctx context.Context) ([]Idol, error) {
	var idols []Idol

	err := ds.DB.WithContext(ctx).
		Where("group_name = ?", SoloArtistGroupName).
		Order("name ASC").
		Find(&idols).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_solo_artists", "")
	}

	return idols, nil
}

// GetIdol retrieves a single idol by id.
func (ds *DataStore) GetIdol(ctx context.Context, id string) (*Idol, error) {
	var idol Idol

	err := ds.DB.WithContext(ctx).First(&idol, "id = ?", id).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, newNotFoundError("idol", id)
		}
		return nil, newDatabaseError(err, "get_idol", id)
	}

	return &idol, nil
}

// GetBands retrieves all active bands, excluding the solo-artist placeholder.
func (ds *DataStore) GetBands(ctx context.Context) ([]Band, error) {
	var bands []Band

	err := ds.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("name <> ?", SoloArtistGroupName).
		Order("name ASC").
		Find(&bands).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_bands", "")
	}

	return bands, nil
}

// GetBand retrieves a single band by id.
func (ds *DataStore) GetBand(ctx context.Context, id string) (*Band, error) {
	var band Band

	err := ds.DB.WithContext(ctx).First(&band, "id = ?", id).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, newNotFoundError("band", id)
		}
		return nil, newDatabaseError(err, "get_band", id)
	}

	return &band, nil
}

// GetBandMembers retrieves the idols belonging to a band, ordered by name.
func (ds *DataStore) GetBandMembers(ctx context.Context, bandID string) ([]Idol, error) {
	var members []Idol

	err := ds.DB.WithContext(ctx).
		Where("band_id = ?", bandID).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_band_members", bandID)
	}

	return members, nil
}
