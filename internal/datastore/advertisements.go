// advertisements.go: advertisement queries and telemetry counters
package datastore

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetActiveAdvertisements retrieves active advertisements whose active window
// covers the current time, ordered by priority. Active-window filtering
// happens here and only here; the rotator displays whatever it is given.
func (ds *DataStore) GetActiveAdvertisements(ctx context.Context) ([]Advertisement, error) {
	var ads []Advertisement

	now := time.Now()
	err := ds.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("priority DESC").
		Find(&ads).Error
	if err != nil {
		return nil, newDatabaseError(err, "get_active_advertisements", "")
	}

	return ads, nil
}

// IncrementAdView atomically increments the view counter of an advertisement.
func (ds *DataStore) IncrementAdView(ctx context.Context, adID string) error {
	return ds.incrementAdCounter(ctx, adID, "view_count", "increment_ad_view")
}

// IncrementAdClick atomically increments the click counter of an advertisement.
func (ds *DataStore) IncrementAdClick(ctx context.Context, adID string) error {
	return ds.incrementAdCounter(ctx, adID, "click_count", "increment_ad_click")
}

func (ds *DataStore) incrementAdCounter(ctx context.Context, adID, column, operation string) error {
	result := ds.DB.WithContext(ctx).
		Model(&Advertisement{}).
		Where("id = ?", adID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return newDatabaseError(result.Error, operation, adID)
	}
	if result.RowsAffected == 0 {
		return newNotFoundError("advertisement", adID)
	}
	return nil
}
