package models

// TrackerEntry persists one completion flag of the month tracker. The key
// is "{sourceID}_{month}_{year}" with a zero-based month index, composed by
// the schedule core; the shape is frozen because stored keys must keep
// round-tripping against rows written by the legacy system.
type TrackerEntry struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_tracker_user_key" json:"user_id"`
	Key    string `gorm:"not null;uniqueIndex:idx_tracker_user_key;size:64" json:"key"`
	Value  bool   `gorm:"not null;default:false" json:"value"`
}
