package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finown/internal/errors"
	"finown/internal/models"
)

// trackerKeyPattern matches "{sourceID}_{month}_{year}" with a zero-based
// month. Keys are validated here rather than re-derived so that flags for
// since-deleted sources can still be read back.
var trackerKeyPattern = regexp.MustCompile(`^\d+_\d{1,2}_\d{4}$`)

// trackerService handles the per-month completion tracker.
type trackerService struct {
	db *gorm.DB
}

// NewTrackerService creates a new TrackerServicer.
func NewTrackerService(db *gorm.DB) TrackerServicer {
	return &trackerService{db: db}
}

// GetAll returns every completion flag stored for the user.
func (s *trackerService) GetAll(userID uint) (map[string]bool, error) {
	var entries []models.TrackerEntry
	if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	tracker := make(map[string]bool, len(entries))
	for _, entry := range entries {
		tracker[entry.Key] = entry.Value
	}
	return tracker, nil
}

// Toggle flips the completion flag for a key and returns the new value.
// A key with no stored entry counts as false, so the first toggle creates
// the entry with value true.
func (s *trackerService) Toggle(userID uint, key string) (bool, error) {
	if !trackerKeyPattern.MatchString(key) {
		return false, apperrors.ErrInvalidTrackerKey
	}

	var next bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.TrackerEntry
		err := tx.Where("user_id = ? AND key = ?", userID, key).First(&entry).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			next = true
		case err != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		default:
			next = !entry.Value
		}

		entry = models.TrackerEntry{UserID: userID, Key: key, Value: next}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return next, nil
}
