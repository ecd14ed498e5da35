package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/schedule"
)

// sourceService handles income, expense and subscription sources.
type sourceService struct {
	db *gorm.DB
}

// NewSourceService creates a new SourceServicer.
func NewSourceService(db *gorm.DB) SourceServicer {
	return &sourceService{db: db}
}

// CreateSource creates a new source for the user.
func (s *sourceService) CreateSource(userID uint, sourceType models.SourceType, fields SourceFields) (*models.Source, error) {
	source := &models.Source{
		UserID:     userID,
		Type:       sourceType,
		Kind:       fields.Kind,
		Title:      fields.Title,
		Amount:     fields.Amount,
		Date:       fields.Date,
		StartDate:  fields.StartDate,
		EndDate:    fields.EndDate,
		DayOfMonth: fields.DayOfMonth,
		Note:       fields.Note,
	}

	if err := s.db.Create(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return source, nil
}

// GetUserSources returns a paginated list of sources with an optional type filter.
func (s *sourceService) GetUserSources(userID uint, page pagination.PageRequest, sourceType *models.SourceType) (*pagination.PageResponse[models.Source], error) {
	page.Defaults()

	base := s.db.Model(&models.Source{}).Where("user_id = ?", userID)
	if sourceType != nil {
		base = base.Where("type = ?", *sourceType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sources []models.Source
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sources, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSourceByID returns a source by ID if it belongs to the user.
func (s *sourceService) GetSourceByID(userID, sourceID uint) (*models.Source, error) {
	var source models.Source
	if err := s.db.Where("id = ? AND user_id = ?", sourceID, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &source, nil
}

// UpdateSource updates an existing source.
func (s *sourceService) UpdateSource(userID, sourceID uint, fields SourceFields) (*models.Source, error) {
	source, err := s.GetSourceByID(userID, sourceID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"kind":         fields.Kind,
		"title":        fields.Title,
		"amount":       fields.Amount,
		"date":         fields.Date,
		"start_date":   fields.StartDate,
		"end_date":     fields.EndDate,
		"day_of_month": fields.DayOfMonth,
		"note":         fields.Note,
	}

	if err := s.db.Model(source).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return source, nil
}

// DeleteSource soft-deletes a source. Tracker entries for it are left in
// place; stale keys are simply never looked up again.
func (s *sourceService) DeleteSource(userID, sourceID uint) error {
	source, err := s.GetSourceByID(userID, sourceID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(source).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MonthView materializes the user's sources into dated occurrences for the
// given view month, joined with their completion flags.
func (s *sourceService) MonthView(userID uint, sourceType *models.SourceType, month schedule.ViewMonth) ([]MonthOccurrence, error) {
	if month.Month < time.January || month.Month > time.December || month.Year < 1 {
		return nil, apperrors.ErrInvalidViewMonth
	}

	query := s.db.Where("user_id = ?", userID)
	if sourceType != nil {
		query = query.Where("type = ?", *sourceType)
	}

	var rows []models.Source
	if err := query.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	tracker, err := s.loadTracker(userID)
	if err != nil {
		return nil, err
	}

	sources := make([]schedule.Source, 0, len(rows))
	byID := make(map[uint]models.Source, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
		sources = append(sources, schedule.Source{
			ID:         row.ID,
			Kind:       schedule.SourceKind(row.Kind),
			Amount:     row.Amount,
			Date:       row.Date,
			StartDate:  row.StartDate,
			DayOfMonth: row.DayOfMonth,
			EndDate:    row.EndDate,
		})
	}

	occurrences := schedule.Materialize(sources, tracker, month)

	view := make([]MonthOccurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		view = append(view, MonthOccurrence{
			Source:     byID[occ.Source.ID],
			Date:       occ.Date,
			IsDone:     occ.IsDone,
			Recurring:  occ.Recurring,
			TrackerKey: schedule.TrackerKey(occ.Source.ID, month),
		})
	}
	return view, nil
}

func (s *sourceService) loadTracker(userID uint) (map[string]bool, error) {
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
