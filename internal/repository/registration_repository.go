package repository

import (
	"context"
	"strings"

	"campaign/backend/internal/models"

	"gorm.io/gorm/clause"
)

// ListOptions narrows and orders a registration listing.
type ListOptions struct {
	// Query matches team, in_game_name or tanks, case-insensitively.
	Query      string
	SortByTeam bool
	Page       Page
}

// RegistrationFields are the three editable columns.
type RegistrationFields struct {
	Team       string
	InGameName string
	Tanks      string
}

// RegistrationRepository manages form submissions.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	List(ctx context.Context, opts ListOptions) ([]models.Registration, int64, error)
	Update(ctx context.Context, id uint, fields RegistrationFields) (*models.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type GormRegistrationRepository struct {
	store DBProvider
}

// NewRegistrationRepository returns a gorm backed RegistrationRepository.
func NewRegistrationRepository(store DBProvider) *GormRegistrationRepository {
	return &GormRegistrationRepository{store: store}
}

func (r *GormRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return db.Create(reg).Error
}

// List returns matching rows, newest first unless SortByTeam is set, and the
// total number of matches.
func (r *GormRegistrationRepository) List(ctx context.Context, opts ListOptions) ([]models.Registration, int64, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := db.Model(&models.Registration{})
	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where("team ILIKE ? OR in_game_name ILIKE ? OR tanks ILIKE ?", pattern, pattern, pattern)
	}
	if opts.SortByTeam {
		query = query.Order("team ASC")
	}
	query = query.Order("created_at DESC")

	if opts.Page.Limit > 0 {
		return paginate[models.Registration](query, opts.Page)
	}

	var regs []models.Registration
	if err := query.Find(&regs).Error; err != nil {
		return nil, 0, err
	}
	return regs, int64(len(regs)), nil
}

// Update overwrites all three columns in one statement and returns the row
// as stored.
func (r *GormRegistrationRepository) Update(ctx context.Context, id uint, fields RegistrationFields) (*models.Registration, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	var reg models.Registration
	res := db.Model(&reg).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"team":         fields.Team,
			"in_game_name": fields.InGameName,
			"tanks":        fields.Tanks,
		})
	if err := affected(res); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *GormRegistrationRepository) Delete(ctx context.Context, id uint) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	// deleting an absent row is not an error
	return db.Where("id = ?", id).Delete(&models.Registration{}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
