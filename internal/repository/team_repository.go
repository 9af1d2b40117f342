package repository

import (
	"context"

	"campaign/backend/internal/models"
)

// TeamRepository manages the team name list.
type TeamRepository interface {
	List(ctx context.Context) ([]models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type GormTeamRepository struct {
	store DBProvider
}

// NewTeamRepository returns a gorm backed TeamRepository.
func NewTeamRepository(store DBProvider) *GormTeamRepository {
	return &GormTeamRepository{store: store}
}

func (r *GormTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return nil, err
	}
	var teams []models.Team
	if err := db.Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return db.Create(team).Error
}

// Rename changes a team's name. Registrations keep the old string.
func (r *GormTeamRepository) Rename(ctx context.Context, id uint, name string) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return affected(db.Model(&models.Team{}).Where("id = ?", id).Update("name", name))
}

func (r *GormTeamRepository) Delete(ctx context.Context, id uint) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return affected(db.Where("id = ?", id).Delete(&models.Team{}))
}
