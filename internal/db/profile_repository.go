package db

import (
	"github.com/zamanlabs/medicare/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

// FindByUser returns gorm.ErrRecordNotFound when the user has no profile yet.
func (repo *ProfileRepository) FindByUser(userID uint) (models.Profile, error) {
	var profile models.Profile
	if err := repo.database.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) Create(profile *models.Profile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) Save(profile *models.Profile) error {
	return repo.database.Save(profile).Error
}
