package db

import (
	"github.com/zamanlabs/medicare/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) ListByUser(userID uint) ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (repo *SymptomRepository) ExistsByClientID(userID uint, clientID string) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.Symptom{}).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *SymptomRepository) Create(symptom *models.Symptom) error {
	return repo.database.Create(symptom).Error
}

func (repo *SymptomRepository) FindByIDForUser(symptomID uint, userID uint) (models.Symptom, error) {
	symptom := models.Symptom{}
	if err := repo.database.Where("id = ? AND user_id = ?", symptomID, userID).First(&symptom).Error; err != nil {
		return models.Symptom{}, err
	}
	return symptom, nil
}

func (repo *SymptomRepository) Delete(symptom *models.Symptom) error {
	return repo.database.Delete(symptom).Error
}
