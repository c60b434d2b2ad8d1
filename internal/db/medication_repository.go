package db

import (
	"github.com/zamanlabs/medicare/internal/models"
	"gorm.io/gorm"
)

type MedicationRepository struct {
	database *gorm.DB
}

func NewMedicationRepository(database *gorm.DB) *MedicationRepository {
	return &MedicationRepository{database: database}
}

func (repo *MedicationRepository) ListByUser(userID uint) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (repo *MedicationRepository) Create(medication *models.Medication) error {
	return repo.database.Create(medication).Error
}

func (repo *MedicationRepository) FindByIDForUser(medicationID uint, userID uint) (models.Medication, error) {
	medication := models.Medication{}
	if err := repo.database.Where("id = ? AND user_id = ?", medicationID, userID).First(&medication).Error; err != nil {
		return models.Medication{}, err
	}
	return medication, nil
}

func (repo *MedicationRepository) Save(medication *models.Medication) error {
	return repo.database.Save(medication).Error
}

func (repo *MedicationRepository) UpdateTaken(medication *models.Medication) error {
	return repo.database.Model(medication).Select("is_taken", "updated_at").Updates(medication).Error
}

func (repo *MedicationRepository) Delete(medication *models.Medication) error {
	return repo.database.Delete(medication).Error
}
