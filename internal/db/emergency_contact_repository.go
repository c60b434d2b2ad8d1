package db

import (
	"github.com/zamanlabs/medicare/internal/models"
	"gorm.io/gorm"
)

type EmergencyContactRepository struct {
	database *gorm.DB
}

func NewEmergencyContactRepository(database *gorm.DB) *EmergencyContactRepository {
	return &EmergencyContactRepository{database: database}
}

func (repo *EmergencyContactRepository) ListByUser(userID uint) ([]models.EmergencyContact, error) {
	contacts := make([]models.EmergencyContact, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("is_primary DESC, name ASC, id ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (repo *EmergencyContactRepository) FindByIDForUser(contactID uint, userID uint) (models.EmergencyContact, error) {
	contact := models.EmergencyContact{}
	if err := repo.database.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error; err != nil {
		return models.EmergencyContact{}, err
	}
	return contact, nil
}

// Save creates or updates the contact. A primary contact demotes every other
// contact of the same user in the same transaction.
func (repo *EmergencyContactRepository) Save(contact *models.EmergencyContact) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(contact).Error; err != nil {
			return err
		}
		if !contact.IsPrimary {
			return nil
		}
		return tx.Model(&models.EmergencyContact{}).
			Where("user_id = ? AND id <> ?", contact.UserID, contact.ID).
			Update("is_primary", false).Error
	})
}

func (repo *EmergencyContactRepository) Delete(contact *models.EmergencyContact) error {
	return repo.database.Delete(contact).Error
}
