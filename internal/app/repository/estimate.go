package repository

import (
	"time"

	"estimator/internal/app/ds"

	"gorm.io/gorm"
)

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ListEstimates returns the saved estimates, newest save first. Items are not loaded.
func (r *Repository) ListEstimates(userID uint) ([]ds.Estimate, error) {
	var estimates []ds.Estimate
	err := r.db.Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&estimates).Error
	return estimates, err
}

func (r *Repository) GetEstimate(userID uint, id string) (*ds.Estimate, error) {
	var est ds.Estimate
	err := r.db.Preload("Items", orderedItems).
		Where("id = ? AND user_id = ?", id, userID).
		First(&est).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &est, nil
}

// CreateEstimate inserts a new estimate with its items.
func (r *Repository) CreateEstimate(est *ds.Estimate) error {
	est.ID = ""
	est.SavedAt = time.Now()
	for i := range est.Items {
		est.Items[i].ID = 0
		est.Items[i].EstimateID = ""
		est.Items[i].Position = i
	}
	return r.db.Create(est).Error
}

// SaveEstimate overwrites the estimate header and replaces every item row.
func (r *Repository) SaveEstimate(est *ds.Estimate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&ds.Estimate{}).
			Where("id = ? AND user_id = ?", est.ID, est.UserID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		est.SavedAt = time.Now()
		err = tx.Model(&ds.Estimate{}).
			Where("id = ?", est.ID).
			Select("title", "template_id", "display_client_name",
				"client_name", "client_company", "client_email", "client_phone",
				"company_id", "company", "total_amount", "tax_rate", "tax_amount",
				"final_amount", "negotiation_rate", "valid_until", "notes",
				"saved_at", "updated_at").
			Updates(est).Error
		if err != nil {
			return err
		}

		if err := tx.Where("estimate_id = ?", est.ID).Delete(&ds.EstimateItem{}).Error; err != nil {
			return err
		}
		if len(est.Items) == 0 {
			return nil
		}
		for i := range est.Items {
			est.Items[i].ID = 0
			est.Items[i].EstimateID = est.ID
			est.Items[i].Position = i
		}
		return tx.Create(&est.Items).Error
	})
}

// DeleteEstimate soft-deletes the estimate; its items stay for recovery.
func (r *Repository) DeleteEstimate(userID uint, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ds.Estimate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
