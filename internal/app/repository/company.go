package repository

import (
	"errors"
	"fmt"

	"estimator/internal/app/ds"

	"gorm.io/gorm"
)

// Asset kinds stored on a company row.
const (
	AssetLogo      = "logo"
	AssetSignature = "signature"
	AssetStamp     = "stamp"
)

func (r *Repository) ListCompanies(userID uint) ([]ds.Company, error) {
	var companies []ds.Company
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&companies).Error
	return companies, err
}

func (r *Repository) GetCompany(userID uint, id string) (*ds.Company, error) {
	var company ds.Company
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&company).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &company, nil
}

// GetDefaultCompany returns the default company, or the oldest one when
// none is flagged.
func (r *Repository) GetDefaultCompany(userID uint) (*ds.Company, error) {
	var company ds.Company
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at ASC").
		First(&company).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &company, nil
}

// CreateCompany inserts the company; a default company clears the flag on
// the user's other companies in the same transaction.
func (r *Repository) CreateCompany(company *ds.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		if company.IsDefault {
			return clearOtherDefaults(tx, company.UserID, company.ID)
		}
		return nil
	})
}

func (r *Repository) UpdateCompany(company *ds.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ds.Company{}).
			Where("id = ? AND user_id = ?", company.ID, company.UserID).
			Select("name", "address", "phone", "email", "website", "biz_no", "biz_type",
				"biz_item", "bank_name", "account_number", "is_default", "updated_at").
			Updates(company)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if company.IsDefault {
			return clearOtherDefaults(tx, company.UserID, company.ID)
		}
		return nil
	})
}

// SetDefaultCompany flags id as the only default company of the user.
func (r *Repository) SetDefaultCompany(userID uint, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ds.Company{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return clearOtherDefaults(tx, userID, id)
	})
}

func clearOtherDefaults(tx *gorm.DB, userID uint, keepID string) error {
	return tx.Model(&ds.Company{}).
		Where("user_id = ? AND id <> ?", userID, keepID).
		Update("is_default", false).Error
}

// UpdateCompanyAsset stores the public url of an uploaded image.
func (r *Repository) UpdateCompanyAsset(userID uint, id, kind, url string) error {
	var column string
	switch kind {
	case AssetLogo, AssetSignature, AssetStamp:
		column = kind
	default:
		return fmt.Errorf("unknown asset kind %q", kind)
	}

	result := r.db.Model(&ds.Company{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update(column, url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCompany(userID uint, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ds.Company{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err means the row does not exist for the user.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
