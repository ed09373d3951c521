package repository

import (
	"estimator/internal/app/ds"
)

func (r *Repository) ListCustomers(userID uint) ([]ds.Customer, error) {
	var customers []ds.Customer
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&customers).Error
	return customers, err
}

// SearchCustomers matches the name or company case-insensitively.
func (r *Repository) SearchCustomers(userID uint, query string) ([]ds.Customer, error) {
	var customers []ds.Customer
	pattern := "%" + query + "%"
	err := r.db.Where("user_id = ? AND (LOWER(name) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?))", userID, pattern, pattern).
		Order("created_at ASC").
		Find(&customers).Error
	return customers, err
}

func (r *Repository) GetCustomer(userID uint, id string) (*ds.Customer, error) {
	var customer ds.Customer
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (r *Repository) CreateCustomer(customer *ds.Customer) error {
	return r.db.Create(customer).Error
}

func (r *Repository) UpdateCustomer(customer *ds.Customer) error {
	result := r.db.Model(&ds.Customer{}).
		Where("id = ? AND user_id = ?", customer.ID, customer.UserID).
		Select("name", "company", "email", "phone", "updated_at").
		Updates(customer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCustomer(userID uint, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ds.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
