package repository

import "github.com/nayxus/nayxus-stock/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(search string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
