package mysql

import (
	"context"
	"errors"

	"foody/domain/cart"
	"foody/domain/shared"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/mysql/po"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// CartRepository GORM implementation of cart.Repository with optimistic
// locking on the version column.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// getDB returns the transaction from context if present, otherwise the base
// connection.
func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByCustomerID loads the customer's cart with its items.
func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID string) (*cart.Cart, error) {
	db := r.getDB(ctx)

	var cartPO po.CartPO
	if err := db.Where("customer_id = ?", customerID).First(&cartPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.NewCartNotFoundError(customerID)
		}
		return nil, err
	}

	var itemPOs []*po.CartItemPO
	if err := db.Where("customer_id = ?", customerID).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return cartPO.ToDomain(itemPOs), nil
}

// Save creates or updates the cart.
//
// Updates are strict compare-and-swap on the loaded version. When zero rows
// match, a follow-up count distinguishes "cart deleted meanwhile" from
// "version moved", both of which the unit of work retries from fresh state.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if c.IsEmpty() {
		return shared.NewValidationError("cart", "items", "an empty cart must be deleted, not saved")
	}

	db := r.getDB(ctx)
	cartPO, itemPOs := po.FromCartDomain(c)

	if c.IsNew() {
		if err := db.Create(cartPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				// Another request created the cart first; retry re-loads it.
				return cart.NewConcurrentModificationError(c.CustomerID())
			}
			return err
		}
	} else {
		result := db.Model(&po.CartPO{}).
			Where("customer_id = ? AND version = ?", c.CustomerID(), c.Version()).
			Updates(map[string]any{
				"version":    c.Version() + 1,
				"updated_at": cartPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := db.Model(&po.CartPO{}).
				Where("customer_id = ?", c.CustomerID()).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return cart.NewCartNotFoundError(c.CustomerID())
			}
			return cart.NewConcurrentModificationError(c.CustomerID())
		}

		c.IncrementVersionForSave()
	}

	// Replace the item rows wholesale; the cart is small and the aggregate
	// is the unit of consistency.
	if err := db.Where("customer_id = ?", c.CustomerID()).
		Delete(&po.CartItemPO{}).Error; err != nil {
		return err
	}
	if err := db.Create(itemPOs).Error; err != nil {
		return err
	}

	c.ClearDirtyTracking()
	return nil
}

// Delete removes the cart and its items. Deleting an absent cart is a no-op.
func (r *CartRepository) Delete(ctx context.Context, customerID string) error {
	db := r.getDB(ctx)

	if err := db.Where("customer_id = ?", customerID).
		Delete(&po.CartItemPO{}).Error; err != nil {
		return err
	}
	return db.Where("customer_id = ?", customerID).
		Delete(&po.CartPO{}).Error
}

// isDuplicateKeyError reports MySQL error 1062.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

var _ cart.Repository = (*CartRepository)(nil)
