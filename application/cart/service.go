/*
Package cart - cart business process orchestration.

AddToCart is a read-modify-write: the increment runs inside the unit of
work so a concurrent add from another device never loses an increment.
The unit of work retries version conflicts; everything else propagates.
*/
package cart

import (
	"context"
	"errors"

	"foody/domain/cart"
	"foody/domain/catalog"
	"foody/domain/shared"
)

// ApplicationService coordinates cart operations.
type ApplicationService struct {
	carts      cart.Repository
	products   catalog.ProductReader
	shops      catalog.ShopReader
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates a cart application service.
func NewApplicationService(
	carts cart.Repository,
	products catalog.ProductReader,
	shops catalog.ShopReader,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		carts:      carts,
		products:   products,
		shops:      shops,
		uowFactory: uowFactory,
	}
}

// AddToCart adds a product to the actor's cart, accumulating quantity onto
// an existing entry. Returns the full grouped view of the cart.
func (s *ApplicationService) AddToCart(ctx context.Context, actor shared.Actor, req AddToCartRequest) (*GroupedCartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsOrderable() {
		return nil, catalog.NewProductUnavailableError(product.ID())
	}

	shop, err := s.shops.FindByID(ctx, product.ShopID())
	if err != nil {
		return nil, err
	}
	if !shop.IsOpen() {
		return nil, catalog.NewShopClosedError(shop.ID())
	}

	snapshot := cart.ProductSnapshot{
		ProductID: product.ID(),
		ShopID:    product.ShopID(),
		Name:      product.Name(),
		Image:     product.Image(),
		Price:     product.Price(),
	}

	var c *cart.Cart
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.FindByCustomerID(ctx, actor.ID)
		if errors.Is(err, cart.ErrCartNotFound) {
			c = cart.NewCart(actor.ID)
		} else if err != nil {
			return err
		}

		if err := c.AddItem(snapshot, req.Quantity); err != nil {
			return err
		}

		if err := s.carts.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.groupedView(ctx, c)
}

// GetCartGrouped returns the actor's cart partitioned by shop. A missing
// cart is an empty view, not an error.
func (s *ApplicationService) GetCartGrouped(ctx context.Context, actor shared.Actor) (*GroupedCartResponse, error) {
	c, err := s.carts.FindByCustomerID(ctx, actor.ID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return &GroupedCartResponse{Groups: []CartGroupResponse{}}, nil
	}
	if err != nil {
		return nil, err
	}

	return s.groupedView(ctx, c)
}

// UpdateCartItem overwrites an item's quantity. No accumulation.
func (s *ApplicationService) UpdateCartItem(ctx context.Context, actor shared.Actor, productID string, req UpdateCartItemRequest) (*GroupedCartResponse, error) {
	var c *cart.Cart
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.FindByCustomerID(ctx, actor.ID)
		if err != nil {
			return err
		}

		if err := c.SetItemQuantity(productID, req.Quantity); err != nil {
			return err
		}

		if err := s.carts.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.groupedView(ctx, c)
}

// RemoveCartItem removes one product. When the last item goes, the cart
// document goes with it.
func (s *ApplicationService) RemoveCartItem(ctx context.Context, actor shared.Actor, productID string) (*GroupedCartResponse, error) {
	var c *cart.Cart
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.FindByCustomerID(ctx, actor.ID)
		if err != nil {
			return err
		}

		if err := c.RemoveItem(productID); err != nil {
			return err
		}

		if c.IsEmpty() {
			return s.carts.Delete(ctx, actor.ID)
		}
		if err := s.carts.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.groupedView(ctx, c)
}

// ClearCartByShop removes every item of one shop and returns the removed
// count plus the recomputed view. A no-op (no cart, or no items for the
// shop) performs no write at all.
func (s *ApplicationService) ClearCartByShop(ctx context.Context, actor shared.Actor, shopID string) (*ClearByShopResponse, error) {
	var (
		c       *cart.Cart
		removed int
	)
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.carts.FindByCustomerID(ctx, actor.ID)
		if errors.Is(err, cart.ErrCartNotFound) {
			c = nil
			return nil
		}
		if err != nil {
			return err
		}

		removed = c.RemoveShopItems(shopID)
		if removed == 0 {
			return nil
		}

		if c.IsEmpty() {
			return s.carts.Delete(ctx, actor.ID)
		}
		if err := s.carts.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	grouped, err := s.groupedView(ctx, c)
	if err != nil {
		return nil, err
	}
	return &ClearByShopResponse{RemovedCount: removed, Groups: grouped.Groups}, nil
}

// ClearCart deletes the whole cart. Idempotent.
func (s *ApplicationService) ClearCart(ctx context.Context, actor shared.Actor) error {
	return s.carts.Delete(ctx, actor.ID)
}

// groupedView batch-fetches each distinct shop once and builds the grouped
// response. c may be nil or empty.
func (s *ApplicationService) groupedView(ctx context.Context, c *cart.Cart) (*GroupedCartResponse, error) {
	if c == nil || c.IsEmpty() {
		return &GroupedCartResponse{Groups: []CartGroupResponse{}}, nil
	}

	shops, err := s.shops.FindByIDs(ctx, c.ShopIDs())
	if err != nil {
		return nil, err
	}

	return &GroupedCartResponse{Groups: groupItems(c, shops)}, nil
}
