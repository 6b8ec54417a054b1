package usecase

import (
	"context"
	"fmt"
	"time"

	"myshop/pkg/logger"
	"myshop/pkg/models"
	"myshop/services/cart/internal/entity"
	"myshop/services/cart/internal/repo/persistent"
)

type CartUseCase interface {
	GetCart(ctx context.Context, userID string) (*entity.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID string) (*entity.Cart, error)
	GetWishlist(ctx context.Context, userID string) (*entity.Wishlist, error)
	ToggleWishlist(ctx context.Context, userID, productID string) (*entity.Wishlist, bool, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) (*entity.Wishlist, error)
}

type cartUseCase struct {
	cartRepo      persistent.CartRepository
	productLookup persistent.ProductLookup
	logger        *logger.Logger
}

func NewCartUseCase(cartRepo persistent.CartRepository, productLookup persistent.ProductLookup, logger *logger.Logger) CartUseCase {
	return &cartUseCase{
		cartRepo:      cartRepo,
		productLookup: productLookup,
		logger:        logger,
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, userID string) (*entity.Cart, error) {
	return uc.cartRepo.GetCart(ctx, userID)
}

// AddItem appends the product to the cart, or bumps its quantity when it is
// already there.
func (uc *cartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := uc.productLookup.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	if product.Status != models.ProductStatusLive {
		return nil, fmt.Errorf("product is no longer available")
	}

	cart, err := uc.cartRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: effectivePrice(product),
			ImageURL:  product.ImageURL,
			Quantity:  quantity,
		})
	}

	if err := uc.cartRepo.SaveCart(ctx, cart); err != nil {
		uc.logger.Error("Failed to save cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update cart")
	}
	return cart, nil
}

// UpdateQuantity sets the line quantity, clamped to a floor of one; use
// RemoveItem to drop a line entirely.
func (uc *cartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := uc.cartRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("item not in cart")
	}

	if err := uc.cartRepo.SaveCart(ctx, cart); err != nil {
		uc.logger.Error("Failed to save cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update cart")
	}
	return cart, nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error) {
	cart, err := uc.cartRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := uc.cartRepo.SaveCart(ctx, cart); err != nil {
		uc.logger.Error("Failed to save cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update cart")
	}
	return cart, nil
}

func (uc *cartUseCase) ClearCart(ctx context.Context, userID string) (*entity.Cart, error) {
	cart := &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
	if err := uc.cartRepo.SaveCart(ctx, cart); err != nil {
		uc.logger.Error("Failed to clear cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to clear cart")
	}
	return cart, nil
}

func (uc *cartUseCase) GetWishlist(ctx context.Context, userID string) (*entity.Wishlist, error) {
	return uc.cartRepo.GetWishlist(ctx, userID)
}

// ToggleWishlist adds the product when absent and removes it when present;
// the second return value reports whether the product is now on the list.
func (uc *cartUseCase) ToggleWishlist(ctx context.Context, userID, productID string) (*entity.Wishlist, bool, error) {
	wishlist, err := uc.cartRepo.GetWishlist(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if wishlist.Contains(productID) {
		items := wishlist.Items[:0]
		for _, item := range wishlist.Items {
			if item.ProductID != productID {
				items = append(items, item)
			}
		}
		wishlist.Items = items

		if err := uc.cartRepo.SaveWishlist(ctx, wishlist); err != nil {
			return nil, false, fmt.Errorf("failed to update wishlist")
		}
		return wishlist, false, nil
	}

	product, err := uc.productLookup.GetProduct(productID)
	if err != nil {
		return nil, false, fmt.Errorf("product not found")
	}

	wishlist.Items = append(wishlist.Items, entity.WishlistItem{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: effectivePrice(product),
		ImageURL:  product.ImageURL,
		AddedAt:   time.Now().UTC(),
	})

	if err := uc.cartRepo.SaveWishlist(ctx, wishlist); err != nil {
		uc.logger.Error("Failed to save wishlist for user %s: %v", userID, err)
		return nil, false, fmt.Errorf("failed to update wishlist")
	}
	return wishlist, true, nil
}

func (uc *cartUseCase) RemoveFromWishlist(ctx context.Context, userID, productID string) (*entity.Wishlist, error) {
	wishlist, err := uc.cartRepo.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := wishlist.Items[:0]
	for _, item := range wishlist.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	wishlist.Items = items

	if err := uc.cartRepo.SaveWishlist(ctx, wishlist); err != nil {
		uc.logger.Error("Failed to save wishlist for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update wishlist")
	}
	return wishlist, nil
}

func effectivePrice(product *models.Product) float64 {
	if product.Discount <= 0 {
		return product.Price
	}
	return product.Price * (1 - product.Discount/100)
}
