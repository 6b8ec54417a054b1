package persistent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myshop/services/cart/internal/entity"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 90 * 24 * time.Hour

// CartRepository stores carts and wishlists as one JSON document per user.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*entity.Cart, error)
	SaveCart(ctx context.Context, cart *entity.Cart) error
	GetWishlist(ctx context.Context, userID string) (*entity.Wishlist, error)
	SaveWishlist(ctx context.Context, wishlist *entity.Wishlist) error
}

type cartRepository struct {
	redisClient *redis.Client
}

func NewCartRepository(redisClient *redis.Client) CartRepository {
	return &cartRepository{redisClient: redisClient}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func wishlistKey(userID string) string {
	return fmt.Sprintf("wishlist:%s", userID)
}

func (r *cartRepository) GetCart(ctx context.Context, userID string) (*entity.Cart, error) {
	data, err := r.redisClient.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return &entity.Cart{UserID: userID, Items: []entity.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart entity.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, cartKey(cart.UserID), data, cartTTL).Err()
}

func (r *cartRepository) GetWishlist(ctx context.Context, userID string) (*entity.Wishlist, error) {
	data, err := r.redisClient.Get(ctx, wishlistKey(userID)).Result()
	if err == redis.Nil {
		return &entity.Wishlist{UserID: userID, Items: []entity.WishlistItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var wishlist entity.Wishlist
	if err := json.Unmarshal([]byte(data), &wishlist); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *cartRepository) SaveWishlist(ctx context.Context, wishlist *entity.Wishlist) error {
	wishlist.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(wishlist)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, wishlistKey(wishlist.UserID), data, cartTTL).Err()
}
