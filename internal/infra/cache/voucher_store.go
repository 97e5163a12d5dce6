package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	domvoucher "example.com/storefront/internal/domain/voucher"
)

// VoucherStore keeps the voucher applied to each user's checkout in redis.
type VoucherStore struct {
	client *redis.Client
}

func NewVoucherStore(client *redis.Client) *VoucherStore {
	return &VoucherStore{client: client}
}

type voucherEntry struct {
	Code           string          `json:"code"`
	VoucherID      string          `json:"voucher_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

func (s *VoucherStore) Get(ctx context.Context, userID string) (domvoucher.Voucher, error) {
	data, err := s.client.Get(ctx, voucherKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domvoucher.Voucher{}, domvoucher.ErrNoVoucherApplied
	}
	if err != nil {
		return domvoucher.Voucher{}, fmt.Errorf("redis get failed: %w", err)
	}

	var e voucherEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return domvoucher.Voucher{}, fmt.Errorf("unmarshal voucher failed: %w", err)
	}
	return domvoucher.Voucher{Code: e.Code, VoucherID: e.VoucherID, DiscountAmount: e.DiscountAmount}, nil
}

func (s *VoucherStore) Save(ctx context.Context, userID string, v domvoucher.Voucher, ttl time.Duration) error {
	data, err := json.Marshal(voucherEntry{Code: v.Code, VoucherID: v.VoucherID, DiscountAmount: v.DiscountAmount})
	if err != nil {
		return fmt.Errorf("marshal voucher failed: %w", err)
	}
	if err := s.client.Set(ctx, voucherKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *VoucherStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, voucherKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func voucherKey(userID string) string {
	return fmt.Sprintf("checkout:voucher:%s", userID)
}
