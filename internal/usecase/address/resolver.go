package address

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	domaddress "example.com/storefront/internal/domain/address"
)

// Resolver maps display names to GHN codes. Each level is fetched only after
// the parent level resolved, so a miss stops the cascade.
type Resolver struct {
	geo domaddress.GeographySource
	log zerolog.Logger
}

func NewResolver(geo domaddress.GeographySource, log zerolog.Logger) *Resolver {
	return &Resolver{geo: geo, log: log}
}

// Resolve never fails on a name mismatch: it logs a warning and returns the
// levels resolved so far. Only transport errors are returned.
func (r *Resolver) Resolve(ctx context.Context, q domaddress.Query) (domaddress.Resolution, error) {
	var res domaddress.Resolution

	provinceID, err := r.resolveProvince(ctx, q.City)
	if err != nil || provinceID == 0 {
		return res, err
	}
	res.ProvinceID = provinceID

	districtID, err := r.resolveDistrict(ctx, provinceID, q.District)
	if err != nil || districtID == 0 {
		return res, err
	}
	res.DistrictID = districtID

	wardCode, err := r.resolveWard(ctx, districtID, q.Ward)
	if err != nil {
		return res, err
	}
	res.WardCode = wardCode
	return res, nil
}

func (r *Resolver) resolveProvince(ctx context.Context, name string) (int, error) {
	provinces, err := r.geo.Provinces(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch provinces: %w", err)
	}
	for _, p := range provinces {
		if p.Matches(name) {
			return p.ID, nil
		}
	}
	r.log.Warn().Str("city", name).Msg("province not found")
	return 0, nil
}

func (r *Resolver) resolveDistrict(ctx context.Context, provinceID int, name string) (int, error) {
	districts, err := r.geo.Districts(ctx, provinceID)
	if err != nil {
		return 0, fmt.Errorf("fetch districts of province %d: %w", provinceID, err)
	}
	for _, d := range districts {
		if d.Matches(name) {
			return d.ID, nil
		}
	}
	r.log.Warn().Int("province_id", provinceID).Str("district", name).Msg("district not found")
	return 0, nil
}

func (r *Resolver) resolveWard(ctx context.Context, districtID int, name string) (string, error) {
	wards, err := r.geo.Wards(ctx, districtID)
	if err != nil {
		return "", fmt.Errorf("fetch wards of district %d: %w", districtID, err)
	}
	for _, w := range wards {
		if w.Matches(name) {
			return w.Code, nil
		}
	}
	r.log.Warn().Int("district_id", districtID).Str("ward", name).Msg("ward not found")
	return "", nil
}
