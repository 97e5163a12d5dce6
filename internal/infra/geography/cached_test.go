package geography

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	domaddress "example.com/storefront/internal/domain/address"
)

type countingSource struct {
	calls map[string]int
	err   error
	wards []domaddress.Ward
}

func newCountingSource() *countingSource {
	return &countingSource{calls: make(map[string]int)}
}

func (s *countingSource) Provinces(ctx context.Context) ([]domaddress.Province, error) {
	s.calls["provinces"]++
	if s.err != nil {
		return nil, s.err
	}
	return []domaddress.Province{{ID: 202, Name: "Hồ Chí Minh", NameExtension: []string{"HCM"}}}, nil
}

func (s *countingSource) Districts(ctx context.Context, provinceID int) ([]domaddress.District, error) {
	s.calls["districts"]++
	return []domaddress.District{{ID: 1452, ProvinceID: provinceID, Name: "Quận 10"}}, nil
}

func (s *countingSource) Wards(ctx context.Context, districtID int) ([]domaddress.Ward, error) {
	s.calls["wards"]++
	return s.wards, nil
}

func setupCachedSource(t *testing.T) (*CachedSource, *countingSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	src := newCountingSource()
	return NewCachedSource(src, client, time.Hour, zerolog.Nop()), src, mr
}

func TestCachedSource_HitsUpstreamOnce(t *testing.T) {
	cs, src, mr := setupCachedSource(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		provinces, err := cs.Provinces(ctx)
		require.NoError(t, err)
		require.Equal(t, "Hồ Chí Minh", provinces[0].Name)
		require.Equal(t, []string{"HCM"}, provinces[0].NameExtension)
	}
	require.Equal(t, 1, src.calls["provinces"])
	require.True(t, mr.Exists("geo:provinces"))
	require.Greater(t, mr.TTL("geo:provinces"), time.Duration(0))

	_, err := cs.Districts(ctx, 202)
	require.NoError(t, err)
	_, err = cs.Districts(ctx, 202)
	require.NoError(t, err)
	require.Equal(t, 1, src.calls["districts"])
	require.True(t, mr.Exists("geo:districts:202"))
}

func TestCachedSource_EmptyListNotCached(t *testing.T) {
	cs, src, mr := setupCachedSource(t)
	ctx := context.Background()

	_, err := cs.Wards(ctx, 1452)
	require.NoError(t, err)
	_, err = cs.Wards(ctx, 1452)
	require.NoError(t, err)

	require.Equal(t, 2, src.calls["wards"])
	require.False(t, mr.Exists("geo:wards:1452"))
}

func TestCachedSource_CorruptEntryReloads(t *testing.T) {
	cs, src, mr := setupCachedSource(t)
	require.NoError(t, mr.Set("geo:provinces", "{not json"))

	provinces, err := cs.Provinces(context.Background())

	require.NoError(t, err)
	require.Len(t, provinces, 1)
	require.Equal(t, 1, src.calls["provinces"])
}

func TestCachedSource_RedisDownFallsThrough(t *testing.T) {
	cs, src, mr := setupCachedSource(t)
	mr.Close()

	provinces, err := cs.Provinces(context.Background())

	require.NoError(t, err)
	require.Len(t, provinces, 1)
	require.Equal(t, 1, src.calls["provinces"])
}

func TestCachedSource_UpstreamError(t *testing.T) {
	cs, src, _ := setupCachedSource(t)
	src.err = errors.New("ghn down")

	_, err := cs.Provinces(context.Background())

	require.EqualError(t, err, "ghn down")
}
