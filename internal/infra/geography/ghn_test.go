package geography

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newGHNServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path+"?"+r.URL.RawQuery)
		if r.Header.Get("Token") != "ghn-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"code":401,"message":"Token is not valid"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/master-data/province":
			_, _ = io.WriteString(w, `{"code":200,"data":[{"ProvinceID":201,"ProvinceName":"Hà Nội","NameExtension":["Ha Noi","TP Hà Nội"]}]}`)
		case "/master-data/district":
			_, _ = io.WriteString(w, `{"code":200,"data":[{"DistrictID":3440,"ProvinceID":201,"DistrictName":"Quận Nam Từ Liêm"}]}`)
		case "/master-data/ward":
			_, _ = io.WriteString(w, `{"code":200,"data":[{"WardCode":"13010","DistrictID":3440,"WardName":"Phường Xuân Phương"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":404,"message":"not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestGHNClient_Tree(t *testing.T) {
	srv, seen := newGHNServer(t)
	c := NewGHNClient(srv.URL+"/", "ghn-token", time.Second)
	ctx := context.Background()

	provinces, err := c.Provinces(ctx)
	require.NoError(t, err)
	require.Len(t, provinces, 1)
	require.Equal(t, 201, provinces[0].ID)
	require.True(t, provinces[0].Matches("ha noi"))

	districts, err := c.Districts(ctx, 201)
	require.NoError(t, err)
	require.Equal(t, 3440, districts[0].ID)

	wards, err := c.Wards(ctx, 3440)
	require.NoError(t, err)
	require.Equal(t, "13010", wards[0].Code)

	require.Equal(t, []string{
		"/master-data/province?",
		"/master-data/district?province_id=201",
		"/master-data/ward?district_id=3440",
	}, *seen)
}

func TestGHNClient_BadToken(t *testing.T) {
	srv, _ := newGHNServer(t)
	c := NewGHNClient(srv.URL, "wrong", time.Second)

	_, err := c.Provinces(context.Background())

	require.Error(t, err)
	require.Contains(t, err.Error(), "Token is not valid")
}

func TestGHNClient_GatewayErrorPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html><body>502 Bad Gateway</body></html>")
	}))
	t.Cleanup(srv.Close)
	c := NewGHNClient(srv.URL, "ghn-token", time.Second)

	_, err := c.Provinces(context.Background())

	require.Error(t, err)
	require.Contains(t, err.Error(), "status 502")
	require.NotContains(t, err.Error(), "decode")
}
