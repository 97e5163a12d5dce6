package geography

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	domaddress "example.com/storefront/internal/domain/address"
)

// GHNClient reads the GHN master-data tree (province, district, ward).
type GHNClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewGHNClient(baseURL, token string, timeout time.Duration) *GHNClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GHNClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

type provinceJSON struct {
	ProvinceID    int      `json:"ProvinceID"`
	ProvinceName  string   `json:"ProvinceName"`
	NameExtension []string `json:"NameExtension"`
}

type districtJSON struct {
	DistrictID    int      `json:"DistrictID"`
	ProvinceID    int      `json:"ProvinceID"`
	DistrictName  string   `json:"DistrictName"`
	NameExtension []string `json:"NameExtension"`
}

type wardJSON struct {
	WardCode      string   `json:"WardCode"`
	DistrictID    int      `json:"DistrictID"`
	WardName      string   `json:"WardName"`
	NameExtension []string `json:"NameExtension"`
}

func get[T any](ctx context.Context, c *GHNClient, path string, query url.Values) ([]T, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ghn %s: %w", path, err)
	}
	defer resp.Body.Close()

	var body envelope[T]
	if resp.StatusCode != http.StatusOK {
		// Lỗi từ gateway có thể là HTML; chỉ lấy message khi body là JSON.
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Message != "" {
			return nil, fmt.Errorf("ghn %s: status %d: %s", path, resp.StatusCode, body.Message)
		}
		return nil, fmt.Errorf("ghn %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ghn %s: decode: %w", path, err)
	}
	if body.Code != 0 && body.Code != http.StatusOK {
		return nil, fmt.Errorf("ghn %s: code %d: %s", path, body.Code, body.Message)
	}
	return body.Data, nil
}

func (c *GHNClient) Provinces(ctx context.Context) ([]domaddress.Province, error) {
	rows, err := get[provinceJSON](ctx, c, "/master-data/province", nil)
	if err != nil {
		return nil, err
	}
	out := make([]domaddress.Province, 0, len(rows))
	for _, r := range rows {
		out = append(out, domaddress.Province{ID: r.ProvinceID, Name: r.ProvinceName, NameExtension: r.NameExtension})
	}
	return out, nil
}

func (c *GHNClient) Districts(ctx context.Context, provinceID int) ([]domaddress.District, error) {
	q := url.Values{"province_id": {strconv.Itoa(provinceID)}}
	rows, err := get[districtJSON](ctx, c, "/master-data/district", q)
	if err != nil {
		return nil, err
	}
	out := make([]domaddress.District, 0, len(rows))
	for _, r := range rows {
		out = append(out, domaddress.District{ID: r.DistrictID, ProvinceID: r.ProvinceID, Name: r.DistrictName, NameExtension: r.NameExtension})
	}
	return out, nil
}

func (c *GHNClient) Wards(ctx context.Context, districtID int) ([]domaddress.Ward, error) {
	q := url.Values{"district_id": {strconv.Itoa(districtID)}}
	rows, err := get[wardJSON](ctx, c, "/master-data/ward", q)
	if err != nil {
		return nil, err
	}
	out := make([]domaddress.Ward, 0, len(rows))
	for _, r := range rows {
		out = append(out, domaddress.Ward{Code: r.WardCode, DistrictID: r.DistrictID, Name: r.WardName, NameExtension: r.NameExtension})
	}
	return out, nil
}
