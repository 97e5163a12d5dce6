package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListAddresses(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/me/addresses", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "a1", body["default_id"])
	first := body["addresses"].([]any)[0].(map[string]any)
	require.Equal(t, true, first["is_default"])
}

func TestAddAddress(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/me/addresses", map[string]any{
		"receiver_name": "Trần Thị Lan",
		"phone":         "0912345678",
		"address":       "45 Nguyễn Huệ",
		"ward":          map[string]string{"id": "20101", "name": "Phường Bến Nghé"},
		"district":      map[string]string{"id": "1442", "name": "Quận 1"},
		"city":          map[string]string{"id": "202", "name": "Hồ Chí Minh"},
		"type":          "company",
		"is_default":    true,
	}, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "addr-new", body["id"])
	require.Equal(t, true, body["is_default"])
	require.Equal(t, "addr-new", ts.shop.book.DefaultID)
}

func TestAddAddress_Invalid(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/me/addresses", map[string]any{
		"receiver_name": "Lan",
		"phone":         "0912345678",
		"address":       "45 Nguyễn Huệ",
		"city":          map[string]string{"name": "Hồ Chí Minh"},
	}, true)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, ts.shop.book.Addresses, 1)
}

func TestResolveAddress(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/addresses/resolve", map[string]string{
		"city":     "TP.HCM",
		"district": "Quận 10",
		"ward":     "Phường 7",
	}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.EqualValues(t, 202, body["province_id"])
	require.EqualValues(t, 1452, body["district_id"])
	require.Equal(t, "21012", body["ward_code"])
	require.Equal(t, true, body["complete"])

	rec = ts.do(t, http.MethodPost, "/api/v1/addresses/resolve", map[string]string{
		"city":     "Hồ Chí Minh",
		"district": "Quận 99",
	}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.EqualValues(t, 202, body["province_id"])
	require.EqualValues(t, 0, body["district_id"])
	require.Equal(t, false, body["complete"])
}
