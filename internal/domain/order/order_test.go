package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PaymentMethod
		wantErr bool
	}{
		{name: "Lower-case cod", input: "cod", want: PaymentCOD},
		{name: "Momo radio value", input: "momo", want: PaymentMomo},
		{name: "ZaloPay with spaces", input: " zalopay ", want: PaymentZaloPay},
		{name: "Canonical form", input: "ZALOPAY", want: PaymentZaloPay},
		{name: "Empty", input: "", wantErr: true},
		{name: "Unsupported VNPay", input: "vnpay", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPayment)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestShippingStatus_Actions(t *testing.T) {
	require.True(t, ShippingDelivered.CanConfirmReceived())
	require.False(t, ShippingInTransit.CanConfirmReceived())
	require.False(t, ShippingReceived.CanConfirmReceived())

	require.True(t, ShippingDelivered.CanComplain())
	require.True(t, ShippingInTransit.CanComplain())
	require.False(t, ShippingAwaitingConfirmation.CanComplain())
	require.False(t, ShippingComplaint.CanComplain())
}

func TestComplaintReason_IsValid(t *testing.T) {
	require.True(t, ReasonDamaged.IsValid())
	require.True(t, ComplaintReason("Khác").IsValid())
	require.False(t, ComplaintReason("Giao chậm").IsValid())
}

func TestOrder_AwaitingPayment(t *testing.T) {
	require.True(t, Order{PaymentStatus: PaymentStatusPending, PaymentURL: "https://pay"}.AwaitingPayment())
	require.False(t, Order{PaymentStatus: PaymentStatusPending}.AwaitingPayment())
	require.False(t, Order{PaymentStatus: PaymentStatusPaid, PaymentURL: "https://pay"}.AwaitingPayment())
}

func TestListFilter_Normalize(t *testing.T) {
	f := ListFilter{Email: "a@b.vn"}.Normalize()
	require.Equal(t, 1, f.Page)
	require.Equal(t, 10, f.Limit)

	f = ListFilter{Page: 3, Limit: 5}.Normalize()
	require.Equal(t, 3, f.Page)
	require.Equal(t, 5, f.Limit)
}

func intPtr(v int) *int { return &v }

func TestMomoResponse_Succeeded(t *testing.T) {
	require.True(t, (&MomoResponse{ResultCode: intPtr(0)}).Succeeded())
	require.False(t, (&MomoResponse{ResultCode: intPtr(1006)}).Succeeded())
	require.False(t, (&MomoResponse{}).Succeeded(), "missing resultCode is a failure")
	var nilResp *MomoResponse
	require.False(t, nilResp.Succeeded(), "missing body is a failure")
}

func TestZaloPayResponse_Succeeded(t *testing.T) {
	require.True(t, (&ZaloPayResponse{ReturnCode: intPtr(1)}).Succeeded())
	require.False(t, (&ZaloPayResponse{ReturnCode: intPtr(2)}).Succeeded())
	require.False(t, (&ZaloPayResponse{ReturnCode: intPtr(0)}).Succeeded())
	require.False(t, (&ZaloPayResponse{}).Succeeded())
}

func TestListFilter_NormalizeAllStatus(t *testing.T) {
	f := ListFilter{Status: StatusFilterAll}.Normalize()
	require.Equal(t, "", f.Status)

	f = ListFilter{Status: string(ShippingInTransit)}.Normalize()
	require.Equal(t, "Đang giao hàng", f.Status)
}
