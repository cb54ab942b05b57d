package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func firstServiceID(t *testing.T) string {
	t.Helper()
	resp := makeRequest("GET", "/services", nil, "")
	require.True(t, resp.Success, resp.Message)

	var services []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resp.RawData), &services))
	if len(services) == 0 {
		t.Skip("no services in catalog")
	}
	return services[0]["id"].(string)
}

func TestBookingFlow(t *testing.T) {
	serviceID := firstServiceID(t)

	slotsResp := makeRequest("GET", "/bookings/slots?date="+tomorrow(), nil, "")
	require.True(t, slotsResp.Success, slotsResp.Message)

	slots, ok := slotsResp.Data["available_slots"].([]interface{})
	require.True(t, ok)
	if len(slots) == 0 {
		t.Skip("no available slots")
	}

	createResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"service_ids":  []string{serviceID},
		"booking_date": tomorrow(),
		"booking_time": slots[0].(string),
	}, authToken)
	require.True(t, createResp.Success, createResp.Message)
	assert.Equal(t, http.StatusCreated, createResp.StatusCode)
	assert.Equal(t, "pending", createResp.Data["status"])

	bookingID := createResp.getString("id")
	require.NotEmpty(t, bookingID)

	getResp := makeRequest("GET", "/bookings/"+bookingID, nil, authToken)
	require.True(t, getResp.Success, getResp.Message)
	assert.Equal(t, slots[0].(string), getResp.Data["booking_time"])

	cancelResp := makeRequest("POST", fmt.Sprintf("/bookings/%s/cancel", bookingID), map[string]interface{}{
		"cancellation_reason": "API test cleanup",
	}, authToken)
	require.True(t, cancelResp.Success, cancelResp.Message)
	assert.Equal(t, "cancelled", cancelResp.Data["status"])
}

func TestBookingRequiresAuth(t *testing.T) {
	resp := makeRequest("POST", "/bookings", map[string]interface{}{
		"service_ids":  []string{"00000000-0000-0000-0000-000000000000"},
		"booking_date": tomorrow(),
		"booking_time": "10:00",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBookingRejectsPastDate(t *testing.T) {
	serviceID := firstServiceID(t)

	resp := makeRequest("POST", "/bookings", map[string]interface{}{
		"service_ids":  []string{serviceID},
		"booking_date": "2020-01-01",
		"booking_time": "10:00",
	}, authToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProfileReflectsRegistration(t *testing.T) {
	resp := makeRequest("GET", "/profile", nil, authToken)
	require.True(t, resp.Success, resp.Message)

	assert.Equal(t, userEmail, resp.Data["email"])
	assert.Equal(t, "bronze", resp.Data["membership_tier"])
}

func TestAdminEndpointsForbiddenForCustomers(t *testing.T) {
	resp := makeRequest("GET", "/admin/dashboard", nil, authToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
