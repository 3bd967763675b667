package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/launa-backend-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/launa-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/launa-backend-go/internal/service/dashboard"
	payrollService "github.com/cmlabs-hris/launa-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "1042", DisplayName: "Anna"},
		employee.Employee{ID: "2077", DisplayName: "Björn"},
	)
	shifts := memory.NewShiftRepository()
	sales := memory.NewSaleRepository()
	hub := sse.NewHub(8)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", cache.NewMemory())
	calc := payrollService.NewCalculator(payroll.DefaultPayRates())
	netEstimator := payrollService.NewNetEstimator(payroll.DefaultTaxRates())

	auths := authService.NewAuthService(employees, jwtService)

	return NewRouter(
		RouterOptions{Env: "test", Version: "test", AllowedOrigins: []string{"*"}},
		jwtService,
		NewAuthHandler(auths),
		NewPayrollHandler(payrollService.NewPayrollService(shifts, sales, calc, netEstimator, hub)),
		NewDashboardHandler(dashboardService.NewDashboardService(shifts, sales, netEstimator)),
		NewEventHandler(auths, jwtService, hub),
	)
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	}
	return w, resp
}

func login(t *testing.T, h http.Handler, code string) string {
	t.Helper()
	w, resp := do(t, h, http.MethodPost, "/api/v1/auth/login/employee-code", "", map[string]string{"employee_code": code})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := data(resp)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func data(resp map[string]interface{}) map[string]interface{} {
	d, _ := resp["data"].(map[string]interface{})
	return d
}

func decField(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := m[key].(string)
	require.True(t, ok, "field %s missing or not a decimal string: %v", key, m[key])
	return decimal.RequireFromString(s)
}

// Test Login - Success
func TestAuthHandler_LoginWithEmployeeCode_Success(t *testing.T) {
	h := newTestRouter(t)

	w, resp := do(t, h, http.MethodPost, "/api/v1/auth/login/employee-code", "", map[string]string{"employee_code": " 1042 "})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp["success"].(bool))
	assert.Equal(t, "1042", data(resp)["employee_id"])
	assert.Equal(t, "Anna", data(resp)["display_name"])
	assert.NotEmpty(t, data(resp)["access_token"])
}

func TestAuthHandler_LoginWithEmployeeCode_Failures(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{name: "unknown code", body: map[string]string{"employee_code": "9999"}, wantStatus: http.StatusUnauthorized},
		{name: "empty code", body: map[string]string{"employee_code": ""}, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid json", body: "invalid json", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, h, http.MethodPost, "/api/v1/auth/login/employee-code", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp["success"].(bool))
		})
	}
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "1042")

	w, resp := do(t, h, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1042", data(resp)["employee_id"])
	assert.Equal(t, "Anna", data(resp)["display_name"])

	w, _ = do(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/sales", "/api/v1/shifts", "/api/v1/dashboard", "/api/v1/events/token"} {
		w, _ := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestPayrollHandler_SalesLifecycle(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "1042")

	w, resp := do(t, h, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{
		"amount":    "12500",
		"note":      "two coats",
		"timestamp": "2024-03-05T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := data(resp)["id"].(string)
	require.NotEmpty(t, id)

	w, resp = do(t, h, http.MethodGet, "/api/v1/sales?date=2024-03-05", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, resp = do(t, h, http.MethodPut, "/api/v1/sales/"+id, token, map[string]interface{}{"amount": "13000"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decField(t, data(resp), "amount").Equal(decimal.NewFromInt(13000)))
	assert.Equal(t, "two coats", data(resp)["note"])

	// Another employee cannot see or touch it
	other := login(t, h, "2077")
	w, _ = do(t, h, http.MethodDelete, "/api/v1/sales/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/api/v1/sales/"+id, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/api/v1/sales/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = do(t, h, http.MethodGet, "/api/v1/sales", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, resp["data"])
}

func TestPayrollHandler_SaleValidation(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "1042")

	w, resp := do(t, h, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{"amount": "-1"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "amount")
}

func TestPayrollHandler_ShiftsAndSummary(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "1042")

	// The shift's sales total defaults to the day's logged sales
	for _, amount := range []string{"100000", "50000"} {
		w, _ := do(t, h, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{
			"amount":    amount,
			"timestamp": "2024-02-26T12:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := do(t, h, http.MethodPost, "/api/v1/shifts", token, map[string]interface{}{
		"date":          "2024-02-26",
		"day_hours":     "8",
		"evening_hours": "0",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	shift := data(resp)
	assert.True(t, decField(t, shift, "sales_total").Equal(decimal.NewFromInt(150000)))
	assert.True(t, decField(t, shift, "wage").Equal(decimal.NewFromInt(22376)))
	assert.True(t, decField(t, shift, "bonus").Equal(decimal.NewFromInt(145548)))
	assert.True(t, decField(t, shift, "total").Equal(decimal.NewFromInt(167924)))
	assert.Equal(t, "2024-03 (Mars)", shift["pay_period"])

	w, resp = do(t, h, http.MethodPost, "/api/v1/shifts", token, map[string]interface{}{
		"date":          "2024-03-10",
		"day_hours":     "2",
		"evening_hours": "2",
		"sales_total":   "0",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	secondID := data(resp)["id"].(string)

	w, resp = do(t, h, http.MethodGet, "/api/v1/shifts?period=2024-03", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-10", list[0].(map[string]interface{})["date"])

	// Moving the second shift past the cutover puts it in April
	w, resp = do(t, h, http.MethodPut, "/api/v1/shifts/"+secondID, token, map[string]interface{}{"date": "2024-03-26"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-04 (Apríl)", data(resp)["pay_period"])

	w, resp = do(t, h, http.MethodPut, "/api/v1/shifts/"+secondID, token, map[string]interface{}{"day_hours": "23"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	path := "/api/v1/payroll/periods/" + url.PathEscape("2024-03 (Mars)") + "/summary"
	w, resp = do(t, h, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := data(resp)
	assert.Equal(t, "2024-03 (Mars)", summary["period"])
	assert.Equal(t, "2024-02-26", summary["period_from"])
	assert.Equal(t, "2024-03-25", summary["period_to"])
	assert.Equal(t, float64(1), summary["shift_count"])
	assert.True(t, decField(t, summary, "total_pay").Equal(decimal.NewFromInt(167924)))

	w, _ = do(t, h, http.MethodGet, "/api/v1/payroll/periods/march/summary", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/api/v1/shifts/"+secondID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayrollHandler_Calculations(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "1042")

	w, resp := do(t, h, http.MethodPost, "/api/v1/payroll/preview", token, map[string]interface{}{
		"date":          "2024-12-28",
		"day_hours":     "8",
		"evening_hours": "0",
		"sales":         "150000",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decField(t, data(resp), "threshold").Equal(decimal.NewFromInt(4452)))
	assert.True(t, decField(t, data(resp), "total").Equal(decimal.NewFromInt(167924)))
	assert.Equal(t, "2025-01 (Janúar)", data(resp)["pay_period"])

	w, resp = do(t, h, http.MethodPost, "/api/v1/payroll/net-salary", token, map[string]interface{}{"gross": "500000"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decField(t, data(resp), "net").Equal(decimal.RequireFromString("391566.75")))

	w, _ = do(t, h, http.MethodPost, "/api/v1/payroll/net-salary", token, map[string]interface{}{"gross": "1000", "allowance_usage": "1.5"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = do(t, h, http.MethodPost, "/api/v1/payroll/preview", token, map[string]interface{}{"day_hours": "20", "evening_hours": "5", "sales": "0"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "1042")

	w, _ := do(t, h, http.MethodPost, "/api/v1/shifts", token, map[string]interface{}{
		"date":          "2024-03-10",
		"day_hours":     "4",
		"evening_hours": "0",
		"sales_total":   "0",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := do(t, h, http.MethodGet, "/api/v1/dashboard?period=2024-03", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(resp)
	assert.Equal(t, "2024-03 (Mars)", d["period"])
	assert.Equal(t, []interface{}{"2024-03 (Mars)"}, d["periods"])
	assert.Len(t, d["chart"], 1)
	assert.True(t, decField(t, d["summary"].(map[string]interface{}), "total_pay").Equal(decimal.NewFromInt(11188)))

	w, _ = do(t, h, http.MethodGet, "/api/v1/dashboard?period=soon", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_Stream(t *testing.T) {
	h := newTestRouter(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	token := login(t, h, "1042")
	w, resp := do(t, h, http.MethodGet, "/api/v1/events/token", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	streamToken := data(resp)["token"].(string)

	// An access token is not accepted on the stream
	res, err := http.Get(srv.URL + "/api/v1/events/stream?token=" + url.QueryEscape(token))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, err = http.Get(srv.URL + "/api/v1/events/stream?token=" + url.QueryEscape(streamToken))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(res.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	waitFor := func(prefix string) string {
		t.Helper()
		timeout := time.After(3 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %q", prefix)
				if strings.HasPrefix(line, prefix) {
					return line
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %q", prefix)
			}
		}
	}

	assert.Equal(t, "event: connected", waitFor("event: connected"))

	w, _ = do(t, h, http.MethodPost, "/api/v1/sales", token, map[string]interface{}{"amount": "900"})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "event: "+sse.EventSaleRecorded, waitFor("event: "+sse.EventSaleRecorded))
	assert.Contains(t, waitFor("data: "), `"amount":"900"`)
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
