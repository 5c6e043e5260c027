package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/inventory-service/internal/apperr"
	"github.com/iliyamo/inventory-service/internal/auth"
	"github.com/iliyamo/inventory-service/internal/metrics"
	"github.com/iliyamo/inventory-service/internal/model"
	dbtest "github.com/iliyamo/inventory-service/internal/testutil"
	"github.com/iliyamo/inventory-service/internal/utils"
)

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusNoContent)
	}
}

func TestJWTAuth(t *testing.T) {
	v := auth.NewTokenValidator(dbtest.TestSecret, time.Hour)

	tests := []struct {
		name    string
		header  string
		wantErr error
		reason  string
	}{
		{"missing header", "", apperr.ErrUnauthorizedUser, metrics.ReasonMissingToken},
		{"wrong scheme", "Basic dXNlcjpwYXNz", apperr.ErrUnauthorizedUser, metrics.ReasonMissingToken},
		{"lowercase bearer", "bearer abc", apperr.ErrUnauthorizedUser, metrics.ReasonMissingToken},
		{"garbage token", "Bearer not-a-jwt", apperr.ErrInvalidToken, metrics.ReasonInvalidToken},
		{"empty token", "Bearer ", apperr.ErrInvalidToken, metrics.ReasonInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())
			c, _ := newContext(http.MethodGet, "")
			if tt.header != "" {
				c.Request().Header.Set(echo.HeaderAuthorization, tt.header)
			}
			called := false

			err := JWTAuth(v, m)(okHandler(&called))(c)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, called)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailuresTotal.WithLabelValues(tt.reason)))
		})
	}

	t.Run("valid token", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "")
		c.Request().Header.Set(echo.HeaderAuthorization, dbtest.BearerToken(t, 5, model.RoleEmployee))
		called := false

		require.NoError(t, JWTAuth(v, nil)(okHandler(&called))(c))
		assert.True(t, called)
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		assert.Equal(t, model.RoleEmployee, claims.RoleID)
		assert.Equal(t, "5", userID(c))
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		claims *utils.Claims
		policy auth.Policy
		allow  bool
	}{
		{"no claims", nil, auth.EmployeeOrMaster, false},
		{"employee on inventory", &utils.Claims{RoleID: model.RoleEmployee}, auth.EmployeeOrMaster, true},
		{"admin on inventory", &utils.Claims{RoleID: model.RoleAdmin}, auth.EmployeeOrMaster, false},
		{"employee on register", &utils.Claims{RoleID: model.RoleEmployee}, auth.MasterOrAdmin, false},
		{"master on register", &utils.Claims{RoleID: model.RoleMaster}, auth.MasterOrAdmin, true},
		{"exact master", &utils.Claims{RoleID: model.RoleMaster}, auth.Exact(model.RoleMaster), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "")
			if tt.claims != nil {
				c.Set(claimsKey, tt.claims)
			}
			called := false
			err := RequireRole(tt.policy, nil)(okHandler(&called))(c)
			if tt.allow {
				assert.NoError(t, err)
				assert.True(t, called)
				return
			}
			assert.ErrorIs(t, err, apperr.ErrUnauthorizedUser)
			assert.False(t, called)
		})
	}
}

func TestDBSession_ReleasedAfterHandler(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	boom := errors.New("handler failed")

	for _, handlerErr := range []error{nil, boom} {
		c, _ := newContext(http.MethodGet, "")
		err := DBSession(db)(func(c echo.Context) error {
			conn, ok := SessionFrom(c)
			require.True(t, ok)
			require.NoError(t, conn.PingContext(c.Request().Context()))
			assert.Equal(t, 1, db.Stats().InUse)
			return handlerErr
		})(c)

		assert.Equal(t, handlerErr, err)
		assert.Equal(t, 0, db.Stats().InUse)
	}
}

func TestDBSession_ClosedPool(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	require.NoError(t, db.Close())

	c, _ := newContext(http.MethodGet, "")
	called := false
	err := DBSession(db)(okHandler(&called))(c)
	assert.Error(t, err)
	assert.False(t, called)
}

func TestValidateCreateUserFields(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		want      CreateUserInput
	}{
		{"valid", `{"name":"alice","password":"pw1","role_id":2}`, "", CreateUserInput{"alice", "pw1", 2}},
		{"short name", `{"name":"al","password":"pw1","role_id":2}`, "name", CreateUserInput{}},
		{"missing name", `{"password":"pw1","role_id":2}`, "name", CreateUserInput{}},
		{"empty name and password", `{"name":"","password":"","role_id":2}`, "name", CreateUserInput{}},
		{"numeric name", `{"name":12345,"password":"pw1","role_id":2}`, "name", CreateUserInput{}},
		{"short password", `{"name":"alice","password":"pw","role_id":2}`, "password", CreateUserInput{}},
		{"missing password", `{"name":"alice","role_id":2}`, "password", CreateUserInput{}},
		{"password checked before role", `{"name":"alice","password":"","role_id":"x"}`, "password", CreateUserInput{}},
		{"missing role", `{"name":"alice","password":"pw1"}`, "role_id", CreateUserInput{}},
		{"string role", `{"name":"alice","password":"pw1","role_id":"2"}`, "role_id", CreateUserInput{}},
		{"float role", `{"name":"alice","password":"pw1","role_id":2.5}`, "role_id", CreateUserInput{}},
		{"null role", `{"name":"alice","password":"pw1","role_id":null}`, "role_id", CreateUserInput{}},
		{"not json", `name=alice`, "name", CreateUserInput{}},
		{"empty body", ``, "name", CreateUserInput{}},
		{"multibyte name", `{"name":"张三丰","password":"pw1","role_id":9}`, "", CreateUserInput{"张三丰", "pw1", 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, tt.body)
			called := false
			err := ValidateCreateUserFields()(okHandler(&called))(c)

			if tt.wantField != "" {
				var fe *apperr.InvalidUserFieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.wantField, fe.Field)
				assert.False(t, called)
				return
			}
			require.NoError(t, err)
			assert.True(t, called)
			got, ok := CreateUserInputFrom(c)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c, rec := newContext(http.MethodGet, "")
	c.SetPath("/inventory/:barcode")

	err := Metrics(m)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/inventory/:barcode", "418")))
}

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	c, _ := newContext(http.MethodGet, "")
	c.Response().Header().Set(echo.HeaderXRequestID, "req-1")
	require.NoError(t, RequestLogger(log)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "guest", entry.Data["user"])

	c, _ = newContext(http.MethodGet, "")
	require.NoError(t, RequestLogger(log)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})(c))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
