package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapter/repository"
	"storefront/internal/domain/entity"
	"storefront/internal/infrastructure/ratelimit"
	"storefront/internal/infrastructure/token"
)

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestAuthenticate(t *testing.T) {
	issuer := token.NewJWTIssuer("secret", 3600)
	m := NewAuthMiddleware(issuer)
	e := echo.New()

	signed, err := issuer.Issue(7, entity.RoleCustomer)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + signed, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + signed, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := m.Authenticate(ok)(c)
			if tc.status == http.StatusOK {
				require.NoError(t, err)
				uid, found := UserID(c)
				assert.True(t, found)
				assert.Equal(t, int64(7), uid)
				assert.Equal(t, entity.RoleCustomer, c.Get(ContextRole))
				return
			}
			assert.Equal(t, tc.status, httpStatus(t, err))
		})
	}
}

func TestSameUser(t *testing.T) {
	m := NewAuthMiddleware(token.NewJWTIssuer("secret", 3600))
	e := echo.New()

	newContext := func(pathID string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("userId")
		c.SetParamValues(pathID)
		c.Set(ContextUserID, int64(7))
		return c
	}

	assert.NoError(t, m.SameUser("userId")(ok)(newContext("7")))
	assert.Equal(t, http.StatusForbidden, httpStatus(t, m.SameUser("userId")(ok)(newContext("8"))))
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, m.SameUser("userId")(ok)(newContext("x"))))
}

func TestAdminOnly(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	ctx := context.Background()
	admin := &entity.User{Name: "Admin", Email: "admin@example.com", Role: entity.RoleAdmin}
	customer := &entity.User{Name: "Ann", Email: "ann@example.com", Role: entity.RoleCustomer}
	require.NoError(t, users.Create(ctx, admin))
	require.NoError(t, users.Create(ctx, customer))

	m := NewAdminMiddleware(users)
	e := echo.New()

	run := func(uid interface{}) error {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if uid != nil {
			c.Set(ContextUserID, uid)
		}
		return m.AdminOnly(ok)(c)
	}

	assert.NoError(t, run(admin.ID))
	assert.Equal(t, http.StatusForbidden, httpStatus(t, run(customer.ID)))
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, run(nil)))
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.GET("/", ok, RateLimit(ratelimit.NewRateLimiter(2, time.Minute)))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
