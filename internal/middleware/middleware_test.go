package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nateesoft/management-hrm-system/internal/middleware"
	"github.com/nateesoft/management-hrm-system/internal/rbac"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":     "user-1",
		"company_id":  "company-1",
		"employee_id": "employee-1",
		"role":        "HR",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
			cred, ok := contextutil.GetCredential(c.Request.Context())
			assert.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"company_id": cred.CompanyID, "actor": cred.ActorID(), "gin_company": c.GetString("company_id")})
		})
		return r
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + signToken(t, validClaims()), wantStatus: http.StatusOK, wantBody: `"gin_company":"company-1"`},
		{name: "missing token", header: "", wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "wrong secret", header: "Bearer " + func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("other"))
			return tok
		}(), wantStatus: http.StatusUnauthorized, wantBody: "INVALID_TOKEN"},
		{name: "expired token", header: "Bearer " + signToken(t, jwt.MapClaims{
			"user_id": "user-1", "company_id": "company-1", "employee_id": "employee-1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		}), wantStatus: http.StatusUnauthorized, wantBody: "TOKEN_EXPIRED"},
		{name: "missing company", header: "Bearer " + signToken(t, jwt.MapClaims{
			"user_id": "user-1", "employee_id": "employee-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}), wantStatus: http.StatusUnauthorized, wantBody: "Company ID not found in token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			newRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     rbac.EnforceRequest
}

func (f *fakeRBAC) Enforce(ctx context.Context, req rbac.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func withCredential(cred contextutil.Credential) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithCredential(c.Request.Context(), cred))
		c.Next()
	}
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cred := contextutil.Credential{UserID: "u1", EmployeeID: "e1", CompanyID: "c1"}

	run := func(svc *fakeRBAC, mw ...gin.HandlerFunc) *httptest.ResponseRecorder {
		r := gin.New()
		chain := append(mw, middleware.RBACAuthorize(svc, "payroll", "approve"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		r.POST("/x", chain...)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		w := run(svc, withCredential(cred))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, rbac.EnforceRequest{EmployeeID: "e1", CompanyID: "c1", Resource: "payroll", Action: "approve"}, svc.got)
	})

	t.Run("denied", func(t *testing.T) {
		w := run(&fakeRBAC{allowed: false}, withCredential(cred))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "payroll:approve")
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := run(&fakeRBAC{err: errors.New("policy load failed")}, withCredential(cred))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("no credential", func(t *testing.T) {
		w := run(&fakeRBAC{allowed: true})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cacheKey := "idemp:/payrolls/generate:user-1:key-1"

	newRouter := func(rdb redis.Cmdable, calls *int) *gin.Engine {
		r := gin.New()
		r.POST("/payrolls/generate",
			func(c *gin.Context) { c.Set("user_id", "user-1"); c.Next() },
			middleware.Idempotency(rdb),
			func(c *gin.Context) {
				*calls++
				c.JSON(http.StatusCreated, gin.H{"ok": true})
			},
		)
		return r
	}
	post := func(r *gin.Engine, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payrolls/generate", nil)
		if key != "" {
			req.Header.Set(middleware.IdempotencyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request is stored", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"status":201,"body":{"ok":true}}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		w := post(newRouter(rdb, &calls), "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)

		w := post(newRouter(rdb, &calls), "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 0, calls)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("in flight key conflicts", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := post(newRouter(rdb, &calls), "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("no header passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		w := post(newRouter(rdb, &calls), "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set("user_id", c.GetHeader("X-User")); c.Next() },
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	get := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("a"))
	assert.Equal(t, http.StatusTooManyRequests, get("a"))
	assert.Equal(t, http.StatusOK, get("b"))
	assert.Equal(t, http.StatusOK, get(""))
	assert.Equal(t, http.StatusOK, get(""))
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-42", w.Body.String())
	assert.Equal(t, "rid-42", w.Header().Get(middleware.RequestIDHeader))
}
