package rbac_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/rbac"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	got rbac.EnforceRequest
}

func (f *fakeService) LoadCompanyPolicy(ctx context.Context, companyID string) error {
	return nil
}

func (f *fakeService) Enforce(ctx context.Context, req rbac.EnforceRequest) (bool, error) {
	f.got = req
	return req.Resource == "employee" && req.Action == "read", nil
}

func TestHandler_CheckPermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{}
	h := rbac.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/rbac/check", strings.NewReader(`{"resource":"employee","action":"read"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req.WithContext(contextutil.WithCredential(req.Context(), contextutil.Credential{
		UserID: "u1", EmployeeID: "emp-1", CompanyID: "c1",
	}))

	h.CheckPermission(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-1", svc.got.EmployeeID)
	assert.Equal(t, "c1", svc.got.CompanyID)

	var env struct {
		Ok   bool                 `json:"ok"`
		Data rbac.EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.True(t, env.Data.Allowed)
}

func TestHandler_CheckPermission_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := rbac.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/rbac/check", strings.NewReader(`{"resource":"employee"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CheckPermission(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
