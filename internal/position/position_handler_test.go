package position_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/position"
	positionerrors "github.com/nateesoft/management-hrm-system/internal/position/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/apperror"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePositionService struct {
	CreateFn  func(ctx context.Context, companyID string, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetAllFn  func(ctx context.Context, companyID string, filter position.GetPositionsFilterRequest) ([]position.PositionResponse, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (position.PositionResponse, error)
	UpdateFn  func(ctx context.Context, companyID, id string, req position.UpdatePositionRequest) (position.PositionResponse, error)
	DeleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakePositionService) Create(ctx context.Context, companyID string, req position.CreatePositionRequest) (position.PositionResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakePositionService) GetAll(ctx context.Context, companyID string, filter position.GetPositionsFilterRequest) ([]position.PositionResponse, error) {
	return f.GetAllFn(ctx, companyID, filter)
}
func (f *fakePositionService) GetByID(ctx context.Context, companyID, id string) (position.PositionResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakePositionService) Update(ctx context.Context, companyID, id string, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakePositionService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func setupRouter(companyID string, svc position.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := contextutil.WithCredential(c.Request.Context(), contextutil.Credential{
			UserID:    uuid.NewString(),
			CompanyID: companyID,
			Role:      "HR",
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	h := position.NewHandler(svc)
	g := r.Group("/positions")
	g.GET("", h.GetAll)
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPositionHandler_Create(t *testing.T) {
	companyID := uuid.NewString()
	deptID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakePositionService{
			CreateFn: func(ctx context.Context, cid string, req position.CreatePositionRequest) (position.PositionResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, deptID, req.DepartmentID)
				if assert.NotNil(t, req.BaseSalary) {
					assert.Equal(t, "28000", req.BaseSalary.String())
				}
				return position.PositionResponse{ID: uuid.NewString(), Code: req.Code}, nil
			},
		}

		w := doRequest(setupRouter(companyID, svc), http.MethodPost, "/positions",
			`{"department_id":"`+deptID+`","code":"COOK","name":"Cook","base_salary":"28000"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "COOK")
	})

	t.Run("department required", func(t *testing.T) {
		w := doRequest(setupRouter(companyID, &fakePositionService{}), http.MethodPost, "/positions",
			`{"code":"COOK","name":"Cook"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidation)
	})

	t.Run("inactive department", func(t *testing.T) {
		svc := &fakePositionService{
			CreateFn: func(ctx context.Context, cid string, req position.CreatePositionRequest) (position.PositionResponse, error) {
				return position.PositionResponse{}, positionerrors.ErrDepartmentInactive
			},
		}

		w := doRequest(setupRouter(companyID, svc), http.MethodPost, "/positions",
			`{"department_id":"`+deptID+`","code":"COOK","name":"Cook"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidState)
	})
}

func TestPositionHandler_GetAll_DepartmentFilter(t *testing.T) {
	deptID := uuid.NewString()
	svc := &fakePositionService{
		GetAllFn: func(ctx context.Context, cid string, filter position.GetPositionsFilterRequest) ([]position.PositionResponse, error) {
			assert.Equal(t, deptID, filter.DepartmentID)
			return []position.PositionResponse{}, nil
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodGet, "/positions?department_id="+deptID, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPositionHandler_Delete_InUse(t *testing.T) {
	svc := &fakePositionService{
		DeleteFn: func(ctx context.Context, cid, id string) error {
			return positionerrors.ErrPositionInUse
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodDelete, "/positions/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusConflict, w.Code)
}
