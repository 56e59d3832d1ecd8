package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/employee"
	employeeerrors "github.com/nateesoft/management-hrm-system/internal/employee/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn       func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn       func(ctx context.Context, companyID string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error)
	GetOptionsFn   func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error)
	GenerateCodeFn func(ctx context.Context, companyID string) (string, error)
	GetByIDFn      func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn       func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn       func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error) {
	return f.GetAllFn(ctx, companyID, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GenerateCode(ctx context.Context, companyID string) (string, error) {
	return f.GenerateCodeFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func setupRouter(companyID string, svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	})

	h := employee.NewHandler(svc)
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/options", h.GetOptions)
	r.GET("/employees/generate-code", h.GenerateCode)
	r.GET("/employees/:id", h.GetByID)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
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

func TestEmployeeHandler_Create(t *testing.T) {
	companyID := uuid.NewString()
	departmentID := uuid.NewString()
	positionID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "John", req.FirstName)
				assert.Equal(t, "25000.50", req.BaseSalary.StringFixed(2))
				assert.Equal(t, positionID, req.PositionID)
				return employee.EmployeeResponse{ID: uuid.NewString(), FullName: "John Doe", EmployeeCode: "EMP-000001"}, nil
			},
		}

		body := `{"first_name":"John","last_name":"Doe","department_id":"`+departmentID+`","position_id":"`+positionID+`","hire_date":"2026-01-01","base_salary":"25000.50"}`
		w := doRequest(setupRouter(companyID, svc), http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-000001")
	})

	t.Run("validation error", func(t *testing.T) {
		w := doRequest(setupRouter(companyID, &fakeEmployeeService{}), http.MethodPost, "/employees", `{"first_name":"John"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("free text position is not accepted", func(t *testing.T) {
		body := `{"first_name":"John","last_name":"Doe","position":"Chef","hire_date":"2026-01-01"}`
		w := doRequest(setupRouter(companyID, &fakeEmployeeService{}), http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidation)
	})

	t.Run("invalid email", func(t *testing.T) {
		body := `{"first_name":"John","last_name":"Doe","department_id":"`+departmentID+`","position_id":"`+positionID+`","hire_date":"2026-01-01","email":"nope"}`
		w := doRequest(setupRouter(companyID, &fakeEmployeeService{}), http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		body := `{"first_name":"John","last_name":"Doe","department_id":"`+departmentID+`","position_id":"`+positionID+`","hire_date":"2026-01-01"}`
		w := doRequest(setupRouter(companyID, svc), http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInternalError)
	})

	t.Run("duplicate code returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeCodeAlreadyExists
			},
		}

		body := `{"employee_code":"EMP-000001","first_name":"John","last_name":"Doe","department_id":"`+departmentID+`","position_id":"`+positionID+`","hire_date":"2026-01-01"}`
		w := doRequest(setupRouter(companyID, svc), http.MethodPost, "/employees", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	companyID := uuid.NewString()

	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context, cid string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, "som", filter.Search)
			assert.Equal(t, "ACTIVE", filter.Status)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 5, filter.PageSize)
			return []employee.EmployeeResponse{{ID: uuid.NewString()}}, 6, nil
		},
	}

	w := doRequest(setupRouter(companyID, svc), http.MethodGet, "/employees?search=som&status=ACTIVE&page=2&page_size=5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Ok   bool `json:"ok"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			Page       int   `json:"page"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Equal(t, int64(6), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestEmployeeHandler_GetAll_PlacementFilters(t *testing.T) {
	departmentID := uuid.NewString()
	positionID := uuid.NewString()
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context, cid string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, departmentID, filter.DepartmentID)
			assert.Equal(t, positionID, filter.PositionID)
			return []employee.EmployeeResponse{}, 0, nil
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodGet,
		"/employees?department_id="+departmentID+"&position_id="+positionID, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_GetAll_InvalidStatus(t *testing.T) {
	w := doRequest(setupRouter(uuid.NewString(), &fakeEmployeeService{}), http.MethodGet, "/employees?status=retired", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	svc := &fakeEmployeeService{
		GetOptionsFn: func(ctx context.Context, cid string) ([]employee.EmployeeOptionResponse, error) {
			return []employee.EmployeeOptionResponse{{ID: uuid.NewString(), FullName: "Caca"}}, nil
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodGet, "/employees/options", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Caca")
}

func TestEmployeeHandler_GenerateCode(t *testing.T) {
	svc := &fakeEmployeeService{
		GenerateCodeFn: func(ctx context.Context, cid string) (string, error) {
			return "EMP-000124", nil
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodGet, "/employees/generate-code", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"employee_code":"EMP-000124"}}`, w.Body.String())
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, cid, eid string) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, eid)
				return employee.EmployeeResponse{ID: eid, FullName: "Ann Lee"}, nil
			},
		}

		w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodGet, "/employees/"+id, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ann Lee")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, cid, eid string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodGet, "/employees/"+id, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	id := uuid.NewString()

	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, cid, eid string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, eid)
			if assert.NotNil(t, req.Status) {
				assert.Equal(t, "ON_LEAVE", *req.Status)
			}
			assert.Nil(t, req.FirstName)
			return employee.EmployeeResponse{ID: eid, Status: *req.Status}, nil
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodPut, "/employees/"+id, `{"status":"ON_LEAVE"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(setupRouter(uuid.NewString(), svc), http.MethodPut, "/employees/"+id, `{"status":"RETIRED"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	id := uuid.NewString()

	svc := &fakeEmployeeService{
		DeleteFn: func(ctx context.Context, cid, eid string) error {
			assert.Equal(t, id, eid)
			return nil
		},
	}

	w := doRequest(setupRouter(uuid.NewString(), svc), http.MethodDelete, "/employees/"+id, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}
