package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/payroll"
	payrollerrors "github.com/nateesoft/management-hrm-system/internal/payroll/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	previewFn         func(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.PreviewPayrollResponse, error)
	createFn          func(ctx context.Context, companyID, actorID string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error)
	generateFn        func(ctx context.Context, companyID, actorID string, req payroll.GeneratePayrollRequest) (payroll.GenerateResult, error)
	getAllFn          func(ctx context.Context, companyID string, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error)
	getByIDFn         func(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error)
	getByMonthFn      func(ctx context.Context, companyID string, year, month int) (payroll.MonthlyPayrollResponse, error)
	updateFn          func(ctx context.Context, companyID, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error)
	approveFn         func(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error)
	markPaidFn        func(ctx context.Context, companyID, actorID, id string, req payroll.MarkPaidRequest) (payroll.PayrollResponse, error)
	cancelFn          func(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error)
	deleteFn          func(ctx context.Context, companyID, id string) error
	generatePayslipFn func(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error)
}

func (f *fakePayrollService) Preview(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.PreviewPayrollResponse, error) {
	return f.previewFn(ctx, req)
}

func (f *fakePayrollService) Create(ctx context.Context, companyID, actorID string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) Generate(ctx context.Context, companyID, actorID string, req payroll.GeneratePayrollRequest) (payroll.GenerateResult, error) {
	return f.generateFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) GetAll(ctx context.Context, companyID string, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func (f *fakePayrollService) GetByID(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePayrollService) GetByMonth(ctx context.Context, companyID string, year, month int) (payroll.MonthlyPayrollResponse, error) {
	return f.getByMonthFn(ctx, companyID, year, month)
}

func (f *fakePayrollService) Update(ctx context.Context, companyID, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.updateFn(ctx, companyID, id, req)
}

func (f *fakePayrollService) Approve(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error) {
	return f.approveFn(ctx, companyID, actorID, id)
}

func (f *fakePayrollService) MarkAsPaid(ctx context.Context, companyID, actorID, id string, req payroll.MarkPaidRequest) (payroll.PayrollResponse, error) {
	return f.markPaidFn(ctx, companyID, actorID, id, req)
}

func (f *fakePayrollService) Cancel(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error) {
	return f.cancelFn(ctx, companyID, actorID, id)
}

func (f *fakePayrollService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func (f *fakePayrollService) GeneratePayslip(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error) {
	return f.generatePayslipFn(ctx, companyID, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	return c, w
}

func withCredential(c *gin.Context, companyID, employeeID string) {
	c.Request = c.Request.WithContext(contextutil.WithCredential(c.Request.Context(), contextutil.Credential{
		UserID:     uuid.NewString(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
	}))
}

func TestPayrollHandler_Preview(t *testing.T) {
	svc := &fakePayrollService{
		previewFn: func(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.PreviewPayrollResponse, error) {
			assert.Equal(t, "25000", req.BaseSalary.String())
			assert.Equal(t, "10", req.OvertimeHours.String())
			return payroll.PreviewPayrollResponse{
				Rounded: payroll.CalculationResponse{NetSalary: decimal.RequireFromString("26380.68")},
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payrolls/preview", `{"base_salary":25000,"overtime_hours":"10","social_security":750}`)

	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), `"26380.68"`)
}

func TestPayrollHandler_Create(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()
	employeeID := uuid.NewString()

	svc := &fakePayrollService{
		createFn: func(ctx context.Context, cid, aid string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, employeeID, req.EmployeeID)
			assert.Equal(t, 3, req.Month)
			return payroll.PayrollResponse{ID: uuid.NewString(), Status: payroll.StatusPending, CompanyID: cid, EmployeeID: req.EmployeeID, CreatedBy: aid}, nil
		},
	}

	h := payroll.NewHandler(svc)
	body := `{"employee_id":"` + employeeID + `","month":3,"year":2025,"base_salary":"25000"}`
	c, w := newTestContext(http.MethodPost, "/payrolls", body)
	withCredential(c, companyID, actorID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Create_ValidationError(t *testing.T) {
	h := payroll.NewHandler(&fakePayrollService{})
	c, w := newTestContext(http.MethodPost, "/payrolls", `{"month":13,"year":2025}`)
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestPayrollHandler_Create_Conflict(t *testing.T) {
	svc := &fakePayrollService{
		createFn: func(ctx context.Context, cid, aid string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollAlreadyExists
		},
	}

	h := payroll.NewHandler(svc)
	body := `{"employee_id":"` + uuid.NewString() + `","month":3,"year":2025,"base_salary":25000}`
	c, w := newTestContext(http.MethodPost, "/payrolls", body)
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPayrollHandler_Generate(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()

	svc := &fakePayrollService{
		generateFn: func(ctx context.Context, cid, aid string, req payroll.GeneratePayrollRequest) (payroll.GenerateResult, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, 3, req.Month)
			assert.Equal(t, 2025, req.Year)
			return payroll.GenerateResult{Created: 1, Skipped: 1, Errors: []string{}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payrolls/generate", `{"month":3,"year":2025}`)
	withCredential(c, companyID, actorID)

	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.JSONEq(t, `{"created":1,"skipped":1,"errors":[]}`, string(env.Data))
}

func TestPayrollHandler_Generate_InvalidMonth(t *testing.T) {
	h := payroll.NewHandler(&fakePayrollService{})
	c, w := newTestContext(http.MethodPost, "/payrolls/generate", `{"month":13,"year":2025}`)
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_GetAll_Paginates(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, companyID string, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
			assert.Equal(t, "2026-02", filter.Period)
			assert.Equal(t, "pending", filter.Status)
			out := make([]payroll.PayrollResponse, 15)
			for i := range out {
				out[i] = payroll.PayrollResponse{ID: uuid.NewString()}
			}
			return out, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payrolls?period=2026-02&status=pending&page=2&page_size=10", "")
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []payroll.PayrollResponse `json:"data"`
		Meta struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, 5)
	assert.Equal(t, 15, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
}

func TestPayrollHandler_GetByMonth(t *testing.T) {
	svc := &fakePayrollService{
		getByMonthFn: func(ctx context.Context, companyID string, year, month int) (payroll.MonthlyPayrollResponse, error) {
			assert.Equal(t, 2026, year)
			assert.Equal(t, 5, month)
			return payroll.MonthlyPayrollResponse{Year: year, Month: month, Records: []payroll.PayrollResponse{}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payrolls/summary/2026/5", "")
	c.Params = gin.Params{{Key: "year", Value: "2026"}, {Key: "month", Value: "5"}}
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.GetByMonth(c)

	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodGet, "/payrolls/summary/x/5", "")
	c.Params = gin.Params{{Key: "year", Value: "x"}, {Key: "month", Value: "5"}}
	h.GetByMonth(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_Approve_InvalidState(t *testing.T) {
	svc := &fakePayrollService{
		approveFn: func(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
		},
	}

	h := payroll.NewHandler(svc)
	id := uuid.NewString()
	c, w := newTestContext(http.MethodPost, "/payrolls/"+id+"/approve", "")
	c.Params = gin.Params{{Key: "id", Value: id}}
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.Approve(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestPayrollHandler_MarkAsPaid(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()
	id := uuid.NewString()

	svc := &fakePayrollService{
		markPaidFn: func(ctx context.Context, cid, aid, pid string, req payroll.MarkPaidRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, id, pid)
			assert.Equal(t, payroll.PaymentMethodCash, req.PaymentMethod)
			return payroll.PayrollResponse{ID: id, Status: payroll.StatusPaid}, nil
		},
	}

	h := payroll.NewHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payrolls/"+id+"/mark-paid", `{"payment_method":"CASH"}`)
	c.Params = gin.Params{{Key: "id", Value: id}}
	withCredential(c, companyID, actorID)
	h.MarkAsPaid(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodPost, "/payrolls/"+id+"/mark-paid", `{}`)
	c.Params = gin.Params{{Key: "id", Value: id}}
	withCredential(c, companyID, actorID)
	h.MarkAsPaid(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_Cancel(t *testing.T) {
	id := uuid.NewString()
	svc := &fakePayrollService{
		cancelFn: func(ctx context.Context, companyID, actorID, pid string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{ID: pid, Status: payroll.StatusCancelled}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodPost, "/payrolls/"+id+"/cancel", "")
	c.Params = gin.Params{{Key: "id", Value: id}}
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayrollHandler_Delete(t *testing.T) {
	svc := &fakePayrollService{
		deleteFn: func(ctx context.Context, cid, id string) error {
			return payrollerrors.ErrDeleteNotAllowed
		},
	}

	h := payroll.NewHandler(svc)
	id := uuid.NewString()
	c, w := newTestContext(http.MethodDelete, "/payrolls/"+id, "")
	c.Params = gin.Params{{Key: "id", Value: id}}
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	payrollID := uuid.NewString()
	url := "/files/payslips/payslip_" + payrollID + ".pdf"
	generated := false

	svc := &fakePayrollService{
		getByIDFn: func(ctx context.Context, cid, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{ID: id}, nil
		},
		generatePayslipFn: func(ctx context.Context, cid, id string) (payroll.PayrollResponse, error) {
			generated = true
			return payroll.PayrollResponse{ID: id, PayslipURL: &url}, nil
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payrolls/"+payrollID+"/payslip/download", "")
	c.Params = gin.Params{{Key: "id", Value: payrollID}}
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.DownloadPayslip(c)

	assert.True(t, generated)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, url, w.Header().Get("Location"))
}

func TestPayrollHandler_InternalError(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, companyID string, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
			return nil, errors.New("boom")
		},
	}

	h := payroll.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/payrolls", "")
	withCredential(c, uuid.NewString(), uuid.NewString())

	h.GetAll(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}
