package payroll

import (
	"github.com/nateesoft/management-hrm-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the payroll endpoints. The group must already carry
// the auth middleware. Passing a redis client enables idempotent POSTs.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...redis.Cmdable,
) {
	var idempotent []gin.HandlerFunc
	if len(rdb) > 0 && rdb[0] != nil {
		idempotent = append(idempotent, middleware.Idempotency(rdb[0]))
	}
	with := func(action string, h gin.HandlerFunc, extra ...gin.HandlerFunc) []gin.HandlerFunc {
		chain := append([]gin.HandlerFunc{middleware.RBACAuthorize(rbacService, "payroll", action)}, extra...)
		return append(chain, h)
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.RateLimitByUser(rate.Limit(10), 20))
	{
		payrolls.POST("/preview", with("read", handler.Preview)...)
		payrolls.POST("/generate", with("generate", handler.Generate, idempotent...)...)
		payrolls.POST("", with("create", handler.Create, idempotent...)...)
		payrolls.GET("", with("read", handler.GetAll)...)
		payrolls.GET("/summary/:year/:month", with("read", handler.GetByMonth)...)
		payrolls.GET("/:id", with("read", handler.GetByID)...)
		payrolls.PUT("/:id", with("update", handler.Update)...)
		payrolls.POST("/:id/approve", with("approve", handler.Approve)...)
		payrolls.POST("/:id/mark-paid", with("pay", handler.MarkAsPaid)...)
		payrolls.POST("/:id/cancel", with("cancel", handler.Cancel)...)
		payrolls.DELETE("/:id", with("delete", handler.Delete)...)
		payrolls.GET("/:id/payslip/download", with("read", handler.DownloadPayslip)...)
	}
}
