package benefit

import (
	"github.com/nateesoft/management-hrm-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	read := middleware.RBACAuthorize(rbacService, "benefit", "read")
	create := middleware.RBACAuthorize(rbacService, "benefit", "create")
	update := middleware.RBACAuthorize(rbacService, "benefit", "update")
	remove := middleware.RBACAuthorize(rbacService, "benefit", "delete")
	assign := middleware.RBACAuthorize(rbacService, "benefit", "assign")

	benefits := r.Group("/benefits")
	benefits.Use(middleware.RateLimitByUser(rate.Limit(5), 10))
	{
		benefits.GET("", read, handler.GetAll)
		benefits.POST("", create, handler.Create)
		benefits.GET("/summary", read, handler.GetSummary)

		benefits.GET("/employee-benefits", read, handler.GetEmployeeBenefits)
		benefits.POST("/assign", assign, handler.Assign)
		benefits.PUT("/employee-benefits/:id", assign, handler.UpdateEmployeeBenefit)
		benefits.DELETE("/employee-benefits/:id", assign, handler.RemoveEmployeeBenefit)

		benefits.GET("/:id", read, handler.GetByID)
		benefits.PUT("/:id", update, handler.Update)
		benefits.DELETE("/:id", remove, handler.Delete)
	}
}
