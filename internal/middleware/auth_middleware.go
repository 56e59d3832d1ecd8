package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nateesoft/management-hrm-system/internal/shared/apperror"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"
	"github.com/nateesoft/management-hrm-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware validates the HS256 bearer token (or access_token cookie)
// and attaches the caller to both the gin context and the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Abort(c, ErrTokenNotFound.HTTPStatus, ErrTokenNotFound.Code, ErrTokenNotFound.Message)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return key, nil
		})

		if err != nil || !token.Valid {
			errObj := ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = ErrTokenExpired
			}
			response.Abort(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, ErrInvalidToken.Code, "Invalid token claims")
			return
		}

		cred := contextutil.Credential{}
		cred.UserID, _ = claims["user_id"].(string)
		cred.CompanyID, _ = claims["company_id"].(string)
		cred.EmployeeID, _ = claims["employee_id"].(string)
		cred.Role, _ = claims["role"].(string)

		switch {
		case cred.UserID == "":
			response.Abort(c, http.StatusUnauthorized, ErrInvalidToken.Code, "User ID not found in token")
			return
		case cred.CompanyID == "":
			response.Abort(c, http.StatusUnauthorized, ErrInvalidToken.Code, "Company ID not found in token")
			return
		case cred.EmployeeID == "":
			response.Abort(c, http.StatusUnauthorized, ErrInvalidToken.Code, "Employee ID not found in token")
			return
		}

		c.Set("user_id", cred.UserID)
		c.Set("employee_id", cred.EmployeeID)
		c.Set("company_id", cred.CompanyID)
		c.Set("role", cred.Role)
		c.Request = c.Request.WithContext(contextutil.WithCredential(c.Request.Context(), cred))

		c.Next()
	}
}

// RoleMiddleware allows only the listed token roles through.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Abort(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message)
	}
}
