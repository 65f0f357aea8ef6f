package core

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, auth *AuthService, users *UserService, tokens *TokenIssuer, metrics *RequestMetrics) *gin.Engine {
	startedAt := time.Now()
	r := gin.New()

	r.Use(Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware(cfg))
	if metrics.Enabled() {
		r.Use(func(c *gin.Context) {
			c.Next()
			metrics.Record(c.Request.Context(), c.Writer.Status())
		})
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, CollectSystemStatus(c.Request.Context(), metrics, startedAt))
	})

	r.POST("/auth/login", func(c *gin.Context) {
		var req LoginInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, NewValidationError("invalid json"))
			return
		}
		if violations := ValidateLogin(req.Email, req.Password); len(violations) > 0 {
			respondError(c, NewValidationError(strings.Join(violations, "; ")))
			return
		}

		token, err := auth.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"access_token": token})
	})

	userRoutes := r.Group("/users")
	userRoutes.Use(BearerAuth(tokens))
	{
		userRoutes.POST("", func(c *gin.Context) {
			var req CreateUserInput
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, NewValidationError("invalid json"))
				return
			}
			if violations := ValidateCreateUser(req.Name, req.Email, req.Password); len(violations) > 0 {
				respondError(c, NewValidationError(strings.Join(violations, "; ")))
				return
			}

			user, err := users.Create(c.Request.Context(), req)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusCreated, user)
		})

		userRoutes.GET("", func(c *gin.Context) {
			list, err := users.FindAll(c.Request.Context())
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, list)
		})

		userRoutes.GET("/:id", func(c *gin.Context) {
			user, err := users.FindOne(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, user)
		})

		userRoutes.PUT("/:id", func(c *gin.Context) {
			var req UpdateUserInput
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, NewValidationError("invalid json"))
				return
			}
			if violations := ValidateUpdateUser(req.Name, req.Email, req.Password); len(violations) > 0 {
				respondError(c, NewValidationError(strings.Join(violations, "; ")))
				return
			}

			if err := users.Update(c.Request.Context(), c.Param("id"), req); err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "User updated"})
		})

		userRoutes.DELETE("/:id", func(c *gin.Context) {
			if err := users.Delete(c.Request.Context(), c.Param("id")); err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
		})
	}

	return r
}
