package handler

import (
	"net/http"

	"github.com/catapp/backend/internal/metrics"
	"github.com/catapp/backend/internal/model"
	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth   *service.AuthService
	Homes  *service.HomeService
	Humans *service.HumanService
	Breeds *service.BreedService
	Cats   *service.CatService
}

// RegisterRoutes wires every endpoint. Resource routes are listed one by one
// so the full surface is visible here.
func RegisterRoutes(r gin.IRouter, svcs Services) {
	r.GET("/ping", Ping)
	r.GET("/", Root)
	r.GET("/openapi.json", OpenAPIDoc)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authHandler := NewAuthHandler(svcs.Auth)
	requireAuth := AuthMiddleware(svcs.Auth)

	r.POST("/api-token-auth/", authHandler.ObtainToken)

	auth := r.Group(model.APIPrefix + "/auth")
	auth.GET("/config", authHandler.Config)
	auth.POST("/token", authHandler.ObtainToken)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", requireAuth, authHandler.Me)
	auth.DELETE("/token", requireAuth, authHandler.RevokeToken)

	api := r.Group(model.APIPrefix, requireAuth)

	homes := NewHomeHandler(svcs.Homes)
	api.GET("/home", homes.List)
	api.POST("/home", homes.Create)
	api.GET("/home/:id", homes.Retrieve)
	api.PUT("/home/:id", homes.Update)
	api.PATCH("/home/:id", homes.PartialUpdate)
	api.DELETE("/home/:id", homes.Destroy)

	humans := NewHumanHandler(svcs.Humans)
	api.GET("/human", humans.List)
	api.POST("/human", humans.Create)
	api.GET("/human/:id", humans.Retrieve)
	api.PUT("/human/:id", humans.Update)
	api.PATCH("/human/:id", humans.PartialUpdate)
	api.DELETE("/human/:id", humans.Destroy)

	breeds := NewBreedHandler(svcs.Breeds)
	api.GET("/breed", breeds.List)
	api.POST("/breed", breeds.Create)
	api.GET("/breed/:id", breeds.Retrieve)
	api.PUT("/breed/:id", breeds.Update)
	api.PATCH("/breed/:id", breeds.PartialUpdate)
	api.DELETE("/breed/:id", breeds.Destroy)

	cats := NewCatHandler(svcs.Cats)
	api.GET("/cat", cats.List)
	api.POST("/cat", cats.Create)
	api.GET("/cat/:id", cats.Retrieve)
	api.PUT("/cat/:id", cats.Update)
	api.PATCH("/cat/:id", cats.PartialUpdate)
	api.DELETE("/cat/:id", cats.Destroy)
}

// NotFound answers unmatched routes in the same error shape as handlers.
func NotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, "not_found", detailNotFound)
}
