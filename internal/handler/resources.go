package handler

import (
	"github.com/catapp/backend/internal/model"
	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	*ResourceHandler[model.Home]
}

func NewHomeHandler(svc resourceService[model.Home]) HomeHandler {
	return HomeHandler{NewResourceHandler[model.Home](svc)}
}

// List godoc
// @Summary List homes
// @Tags homes
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Home
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/home [get]
func (h HomeHandler) List(c *gin.Context) {
	h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create a home
// @Tags homes
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body object true "Home fields"
// @Success 201 {object} model.Home
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/home [post]
func (h HomeHandler) Create(c *gin.Context) {
	h.ResourceHandler.Create(c)
}

// Retrieve godoc
// @Summary Get a home
// @Tags homes
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 200 {object} model.Home
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/home/{id} [get]
func (h HomeHandler) Retrieve(c *gin.Context) {
	h.ResourceHandler.Retrieve(c)
}

// Update godoc
// @Summary Replace a home
// @Tags homes
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Home fields"
// @Success 200 {object} model.Home
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/home/{id} [put]
func (h HomeHandler) Update(c *gin.Context) {
	h.ResourceHandler.Update(c)
}

// PartialUpdate godoc
// @Summary Update some fields of a home
// @Tags homes
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Home fields"
// @Success 200 {object} model.Home
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/home/{id} [patch]
func (h HomeHandler) PartialUpdate(c *gin.Context) {
	h.ResourceHandler.PartialUpdate(c)
}

// Destroy godoc
// @Summary Delete a home
// @Tags homes
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/home/{id} [delete]
func (h HomeHandler) Destroy(c *gin.Context) {
	h.ResourceHandler.Destroy(c)
}

type HumanHandler struct {
	*ResourceHandler[model.Human]
}

func NewHumanHandler(svc resourceService[model.Human]) HumanHandler {
	return HumanHandler{NewResourceHandler[model.Human](svc)}
}

// List godoc
// @Summary List humans
// @Tags humans
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Human
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/human [get]
func (h HumanHandler) List(c *gin.Context) {
	h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create a human
// @Tags humans
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body object true "Human fields"
// @Success 201 {object} model.Human
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/human [post]
func (h HumanHandler) Create(c *gin.Context) {
	h.ResourceHandler.Create(c)
}

// Retrieve godoc
// @Summary Get a human
// @Tags humans
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 200 {object} model.Human
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/human/{id} [get]
func (h HumanHandler) Retrieve(c *gin.Context) {
	h.ResourceHandler.Retrieve(c)
}

// Update godoc
// @Summary Replace a human
// @Tags humans
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Human fields"
// @Success 200 {object} model.Human
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/human/{id} [put]
func (h HumanHandler) Update(c *gin.Context) {
	h.ResourceHandler.Update(c)
}

// PartialUpdate godoc
// @Summary Update some fields of a human
// @Tags humans
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Human fields"
// @Success 200 {object} model.Human
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/human/{id} [patch]
func (h HumanHandler) PartialUpdate(c *gin.Context) {
	h.ResourceHandler.PartialUpdate(c)
}

// Destroy godoc
// @Summary Delete a human
// @Tags humans
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/human/{id} [delete]
func (h HumanHandler) Destroy(c *gin.Context) {
	h.ResourceHandler.Destroy(c)
}

type BreedHandler struct {
	*ResourceHandler[model.Breed]
}

func NewBreedHandler(svc resourceService[model.Breed]) BreedHandler {
	return BreedHandler{NewResourceHandler[model.Breed](svc)}
}

// List godoc
// @Summary List breeds
// @Tags breeds
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Breed
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/breed [get]
func (h BreedHandler) List(c *gin.Context) {
	h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create a breed
// @Tags breeds
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body object true "Breed fields"
// @Success 201 {object} model.Breed
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/breed [post]
func (h BreedHandler) Create(c *gin.Context) {
	h.ResourceHandler.Create(c)
}

// Retrieve godoc
// @Summary Get a breed
// @Tags breeds
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 200 {object} model.Breed
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/breed/{id} [get]
func (h BreedHandler) Retrieve(c *gin.Context) {
	h.ResourceHandler.Retrieve(c)
}

// Update godoc
// @Summary Replace a breed
// @Tags breeds
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Breed fields"
// @Success 200 {object} model.Breed
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/breed/{id} [put]
func (h BreedHandler) Update(c *gin.Context) {
	h.ResourceHandler.Update(c)
}

// PartialUpdate godoc
// @Summary Update some fields of a breed
// @Tags breeds
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Breed fields"
// @Success 200 {object} model.Breed
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/breed/{id} [patch]
func (h BreedHandler) PartialUpdate(c *gin.Context) {
	h.ResourceHandler.PartialUpdate(c)
}

// Destroy godoc
// @Summary Delete a breed
// @Tags breeds
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/breed/{id} [delete]
func (h BreedHandler) Destroy(c *gin.Context) {
	h.ResourceHandler.Destroy(c)
}

type CatHandler struct {
	*ResourceHandler[model.Cat]
}

func NewCatHandler(svc resourceService[model.Cat]) CatHandler {
	return CatHandler{NewResourceHandler[model.Cat](svc)}
}

// List godoc
// @Summary List cats
// @Tags cats
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Cat
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/cat [get]
func (h CatHandler) List(c *gin.Context) {
	h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create a cat
// @Tags cats
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body object true "Cat fields"
// @Success 201 {object} model.Cat
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/cat [post]
func (h CatHandler) Create(c *gin.Context) {
	h.ResourceHandler.Create(c)
}

// Retrieve godoc
// @Summary Get a cat
// @Tags cats
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 200 {object} model.Cat
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/cat/{id} [get]
func (h CatHandler) Retrieve(c *gin.Context) {
	h.ResourceHandler.Retrieve(c)
}

// Update godoc
// @Summary Replace a cat
// @Tags cats
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Cat fields"
// @Success 200 {object} model.Cat
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/cat/{id} [put]
func (h CatHandler) Update(c *gin.Context) {
	h.ResourceHandler.Update(c)
}

// PartialUpdate godoc
// @Summary Update some fields of a cat
// @Tags cats
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Param request body object true "Cat fields"
// @Success 200 {object} model.Cat
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/cat/{id} [patch]
func (h CatHandler) PartialUpdate(c *gin.Context) {
	h.ResourceHandler.PartialUpdate(c)
}

// Destroy godoc
// @Summary Delete a cat
// @Tags cats
// @Security TokenAuth
// @Param id path int true "Row ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/cat/{id} [delete]
func (h CatHandler) Destroy(c *gin.Context) {
	h.ResourceHandler.Destroy(c)
}
