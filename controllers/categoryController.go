package controllers

import (
	"net/http"

	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	responder
	Svc *services.CatalogService
}

func NewCategoryController(svc *services.CatalogService, log *logger.Logger) *CategoryController {
	return &CategoryController{responder: responder{log: log}, Svc: svc}
}

func (c *CategoryController) GetCategories(ctx *gin.Context) {
	keys, err := repository.ParseOrdering(ctx.Query("ordering"), repository.CategorySortFields)
	if err != nil {
		c.fail(ctx, "list_categories", err)
		return
	}
	q := repository.NewCategoryQuery().OrderedBy(keys...)
	if search := ctx.Query("search"); search != "" {
		q = q.WithSearch(search)
	}

	categories, err := c.Svc.ListCategories(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), q)
	if err != nil {
		c.fail(ctx, "list_categories", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, categories)
}

func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var in models.Category
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	category, err := c.Svc.CreateCategory(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), in)
	if err != nil {
		c.fail(ctx, "create_category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, category)
}

func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Svc.DeleteCategory(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id); err != nil {
		c.fail(ctx, "delete_category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted"})
}
