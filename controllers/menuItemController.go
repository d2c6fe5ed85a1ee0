package controllers

import (
	"net/http"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/gin-gonic/gin"
)

// maxImageSize bounds a single menu item picture.
const maxImageSize = 5 << 20

type MenuItemController struct {
	responder
	Svc *services.CatalogService
}

func NewMenuItemController(svc *services.CatalogService, log *logger.Logger) *MenuItemController {
	return &MenuItemController{responder: responder{log: log}, Svc: svc}
}

func (c *MenuItemController) GetMenuItems(ctx *gin.Context) {
	q, err := menuItemQueryFrom(ctx)
	if err != nil {
		c.fail(ctx, "list_menu_items", err)
		return
	}

	items, total, err := c.Svc.ListMenuItems(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), q)
	if err != nil {
		c.fail(ctx, "list_menu_items", err)
		return
	}

	sendList(ctx, items, total, q.Page())
}

func menuItemQueryFrom(ctx *gin.Context) (repository.MenuItemQuery, error) {
	q := repository.NewMenuItemQuery()

	if slug := ctx.Query("category"); slug != "" {
		q = q.WithCategory(slug)
	}
	if raw := ctx.Query("price"); raw != "" {
		price, err := models.MoneyFromString(raw)
		if err != nil {
			return q, apperr.Invalid("price", "enter a number")
		}
		q = q.WithPrice(price)
	}
	if search := ctx.Query("search"); search != "" {
		q = q.WithSearch(search)
	}

	keys, err := repository.ParseOrdering(ctx.Query("ordering"), repository.MenuItemSortFields)
	if err != nil {
		return q, err
	}
	page, err := pageFromQuery(ctx)
	if err != nil {
		return q, err
	}
	return q.OrderedBy(keys...).Paginate(page), nil
}

func (c *MenuItemController) GetMenuItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	item, err := c.Svc.GetMenuItem(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id)
	if err != nil {
		c.fail(ctx, "get_menu_item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, item)
}

func (c *MenuItemController) CreateMenuItem(ctx *gin.Context) {
	var in models.MenuItemInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.Svc.CreateMenuItem(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), in)
	if err != nil {
		c.fail(ctx, "create_menu_item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, item)
}

// UpdateMenuItem serves both PUT and PATCH; PATCH leaves absent fields as
// they are.
func (c *MenuItemController) UpdateMenuItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var in models.MenuItemInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}

	partial := ctx.Request.Method == http.MethodPatch
	item, err := c.Svc.UpdateMenuItem(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id, in, partial)
	if err != nil {
		c.fail(ctx, "update_menu_item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, item)
}

func (c *MenuItemController) DeleteMenuItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Svc.DeleteMenuItem(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id); err != nil {
		c.fail(ctx, "delete_menu_item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// UploadMenuItemImage stores the multipart "image" file and links it to the
// menu item.
func (c *MenuItemController) UploadMenuItemImage(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "image: no file uploaded")
		return
	}
	if file.Size > maxImageSize {
		sendErrorResponse(ctx, http.StatusBadRequest, "image: file is larger than 5MB")
		return
	}

	f, err := file.Open()
	if err != nil {
		c.fail(ctx, "upload_menu_item_image", err)
		return
	}
	defer f.Close()

	item, err := c.Svc.AttachImage(ctx.Request.Context(), middlewares.CurrentPrincipal(ctx), id,
		file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		c.fail(ctx, "upload_menu_item_image", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, item)
}
