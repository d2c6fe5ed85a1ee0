package routes

import (
	"github.com/Kariqs/littlelemon-api/controllers"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/Kariqs/littlelemon-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries what the handlers need. Images may be nil, in which case
// image uploads answer 503. A nil Log disables request and error logging.
type Deps struct {
	DB     *gorm.DB
	Tokens *utils.TokenIssuer
	Images services.ImageStore
	Log    *logger.Logger
}

// RegisterRoutes wires repositories, services and controllers onto server.
// Everything under /api requires an authenticated caller.
func RegisterRoutes(server *gin.Engine, deps Deps) {
	controllers.UseJSONFieldNames()

	users := repository.NewUserRepository(deps.DB)
	catalog := repository.NewCatalogRepository(deps.DB)
	carts := repository.NewCartRepository(deps.DB)
	orders := repository.NewOrderRepository(deps.DB)

	authService := services.NewAuthService(users, deps.Tokens)
	catalogService := services.NewCatalogService(catalog, deps.Images)

	server.Use(
		middlewares.RequestLogger(deps.Log),
		middlewares.Authenticate(authService),
	)

	DefaultRoutes(server)
	AuthRoutes(server, controllers.NewAuthController(authService, deps.Log))

	api := server.Group("/api", middlewares.RequireAuthenticated())
	MenuRoutes(api,
		controllers.NewCategoryController(catalogService, deps.Log),
		controllers.NewMenuItemController(catalogService, deps.Log),
	)
	CartRoutes(api, controllers.NewCartController(services.NewCartService(carts, catalog), deps.Log))
	OrderRoutes(api, controllers.NewOrderController(services.NewOrderService(deps.DB, orders, carts, users), deps.Log))
	GroupRoutes(api, services.NewRoleService(users), deps.Log)
	UserRoutes(api, controllers.NewUserController(services.NewUserService(users), deps.Log))
}
