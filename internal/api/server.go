package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/cantinazo/api/docs"
	v1 "github.com/cantinazo/api/internal/api/handler/v1"
	"github.com/cantinazo/api/internal/api/middleware"
	"github.com/cantinazo/api/internal/config"
	"github.com/cantinazo/api/internal/notification"
	"github.com/cantinazo/api/internal/repository"
	"github.com/cantinazo/api/internal/repository/dao"
	"github.com/cantinazo/api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	rosterHandler := s.initRosterHandler(db)
	catalogHandler := s.initCatalogHandler(db)
	orderHandler := s.initOrderHandler(db)
	rateHandler := s.initExchangeRateHandler(db)
	reportHandler := s.initReportHandler(db)
	s.MountHandlers(authHandler, rosterHandler, catalogHandler, orderHandler, rateHandler, reportHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	staffDAO := dao.NewStaffDAO(db)
	repo := repository.NewStaffRepository(staffDAO)
	svc := service.NewStaffService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initRosterHandler(db *gorm.DB) *v1.RosterHandler {
	rosterDAO := dao.NewRosterDAO(db)
	repo := repository.NewRosterRepository(rosterDAO)
	svc := service.NewRosterService(repo)
	handler := v1.NewRosterHandler(svc)

	return handler
}

func (s *Server) initCatalogHandler(db *gorm.DB) *v1.CatalogHandler {
	catalogDAO := dao.NewCatalogDAO(db)
	repo := repository.NewCatalogRepository(catalogDAO)
	svc := service.NewCatalogService(repo)
	handler := v1.NewCatalogHandler(svc)

	return handler
}

func (s *Server) initOrderHandler(db *gorm.DB) *v1.OrderHandler {
	orderDAO := dao.NewOrderDAO(db, s.Config.Canteen.AllowOversell)
	repo := repository.NewOrderRepository(orderDAO)
	rosterRepo := repository.NewRosterRepository(dao.NewRosterDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))
	rateRepo := repository.NewExchangeRateRepository(dao.NewExchangeRateDAO(db))

	notifier := notification.NewWhatsAppNotifier(s.Config.Twilio)
	sendTimeout := time.Duration(s.Config.Twilio.SendTimeoutSeconds) * time.Second

	svc := service.NewOrderService(repo, rosterRepo, catalogRepo, rateRepo, notifier, s.Config.Twilio.StaffRecipients, sendTimeout)
	handler := v1.NewOrderHandler(svc)

	return handler
}

func (s *Server) initExchangeRateHandler(db *gorm.DB) *v1.ExchangeRateHandler {
	rateDAO := dao.NewExchangeRateDAO(db)
	repo := repository.NewExchangeRateRepository(rateDAO)
	svc := service.NewExchangeRateService(repo)
	handler := v1.NewExchangeRateHandler(svc)

	return handler
}

func (s *Server) initReportHandler(db *gorm.DB) *v1.ReportHandler {
	reportDAO := dao.NewReportDAO(db)
	repo := repository.NewReportRepository(reportDAO)
	svc := service.NewReportService(repo)
	handler := v1.NewReportHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	rosterHandler *v1.RosterHandler,
	catalogHandler *v1.CatalogHandler,
	orderHandler *v1.OrderHandler,
	rateHandler *v1.ExchangeRateHandler,
	reportHandler *v1.ReportHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)

		public.POST("/representatives", rosterHandler.HandleRegisterRepresentative)
		public.GET("/representatives/:representativeID", rosterHandler.HandleGetRepresentative)
		public.GET("/representatives/:representativeID/students", rosterHandler.HandleListStudents)
		public.POST("/students", rosterHandler.HandleCreateStudent)
		public.DELETE("/students/:studentID", rosterHandler.HandleDetachStudent)

		public.GET("/events", catalogHandler.HandleListEvents)
		public.GET("/products", catalogHandler.HandleListProducts)

		public.GET("/orders/open", orderHandler.HandleGetOpenOrder)
		public.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		public.POST("/orders/:orderID/lines", orderHandler.HandleAddLine)
		public.DELETE("/orders/lines/:lineID", orderHandler.HandleRemoveLine)
		public.POST("/orders/:orderID/close", orderHandler.HandleCloseOrder)

		public.GET("/exchange-rates/current", rateHandler.HandleGetCurrentRate)
	}

	staff := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		staff.POST("/events", catalogHandler.HandleCreateEvent)
		staff.GET("/products/all", catalogHandler.HandleListAllProducts)
		staff.POST("/products", catalogHandler.HandleCreateProduct)
		staff.PUT("/products/:productID", catalogHandler.HandleUpdateProduct)

		staff.POST("/orders/:orderID/status", orderHandler.HandleUpdateStatus)
		staff.GET("/orders/closed", orderHandler.HandleListClosedOrders)
		staff.DELETE("/orders/:orderID", orderHandler.HandleDeleteOrder)

		staff.GET("/exchange-rates", rateHandler.HandleListRates)
		staff.POST("/exchange-rates", rateHandler.HandleAppendRate)

		staff.GET("/reports/orders.xlsx", reportHandler.HandleExportOrders)
		staff.GET("/reports/products.xlsx", reportHandler.HandleExportProducts)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Cantinazo API"
	docs.SwaggerInfo.Description = "School canteen ordering API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
