package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matheusmosca/store-backend/internal/catalog"
	"github.com/matheusmosca/store-backend/internal/coupons"
	"github.com/matheusmosca/store-backend/internal/logging"
	"github.com/matheusmosca/store-backend/internal/transactions"
	"github.com/matheusmosca/store-backend/internal/uploads"
)

// Deps são as dependências de infraestrutura já inicializadas
type Deps struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	Tracer      trace.Tracer
	Meter       metric.Meter
	Location    *time.Location
	UploadDir   string
	ServiceName string
}

// NewRouter monta repositórios, use cases e handlers e registra as rotas
func NewRouter(deps Deps) (*gin.Engine, error) {
	// Repositories
	catalogRepository := catalog.NewRepository(deps.DB)
	couponRepository := coupons.NewRepository(deps.DB)
	transactionRepository := transactions.NewRepository(deps.DB)

	storage, err := uploads.NewDiskStorage(deps.UploadDir)
	if err != nil {
		return nil, err
	}

	// Use cases
	categoryUseCase := catalog.NewCategoryUseCase(catalogRepository, deps.Tracer, deps.Logger)
	productUseCase := catalog.NewProductUseCase(catalogRepository, deps.Tracer, deps.Logger)
	couponUseCase := coupons.NewCouponUseCase(couponRepository, deps.Location, deps.Tracer, deps.Logger)
	transactionUseCase, err := transactions.NewTransactionUseCase(
		transactionRepository,
		catalogRepository,
		couponUseCase,
		deps.Location,
		deps.Tracer,
		deps.Meter,
		deps.Logger,
	)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(deps.ServiceName))
	r.Use(logging.GinLogger(deps.Logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	catalog.NewCategoryHandler(categoryUseCase, deps.Logger).RegisterRoutes(r)
	catalog.NewProductHandler(productUseCase, deps.Logger).RegisterRoutes(r)
	uploads.NewImageHandler(storage, deps.Logger).RegisterRoutes(r)
	coupons.NewCouponHandler(couponUseCase, deps.Logger).RegisterRoutes(r)
	transactions.NewTransactionHandler(transactionUseCase, deps.Logger).RegisterRoutes(r)

	r.Static(uploads.PublicPath, storage.Dir())

	return r, nil
}
