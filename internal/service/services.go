package service

import (
	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
)

type Services struct {
	AuthService     AuthService
	UserService     UserService
	ProductService  ProductService
	CategoryService CategoryService
	CartService     CartService
	OrderService    OrderService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	validator := validators.NewStoreValidator()

	appInfoService, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	productService := NewProductValidationService(validator).
		Wrap(NewProductService(storages.ProductStorage, logger))

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		UserService:     NewUserService(storages.UserRepository, validator, cfg.App.BcryptCost, logger),
		ProductService:  productService,
		CategoryService: NewCategoryService(storages.CategoryRepository, validator, logger),
		CartService: NewCartService(
			storages.CartRepository,
			storages.ProductStorage,
			NewCartMergePlanner(),
			validator,
			logger,
		),
		OrderService: NewOrderService(
			storages.OrderRepository,
			storages.CartRepository,
			storages.UserRepository,
			validator,
			cfg.App,
			logger,
		),
		AppInfoService: appInfoService,
	}, nil
}
