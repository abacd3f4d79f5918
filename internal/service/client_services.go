package service

import (
	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	CatalogService ClientCatalogService
	CartService    ClientCartService
	OrderService   ClientOrderService
	CartSyncJob    CartSyncJob
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	cartSvc := NewClientCartService(localStore.CartRepository, serverAdapter, logger)

	return &ClientServices{
		AuthService:    NewClientAuthService(localStore.SessionRepository, serverAdapter, cartSvc, logger),
		CatalogService: NewClientCatalogService(serverAdapter),
		CartService:    cartSvc,
		OrderService:   NewClientOrderService(serverAdapter),
		CartSyncJob:    NewCartSyncJob(cartSvc, logger),
	}
}
