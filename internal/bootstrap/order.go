package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/shopsphere/fulfillment/configs"
	"github.com/shopsphere/fulfillment/internal/adapter/cache"
	httpadapter "github.com/shopsphere/fulfillment/internal/adapter/http"
	"github.com/shopsphere/fulfillment/internal/adapter/kafka"
	"github.com/shopsphere/fulfillment/internal/adapter/repo"
	"github.com/shopsphere/fulfillment/internal/logging"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type OrderApp struct {
	Router *gin.Engine
}

// InitOrderService wires the order service: MySQL store, redis idempotency,
// kafka producer, HTTP surface.
func InitOrderService(cfg configs.Config) (*OrderApp, func(), error) {
	db, err := openMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	rdb, err := openRedis(cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		_ = db.Close()
		_ = rdb.Close()
		return nil, nil, err
	}

	orderRepo := repo.NewMySQLOrderRepo(db)
	refundRepo := repo.NewMySQLRefundRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	bus := kafka.NewPublisher(producer)

	createUC := usecase.NewCreateOrder(orderRepo, idem, bus, logging.New("create-order"))
	ordersUC := usecase.NewOrders(orderRepo)
	refundsUC := usecase.NewRefunds(refundRepo, orderRepo, bus, logging.New("refunds"))

	oh := httpadapter.NewOrderHandler(createUC, ordersUC)
	rh := httpadapter.NewRefundHandler(refundsUC)
	router := httpadapter.NewOrderRouter(oh, rh)

	cleanup := func() {
		_ = producer.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &OrderApp{Router: router}, cleanup, nil
}
