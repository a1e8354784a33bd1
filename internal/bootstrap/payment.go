package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/shopsphere/fulfillment/configs"
	"github.com/shopsphere/fulfillment/internal/adapter/http"
	"github.com/shopsphere/fulfillment/internal/adapter/kafka"
	"github.com/shopsphere/fulfillment/internal/contracts"
	"github.com/shopsphere/fulfillment/internal/logging"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type PaymentApp struct {
	Router   *gin.Engine
	Consumer *kafka.Consumer
}

// InitPaymentService wires the stateless payment service: a consumer on
// payment-requested and a producer for invoice-created. No store.
func InitPaymentService(cfg configs.Config) (*PaymentApp, func(), error) {
	producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		return nil, nil, err
	}

	// Own group per service: payment and notification subscribe to
	// different topics and must not rebalance against each other.
	group, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-payment")
	if err != nil {
		_ = producer.Close()
		return nil, nil, err
	}

	bus := kafka.NewPublisher(producer)
	uc := usecase.NewProcessPayment(bus, cfg.Payment.DeclineProbability, logging.New("process-payment"))

	consumer := kafka.NewConsumer(group, logging.New("consumer"))
	consumer.Register(contracts.TopicPaymentRequested,
		kafka.JSONHandler[contracts.PaymentRequested]{HandleFunc: uc.Handle})

	cleanup := func() {
		_ = group.Close()
		_ = producer.Close()
	}

	return &PaymentApp{Router: http.NewHealthRouter(), Consumer: consumer}, cleanup, nil
}
