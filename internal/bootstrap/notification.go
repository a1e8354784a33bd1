package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/shopsphere/fulfillment/configs"
	httpadapter "github.com/shopsphere/fulfillment/internal/adapter/http"
	"github.com/shopsphere/fulfillment/internal/adapter/kafka"
	"github.com/shopsphere/fulfillment/internal/adapter/mail"
	"github.com/shopsphere/fulfillment/internal/adapter/pdf"
	"github.com/shopsphere/fulfillment/internal/adapter/repo"
	"github.com/shopsphere/fulfillment/internal/adapter/userdir"
	"github.com/shopsphere/fulfillment/internal/contracts"
	"github.com/shopsphere/fulfillment/internal/logging"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type NotificationApp struct {
	Router   *gin.Engine
	Consumer *kafka.Consumer
}

// InitNotificationService wires the notification service: consumers on the
// three notification topics, the user-directory client, SMTP, the PDF
// renderer, the invoice archive and the reporting surface.
func InitNotificationService(cfg configs.Config) (*NotificationApp, func(), error) {
	db, err := openMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	group, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-notification")
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	invoiceRepo := repo.NewMySQLInvoiceRepo(db)
	users := userdir.NewClient(cfg.UserDirectory.BaseURL, cfg.UserDirectory.Timeout)
	sender := mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	renderer := pdf.NewRenderer()

	notifier := usecase.NewNotifier(users, sender, renderer, invoiceRepo, logging.New("notifier"))
	reports := usecase.NewReports(invoiceRepo, renderer)

	consumer := kafka.NewConsumer(group, logging.New("consumer"))
	consumer.Register(contracts.TopicInvoiceCreated,
		kafka.JSONHandler[contracts.InvoiceCreated]{HandleFunc: notifier.HandleInvoiceCreated})
	consumer.Register(contracts.TopicRefundApproved,
		kafka.JSONHandler[contracts.RefundApproved]{HandleFunc: notifier.HandleRefundApproved})
	consumer.Register(contracts.TopicWishlistPriceDrop,
		kafka.JSONHandler[contracts.WishlistPriceDrop]{HandleFunc: notifier.HandlePriceDrop})

	router := httpadapter.NewReportRouter(httpadapter.NewReportHandler(reports))

	cleanup := func() {
		_ = group.Close()
		_ = db.Close()
	}

	return &NotificationApp{Router: router, Consumer: consumer}, cleanup, nil
}
