package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the completed-service topic and drafts an invoice
// for each finished execution.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ServiceCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // invalid payloads retry forever otherwise
		return
	}

	log.Printf("[INFO] Drafting invoice for completed schedule %s", payload.ScheduleId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	schedule, err := uow.ScheduleRepository().FindOne(ctx, specification.ByID{ID: payload.ScheduleId})
	if err != nil {
		log.Printf("[ERROR] Failed to load schedule %s: %v", payload.ScheduleId, err)
		msg.Nack()
		return
	}
	if schedule == nil || schedule.Status != entity.ScheduleStatusCompleted {
		log.Printf("[WARN] Schedule %s missing or not completed, skipping invoice draft", payload.ScheduleId)
		msg.Ack()
		return
	}

	serviceName := "Serviço executado"
	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: schedule.ServiceRequestId})
	if err == nil && request != nil {
		if item, itemErr := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: request.ServiceCatalogId}); itemErr == nil && item != nil {
			serviceName = item.Name
		}
	}

	seq, err := uow.InvoiceRepository().Count(ctx)
	if err != nil {
		log.Printf("[ERROR] Failed to number invoice for schedule %s: %v", schedule.Id, err)
		msg.Nack()
		return
	}

	now := time.Now()
	// Drafted with zero amounts; billing fills prices in before issuing.
	invoice := &entity.Invoice{
		Id:          uuid.New(),
		CompanyId:   schedule.CompanyId,
		IssueDate:   now,
		DueDate:     now.AddDate(0, 1, 0),
		Status:      entity.InvoiceStatusOpen,
		TotalAmount: 0,
		Lines: []entity.InvoiceLine{
			{
				Description: fmt.Sprintf("%s em %s", serviceName, schedule.ScheduledDate.Format("02/01/2006")),
				Quantity:    1,
				UnitPrice:   0,
				Amount:      0,
			},
		},
		CreatedAt: now,
	}

	if err := createNumberedInvoice(ctx, uow.InvoiceRepository(), invoice, seq); err != nil {
		log.Printf("[ERROR] Failed to draft invoice for schedule %s: %v", schedule.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
