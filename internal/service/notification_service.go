package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"facility-services-be/internal/model"
	"facility-services-be/internal/pkg/logger"
	"facility-services-be/internal/repository"
	"facility-services-be/pkg/events"
	pktNats "facility-services-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationRoute decides who hears about an event and what they read.
// Placeholders in Template are filled from the event payload.
type notificationRoute struct {
	Title      string
	Template   string
	TargetType string // SELF or ROLE
	TargetRole string
}

var notificationRoutes = map[string]notificationRoute{
	"REQUEST_CREATED":       {Title: "Nova solicitação", Template: "Nova solicitação de {service} com prioridade {priority}.", TargetType: "ROLE", TargetRole: "gestor"},
	"REQUEST_APPROVED":      {Title: "Solicitação aprovada", Template: "Sua solicitação foi aprovada.", TargetType: "SELF"},
	"REQUEST_REJECTED":      {Title: "Solicitação recusada", Template: "Sua solicitação foi recusada: {reason}", TargetType: "SELF"},
	"REQUEST_DELEGATED":     {Title: "Solicitação delegada", Template: "Uma solicitação foi delegada para você.", TargetType: "SELF"},
	"SERVICE_SCHEDULED":     {Title: "Serviço agendado", Template: "Você tem um novo serviço agendado para {date}.", TargetType: "SELF"},
	"SERVICE_COMPLETED":     {Title: "Serviço concluído", Template: "Um serviço agendado foi concluído.", TargetType: "ROLE", TargetRole: "gestor"},
	"CONFIRMATION_ACCEPTED": {Title: "Nova data aceita", Template: "O cliente aceitou a nova data ({date}).", TargetType: "SELF"},
	"CONFIRMATION_REJECTED": {Title: "Nova data recusada", Template: "O cliente recusou a proposta de nova data.", TargetType: "SELF"},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	route, ok := notificationRoutes[typeCode]
	if !ok {
		// Events without a route are bus traffic for other consumers.
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, route, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info("NotificationService", "Recipients resolved", map[string]interface{}{"count": len(recipients), "type": route.TargetType})

	for _, userID := range recipients {
		notif := s.buildNotification(userID, typeCode, route, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, route notificationRoute, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch route.TargetType {
	case "SELF":
		if uidStr, ok := event.Payload()["user_id"].(string); ok {
			if uid, err := uuid.Parse(uidStr); err == nil {
				userIDs = append(userIDs, uid)
			}
		} else {
			s.logger.Warn("NotificationService", fmt.Sprintf("TargetType SELF but no user_id in payload for event %s", event.EventType()), nil)
		}

	case "ROLE":
		users, err := s.repo.GetUsersByRole(ctx, route.TargetRole)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.Id)
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, route notificationRoute, event events.Event) model.Notification {
	msg := route.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	var actorID *uuid.UUID
	if actorStr, ok := payload["actor_id"].(string); ok {
		if aid, err := uuid.Parse(actorStr); err == nil {
			actorID = &aid
		}
	}

	entityType := ""
	var entityID *uuid.UUID
	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	metaMap := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		TypeCode:   typeCode,
		Title:      route.Title,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
