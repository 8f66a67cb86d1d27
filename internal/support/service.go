package support

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage  = errors.New("ticket message is required")
	ErrInvalidStatus = errors.New("unknown ticket status")
	ErrNotFound      = errors.New("ticket not found")
)

// TicketStore is the slice of the repository the service needs.
type TicketStore interface {
	Create(ctx context.Context, ticket *Ticket) error
	List(ctx context.Context) ([]*Ticket, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Ticket, error)
}

type Service struct {
	store  TicketStore
	logger *zap.Logger
}

func NewService(repo *TicketRepository, logger *zap.Logger) *Service {
	return NewServiceWithStore(repo, logger)
}

func NewServiceWithStore(store TicketStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger.Named("support")}
}

// Submit files a feedback ticket on behalf of an identity.
func (s *Service) Submit(ctx context.Context, identityKey, email, message string) (*Ticket, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	ticket := &Ticket{
		ID:         primitive.NewObjectID(),
		IdentityID: identityKey,
		Email:      email,
		Message:    message,
		Status:     StatusOpen,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.logger.Info("support ticket submitted", zap.String("ticket_id", ticket.ID.Hex()))
	return ticket, nil
}

// List returns every ticket, newest first, for the admin feedback view.
func (s *Service) List(ctx context.Context) ([]*Ticket, error) {
	return s.store.List(ctx)
}

// SetStatus moves a ticket between open and resolved.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*Ticket, error) {
	if status != StatusOpen && status != StatusResolved {
		return nil, ErrInvalidStatus
	}
	ticket, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrNotFound
	}
	return ticket, nil
}
