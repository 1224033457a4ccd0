package service

import (
	"context"
	"fmt"
	"time"

	"samansetu/internal/domain"
	"samansetu/internal/mail"
	"samansetu/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInquiryInput carries the buyer-supplied inquiry fields
type CreateInquiryInput struct {
	Message  string
	Quantity int
}

// InquiryService defines the interface for inquiry business logic
type InquiryService interface {
	CreateInquiry(ctx context.Context, input CreateInquiryInput, product *domain.ProductWithOwner, buyer *domain.User) (*domain.Inquiry, error)
}

type inquiryService struct {
	inquiryRepo repository.InquiryRepository
	notifier    mail.Notifier
	logger      *zap.Logger
}

// NewInquiryService creates a new instance of InquiryService
func NewInquiryService(inquiryRepo repository.InquiryRepository, notifier mail.Notifier, logger *zap.Logger) InquiryService {
	return &inquiryService{
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateInquiry persists the inquiry, then notifies the product owner.
// The notification is best-effort: a transport failure is logged and
// swallowed, and the persisted inquiry is returned regardless.
func (s *inquiryService) CreateInquiry(ctx context.Context, input CreateInquiryInput, product *domain.ProductWithOwner, buyer *domain.User) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		ID:        uuid.New(),
		Message:   input.Message,
		Quantity:  input.Quantity,
		ProductID: product.ID,
		BuyerID:   buyer.ID,
		CreatedAt: time.Now(),
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	notification := mail.InquiryNotification{
		OwnerEmail:  product.Owner.Email,
		BuyerEmail:  buyer.Email,
		ProductName: product.Name,
		Message:     input.Message,
		Quantity:    input.Quantity,
	}

	if err := s.notifier.SendInquiryNotification(ctx, notification); err != nil {
		s.logger.Error("Failed to send inquiry notification",
			zap.Error(err),
			zap.String("inquiry_id", inquiry.ID.String()),
			zap.String("owner_email", product.Owner.Email),
		)
	}

	return inquiry, nil
}
