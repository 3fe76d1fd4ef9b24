package inquiries

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"nextglide-backend/src/database"
	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Receipts sends the acknowledgement of an inquiry.
type Receipts interface {
	SendApplicationReceipt(ctx context.Context, inq *models.Inquiry) error
}

type Service struct {
	kind     models.CatalogKind
	store    Store
	receipts Receipts
	log      *zap.Logger
	now      func() time.Time
}

func NewService(kind models.CatalogKind, store Store, receipts Receipts, log *zap.Logger) *Service {
	return &Service{kind: kind, store: store, receipts: receipts, log: log, now: time.Now}
}

func (s *Service) notFound() error {
	return utils.NotFound("Inquiry not found")
}

// Submit stores an inquiry and waits for the receipt email. A failed
// receipt is logged and does not fail the submission.
func (s *Service) Submit(ctx context.Context, body []byte) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := json.Unmarshal(body, &inq); err != nil {
		return nil, utils.Validation("Invalid input: %v", err)
	}
	if err := utils.ValidateStruct(inq); err != nil {
		return nil, err
	}
	if err := s.checkReference(&inq); err != nil {
		return nil, err
	}

	inq.ID = primitive.NewObjectID()
	inq.Status = models.InquiryNew
	inq.CreatedAt = s.now().UTC()
	if inq.CustomResponses == nil {
		inq.CustomResponses = []models.CustomResponse{}
	}
	if err := s.store.Insert(ctx, &inq); err != nil {
		return nil, err
	}

	if err := s.receipts.SendApplicationReceipt(ctx, &inq); err != nil {
		s.log.Warn("inquiry receipt not sent",
			zap.String("inquiry_id", inq.ID.Hex()),
			zap.String("kind", s.kind.Name),
			zap.Error(err),
		)
	}
	return &inq, nil
}

// checkReference requires the id and name snapshot of this kind and
// drops the pair of the other kind.
func (s *Service) checkReference(inq *models.Inquiry) error {
	switch s.kind {
	case models.SolutionKind:
		if inq.SolutionID == nil || inq.SolutionID.IsZero() || strings.TrimSpace(inq.SolutionName) == "" {
			return utils.Validation("solutionId and solutionName are required")
		}
		inq.ServiceID, inq.ServiceName = nil, ""
	default:
		if inq.ServiceID == nil || inq.ServiceID.IsZero() || strings.TrimSpace(inq.ServiceName) == "" {
			return utils.Validation("serviceId and serviceName are required")
		}
		inq.SolutionID, inq.SolutionName = nil, ""
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]models.Inquiry, error) {
	return s.store.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error) {
	if !status.Valid() {
		return nil, utils.Validation("status must be one of New, Contacted, In Progress, Closed")
	}
	inq, err := s.store.UpdateStatus(ctx, id, status)
	if errors.Is(err, database.ErrNotFound) {
		return nil, s.notFound()
	}
	return inq, err
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return s.notFound()
	}
	return err
}

// Resend sends the receipt again and reports a transport failure.
func (s *Service) Resend(ctx context.Context, id primitive.ObjectID) error {
	inq, err := s.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return s.notFound()
	}
	if err != nil {
		return err
	}
	if err := s.receipts.SendApplicationReceipt(ctx, inq); err != nil {
		return utils.Internal("Failed to send email", err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
