// FILE: internal/service/therapist_service.go
package service

import (
	"context"
	"time"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/events"
	pktNats "teletherapy-be/pkg/nats"
	"teletherapy-be/pkg/policy"

	"github.com/google/uuid"
)

type ITherapistService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.TherapistResponse, error)
	MyProfile(ctx context.Context, userId uuid.UUID) (*dto.TherapistResponse, error)
	List(ctx context.Context, page, limit int) ([]*dto.TherapistResponse, error)
	UpdateRate(ctx context.Context, userId uuid.UUID, req *dto.UpdateRateRequest) (*dto.UpdateRateResponse, error)
	UpdateBio(ctx context.Context, userId uuid.UUID, req *dto.UpdateBioRequest) (*dto.TherapistResponse, error)
	SubmitDocument(ctx context.Context, userId uuid.UUID, req *dto.SubmitDocumentRequest) (*dto.DocumentResponse, error)
	VerifyDocument(ctx context.Context, adminId, therapistId uuid.UUID, req *dto.VerifyDocumentRequest) (*dto.VerifyDocumentResponse, error)
}

type therapistService struct {
	uowFactory       unitofwork.RepositoryFactory
	policyService    IPolicyService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewTherapistService(
	uowFactory unitofwork.RepositoryFactory,
	policyService IPolicyService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ITherapistService {
	return &therapistService{
		uowFactory:       uowFactory,
		policyService:    policyService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *therapistService) Show(ctx context.Context, id uuid.UUID) (*dto.TherapistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist")
	}

	resp := toTherapistResponse(therapist)
	return &resp, nil
}

func (s *therapistService) MyProfile(ctx context.Context, userId uuid.UUID) (*dto.TherapistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist profile")
	}

	resp := toTherapistResponse(therapist)
	return &resp, nil
}

func (s *therapistService) List(ctx context.Context, page, limit int) ([]*dto.TherapistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByStatus{Status: string(entity.TherapistStatusActive)},
		specification.OrderBy{Field: "total_sessions", Desc: true},
	}
	if limit > 0 {
		offset := 0
		if page > 1 {
			offset = (page - 1) * limit
		}
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	therapists, err := uow.TherapistRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TherapistResponse, 0, len(therapists))
	for _, therapist := range therapists {
		resp := toTherapistResponse(therapist)
		result = append(result, &resp)
	}
	return result, nil
}

// UpdateRate saves the therapist's asking rate, silently clamped to the
// rate cap for their credential tier. The response reports both numbers so
// the UI can explain a clamp.
func (s *therapistService) UpdateRate(ctx context.Context, userId uuid.UUID, req *dto.UpdateRateRequest) (*dto.UpdateRateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist profile")
	}

	caps, err := s.policyService.RateCaps(ctx)
	if err != nil {
		return nil, err
	}

	effective := caps.Clamp(req.HourlyRate, therapist.CredentialTier)
	therapist.HourlyRate = effective
	therapist.UpdatedAt = time.Now()

	if err := uow.TherapistRepository().Update(ctx, therapist); err != nil {
		return nil, err
	}

	return &dto.UpdateRateResponse{
		TherapistId:   therapist.Id,
		RequestedRate: req.HourlyRate,
		EffectiveRate: effective,
		RateCap:       caps.MaxRate(therapist.CredentialTier),
		Clamped:       effective != req.HourlyRate,
	}, nil
}

func (s *therapistService) UpdateBio(ctx context.Context, userId uuid.UUID, req *dto.UpdateBioRequest) (*dto.TherapistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist profile")
	}

	therapist.Bio = &req.Bio
	therapist.UpdatedAt = time.Now()

	if err := uow.TherapistRepository().Update(ctx, therapist); err != nil {
		return nil, err
	}

	resp := toTherapistResponse(therapist)
	return &resp, nil
}

func (s *therapistService) SubmitDocument(ctx context.Context, userId uuid.UUID, req *dto.SubmitDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist profile")
	}

	doc := &entity.ComplianceDocument{
		Id:          uuid.New(),
		TherapistId: therapist.Id,
		Type:        entity.DocumentType(req.Type),
		Verified:    false,
		Metadata:    req.Metadata,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.TherapistRepository().UpsertDocument(ctx, doc); err != nil {
		return nil, err
	}

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// VerifyDocument flips one document's verified flag and re-evaluates the
// activation rule. Activation happens only out of pending; verifying a
// document for a paused or inactive therapist never resurrects the profile.
func (s *therapistService) VerifyDocument(ctx context.Context, adminId, therapistId uuid.UUID, req *dto.VerifyDocumentRequest) (*dto.VerifyDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: therapistId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	doc := &entity.ComplianceDocument{
		Id:          uuid.New(),
		TherapistId: therapist.Id,
		Type:        entity.DocumentType(req.Type),
		Verified:    req.Verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Verified {
		doc.VerifiedAt = &now
		doc.VerifiedBy = &adminId
	}
	if err := uow.TherapistRepository().UpsertDocument(ctx, doc); err != nil {
		return nil, err
	}

	docs, err := uow.TherapistRepository().FindDocuments(ctx, therapist.Id)
	if err != nil {
		return nil, err
	}
	set := make(entity.DocumentSet, len(docs))
	for _, d := range docs {
		set[d.Type] = set[d.Type] || d.Verified
	}

	activated := false
	if policy.ShouldActivate(set, therapist.CredentialTier, therapist.Status) {
		therapist.Status = entity.TherapistStatusActive
		therapist.UpdatedAt = now
		if err := uow.TherapistRepository().Update(ctx, therapist); err != nil {
			return nil, err
		}

		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: therapist.UserId})
		if err != nil {
			return nil, err
		}
		if user != nil && user.Status == entity.UserStatusPending {
			user.Status = entity.UserStatusActive
			user.UpdatedAt = now
			if err := uow.UserRepository().Update(ctx, user); err != nil {
				return nil, err
			}
		}
		activated = true
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if activated {
		s.onActivated(ctx, therapist)
	}

	missing := make([]string, 0)
	for _, required := range policy.RequiredDocuments(therapist.CredentialTier) {
		if !set[required] {
			missing = append(missing, string(required))
		}
	}

	return &dto.VerifyDocumentResponse{
		TherapistId: therapist.Id,
		Document:    toDocumentResponse(doc),
		Status:      string(therapist.Status),
		Activated:   activated,
		Missing:     missing,
	}, nil
}

func (s *therapistService) onActivated(ctx context.Context, therapist *entity.Therapist) {
	if s.eventPublisher != nil {
		evCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.eventPublisher.Publish(evCtx, events.NewTherapistActivated(therapist.Id)); err != nil {
			s.logger.Warn("TherapistService", "Failed to publish THERAPIST_ACTIVATED", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.publisherService == nil {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: therapist.UserId})
	if err != nil || user == nil {
		return
	}
	msg := &dto.NotificationMessage{
		Kind:          dto.NotificationTherapistActivated,
		RecipientMail: user.Email,
	}
	if err := s.publisherService.PublishNotification(msg); err != nil {
		s.logger.Warn("TherapistService", "Failed to queue activation notification", map[string]interface{}{"error": err.Error()})
	}
}

func toTherapistResponse(therapist *entity.Therapist) dto.TherapistResponse {
	docs := make([]dto.DocumentResponse, 0, len(therapist.Documents))
	for _, d := range therapist.Documents {
		docs = append(docs, toDocumentResponse(&d))
	}
	return dto.TherapistResponse{
		Id:             therapist.Id,
		UserId:         therapist.UserId,
		CredentialTier: string(therapist.CredentialTier),
		HourlyRate:     therapist.HourlyRate,
		Status:         string(therapist.Status),
		TotalSessions:  therapist.TotalSessions,
		Bio:            therapist.Bio,
		CreatedAt:      therapist.CreatedAt,
		Documents:      docs,
	}
}

func toDocumentResponse(doc *entity.ComplianceDocument) dto.DocumentResponse {
	return dto.DocumentResponse{
		Id:         doc.Id,
		Type:       string(doc.Type),
		Verified:   doc.Verified,
		VerifiedAt: doc.VerifiedAt,
	}
}
