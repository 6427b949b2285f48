package service

import (
	"context"
	"sort"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/contract"
	"teletherapy-be/internal/repository/memory"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory repository fakes. Reads honor the same specification structs
// the real GORM layer uses, evaluated with type switches, so the service
// queries stay the single source of truth.

type fakeStore struct {
	users         []*entity.User
	clients       []*entity.Client
	therapists    []*entity.Therapist
	documents     []*entity.ComplianceDocument
	sessions      []*entity.Session
	plans         []*entity.SubscriptionPlan
	subscriptions []*entity.Subscription
	payments      []*entity.Payment
	policyConfig  *entity.PolicyConfig
	audits        []*entity.AuditLog

	// stalePaymentReads hides existing payments from reads while the unique
	// index still fires on insert, emulating a concurrent writer whose row
	// is not yet visible to this transaction.
	stalePaymentReads bool
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// --- Users ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.store.users {
		if u.Id == user.Id {
			r.store.users[i] = user
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, u := range r.store.users {
		if u.Id == id {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if u.Id != v.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != v.Email {
				return false
			}
		case specification.ByStatus:
			if string(u.Status) != v.Status {
				return false
			}
		case specification.FilterBy:
			if v.Field == "role" && string(u.Role) != v.Value.(string) {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var result []*entity.User
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- Clients ---

type fakeClientRepo struct{ store *fakeStore }

func (r *fakeClientRepo) Create(ctx context.Context, client *entity.Client) error {
	r.store.clients = append(r.store.clients, client)
	return nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *entity.Client) error {
	for i, c := range r.store.clients {
		if c.Id == client.Id {
			r.store.clients[i] = client
			return nil
		}
	}
	return nil
}

func matchClient(c *entity.Client, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if c.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != v.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeClientRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error) {
	for _, c := range r.store.clients {
		if matchClient(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	var result []*entity.Client
	for _, c := range r.store.clients {
		if matchClient(c, specs) {
			result = append(result, c)
		}
	}
	return result, nil
}

// --- Therapists ---

type fakeTherapistRepo struct{ store *fakeStore }

func (r *fakeTherapistRepo) Create(ctx context.Context, therapist *entity.Therapist) error {
	r.store.therapists = append(r.store.therapists, therapist)
	return nil
}

func (r *fakeTherapistRepo) Update(ctx context.Context, therapist *entity.Therapist) error {
	for i, t := range r.store.therapists {
		if t.Id == therapist.Id {
			r.store.therapists[i] = therapist
			return nil
		}
	}
	return nil
}

func matchTherapist(t *entity.Therapist, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if t.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if t.UserId != v.UserID {
				return false
			}
		case specification.ByStatus:
			if string(t.Status) != v.Status {
				return false
			}
		}
	}
	return true
}

// hydrateDocuments mirrors the document preload the GORM repository does.
func (r *fakeTherapistRepo) hydrateDocuments(t *entity.Therapist) {
	t.Documents = nil
	for _, d := range r.store.documents {
		if d.TherapistId == t.Id {
			t.Documents = append(t.Documents, *d)
		}
	}
}

func (r *fakeTherapistRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Therapist, error) {
	for _, t := range r.store.therapists {
		if matchTherapist(t, specs) {
			r.hydrateDocuments(t)
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTherapistRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Therapist, error) {
	var result []*entity.Therapist
	for _, t := range r.store.therapists {
		if matchTherapist(t, specs) {
			r.hydrateDocuments(t)
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSessions > result[j].TotalSessions
	})
	return result, nil
}

func (r *fakeTherapistRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeTherapistRepo) UpsertDocument(ctx context.Context, doc *entity.ComplianceDocument) error {
	for i, d := range r.store.documents {
		if d.TherapistId == doc.TherapistId && d.Type == doc.Type {
			r.store.documents[i] = doc
			return nil
		}
	}
	r.store.documents = append(r.store.documents, doc)
	return nil
}

func (r *fakeTherapistRepo) FindDocuments(ctx context.Context, therapistId uuid.UUID) ([]*entity.ComplianceDocument, error) {
	var result []*entity.ComplianceDocument
	for _, d := range r.store.documents {
		if d.TherapistId == therapistId {
			result = append(result, d)
		}
	}
	return result, nil
}

// --- Sessions ---

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.Session) error {
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			r.store.sessions[i] = session
			return nil
		}
	}
	return nil
}

func matchSession(s *entity.Session, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ClientOwnedBy:
			if s.ClientId != v.ClientID {
				return false
			}
		case specification.TherapistOwnedBy:
			if s.TherapistId != v.TherapistID {
				return false
			}
		case specification.ByStatus:
			if string(s.Status) != v.Status {
				return false
			}
		case specification.StatusIn:
			found := false
			for _, status := range v.Statuses {
				if string(s.Status) == status {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.ScheduledBetween:
			if s.ScheduledDate.Before(v.From) || !s.ScheduledDate.Before(v.To) {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	var result []*entity.Session
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- Subscriptions ---

type fakeSubscriptionRepo struct{ store *fakeStore }

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.store.plans = append(r.store.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	for i, p := range r.store.plans {
		if p.Id == plan.Id {
			r.store.plans[i] = plan
			return nil
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) DeletePlan(ctx context.Context, id uuid.UUID) error {
	for i, p := range r.store.plans {
		if p.Id == id {
			r.store.plans = append(r.store.plans[:i], r.store.plans[i+1:]...)
			return nil
		}
	}
	return nil
}

func matchPlan(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if p.Id != v.ID {
				return false
			}
		case specification.FilterBy:
			switch v.Field {
			case "slug":
				if p.Slug != v.Value.(string) {
					return false
				}
			case "is_active":
				if p.IsActive != v.Value.(bool) {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, p := range r.store.plans {
		if matchPlan(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var result []*entity.SubscriptionPlan
	for _, p := range r.store.plans {
		if matchPlan(p, specs) {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	// Mirror the partial unique index: one active row per client.
	if subscription.Status == entity.SubscriptionStatusActive {
		for _, s := range r.store.subscriptions {
			if s.ClientId == subscription.ClientId && s.Status == entity.SubscriptionStatusActive {
				return uniqueViolation("uniq_active_subscription_per_client")
			}
		}
	}
	r.store.subscriptions = append(r.store.subscriptions, subscription)
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	for i, s := range r.store.subscriptions {
		if s.Id == subscription.Id {
			r.store.subscriptions[i] = subscription
			return nil
		}
	}
	return nil
}

func matchSubscription(s *entity.Subscription, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ByStatus:
			if string(s.Status) != v.Status {
				return false
			}
		case specification.FilterBy:
			if v.Field == "client_id" && s.ClientId != v.Value.(uuid.UUID) {
				return false
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	for _, s := range r.store.subscriptions {
		if matchSubscription(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var result []*entity.Subscription
	for _, s := range r.store.subscriptions {
		if matchSubscription(s, specs) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakeSubscriptionRepo) GetTotalRevenue(ctx context.Context) (float64, error) {
	total := 0.0
	for _, s := range r.store.subscriptions {
		if s.PaymentStatus != entity.PaymentStatusCompleted {
			continue
		}
		for _, p := range r.store.plans {
			if p.Id == s.PlanId {
				total += p.Price
			}
		}
	}
	return total, nil
}

func (r *fakeSubscriptionRepo) CountActiveSubscribers(ctx context.Context) (int, error) {
	count := 0
	for _, s := range r.store.subscriptions {
		if s.Status == entity.SubscriptionStatusActive {
			count++
		}
	}
	return count, nil
}

// --- Payments ---

type fakePaymentRepo struct{ store *fakeStore }

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	// Mirror the composite unique index on (session_id, kind).
	for _, p := range r.store.payments {
		if p.SessionId == payment.SessionId && p.Kind == payment.Kind {
			return uniqueViolation("uniq_payment_per_session_kind")
		}
	}
	r.store.payments = append(r.store.payments, payment)
	return nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	for i, p := range r.store.payments {
		if p.Id == payment.Id {
			r.store.payments[i] = payment
			return nil
		}
	}
	return nil
}

func matchPayment(p *entity.Payment, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if p.Id != v.ID {
				return false
			}
		case specification.FilterBy:
			switch v.Field {
			case "session_id":
				if p.SessionId != v.Value.(uuid.UUID) {
					return false
				}
			case "kind":
				if string(p.Kind) != v.Value.(string) {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakePaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	if r.store.stalePaymentReads {
		return nil, nil
	}
	for _, p := range r.store.payments {
		if matchPayment(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var result []*entity.Payment
	for _, p := range r.store.payments {
		if matchPayment(p, specs) {
			result = append(result, p)
		}
	}
	return result, nil
}

// --- Policy config ---

type fakePolicyConfigRepo struct{ store *fakeStore }

func (r *fakePolicyConfigRepo) FindCurrent(ctx context.Context) (*entity.PolicyConfig, error) {
	return r.store.policyConfig, nil
}

func (r *fakePolicyConfigRepo) Save(ctx context.Context, config *entity.PolicyConfig) error {
	r.store.policyConfig = config
	return nil
}

// --- Audit ---

type fakeAuditRepo struct{ store *fakeStore }

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.store.audits = append(r.store.audits, log)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	return r.store.audits, nil
}

// --- Unit of work ---

type fakeUnitOfWork struct{ store *fakeStore }

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}
func (u *fakeUnitOfWork) TherapistRepository() contract.TherapistRepository {
	return &fakeTherapistRepo{store: u.store}
}
func (u *fakeUnitOfWork) ClientRepository() contract.ClientRepository {
	return &fakeClientRepo{store: u.store}
}
func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return &fakeSubscriptionRepo{store: u.store}
}
func (u *fakeUnitOfWork) PaymentRepository() contract.PaymentRepository {
	return &fakePaymentRepo{store: u.store}
}
func (u *fakeUnitOfWork) PolicyConfigRepository() contract.PolicyConfigRepository {
	return &fakePolicyConfigRepo{store: u.store}
}
func (u *fakeUnitOfWork) AuditRepository() contract.AuditRepository {
	return &fakeAuditRepo{store: u.store}
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// --- Misc fakes ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func newTestPolicyService(store *fakeStore) IPolicyService {
	return NewPolicyService(&fakeFactory{store: store}, memory.NewPolicyCache())
}

// Seed helpers shared by the service tests.

func seedClient(store *fakeStore) (*entity.User, *entity.Client) {
	user := &entity.User{
		Id:       uuid.New(),
		Email:    "client@example.com",
		FullName: "Test Client",
		Role:     entity.UserRoleClient,
		Status:   entity.UserStatusActive,
	}
	client := &entity.Client{
		Id:     uuid.New(),
		UserId: user.Id,
	}
	store.users = append(store.users, user)
	store.clients = append(store.clients, client)
	return user, client
}

func seedTherapist(store *fakeStore, tier entity.CredentialTier, status entity.TherapistStatus, rate float64) (*entity.User, *entity.Therapist) {
	user := &entity.User{
		Id:       uuid.New(),
		Email:    "therapist@example.com",
		FullName: "Test Therapist",
		Role:     entity.UserRoleTherapist,
		Status:   entity.UserStatusActive,
	}
	therapist := &entity.Therapist{
		Id:             uuid.New(),
		UserId:         user.Id,
		CredentialTier: tier,
		HourlyRate:     rate,
		Status:         status,
	}
	store.users = append(store.users, user)
	store.therapists = append(store.therapists, therapist)
	return user, therapist
}
