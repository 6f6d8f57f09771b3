package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func stringPtr(s string) *string { return &s }

func actorOf(userID string, role domain.Role, dept string) domain.Actor {
	a := domain.Actor{UserID: userID, Role: role}
	if dept != "" {
		a.DepartmentID = stringPtr(dept)
	}
	return a
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, includeInactive bool) ([]domain.User, error) {
	args := m.Called(ctx, includeInactive)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error {
	return m.Called(ctx, userID, passwordHash, updatedAt).Error(0)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, userID, active, updatedBy, updatedAt).Error(0)
}

// --- Mock DepartmentRepository ---
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	var d *domain.Department
	if args.Get(0) != nil {
		d = args.Get(0).(*domain.Department)
	}
	return d, args.Error(1)
}

func (m *MockDepartmentRepository) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	args := m.Called(ctx, includeInactive)
	var ds []domain.Department
	if args.Get(0) != nil {
		ds = args.Get(0).([]domain.Department)
	}
	return ds, args.Error(1)
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	return m.Called(ctx, department).Error(0)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	return m.Called(ctx, department).Error(0)
}

func (m *MockDepartmentRepository) SetDepartmentActive(ctx context.Context, departmentID string, active bool, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, departmentID, active, updatedBy, updatedAt).Error(0)
}

// --- Mock NotificationTypeRepository ---
type MockNotificationTypeRepository struct {
	mock.Mock
}

func (m *MockNotificationTypeRepository) FindNotificationTypeByID(ctx context.Context, id string) (*domain.NotificationType, error) {
	args := m.Called(ctx, id)
	var nt *domain.NotificationType
	if args.Get(0) != nil {
		nt = args.Get(0).(*domain.NotificationType)
	}
	return nt, args.Error(1)
}

func (m *MockNotificationTypeRepository) ListNotificationTypes(ctx context.Context, includeInactive bool) ([]domain.NotificationType, error) {
	args := m.Called(ctx, includeInactive)
	var nts []domain.NotificationType
	if args.Get(0) != nil {
		nts = args.Get(0).([]domain.NotificationType)
	}
	return nts, args.Error(1)
}

func (m *MockNotificationTypeRepository) FindWorkflowTemplateByID(ctx context.Context, id string) (*domain.WorkflowTemplate, error) {
	args := m.Called(ctx, id)
	var w *domain.WorkflowTemplate
	if args.Get(0) != nil {
		w = args.Get(0).(*domain.WorkflowTemplate)
	}
	return w, args.Error(1)
}

func (m *MockNotificationTypeRepository) ListWorkflowTemplates(ctx context.Context) ([]domain.WorkflowTemplate, error) {
	args := m.Called(ctx)
	var ws []domain.WorkflowTemplate
	if args.Get(0) != nil {
		ws = args.Get(0).([]domain.WorkflowTemplate)
	}
	return ws, args.Error(1)
}

func (m *MockNotificationTypeRepository) SaveNotificationType(ctx context.Context, nt domain.NotificationType) error {
	return m.Called(ctx, nt).Error(0)
}

func (m *MockNotificationTypeRepository) UpdateNotificationType(ctx context.Context, nt domain.NotificationType) error {
	return m.Called(ctx, nt).Error(0)
}

func (m *MockNotificationTypeRepository) SetNotificationTypeActive(ctx context.Context, id string, active bool, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, id, active, updatedBy, updatedAt).Error(0)
}

func (m *MockNotificationTypeRepository) SaveWorkflowTemplate(ctx context.Context, tpl domain.WorkflowTemplate) error {
	return m.Called(ctx, tpl).Error(0)
}

// --- Mock InspectionRepository ---
type MockInspectionRepository struct {
	mock.Mock
}

func (m *MockInspectionRepository) FindInspectionByID(ctx context.Context, id string) (*domain.Inspection, error) {
	args := m.Called(ctx, id)
	var i *domain.Inspection
	if args.Get(0) != nil {
		i = args.Get(0).(*domain.Inspection)
	}
	return i, args.Error(1)
}

func (m *MockInspectionRepository) ListInspectionsByNotification(ctx context.Context, notificationID string) ([]domain.Inspection, error) {
	args := m.Called(ctx, notificationID)
	var is []domain.Inspection
	if args.Get(0) != nil {
		is = args.Get(0).([]domain.Inspection)
	}
	return is, args.Error(1)
}

func (m *MockInspectionRepository) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	return m.Called(ctx, inspection).Error(0)
}

func (m *MockInspectionRepository) UpdateInspection(ctx context.Context, inspection domain.Inspection) error {
	return m.Called(ctx, inspection).Error(0)
}

func (m *MockInspectionRepository) DeleteInspection(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock master data cache ---
type MockMasterDataCache struct {
	mock.Mock
}

func (m *MockMasterDataCache) Get(ctx context.Context, key string, dest any) bool {
	return m.Called(ctx, key, dest).Bool(0)
}

func (m *MockMasterDataCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *MockMasterDataCache) Invalidate(ctx context.Context, keys ...string) {
	m.Called(ctx, keys)
}

// --- Recording event publisher ---
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.NotificationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []domain.NotificationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.NotificationEvent(nil), p.events...)
}

// memoryNotificationStore is an in-memory NotificationRepositoryFacade. A unit of
// work holds the store lock for its whole duration and works on a copy that is
// swapped in only when fn succeeds, giving serializable, all-or-nothing semantics.
type memoryNotificationStore struct {
	mu     sync.Mutex
	state  memoryState
	failOn string
}

type memoryState struct {
	notifications map[string]domain.Notification
	history       []domain.NotificationHistory
	inspections   map[string]int
}

func newMemoryNotificationStore() *memoryNotificationStore {
	return &memoryNotificationStore{
		state: memoryState{
			notifications: map[string]domain.Notification{},
			inspections:   map[string]int{},
		},
	}
}

func (s memoryState) clone() memoryState {
	c := memoryState{
		notifications: make(map[string]domain.Notification, len(s.notifications)),
		history:       append([]domain.NotificationHistory(nil), s.history...),
		inspections:   make(map[string]int, len(s.inspections)),
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	for k, v := range s.inspections {
		c.inspections[k] = v
	}
	return c
}

var _ portsrepo.NotificationRepositoryFacade = (*memoryNotificationStore)(nil)

func (s *memoryNotificationStore) FindNotificationByID(_ context.Context, id string) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.state.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &n, nil
}

func (s *memoryNotificationStore) ListNotifications(_ context.Context, filter domain.NotificationFilter) ([]domain.Notification, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []domain.Notification
	for _, n := range s.state.notifications {
		if filter.ScopeDepartmentID != nil && n.ReceivingDepartmentID != *filter.ScopeDepartmentID && n.ProcessingDepartmentID != *filter.ScopeDepartmentID {
			continue
		}
		if filter.Status != nil && n.CurrentStatus != *filter.Status {
			continue
		}
		matched = append(matched, n)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].NotificationID < matched[j].NotificationID })
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []domain.Notification{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (s *memoryNotificationStore) ListHistoryByNotification(_ context.Context, id string) ([]domain.NotificationHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.NotificationHistory
	for i := len(s.state.history) - 1; i >= 0; i-- {
		if s.state.history[i].NotificationID == id {
			out = append(out, s.state.history[i])
		}
	}
	return out, nil
}

func (s *memoryNotificationStore) WithinTx(ctx context.Context, fn func(tx portsrepo.NotificationTxRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memoryTx{state: s.state.clone(), failOn: s.failOn}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// History returns ledger entries of id oldest first.
func (s *memoryNotificationStore) History(id string) []domain.NotificationHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.NotificationHistory
	for _, h := range s.state.history {
		if h.NotificationID == id {
			out = append(out, h)
		}
	}
	return out
}

func (s *memoryNotificationStore) Put(n domain.Notification, history ...domain.NotificationHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.notifications[n.NotificationID] = n
	s.state.history = append(s.state.history, history...)
}

type memoryTx struct {
	state  memoryState
	failOn string
}

func (t *memoryTx) fail(op string) error {
	if t.failOn == op {
		return assert.AnError
	}
	return nil
}

func (t *memoryTx) FindNotificationForUpdate(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := t.state.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &n, nil
}

func (t *memoryTx) SaveNotification(_ context.Context, n domain.Notification) error {
	if err := t.fail("SaveNotification"); err != nil {
		return err
	}
	t.state.notifications[n.NotificationID] = n
	return nil
}

func (t *memoryTx) UpdateNotification(_ context.Context, n domain.Notification) error {
	if err := t.fail("UpdateNotification"); err != nil {
		return err
	}
	if _, ok := t.state.notifications[n.NotificationID]; !ok {
		return apperrors.ErrNotFound
	}
	t.state.notifications[n.NotificationID] = n
	return nil
}

func (t *memoryTx) UpdateNotificationStatus(_ context.Context, id, status, updatedBy string, updatedAt time.Time) error {
	if err := t.fail("UpdateNotificationStatus"); err != nil {
		return err
	}
	n, ok := t.state.notifications[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	n.CurrentStatus = status
	n.Touch(updatedBy, updatedAt)
	t.state.notifications[id] = n
	return nil
}

func (t *memoryTx) DeleteNotification(_ context.Context, id string) error {
	if err := t.fail("DeleteNotification"); err != nil {
		return err
	}
	delete(t.state.notifications, id)
	return nil
}

func (t *memoryTx) AppendHistory(_ context.Context, entry domain.NotificationHistory) (domain.NotificationHistory, error) {
	if err := t.fail("AppendHistory"); err != nil {
		return domain.NotificationHistory{}, err
	}
	for _, h := range t.state.history {
		if h.NotificationID == entry.NotificationID && h.ChangedAt.After(entry.ChangedAt) {
			entry.ChangedAt = h.ChangedAt
		}
	}
	t.state.history = append(t.state.history, entry)
	return entry, nil
}

func (t *memoryTx) DeleteHistoryByNotification(_ context.Context, id string) error {
	kept := t.state.history[:0:0]
	for _, h := range t.state.history {
		if h.NotificationID != id {
			kept = append(kept, h)
		}
	}
	t.state.history = kept
	return nil
}

func (t *memoryTx) DeleteInspectionsByNotification(_ context.Context, id string) error {
	delete(t.state.inspections, id)
	return nil
}
