package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	portsrepo "github.com/SscSPs/document_reception_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/SscSPs/document_reception_app/internal/platform/metrics"
	"github.com/google/uuid"
)

const defaultMasterCacheTTL = 5 * time.Minute

// MasterServiceOption configures the master data services.
type MasterServiceOption func(*masterOptions)

type masterOptions struct {
	cache ports.MasterDataCache
	ttl   time.Duration
	now   func() time.Time
}

// WithMasterDataCache serves active listings through cache.
func WithMasterDataCache(cache ports.MasterDataCache, ttl time.Duration) MasterServiceOption {
	return func(o *masterOptions) {
		o.cache = cache
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithMasterClock overrides the time source.
func WithMasterClock(now func() time.Time) MasterServiceOption {
	return func(o *masterOptions) {
		o.now = now
	}
}

func newMasterOptions(options []MasterServiceOption) masterOptions {
	o := masterOptions{ttl: defaultMasterCacheTTL, now: time.Now}
	for _, option := range options {
		option(&o)
	}
	return o
}

// cachedList reads key from the cache, falling back to load and populating the cache.
func cachedList[T any](ctx context.Context, o masterOptions, key string, load func() ([]T, error)) ([]T, error) {
	if o.cache != nil {
		var cached []T
		if o.cache.Get(ctx, key, &cached) {
			metrics.MasterCacheLookupsTotal.WithLabelValues(key, "hit").Inc()
			return cached, nil
		}
		metrics.MasterCacheLookupsTotal.WithLabelValues(key, "miss").Inc()
	}
	items, err := load()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	if o.cache != nil {
		o.cache.Set(ctx, key, items, o.ttl)
	}
	return items, nil
}

func (o masterOptions) invalidate(ctx context.Context, keys ...string) {
	if o.cache != nil {
		o.cache.Invalidate(ctx, keys...)
	}
}

// departmentService implements the DepartmentSvcFacade interface
type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepositoryFacade
	opts           masterOptions
}

// NewDepartmentService creates a new department service with the provided options
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepositoryFacade, options ...MasterServiceOption) portssvc.DepartmentSvcFacade {
	return &departmentService{
		departmentRepo: departmentRepo,
		opts:           newMasterOptions(options),
	}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) ListDepartments(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.Department, error) {
	if err := s.Authorize(ctx, actor, OpReadMasterData, nil); err != nil {
		return nil, err
	}
	if includeInactive && actor.Role.Satisfies(domain.RoleAdmin) {
		departments, err := s.departmentRepo.ListDepartments(ctx, true)
		if err != nil {
			s.LogError(ctx, err, "Failed to list departments")
			return nil, wrapRepoErr(err, "failed to list departments")
		}
		if departments == nil {
			departments = []domain.Department{}
		}
		return departments, nil
	}

	departments, err := cachedList(ctx, s.opts, ports.CacheKeyActiveDepartments, func() ([]domain.Department, error) {
		return s.departmentRepo.ListDepartments(ctx, false)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, wrapRepoErr(err, "failed to list departments")
	}
	return departments, nil
}

func (s *departmentService) CreateDepartment(ctx context.Context, actor domain.Actor, req dto.CreateDepartmentRequest) (*domain.Department, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	parentID := normalizeOptionalID(req.ParentID)
	if err := s.checkParent(ctx, "", parentID); err != nil {
		return nil, err
	}

	dept := domain.Department{
		DepartmentID: uuid.NewString(),
		Code:         strings.TrimSpace(req.Code),
		Name:         strings.TrimSpace(req.Name),
		ParentID:     parentID,
		IsActive:     true,
		SortOrder:    req.SortOrder,
		AuditFields:  domain.NewAuditFields(actor.UserID, s.opts.now()),
	}
	if err := s.departmentRepo.SaveDepartment(ctx, dept); err != nil {
		s.LogError(ctx, err, "Failed to save department", slog.String("code", dept.Code))
		return nil, wrapRepoErr(err, "failed to create department")
	}

	s.opts.invalidate(ctx, ports.CacheKeyActiveDepartments)
	s.LogInfo(ctx, "Department created", slog.String("department_id", dept.DepartmentID))
	return &dept, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actor domain.Actor, departmentID string, req dto.UpdateDepartmentRequest) (*domain.Department, error) {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return nil, err
	}
	dept, err := s.find(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		dept.Code = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil {
		dept.Name = strings.TrimSpace(*req.Name)
	}
	if req.ParentID != nil {
		dept.ParentID = normalizeOptionalID(req.ParentID)
		if err := s.checkParent(ctx, departmentID, dept.ParentID); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		dept.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	dept.Touch(actor.UserID, s.opts.now())
	if err := s.departmentRepo.UpdateDepartment(ctx, *dept); err != nil {
		s.LogError(ctx, err, "Failed to update department", slog.String("department_id", departmentID))
		return nil, wrapRepoErr(err, "failed to update department")
	}

	s.opts.invalidate(ctx, ports.CacheKeyActiveDepartments)
	return dept, nil
}

func (s *departmentService) DeactivateDepartment(ctx context.Context, actor domain.Actor, departmentID string) error {
	if err := s.Authorize(ctx, actor, OpManageMasterData, nil); err != nil {
		return err
	}
	if _, err := s.find(ctx, departmentID); err != nil {
		return err
	}
	if err := s.departmentRepo.SetDepartmentActive(ctx, departmentID, false, actor.UserID, s.opts.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate department", slog.String("department_id", departmentID))
		return wrapRepoErr(err, "failed to deactivate department")
	}

	s.opts.invalidate(ctx, ports.CacheKeyActiveDepartments)
	s.LogInfo(ctx, "Department deactivated", slog.String("department_id", departmentID))
	return nil
}

func (s *departmentService) find(ctx context.Context, departmentID string) (*domain.Department, error) {
	dept, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("department not found")
		}
		return nil, wrapRepoErr(err, "failed to load department")
	}
	return dept, nil
}

func (s *departmentService) checkParent(ctx context.Context, selfID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == selfID {
		return apperrors.NewValidationFailedError("a department cannot be its own parent")
	}
	if _, err := s.departmentRepo.FindDepartmentByID(ctx, *parentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("parentID does not reference an existing department")
		}
		return wrapRepoErr(err, "failed to load department")
	}
	return nil
}
