package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/core/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MasterServiceTestSuite struct {
	suite.Suite
	deptRepo   *MockDepartmentRepository
	typeRepo   *MockNotificationTypeRepository
	cache      *MockMasterDataCache
	deptSvc    portssvc.DepartmentSvcFacade
	typeSvc    portssvc.NotificationTypeSvcFacade
	admin      domain.Actor
	general    domain.Actor
	cacheTTL   time.Duration
	activeDept []domain.Department
}

func (suite *MasterServiceTestSuite) SetupTest() {
	suite.deptRepo = new(MockDepartmentRepository)
	suite.typeRepo = new(MockNotificationTypeRepository)
	suite.cache = new(MockMasterDataCache)
	suite.cacheTTL = time.Minute
	suite.deptSvc = services.NewDepartmentService(suite.deptRepo, services.WithMasterDataCache(suite.cache, suite.cacheTTL))
	suite.typeSvc = services.NewNotificationTypeService(suite.typeRepo, services.WithMasterDataCache(suite.cache, suite.cacheTTL))
	suite.admin = actorOf("admin", domain.RoleAdmin, "")
	suite.general = actorOf("g", domain.RoleGeneral, "dept-a")
	suite.activeDept = []domain.Department{{DepartmentID: "dept-a", Code: "A", IsActive: true}}
}

func (suite *MasterServiceTestSuite) TestListDepartments_CacheMissLoadsAndStores() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, ports.CacheKeyActiveDepartments, mock.Anything).Return(false).Once()
	suite.deptRepo.On("ListDepartments", ctx, false).Return(suite.activeDept, nil).Once()
	suite.cache.On("Set", ctx, ports.CacheKeyActiveDepartments, suite.activeDept, suite.cacheTTL).Once()

	depts, err := suite.deptSvc.ListDepartments(ctx, suite.general, false)

	suite.Require().NoError(err)
	suite.Equal(suite.activeDept, depts)
	suite.cache.AssertExpectations(suite.T())
}

func (suite *MasterServiceTestSuite) TestListDepartments_CacheHitSkipsRepository() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, ports.CacheKeyActiveDepartments, mock.Anything).Return(true).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*[]domain.Department)
		*dest = suite.activeDept
	}).Once()

	depts, err := suite.deptSvc.ListDepartments(ctx, suite.general, false)

	suite.Require().NoError(err)
	suite.Equal(suite.activeDept, depts)
	suite.deptRepo.AssertNotCalled(suite.T(), "ListDepartments", mock.Anything, mock.Anything)
}

func (suite *MasterServiceTestSuite) TestListDepartments_IncludeInactiveIgnoredForNonAdmin() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, ports.CacheKeyActiveDepartments, mock.Anything).Return(false).Once()
	suite.deptRepo.On("ListDepartments", ctx, false).Return(suite.activeDept, nil).Once()
	suite.cache.On("Set", ctx, ports.CacheKeyActiveDepartments, mock.Anything, suite.cacheTTL).Once()

	_, err := suite.deptSvc.ListDepartments(ctx, suite.general, true)

	suite.Require().NoError(err)
	suite.deptRepo.AssertNotCalled(suite.T(), "ListDepartments", ctx, true)
}

func (suite *MasterServiceTestSuite) TestListDepartments_AdminIncludeInactiveBypassesCache() {
	ctx := context.Background()
	all := append(suite.activeDept, domain.Department{DepartmentID: "dept-old"})
	suite.deptRepo.On("ListDepartments", ctx, true).Return(all, nil).Once()

	depts, err := suite.deptSvc.ListDepartments(ctx, suite.admin, true)

	suite.Require().NoError(err)
	suite.Len(depts, 2)
	suite.cache.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MasterServiceTestSuite) TestCreateDepartment_AdminOnlyAndInvalidates() {
	ctx := context.Background()

	_, err := suite.deptSvc.CreateDepartment(ctx, suite.general, dto.CreateDepartmentRequest{Code: "X", Name: "X"})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.deptRepo.On("SaveDepartment", ctx, mock.MatchedBy(func(d domain.Department) bool {
		return d.Code == "X" && d.IsActive && d.CreatedBy == "admin"
	})).Return(nil).Once()
	suite.cache.On("Invalidate", ctx, []string{ports.CacheKeyActiveDepartments}).Once()

	dept, err := suite.deptSvc.CreateDepartment(ctx, suite.admin, dto.CreateDepartmentRequest{Code: " X ", Name: "Extra"})

	suite.Require().NoError(err)
	suite.Equal("X", dept.Code)
	suite.cache.AssertExpectations(suite.T())
}

func (suite *MasterServiceTestSuite) TestCreateDepartment_DuplicateCode() {
	ctx := context.Background()
	suite.deptRepo.On("SaveDepartment", ctx, mock.Anything).Return(apperrors.NewConflictError("department code already exists")).Once()

	_, err := suite.deptSvc.CreateDepartment(ctx, suite.admin, dto.CreateDepartmentRequest{Code: "A", Name: "A"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *MasterServiceTestSuite) TestUpdateDepartment_SelfParentRejected() {
	ctx := context.Background()
	suite.deptRepo.On("FindDepartmentByID", ctx, "dept-a").Return(&domain.Department{DepartmentID: "dept-a", IsActive: true}, nil).Once()

	_, err := suite.deptSvc.UpdateDepartment(ctx, suite.admin, "dept-a", dto.UpdateDepartmentRequest{ParentID: stringPtr("dept-a")})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MasterServiceTestSuite) TestDeactivateDepartment() {
	ctx := context.Background()
	suite.deptRepo.On("FindDepartmentByID", ctx, "dept-a").Return(&domain.Department{DepartmentID: "dept-a", IsActive: true}, nil).Once()
	suite.deptRepo.On("SetDepartmentActive", ctx, "dept-a", false, "admin", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.cache.On("Invalidate", ctx, []string{ports.CacheKeyActiveDepartments}).Once()

	suite.Require().NoError(suite.deptSvc.DeactivateDepartment(ctx, suite.admin, "dept-a"))
	suite.deptRepo.AssertExpectations(suite.T())
}

func (suite *MasterServiceTestSuite) TestCreateNotificationType_UnknownTemplate() {
	ctx := context.Background()
	suite.typeRepo.On("FindWorkflowTemplateByID", ctx, "tpl-x").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.typeSvc.CreateNotificationType(ctx, suite.admin, dto.CreateNotificationTypeRequest{
		Code: "T", Name: "T", WorkflowTemplateID: stringPtr("tpl-x"),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MasterServiceTestSuite) TestCreateNotificationType_Success() {
	ctx := context.Background()
	suite.typeRepo.On("SaveNotificationType", ctx, mock.MatchedBy(func(nt domain.NotificationType) bool {
		return nt.Code == "T" && nt.HasInspection && nt.IsActive
	})).Return(nil).Once()
	suite.cache.On("Invalidate", ctx, []string{ports.CacheKeyActiveNotificationTypes}).Once()

	nt, err := suite.typeSvc.CreateNotificationType(ctx, suite.admin, dto.CreateNotificationTypeRequest{Code: "T", Name: "Type", HasInspection: true})

	suite.Require().NoError(err)
	suite.NotEmpty(nt.NotificationTypeID)
	suite.cache.AssertExpectations(suite.T())
}

func (suite *MasterServiceTestSuite) TestListWorkflowTemplates_CacheMiss() {
	ctx := context.Background()
	templates := []domain.WorkflowTemplate{{WorkflowTemplateID: "tpl-1", Statuses: []string{"受付", "完了"}}}
	suite.cache.On("Get", ctx, ports.CacheKeyWorkflowTemplates, mock.Anything).Return(false).Once()
	suite.typeRepo.On("ListWorkflowTemplates", ctx).Return(templates, nil).Once()
	suite.cache.On("Set", ctx, ports.CacheKeyWorkflowTemplates, templates, suite.cacheTTL).Once()

	got, err := suite.typeSvc.ListWorkflowTemplates(ctx, suite.general)

	suite.Require().NoError(err)
	suite.Equal(templates, got)
}

func (suite *MasterServiceTestSuite) TestCreateWorkflowTemplate_BlankStatus() {
	_, err := suite.typeSvc.CreateWorkflowTemplate(context.Background(), suite.admin, dto.CreateWorkflowTemplateRequest{
		Name: "flow", Statuses: []string{"受付", " "},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestMasterServices(t *testing.T) {
	suite.Run(t, new(MasterServiceTestSuite))
}
