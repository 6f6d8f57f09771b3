package handlers_test

import (
	"net/http"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListDepartments_IncludeInactiveForwarded() {
	departments := []domain.Department{
		{DepartmentID: "dept-a", Code: "A", Name: "Building", IsActive: true, SortOrder: 1},
	}
	suite.mockDepartmentService.On("ListDepartments", mock.Anything, suite.general.Actor(), false).Return(departments, nil).Once()
	suite.mockDepartmentService.On("ListDepartments", mock.Anything, suite.admin.Actor(), true).Return(departments, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/master/departments", suite.general, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.DepartmentResponse
	suite.decodeData(w, &resp)
	suite.Require().Len(resp, 1)
	suite.Equal("A", resp[0].Code)

	w = suite.do(http.MethodGet, "/api/v1/master/departments?includeInactive=true", suite.admin, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/master/departments?includeInactive=maybe", suite.admin, nil)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (suite *HandlerTestSuite) TestCreateDepartment_ForbiddenAndConflict() {
	req := dto.CreateDepartmentRequest{Code: "B", Name: "Planning"}
	suite.mockDepartmentService.On("CreateDepartment", mock.Anything, suite.senior.Actor(), req).
		Return(nil, apperrors.NewForbiddenError("master data changes require ADMIN")).Once()
	suite.mockDepartmentService.On("CreateDepartment", mock.Anything, suite.admin.Actor(), req).
		Return(nil, apperrors.NewConflictError("department code B already exists")).Once()

	w := suite.do(http.MethodPost, "/api/v1/master/departments", suite.senior, req)
	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")

	w = suite.do(http.MethodPost, "/api/v1/master/departments", suite.admin, req)
	suite.assertError(w, http.StatusConflict, "CONFLICT")
}

func (suite *HandlerTestSuite) TestDeactivateNotificationType() {
	suite.mockTypeService.On("DeactivateNotificationType", mock.Anything, suite.admin.Actor(), "type-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/master/notification-types/type-1", suite.admin, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestCreateWorkflowTemplate() {
	tpl := &domain.WorkflowTemplate{WorkflowTemplateID: "wf-1", Name: "Standard", Statuses: []string{"受付", "処理中", "完了"}}
	suite.mockTypeService.On("CreateWorkflowTemplate", mock.Anything, suite.admin.Actor(),
		dto.CreateWorkflowTemplateRequest{Name: "Standard", Statuses: []string{"受付", "処理中", "完了"}},
	).Return(tpl, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/master/workflow-templates", suite.admin,
		dto.CreateWorkflowTemplateRequest{Name: "Standard", Statuses: []string{"受付", "処理中", "完了"}})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WorkflowTemplateResponse
	suite.decodeData(w, &resp)
	suite.Equal([]string{"受付", "処理中", "完了"}, resp.Statuses)

	w = suite.do(http.MethodPost, "/api/v1/master/workflow-templates", suite.admin,
		dto.CreateWorkflowTemplateRequest{Name: "Empty", Statuses: []string{"受付", " "}})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (suite *HandlerTestSuite) TestCreateUser_RoleValidated() {
	w := suite.do(http.MethodPost, "/api/v1/master/users", suite.admin, dto.CreateUserRequest{
		Username: "newbie", Password: "secret1", DisplayName: "Newbie", Role: "SUPERUSER",
	})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
	suite.mockUserService.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateUser_Created() {
	req := dto.CreateUserRequest{
		Username: "newbie", Password: "secret1", DisplayName: "Newbie", Role: "general", DepartmentID: stringPtr(suite.deptA),
	}
	created := &domain.User{UserID: "u-9", Username: "newbie", DisplayName: "Newbie", Role: domain.RoleGeneral, DepartmentID: stringPtr(suite.deptA), IsActive: true}
	suite.mockUserService.On("CreateUser", mock.Anything, suite.admin.Actor(), req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/master/users", suite.admin, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.decodeData(w, &resp)
	suite.Equal("u-9", resp.UserID)
	suite.Equal(domain.RoleGeneral, resp.Role)
}

func (suite *HandlerTestSuite) TestDeactivateUser_Self() {
	suite.mockUserService.On("DeactivateUser", mock.Anything, suite.admin.Actor(), suite.admin.UserID).
		Return(apperrors.NewValidationFailedError("you cannot deactivate your own account")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/master/users/"+suite.admin.UserID, suite.admin, nil)

	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}
