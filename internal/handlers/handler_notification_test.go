package handlers_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) sampleNotification(status string) *domain.Notification {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Notification{
		NotificationID:         "n-1",
		NotificationTypeID:     "type-1",
		NotificationDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		ReceivingDepartmentID:  suite.deptA,
		ProcessingDepartmentID: suite.deptA,
		PropertyName:           stringPtr("Tower 3"),
		CurrentStatus:          status,
		AuditFields:            domain.NewAuditFields(suite.general.UserID, now),
	}
}

func (suite *HandlerTestSuite) TestListNotifications_PassesActorAndParams() {
	n := suite.sampleNotification("受付")
	suite.mockNotificationService.On("ListNotifications",
		mock.Anything,
		suite.general.Actor(),
		mock.MatchedBy(func(p dto.ListNotificationsParams) bool {
			return p.Page == 2 && p.Limit == 1 && p.Status == "受付" && p.FromDate == "2025-04-01"
		}),
	).Return([]domain.Notification{*n}, int64(3), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/notifications?page=2&limit=1&status=%E5%8F%97%E4%BB%98&fromDate=2025-04-01", suite.general, nil)

	suite.Equal(http.StatusOK, w.Code)
	var page dto.PageResponse[dto.NotificationResponse]
	suite.decodeData(w, &page)
	suite.Len(page.Items, 1)
	suite.Equal("n-1", page.Items[0].NotificationID)
	suite.Equal("2025-04-01", page.Items[0].NotificationDate)
	suite.Equal(int64(3), page.Pagination.Total)
	suite.Equal(2, page.Pagination.Page)
	suite.Equal(3, page.Pagination.TotalPages)
}

func (suite *HandlerTestSuite) TestListNotifications_DefaultsAndBadQuery() {
	suite.mockNotificationService.On("ListNotifications",
		mock.Anything,
		suite.senior.Actor(),
		mock.MatchedBy(func(p dto.ListNotificationsParams) bool { return p.Page == 1 && p.Limit == 20 }),
	).Return([]domain.Notification{}, int64(0), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/notifications", suite.senior, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true,"data":{"items":[],"pagination":{"total":0,"page":1,"limit":20,"totalPages":0}}}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/notifications?limit=500", suite.senior, nil)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = suite.do(http.MethodGet, "/api/v1/notifications?fromDate=04/01/2025", suite.senior, nil)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (suite *HandlerTestSuite) TestCreateNotification_Created() {
	req := dto.CreateNotificationRequest{
		NotificationTypeID:     "type-1",
		NotificationDate:       "2025-04-01",
		ReceivingDepartmentID:  suite.deptA,
		ProcessingDepartmentID: suite.deptA,
		PropertyName:           stringPtr("Tower 3"),
		CurrentStatus:          "受付",
	}
	suite.mockNotificationService.On("CreateNotification", mock.Anything, suite.general.Actor(),
		mock.MatchedBy(func(r dto.CreateNotificationRequest) bool {
			return r.NotificationTypeID == "type-1" && r.CurrentStatus == "受付"
		}),
	).Return(suite.sampleNotification("受付"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/notifications", suite.general, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.NotificationResponse
	suite.decodeData(w, &resp)
	suite.Equal("受付", resp.CurrentStatus)
	suite.Equal(suite.general.UserID, resp.CreatedBy)
}

func (suite *HandlerTestSuite) TestCreateNotification_BindingErrors() {
	w := suite.do(http.MethodPost, "/api/v1/notifications", suite.general, map[string]any{
		"notificationTypeID": "type-1",
	})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = suite.do(http.MethodPost, "/api/v1/notifications", suite.general, dto.CreateNotificationRequest{
		NotificationTypeID:     "type-1",
		NotificationDate:       "2025-04-01",
		ReceivingDepartmentID:  suite.deptA,
		ProcessingDepartmentID: suite.deptA,
		CurrentStatus:          "   ",
	})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
	suite.mockNotificationService.AssertNotCalled(suite.T(), "CreateNotification", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestServiceErrorsMapToEnvelopeCodes() {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.NewForbiddenError("notification is outside your department"), http.StatusForbidden, "FORBIDDEN"},
		{apperrors.NewNotFoundError("notification not found"), http.StatusNotFound, "NOT_FOUND"},
		{apperrors.NewValidationFailedError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperrors.NewConflictError("exists"), http.StatusConflict, "CONFLICT"},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		suite.mockNotificationService.On("GetNotification", mock.Anything, suite.general.Actor(), "n-1").
			Return(nil, tc.err).Once()

		w := suite.do(http.MethodGet, "/api/v1/notifications/n-1", suite.general, nil)

		suite.assertError(w, tc.status, tc.code)
		suite.NotContains(w.Body.String(), "connection reset")
	}
}

func (suite *HandlerTestSuite) TestForbiddenMessageIsReturned() {
	suite.mockNotificationService.On("GetNotification", mock.Anything, suite.general.Actor(), "n-1").
		Return(nil, apperrors.NewForbiddenError("notification is outside your department")).Once()

	w := suite.do(http.MethodGet, "/api/v1/notifications/n-1", suite.general, nil)

	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")
	suite.Contains(w.Body.String(), "outside your department")
}

func (suite *HandlerTestSuite) TestChangeStatus() {
	updated := suite.sampleNotification("処理中")
	suite.mockNotificationService.On("ChangeStatus", mock.Anything, suite.senior.Actor(), "n-1",
		dto.ChangeStatusRequest{Status: "処理中", Comment: stringPtr("開始")},
	).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/notifications/n-1/status", suite.senior,
		dto.ChangeStatusRequest{Status: "処理中", Comment: stringPtr("開始")})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.NotificationResponse
	suite.decodeData(w, &resp)
	suite.Equal("処理中", resp.CurrentStatus)
}

func (suite *HandlerTestSuite) TestChangeStatus_ForbiddenForGeneral() {
	suite.mockNotificationService.On("ChangeStatus", mock.Anything, suite.general.Actor(), "n-1", mock.Anything).
		Return(nil, apperrors.NewForbiddenError("status changes require SENIOR or above")).Once()

	w := suite.do(http.MethodPut, "/api/v1/notifications/n-1/status", suite.general,
		dto.ChangeStatusRequest{Status: "処理中"})

	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")
}

func (suite *HandlerTestSuite) TestUpdateNotification() {
	suite.mockNotificationService.On("UpdateNotification", mock.Anything, suite.general.Actor(), "n-1",
		mock.MatchedBy(func(r dto.UpdateNotificationRequest) bool {
			return r.PropertyName != nil && *r.PropertyName == "Tower 4" && r.CurrentStatus == nil
		}),
	).Return(suite.sampleNotification("受付"), nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/notifications/n-1", suite.general,
		map[string]any{"propertyName": "Tower 4"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteNotification() {
	suite.mockNotificationService.On("DeleteNotification", mock.Anything, suite.admin.Actor(), "n-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/notifications/n-1", suite.admin, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestListHistory() {
	from := "受付"
	history := []domain.NotificationHistory{
		{HistoryID: "h-2", NotificationID: "n-1", StatusFrom: &from, StatusTo: "処理中", ChangedBy: suite.senior.UserID, Comment: stringPtr("開始")},
		{HistoryID: "h-1", NotificationID: "n-1", StatusTo: "受付", ChangedBy: suite.general.UserID},
	}
	suite.mockNotificationService.On("ListHistory", mock.Anything, suite.general.Actor(), "n-1").Return(history, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/notifications/n-1/history", suite.general, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.HistoryResponse
	suite.decodeData(w, &resp)
	suite.Require().Len(resp, 2)
	suite.Equal("h-2", resp[0].HistoryID)
	suite.Nil(resp[1].StatusFrom)
}

func (suite *HandlerTestSuite) TestListNotificationInspections() {
	inspections := []domain.Inspection{{
		InspectionID:           "i-1",
		NotificationID:         "n-1",
		InspectionDate:         time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		InspectionDepartmentID: suite.deptA,
		Status:                 domain.DefaultInspectionStatus,
	}}
	suite.mockInspectionService.On("ListInspections", mock.Anything, suite.senior.Actor(), "n-1").Return(inspections, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/notifications/n-1/inspections", suite.senior, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.InspectionResponse
	suite.decodeData(w, &resp)
	suite.Require().Len(resp, 1)
	suite.Equal("2025-04-10", resp[0].InspectionDate)
	suite.Equal(domain.DefaultInspectionStatus, resp[0].Status)
}

func (suite *HandlerTestSuite) TestInspectionRoutes() {
	created := &domain.Inspection{
		InspectionID:           "i-1",
		NotificationID:         "n-1",
		InspectionDate:         time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		InspectionDepartmentID: suite.deptA,
		Status:                 domain.DefaultInspectionStatus,
	}
	suite.mockInspectionService.On("CreateInspection", mock.Anything, suite.senior.Actor(),
		mock.MatchedBy(func(r dto.CreateInspectionRequest) bool { return r.NotificationID == "n-1" }),
	).Return(created, nil).Once()
	suite.mockInspectionService.On("DeleteInspection", mock.Anything, suite.general.Actor(), "i-1").
		Return(apperrors.NewForbiddenError("inspection changes require SENIOR or above")).Once()

	w := suite.do(http.MethodPost, "/api/v1/inspections", suite.senior, dto.CreateInspectionRequest{
		NotificationID:         "n-1",
		InspectionDate:         "2025-04-10",
		InspectionDepartmentID: suite.deptA,
	})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/inspections/i-1", suite.general, nil)
	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")
}
