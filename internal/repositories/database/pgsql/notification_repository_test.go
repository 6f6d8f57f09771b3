package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildNotificationWhere_Empty(t *testing.T) {
	where, args := buildNotificationWhere(domain.NotificationFilter{Limit: 20})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildNotificationWhere_AllFilters(t *testing.T) {
	scope := "dept-a"
	dept := "dept-b"
	status := "受付"
	keyword := "50%_off"
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	where, args := buildNotificationWhere(domain.NotificationFilter{
		ScopeDepartmentID: &scope,
		DepartmentID:      &dept,
		Status:            &status,
		FromDate:          &from,
		ToDate:            &to,
		Keyword:           &keyword,
	})

	assert.Equal(t,
		" WHERE (n.receiving_department_id = $1 OR n.processing_department_id = $2)"+
			" AND (n.receiving_department_id = $3 OR n.processing_department_id = $4)"+
			" AND n.current_status = $5"+
			" AND n.notification_date >= $6"+
			" AND n.notification_date <= $7"+
			" AND (n.property_name ILIKE $8 OR n.content ILIKE $9)",
		where)
	assert.Equal(t, []any{scope, scope, dept, dept, status, from, to, `%50\%\_off%`, `%50\%\_off%`}, args)
}
