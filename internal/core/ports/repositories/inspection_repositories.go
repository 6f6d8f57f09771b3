package repositories

import (
	"context"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// InspectionReader defines read operations for inspections
type InspectionReader interface {
	FindInspectionByID(ctx context.Context, inspectionID string) (*domain.Inspection, error)

	// ListInspectionsByNotification returns inspections ordered by inspection date.
	ListInspectionsByNotification(ctx context.Context, notificationID string) ([]domain.Inspection, error)
}

// InspectionWriter defines write operations for inspections
type InspectionWriter interface {
	SaveInspection(ctx context.Context, inspection domain.Inspection) error
	UpdateInspection(ctx context.Context, inspection domain.Inspection) error
	DeleteInspection(ctx context.Context, inspectionID string) error
}

// InspectionRepositoryFacade combines all inspection repository interfaces
type InspectionRepositoryFacade interface {
	InspectionReader
	InspectionWriter
}
