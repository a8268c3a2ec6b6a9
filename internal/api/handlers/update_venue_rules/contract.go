package update_venue_rules

import (
	"context"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/rules/models"
)

type RulesService interface {
	Upsert(ctx context.Context, req *models.UpsertRulesRequest) (*models.RulesResponse, error)
	Delete(ctx context.Context, venueID int64, courtID *int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
