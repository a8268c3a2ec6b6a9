package get_venue_rules

import (
	"context"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/rules/models"
)

type RulesService interface {
	List(ctx context.Context, venueID int64, actor domain.Actor) (*models.RulesListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
