package rules

import (
	"github.com/m04kA/venuebook/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
