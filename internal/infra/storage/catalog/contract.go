package catalog

import "github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
