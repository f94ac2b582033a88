package booking

import "github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: *dbmetrics.DB или транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
