package spots

import "github.com/m04kA/SMC-CarSpot/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
