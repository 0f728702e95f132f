//go:generate goverter gen github.com/voicecart/search-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/voicecart/search-backend/internal/usecase"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type QueryStatusConverter interface {
	ToRedisModel(info *usecase.QueryStatusInfo) *QueryStatusRedisModel
	ToUseCase(model *QueryStatusRedisModel) *usecase.QueryStatusInfo
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}
