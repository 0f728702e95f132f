//go:generate goverter gen github.com/voicecart/search-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/voicecart/search-backend/internal/domain"
)

// QueryConverter преобразует сущности Query между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertQueryStatus
// goverter:map Preferences.MinPriceCents MinPriceCents
// goverter:map Preferences.MaxPriceCents MaxPriceCents
// goverter:map Preferences.MinRating MinRating
// goverter:map Preferences.TargetRetailers TargetRetailers
type QueryConverter interface {
	ToModel(entity *domain.Query) *QueryModel
	ToEntity(model *QueryModel) *domain.Query
	ToArrEntity(models []*QueryModel) []*domain.Query
}

// ResultConverter преобразует сущности Result между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
type ResultConverter interface {
	ToModel(entity *domain.Result) *ResultModel
	ToEntity(model *ResultModel) *domain.Result
	ToArrEntity(models []*ResultModel) []*domain.Result
}

// SavedItemConverter преобразует сущности SavedItem между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
type SavedItemConverter interface {
	ToModel(entity *domain.SavedItem) *SavedItemModel
	ToEntity(model *SavedItemModel) *domain.SavedItem
	ToArrEntity(models []*SavedItemModel) []*domain.SavedItem
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertQueryStatus(s string) domain.QueryStatus {
	return domain.QueryStatus(s)
}
