package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренняя ошибка диспетчера: попытка перевести запись поиска
	// в недопустимый статус — это дефект, а не пользовательская ситуация.
	ErrInvalidStateTransition = fmt.Errorf("invalid query status transition")

	// Ошибки внешнего поискового провайдера. Наружу не пробрасываются:
	// диспетчер конвертирует их в статус failed у записи поиска.
	ErrProviderUnavailable = fmt.Errorf("search provider unavailable")
	ErrProviderBadPayload  = fmt.Errorf("search provider returned malformed payload")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrEmptySearchText     = fmt.Errorf("search text is required")
	ErrInvalidPriceRange   = fmt.Errorf("min price must not exceed max price")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrInvalidRating       = fmt.Errorf("rating must be between 0 and 5")
	ErrInvalidStatusFilter = fmt.Errorf("unknown query status")
	ErrUnknownRankStrategy = fmt.Errorf("unknown rank strategy")
	ErrMissingFields       = fmt.Errorf("missing required fields")

	// 401 / 403
	ErrUnauthenticated = fmt.Errorf("caller identity is required")
	ErrForbidden       = fmt.Errorf("access denied")

	// 404 Not Found
	ErrQueryNotFound     = fmt.Errorf("query not found")
	ErrResultNotFound    = fmt.Errorf("result not found")
	ErrSavedItemNotFound = fmt.Errorf("saved item not found")

	// 409 Conflict
	ErrQueryNotTerminal = fmt.Errorf("query is still in progress")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки зеркалирования изображений
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
