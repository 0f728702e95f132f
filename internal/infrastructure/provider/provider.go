// Package provider содержит адаптеры внешнего поискового провайдера товаров.
// Адаптер прячет провайдер-специфичные форматы ответа: наружу уходят только
// канонизированные позиции с ценами в центах.
package provider

import (
	"github.com/voicecart/search-backend/internal/cfg"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/logger"
)

// New выбирает реализацию провайдера по конфигурации: при заданном BaseURL —
// HTTP-провайдер, иначе — резервный генератор каталога.
func New(cfg *cfg.ProviderCfg, logger logger.Logger) usecase.SearchProvider {
	if cfg.BaseURL == "" {
		logger.Warnf("PROVIDER_BASE_URL is not set, using fallback catalog provider")
		return NewFallbackProvider()
	}

	return NewHTTPProvider(cfg, logger)
}
