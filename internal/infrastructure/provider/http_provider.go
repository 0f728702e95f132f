package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
	"github.com/voicecart/search-backend/internal/cfg"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/logger"
)

// maxProviderBody ограничивает размер читаемого ответа провайдера.
const maxProviderBody = 4 << 20

// HTTPProvider — адаптер внешнего поискового API.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	maxResults int
	client     *http.Client
	logger     logger.Logger
}

func NewHTTPProvider(cfg *cfg.ProviderCfg, logger logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (p *HTTPProvider) Name() string {
	return "http"
}

// searchResponse покрывает оба формата ответа: объект с массивом позиций
// под разными именами и голый массив (разбирается отдельно).
type searchResponse struct {
	Items    []json.RawMessage `json:"items"`
	Results  []json.RawMessage `json:"results"`
	Products []json.RawMessage `json:"products"`
}

// Search выполняет запрос к провайдеру и возвращает канонизированные позиции.
// Отбрасываются только позиции с неположительной ценой: ценовые предпочтения
// уходят провайдеру параметрами запроса, но его ответ не фильтруется —
// всё, что провайдер вернул, сохраняется, а фильтры применяются при чтении.
func (p *HTTPProvider) Search(ctx context.Context, req *usecase.ProviderSearchReq) ([]usecase.ProviderItem, error) {
	body, err := p.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	rawItems, err := extractItems(body)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrProviderBadPayload, err))
	}

	items := make([]usecase.ProviderItem, 0, len(rawItems))
	for _, rawData := range rawItems {
		var raw rawItem
		if err := json.Unmarshal(rawData, &raw); err != nil {
			p.logger.Debugf("skipping malformed provider item: %v", err)
			continue
		}

		item, ok := normalizeItem(&raw, p.Name())
		if !ok {
			continue
		}

		items = append(items, item)
		if len(items) >= req.MaxResults {
			break
		}
	}

	return items, nil
}

func (p *HTTPProvider) doRequest(ctx context.Context, req *usecase.ProviderSearchReq) ([]byte, error) {
	endpoint, err := url.Parse(p.baseURL + "/search")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	q := endpoint.Query()
	q.Set("q", req.SearchText)
	q.Set("limit", strconv.Itoa(req.MaxResults))
	if req.MinPriceCents != nil {
		q.Set("min_price", centsToPriceParam(*req.MinPriceCents))
	}
	if req.MaxPriceCents != nil {
		q.Set("max_price", centsToPriceParam(*req.MaxPriceCents))
	}
	endpoint.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: status %d", e.ErrProviderUnavailable, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrProviderUnavailable, err))
	}

	return body, nil
}

// extractItems достаёт массив позиций из любой формы ответа провайдера.
func extractItems(body []byte) ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.Items != nil:
		return resp.Items, nil
	case resp.Results != nil:
		return resp.Results, nil
	case resp.Products != nil:
		return resp.Products, nil
	}

	return nil, fmt.Errorf("response contains no item array")
}

// centsToPriceParam форматирует цену в центах как десятичную строку для query-параметра.
func centsToPriceParam(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
