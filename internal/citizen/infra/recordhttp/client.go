package recordhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"Rialto/internal/shared/recordstore"
	"Rialto/internal/shared/serverconfig"
)

// 记录库单页上限；超过的查询走 offset 翻页。
const pageSize = 100

// Client 是外部字段式记录库的 HTTP 后端。
// 过滤表达式编译成文本公式放进 filterByFormula 参数。
type Client struct {
	base   string
	apiKey string
	httpc  *http.Client
}

func New(cfg serverconfig.RecordStoreConfig) *Client {
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   cfg.BaseURL,
		apiKey: cfg.APIKey,
		httpc:  &http.Client{Timeout: timeout},
	}
}

type selectResponse struct {
	Records []struct {
		ID          string         `json:"id"`
		Fields      map[string]any `json:"fields"`
		CreatedTime time.Time      `json:"createdTime"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// Select 查询一张表。结果超过单页上限时自动翻页，直到取满 MaxRecords 或翻完。
func (c *Client) Select(ctx context.Context, table string, filter recordstore.Expr, opts ...recordstore.SelectOption) ([]recordstore.Record, error) {
	o := recordstore.BuildOptions(opts)
	var out []recordstore.Record
	offset := ""
	for {
		page, next, err := c.fetchPage(ctx, table, filter, o, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if next == "" || (o.MaxRecords > 0 && len(out) >= o.MaxRecords) {
			break
		}
		offset = next
	}
	if o.MaxRecords > 0 && len(out) > o.MaxRecords {
		out = out[:o.MaxRecords]
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, table string, filter recordstore.Expr, o recordstore.SelectOptions, offset string) ([]recordstore.Record, string, error) {
	q := url.Values{}
	if filter != nil {
		q.Set("filterByFormula", recordstore.Formula(filter))
	}
	limit := pageSize
	if o.MaxRecords > 0 && o.MaxRecords < limit {
		limit = o.MaxRecords
	}
	q.Set("maxRecords", strconv.Itoa(limit))
	if o.SortField != "" {
		q.Set("sort[0][field]", o.SortField)
		dir := "asc"
		if o.SortDesc {
			dir = "desc"
		}
		q.Set("sort[0][direction]", dir)
	}
	if offset != "" {
		q.Set("offset", offset)
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.base, url.PathEscape(table), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("record store %s: %w", table, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("record store %s: status %d", table, resp.StatusCode)
	}

	var body selectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("record store %s: decode: %w", table, err)
	}
	recs := make([]recordstore.Record, 0, len(body.Records))
	for _, r := range body.Records {
		recs = append(recs, recordstore.Record{
			ID:        r.ID,
			Fields:    r.Fields,
			CreatedAt: r.CreatedTime,
		})
	}
	return recs, body.Offset, nil
}
