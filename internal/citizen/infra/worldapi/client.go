package worldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"Rialto/internal/citizen/app"
	"Rialto/internal/citizen/domain"
	"Rialto/internal/shared/serverconfig"
)

// Client 封装世界服务的只读接口：地块几何、建筑资源、坐标反查、
// 贸易快报、天气。一个 base URL 下的五个端点，共用一个 http.Client。
type Client struct {
	base  string
	httpc *http.Client
}

func New(cfg serverconfig.WorldAPIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  cfg.BaseURL,
		httpc: &http.Client{Timeout: timeout},
	}
}

// GetParcel 查地块锚点几何。地块无几何返回 (nil, nil)，快照侧按零容量处理。
func (c *Client) GetParcel(ctx context.Context, parcelID string) (*domain.ParcelGeometry, error) {
	var geom domain.ParcelGeometry
	found, err := c.getJSON(ctx, "/api/parcels/"+url.PathEscape(parcelID)+"/geometry", &geom)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &geom, nil
}

// GetStructureResources 查商业建筑的资源/贸易明细；建筑不存在返回 (nil, nil)。
func (c *Client) GetStructureResources(ctx context.Context, structureID string) (*domain.StructureResources, error) {
	var res domain.StructureResources
	found, err := c.getJSON(ctx, "/api/structures/"+url.PathEscape(structureID)+"/resources", &res)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &res, nil
}

type scanResponse struct {
	Structure *domain.Structure `json:"structure"`
	Citizens  []domain.Citizen  `json:"citizens"`
}

// WhoAndWhatAt 按坐标反查建筑与在场公民。
func (c *Client) WhoAndWhatAt(ctx context.Context, pos domain.Position) (*app.PositionScan, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(pos.Lng, 'f', -1, 64))
	var body scanResponse
	found, err := c.getJSON(ctx, "/api/at?"+q.Encode(), &body)
	if err != nil {
		return nil, err
	}
	if !found {
		return &app.PositionScan{}, nil
	}
	return &app.PositionScan{Structure: body.Structure, Citizens: body.Citizens}, nil
}

type reportsResponse struct {
	Reports []domain.Report `json:"reports"`
}

func (c *Client) ListReports(ctx context.Context) ([]domain.Report, error) {
	var body reportsResponse
	if _, err := c.getJSON(ctx, "/api/reports", &body); err != nil {
		return nil, err
	}
	return body.Reports, nil
}

func (c *Client) Current(ctx context.Context) (*domain.Weather, error) {
	var w domain.Weather
	found, err := c.getJSON(ctx, "/api/weather", &w)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("world api: weather unavailable")
	}
	return &w, nil
}

// getJSON 执行一次 GET 并解码响应；404 返回 (false, nil)，留给各端点自行兜底。
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false, fmt.Errorf("world api %s: %w", path, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("world api %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("world api %s: decode: %w", path, err)
	}
	return true, nil
}
