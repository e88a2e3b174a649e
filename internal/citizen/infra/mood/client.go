package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Rialto/internal/citizen/app"
	"Rialto/internal/citizen/domain"
	"Rialto/internal/shared/serverconfig"
)

// Client 调外部心境计算服务。服务不可用时由装配器兜底中性心境，
// 这里只负责如实上报失败。
type Client struct {
	base  string
	httpc *http.Client
}

func New(cfg serverconfig.MoodConfig) *Client {
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  cfg.BaseURL,
		httpc: &http.Client{Timeout: timeout},
	}
}

type computeRequest struct {
	Username      string          `json:"username"`
	SocialClass   string          `json:"social_class"`
	Ducats        float64         `json:"ducats"`
	Influence     float64         `json:"influence"`
	AtStructure   string          `json:"at_structure,omitempty"`
	Weather       *domain.Weather `json:"weather,omitempty"`
	ProblemCount  int             `json:"problem_count"`
	ContractCount int             `json:"contract_count"`
	LoanCount     int             `json:"loan_count"`
}

func (c *Client) ComputeMood(ctx context.Context, mctx app.MoodContext) (*domain.Mood, error) {
	req := computeRequest{
		Username:      mctx.Citizen.Username,
		SocialClass:   mctx.Citizen.SocialClass,
		Ducats:        mctx.Citizen.Ducats,
		Influence:     mctx.Citizen.Influence,
		Weather:       mctx.Weather,
		ProblemCount:  mctx.ProblemCount,
		ContractCount: mctx.ContractCount,
		LoanCount:     mctx.LoanCount,
	}
	if mctx.AtStructure != nil {
		req.AtStructure = mctx.AtStructure.Name
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/mood", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mood service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mood service: status %d", resp.StatusCode)
	}

	var m domain.Mood
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("mood service: decode: %w", err)
	}
	return &m, nil
}
