// =============================================================================
// OpenAI 兼容 Completer
// =============================================================================
// 通过 /v1/chat/completions 完成一次非流式调用，仅返回首个选项的文本。
// =============================================================================

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/internal/tlsutil"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

// Config 描述一个 OpenAI 兼容服务
type Config struct {
	// APIKey 鉴权密钥
	APIKey string
	// BaseURL 服务基础地址，例如 "https://api.openai.com"
	BaseURL string
	// Model 模型名称
	Model string
	// Temperature 温度
	Temperature float64
	// MaxTokens 最大输出 token 数
	MaxTokens int
	// Timeout HTTP 客户端超时，默认 30s
	Timeout time.Duration
	// EndpointPath 默认 "/v1/chat/completions"
	EndpointPath string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		FinishReason string      `json:"finish_reason"`
		Message      chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAICompatible 是基于 HTTP 的 Completer 实现
type OpenAICompatible struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewOpenAICompatible 创建 Completer
func NewOpenAICompatible(cfg Config, logger *zap.Logger) *OpenAICompatible {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/v1/chat/completions"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAICompatible{
		cfg:    cfg,
		client: tlsutil.HTTPClient(cfg.Timeout),
		logger: logger.With(zap.String("component", "llm_completer")),
	}
}

// Complete 实现 Completer
func (p *OpenAICompatible) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:      p.cfg.MaxTokens,
		Temperature:    p.cfg.Temperature,
		ResponseFormat: map[string]any{"type": "json_object"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", types.NewError(types.ErrAITimeout, "completion timed out").WithCause(err).WithRetryable(true)
		}
		return "", types.NewError(types.ErrAIUnavailable, "completion request failed").WithCause(err).WithRetryable(true)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := readErrorMessage(resp.Body)
		p.logger.Warn("completion rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return "", mapHTTPError(resp.StatusCode, msg)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", types.NewError(types.ErrAIInvalidResponse, "undecodable completion response").WithCause(err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", types.NewError(types.ErrAIInvalidResponse, "completion has no content")
	}

	p.logger.Debug("completion finished",
		zap.String("model", out.Model),
		zap.Duration("latency", time.Since(start)))
	return out.Choices[0].Message.Content, nil
}

func (p *OpenAICompatible) endpoint() string {
	return strings.TrimRight(p.cfg.BaseURL, "/") + p.cfg.EndpointPath
}

// mapHTTPError 将 HTTP 状态码映射为带重试标记的 types.Error
func mapHTTPError(status int, msg string) *types.Error {
	switch {
	case status == http.StatusTooManyRequests:
		return types.Errorf(types.ErrAIUnavailable, "rate limited: %s", msg).WithRetryable(true)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return types.Errorf(types.ErrAITimeout, "upstream timeout: %s", msg).WithRetryable(true)
	case status >= 500:
		return types.Errorf(types.ErrAIUnavailable, "upstream error %d: %s", status, msg).WithRetryable(true)
	default:
		return types.Errorf(types.ErrAIUnavailable, "request rejected %d: %s", status, msg)
	}
}

// readErrorMessage 尝试解析 JSON 错误响应，失败则回退到原始文本
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return "failed to read error response"
	}
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		if errResp.Error.Type != "" {
			return fmt.Sprintf("%s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return errResp.Error.Message
	}
	return strings.TrimSpace(string(data))
}
