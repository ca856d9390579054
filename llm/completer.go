package llm

import "context"

// Completer 是一次无状态的模型调用
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleterFunc 将普通函数适配为 Completer
type CompleterFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Complete 实现 Completer
func (f CompleterFunc) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
