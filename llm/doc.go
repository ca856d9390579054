// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 llm 提供请求分析器使用的最小模型调用层。

# 核心接口

  - [Completer]：给定 system / user 两段提示词，返回模型的原始文本输出
  - [CompleterFunc]：函数适配器，便于测试与组合

# 实现

  - [OpenAICompatible]：基于 OpenAI 兼容的 /v1/chat/completions 接口，
    Bearer 鉴权，TLS 1.2+ 仅 AEAD 密码套件

HTTP 错误按状态码映射为 types.Error：429 与 5xx 可重试，
上下文超时映射为 AI_TIMEOUT。
*/
package llm
