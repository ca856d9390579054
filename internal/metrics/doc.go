// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的生成管线指标采集能力，覆盖
生成、AI 调用、缓存与性能阈值四个维度。

# 概述

Collector 通过 promauto.With 注册到调用方提供的 Registerer，
未提供时使用默认 Registry。所有指标按 namespace 隔离。

# 主要能力

  - 生成指标：按 type/culture/status 计数，耗时、多边形数与内存估算直方图，
    降级产物按原因计数。
  - AI 指标：按 operation/outcome 计数与耗时直方图。
  - 缓存指标：命中、未命中与条目数。
  - 阈值指标：按 key/metric 统计超限次数。
*/
package metrics
