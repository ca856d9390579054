// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package pipeline 编排参数化生成流程：需求分析、参数清洗与文化校正、
指纹缓存、模板几何生成、材质应用、真实性评分以及性能监控。

# 缓存与去重

每个清洗后的参数集由 parametric.Fingerprint 计算指纹。命中 LRU 时直接
返回共享结果（状态 cached）；未命中时同一指纹的并发请求通过
singleflight 合并为一次生成。降级结果不进入缓存。

# 失败语义

单件生成要么得到完整结果，要么得到按参数尺寸生成的占位盒（状态
fallback）。批量生成总是返回与请求件数相同数量的结果，只有上下文
取消时才返回错误。
*/
package pipeline
