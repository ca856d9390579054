// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package monitor 记录每次生成的耗时、多边形数与内存估算，并按
"<type>-<culture>" 维度保存有界历史。

# 阈值与信号

每次 RecordGeneration 都会与当前 Thresholds 比较，达到或超过阈值
即视为超限：返回的 Evaluation 带有超限指标与优化建议，并同步通知
该 key 上注册的 OptimizationCallback。回调中的 panic 会被捕获并记录。

# 报告

Report 给出每个 key 与整体的平均值；DetailedReport 针对最近
TrendWindow 条样本计算最小二乘趋势、最差/最佳样本与一致性分数。

# 持久化

Export/Import 以 JSON 交换历史数据，SaveSnapshot/RestoreSnapshot 通过
SnapshotStore（例如 Redis）保存快照。StartReporting 按 cron 表达式
周期性输出摘要日志。
*/
package monitor
