// Package config 提供生成管线的配置管理功能。
//
// 配置按 默认值 → YAML 文件 → 环境变量 的优先级加载，
// HotReloader 在运行时轮询配置文件并把新配置推送给回调，
// 例如更新性能监控阈值。
package config
