// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package tlsutil 集中管理出站连接的 TLS 设置。

模型服务的 HTTP 客户端和 Redis 快照存储共用同一套配置：
TLS 1.2 起步，TLS 1.2 下只允许 AEAD 密码套件。
*/
package tlsutil
