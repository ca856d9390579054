// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 cache 提供进程内有界 LRU 缓存与基于 Redis 的快照存储。

# 核心类型

  - LRU：泛型最近最少使用缓存，双向链表实现 O(1) 的读写与淘汰，
    支持可选 TTL，容量在构造时注入。生成结果缓存与材料缓存都基于它。
  - RedisStore：封装 go-redis 客户端，按键前缀保存性能监控快照，
    提供连接检查、后台健康检查、可选 TLS 与优雅关闭。
  - Config：Redis 地址、密码、连接池、快照 TTL 与健康检查间隔。

# 错误语义

ErrCacheMiss 表示键不存在，ErrStoreClosed 表示存储已关闭。
*/
package cache
