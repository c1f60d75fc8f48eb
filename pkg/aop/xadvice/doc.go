// Package xadvice 提供常用的环绕通知（拦截器），可与 xlogtrace 的调用树日志组合在同一条链上。
//
//   - [Timing]：记录调用耗时，超过阈值时告警
//   - [Cache]：基于 golang-lru expirable 的结果缓存，只缓存成功结果
//   - [Retry]：基于 retry-go 的失败重试
//   - [Breaker]：基于 gobreaker 的按方法熔断
//
// 链顺序决定语义。例如 Retry 位于调用树拦截器外层时，每次尝试各自产生一对进入/退出行；
// 位于内层时，整个重试过程只产生一对。
//
// 所有通知都接受 pointcut 选项，未匹配的调用直接透传。
package xadvice
