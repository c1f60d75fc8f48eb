// Package xconf 加载 xaop 的运行配置，基于 koanf。
//
// 两层 API：
//
//   - [Config]：文件或字节数据上的 koanf 包装（YAML/JSON），并发安全的 Reload 与 Unmarshal；
//   - [Settings]：调用树日志、替身策略与自动包装规则的领域配置，[LoadSettings] 带默认值与校验。
//
// # 热重载
//
// [Watch] 基于 fsnotify 监视配置文件所在目录（兼容编辑器的原子写入），防抖后 Reload 并回调。
// 只有运行期可变的项（如 trace.level）适合热应用；匹配规则与已生成的替身在启动后不变。
//
//	cfg, _ := xconf.New("xaop.yaml")
//	w, _ := xconf.Watch(cfg, func(c xconf.Config, err error) { ... })
//	w.StartAsync()
//	defer w.Stop()
package xconf
