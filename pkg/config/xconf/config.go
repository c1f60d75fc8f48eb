package xconf

import "github.com/knadh/koanf/v2"

// Format 配置格式
type Format string

const (
	// FormatYAML YAML（.yaml / .yml）
	FormatYAML Format = "yaml"
	// FormatJSON JSON（.json）
	FormatJSON Format = "json"
)

// Config 配置源
//
// 基础读取直接使用 Client() 返回的 koanf 实例。
type Config interface {
	// Client 返回当前的 koanf 实例，Reload 后旧实例仍可读但不再更新
	Client() *koanf.Koanf

	// Unmarshal 反序列化 path 下的配置，path 为空时反序列化全部
	Unmarshal(path string, target any) error

	// Reload 重新读取文件，失败时保留旧配置
	Reload() error

	// Path 配置文件路径，字节数据创建的为空
	Path() string

	Format() Format
}
