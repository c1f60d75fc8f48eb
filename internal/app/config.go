package app

import (
	_ "embed"

	"github.com/omeyang/xaop/pkg/config/xconf"
)

//go:embed default.yaml
var defaultConfig []byte

// LoadConfig 读取配置文件，path 为空时使用内置的示例配置
func LoadConfig(path string) (xconf.Config, xconf.Settings, error) {
	var (
		cfg xconf.Config
		err error
	)
	if path == "" {
		cfg, err = xconf.NewFromBytes(defaultConfig, xconf.FormatYAML)
	} else {
		cfg, err = xconf.New(path)
	}
	if err != nil {
		return nil, xconf.Settings{}, err
	}
	s, err := xconf.LoadSettings(cfg)
	if err != nil {
		return nil, xconf.Settings{}, err
	}
	return cfg, s, nil
}
