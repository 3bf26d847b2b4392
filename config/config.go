// C:/workspace/go/Marine-Simulator-Go/config/config.go
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// ===================================================================
//                           运行参数
// ===================================================================

const (
	// DefaultGRPCAddr 是 RL 环境服务的默认监听地址。
	DefaultGRPCAddr = ":50051"

	// DefaultViewerAddr 是可视化 websocket 服务的默认监听地址。
	DefaultViewerAddr = ":8080"

	// ReportDir 是统计报表的输出目录。
	ReportDir = "report"

	// DefaultEpisodes 是基线驾驶模式下默认运行的回合数。
	DefaultEpisodes = 10

	// StepSampleInterval 是逐步统计的采样间隔 (步)。
	StepSampleInterval = 10
)

// ===================================================================
//                           环境设置
// ===================================================================

// 合法的枚举取值。
const (
	ModeGoal = "goal" // 目标导航环境
	ModePath = "path" // 航路跟踪环境

	StateDesignRecDQN  = "recDQN"
	StateDesignMaxRisk = "maxRisk"

	RespawnRespawn = "respawn"
	RespawnMirror  = "mirror"
	RespawnClip    = "clip"
)

// GoalWeights 是目标导航环境的奖励权重。
type GoalWeights struct {
	Dist   float64 `mapstructure:"dist" yaml:"dist"`
	Head   float64 `mapstructure:"head" yaml:"head"`
	Coll   float64 `mapstructure:"coll" yaml:"coll"`
	Colreg float64 `mapstructure:"colreg" yaml:"colreg"`
	Comf   float64 `mapstructure:"comf" yaml:"comf"`
}

// PathWeights 是航路跟踪环境的奖励权重。
type PathWeights struct {
	Ye    float64 `mapstructure:"ye" yaml:"ye"`
	Ce    float64 `mapstructure:"ce" yaml:"ce"`
	Coll  float64 `mapstructure:"coll" yaml:"coll"`
	Comf  float64 `mapstructure:"comf" yaml:"comf"`
	Speed float64 `mapstructure:"speed" yaml:"speed"`
}

// EnvSettings 封装所有可以从外部 YAML 配置的环境参数。
// 这样做可以使构造函数的签名保持整洁，并易于未来扩展。
type EnvSettings struct {
	Mode          string `mapstructure:"mode" yaml:"mode"`
	StateDesign   string `mapstructure:"stateDesign" yaml:"stateDesign"`
	RespawnPolicy string `mapstructure:"respawnPolicy" yaml:"respawnPolicy"`

	NTSMax        int  `mapstructure:"ntsMax" yaml:"ntsMax"`
	NTSRandom     bool `mapstructure:"ntsRandom" yaml:"ntsRandom"`
	NTSIncreasing bool `mapstructure:"ntsIncreasing" yaml:"ntsIncreasing"`

	// ThrustControl 仅对航路跟踪环境生效: 动作向量扩展为 2 维。
	ThrustControl bool `mapstructure:"thrustControl" yaml:"thrustControl"`

	Seed int64 `mapstructure:"seed" yaml:"seed"`

	GoalWeights GoalWeights `mapstructure:"goalWeights" yaml:"goalWeights"`
	PathWeights PathWeights `mapstructure:"pathWeights" yaml:"pathWeights"`
}

// DefaultSettings 返回目标导航环境的默认设置。
func DefaultSettings() EnvSettings {
	return EnvSettings{
		Mode:          ModeGoal,
		StateDesign:   StateDesignRecDQN,
		RespawnPolicy: RespawnRespawn,
		NTSMax:        3,
		Seed:          1,
		GoalWeights:   GoalWeights{Dist: 1, Head: 1, Coll: 1, Colreg: 1, Comf: 1},
		PathWeights:   PathWeights{Ye: 1, Ce: 1, Coll: 1, Comf: 1, Speed: 1},
	}
}

// Validate 检查设置的取值是否合法。
func (s *EnvSettings) Validate() error {
	switch s.Mode {
	case ModeGoal, ModePath:
	default:
		return fmt.Errorf("未知的环境模式 %q (合法值: %s, %s)", s.Mode, ModeGoal, ModePath)
	}

	switch s.StateDesign {
	case StateDesignRecDQN, StateDesignMaxRisk:
	default:
		return fmt.Errorf("未知的观测设计 %q (合法值: %s, %s)", s.StateDesign, StateDesignRecDQN, StateDesignMaxRisk)
	}

	switch s.RespawnPolicy {
	case RespawnRespawn, RespawnMirror, RespawnClip:
	default:
		return fmt.Errorf("未知的重生策略 %q (合法值: %s, %s, %s)", s.RespawnPolicy, RespawnRespawn, RespawnMirror, RespawnClip)
	}

	if s.NTSMax < 0 {
		return fmt.Errorf("目标船数量上限不能为负: %d", s.NTSMax)
	}
	if s.NTSRandom && s.NTSIncreasing {
		return fmt.Errorf("ntsRandom 与 ntsIncreasing 互斥，不能同时开启")
	}
	return nil
}

// FromYaml 从 YAML 文件载入环境设置。文件中未出现的键保持默认值。
func FromYaml(path string) (*EnvSettings, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	settings := DefaultSettings()
	if err := vp.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}
