package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultSettingsValid 测试默认设置自洽。
func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("默认设置应通过校验: %v", err)
	}
	if s.Mode != ModeGoal {
		t.Errorf("默认模式应为 %s, 得到 %s", ModeGoal, s.Mode)
	}
}

// TestValidate 测试各字段的取值校验。
func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Mode = "flight"
	if err := s.Validate(); err == nil {
		t.Errorf("未知环境模式应返回错误")
	}

	s = DefaultSettings()
	s.StateDesign = "attention"
	if err := s.Validate(); err == nil {
		t.Errorf("未知观测设计应返回错误")
	}

	s = DefaultSettings()
	s.RespawnPolicy = "bounce"
	if err := s.Validate(); err == nil {
		t.Errorf("未知重生策略应返回错误")
	}

	s = DefaultSettings()
	s.NTSMax = -2
	if err := s.Validate(); err == nil {
		t.Errorf("负的目标船上限应返回错误")
	}

	s = DefaultSettings()
	s.NTSRandom = true
	s.NTSIncreasing = true
	if err := s.Validate(); err == nil {
		t.Errorf("随机与课程递增互斥, 应返回错误")
	}
}

// TestFromYaml 测试从 YAML 文件载入设置，未出现的键保持默认值。
func TestFromYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	yaml := `
mode: path
ntsMax: 5
thrustControl: true
seed: 77
pathWeights:
  ye: 2.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}

	s, err := FromYaml(path)
	if err != nil {
		t.Fatalf("载入配置失败: %v", err)
	}

	if s.Mode != ModePath {
		t.Errorf("期望模式 path, 得到 %s", s.Mode)
	}
	if s.NTSMax != 5 {
		t.Errorf("期望目标船上限 5, 得到 %d", s.NTSMax)
	}
	if !s.ThrustControl {
		t.Errorf("推力控制应开启")
	}
	if s.Seed != 77 {
		t.Errorf("期望种子 77, 得到 %d", s.Seed)
	}
	if s.PathWeights.Ye != 2.5 {
		t.Errorf("期望横偏权重 2.5, 得到 %g", s.PathWeights.Ye)
	}
	// 未出现的键保持默认值
	if s.StateDesign != StateDesignRecDQN {
		t.Errorf("未配置的观测设计应保持默认, 得到 %s", s.StateDesign)
	}
	if s.PathWeights.Ce != 1.0 {
		t.Errorf("未配置的权重应保持默认, 得到 %g", s.PathWeights.Ce)
	}
}

// TestFromYamlErrors 测试载入失败的两种情形: 文件缺失与取值非法。
func TestFromYamlErrors(t *testing.T) {
	if _, err := FromYaml(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("文件缺失应返回错误")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("mode: teleport\n"), 0644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}
	if _, err := FromYaml(path); err == nil {
		t.Errorf("非法取值应返回错误")
	}
}
