package simulation

import (
	"math"
	"testing"
)

// newTestVessel 构造一条用于会遇判定测试的船舶，横向速度与角速度为零，
// 此时航迹向等于航向、合速度等于纵向速度。
func newTestVessel(n, e, psi, u float64) *Vessel {
	return NewVessel(0, KVLCC2(), n, e, psi, u, 0, 0, 0, 0.5, 10000, 10000)
}

// TestClassifySituation 按字面角度窗口逐一验证五类会遇局面。
func TestClassifySituation(t *testing.T) {
	const sight = 100.0
	const dist = 50.0

	// 把目标船放在本船 (朝北) 相对方位 bngDeg、距离 dist 处
	tsAt := func(bngDeg, headDeg, u float64) *Vessel {
		bng := DTR(bngDeg)
		return newTestVessel(dist*math.Cos(bng), dist*math.Sin(bng), DTR(headDeg), u)
	}

	cases := []struct {
		name string
		ts   *Vessel
		want Situation
	}{
		// 对遇: 正前方，航向相反
		{"对遇", tsAt(0, 180, 1.0), SituationHeadOn},
		// 对遇窗口的字面边界: 方位 5°、交叉角 185° 仍判对遇
		{"对遇边界", tsAt(5, 185, 1.0), SituationHeadOn},
		// 右舷小角交叉: 方位 (5°, 45°]，交叉角 (185°, 210°]
		{"右舷小角交叉", tsAt(20, 200, 1.0), SituationCrossSmall},
		{"右舷小角交叉边界", tsAt(45, 210, 1.0), SituationCrossSmall},
		// 右舷大角交叉: 方位 (45°, 112.5°]，交叉角 (210°, 292.5°]
		{"右舷大角交叉", tsAt(90, 250, 1.0), SituationCrossLarge},
		{"右舷大角交叉边界", tsAt(112.5, 292.5, 1.0), SituationCrossLarge},
		// 左舷交叉: 方位 [247.5°, 355°]，交叉角 [67.5°, 175°]
		{"左舷交叉", tsAt(270, 120, 1.0), SituationCrossPort},
		{"左舷交叉边界", tsAt(247.5, 67.5, 1.0), SituationCrossPort},
		// 窗口之外: 方位 50° 配小角交叉的交叉角，不属于任何局面
		{"窗口之外", tsAt(50, 200, 1.0), SituationNone},
	}

	os := newTestVessel(0, 0, 0, 1.0)
	for _, c := range cases {
		if got := ClassifySituation(os, c.ts, sight); got != c.want {
			t.Errorf("%s: 期望 %v, 得到 %v", c.name, c.want, got)
		}
	}
}

// TestClassifyOvertaking 测试追越局面: 本船在目标船艉向扇区内，
// 航向大致相同，且在目标航向上的分速更大。
func TestClassifyOvertaking(t *testing.T) {
	os := newTestVessel(0, 0, 0, 1.0)
	ts := newTestVessel(50, 0, 0, 0.5) // 正前方的慢船，同向

	if got := ClassifySituation(os, ts, 100); got != SituationOvertaking {
		t.Fatalf("期望追越局面, 得到 %v", got)
	}

	// 目标船更快时不构成追越
	fast := newTestVessel(50, 0, 0, 2.0)
	if got := ClassifySituation(os, fast, 100); got == SituationOvertaking {
		t.Errorf("目标船更快时不应判为追越, 得到 %v", got)
	}
}

// TestClassifyOutOfSight 测试视距之外的目标船一律判为无局面。
func TestClassifyOutOfSight(t *testing.T) {
	os := newTestVessel(0, 0, 0, 1.0)
	ts := newTestVessel(150, 0, math.Pi, 1.0) // 标准对遇位形，但距离超出视距

	if got := ClassifySituation(os, ts, 100); got != SituationNone {
		t.Errorf("视距外应判为无局面, 得到 %v", got)
	}
	// 拉近到视距内应恢复对遇判定
	ts.N = 50
	if got := ClassifySituation(os, ts, 100); got != SituationHeadOn {
		t.Errorf("视距内应判为对遇, 得到 %v", got)
	}
}

// TestSituationString 测试会遇局面的中文名称。
func TestSituationString(t *testing.T) {
	if SituationHeadOn.String() != "对遇" {
		t.Errorf("期望 对遇, 得到 %s", SituationHeadOn.String())
	}
	if SituationNone.String() != "无" {
		t.Errorf("期望 无, 得到 %s", SituationNone.String())
	}
}
