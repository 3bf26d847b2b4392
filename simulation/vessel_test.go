package simulation

import (
	"math"
	"testing"
)

// TestNewVesselWrapsHeading 测试构造时航向角被规范化到 [0, 2π)。
func TestNewVesselWrapsHeading(t *testing.T) {
	ves := NewVessel(1, KVLCC2(), 0, 0, -math.Pi/2, 0, 0, 0, 0, 0.5, 200, 200)
	if math.Abs(ves.Psi-3*math.Pi/2) > 1e-12 {
		t.Errorf("期望航向 3π/2, 得到 %g", ves.Psi)
	}
}

// TestControl 测试离散舵机动作: 增减、饱和与非法动作。
func TestControl(t *testing.T) {
	ves := NewVessel(1, KVLCC2(), 0, 0, 0, 0, 0, 0, 0, 0.5, 200, 200)

	// 1. 增大舵角一步
	if err := ves.Control(ActionIncreaseRudder); err != nil {
		t.Fatalf("合法动作不应出错: %v", err)
	}
	if math.Abs(ves.RudAngle-ves.RudAngleInc) > 1e-12 {
		t.Errorf("期望舵角 %g, 得到 %g", ves.RudAngleInc, ves.RudAngle)
	}

	// 2. 连续增大到饱和
	for i := 0; i < 10; i++ {
		_ = ves.Control(ActionIncreaseRudder)
	}
	if math.Abs(ves.RudAngle-ves.RudAngleMax) > 1e-12 {
		t.Errorf("舵角应饱和在 %g, 得到 %g", ves.RudAngleMax, ves.RudAngle)
	}

	// 3. 保舵不改变舵角
	before := ves.RudAngle
	_ = ves.Control(ActionKeepRudder)
	if ves.RudAngle != before {
		t.Errorf("保舵后舵角不应变化")
	}

	// 4. 非法动作返回错误
	if err := ves.Control(7); err == nil {
		t.Errorf("非法动作编号应返回错误")
	}
}

// TestUpdateDynamicsAtRest 测试静止且螺旋桨不转时船舶保持静止。
func TestUpdateDynamicsAtRest(t *testing.T) {
	ves := NewVessel(1, KVLCC2(), 100, 100, DTR(45), 0, 0, 0, 0, 0.5, 200, 200)
	ves.UpdateDynamics()

	if ves.U != 0 || ves.V != 0 || ves.R != 0 {
		t.Errorf("静止船舶不应产生速度: u=%g v=%g r=%g", ves.U, ves.V, ves.R)
	}
	if ves.N != 100 || ves.E != 100 {
		t.Errorf("静止船舶不应移动: N=%g E=%g", ves.N, ves.E)
	}
}

// TestUpdateDynamicsHeadingStaysWrapped 测试长时间满舵机动后航向
// 始终保持在 [0, 2π) 内，且位置有限。
func TestUpdateDynamicsHeadingStaysWrapped(t *testing.T) {
	hull := KVLCC2().Scaled(DefaultHullScale)
	ves := NewVessel(1, hull, 100, 100, 0, DefaultOSSpeed, 0, 0, 0, DefaultDeltaT, 200, 200)

	nps, err := ves.NpsFromU(DefaultOSSpeed)
	if err != nil {
		t.Fatalf("转速求解失败: %v", err)
	}
	ves.Nps = nps
	ves.RudAngle = ves.RudAngleMax

	for i := 0; i < 500; i++ {
		ves.UpdateDynamics()
		if ves.Psi < 0 || ves.Psi >= 2*math.Pi {
			t.Fatalf("第 %d 步后航向越界: %g", i+1, ves.Psi)
		}
		if math.IsNaN(ves.U) || math.IsNaN(ves.N) || math.IsNaN(ves.E) {
			t.Fatalf("第 %d 步后状态出现 NaN", i+1)
		}
	}
	if ves.U <= 0 {
		t.Errorf("带桨推进的船舶纵向速度应为正, 得到 %g", ves.U)
	}
}

// TestNpsURoundTrip 测试转速与收敛速度的互逆求解。
func TestNpsURoundTrip(t *testing.T) {
	ves := NewVessel(1, KVLCC2(), 0, 0, 0, 0, 0, 0, 0, 0.5, 200, 200)

	nps, err := ves.NpsFromU(7.0)
	if err != nil {
		t.Fatalf("由速度求转速失败: %v", err)
	}
	if nps <= 0 {
		t.Fatalf("前进所需转速应为正, 得到 %g", nps)
	}

	u, err := ves.UFromNps(nps)
	if err != nil {
		t.Fatalf("由转速求收敛速度失败: %v", err)
	}
	if math.Abs(u-7.0) > 1e-3 {
		t.Errorf("往返求解不一致: 期望 7.0, 得到 %g", u)
	}
}

// TestNpsURoundTripModelScale 测试模型尺度下的互逆求解。
func TestNpsURoundTripModelScale(t *testing.T) {
	hull := KVLCC2().Scaled(DefaultHullScale)
	ves := NewVessel(1, hull, 0, 0, 0, 0, 0, 0, 0, DefaultDeltaT, 200, 200)

	nps, err := ves.NpsFromU(DefaultOSSpeed)
	if err != nil {
		t.Fatalf("由速度求转速失败: %v", err)
	}
	u, err := ves.UFromNps(nps)
	if err != nil {
		t.Fatalf("由转速求收敛速度失败: %v", err)
	}
	if math.Abs(u-DefaultOSSpeed) > 1e-3 {
		t.Errorf("往返求解不一致: 期望 %g, 得到 %g", DefaultOSSpeed, u)
	}
}

// TestSpeedAndCourse 测试合速度与航迹向的计算。
func TestSpeedAndCourse(t *testing.T) {
	ves := NewVessel(1, KVLCC2(), 0, 0, DTR(30), 2.0, 0, 0, 0, 0.5, 200, 200)

	// 横向速度与角速度为零时: 航迹向等于航向，合速度等于纵向速度
	if math.Abs(ves.Speed()-2.0) > 1e-12 {
		t.Errorf("期望合速度 2.0, 得到 %g", ves.Speed())
	}
	if math.Abs(ves.Course()-DTR(30)) > 1e-12 {
		t.Errorf("期望航迹向 %g, 得到 %g", DTR(30), ves.Course())
	}
	if ves.Sideslip() != 0 {
		t.Errorf("期望漂角 0, 得到 %g", ves.Sideslip())
	}
}

// TestIsOffMap 测试地图越界判定。
func TestIsOffMap(t *testing.T) {
	ves := NewVessel(1, KVLCC2(), 100, 100, 0, 0, 0, 0, 0, 0.5, 200, 200)
	if ves.IsOffMap() {
		t.Errorf("地图中央不应判为越界")
	}
	ves.N = -1
	if !ves.IsOffMap() {
		t.Errorf("北向越界未被检出")
	}
	ves.N, ves.E = 100, 200
	if !ves.IsOffMap() {
		t.Errorf("东向边界上应判为越界")
	}
}

// TestScaledHull 测试傅汝德缩尺后的船型参数。
func TestScaledHull(t *testing.T) {
	full := KVLCC2()
	scaled := full.Scaled(DefaultHullScale)

	if math.Abs(scaled.Lpp-full.Lpp/DefaultHullScale) > 1e-9 {
		t.Errorf("船长缩尺错误: 期望 %g, 得到 %g", full.Lpp/DefaultHullScale, scaled.Lpp)
	}
	if math.Abs(scaled.AR-full.AR/(DefaultHullScale*DefaultHullScale)) > 1e-9 {
		t.Errorf("舵面积应按 λ² 缩尺")
	}
	// 缩尺返回副本，原始参数不受影响
	if full.Lpp != 320.0 {
		t.Errorf("缩尺不应修改原始船型: Lpp=%g", full.Lpp)
	}
}

// TestThrustCoefficientFallback 测试 k 系数缺省时推力系数退回经验直线。
// 直线 K_T = J_slo·J + J_int 等价于取 k0=J_int, k1=J_slo, k2=0 的二次曲线，
// 两种船型参数下的加速度应逐位一致。
func TestThrustCoefficientFallback(t *testing.T) {
	hullA := KVLCC2()
	hullA.K0, hullA.K1, hullA.K2 = 0, 0, 0

	hullB := KVLCC2()
	hullB.K0, hullB.K1, hullB.K2 = hullB.JInt, hullB.JSlo, 0

	vesA := NewVessel(1, hullA, 100, 100, 0, 2.0, 0.1, 0.01, 1.5, 0.5, 200, 200)
	vesB := NewVessel(2, hullB, 100, 100, 0, 2.0, 0.1, 0.01, 1.5, 0.5, 200, 200)

	duA, dvA, drA := vesA.mmgAccel(2.0, 0.1, 0.01, 0.0, DTR(5), 1.5, 0.0, 0.0)
	duB, dvB, drB := vesB.mmgAccel(2.0, 0.1, 0.01, 0.0, DTR(5), 1.5, 0.0, 0.0)

	if duA != duB || dvA != dvB || drA != drB {
		t.Errorf("经验直线与等价二次曲线的加速度不一致: (%g,%g,%g) vs (%g,%g,%g)",
			duA, dvA, drA, duB, dvB, drB)
	}

	// 静止起步时直线截距给出正推力，船应向前加速
	du, _, _ := vesA.mmgAccel(0.0, 0.0, 0.0, 0.0, 0.0, 1.5, 0.0, 0.0)
	if du <= 0 {
		t.Errorf("正转速下静止船应获得正的纵向加速度, 得到 %g", du)
	}
}
