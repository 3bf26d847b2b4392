// C:/workspace/go/Marine-Simulator-Go/simulation/colreg.go
package simulation

// Situation 表示国际海上避碰规则 (COLREG) 下的会遇局面分类。
type Situation int

const (
	// SituationNone 表示无规则约束的局面 (含目标船在视距之外)。
	SituationNone Situation = iota
	// SituationHeadOn 对遇局面 (规则 14)。
	SituationHeadOn
	// SituationCrossSmall 右舷小角度交叉相遇，本船为让路船 (规则 15)。
	SituationCrossSmall
	// SituationCrossLarge 右舷大角度交叉相遇，本船为让路船 (规则 15)。
	SituationCrossLarge
	// SituationCrossPort 左舷交叉相遇，本船为直航船 (规则 15/17)。
	SituationCrossPort
	// SituationOvertaking 追越局面，本船为追越船 (规则 13)。
	SituationOvertaking
)

// String 实现 fmt.Stringer，返回会遇局面的中文名称。
func (s Situation) String() string {
	switch s {
	case SituationHeadOn:
		return "对遇"
	case SituationCrossSmall:
		return "右舷小角交叉"
	case SituationCrossLarge:
		return "右舷大角交叉"
	case SituationCrossPort:
		return "左舷交叉"
	case SituationOvertaking:
		return "追越"
	default:
		return "无"
	}
}

// ClassifySituation 根据两船的位姿与航迹向判定会遇局面。
// 判据由三部分组成: 目标船相对本船的方位角、两船航向交叉角 C_T，
// 以及追越局面中本船速度在目标船航向上的投影。
// 各角度窗口以度为单位给出，区间端点开闭与判据一一对应，互不重叠。
// 目标船在视距 sight 之外时一律判为无局面。
func ClassifySituation(os, ts *Vessel, sight float64) Situation {
	if ED(os.N, os.E, ts.N, ts.E, true) > sight {
		return SituationNone
	}

	// 目标船相对本船航向的方位角 (度)
	bngOS2Pi := RTD(BngRel(os.N, os.E, ts.N, ts.E, os.Psi))
	bngOSPi := RTD(AngleToPi(BngRel(os.N, os.E, ts.N, ts.E, os.Psi)))

	// 本船相对目标船航向的方位角 (度)，用于追越判定
	bngTS2Pi := RTD(BngRel(ts.N, ts.E, os.N, os.E, ts.Psi))

	// 航向交叉角 (度)
	cT2Pi := RTD(HeadInter(os.Psi, ts.Psi))
	cTPi := RTD(AngleToPi(HeadInter(os.Psi, ts.Psi)))

	// 本船速度向量在目标船航向上的投影大小
	vOS := os.Speed()
	vTS := ts.Speed()
	px, py := ProjectVector(vOS, os.Course(), 1.0, ts.Psi)
	vRel, _ := PolarFromXY(px, py)

	switch {
	// 对遇: 目标在正前方 ±5°，航向相反 (交叉角 175°~185°)
	case bngOSPi >= -5 && bngOSPi <= 5 && cT2Pi >= 175 && cT2Pi <= 185:
		return SituationHeadOn

	// 右舷小角交叉: 目标在右舷 (5°, 45°]，交叉角 (185°, 210°]
	case bngOS2Pi > 5 && bngOS2Pi <= 45 && cT2Pi > 185 && cT2Pi <= 210:
		return SituationCrossSmall

	// 右舷大角交叉: 目标在右舷 (45°, 112.5°]，交叉角 (210°, 292.5°]
	case bngOS2Pi > 45 && bngOS2Pi <= 112.5 && cT2Pi > 210 && cT2Pi <= 292.5:
		return SituationCrossLarge

	// 左舷交叉: 目标在左舷 [247.5°, 355°]，交叉角 [67.5°, 175°]
	case bngOS2Pi >= 247.5 && bngOS2Pi <= 355 && cT2Pi >= 67.5 && cT2Pi <= 175:
		return SituationCrossPort

	// 追越: 本船位于目标船艉向扇区 [112.5°, 247.5°]，
	// 航向大致相同 (交叉角 ±67.5° 以内)，且本船在目标航向上的分速更大
	case bngTS2Pi >= 112.5 && bngTS2Pi <= 247.5 && cTPi >= -67.5 && cTPi <= 67.5 && vRel > vTS:
		return SituationOvertaking
	}

	return SituationNone
}
