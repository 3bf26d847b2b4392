// C:/workspace/go/Marine-Simulator-Go/simulation/hull.go
package simulation

import "math"

// HullParams 结构体封装一套完整的 MMG 操纵运动模型船型参数。
// 参数一经构造不再修改，多条船可以安全地共享同一实例。
// 无量纲水动力导数 (带 Dash 后缀) 不随缩尺比变化。
type HullParams struct {
	// --- 主尺度 ---
	CB   float64 // 方形系数
	Lpp  float64 // 垂线间长 (m)
	B    float64 // 船宽 (m)
	D    float64 // 吃水 (m)
	M    float64 // 排水质量 (kg)
	WP0  float64 // 直航伴流分数
	XG   float64 // 重心纵向坐标 (m)
	Nabla float64 // 排水体积 (m³)

	// --- 螺旋桨 ---
	XP float64 // 螺旋桨纵向坐标 (m)
	DP float64 // 螺旋桨直径 (m)
	K0 float64 // 敞水特性系数 K_T = k0 + k1·J + k2·J²
	K1 float64
	K2 float64
	C1 float64 // 伴流修正系数
	C2Plus  float64 // β_P ≥ 0 时的伴流修正系数
	C2Minus float64 // β_P < 0 时的伴流修正系数
	JInt    float64 // k 系数缺省时 K_T 经验直线的截距
	JSlo    float64 // k 系数缺省时 K_T 经验直线的斜率
	TP      float64 // 推力减额分数

	// --- 舵 ---
	LR         float64 // 有效纵向坐标比 l'_R
	GammaRPlus  float64 // 整流系数 (β_R ≥ 0)
	GammaRMinus float64 // 整流系数 (β_R < 0)
	EtaParam   float64 // 螺旋桨直径与舵高之比
	Kappa      float64 // 螺旋桨滑流修正系数
	AR         float64 // 舵面积 (m²)
	Epsilon    float64 // 舵位置伴流与螺旋桨伴流之比
	FAlpha     float64 // 舵升力梯度系数
	TR         float64 // 舵阻力减额系数
	AH         float64 // 舵诱导船体横向力修正系数
	XHDash     float64 // 舵诱导船体横向力作用点 x'_H

	// --- 质量与惯量 ---
	Rho    float64 // 水密度 (kg/m³)
	MXDash float64 // 纵向附加质量 (无量纲)
	MYDash float64 // 横向附加质量 (无量纲)
	IzG    float64 // 绕重心的转动惯量 (kg·m²)
	JZDash float64 // 附加转动惯量 (无量纲)

	// --- 船体水动力导数 (无量纲) ---
	R0Dash   float64
	XvvDash  float64
	XvrDash  float64
	XrrDash  float64
	XvvvvDash float64
	YvDash   float64
	YrDash   float64
	YvvvDash float64
	YvvrDash float64
	YvrrDash float64
	YrrrDash float64
	NvDash   float64
	NrDash   float64
	NvvvDash float64
	NvvrDash float64
	NvrrDash float64
	NrrrDash float64
}

// KVLCC2 返回实尺度 KVLCC2 油轮的标准 MMG 参数
// (Yasukawa, Yoshimura 2015, Journal of Marine Science and Technology)。
func KVLCC2() *HullParams {
	return &HullParams{
		CB:    0.810,
		Lpp:   320.0,
		B:     58.0,
		D:     20.8,
		M:     312_600.0 * 1020.0,
		WP0:   0.35,
		XG:    11.2,
		Nabla: 312_600.0,

		XP:      -160.0,
		DP:      9.86,
		K0:      0.2931,
		K1:      -0.2753,
		K2:      -0.1359,
		C1:      2.0,
		C2Plus:  1.6,
		C2Minus: 1.1,
		JInt:    0.4,
		JSlo:    -0.5,
		TP:      0.220,

		LR:          -0.710,
		GammaRPlus:  0.640,
		GammaRMinus: 0.395,
		EtaParam:    0.626,
		Kappa:       0.50,
		AR:          112.5,
		Epsilon:     1.09,
		FAlpha:      2.747,
		TR:          0.387,
		AH:          0.312,
		XHDash:      -0.464,

		Rho:    1020.0,
		MXDash: 0.022,
		MYDash: 0.223,
		IzG:    2e12,
		JZDash: 0.011,

		R0Dash:    0.022,
		XvvDash:   -0.040,
		XvrDash:   0.002,
		XrrDash:   0.011,
		XvvvvDash: 0.771,
		YvDash:    -0.315,
		YrDash:    0.083,
		YvvvDash:  -1.607,
		YvvrDash:  0.379,
		YvrrDash:  -0.391,
		YrrrDash:  0.008,
		NvDash:    -0.137,
		NrDash:    -0.049,
		NvvvDash:  -0.030,
		NvvrDash:  -0.294,
		NvrrDash:  0.055,
		NrrrDash:  -0.013,
	}
}

// Scaled 按傅汝德相似律返回缩尺比为 lambda 的派生参数:
// 长度量除以 λ，面积量除以 λ²，质量与体积量除以 λ³，惯量除以 λ⁵。
// 无量纲导数保持不变。接收者不被修改。
func (h *HullParams) Scaled(lambda float64) *HullParams {
	s := *h

	s.Lpp = h.Lpp / lambda
	s.B = h.B / lambda
	s.D = h.D / lambda
	s.XG = h.XG / lambda
	s.XP = h.XP / lambda
	s.DP = h.DP / lambda

	s.AR = h.AR / math.Pow(lambda, 2)

	s.M = h.M / math.Pow(lambda, 3)
	s.Nabla = h.Nabla / math.Pow(lambda, 3)

	s.IzG = h.IzG / math.Pow(lambda, 5)

	return &s
}
