// C:/workspace/go/Marine-Simulator-Go/simulation/vessel.go
package simulation

import (
	"fmt"
	"math"
)

// 离散舵机动作。
const (
	ActionKeepRudder     = 0 // 保持当前舵角
	ActionIncreaseRudder = 1 // 增大舵角 (右转)
	ActionDecreaseRudder = 2 // 减小舵角 (左转)
)

// Vessel 结构体表示一条按 MMG 标准模型 (Yasukawa, Yoshimura 2015) 运动的船舶。
// 速度状态 (U, V, R) 在船体坐标系下表示，其中 V 为重心处的横向速度；
// 位置状态 (N, E, Psi) 在北东坐标系下表示。
type Vessel struct {
	ID   uint64      // 全局唯一的船舶标识，用于航迹与统计的归属
	Hull *HullParams // 船型参数，多船共享

	// --- 位姿 η = (N, E, ψ) ---
	N   float64 // 北向坐标 (m)
	E   float64 // 东向坐标 (m)
	Psi float64 // 航向角 (rad)，范围 [0, 2π)

	// --- 速度 ν = (u, v, r) ---
	U float64 // 纵向速度 (m/s)
	V float64 // 重心处横向速度 (m/s)
	R float64 // 艏摇角速度 (rad/s)

	// --- 上一步的加速度 ν̇ 与世界系速度 η̇，供观测向量使用 ---
	UDot, VDot, RDot    float64
	NDot, EDot, PsiDot  float64

	// --- 执行机构 ---
	RudAngle    float64 // 当前舵角 (rad)
	RudAngleMax float64 // 舵角饱和值 (rad)
	RudAngleInc float64 // 单步舵角增量 (rad)
	Nps         float64 // 螺旋桨转速 (1/s)

	// --- 环境约定 ---
	DeltaT float64 // 积分步长 (s)
	NMax   float64 // 地图北向边界 (m)
	EMax   float64 // 地图东向边界 (m)

	LastAction int // 最近一次执行的离散动作，供渲染与统计使用
}

// NewVessel 是 Vessel 的构造函数。初始加速度为零，舵角居中。
func NewVessel(id uint64, hull *HullParams, n, e, psi, u, v, r, nps, deltaT, nMax, eMax float64) *Vessel {
	return &Vessel{
		ID:          id,
		Hull:        hull,
		N:           n,
		E:           e,
		Psi:         AngleTo2Pi(psi),
		U:           u,
		V:           v,
		R:           r,
		RudAngleMax: DTR(10.0),
		RudAngleInc: DTR(2.5),
		Nps:         nps,
		DeltaT:      deltaT,
		NMax:        nMax,
		EMax:        eMax,
	}
}

// vmFromVR 由重心处横向速度求船中处横向速度。
func (ves *Vessel) vmFromVR(v, r float64) float64 {
	return v - ves.Hull.XG*r
}

// 洋流力系数拟合多项式，自变量为相对流向角 (rad)。

func currentCX(g float64) float64 {
	return -0.0665*math.Pow(g, 5) + 0.5228*math.Pow(g, 4) - 1.4365*math.Pow(g, 3) +
		1.6024*math.Pow(g, 2) - 0.2967*g - 0.4691
}

func currentCY(g float64) float64 {
	return 0.05930686*math.Pow(g, 4) - 0.37522028*math.Pow(g, 3) +
		0.46812233*math.Pow(g, 2) + 0.39114522*g - 0.00273578
}

func currentCN(g float64) float64 {
	return -0.0140*math.Pow(g, 5) + 0.1131*math.Pow(g, 4) - 0.2757*math.Pow(g, 3) +
		0.1617*math.Pow(g, 2) + 0.0728*g
}

// mmgAccel 求解 MMG 运动方程组，返回船体坐标系下的加速度 (du, dv, dr)。
// flPsi/flVel 为洋流的流向与流速，flVel 为 0 时不计洋流力。
func (ves *Vessel) mmgAccel(u, v, r, psi, rudAngle, nps, flPsi, flVel float64) (du, dv, dr float64) {
	h := ves.Hull

	vm := ves.vmFromVR(v, r)
	bigU := math.Sqrt(u*u + vm*vm)

	// 静止退化分支: 总速度为零时漂角与无量纲速度均定义为零
	var beta, vDash, rDash float64
	if bigU == 0.0 {
		beta, vDash, rDash = 0.0, 0.0, 0.0
	} else {
		beta = math.Atan2(-vm, u)
		vDash = vm / bigU
		rDash = r * h.Lpp / bigU
	}

	// --- 船体水动力 ---
	XH := 0.5 * h.Rho * h.Lpp * h.D * bigU * bigU * (-h.R0Dash +
		h.XvvDash*vDash*vDash +
		h.XvrDash*vDash*rDash +
		h.XrrDash*rDash*rDash +
		h.XvvvvDash*math.Pow(vDash, 4))

	YH := 0.5 * h.Rho * h.Lpp * h.D * bigU * bigU * (h.YvDash*vDash +
		h.YrDash*rDash +
		h.YvvvDash*math.Pow(vDash, 3) +
		h.YvvrDash*vDash*vDash*rDash +
		h.YvrrDash*vDash*rDash*rDash +
		h.YrrrDash*math.Pow(rDash, 3))

	NH := 0.5 * h.Rho * h.Lpp * h.Lpp * h.D * bigU * bigU * (h.NvDash*vDash +
		h.NrDash*rDash +
		h.NvvvDash*math.Pow(vDash, 3) +
		h.NvvrDash*vDash*vDash*rDash +
		h.NvrrDash*vDash*rDash*rDash +
		h.NrrrDash*math.Pow(rDash, 3))

	// --- 螺旋桨推力 ---
	betaP := beta - (h.XP/h.Lpp)*rDash

	c2 := h.C2Minus
	if betaP >= 0 {
		c2 = h.C2Plus
	}
	wP := 1.0 - (1.0-h.WP0)*(1.0+(1.0-math.Exp(-h.C1*math.Abs(betaP))*(c2-1.0)))

	// 螺旋桨不转时进速比无定义，取零
	var j float64
	if nps == 0.0 {
		j = 0.0
	} else {
		j = (1.0 - wP) * u / (nps * h.DP)
	}

	// 敞水特性: 有 k 系数时用二次曲线，缺省时退回经验直线
	var kT float64
	if h.K0 != 0 || h.K1 != 0 || h.K2 != 0 {
		kT = h.K0 + h.K1*j + h.K2*j*j
	} else {
		kT = h.JSlo*j + h.JInt
	}
	XP := (1.0 - h.TP) * h.Rho * kT * nps * nps * math.Pow(h.DP, 4)

	// --- 舵力 ---
	betaR := beta - h.LR*rDash

	gammaR := h.GammaRPlus
	if betaR < 0.0 {
		gammaR = h.GammaRMinus
	}

	vR := bigU * gammaR * betaR

	var uR float64
	if j == 0.0 {
		uR = 0.0
	} else {
		rad := 1.0 + 8.0*kT/(math.Pi*j*j)
		if rad < 0.0 {
			rad = 0.0
		}
		uR = u * (1.0 - wP) * h.Epsilon * math.Sqrt(
			h.EtaParam*math.Pow(1.0+h.Kappa*(math.Sqrt(rad)-1.0), 2)+(1.0-h.EtaParam))
	}

	bigUR := math.Sqrt(uR*uR + vR*vR)
	alphaR := rudAngle - math.Atan2(vR, uR)

	fN := 0.5 * h.AR * h.Rho * h.FAlpha * bigUR * bigUR * math.Sin(alphaR)

	XR := -(1.0 - h.TR) * fN * math.Sin(rudAngle)
	YR := -(1.0 + h.AH) * fN * math.Cos(rudAngle)

	xH := h.XHDash * h.Lpp
	NR := -(-0.5 + h.AH*xH) * fN * math.Cos(rudAngle)

	// --- 洋流力 ---
	var XC, YC, NC float64
	if flVel != 0.0 {
		uC := -flVel * math.Cos(flPsi-psi)
		uRC := u - uC

		vC := flVel * math.Sin(flPsi - psi)
		vRC := vm - vC

		gRC := math.Abs(-math.Atan2(vRC, uRC))

		aFc := h.B * h.D * h.CB
		XC = 0.5 * h.Rho * aFc * currentCX(gRC) * math.Abs(uRC) * uRC

		aLc := h.Lpp * h.D * h.CB
		YC = 0.5 * h.Rho * aLc * currentCY(gRC) * math.Abs(vRC) * vRC
		NC = 0.5 * h.Rho * aLc * h.Lpp * currentCN(gRC) * math.Abs(vRC) * vRC
	}

	// --- 方程求解 ---
	mx := h.MXDash * (0.5 * h.Rho * h.Lpp * h.Lpp * h.D)
	my := h.MYDash * (0.5 * h.Rho * h.Lpp * h.Lpp * h.D)
	jz := h.JZDash * (0.5 * h.Rho * math.Pow(h.Lpp, 4) * h.D)
	m := h.M
	izG := h.IzG

	X := XH + XR + XP + XC
	Y := YH + YR + YC
	NM := NH + NR + NC

	du = (X + (m+my)*vm*r + h.XG*m*r*r) / (m + mx)

	f := izG + jz + h.XG*h.XG*m

	dvmNom := Y - (m+mx)*u*r - h.XG*m*NM/f + h.XG*h.XG*m*m*u*r/f
	dvmDen := m + my - (h.XG*h.XG*m*m)/f
	dvm := dvmNom / dvmDen

	dr = (NM - h.XG*m*(dvm+u*r)) / f
	dv = dvm + h.XG*dr

	return du, dv, dr
}

// worldVelocity 将船体坐标系速度旋转到北东坐标系，返回 (Ṅ, Ė, ψ̇)。
func (ves *Vessel) worldVelocity(psi, u, v, r float64) (nDot, eDot, psiDot float64) {
	return u*math.Cos(psi) - v*math.Sin(psi),
		u*math.Sin(psi) + v*math.Cos(psi),
		r
}

// UpdateDynamics 推进一个积分步长。速度按前向欧拉更新，
// 位置按梯形法更新 (Treiber, Kanagaraj 2015 的弹道近似):
// 取更新前后世界系速度的平均值乘以步长。
func (ves *Vessel) UpdateDynamics() {
	nDotOld, eDotOld, psiDotOld := ves.worldVelocity(ves.Psi, ves.U, ves.V, ves.R)

	ves.UDot, ves.VDot, ves.RDot = ves.mmgAccel(ves.U, ves.V, ves.R, ves.Psi, ves.RudAngle, ves.Nps, 0.0, 0.0)
	ves.U += ves.UDot * ves.DeltaT
	ves.V += ves.VDot * ves.DeltaT
	ves.R += ves.RDot * ves.DeltaT

	nDotNew, eDotNew, psiDotNew := ves.worldVelocity(ves.Psi, ves.U, ves.V, ves.R)

	ves.N += 0.5 * (nDotOld + nDotNew) * ves.DeltaT
	ves.E += 0.5 * (eDotOld + eDotNew) * ves.DeltaT
	ves.Psi += 0.5 * (psiDotOld + psiDotNew) * ves.DeltaT

	ves.Psi = AngleTo2Pi(ves.Psi)

	ves.NDot, ves.EDot, ves.PsiDot = nDotNew, eDotNew, psiDotNew
}

// Control 执行一个离散舵机动作并将舵角限制在饱和值以内。
// 未定义的动作编号返回错误。
func (ves *Vessel) Control(a int) error {
	switch a {
	case ActionKeepRudder:
		// 保持
	case ActionIncreaseRudder:
		ves.RudAngle += ves.RudAngleInc
	case ActionDecreaseRudder:
		ves.RudAngle -= ves.RudAngleInc
	default:
		return fmt.Errorf("未知的舵机动作: %d (合法值为 0, 1, 2)", a)
	}

	ves.LastAction = a

	if ves.RudAngle > ves.RudAngleMax {
		ves.RudAngle = ves.RudAngleMax
	} else if ves.RudAngle < -ves.RudAngleMax {
		ves.RudAngle = -ves.RudAngleMax
	}
	return nil
}

// Sideslip 返回船中处的漂角 (rad)。
func (ves *Vessel) Sideslip() float64 {
	vm := ves.vmFromVR(ves.V, ves.R)
	return math.Atan2(vm, ves.U)
}

// Course 返回航迹向 (rad): 航向角加漂角，范围 [0, 2π)。
func (ves *Vessel) Course() float64 {
	return AngleTo2Pi(ves.Psi + ves.Sideslip())
}

// Speed 返回合速度 U = sqrt(u² + v_m²)。
func (ves *Vessel) Speed() float64 {
	vm := ves.vmFromVR(ves.V, ves.R)
	return math.Sqrt(ves.U*ves.U + vm*vm)
}

// IsOffMap 判断船舶是否越出地图边界。
func (ves *Vessel) IsOffMap() bool {
	return ves.N <= 0 || ves.N >= ves.NMax || ves.E <= 0 || ves.E >= ves.EMax
}

// --- 逆向求解: 转速与收敛速度的互算 ---

const (
	solverMaxIter = 50      // 迭代次数上限
	solverTol     = 1.48e-8 // 相邻迭代点间距的收敛阈值
)

// findRoot 用割线法求一元函数的零点。
// 不收敛或导数退化时返回错误，而不是无限迭代。
func findRoot(f func(float64) float64, x0 float64) (float64, error) {
	// 第二个初始点在 x0 附近取一个小偏移
	eps := 1e-4
	x1 := x0 * (1.0 + eps)
	if x1 >= x0 {
		x1 += eps
	} else {
		x1 -= eps
	}

	f0 := f(x0)
	f1 := f(x1)

	for i := 0; i < solverMaxIter; i++ {
		if f1 == f0 {
			return 0, fmt.Errorf("割线法在 x=%.6g 处斜率退化，无法继续", x1)
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, fmt.Errorf("割线法发散 (x=%.6g)", x2)
		}
		if math.Abs(x2-x1) < solverTol {
			return x2, nil
		}
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
	}
	return 0, fmt.Errorf("割线法在 %d 次迭代内未收敛 (初值 %.4g)", solverMaxIter, x0)
}

// UFromNps 求给定螺旋桨转速、零舵角下的收敛直航速度。
func (ves *Vessel) UFromNps(nps float64) (float64, error) {
	u, err := findRoot(func(u float64) float64 {
		du, _, _ := ves.mmgAccel(u, 0.0, 0.0, 0.0, 0.0, nps, 0.0, 0.0)
		return du
	}, 5.0)
	if err != nil {
		return 0, fmt.Errorf("由转速 %.4g 求收敛速度失败: %w", nps, err)
	}
	return u, nil
}

// NpsFromU 求维持给定直航速度、零舵角所需的螺旋桨转速。
func (ves *Vessel) NpsFromU(u float64) (float64, error) {
	nps, err := findRoot(func(nps float64) float64 {
		du, _, _ := ves.mmgAccel(u, 0.0, 0.0, 0.0, 0.0, nps, 0.0, 0.0)
		return du
	}, 2.0)
	if err != nil {
		return 0, fmt.Errorf("由速度 %.4g 求所需转速失败: %w", u, err)
	}
	return nps, nil
}
