// C:/workspace/go/Marine-Simulator-Go/simulation/geometry.go
package simulation

import "math"

// 本文件提供无状态的几何与角度工具函数。
// 坐标系约定: 北东坐标系 (N, E)，航向角从正北方向顺时针度量，单位为弧度。

// AngleTo2Pi 将任意角度规范化到 [0, 2π)。
func AngleTo2Pi(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleToPi 将任意角度规范化到 (-π, π]。
func AngleToPi(angle float64) float64 {
	a := AngleTo2Pi(angle)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// DTR 角度转弧度 (degree to radian)。
func DTR(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RTD 弧度转角度 (radian to degree)。
func RTD(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// ED 计算两点间的欧氏距离。sqrt 为 false 时返回距离平方，
// 仅用于大小比较的场合可以省去开方。
func ED(n0, e0, n1, e1 float64, sqrt bool) float64 {
	d := (n1-n0)*(n1-n0) + (e1-e0)*(e1-e0)
	if sqrt {
		return math.Sqrt(d)
	}
	return d
}

// XYFromPolar 将极坐标 (r, angle) 转换为平面分量 (x, y)。
// 注意: 在北东坐标系下 x 对应东向分量，y 对应北向分量。
func XYFromPolar(r, angle float64) (x, y float64) {
	return r * math.Sin(angle), r * math.Cos(angle)
}

// PolarFromXY 将平面分量 (x, y) 转换为极坐标 (r, angle)。
func PolarFromXY(x, y float64) (r, angle float64) {
	return math.Sqrt(x*x + y*y), math.Atan2(x, y)
}

// BngAbs 计算从 (n0, e0) 指向 (n1, e1) 的绝对方位角，范围 [0, 2π)。
func BngAbs(n0, e0, n1, e1 float64) float64 {
	return AngleTo2Pi(math.Atan2(e1-e0, n1-n0))
}

// BngRel 计算相对方位角: 绝对方位角减去本船航向，范围 [0, 2π)。
func BngRel(n0, e0, n1, e1, head0 float64) float64 {
	return AngleTo2Pi(BngAbs(n0, e0, n1, e1) - head0)
}

// HeadInter 计算两船航向的交叉角 C_T = ψ_TS - ψ_OS，范围 [0, 2π)。
func HeadInter(headOS, headTS float64) float64 {
	return AngleTo2Pi(headTS - headOS)
}

// ProjectVector 将极坐标向量 A (VA, angleA) 投影到向量 B (VB, angleB) 的方向上，
// 返回投影向量的平面分量 (x, y)。VB 的大小不影响结果，只取其方向。
func ProjectVector(vA, angleA, vB, angleB float64) (x, y float64) {
	s := vA * math.Cos(angleA-angleB)
	return s * math.Sin(angleB), s * math.Cos(angleB)
}

// TCPA 计算两船在匀速直线外推下的最近会遇时间 (Time to Closest Point of Approach)。
// 返回值带符号: 负值表示最近会遇点已经过去。相对速度为零时定义为 0。
func TCPA(nOS, eOS, nTS, eTS, chiOS, chiTS, vOS, vTS float64) float64 {
	vxOS, vyOS := XYFromPolar(vOS, chiOS)
	vxTS, vyTS := XYFromPolar(vTS, chiTS)

	dE := eTS - eOS
	dN := nTS - nOS
	dVx := vxTS - vxOS
	dVy := vyTS - vyOS

	den := dVx*dVx + dVy*dVy
	if den == 0.0 {
		return 0.0
	}
	return -(dE*dVx + dN*dVy) / den
}

// DomainForm 表示船舶领域半径的计算形式。
type DomainForm int

const (
	// DomainPowerLaw 为简化的幂律形式 (Zhao, Roh 2019): L·V^1.26 + 30·V。
	DomainPowerLaw DomainForm = iota
	// DomainEllipse 为四参数椭圆形式，四个象限各由一对半轴确定。
	DomainEllipse
)

// ShipDomainPowerLaw 计算幂律形式的船舶领域半径。
// 输入为本船船长、本船速度与两船相对速度，取 V = max(V_OS, V_rel)。
func ShipDomainPowerLaw(length, vOS, vRel float64) float64 {
	v := math.Max(vOS, vRel)
	return length*math.Pow(v, 1.26) + 30.0*v
}

// RelativeSpeed 计算两船速度向量之差的模。
func RelativeSpeed(vOS, chiOS, vTS, chiTS float64) float64 {
	vxOS, vyOS := XYFromPolar(vOS, chiOS)
	vxTS, vyTS := XYFromPolar(vTS, chiTS)
	return math.Sqrt((vxTS-vxOS)*(vxTS-vxOS) + (vyTS-vyOS)*(vyTS-vyOS))
}

// ShipDomainEllipse 计算四参数椭圆形式的船舶领域半径。
// 四个半轴按象限分配: A 为船艏方向、B 为右舷方向、C 为船艉方向、D 为左舷方向。
// bngRel 为目标相对本船航向的方位角。
func ShipDomainEllipse(a, b, c, d, bngRel float64) float64 {
	ang := AngleTo2Pi(bngRel)

	// 每个象限内按标准椭圆公式求该方向上的半径
	ellipse := func(long, short, theta float64) float64 {
		return long * short / math.Sqrt(math.Pow(long*math.Sin(theta), 2)+math.Pow(short*math.Cos(theta), 2))
	}

	switch {
	case ang < math.Pi/2: // 艏-右舷象限
		return ellipse(a, b, ang)
	case ang < math.Pi: // 右舷-艉象限
		return ellipse(c, b, math.Pi-ang)
	case ang < 3*math.Pi/2: // 艉-左舷象限
		return ellipse(c, d, ang-math.Pi)
	default: // 左舷-艏象限
		return ellipse(a, d, 2*math.Pi-ang)
	}
}
