// C:/workspace/go/Marine-Simulator-Go/simulation/spawner.go
package simulation

import (
	"fmt"
	"math"
	"math/rand"
)

// RespawnPolicy 表示目标船越界后的处置策略，三者互斥。
type RespawnPolicy int

const (
	// RespawnPolicyRespawn 在别处按会遇构造法重新投放。
	RespawnPolicyRespawn RespawnPolicy = iota
	// RespawnPolicyMirror 在边界处镜像反射航向 (Xu et al. 2022, Neurocomputing)。
	RespawnPolicyMirror
	// RespawnPolicyClip 将位置截断在地图边界上。
	RespawnPolicyClip
)

// ParseRespawnPolicy 将配置字符串解析为重生策略，未知取值返回错误。
func ParseRespawnPolicy(s string) (RespawnPolicy, error) {
	switch s {
	case "respawn":
		return RespawnPolicyRespawn, nil
	case "mirror":
		return RespawnPolicyMirror, nil
	case "clip":
		return RespawnPolicyClip, nil
	default:
		return 0, fmt.Errorf("未知的重生策略 %q (合法值: respawn, mirror, clip)", s)
	}
}

// TrafficSpawner 负责目标船的会遇式投放与越界重生。
// 投放算法: 先采样一个会遇局面与命中时刻，把命中点取在本船朝目标点
// 的外推航线上，再按局面采样交叉角并反推目标船的出发位置，
// 使其恰好在命中时刻经过命中点。不满足最小间距约束的样本被拒绝。
type TrafficSpawner struct {
	rng  *rand.Rand
	hull *HullParams

	deltaT float64
	nMax   float64
	eMax   float64

	tcpaCrit     float64
	minDistSpawn float64
	stopSpawnDist float64

	policy RespawnPolicy

	allocID func() uint64
}

// NewTrafficSpawner 是 TrafficSpawner 的构造函数。
// allocID 由环境注入，保证所有船舶标识在同一回合内全局唯一。
func NewTrafficSpawner(rng *rand.Rand, hull *HullParams, deltaT, nMax, eMax, tcpaCrit, minDistSpawn, stopSpawnDist float64, policy RespawnPolicy, allocID func() uint64) *TrafficSpawner {
	return &TrafficSpawner{
		rng:           rng,
		hull:          hull,
		deltaT:        deltaT,
		nMax:          nMax,
		eMax:          eMax,
		tcpaCrit:      tcpaCrit,
		minDistSpawn:  minDistSpawn,
		stopSpawnDist: stopSpawnDist,
		policy:        policy,
		allocID:       allocID,
	}
}

// uniform 返回 [lo, hi) 上的均匀随机数。
func (sp *TrafficSpawner) uniform(lo, hi float64) float64 {
	return lo + sp.rng.Float64()*(hi-lo)
}

// SpawnTS 投放一条目标船。existing 为已在场的其余目标船，用于间距约束。
// 拒绝采样超过 MaxSpawnTries 次仍不满足约束时返回错误，
// 说明间距、地图尺寸与船数的组合不可满足。
func (sp *TrafficSpawner) SpawnTS(os *Vessel, goalN, goalE float64, existing []*Vessel) (*Vessel, error) {
	n0, e0 := os.N, os.E
	chiOS := os.Course()
	vOS := os.Speed()

	for try := 0; try < MaxSpawnTries; try++ {
		// 采样目标船的巡航速度，并反求维持该速度所需的转速。
		// 逆解失败的样本直接丢弃，由循环重采。
		probe := NewVessel(0, sp.hull, 0, 0, 0, 0, 0, 0, 0, sp.deltaT, sp.nMax, sp.eMax)
		vTS := sp.uniform(TSSpeedMin, TSSpeedMax)
		nps, err := probe.NpsFromU(vTS)
		if err != nil {
			continue
		}

		// 采样会遇局面
		sit := Situation(1 + sp.rng.Intn(5))

		// 本船朝目标点方向的分速，外推出命中点
		bngAbsGoal := BngAbs(n0, e0, goalN, goalE)
		vrx, vry := ProjectVector(vOS, chiOS, 1.0, bngAbsGoal)

		tHit := sp.uniform(0.5*sp.tcpaCrit, sp.tcpaCrit)
		eHit := e0 + vrx*tHit
		nHit := n0 + vry*tHit

		// 按局面采样交叉角 (以朝目标点的方位为基准航向)
		var cTS float64
		switch sit {
		case SituationHeadOn:
			cTS = DTR(sp.uniform(175, 185))
		case SituationCrossSmall:
			cTS = DTR(sp.uniform(185, 210))
		case SituationCrossLarge:
			cTS = DTR(sp.uniform(210, 292.5))
		case SituationCrossPort:
			cTS = DTR(sp.uniform(67.5, 175))
		case SituationOvertaking:
			cTS = AngleTo2Pi(DTR(sp.uniform(-67.5, 67.5)))
		}

		headTS := AngleTo2Pi(cTS + bngAbsGoal)

		// 追越局面中被追越船必须比本船在其航向上的分速慢
		if sit == SituationOvertaking {
			px, py := ProjectVector(vOS, chiOS, 1.0, headTS)
			vMax, _ := PolarFromXY(px, py)
			vTS = sp.uniform(0, vMax)
			nps, err = probe.NpsFromU(vTS)
			if err != nil {
				continue
			}
		}

		// 反推出发位置，使目标船在 tHit 时刻恰好经过命中点
		eTS := eHit - vTS*math.Sin(headTS)*tHit
		nTS := nHit - vTS*math.Cos(headTS)*tHit

		// 最小间距约束
		ok := true
		for _, other := range existing {
			if ED(nTS, eTS, other.N, other.E, true) < sp.minDistSpawn {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		ts := NewVessel(sp.allocID(), sp.hull, nTS, eTS, headTS, vTS, 0.0, 0.0, nps, sp.deltaT, sp.nMax, sp.eMax)
		return ts, nil
	}

	return nil, fmt.Errorf("目标船投放在 %d 次重试内未找到可行样本: 请检查最小间距 %.1f m 与地图尺寸 %.0f×%.0f m 是否匹配",
		MaxSpawnTries, sp.minDistSpawn, sp.nMax, sp.eMax)
}

// HandleRespawn 处理单条目标船的越界与脱离。返回 (处理后的船, 是否重生)。
// 本船接近目标点 (stopSpawnDist 以内) 后不再投放新船，避免终局阶段被干扰。
// 两类触发条件:
//  1. 越出地图边界，按策略重投 / 镜像 / 截断；
//  2. 最近会遇时间落在 [-0.1, 1.25]·TCPA_crit 之外，即会遇已无意义。
func (sp *TrafficSpawner) HandleRespawn(ts, os *Vessel, goalN, goalE float64, existing []*Vessel) (*Vessel, bool, error) {
	if ED(os.N, os.E, goalN, goalE, true) <= sp.stopSpawnDist {
		return ts, false, nil
	}

	if ts.IsOffMap() {
		switch sp.policy {
		case RespawnPolicyRespawn:
			newTS, err := sp.SpawnTS(os, goalN, goalE, existing)
			if err != nil {
				return nil, false, err
			}
			return newTS, true, nil

		case RespawnPolicyMirror:
			if ts.E <= 0 || ts.E >= sp.eMax {
				ts.Psi = AngleTo2Pi(2*math.Pi - ts.Psi) // 东西边界: 镜像东向分量
			} else {
				ts.Psi = AngleTo2Pi(math.Pi - ts.Psi) // 南北边界: 镜像北向分量
			}

		case RespawnPolicyClip:
			ts.N = math.Min(math.Max(ts.N, 0), sp.nMax)
			ts.E = math.Min(math.Max(ts.E, 0), sp.eMax)
		}
		return ts, false, nil
	}

	t := TCPA(os.N, os.E, ts.N, ts.E, os.Course(), ts.Course(), os.Speed(), ts.Speed())
	if t < -0.1*sp.tcpaCrit || t > 1.25*sp.tcpaCrit {
		newTS, err := sp.SpawnTS(os, goalN, goalE, existing)
		if err != nil {
			return nil, false, err
		}
		return newTS, true, nil
	}

	return ts, false, nil
}
