// C:/workspace/go/Marine-Simulator-Go/simulation/path_env.go
package simulation

import (
	"fmt"
	"math"
	"math/rand"
)

// ==========================================================
// 航路跟踪环境的默认参数 (实尺度 KVLCC2，内河交通流)
// ==========================================================

const (
	// PathDeltaT 是航路环境的积分步长 (s)。
	PathDeltaT = 3.0
	// PathLoopSeconds 是一个 RL 决策步覆盖的仿真时长 (s)。
	PathLoopSeconds = 60.0

	// PathNumWps 是全局航路的航路点数量。
	PathNumWps = 100
	// PathWpSpacing 是相邻航路点间距 (m)。
	PathWpSpacing = 100.0

	// PathMaxEpisodeSteps 是航路环境的决策步上限。
	PathMaxEpisodeSteps = 50

	// PathYeBound 是判定脱离航路的横向偏差上限 (m)。
	PathYeBound = 1000.0

	// PathDesiredV 是期望航速 (m/s)。
	PathDesiredV = 3.0

	// 连续控制的缩放与限幅
	PathDHeadScale = 10.0 * math.Pi / 180.0 // 单步航向增量上限 (rad)
	PathSurgeScale = 0.5                    // 单步纵向速度增量上限 (m/s)
	PathSurgeMin   = 0.1
	PathSurgeMax   = 5.0

	// PathNumObsTS 是每条交通船的观测特征数。
	PathNumObsTS = 6
	// pathNumObsOS 为本船与航路部分的特征数 (速度、航向差、横向偏差)。
	pathNumObsOS = 3
)

// 船舶领域的四个半轴，以船长为单位: 艏、右舷、艉、左舷。
const (
	pathDomainAFactor = 2.0
	pathDomainBFactor = 1.0
	pathDomainCFactor = 1.0
	pathDomainDFactor = 1.5
)

// Waypoint 是全局航路中的一个航路点。
type Waypoint struct {
	N float64
	E float64
}

// pathTraffic 是航路环境中的一条交通船及其通航属性。
type pathTraffic struct {
	*Vessel
	revDir bool // 逆向来船
	speedy bool // 从后方追越本船的快船
	wp1    int  // 当前所在航段的起始航路点下标
}

// PathEnvConfig 是航路跟踪环境的构造参数。
type PathEnvConfig struct {
	Hull *HullParams // 为 nil 时取实尺度 KVLCC2

	NTSMax    int
	NTSRandom bool

	// ThrustControl 开启后动作向量扩展为 2 维，第二维调节纵向速度。
	ThrustControl bool

	Weights PathRewardWeights

	Seed int64
}

// PathRewardWeights 是航路环境各奖励分量的权重。
type PathRewardWeights struct {
	Ye    float64
	Ce    float64
	Coll  float64
	Comf  float64
	Speed float64
}

// DefaultPathRewardWeights 返回全 1 权重。
func DefaultPathRewardWeights() PathRewardWeights {
	return PathRewardWeights{Ye: 1, Ce: 1, Coll: 1, Comf: 1, Speed: 1}
}

// DefaultPathEnvConfig 返回实尺度下的默认航路环境配置。
func DefaultPathEnvConfig() PathEnvConfig {
	return PathEnvConfig{
		Hull:    KVLCC2(),
		NTSMax:  DefaultNTSMax,
		Weights: DefaultPathRewardWeights(),
		Seed:    1,
	}
}

// PathRewardBreakdown 记录航路环境一步内各奖励分量的取值。
type PathRewardBreakdown struct {
	Ye    float64
	Ce    float64
	Coll  float64
	Comf  float64
	Speed float64
	Total float64
}

// PathEnv 是航路跟踪避碰环境: 本船沿全局航路航行，
// 在与交通流的会遇中保持小的横向偏差并遵守通航习惯。
// 每个决策步内部以 PathDeltaT 为步长推进多个动力学子步。
type PathEnv struct {
	cfg PathEnvConfig
	rng *rand.Rand

	nLoops int

	Path []Waypoint
	// 每个航段的航迹向，courses[i] 为 Path[i] 指向 Path[i+1] 的方位角
	courses []float64

	OS    *Vessel
	osWp1 int

	TSs []pathTraffic
	nTS int

	stepCnt int
	simT    float64

	ye        float64 // 横向偏差 (m)，右侧为正
	courseErr float64 // 航向与航段航迹向之差 (rad)
	piPath    float64 // 当前航段的航迹向 (rad)

	collisionFlag bool

	state   []float64
	Rewards PathRewardBreakdown

	nextVesselID uint64

	// --- 回合内累计统计 ---
	epRewardSum  PathRewardBreakdown
	collisionCnt int
	finished     bool
}

// NewPathEnv 是 PathEnv 的构造函数。
func NewPathEnv(cfg PathEnvConfig) (*PathEnv, error) {
	if cfg.Hull == nil {
		cfg.Hull = KVLCC2()
	}
	if cfg.NTSMax < 0 {
		return nil, fmt.Errorf("交通船数量上限不能为负: %d", cfg.NTSMax)
	}
	return &PathEnv{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		nLoops: int(PathLoopSeconds / PathDeltaT),
	}, nil
}

func (env *PathEnv) allocID() uint64 {
	id := env.nextVesselID
	env.nextVesselID++
	return id
}

// ObservationSize 返回观测向量长度: 本船/航路特征加定长交通船槽位。
func (env *PathEnv) ObservationSize() int {
	return pathNumObsOS + PathNumObsTS*env.cfg.NTSMax
}

// ActionSize 返回动作向量长度: 航向增量，开启推力控制后另加速度增量。
func (env *PathEnv) ActionSize() int {
	if env.cfg.ThrustControl {
		return 2
	}
	return 1
}

func (env *PathEnv) uniform(lo, hi float64) float64 {
	return lo + env.rng.Float64()*(hi-lo)
}

// generatePath 生成一条航迹向缓慢随机游走的全局航路。
func (env *PathEnv) generatePath() {
	env.Path = make([]Waypoint, PathNumWps)
	env.courses = make([]float64, PathNumWps-1)

	n, e := 0.0, 0.0
	course := 0.0
	for i := 0; i < PathNumWps; i++ {
		env.Path[i] = Waypoint{N: n, E: e}
		if i < PathNumWps-1 {
			course += DTR(env.uniform(-5, 5))
			env.courses[i] = AngleTo2Pi(course)
			n += PathWpSpacing * math.Cos(course)
			e += PathWpSpacing * math.Sin(course)
		}
	}
}

// spawnTraffic 按通航属性投放一条交通船:
// 快船从本船后方追上，逆向船从远处迎面驶来，普通船在前方慢速同向航行。
func (env *PathEnv) spawnTraffic() (pathTraffic, error) {
	lpp := env.cfg.Hull.Lpp

	var (
		offset float64 // 沿航路相对本船的弧长偏移 (m)
		speed  float64
		revDir bool
		speedy bool
	)

	switch p := env.rng.Float64(); {
	case p < 0.25:
		speedy = true
		offset = -env.uniform(3, 10) * lpp
		speed = env.uniform(1.2, 1.5) * PathDesiredV
	case p < 0.5:
		revDir = true
		offset = env.uniform(10, 40) * lpp
		speed = env.uniform(0.5, 0.9) * PathDesiredV
	default:
		offset = env.uniform(5, 20) * lpp
		speed = env.uniform(0.3, 0.8) * PathDesiredV
	}

	arc := env.arcOfOS() + offset
	if arc <= 0 {
		// 回合刚开始时本船还在航路起点，后方没有投放空间，
		// 改投前方，快船仍以高速完成追越
		arc = env.arcOfOS() + env.uniform(13, 20)*lpp
	}
	wp, n, e := env.pointAtArc(arc)

	head := env.courses[wp]
	if revDir {
		head = AngleTo2Pi(head + math.Pi)
	}

	probe := NewVessel(0, env.cfg.Hull, 0, 0, 0, 0, 0, 0, 0, PathDeltaT, math.Inf(1), math.Inf(1))
	nps, err := probe.NpsFromU(speed)
	if err != nil {
		return pathTraffic{}, fmt.Errorf("交通船转速求解失败: %w", err)
	}

	ts := NewVessel(env.allocID(), env.cfg.Hull, n, e, head, speed, 0, 0, nps, PathDeltaT, math.Inf(1), math.Inf(1))
	return pathTraffic{Vessel: ts, revDir: revDir, speedy: speedy, wp1: wp}, nil
}

// arcOfOS 返回本船当前位置在航路上的近似弧长。
func (env *PathEnv) arcOfOS() float64 {
	wp1 := env.Path[env.osWp1]
	along := (env.OS.N-wp1.N)*math.Cos(env.courses[env.osWp1]) +
		(env.OS.E-wp1.E)*math.Sin(env.courses[env.osWp1])
	return float64(env.osWp1)*PathWpSpacing + along
}

// pointAtArc 返回给定弧长处的航段下标与坐标，弧长越界时截断到航路两端。
func (env *PathEnv) pointAtArc(arc float64) (wp int, n, e float64) {
	if arc < 0 {
		arc = 0
	}
	maxArc := float64(PathNumWps-1) * PathWpSpacing
	if arc > maxArc {
		arc = maxArc
	}

	wp = int(arc / PathWpSpacing)
	if wp > PathNumWps-2 {
		wp = PathNumWps - 2
	}
	rest := arc - float64(wp)*PathWpSpacing
	n = env.Path[wp].N + rest*math.Cos(env.courses[wp])
	e = env.Path[wp].E + rest*math.Sin(env.courses[wp])
	return wp, n, e
}

// updateWp 推进船舶所在的航段下标: 越过航段终点即切换到下一段。
func (env *PathEnv) updateWp(wp1 int, n, e float64) int {
	for wp1 < PathNumWps-2 {
		wp2 := env.Path[wp1+1]
		// 以航段航迹向为基准判断是否已越过 wp2
		along := (n-wp2.N)*math.Cos(env.courses[wp1]) + (e-wp2.E)*math.Sin(env.courses[wp1])
		if along < 0 {
			break
		}
		wp1++
	}
	return wp1
}

// setCrossTrack 计算本船相对当前航段的横向偏差与航向差。
func (env *PathEnv) setCrossTrack() {
	env.osWp1 = env.updateWp(env.osWp1, env.OS.N, env.OS.E)
	env.piPath = env.courses[env.osWp1]

	wp1 := env.Path[env.osWp1]
	env.ye = (env.OS.E-wp1.E)*math.Cos(env.piPath) - (env.OS.N-wp1.N)*math.Sin(env.piPath)
	env.courseErr = AngleToPi(env.OS.Psi - env.piPath)
}

// Reset 重置环境: 生成新航路，本船在起点以期望航速出发，投放交通流。
func (env *PathEnv) Reset() ([]float64, error) {
	env.stepCnt = 0
	env.simT = 0
	env.collisionFlag = false
	env.epRewardSum = PathRewardBreakdown{}
	env.collisionCnt = 0
	env.finished = false

	env.generatePath()

	env.osWp1 = 0
	env.OS = NewVessel(env.allocID(), env.cfg.Hull, env.Path[0].N, env.Path[0].E, env.courses[0],
		PathDesiredV, 0, 0, 0, PathDeltaT, math.Inf(1), math.Inf(1))
	nps, err := env.OS.NpsFromU(PathDesiredV)
	if err != nil {
		return nil, fmt.Errorf("本船初始化失败: %w", err)
	}
	env.OS.Nps = nps

	if env.cfg.NTSRandom {
		env.nTS = env.rng.Intn(env.cfg.NTSMax + 1)
	} else {
		env.nTS = env.cfg.NTSMax
	}

	env.TSs = env.TSs[:0]
	for i := 0; i < env.nTS; i++ {
		ts, err := env.spawnTraffic()
		if err != nil {
			return nil, fmt.Errorf("第 %d 条交通船投放失败: %w", i+1, err)
		}
		env.TSs = append(env.TSs, ts)
	}

	env.setCrossTrack()
	env.state = env.buildState()
	return append([]float64(nil), env.state...), nil
}

// Step 执行一个连续控制动作并推进一个决策步。
// 动作分量必须落在 [-1, 1] 内，维度由 ActionSize 决定。
func (env *PathEnv) Step(action []float64) (StepResult, error) {
	if len(action) != env.ActionSize() {
		return StepResult{}, fmt.Errorf("动作向量长度应为 %d，收到 %d", env.ActionSize(), len(action))
	}
	for i, a := range action {
		if a < -1 || a > 1 || math.IsNaN(a) {
			return StepResult{}, fmt.Errorf("动作分量 %d 越界: %g (应在 [-1, 1] 内)", i, a)
		}
	}

	// 航向控制: 规划层直接调整航向
	env.OS.Psi = AngleTo2Pi(env.OS.Psi + action[0]*PathDHeadScale)

	// 速度控制: 调整纵向速度并重解维持转速
	if env.cfg.ThrustControl {
		u := env.OS.U + action[1]*PathSurgeScale
		u = math.Min(math.Max(u, PathSurgeMin), PathSurgeMax)
		nps, err := env.OS.NpsFromU(u)
		if err != nil {
			return StepResult{}, fmt.Errorf("速度控制失败: %w", err)
		}
		env.OS.U = u
		env.OS.Nps = nps
	}

	// 本船动力学子步
	for i := 0; i < env.nLoops; i++ {
		env.OS.UpdateDynamics()
	}

	env.setCrossTrack()

	// 交通流子步: 动力学、重投放与沿航路的简单航向控制
	for i := 0; i < env.nLoops; i++ {
		for j := range env.TSs {
			env.TSs[j].UpdateDynamics()
		}
		if err := env.respawnTraffic(); err != nil {
			return StepResult{}, err
		}
		env.steerTraffic()
	}

	env.stepCnt++
	env.simT += float64(env.nLoops) * PathDeltaT

	env.checkCollision()

	env.state = env.buildState()
	env.calculateReward(action)
	done := env.isDone()

	env.epRewardSum.Ye += env.Rewards.Ye
	env.epRewardSum.Ce += env.Rewards.Ce
	env.epRewardSum.Coll += env.Rewards.Coll
	env.epRewardSum.Comf += env.Rewards.Comf
	env.epRewardSum.Speed += env.Rewards.Speed
	env.epRewardSum.Total += env.Rewards.Total

	return StepResult{
		Observation: append([]float64(nil), env.state...),
		Reward:      env.Rewards.Total,
		Done:        done,
		Info: map[string]float64{
			"r_ye":    env.Rewards.Ye,
			"r_ce":    env.Rewards.Ce,
			"r_coll":  env.Rewards.Coll,
			"r_comf":  env.Rewards.Comf,
			"r_speed": env.Rewards.Speed,
			"ye":      env.ye,
		},
	}, nil
}

// respawnTraffic 把与本船拉开过大弧长差的交通船重新投放。
func (env *PathEnv) respawnTraffic() error {
	lpp := env.cfg.Hull.Lpp
	osArc := env.arcOfOS()

	for i := range env.TSs {
		ts := &env.TSs[i]
		ts.wp1 = env.updateWp(ts.wp1, ts.N, ts.E)

		wp1 := env.Path[ts.wp1]
		along := (ts.N-wp1.N)*math.Cos(env.courses[ts.wp1]) + (ts.E-wp1.E)*math.Sin(env.courses[ts.wp1])
		tsArc := float64(ts.wp1)*PathWpSpacing + along

		gone := false
		if ts.speedy {
			// 快船越过本船足够远后离场
			gone = tsArc-osArc > 20*lpp
		} else {
			// 普通船与逆向船被甩在后方足够远后离场
			gone = osArc-tsArc > 20*lpp
		}
		if gone {
			newTS, err := env.spawnTraffic()
			if err != nil {
				return fmt.Errorf("交通船 %d 重投放失败: %w", ts.ID, err)
			}
			env.TSs[i] = newTS
		}
	}
	return nil
}

// steerTraffic 对交通船做沿航路的简单航向控制:
// 每个子步最多向航段航迹向修正一个小角度。
func (env *PathEnv) steerTraffic() {
	const maxTurn = 2.5 * math.Pi / 180.0

	for i := range env.TSs {
		ts := &env.TSs[i]
		target := env.courses[ts.wp1]
		if ts.revDir {
			target = AngleTo2Pi(target + math.Pi)
		}

		diff := AngleToPi(target - ts.Psi)
		if diff > maxTurn {
			diff = maxTurn
		} else if diff < -maxTurn {
			diff = -maxTurn
		}
		ts.Psi = AngleTo2Pi(ts.Psi + diff)
	}
}

// osDomain 计算本船相对某交通船的椭圆船舶领域半径。
func (env *PathEnv) osDomain(ts *Vessel) float64 {
	lpp := env.cfg.Hull.Lpp
	bng := BngRel(env.OS.N, env.OS.E, ts.N, ts.E, env.OS.Psi)
	return ShipDomainEllipse(pathDomainAFactor*lpp, pathDomainBFactor*lpp,
		pathDomainCFactor*lpp, pathDomainDFactor*lpp, bng)
}

// checkCollision 判断是否有交通船侵入本船的椭圆领域。
func (env *PathEnv) checkCollision() {
	env.collisionFlag = false
	for i := range env.TSs {
		ts := env.TSs[i].Vessel
		d := env.osDomain(ts)
		if ED(env.OS.N, env.OS.E, ts.N, ts.E, true) <= d {
			env.collisionFlag = true
			env.collisionCnt++
			return
		}
	}
}

// buildState 组装观测向量。交通船槽位按接近度升序排列
// (接近度越大越危险，最危险者位于末尾)，空位以幽灵船填充。
func (env *PathEnv) buildState() []float64 {
	os := env.OS
	lpp := env.cfg.Hull.Lpp

	state := make([]float64, 0, env.ObservationSize())

	// --- 本船与航路部分 ---
	if env.cfg.ThrustControl {
		state = append(state, os.U-PathDesiredV)
	} else {
		state = append(state, os.U/PathDesiredV)
	}
	state = append(state,
		AngleToPi(os.Psi-env.piPath)/math.Pi,
		env.ye/lpp,
	)

	// --- 交通船部分 ---
	type tsEntry struct {
		closeness float64
		features  [PathNumObsTS]float64
	}
	entries := make([]tsEntry, 0, env.cfg.NTSMax)

	for i := range env.TSs {
		ts := &env.TSs[i]

		d := env.osDomain(ts.Vessel)
		edTS := ED(os.N, os.E, ts.N, ts.E, true)
		closeness := 1.0 - (edTS-d)/(20*lpp)
		closeness = math.Min(math.Max(closeness, 0.0), 1.0)

		vTS := ts.Speed() / PathDesiredV
		if env.cfg.ThrustControl {
			vTS = ts.Speed() - PathDesiredV
		}

		dir := 1.0
		if ts.revDir {
			dir = -1.0
		}
		spd := -1.0
		if ts.speedy {
			spd = 1.0
		}

		entries = append(entries, tsEntry{
			closeness: closeness,
			features: [PathNumObsTS]float64{
				closeness,
				AngleToPi(BngRel(os.N, os.E, ts.N, ts.E, os.Psi)) / math.Pi,
				AngleToPi(ts.Psi-env.piPath) / math.Pi,
				vTS,
				dir,
				spd,
			},
		})
	}

	// 幽灵船填充到定长
	for len(entries) < env.cfg.NTSMax {
		entries = append(entries, tsEntry{
			features: [PathNumObsTS]float64{0.0, -1.0, -1.0, 0.0, -1.0, -1.0},
		})
	}

	// 按接近度升序 (插入排序，规模很小)
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].closeness < entries[j-1].closeness; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	for _, en := range entries {
		state = append(state, en.features[:]...)
	}
	return state
}

// calculateReward 计算当前状态的奖励及其分解。
// 总奖励为加权和除以权重之和，权重全零时定义为 0。
func (env *PathEnv) calculateReward(action []float64) {
	os := env.OS
	lpp := env.cfg.Hull.Lpp
	w := env.cfg.Weights

	// 横向偏差项
	const kYe = 0.05
	rYe := math.Exp(-kYe * math.Abs(env.ye))

	// 航向背离项
	rCe := 0.0
	if math.Abs(AngleToPi(os.Psi-env.piPath)) >= math.Pi/2 {
		rCe = -10.0
	}

	// 避碰与通航习惯项
	rColl := 0.0
	for i := range env.TSs {
		ts := &env.TSs[i]

		d := env.osDomain(ts.Vessel)
		edTS := ED(os.N, os.E, ts.N, ts.E, true)
		if edTS <= d {
			rColl -= 10.0
		} else {
			rColl -= math.Exp(-(edTS - d) / 200.0)
		}

		// 从交通船视角看本船的相对方位 (rad)
		bngPers := BngRel(ts.N, ts.E, os.N, os.E, ts.Psi)

		switch {
		// 快船应从本船左舷通过: 本船不得占据其左前方通道
		case ts.speedy:
			if bngPers >= DTR(180) && bngPers <= DTR(270) && edTS <= 10*lpp {
				rColl -= 10.0
			}
		// 逆向来船应右舷对右舷通过: 不得从其左舷一侧穿越
		case ts.revDir:
			if bngPers <= DTR(90) && edTS <= 10*lpp {
				rColl -= 10.0
			}
		// 普通船应从其左舷被追越
		default:
			if bngPers >= DTR(90) && bngPers <= DTR(180) {
				l := (10.0 - 5.0/math.Pi*bngPers) * lpp
				if edTS <= l {
					rColl -= 10.0
				}
			}
		}
	}

	// 舒适性与航速项 (仅推力控制模式)
	rComf := 0.0
	rSpeed := 0.0
	if env.cfg.ThrustControl {
		rComf = -action[1] * action[1]
		rSpeed = math.Max(-(os.U-PathDesiredV)*(os.U-PathDesiredV), -1.0)
	}

	wSum := w.Ye + w.Ce + w.Coll
	total := w.Ye*rYe + w.Ce*rCe + w.Coll*rColl
	if env.cfg.ThrustControl {
		wSum += w.Comf + w.Speed
		total += w.Comf*rComf + w.Speed*rSpeed
	}
	if wSum != 0.0 {
		total /= wSum
	} else {
		total = 0.0
	}

	env.Rewards = PathRewardBreakdown{
		Ye:    rYe,
		Ce:    rCe,
		Coll:  rColl,
		Comf:  rComf,
		Speed: rSpeed,
		Total: total,
	}
}

// isDone 判断回合是否结束: 脱离航路、接近终点或步数用尽。
func (env *PathEnv) isDone() bool {
	if math.Abs(env.ye) > PathYeBound {
		return true
	}
	if env.osWp1 >= int(0.9*float64(PathNumWps)) {
		env.finished = true
		return true
	}
	return env.stepCnt >= PathMaxEpisodeSteps
}
