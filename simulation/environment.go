// C:/workspace/go/Marine-Simulator-Go/simulation/environment.go
package simulation

import (
	"fmt"
	"math"
	"math/rand"
)

// RewardWeights 是目标导航环境五个奖励分量的权重。
type RewardWeights struct {
	Dist   float64
	Head   float64
	Coll   float64
	COLREG float64
	Comf   float64
}

// DefaultRewardWeights 返回全 1 权重。
func DefaultRewardWeights() RewardWeights {
	return RewardWeights{Dist: 1, Head: 1, Coll: 1, COLREG: 1, Comf: 1}
}

// RewardBreakdown 记录一步内各奖励分量的取值，供统计与调试使用。
type RewardBreakdown struct {
	Dist   float64
	Head   float64
	Coll   float64
	COLREG float64
	Comf   float64
	Total  float64
}

// EnvConfig 是目标导航环境的构造参数。零值字段由 DefaultEnvConfig 填充。
type EnvConfig struct {
	Hull *HullParams // 为 nil 时取 KVLCC2().Scaled(DefaultHullScale)

	DeltaT          float64
	NMax            float64
	EMax            float64
	Sight           float64
	CollisionDist   float64
	TCPACrit        float64
	MinDistSpawnTS  float64
	GoalReachDist   float64
	StopSpawnDist   float64
	MaxEpisodeSteps int

	NTSMax        int
	NTSRandom     bool // 每回合在 [0, NTSMax] 内随机取目标船数
	NTSIncreasing bool // 随训练进度按课程递增目标船数，与 NTSRandom 互斥

	StateDesign   StateDesign
	RespawnPolicy RespawnPolicy
	Weights       RewardWeights

	Seed int64
}

// DefaultEnvConfig 返回模型尺度下的默认环境配置。
func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		Hull:            KVLCC2().Scaled(DefaultHullScale),
		DeltaT:          DefaultDeltaT,
		NMax:            DefaultNMax,
		EMax:            DefaultEMax,
		Sight:           DefaultSight,
		CollisionDist:   DefaultCollisionDist,
		TCPACrit:        DefaultTCPACrit,
		MinDistSpawnTS:  DefaultMinDistSpawnTS,
		GoalReachDist:   DefaultGoalReachDist,
		StopSpawnDist:   DefaultStopSpawnDist,
		MaxEpisodeSteps: DefaultMaxEpisodeSteps,
		NTSMax:          DefaultNTSMax,
		StateDesign:     StateDesignRecDQN,
		RespawnPolicy:   RespawnPolicyRespawn,
		Weights:         DefaultRewardWeights(),
		Seed:            1,
	}
}

// TrajPoint 是航迹中的一个采样点。
type TrajPoint struct {
	N   float64
	E   float64
	Psi float64
	T   float64 // 仿真时刻 (s)
}

// Env 是目标导航避碰环境: 本船需在存在交通流的地图上抵达目标点，
// 同时遵守避碰规则。整个环境严格单线程、回合制推进。
type Env struct {
	cfg     EnvConfig
	rng     *rand.Rand
	spawner *TrafficSpawner

	OS  *Vessel
	TSs []*Vessel

	GoalN float64
	GoalE float64

	goalInitED float64
	nTS        int

	situations    []Situation
	situationsOld []Situation
	respawnFlags  []bool

	stepCnt      int
	outerStepCnt int
	simT         float64

	state   []float64
	Rewards RewardBreakdown

	// 按船舶标识归档的航迹。目标船重生后获得新标识，
	// 因此旧航迹与新航迹天然分属两条记录。
	Trajectories map[uint64][]TrajPoint

	nextVesselID uint64

	// --- 回合内累计统计，供数据收集器读取 ---
	epRewardSum   RewardBreakdown
	collisionCnt  int
	situationCnt  [6]int
	goalReached   bool
}

// NewEnv 是 Env 的构造函数。配置不合法时返回错误。
func NewEnv(cfg EnvConfig) (*Env, error) {
	if cfg.Hull == nil {
		cfg.Hull = KVLCC2().Scaled(DefaultHullScale)
	}
	if cfg.NTSRandom && cfg.NTSIncreasing {
		return nil, fmt.Errorf("NTSRandom 与 NTSIncreasing 互斥，不能同时开启")
	}
	if cfg.NTSMax < 0 {
		return nil, fmt.Errorf("目标船数量上限不能为负: %d", cfg.NTSMax)
	}
	if cfg.DeltaT <= 0 {
		return nil, fmt.Errorf("积分步长必须为正: %g", cfg.DeltaT)
	}

	env := &Env{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	env.spawner = NewTrafficSpawner(env.rng, cfg.Hull, cfg.DeltaT, cfg.NMax, cfg.EMax,
		cfg.TCPACrit, cfg.MinDistSpawnTS, cfg.StopSpawnDist, cfg.RespawnPolicy, env.allocID)
	return env, nil
}

// allocID 分配回合内唯一的船舶标识。
func (env *Env) allocID() uint64 {
	id := env.nextVesselID
	env.nextVesselID++
	return id
}

// ObservationSize 返回观测向量的长度，在一次回合内恒定。
func (env *Env) ObservationSize() int {
	if env.cfg.StateDesign == StateDesignMaxRisk {
		return NumObsOS + NumObsTS
	}
	return NumObsOS + NumObsTS*env.cfg.NTSMax
}

// ActionSize 返回动作向量的长度。目标导航环境取单元素离散动作。
func (env *Env) ActionSize() int {
	return 1
}

// Reset 重置环境: 采样出发点/目标点布局，投放目标船，返回初始观测。
func (env *Env) Reset() ([]float64, error) {
	env.stepCnt = 0
	env.simT = 0
	env.epRewardSum = RewardBreakdown{}
	env.collisionCnt = 0
	env.situationCnt = [6]int{}
	env.goalReached = false
	env.Trajectories = make(map[uint64][]TrajPoint)

	// 四种出发点/目标点布局: 北上、东进、南下、西行，航向带小扰动
	var nInit, eInit, head float64
	switch env.rng.Intn(4) {
	case 0:
		env.GoalN, env.GoalE = 0.9*env.cfg.NMax, 0.5*env.cfg.EMax
		nInit, eInit = 0.1*env.cfg.NMax, 0.5*env.cfg.EMax
		head = AngleTo2Pi(DTR(env.uniform(-10, 10)))
	case 1:
		env.GoalN, env.GoalE = 0.5*env.cfg.NMax, 0.9*env.cfg.EMax
		nInit, eInit = 0.5*env.cfg.NMax, 0.1*env.cfg.EMax
		head = DTR(env.uniform(35, 55))
	case 2:
		env.GoalN, env.GoalE = 0.1*env.cfg.NMax, 0.5*env.cfg.EMax
		nInit, eInit = 0.9*env.cfg.NMax, 0.5*env.cfg.EMax
		head = DTR(env.uniform(170, 190))
	default:
		env.GoalN, env.GoalE = 0.5*env.cfg.NMax, 0.1*env.cfg.EMax
		nInit, eInit = 0.5*env.cfg.NMax, 0.9*env.cfg.EMax
		head = DTR(env.uniform(260, 280))
	}

	// 本船以巡航速度的收敛转速出发。若不预先收敛速度，
	// 后续所有 TCPA 计算都会被起步加速段严重扭曲。
	env.OS = NewVessel(env.allocID(), env.cfg.Hull, nInit, eInit, head,
		DefaultOSSpeed, 0.0, 0.0, 0.0, env.cfg.DeltaT, env.cfg.NMax, env.cfg.EMax)
	nps, err := env.OS.NpsFromU(DefaultOSSpeed)
	if err != nil {
		return nil, fmt.Errorf("本船初始化失败: %w", err)
	}
	env.OS.Nps = nps

	env.goalInitED = ED(nInit, eInit, env.GoalN, env.GoalE, true)

	// 目标船数量: 固定、随机或按课程递增
	switch {
	case env.cfg.NTSRandom:
		env.nTS = env.rng.Intn(env.cfg.NTSMax + 1)
	case env.cfg.NTSIncreasing:
		switch {
		case env.outerStepCnt <= CurriculumStage1:
			env.nTS = 0
		case env.outerStepCnt <= CurriculumStage2:
			env.nTS = 1
		case env.outerStepCnt <= CurriculumStage3:
			env.nTS = 2
		default:
			env.nTS = 3
		}
	default:
		env.nTS = env.cfg.NTSMax
	}

	env.TSs = env.TSs[:0]
	for i := 0; i < env.nTS; i++ {
		ts, err := env.spawner.SpawnTS(env.OS, env.GoalN, env.GoalE, env.TSs)
		if err != nil {
			return nil, fmt.Errorf("第 %d 条目标船投放失败: %w", i+1, err)
		}
		env.TSs = append(env.TSs, ts)
	}

	env.situations = make([]Situation, env.nTS)
	env.situationsOld = make([]Situation, env.nTS)
	env.respawnFlags = make([]bool, env.nTS)
	env.setSituations()

	env.recordTrajectories()

	env.state = env.buildState()
	return append([]float64(nil), env.state...), nil
}

func (env *Env) uniform(lo, hi float64) float64 {
	return lo + env.rng.Float64()*(hi-lo)
}

// Step 执行一个离散舵机动作并推进一个时间步。
// 动作向量必须恰为单元素，取值 0/1/2。
func (env *Env) Step(action []float64) (StepResult, error) {
	if len(action) != 1 {
		return StepResult{}, fmt.Errorf("目标导航环境的动作向量长度必须为 1，收到 %d", len(action))
	}
	a := int(math.Round(action[0]))

	if err := env.OS.Control(a); err != nil {
		return StepResult{}, err
	}
	env.OS.UpdateDynamics()

	for _, ts := range env.TSs {
		ts.UpdateDynamics()
	}

	// 目标船的越界与脱离处置
	if env.nTS > 0 {
		for i, ts := range env.TSs {
			others := make([]*Vessel, 0, len(env.TSs)-1)
			for j, o := range env.TSs {
				if j != i {
					others = append(others, o)
				}
			}
			newTS, respawned, err := env.spawner.HandleRespawn(ts, env.OS, env.GoalN, env.GoalE, others)
			if err != nil {
				return StepResult{}, fmt.Errorf("目标船 %d 重生失败: %w", ts.ID, err)
			}
			env.TSs[i] = newTS
			env.respawnFlags[i] = respawned
		}
	}

	env.setSituations()

	env.stepCnt++
	env.simT += env.cfg.DeltaT
	if env.cfg.NTSIncreasing {
		env.outerStepCnt++
	}

	env.recordTrajectories()

	env.state = env.buildState()
	env.calculateReward()
	done := env.isDone()

	env.epRewardSum.Dist += env.Rewards.Dist
	env.epRewardSum.Head += env.Rewards.Head
	env.epRewardSum.Coll += env.Rewards.Coll
	env.epRewardSum.COLREG += env.Rewards.COLREG
	env.epRewardSum.Comf += env.Rewards.Comf
	env.epRewardSum.Total += env.Rewards.Total

	return StepResult{
		Observation: append([]float64(nil), env.state...),
		Reward:      env.Rewards.Total,
		Done:        done,
		Info: map[string]float64{
			"r_dist":   env.Rewards.Dist,
			"r_head":   env.Rewards.Head,
			"r_coll":   env.Rewards.Coll,
			"r_colreg": env.Rewards.COLREG,
			"r_comf":   env.Rewards.Comf,
		},
	}, nil
}

// setSituations 为每条目标船判定当前会遇局面，旧局面归档备查。
func (env *Env) setSituations() {
	copy(env.situationsOld, env.situations)
	for i, ts := range env.TSs {
		env.situations[i] = ClassifySituation(env.OS, ts, env.cfg.Sight)
		env.situationCnt[env.situations[i]]++
	}
}

// recordTrajectories 把当前所有船舶位置追加到各自的航迹。
func (env *Env) recordTrajectories() {
	env.Trajectories[env.OS.ID] = append(env.Trajectories[env.OS.ID],
		TrajPoint{N: env.OS.N, E: env.OS.E, Psi: env.OS.Psi, T: env.simT})
	for _, ts := range env.TSs {
		env.Trajectories[ts.ID] = append(env.Trajectories[ts.ID],
			TrajPoint{N: ts.N, E: ts.E, Psi: ts.Psi, T: env.simT})
	}
}

// shipDomain 计算本船相对某目标船的幂律船舶领域半径。
func (env *Env) shipDomain(ts *Vessel) float64 {
	vRel := RelativeSpeed(env.OS.Speed(), env.OS.Course(), ts.Speed(), ts.Course())
	return ShipDomainPowerLaw(env.OS.Hull.Lpp, env.OS.Speed(), vRel)
}

// buildState 组装观测向量。每次调用都基于当前环境状态重新计算，
// 重复调用在环境未推进时结果一致。
func (env *Env) buildState() []float64 {
	os := env.OS
	n0, e0, head0 := os.N, os.E, os.Psi

	state := make([]float64, 0, env.ObservationSize())

	// --- 本船部分 ---
	state = append(state,
		os.U,
		os.V,
		os.R,
		AngleToPi(head0)/math.Pi,
		os.RDot,
		os.PsiDot,
		os.RudAngle/os.RudAngleMax,
	)

	// --- 目标点部分 ---
	goalED := ED(n0, e0, env.GoalN, env.GoalE, true)
	state = append(state,
		AngleToPi(BngRel(n0, e0, env.GoalN, env.GoalE, head0))/math.Pi,
		goalED/env.cfg.EMax,
	)

	// --- 目标船部分，按风险比 (距离/船舶领域) 降序排列 ---
	type tsEntry struct {
		ratio    float64
		features [NumObsTS]float64
	}
	var entries []tsEntry

	for i, ts := range env.TSs {
		edTS := ED(n0, e0, ts.N, ts.E, true)
		if edTS > env.cfg.Sight {
			continue
		}

		domain := env.shipDomain(ts)
		inside := 0.0
		if edTS <= domain {
			inside = 1.0
		}

		entries = append(entries, tsEntry{
			ratio: edTS / domain,
			features: [NumObsTS]float64{
				edTS / env.cfg.EMax,
				AngleToPi(BngRel(n0, e0, ts.N, ts.E, head0)) / math.Pi,
				AngleToPi(HeadInter(head0, ts.Psi)) / math.Pi,
				ts.Speed(),
				float64(env.situations[i]),
				inside,
			},
		})
	}

	// 降序排列后，风险最高的目标船位于末尾 (插入排序，规模很小)
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].ratio > entries[j-1].ratio; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	if env.cfg.StateDesign == StateDesignMaxRisk {
		if len(entries) == 0 {
			state = append(state, make([]float64, NumObsTS)...)
		} else {
			last := entries[len(entries)-1]
			state = append(state, last.features[:]...)
		}
		return state
	}

	// RecDQN: 依序展开全部可见目标船，右侧以 NaN 哨兵补齐到定长
	for _, en := range entries {
		state = append(state, en.features[:]...)
	}
	for len(state) < env.ObservationSize() {
		state = append(state, math.NaN())
	}
	return state
}

// calculateReward 计算当前状态的奖励及其分解。
// 总奖励为各分量的加权和，不做权重归一化。
func (env *Env) calculateReward() {
	w := env.cfg.Weights
	os := env.OS
	n0, e0, head0 := os.N, os.E, os.Psi

	// 1. 距离项 (Xu et al. 2022, Neurocomputing)
	goalED := ED(n0, e0, env.GoalN, env.GoalE, true)
	rDist := -goalED / env.cfg.EMax

	// 2. 航向项
	rHead := -3 * math.Abs(AngleToPi(BngRel(n0, e0, env.GoalN, env.GoalE, head0))) / math.Pi

	// 3./4. 碰撞与避碰规则项
	rColl := 0.0
	rCOLREG := 0.0

	for i, ts := range env.TSs {
		edTS := ED(n0, e0, ts.N, ts.E, true)

		if edTS <= env.cfg.CollisionDist {
			rColl -= 10
			env.collisionCnt++
		}

		// 刚重生的目标船不参与规则评价
		if env.respawnFlags[i] {
			continue
		}

		t := TCPA(n0, e0, ts.N, ts.E, os.Course(), ts.Course(), os.Speed(), ts.Speed())
		if edTS <= env.cfg.Sight && t >= 0 {
			switch {
			// 对遇与右舷小角交叉应右转 (r ≥ 0)
			case (env.situations[i] == SituationHeadOn || env.situations[i] == SituationCrossSmall) && os.R < 0:
				rCOLREG -= 3.0
			// 右舷大角交叉应左转 (r ≤ 0)
			case env.situations[i] == SituationCrossLarge && os.R > 0:
				rCOLREG -= 3.0
			}
		}
	}

	// 5. 舒适性项: 惩罚艏摇角速度
	rComf := -10 * os.R * os.R

	env.Rewards = RewardBreakdown{
		Dist:   rDist,
		Head:   rHead,
		Coll:   rColl,
		COLREG: rCOLREG,
		Comf:   rComf,
		Total:  w.Dist*rDist + w.Head*rHead + w.Coll*rColl + w.COLREG*rCOLREG + w.Comf*rComf,
	}
}

// isDone 判断回合是否结束: 抵达目标点或步数用尽。碰撞不终止回合。
func (env *Env) isDone() bool {
	if ED(env.OS.N, env.OS.E, env.GoalN, env.GoalE, true) <= env.cfg.GoalReachDist {
		env.goalReached = true
		return true
	}
	return env.stepCnt >= env.cfg.MaxEpisodeSteps
}
