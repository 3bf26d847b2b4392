package simulation

import (
	"math"
	"testing"
)

// TestNewEnvValidation 测试环境构造参数的校验。
func TestNewEnvValidation(t *testing.T) {
	// 1. 随机船数与课程递增互斥
	cfg := DefaultEnvConfig()
	cfg.NTSRandom = true
	cfg.NTSIncreasing = true
	if _, err := NewEnv(cfg); err == nil {
		t.Errorf("NTSRandom 与 NTSIncreasing 同时开启应返回错误")
	}

	// 2. 目标船数量不能为负
	cfg = DefaultEnvConfig()
	cfg.NTSMax = -1
	if _, err := NewEnv(cfg); err == nil {
		t.Errorf("负的目标船数量上限应返回错误")
	}

	// 3. 积分步长必须为正
	cfg = DefaultEnvConfig()
	cfg.DeltaT = 0
	if _, err := NewEnv(cfg); err == nil {
		t.Errorf("零积分步长应返回错误")
	}
}

// TestObservationSize 测试两种观测设计的向量长度。
func TestObservationSize(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 3
	cfg.StateDesign = StateDesignRecDQN
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if got := env.ObservationSize(); got != NumObsOS+NumObsTS*3 {
		t.Errorf("RecDQN 观测长度: 期望 %d, 得到 %d", NumObsOS+NumObsTS*3, got)
	}

	cfg.StateDesign = StateDesignMaxRisk
	env, err = NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if got := env.ObservationSize(); got != NumObsOS+NumObsTS {
		t.Errorf("MaxRisk 观测长度: 期望 %d, 得到 %d", NumObsOS+NumObsTS, got)
	}
}

// TestResetDeterminism 测试相同种子下初始观测可复现。
func TestResetDeterminism(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.Seed = 42

	env1, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	obs1, err := env1.Reset()
	if err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	env2, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	obs2, err := env2.Reset()
	if err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	if len(obs1) != env1.ObservationSize() {
		t.Fatalf("观测长度错误: 期望 %d, 得到 %d", env1.ObservationSize(), len(obs1))
	}
	for i := range obs1 {
		same := obs1[i] == obs2[i] || (math.IsNaN(obs1[i]) && math.IsNaN(obs2[i]))
		if !same {
			t.Fatalf("相同种子下第 %d 维观测不一致: %g vs %g", i, obs1[i], obs2[i])
		}
	}
}

// TestResetWithoutTraffic 测试零目标船时的观测填充。
func TestResetWithoutTraffic(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0

	// RecDQN 设计: 没有可见目标船时右侧槽位不存在 (NTSMax=0)
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	obs, err := env.Reset()
	if err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}
	if len(obs) != NumObsOS {
		t.Fatalf("观测长度错误: 期望 %d, 得到 %d", NumObsOS, len(obs))
	}

	// MaxRisk 设计: 没有可见目标船时目标船槽位全为零
	cfg.StateDesign = StateDesignMaxRisk
	env, err = NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	obs, err = env.Reset()
	if err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}
	for i := NumObsOS; i < len(obs); i++ {
		if obs[i] != 0 {
			t.Errorf("无目标船时 MaxRisk 槽位第 %d 维应为 0, 得到 %g", i, obs[i])
		}
	}
}

// TestNaNPadding 测试 RecDQN 设计下空槽位以 NaN 哨兵补齐。
func TestNaNPadding(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 2
	cfg.NTSRandom = false

	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	obs, err := env.Reset()
	if err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	if len(obs) != NumObsOS+2*NumObsTS {
		t.Fatalf("观测长度错误: 期望 %d, 得到 %d", NumObsOS+2*NumObsTS, len(obs))
	}

	// 槽位要么承载完整的目标船特征 (无 NaN)，要么整槽为 NaN
	for slot := 0; slot < 2; slot++ {
		start := NumObsOS + slot*NumObsTS
		nanCnt := 0
		for i := start; i < start+NumObsTS; i++ {
			if math.IsNaN(obs[i]) {
				nanCnt++
			}
		}
		if nanCnt != 0 && nanCnt != NumObsTS {
			t.Errorf("槽位 %d 出现部分 NaN (%d/%d)", slot, nanCnt, NumObsTS)
		}
	}
}

// TestStepValidation 测试非法动作向量的拒绝。
func TestStepValidation(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	if _, err := env.Step([]float64{0, 1}); err == nil {
		t.Errorf("多元素动作向量应返回错误")
	}
	if _, err := env.Step([]float64{5}); err == nil {
		t.Errorf("未定义的动作编号应返回错误")
	}
}

// TestStepRewardComposition 测试总奖励等于各分量的加权和 (不做归一化)。
func TestStepRewardComposition(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0
	cfg.Weights = RewardWeights{Dist: 2, Head: 0.5, Coll: 1, COLREG: 1, Comf: 3}

	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	res, err := env.Step([]float64{float64(ActionKeepRudder)})
	if err != nil {
		t.Fatalf("执行动作失败: %v", err)
	}

	want := 2*res.Info["r_dist"] + 0.5*res.Info["r_head"] +
		res.Info["r_coll"] + res.Info["r_colreg"] + 3*res.Info["r_comf"]
	if math.Abs(res.Reward-want) > 1e-12 {
		t.Errorf("总奖励应为加权和: 期望 %g, 得到 %g", want, res.Reward)
	}

	// 无目标船时碰撞项与规则项为零
	if res.Info["r_coll"] != 0 || res.Info["r_colreg"] != 0 {
		t.Errorf("无目标船时碰撞/规则项应为 0: %g, %g",
			res.Info["r_coll"], res.Info["r_colreg"])
	}
}

// TestGoalReachedEndsEpisode 测试抵达目标点立即结束回合。
func TestGoalReachedEndsEpisode(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	// 把本船直接搬到目标点旁
	env.OS.N = env.GoalN
	env.OS.E = env.GoalE

	res, err := env.Step([]float64{float64(ActionKeepRudder)})
	if err != nil {
		t.Fatalf("执行动作失败: %v", err)
	}
	if !res.Done {
		t.Errorf("抵达目标点后回合应结束")
	}

	stats := env.GetRawStats()
	if !stats.GoalReached {
		t.Errorf("统计中应记录到达目标")
	}
}

// TestEpisodeStepCap 测试步数上限终止回合。
func TestEpisodeStepCap(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0
	cfg.MaxEpisodeSteps = 3

	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	for i := 1; i <= 3; i++ {
		res, err := env.Step([]float64{float64(ActionKeepRudder)})
		if err != nil {
			t.Fatalf("第 %d 步执行失败: %v", i, err)
		}
		if i < 3 && res.Done {
			t.Fatalf("第 %d 步不应结束回合", i)
		}
		if i == 3 && !res.Done {
			t.Fatalf("第 3 步应达到步数上限")
		}
	}
}

// TestTrajectoriesRecorded 测试航迹随步数增长。
func TestTrajectoriesRecorded(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := env.Step([]float64{float64(ActionKeepRudder)}); err != nil {
			t.Fatalf("执行动作失败: %v", err)
		}
	}

	traj := env.Trajectories[env.OS.ID]
	if len(traj) != 6 { // 初始点 + 5 步
		t.Errorf("期望航迹点数 6, 得到 %d", len(traj))
	}
}

// TestSnapshot 测试环境快照的内容。
func TestSnapshot(t *testing.T) {
	cfg := DefaultEnvConfig()
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	snap := env.GetSnapshot()
	if len(snap.Vessels) != 1+cfg.NTSMax {
		t.Fatalf("快照船舶数: 期望 %d, 得到 %d", 1+cfg.NTSMax, len(snap.Vessels))
	}
	if !snap.Vessels[0].IsOwnShip {
		t.Errorf("快照首条记录应为本船")
	}
	if snap.GoalN != env.GoalN || snap.GoalE != env.GoalE {
		t.Errorf("快照目标点与环境不一致")
	}
}

// TestCollisionPenaltyAtThreshold 测试目标船恰在碰撞距离上时触发碰撞惩罚。
func TestCollisionPenaltyAtThreshold(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 1

	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	// 1. 本船置于原点，目标船沿单轴偏移恰好一个碰撞距离，
	//    保证欧氏距离不带浮点放置误差
	env.OS.N, env.OS.E = 0, 0
	env.TSs[0].N, env.TSs[0].E = cfg.CollisionDist, 0

	env.calculateReward()
	if env.Rewards.Coll > -10 {
		t.Errorf("阈值上的目标船应触发碰撞惩罚, 得到 %g", env.Rewards.Coll)
	}
	if env.GetRawStats().Collisions < 1 {
		t.Errorf("碰撞计数应被累计")
	}

	// 2. 略微越过阈值则不触发
	env.TSs[0].N = cfg.CollisionDist * 1.01
	env.calculateReward()
	if env.Rewards.Coll != 0 {
		t.Errorf("阈值外的目标船不应触发碰撞惩罚, 得到 %g", env.Rewards.Coll)
	}
}

// TestObservationRebuildStable 测试环境未推进时重复组装观测结果一致。
func TestObservationRebuildStable(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.Seed = 7

	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	s1 := env.buildState()
	s2 := env.buildState()

	if len(s1) != len(s2) || len(s1) != env.ObservationSize() {
		t.Fatalf("观测长度不一致: %d vs %d", len(s1), len(s2))
	}
	for i := range s1 {
		same := s1[i] == s2[i] || (math.IsNaN(s1[i]) && math.IsNaN(s2[i]))
		if !same {
			t.Fatalf("第 %d 维观测在重复组装后不一致: %g vs %g", i, s1[i], s2[i])
		}
	}
}

// TestSailToGoalWithoutTraffic 测试零目标船时本船在动力学推进下
// 由基线舵策略驶抵目标点并结束回合。
func TestSailToGoalWithoutTraffic(t *testing.T) {
	cfg := DefaultEnvConfig()
	cfg.NTSMax = 0
	cfg.MaxEpisodeSteps = 3000

	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("环境创建失败: %v", err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatalf("环境重置失败: %v", err)
	}

	if ED(env.OS.N, env.OS.E, env.GoalN, env.GoalE, true) <= cfg.GoalReachDist {
		t.Fatalf("出发点不应已在目标点旁")
	}

	// 朝目标方位打舵，偏差小于 5° 时保舵
	reached := false
	for i := 0; i < cfg.MaxEpisodeSteps; i++ {
		bng := AngleToPi(BngRel(env.OS.N, env.OS.E, env.GoalN, env.GoalE, env.OS.Psi))
		a := ActionKeepRudder
		switch {
		case bng > DTR(5):
			a = ActionIncreaseRudder
		case bng < -DTR(5):
			a = ActionDecreaseRudder
		}

		res, err := env.Step([]float64{float64(a)})
		if err != nil {
			t.Fatalf("第 %d 步执行失败: %v", i+1, err)
		}
		if res.Done {
			reached = true
			break
		}
	}

	if !reached {
		t.Fatalf("本船未能在步数上限内驶抵目标点")
	}
	if !env.GetRawStats().GoalReached {
		t.Errorf("统计中应记录到达目标")
	}
	if got := ED(env.OS.N, env.OS.E, env.GoalN, env.GoalE, true); got > cfg.GoalReachDist {
		t.Errorf("回合结束时本船应位于目标点 %g m 内, 得到 %g", cfg.GoalReachDist, got)
	}
}
