// C:/workspace/go/Marine-Simulator-Go/simulation/stats.go
package simulation

// VesselSnapshot 是单条船舶的瞬时状态，供可视化端渲染。
type VesselSnapshot struct {
	ID        uint64  `json:"id"`
	IsOwnShip bool    `json:"is_own_ship"`
	N         float64 `json:"n"`
	E         float64 `json:"e"`
	Psi       float64 `json:"psi"`
	Speed     float64 `json:"speed"`
	Situation string  `json:"situation"`
}

// Snapshot 是一个时间步的完整环境快照。
type Snapshot struct {
	Step    int              `json:"step"`
	SimTime float64          `json:"sim_time"`
	GoalN   float64          `json:"goal_n"`
	GoalE   float64          `json:"goal_e"`
	Vessels []VesselSnapshot `json:"vessels"`
	Reward  RewardBreakdown  `json:"reward"`
}

// GetSnapshot 返回当前时间步的环境快照。只读，不影响仿真状态。
func (env *Env) GetSnapshot() Snapshot {
	snap := Snapshot{
		Step:    env.stepCnt,
		SimTime: env.simT,
		GoalN:   env.GoalN,
		GoalE:   env.GoalE,
		Reward:  env.Rewards,
	}

	snap.Vessels = append(snap.Vessels, VesselSnapshot{
		ID:        env.OS.ID,
		IsOwnShip: true,
		N:         env.OS.N,
		E:         env.OS.E,
		Psi:       env.OS.Psi,
		Speed:     env.OS.Speed(),
	})
	for i, ts := range env.TSs {
		snap.Vessels = append(snap.Vessels, VesselSnapshot{
			ID:        ts.ID,
			N:         ts.N,
			E:         ts.E,
			Psi:       ts.Psi,
			Speed:     ts.Speed(),
			Situation: env.situations[i].String(),
		})
	}
	return snap
}

// EpisodeStats 是一个回合结束后的累计统计，Excel 自动统计需要该结构。
type EpisodeStats struct {
	Steps        int
	SimTime      float64
	GoalReached  bool
	Collisions   int
	RewardSum    RewardBreakdown
	SituationCnt [6]int // 按 Situation 枚举下标计数 (逐步累计)
	NumTS        int
}

// GetRawStats 返回当前回合的累计统计。
func (env *Env) GetRawStats() EpisodeStats {
	return EpisodeStats{
		Steps:        env.stepCnt,
		SimTime:      env.simT,
		GoalReached:  env.goalReached,
		Collisions:   env.collisionCnt,
		RewardSum:    env.epRewardSum,
		SituationCnt: env.situationCnt,
		NumTS:        env.nTS,
	}
}

// PathEpisodeStats 是航路环境一个回合的累计统计。
type PathEpisodeStats struct {
	Steps      int
	SimTime    float64
	Finished   bool // 是否到达航路末端
	Collisions int
	RewardSum  PathRewardBreakdown
	FinalYe    float64
	NumTS      int
}

// GetRawStats 返回航路环境当前回合的累计统计。
func (env *PathEnv) GetRawStats() PathEpisodeStats {
	return PathEpisodeStats{
		Steps:      env.stepCnt,
		SimTime:    env.simT,
		Finished:   env.finished,
		Collisions: env.collisionCnt,
		RewardSum:  env.epRewardSum,
		FinalYe:    env.ye,
		NumTS:      env.nTS,
	}
}

// GetSnapshot 返回航路环境当前时间步的快照。
// 目标点字段填充当前航段终点，供渲染端画出期望航向。
func (env *PathEnv) GetSnapshot() Snapshot {
	wp2 := env.Path[env.osWp1+1]
	snap := Snapshot{
		Step:    env.stepCnt,
		SimTime: env.simT,
		GoalN:   wp2.N,
		GoalE:   wp2.E,
	}

	snap.Vessels = append(snap.Vessels, VesselSnapshot{
		ID:        env.OS.ID,
		IsOwnShip: true,
		N:         env.OS.N,
		E:         env.OS.E,
		Psi:       env.OS.Psi,
		Speed:     env.OS.Speed(),
	})
	for i := range env.TSs {
		ts := &env.TSs[i]
		kind := "同向"
		if ts.revDir {
			kind = "逆向"
		} else if ts.speedy {
			kind = "快船"
		}
		snap.Vessels = append(snap.Vessels, VesselSnapshot{
			ID:        ts.ID,
			N:         ts.N,
			E:         ts.E,
			Psi:       ts.Psi,
			Speed:     ts.Speed(),
			Situation: kind,
		})
	}
	return snap
}
