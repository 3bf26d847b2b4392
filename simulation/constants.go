// C:/workspace/go/Marine-Simulator-Go/simulation/constants.go
package simulation

// ==========================================================
// 目标导航环境的默认参数 (模型尺度，缩尺比 255 的 KVLCC2)
// ==========================================================

const (
	// DefaultDeltaT 是仿真积分步长 (s)。
	DefaultDeltaT = 0.5

	// DefaultNMax / DefaultEMax 是地图的北向与东向边界 (m)。
	DefaultNMax = 200.0
	DefaultEMax = 200.0

	// DefaultSight 是本船的视距 (m)，视距外的目标船不参与观测与规则判定。
	DefaultSight = 100.0

	// DefaultCollisionDist 是判定碰撞的距离阈值 (m)。
	DefaultCollisionDist = 6.275

	// DefaultTCPACrit 是会遇场景生成所参照的临界最近会遇时间 (s)。
	DefaultTCPACrit = 120.0

	// DefaultMinDistSpawnTS 是目标船投放时彼此间的最小间距 (m)。
	DefaultMinDistSpawnTS = 20.0

	// DefaultGoalReachDist 是判定抵达目标点的距离阈值 (m)。
	DefaultGoalReachDist = 10.0

	// DefaultStopSpawnDist 是停止重生目标船的目标点距离阈值 (m)。
	DefaultStopSpawnDist = 5 * DefaultGoalReachDist

	// DefaultMaxEpisodeSteps 是单回合的步数上限。
	DefaultMaxEpisodeSteps = 500

	// NumObsOS 是观测向量中本船部分的特征数 (含目标点信息)。
	NumObsOS = 9
	// NumObsTS 是观测向量中每条目标船的特征数。
	NumObsTS = 6

	// MaxSpawnTries 是场景生成拒绝采样的重试上限。
	// 超过该上限说明约束组合 (间距、地图尺寸、船数) 不可满足。
	MaxSpawnTries = 100

	// DefaultHullScale 是默认船型的傅汝德缩尺比。
	DefaultHullScale = 255.0

	// DefaultNTSMax 是默认的目标船数量上限。
	DefaultNTSMax = 3

	// DefaultOSSpeed 是本船的巡航速度 (m/s，模型尺度)。
	DefaultOSSpeed = 0.6

	// TSSpeedMin / TSSpeedMax 是目标船投放速度的采样区间 (m/s)。
	TSSpeedMin = 0.2
	TSSpeedMax = 0.9
)

// 目标船数量递增课程的外层步数阈值。
const (
	CurriculumStage1 = 1_000_000
	CurriculumStage2 = 2_000_000
	CurriculumStage3 = 3_000_000
)
