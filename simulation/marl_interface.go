// C:/workspace/go/Marine-Simulator-Go/simulation/marl_interface.go
package simulation

// StateDesign 表示观测向量的组织方式。
type StateDesign int

const (
	// StateDesignRecDQN 输出定长观测: 目标船槽位按风险降序排列，
	// 空槽位以 NaN 哨兵填充，供循环网络按序消费。
	StateDesignRecDQN StateDesign = iota
	// StateDesignMaxRisk 只输出风险最高的一条目标船。
	StateDesignMaxRisk
)

// StepResult 封装环境执行一个动作后的完整结果。
// 这是强化学习训练端看到的统一外部接口。
type StepResult struct {
	Observation []float64
	Reward      float64
	Done        bool // 标志着一个回合是否结束
	Info        map[string]float64
}

// Environment 是两类仿真环境 (目标导航与航路跟踪) 的公共接口。
// Reset 重置并返回初始观测；Step 执行动作并推进一个时间步。
// 动作向量的语义由具体环境决定: 目标导航环境取单元素的离散动作编号，
// 航路跟踪环境取连续的 [-1, 1] 控制分量。
type Environment interface {
	Reset() ([]float64, error)
	Step(action []float64) (StepResult, error)
	ObservationSize() int
	ActionSize() int
}
