// C:/workspace/go/Marine-Simulator-Go/agent/interfaces.go
package agent

// 本包只承载训练循环的编排逻辑。函数逼近器 (神经网络)、优化器与
// 经验回放缓冲由外部实现注入，训练端通过以下接口与其交互。

// Transition 是一条经验回放样本。离散动作以单元素动作向量表示。
type Transition struct {
	State     []float64
	Action    []float64
	Reward    float64
	NextState []float64
	Done      bool
}

// ReplayBuffer 是经验回放缓冲的外部接口。
type ReplayBuffer interface {
	// Add 存入一条样本。
	Add(t Transition)
	// Sample 随机抽取一个批次，样本不足时返回错误。
	Sample(batchSize int) ([]Transition, error)
	// Len 返回当前样本数。
	Len() int
}

// QFunction 是离散动作价值函数的外部接口。
type QFunction interface {
	// Predict 返回给定状态下每个动作的 Q 值。
	Predict(state []float64) ([]float64, error)
	// Update 以给定的状态、动作与回归目标做一次梯度更新，返回损失。
	Update(states [][]float64, actions []int, targets []float64) (float64, error)
	// CopyFrom 把 src 的参数整体复制到自身 (硬同步)。
	CopyFrom(src QFunction) error
}

// StochasticPolicy 是连续动作随机策略的外部接口。
type StochasticPolicy interface {
	// Sample 从策略分布中采样一个动作，并返回其对数概率。
	Sample(state []float64) (action []float64, logProb float64, err error)
	// Greedy 返回分布均值对应的确定性动作，供评估模式使用。
	Greedy(state []float64) ([]float64, error)
	// Improve 以当前评论家为准做一次策略梯度更新，返回策略损失。
	Improve(states [][]float64, critic QuantileCritic, alpha float64) (float64, error)
}

// QuantileCritic 是分位数评论家集合 (多个网络) 的外部接口。
type QuantileCritic interface {
	// NumNets 返回评论家网络的数量。
	NumNets() int
	// NumQuantiles 返回每个网络输出的分位数原子数量。
	NumQuantiles() int
	// Quantiles 返回每个网络在 (s, a) 处的分位数估计，外层按网络索引。
	Quantiles(state, action []float64) ([][]float64, error)
	// Update 以截断后的目标分布做一次分位数回归更新，返回损失。
	Update(states [][]float64, actions [][]float64, targets [][]float64) (float64, error)
	// BlendFrom 按 polyak 系数 tau 向 src 软同步参数。
	BlendFrom(src QuantileCritic, tau float64) error
}

// Mode 表示智能体的工作模式。
type Mode string

const (
	// ModeTrain 训练模式: 探索、存样本、做梯度更新。
	ModeTrain Mode = "train"
	// ModeTest 评估模式: 只做确定性决策，要求已载入先验权重。
	ModeTest Mode = "test"
)
