// C:/workspace/go/Marine-Simulator-Go/agent/dqn.go
package agent

import (
	"fmt"
	"math/rand"
)

// DQNConfig 是 DQNAgent 的超参数集合。
type DQNConfig struct {
	Mode       Mode
	NumActions int

	// Pretrained 表示在线网络是否已由外部载入先验权重。
	// 评估模式下必须为 true。
	Pretrained bool

	Double bool // 是否使用 Double-DQN 目标

	Gamma         float64
	EpsDecay      float64 // ε 的乘性衰减系数
	EpsFinal      float64
	NSteps        int // n 步回报的步数
	TgtUpdateFreq int // 每多少次梯度更新做一次目标网络硬同步
	BatchSize     int

	Seed int64
}

// DefaultDQNConfig 返回原始超参数下的训练配置。
func DefaultDQNConfig(numActions int) DQNConfig {
	return DQNConfig{
		Mode:          ModeTrain,
		NumActions:    numActions,
		Gamma:         0.99,
		EpsDecay:      0.995,
		EpsFinal:      0.001,
		NSteps:        1,
		TgtUpdateFreq: 256,
		BatchSize:     128,
		Seed:          1,
	}
}

// DQNAgent 编排 DQN 的决策与训练循环:
// ε-贪心探索、经验回放、n 步目标与目标网络硬同步。
// 网络本体与回放缓冲由外部注入。
type DQNAgent struct {
	cfg DQNConfig
	rng *rand.Rand

	online QFunction
	target QFunction
	buffer ReplayBuffer

	epsilon  float64
	tgtUpCnt int
}

// NewDQNAgent 是 DQNAgent 的构造函数。
// 目标网络在构造时与在线网络硬同步一次。
func NewDQNAgent(cfg DQNConfig, online, target QFunction, buffer ReplayBuffer) (*DQNAgent, error) {
	if cfg.Mode != ModeTrain && cfg.Mode != ModeTest {
		return nil, fmt.Errorf("未知的工作模式 %q (合法值: train, test)", cfg.Mode)
	}
	if cfg.Mode == ModeTest && !cfg.Pretrained {
		return nil, fmt.Errorf("评估模式要求已载入先验权重")
	}
	if cfg.NumActions <= 0 {
		return nil, fmt.Errorf("动作数量必须为正: %d", cfg.NumActions)
	}
	if cfg.NSteps < 1 {
		return nil, fmt.Errorf("n 步回报的步数不能小于 1: %d", cfg.NSteps)
	}
	if online == nil {
		return nil, fmt.Errorf("缺少在线 Q 网络")
	}
	if cfg.Mode == ModeTrain {
		if target == nil {
			return nil, fmt.Errorf("训练模式缺少目标 Q 网络")
		}
		if buffer == nil {
			return nil, fmt.Errorf("训练模式缺少经验回放缓冲")
		}
		if err := target.CopyFrom(online); err != nil {
			return nil, fmt.Errorf("目标网络初始同步失败: %w", err)
		}
	}

	return &DQNAgent{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		online:  online,
		target:  target,
		buffer:  buffer,
		epsilon: 1.0,
	}, nil
}

// Epsilon 返回当前的探索率。
func (ag *DQNAgent) Epsilon() float64 {
	return ag.epsilon
}

// SelectAction 做一次 ε-贪心决策。训练模式下每次调用后 ε 乘性衰减，
// 评估模式下始终取贪心动作且不衰减。
func (ag *DQNAgent) SelectAction(state []float64) (int, error) {
	var a int

	if ag.cfg.Mode == ModeTrain && ag.rng.Float64() < ag.epsilon {
		a = ag.rng.Intn(ag.cfg.NumActions)
	} else {
		q, err := ag.online.Predict(state)
		if err != nil {
			return 0, fmt.Errorf("Q 值预测失败: %w", err)
		}
		if len(q) != ag.cfg.NumActions {
			return 0, fmt.Errorf("Q 网络输出维度 %d 与动作数量 %d 不符", len(q), ag.cfg.NumActions)
		}
		a = argmax(q)
	}

	if ag.cfg.Mode == ModeTrain {
		ag.epsilon *= ag.cfg.EpsDecay
		if ag.epsilon < ag.cfg.EpsFinal {
			ag.epsilon = ag.cfg.EpsFinal
		}
	}
	return a, nil
}

// Memorize 把一条转移样本存入回放缓冲。仅训练模式可用。
func (ag *DQNAgent) Memorize(state []float64, a int, reward float64, nextState []float64, done bool) error {
	if ag.cfg.Mode != ModeTrain {
		return fmt.Errorf("评估模式不存储经验")
	}
	ag.buffer.Add(Transition{
		State:     state,
		Action:    []float64{float64(a)},
		Reward:    reward,
		NextState: nextState,
		Done:      done,
	})
	return nil
}

// Train 抽取一个批次做一次梯度更新，必要时硬同步目标网络。返回损失。
func (ag *DQNAgent) Train() (float64, error) {
	if ag.cfg.Mode != ModeTrain {
		return 0, fmt.Errorf("评估模式不做训练")
	}

	batch, err := ag.buffer.Sample(ag.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("批次采样失败: %w", err)
	}

	states := make([][]float64, len(batch))
	actions := make([]int, len(batch))
	targets := make([]float64, len(batch))

	gammaN := 1.0
	for i := 0; i < ag.cfg.NSteps; i++ {
		gammaN *= ag.cfg.Gamma
	}

	for i, tr := range batch {
		states[i] = tr.State
		actions[i] = int(tr.Action[0])

		qTgt, err := ag.target.Predict(tr.NextState)
		if err != nil {
			return 0, fmt.Errorf("目标网络预测失败: %w", err)
		}

		var qNext float64
		if ag.cfg.Double {
			// Double-DQN: 在线网络选动作，目标网络估值
			qOnline, err := ag.online.Predict(tr.NextState)
			if err != nil {
				return 0, fmt.Errorf("在线网络预测失败: %w", err)
			}
			qNext = qTgt[argmax(qOnline)]
		} else {
			qNext = qTgt[argmax(qTgt)]
		}

		if tr.Done {
			targets[i] = tr.Reward
		} else {
			targets[i] = tr.Reward + gammaN*qNext
		}
	}

	loss, err := ag.online.Update(states, actions, targets)
	if err != nil {
		return 0, fmt.Errorf("Q 网络更新失败: %w", err)
	}

	ag.tgtUpCnt++
	if ag.tgtUpCnt%ag.cfg.TgtUpdateFreq == 0 {
		if err := ag.target.CopyFrom(ag.online); err != nil {
			return 0, fmt.Errorf("目标网络同步失败: %w", err)
		}
	}
	return loss, nil
}

func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}
