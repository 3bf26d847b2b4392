// C:/workspace/go/Marine-Simulator-Go/agent/tqc.go
package agent

import (
	"fmt"
	"sort"
)

// TQCConfig 是 TQCAgent 的超参数集合 (Kuznetsov et al. 2020)。
type TQCConfig struct {
	Mode      Mode
	ActionDim int

	// Pretrained 表示策略网络是否已由外部载入先验权重。
	Pretrained bool

	Gamma     float64
	PolyakTau float64 // 评论家目标网络软同步系数

	// TopQuantilesToDrop 是聚合后从目标分布高端截去的原子总数。
	TopQuantilesToDrop int

	// Alpha 是熵正则温度。自动温度调节属于外部优化器的职责，
	// 这里只消费当前值。
	Alpha float64

	BatchSize int
}

// DefaultTQCConfig 返回原始超参数下的训练配置。
func DefaultTQCConfig(actionDim int) TQCConfig {
	return TQCConfig{
		Mode:               ModeTrain,
		ActionDim:          actionDim,
		Gamma:              0.99,
		PolyakTau:          0.005,
		TopQuantilesToDrop: 2,
		Alpha:              0.2,
		BatchSize:          128,
	}
}

// TQCLosses 是一次训练更新产生的各项损失。
type TQCLosses struct {
	Critic float64
	Actor  float64
}

// TQCAgent 编排截断分位数评论家算法的训练循环:
// 目标分布由各评论家网络的分位数原子汇总排序后截去高端构成，
// 再叠加熵正则。策略、评论家与回放缓冲由外部注入。
type TQCAgent struct {
	cfg TQCConfig

	policy       StochasticPolicy
	critic       QuantileCritic
	criticTarget QuantileCritic
	buffer       ReplayBuffer
}

// NewTQCAgent 是 TQCAgent 的构造函数。
// 评论家目标在构造时与在线评论家完全同步 (tau=1)。
func NewTQCAgent(cfg TQCConfig, policy StochasticPolicy, critic, criticTarget QuantileCritic, buffer ReplayBuffer) (*TQCAgent, error) {
	if cfg.Mode != ModeTrain && cfg.Mode != ModeTest {
		return nil, fmt.Errorf("未知的工作模式 %q (合法值: train, test)", cfg.Mode)
	}
	if cfg.Mode == ModeTest && !cfg.Pretrained {
		return nil, fmt.Errorf("评估模式要求已载入先验权重")
	}
	if cfg.ActionDim <= 0 {
		return nil, fmt.Errorf("动作维度必须为正: %d", cfg.ActionDim)
	}
	if policy == nil {
		return nil, fmt.Errorf("缺少策略网络")
	}
	if cfg.Mode == ModeTrain {
		if critic == nil || criticTarget == nil {
			return nil, fmt.Errorf("训练模式缺少评论家网络")
		}
		if buffer == nil {
			return nil, fmt.Errorf("训练模式缺少经验回放缓冲")
		}
		total := critic.NumNets() * critic.NumQuantiles()
		if cfg.TopQuantilesToDrop < 0 || cfg.TopQuantilesToDrop >= total {
			return nil, fmt.Errorf("截断原子数 %d 必须落在 [0, %d) 内", cfg.TopQuantilesToDrop, total)
		}
		if err := criticTarget.BlendFrom(critic, 1.0); err != nil {
			return nil, fmt.Errorf("评论家目标初始同步失败: %w", err)
		}
	}

	return &TQCAgent{
		cfg:          cfg,
		policy:       policy,
		critic:       critic,
		criticTarget: criticTarget,
		buffer:       buffer,
	}, nil
}

// SelectAction 返回一个动作向量: 训练模式从策略分布采样，
// 评估模式取分布均值。
func (ag *TQCAgent) SelectAction(state []float64) ([]float64, error) {
	if ag.cfg.Mode == ModeTrain {
		a, _, err := ag.policy.Sample(state)
		if err != nil {
			return nil, fmt.Errorf("策略采样失败: %w", err)
		}
		return a, nil
	}
	a, err := ag.policy.Greedy(state)
	if err != nil {
		return nil, fmt.Errorf("策略评估失败: %w", err)
	}
	return a, nil
}

// Memorize 把一条转移样本存入回放缓冲。仅训练模式可用。
func (ag *TQCAgent) Memorize(state, action []float64, reward float64, nextState []float64, done bool) error {
	if ag.cfg.Mode != ModeTrain {
		return fmt.Errorf("评估模式不存储经验")
	}
	ag.buffer.Add(Transition{
		State:     state,
		Action:    action,
		Reward:    reward,
		NextState: nextState,
		Done:      done,
	})
	return nil
}

// Train 抽取一个批次，先更新评论家再更新策略，最后软同步评论家目标。
func (ag *TQCAgent) Train() (TQCLosses, error) {
	if ag.cfg.Mode != ModeTrain {
		return TQCLosses{}, fmt.Errorf("评估模式不做训练")
	}

	batch, err := ag.buffer.Sample(ag.cfg.BatchSize)
	if err != nil {
		return TQCLosses{}, fmt.Errorf("批次采样失败: %w", err)
	}

	keep := ag.critic.NumNets()*ag.critic.NumQuantiles() - ag.cfg.TopQuantilesToDrop

	states := make([][]float64, len(batch))
	actions := make([][]float64, len(batch))
	targets := make([][]float64, len(batch))

	for i, tr := range batch {
		states[i] = tr.State
		actions[i] = tr.Action

		// 下一状态的动作由当前策略给出
		aNext, logPi, err := ag.policy.Sample(tr.NextState)
		if err != nil {
			return TQCLosses{}, fmt.Errorf("下一动作采样失败: %w", err)
		}

		// 汇总所有评论家目标网络的分位数原子并升序排序
		perNet, err := ag.criticTarget.Quantiles(tr.NextState, aNext)
		if err != nil {
			return TQCLosses{}, fmt.Errorf("目标分位数计算失败: %w", err)
		}
		var atoms []float64
		for _, z := range perNet {
			atoms = append(atoms, z...)
		}
		sort.Float64s(atoms)

		// 截去高端原子后构造带熵正则的分布目标
		atoms = atoms[:keep]
		tgt := make([]float64, keep)
		for k, z := range atoms {
			if tr.Done {
				tgt[k] = tr.Reward
			} else {
				tgt[k] = tr.Reward + ag.cfg.Gamma*(z-ag.cfg.Alpha*logPi)
			}
		}
		targets[i] = tgt
	}

	criticLoss, err := ag.critic.Update(states, actions, targets)
	if err != nil {
		return TQCLosses{}, fmt.Errorf("评论家更新失败: %w", err)
	}

	actorLoss, err := ag.policy.Improve(states, ag.critic, ag.cfg.Alpha)
	if err != nil {
		return TQCLosses{}, fmt.Errorf("策略更新失败: %w", err)
	}

	if err := ag.criticTarget.BlendFrom(ag.critic, ag.cfg.PolyakTau); err != nil {
		return TQCLosses{}, fmt.Errorf("评论家目标软同步失败: %w", err)
	}

	return TQCLosses{Critic: criticLoss, Actor: actorLoss}, nil
}
