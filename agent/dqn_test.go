package agent

import (
	"fmt"
	"math"
	"testing"
)

// --- 测试替身 ---

// fakeQ 是一个可编程的 Q 函数替身，记录每次更新的回归目标。
type fakeQ struct {
	q []float64 // 对任意状态都返回的 Q 值

	updateCnt   int
	lastTargets []float64
	lastActions []int

	copyCnt int
}

func (f *fakeQ) Predict(state []float64) ([]float64, error) {
	return append([]float64(nil), f.q...), nil
}

func (f *fakeQ) Update(states [][]float64, actions []int, targets []float64) (float64, error) {
	f.updateCnt++
	f.lastActions = append([]int(nil), actions...)
	f.lastTargets = append([]float64(nil), targets...)
	return 0.1, nil
}

func (f *fakeQ) CopyFrom(src QFunction) error {
	f.copyCnt++
	if s, ok := src.(*fakeQ); ok {
		f.q = append([]float64(nil), s.q...)
	}
	return nil
}

// fakeBuffer 是一个确定性的回放缓冲替身，按先入先出顺序返回批次。
type fakeBuffer struct {
	data []Transition
}

func (f *fakeBuffer) Add(t Transition) { f.data = append(f.data, t) }

func (f *fakeBuffer) Sample(batchSize int) ([]Transition, error) {
	if len(f.data) < batchSize {
		return nil, fmt.Errorf("样本不足: 需要 %d, 仅有 %d", batchSize, len(f.data))
	}
	return f.data[:batchSize], nil
}

func (f *fakeBuffer) Len() int { return len(f.data) }

// --- 测试 ---

// TestNewDQNAgentValidation 测试构造参数的校验。
func TestNewDQNAgentValidation(t *testing.T) {
	online := &fakeQ{q: []float64{0, 0, 0}}
	target := &fakeQ{}
	buf := &fakeBuffer{}

	cfg := DefaultDQNConfig(3)
	cfg.Mode = "explore"
	if _, err := NewDQNAgent(cfg, online, target, buf); err == nil {
		t.Errorf("未知工作模式应返回错误")
	}

	cfg = DefaultDQNConfig(3)
	cfg.Mode = ModeTest
	if _, err := NewDQNAgent(cfg, online, nil, nil); err == nil {
		t.Errorf("评估模式未载入先验权重应返回错误")
	}

	cfg = DefaultDQNConfig(0)
	if _, err := NewDQNAgent(cfg, online, target, buf); err == nil {
		t.Errorf("零动作数量应返回错误")
	}

	cfg = DefaultDQNConfig(3)
	cfg.NSteps = 0
	if _, err := NewDQNAgent(cfg, online, target, buf); err == nil {
		t.Errorf("n 步回报步数为零应返回错误")
	}

	cfg = DefaultDQNConfig(3)
	if _, err := NewDQNAgent(cfg, online, nil, buf); err == nil {
		t.Errorf("训练模式缺少目标网络应返回错误")
	}
}

// TestDQNInitialTargetSync 测试构造时目标网络与在线网络硬同步。
func TestDQNInitialTargetSync(t *testing.T) {
	online := &fakeQ{q: []float64{1, 2, 3}}
	target := &fakeQ{}
	if _, err := NewDQNAgent(DefaultDQNConfig(3), online, target, &fakeBuffer{}); err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if target.copyCnt != 1 {
		t.Errorf("构造时应硬同步一次, 同步了 %d 次", target.copyCnt)
	}
	if len(target.q) != 3 || target.q[2] != 3 {
		t.Errorf("目标网络未复制在线网络参数: %v", target.q)
	}
}

// TestEpsilonDecay 测试训练模式下 ε 的乘性衰减与下限。
func TestEpsilonDecay(t *testing.T) {
	online := &fakeQ{q: []float64{0, 1, 0}}
	ag, err := NewDQNAgent(DefaultDQNConfig(3), online, &fakeQ{}, &fakeBuffer{})
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}

	if ag.Epsilon() != 1.0 {
		t.Fatalf("初始 ε 应为 1.0, 得到 %g", ag.Epsilon())
	}

	state := []float64{0}
	for i := 0; i < 10; i++ {
		if _, err := ag.SelectAction(state); err != nil {
			t.Fatalf("决策失败: %v", err)
		}
	}
	want := math.Pow(0.995, 10)
	if math.Abs(ag.Epsilon()-want) > 1e-12 {
		t.Errorf("10 次决策后 ε: 期望 %g, 得到 %g", want, ag.Epsilon())
	}

	// 衰减到下限后不再下降
	for i := 0; i < 3000; i++ {
		_, _ = ag.SelectAction(state)
	}
	if ag.Epsilon() != 0.001 {
		t.Errorf("ε 应停在下限 0.001, 得到 %g", ag.Epsilon())
	}
}

// TestTestModeGreedy 测试评估模式始终取贪心动作且不衰减 ε。
func TestTestModeGreedy(t *testing.T) {
	online := &fakeQ{q: []float64{0.1, 0.9, 0.5}}

	cfg := DefaultDQNConfig(3)
	cfg.Mode = ModeTest
	cfg.Pretrained = true
	ag, err := NewDQNAgent(cfg, online, nil, nil)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}

	for i := 0; i < 5; i++ {
		a, err := ag.SelectAction([]float64{0})
		if err != nil {
			t.Fatalf("决策失败: %v", err)
		}
		if a != 1 {
			t.Errorf("贪心动作应为 1, 得到 %d", a)
		}
	}
	if ag.Epsilon() != 1.0 {
		t.Errorf("评估模式不应衰减 ε, 得到 %g", ag.Epsilon())
	}

	// 评估模式不存储经验
	if err := ag.Memorize([]float64{0}, 1, 0, []float64{0}, false); err == nil {
		t.Errorf("评估模式存储经验应返回错误")
	}
}

// TestDQNTrainTarget 测试 n 步目标的计算。
func TestDQNTrainTarget(t *testing.T) {
	online := &fakeQ{q: []float64{0, 0, 0}}
	target := &fakeQ{}
	buf := &fakeBuffer{}

	cfg := DefaultDQNConfig(3)
	cfg.NSteps = 2
	cfg.BatchSize = 1
	ag, err := NewDQNAgent(cfg, online, target, buf)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}

	// 同步后再改目标网络输出，使其与在线网络可区分
	target.q = []float64{10, 20, 5}

	if err := ag.Memorize([]float64{1}, 2, 1.0, []float64{2}, false); err != nil {
		t.Fatalf("存储经验失败: %v", err)
	}

	if _, err := ag.Train(); err != nil {
		t.Fatalf("训练失败: %v", err)
	}

	// 非终止样本: target = r + γ² · max_a Q_tgt = 1 + 0.99² · 20
	want := 1.0 + 0.99*0.99*20
	if math.Abs(target1(t, online)-want) > 1e-12 {
		t.Errorf("n 步目标: 期望 %g, 得到 %g", want, target1(t, online))
	}
	if online.lastActions[0] != 2 {
		t.Errorf("更新动作下标: 期望 2, 得到 %d", online.lastActions[0])
	}
}

// TestDQNTrainDoubleAndDone 测试 Double-DQN 目标与终止样本。
func TestDQNTrainDoubleAndDone(t *testing.T) {
	// 在线网络认为动作 0 最优，目标网络在动作 0 上给低估值
	online := &fakeQ{q: []float64{5, 1, 0}}
	target := &fakeQ{}
	buf := &fakeBuffer{}

	cfg := DefaultDQNConfig(3)
	cfg.Double = true
	cfg.BatchSize = 1
	ag, err := NewDQNAgent(cfg, online, target, buf)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	target.q = []float64{10, 20, 5}

	if err := ag.Memorize([]float64{1}, 0, 2.0, []float64{2}, false); err != nil {
		t.Fatalf("存储经验失败: %v", err)
	}
	if _, err := ag.Train(); err != nil {
		t.Fatalf("训练失败: %v", err)
	}

	// Double-DQN: 在线网络选动作 0，目标网络在该动作上的估值为 10
	want := 2.0 + 0.99*10
	if math.Abs(target1(t, online)-want) > 1e-12 {
		t.Errorf("Double-DQN 目标: 期望 %g, 得到 %g", want, target1(t, online))
	}

	// 终止样本: 目标等于即时奖励
	buf.data = []Transition{{State: []float64{1}, Action: []float64{1}, Reward: 3.0, NextState: []float64{2}, Done: true}}
	if _, err := ag.Train(); err != nil {
		t.Fatalf("训练失败: %v", err)
	}
	if target1(t, online) != 3.0 {
		t.Errorf("终止样本目标应为即时奖励 3.0, 得到 %g", target1(t, online))
	}
}

// TestDQNTargetHardSync 测试每隔固定更新次数做一次目标网络硬同步。
func TestDQNTargetHardSync(t *testing.T) {
	online := &fakeQ{q: []float64{0, 0}}
	target := &fakeQ{}
	buf := &fakeBuffer{}

	cfg := DefaultDQNConfig(2)
	cfg.BatchSize = 1
	cfg.TgtUpdateFreq = 2
	ag, err := NewDQNAgent(cfg, online, target, buf)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if err := ag.Memorize([]float64{1}, 0, 0, []float64{2}, false); err != nil {
		t.Fatalf("存储经验失败: %v", err)
	}

	// 构造时同步 1 次；第 2 次训练后再同步 1 次
	for i := 0; i < 2; i++ {
		if _, err := ag.Train(); err != nil {
			t.Fatalf("训练失败: %v", err)
		}
	}
	if target.copyCnt != 2 {
		t.Errorf("期望同步 2 次, 得到 %d", target.copyCnt)
	}

	// 再训练 2 次，累计同步 3 次
	for i := 0; i < 2; i++ {
		if _, err := ag.Train(); err != nil {
			t.Fatalf("训练失败: %v", err)
		}
	}
	if target.copyCnt != 3 {
		t.Errorf("期望同步 3 次, 得到 %d", target.copyCnt)
	}
}

// target1 取最近一次更新的第一个回归目标。
func target1(t *testing.T, q *fakeQ) float64 {
	t.Helper()
	if len(q.lastTargets) == 0 {
		t.Fatalf("尚未发生任何更新")
	}
	return q.lastTargets[0]
}
