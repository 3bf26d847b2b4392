// C:/workspace/go/Marine-Simulator-Go/environment/server.go
package environment

import (
	"Marine-Simulator/collector" // 导入 collector 包
	"Marine-Simulator/config"
	"Marine-Simulator/protos"
	"Marine-Simulator/simulation"
	"context"
	"fmt"
	"log"
)

// Server 结构体实现了 gRPC 服务，并持有整个仿真环境的状态。
// 环境严格回合制推进，服务端不做任何并发控制: gRPC 训练端
// 按 Reset/Step 串行驱动即可。
type Server struct {
	protos.UnimplementedRLEnvironmentServer

	config Config

	// 仿真核心组件
	env       simulation.Environment
	goalEnv   *simulation.Env     // Settings.Mode == goal 时非空
	pathEnv   *simulation.PathEnv // Settings.Mode == path 时非空
	collector *collector.DataCollector

	// 回合控制
	isDone     bool
	episodeCnt int
}

// NewServer 创建一个新的环境服务器，并接收一个配置对象。
func NewServer(cfg Config) (*Server, error) {
	s := &Server{
		config: cfg,
	}

	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}

	var err error
	switch cfg.Settings.Mode {
	case config.ModeGoal:
		s.goalEnv, err = BuildGoalEnv(cfg.Settings)
		if err != nil {
			return nil, err
		}
		s.env = s.goalEnv
	case config.ModePath:
		s.pathEnv, err = BuildPathEnv(cfg.Settings)
		if err != nil {
			return nil, err
		}
		s.env = s.pathEnv
	}

	if cfg.ReportStats {
		s.collector = collector.NewDataCollector(config.ReportDir, false)
	}
	return s, nil
}

// BuildGoalEnv 按外部设置构造目标导航环境。
func BuildGoalEnv(st config.EnvSettings) (*simulation.Env, error) {
	policy, err := simulation.ParseRespawnPolicy(st.RespawnPolicy)
	if err != nil {
		return nil, err
	}

	envCfg := simulation.DefaultEnvConfig()
	envCfg.NTSMax = st.NTSMax
	envCfg.NTSRandom = st.NTSRandom
	envCfg.NTSIncreasing = st.NTSIncreasing
	envCfg.RespawnPolicy = policy
	envCfg.Seed = st.Seed
	envCfg.Weights = simulation.RewardWeights{
		Dist:   st.GoalWeights.Dist,
		Head:   st.GoalWeights.Head,
		Coll:   st.GoalWeights.Coll,
		COLREG: st.GoalWeights.Colreg,
		Comf:   st.GoalWeights.Comf,
	}
	switch st.StateDesign {
	case config.StateDesignMaxRisk:
		envCfg.StateDesign = simulation.StateDesignMaxRisk
	default:
		envCfg.StateDesign = simulation.StateDesignRecDQN
	}

	return simulation.NewEnv(envCfg)
}

// BuildPathEnv 按外部设置构造航路跟踪环境。
func BuildPathEnv(st config.EnvSettings) (*simulation.PathEnv, error) {
	envCfg := simulation.DefaultPathEnvConfig()
	envCfg.NTSMax = st.NTSMax
	envCfg.NTSRandom = st.NTSRandom
	envCfg.ThrustControl = st.ThrustControl
	envCfg.Seed = st.Seed
	envCfg.Weights = simulation.PathRewardWeights{
		Ye:    st.PathWeights.Ye,
		Ce:    st.PathWeights.Ce,
		Coll:  st.PathWeights.Coll,
		Comf:  st.PathWeights.Comf,
		Speed: st.PathWeights.Speed,
	}

	return simulation.NewPathEnv(envCfg)
}

// initializeSimulation 负责重置环境并开启一个新回合。
func (s *Server) initializeSimulation() ([]float64, error) {
	log.Println("--- Initializing/Resetting Simulation Environment ---")
	s.isDone = false
	s.episodeCnt++

	obs, err := s.env.Reset()
	if err != nil {
		return nil, fmt.Errorf("第 %d 回合初始化失败: %w", s.episodeCnt, err)
	}
	return obs, nil
}

// finishEpisode 在回合结束时归档统计数据。
func (s *Server) finishEpisode() {
	if s.collector == nil {
		return
	}
	if s.goalEnv != nil {
		s.collector.CollectGoalEpisode(s.episodeCnt, s.goalEnv.GetRawStats())
	} else {
		s.collector.CollectPathEpisode(s.episodeCnt, s.pathEnv.GetRawStats())
	}
	// 每回合都落盘一次，训练中途被杀掉也不丢数据
	_ = s.collector.SaveFinalReport()
}

// Reset 实现了 gRPC 的 Reset 方法。
func (s *Server) Reset(ctx context.Context, req *protos.ResetRequest) (*protos.State, error) {
	obs, err := s.initializeSimulation()
	if err != nil {
		return nil, err
	}
	return &protos.State{Observation: obs}, nil
}

// Step 实现了 gRPC 的 Step 方法，这是 RL 的核心。
func (s *Server) Step(ctx context.Context, action *protos.Action) (*protos.StepResponse, error) {
	// 检查回合是否在上一步已经结束
	if s.isDone {
		log.Println("Episode is done, resetting for a new one...")
		obs, err := s.initializeSimulation()
		if err != nil {
			return nil, err
		}
		return &protos.StepResponse{
			NextState: &protos.State{Observation: obs},
			Reward:    0,
			Done:      true, // 告知训练端上一个 episode 确实结束了
		}, nil
	}

	// 1. 应用智能体的动作并推进一个时间步
	result, err := s.env.Step(action.Action)
	if err != nil {
		return nil, fmt.Errorf("动作执行失败: %w", err)
	}

	// 2. 检查回合是否在本步结束
	if result.Done {
		s.isDone = true
		log.Printf("Episode %d finished.", s.episodeCnt)
		s.finishEpisode()
	}

	return &protos.StepResponse{
		NextState: &protos.State{Observation: result.Observation},
		Reward:    result.Reward,
		Done:      result.Done,
	}, nil
}

// Close 释放服务器持有的资源。
func (s *Server) Close() {
	if s.collector != nil {
		s.collector.Close()
	}
}
