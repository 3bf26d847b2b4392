// C:/workspace/go/Marine-Simulator-Go/main.go
package main

import (
	"Marine-Simulator/api"
	"Marine-Simulator/collector"
	"Marine-Simulator/config" // 导入 config 包
	"Marine-Simulator/environment"
	"Marine-Simulator/protos"
	"Marine-Simulator/simulation"
	"flag"
	"log"
	"math"
	"net"

	"google.golang.org/grpc"
)

func main() {
	configPath := flag.String("config", "", "环境设置 YAML 文件路径 (留空使用默认设置)")
	episodes := flag.Int("episodes", config.DefaultEpisodes, "基线驾驶模式下运行的回合数")
	serve := flag.Bool("serve", false, "以 gRPC 环境服务模式运行，供外部 RL 训练端驱动")
	addr := flag.String("addr", config.DefaultGRPCAddr, "gRPC 服务监听地址")
	viewer := flag.Bool("viewer", false, "开启 websocket 可视化服务")
	viewerAddr := flag.String("viewer-addr", config.DefaultViewerAddr, "可视化服务监听地址")
	withSteps := flag.Bool("steps", false, "报表中额外记录逐步快照")
	flag.Parse()

	log.Println("=============================================")
	log.Println("======  Marine Traffic RL Simulation  ======")
	log.Println("=============================================")

	// --- 1. 载入环境设置 ---
	settings := config.DefaultSettings()
	if *configPath != "" {
		loaded, err := config.FromYaml(*configPath)
		if err != nil {
			log.Fatalf("❌ 配置载入失败: %v", err)
		}
		settings = *loaded
	}
	log.Printf("加载配置: 环境模式=%s, 观测设计=%s, 重生策略=%s, 目标船上限=%d",
		settings.Mode, settings.StateDesign, settings.RespawnPolicy, settings.NTSMax)
	log.Println("=============================================")

	if *serve {
		runGRPCServer(settings, *addr)
		return
	}
	runBaseline(settings, *episodes, *viewer, *viewerAddr, *withSteps)
}

// runGRPCServer 以环境服务模式运行，由外部训练端通过 Reset/Step 驱动。
func runGRPCServer(settings config.EnvSettings, addr string) {
	srv, err := environment.NewServer(environment.Config{
		Settings:    settings,
		ReportStats: true,
	})
	if err != nil {
		log.Fatalf("❌ 环境服务器创建失败: %v", err)
	}
	defer srv.Close()

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("❌ 无法监听 %s: %v", addr, err)
	}

	grpcServer := grpc.NewServer()
	protos.RegisterRLEnvironmentServer(grpcServer, srv)

	log.Printf("🚀 RL 环境服务已启动，监听地址: %s", addr)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("❌ gRPC 服务异常退出: %v", err)
	}
}

// runBaseline 不接训练端，用内置的基线驾驶策略跑若干回合，
// 用于环境自检、报表生成与可视化联调。
func runBaseline(settings config.EnvSettings, episodes int, withViewer bool, viewerAddr string, withSteps bool) {
	var (
		goalEnv *simulation.Env
		pathEnv *simulation.PathEnv
		env     simulation.Environment
		err     error
	)
	if settings.Mode == config.ModePath {
		pathEnv, err = environment.BuildPathEnv(settings)
		env = pathEnv
	} else {
		goalEnv, err = environment.BuildGoalEnv(settings)
		env = goalEnv
	}
	if err != nil {
		log.Fatalf("❌ 环境创建失败: %v", err)
	}

	var vs *api.ViewerServer
	if withViewer {
		vs = api.NewViewerServer(viewerAddr)
		go func() {
			if err := vs.Run(); err != nil {
				log.Printf("❌ 可视化服务异常退出: %v", err)
			}
		}()
	}

	dc := collector.NewDataCollector(config.ReportDir, withSteps)
	defer dc.Close()

	log.Printf("🚢 开始基线驾驶，共 %d 个回合...", episodes)
	for ep := 1; ep <= episodes; ep++ {
		if _, err := env.Reset(); err != nil {
			log.Fatalf("❌ 第 %d 回合初始化失败: %v", ep, err)
		}

		for {
			var action []float64
			if pathEnv != nil {
				action = baselinePathAction(pathEnv, env.ActionSize())
			} else {
				action = baselineGoalAction(goalEnv)
			}

			result, err := env.Step(action)
			if err != nil {
				log.Fatalf("❌ 第 %d 回合执行失败: %v", ep, err)
			}

			snap := snapshotOf(goalEnv, pathEnv)
			if withSteps && snap.Step%config.StepSampleInterval == 0 {
				dc.CollectStepData(ep, snap)
			}
			if vs != nil {
				vs.Broadcast(snap)
			}

			if result.Done {
				break
			}
		}

		if goalEnv != nil {
			stats := goalEnv.GetRawStats()
			dc.CollectGoalEpisode(ep, stats)
			log.Printf("🏁 回合 %d 结束: 步数=%d, 到达目标=%v, 碰撞=%d, 总奖励=%.2f",
				ep, stats.Steps, stats.GoalReached, stats.Collisions, stats.RewardSum.Total)
		} else {
			stats := pathEnv.GetRawStats()
			dc.CollectPathEpisode(ep, stats)
			log.Printf("🏁 回合 %d 结束: 步数=%d, 完成航路=%v, 碰撞=%d, 总奖励=%.2f",
				ep, stats.Steps, stats.Finished, stats.Collisions, stats.RewardSum.Total)
		}
	}

	if err := dc.SaveFinalReport(); err == nil {
		log.Printf("📊 报表输出: %s", dc.Filename())
	}

	log.Println("=============================================")
	log.Println("===========  SIMULATION FINISHED  ===========")
	log.Println("=============================================")
}

// baselineGoalAction 是目标导航环境的基线驾驶策略:
// 朝目标方位打舵，偏差小于 5° 时保舵。
func baselineGoalAction(env *simulation.Env) []float64 {
	os := env.OS
	bng := simulation.AngleToPi(simulation.BngRel(os.N, os.E, env.GoalN, env.GoalE, os.Psi))
	switch {
	case bng > simulation.DTR(5):
		return []float64{float64(simulation.ActionIncreaseRudder)}
	case bng < -simulation.DTR(5):
		return []float64{float64(simulation.ActionDecreaseRudder)}
	default:
		return []float64{float64(simulation.ActionKeepRudder)}
	}
}

// baselinePathAction 是航路环境的基线驾驶策略:
// 按当前航段终点的相对方位做比例转向，纵向控制保持不变。
func baselinePathAction(env *simulation.PathEnv, actionSize int) []float64 {
	snap := env.GetSnapshot()
	os := env.OS
	bng := simulation.AngleToPi(simulation.BngRel(os.N, os.E, snap.GoalN, snap.GoalE, os.Psi))

	a1 := bng / simulation.PathDHeadScale
	a1 = math.Max(-1, math.Min(1, a1))

	action := make([]float64, actionSize)
	action[0] = a1
	return action
}

// snapshotOf 取当前激活环境的快照。
func snapshotOf(goalEnv *simulation.Env, pathEnv *simulation.PathEnv) simulation.Snapshot {
	if pathEnv != nil {
		return pathEnv.GetSnapshot()
	}
	return goalEnv.GetSnapshot()
}
