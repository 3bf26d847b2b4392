// C:/workspace/go/Marine-Simulator-Go/collector/collector.go
package collector

import (
	"Marine-Simulator/simulation"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	episodeSheet     = "Episode_Stats"
	pathEpisodeSheet = "Path_Episode_Stats"
	stepSheet        = "Step_Stats"
)

// DataCollector 结构体封装了数据收集器的所有依赖和状态。
// 它把每个回合的累计统计与可选的逐步快照写入同一份 Excel 报表。
type DataCollector struct {
	f        *excelize.File
	filename string

	episodeRow     int
	pathEpisodeRow int
	stepRow        int

	withSteps bool
}

// NewDataCollector 创建一个新的数据收集器实例。
// withSteps 开启后会额外记录逐步快照，报表体积会显著增大。
func NewDataCollector(reportDir string, withSteps bool) *DataCollector {
	// 1. 创建一个带时间戳的基础文件名
	baseFilename := fmt.Sprintf("simulation_results_%s.xlsx", time.Now().Format("20060102_150405"))

	// 2. 使用 filepath.Join 将报表目录和基础文件名安全地拼接成完整路径
	//    这样做可以跨平台兼容 (Windows, macOS, Linux)
	fullPath := filepath.Join(reportDir, baseFilename)

	f := excelize.NewFile()
	f.NewSheet(episodeSheet)
	f.NewSheet(pathEpisodeSheet)
	if withSteps {
		f.NewSheet(stepSheet)
	}
	f.DeleteSheet("Sheet1")

	// --- 写入表头 ---
	headersEpisode := []string{
		"回合", "决策步数", "仿真时长 (s)", "目标船数", "到达目标", "碰撞次数",
		"总奖励", "距离项", "航向项", "碰撞项", "规则项", "舒适项",
		"对遇", "右舷小角交叉", "右舷大角交叉", "左舷交叉", "追越",
	}
	_ = f.SetSheetRow(episodeSheet, "A1", &headersEpisode)

	headersPath := []string{
		"回合", "决策步数", "仿真时长 (s)", "交通船数", "完成航路", "碰撞次数",
		"末态横向偏差 (m)", "总奖励", "横偏项", "航向项", "碰撞项", "舒适项", "航速项",
	}
	_ = f.SetSheetRow(pathEpisodeSheet, "A1", &headersPath)

	if withSteps {
		headersStep := []string{
			"回合", "步", "仿真时间 (s)", "本船 N (m)", "本船 E (m)",
			"航向 (rad)", "航速 (m/s)", "本步奖励", "可见船数",
		}
		_ = f.SetSheetRow(stepSheet, "A1", &headersStep)
	}

	return &DataCollector{
		f:              f,
		filename:       fullPath,
		episodeRow:     2,
		pathEpisodeRow: 2,
		stepRow:        2,
		withSteps:      withSteps,
	}
}

// CollectGoalEpisode 写入目标导航环境一个回合的累计统计。
func (dc *DataCollector) CollectGoalEpisode(episode int, stats simulation.EpisodeStats) {
	goalReached := "否"
	if stats.GoalReached {
		goalReached = "是"
	}

	rowData := []interface{}{
		episode,
		stats.Steps,
		stats.SimTime,
		stats.NumTS,
		goalReached,
		stats.Collisions,
		stats.RewardSum.Total,
		stats.RewardSum.Dist,
		stats.RewardSum.Head,
		stats.RewardSum.Coll,
		stats.RewardSum.COLREG,
		stats.RewardSum.Comf,
		stats.SituationCnt[simulation.SituationHeadOn],
		stats.SituationCnt[simulation.SituationCrossSmall],
		stats.SituationCnt[simulation.SituationCrossLarge],
		stats.SituationCnt[simulation.SituationCrossPort],
		stats.SituationCnt[simulation.SituationOvertaking],
	}
	_ = dc.f.SetSheetRow(episodeSheet, fmt.Sprintf("A%d", dc.episodeRow), &rowData)
	dc.episodeRow++
}

// CollectPathEpisode 写入航路跟踪环境一个回合的累计统计。
func (dc *DataCollector) CollectPathEpisode(episode int, stats simulation.PathEpisodeStats) {
	finished := "否"
	if stats.Finished {
		finished = "是"
	}

	rowData := []interface{}{
		episode,
		stats.Steps,
		stats.SimTime,
		stats.NumTS,
		finished,
		stats.Collisions,
		stats.FinalYe,
		stats.RewardSum.Total,
		stats.RewardSum.Ye,
		stats.RewardSum.Ce,
		stats.RewardSum.Coll,
		stats.RewardSum.Comf,
		stats.RewardSum.Speed,
	}
	_ = dc.f.SetSheetRow(pathEpisodeSheet, fmt.Sprintf("A%d", dc.pathEpisodeRow), &rowData)
	dc.pathEpisodeRow++
}

// CollectStepData 写入一个时间步的环境快照。未开启逐步记录时为空操作。
func (dc *DataCollector) CollectStepData(episode int, snap simulation.Snapshot) {
	if !dc.withSteps {
		return
	}
	if len(snap.Vessels) == 0 {
		return
	}

	os := snap.Vessels[0]
	rowData := []interface{}{
		episode,
		snap.Step,
		snap.SimTime,
		os.N,
		os.E,
		os.Psi,
		os.Speed,
		snap.Reward.Total,
		len(snap.Vessels) - 1,
	}
	_ = dc.f.SetSheetRow(stepSheet, fmt.Sprintf("A%d", dc.stepRow), &rowData)
	dc.stepRow++
}

// SaveFinalReport 把报表落盘。目标目录不存在时会先创建。
func (dc *DataCollector) SaveFinalReport() error {
	// 在保存文件之前，确保目标目录存在。
	// os.MkdirAll 是安全的: 目录已存在时不会做任何事也不会报错。
	reportDir := filepath.Dir(dc.filename)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		log.Printf("❌ 错误: 无法创建报告目录 '%s': %v", reportDir, err)
		// 即使创建目录失败，也尝试保存，以防根目录可写
	}

	if err := dc.f.SaveAs(dc.filename); err != nil {
		log.Printf("❌ 错误: 无法保存 Excel 文件: %v", err)
		return err
	}
	log.Printf("✅ 仿真数据已成功保存到 %s", dc.filename)
	return nil
}

// Filename 返回报表的完整输出路径。
func (dc *DataCollector) Filename() string {
	return dc.filename
}

// Close 释放底层 Excel 文件的资源。
func (dc *DataCollector) Close() {
	if err := dc.f.Close(); err != nil {
		log.Printf("❌ 关闭Excel文件时出错: %v", err)
	}
}
