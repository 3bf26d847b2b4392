package environment

import "Marine-Simulator/config"

// Config 结构体用于封装环境服务的全部可配置参数。
// 这样做可以使 NewServer 的函数签名保持整洁，并易于未来扩展。
type Config struct {
	// Settings 是环境本身的构造参数。
	Settings config.EnvSettings

	// ReportStats 开启后每个回合结束时把累计统计写入 Excel 报表。
	ReportStats bool
}
