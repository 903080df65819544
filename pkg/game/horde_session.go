package game

import (
	"fmt"
	"time"
)

// WaveState 部落模式波次状态
type WaveState int

const (
	// WaveStateWarmup 热身阶段：模式激活后等待热身结束
	WaveStateWarmup WaveState = iota
	// WaveStateSpawning 生成阶段：按间隔逐只生成怪物
	WaveStateSpawning
	// WaveStateCleanup 清场阶段：等待场上怪物全部死亡
	WaveStateCleanup
	// WaveStateRest 休息阶段：下一关开始前的短暂休息
	WaveStateRest
)

// String 返回状态名称（日志用）
func (s WaveState) String() string {
	switch s {
	case WaveStateWarmup:
		return "warmup"
	case WaveStateSpawning:
		return "spawning"
	case WaveStateCleanup:
		return "cleanup"
	case WaveStateRest:
		return "rest"
	default:
		return fmt.Sprintf("WaveState(%d)", int(s))
	}
}

// HordeSession 一次部落模式会话的全部可变状态
//
// 由 HordeModeModule 在模式激活时创建，只被 HordeWaveSystem 的帧更新修改。
// 不使用包级全局变量，多个会话可以在测试中并存。
type HordeSession struct {
	State WaveState // 当前波次状态

	Level           int // 当前等级（从 1 开始）
	MonstersToSpawn int // 本关剩余待生成怪物数

	// NextSpawnDeadline 下一次生成尝试的时间（Spawning 状态使用）
	NextSpawnDeadline time.Duration
	// PhaseDeadline 当前阶段的截止时间
	// Warmup: 热身结束时间；Cleanup: 下次全灭检查时间；Rest: 休息结束时间
	PhaseDeadline time.Duration

	// 统计数据
	TotalSpawned   int // 本会话成功生成的怪物总数
	WavesCompleted int // 已清场的波次数
}

// NewHordeSession 创建处于热身状态的新会话
//
// 参数：
//   - warmupDeadline: 热身结束的游戏时间
func NewHordeSession(warmupDeadline time.Duration) *HordeSession {
	return &HordeSession{
		State:         WaveStateWarmup,
		Level:         1,
		PhaseDeadline: warmupDeadline,
	}
}

// String 返回会话摘要（日志用）
func (s *HordeSession) String() string {
	return fmt.Sprintf("state=%s level=%d toSpawn=%d nextSpawn=%v phaseDeadline=%v",
		s.State, s.Level, s.MonstersToSpawn, s.NextSpawnDeadline, s.PhaseDeadline)
}
