package arena

import (
	"math"
	"time"

	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/game"
)

// SpawnSpot 出生点定义
type SpawnSpot struct {
	Origin game.Vec3
	Angles game.Vec3
	// Team 非空时只对该队伍开放，ForceSpawn 查询忽略此限制
	Team string
}

// Config 沙盒竞技场配置
type Config struct {
	Width  float64 // 竞技场宽度
	Height float64 // 竞技场高度

	PlayerName   string
	PlayerOrigin game.Vec3

	SpawnSpots []SpawnSpot // 死亡竞赛出生点
	StartSpot  *SpawnSpot  // 单人起点，可为 nil

	// SpawnClearance 出生点半径内有存活实体时视为被占用
	SpawnClearance float64
	// CorpseDelay 死亡多久后标记为尸体
	CorpseDelay time.Duration

	Stats *config.MonsterStatsConfig // 可构建的怪物
	Items []string                   // 可构建的物品

	// PlayerFireInterval 覆盖玩家射击间隔，0 使用默认值
	PlayerFireInterval time.Duration
}

// DefaultConfig 默认竞技场：玩家位于中心，8 个出生点环绕四周
//
// 参数：
//   - items: 可构建的物品类名（通常为奖励目录中的物品）
func DefaultConfig(items []string) Config {
	const (
		width  = 1600.0
		height = 1200.0
		radius = 520.0
		spots  = 8
	)

	center := game.Vec3{X: width / 2, Y: height / 2}

	cfg := Config{
		Width:          width,
		Height:         height,
		PlayerName:     "player",
		PlayerOrigin:   center,
		SpawnClearance: 48,
		CorpseDelay:    2 * time.Second,
		Stats:          config.DefaultMonsterStats(),
		Items:          items,
	}

	for i := 0; i < spots; i++ {
		angle := 2 * math.Pi * float64(i) / spots
		origin := game.Vec3{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		// 朝向中心
		yaw := math.Mod(angle*180/math.Pi+180, 360)
		cfg.SpawnSpots = append(cfg.SpawnSpots, SpawnSpot{Origin: origin, Angles: game.Vec3{Y: yaw}})
	}

	cfg.StartSpot = &SpawnSpot{Origin: game.Vec3{X: center.X, Y: center.Y - radius/2}}
	return cfg
}
