package entities

import (
	"time"

	"github.com/gonewx/horde/pkg/components"
	"github.com/gonewx/horde/pkg/ecs"
	"github.com/gonewx/horde/pkg/game"
)

const (
	// PlayerClassname 玩家类名
	PlayerClassname = "player"

	// PlayerDefaultHealth 玩家初始生命值
	PlayerDefaultHealth = 100

	// PlayerFireInterval 自动炮台射击间隔
	PlayerFireInterval = 400 * time.Millisecond

	// PlayerDamage 单次射击伤害
	PlayerDamage = 25

	// PlayerRange 射程
	PlayerRange = 800.0

	// SpawnPointClassname 死亡竞赛出生点类名
	SpawnPointClassname = "info_player_deathmatch"

	// StartPointClassname 单人起点类名
	StartPointClassname = "info_player_start"
)

// NewPlayerEntity 创建玩家实体
//
// 玩家作为自动炮台，生命值归零后不会死亡（沙盒中只用于统计）。
func NewPlayerEntity(em *ecs.EntityManager, name string, origin game.Vec3) ecs.EntityID {
	entityID := NewEntityShell(em, PlayerClassname, origin, game.Vec3{})

	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: PlayerDefaultHealth,
		MaxHealth:     PlayerDefaultHealth,
	})
	ecs.AddComponent(em, entityID, &components.PlayerComponent{
		Name:         name,
		FireInterval: PlayerFireInterval,
		Damage:       PlayerDamage,
		Range:        PlayerRange,
	})

	if class, ok := ecs.GetComponent[*components.EntityClassComponent](em, entityID); ok {
		class.Finalized = true
	}
	return entityID
}

// NewSpawnPointEntity 创建出生点
//
// 参数:
//   - singlePlayer: true 创建单人起点，false 创建死亡竞赛出生点
//   - team: 限定队伍，空表示任意队伍
func NewSpawnPointEntity(em *ecs.EntityManager, origin, angles game.Vec3, singlePlayer bool, team string) ecs.EntityID {
	classname := SpawnPointClassname
	if singlePlayer {
		classname = StartPointClassname
	}

	entityID := NewEntityShell(em, classname, origin, angles)
	ecs.AddComponent(em, entityID, &components.SpawnPointComponent{
		SinglePlayer: singlePlayer,
		Team:         team,
	})

	if class, ok := ecs.GetComponent[*components.EntityClassComponent](em, entityID); ok {
		class.Finalized = true
	}
	return entityID
}
