package entities

import (
	"fmt"

	"github.com/gonewx/horde/pkg/components"
	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/ecs"
	"github.com/gonewx/horde/pkg/game"
)

// NewEntityShell 创建只有类名和位置的实体（尚未构建）
//
// 参数:
//   - em: 实体管理器
//   - classname: 类名
//   - origin: 位置
//   - angles: 朝向
//
// 返回:
//   - ecs.EntityID: 新实体ID
func NewEntityShell(em *ecs.EntityManager, classname string, origin, angles game.Vec3) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.TransformComponent{
		Origin: origin,
		Angles: angles,
	})
	ecs.AddComponent(em, entityID, &components.EntityClassComponent{
		Classname: classname,
	})

	return entityID
}

// FinalizeMonsterEntity 为已创建的实体补全怪物组件
//
// 参数:
//   - em: 实体管理器
//   - entityID: NewEntityShell 创建的实体
//   - stats: 怪物属性
//
// 返回:
//   - error: 实体不存在或已经构建过时返回错误
func FinalizeMonsterEntity(em *ecs.EntityManager, entityID ecs.EntityID, stats config.MonsterStats) error {
	class, ok := ecs.GetComponent[*components.EntityClassComponent](em, entityID)
	if !ok {
		return fmt.Errorf("entity %d has no class component", entityID)
	}
	if class.Finalized {
		return fmt.Errorf("entity %d (%s) already finalized", entityID, class.Classname)
	}

	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	ecs.AddComponent(em, entityID, &components.MonsterComponent{
		Stats:   stats,
		AIState: components.MonsterIdle,
	})

	class.Finalized = true
	return nil
}

// NewItemDropEntity 在指定位置创建掉落物品
func NewItemDropEntity(em *ecs.EntityManager, classname string, origin game.Vec3) ecs.EntityID {
	entityID := NewEntityShell(em, classname, origin, game.Vec3{})
	ecs.AddComponent(em, entityID, &components.ItemDropComponent{Classname: classname})

	if class, ok := ecs.GetComponent[*components.EntityClassComponent](em, entityID); ok {
		class.Finalized = true
	}
	return entityID
}
