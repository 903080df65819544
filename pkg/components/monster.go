package components

import (
	"time"

	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/ecs"
)

// MonsterAIState 怪物 AI 状态
type MonsterAIState int

const (
	// MonsterIdle 没有目标，原地等待
	MonsterIdle MonsterAIState = iota
	// MonsterHunt 追击目标
	MonsterHunt
	// MonsterAttack 目标在攻击距离内
	MonsterAttack
)

// MonsterComponent 怪物数据
type MonsterComponent struct {
	Stats config.MonsterStats

	Enemy   ecs.EntityID   // 攻击目标，0 表示没有
	AIState MonsterAIState // 当前 AI 状态

	NextAttack time.Duration // 下一次允许攻击的游戏时间
}
