package components

import "time"

// HealthComponent 存储实体的生命值信息
// 用于怪物和玩家等可被攻击的实体
type HealthComponent struct {
	CurrentHealth int  // 当前生命值
	MaxHealth     int  // 最大生命值
	DeadFlag      bool // 是否已进入死亡状态
	// DeadMonster 尸体标记：死亡一段时间后设置，尸体不再参与碰撞和目标选择
	DeadMonster bool
	DiedAt      time.Duration // 死亡时的游戏时间
}

// Alive 是否存活
func (h *HealthComponent) Alive() bool {
	return !h.DeadFlag && h.CurrentHealth > 0
}

// TakeDamage 扣除生命值，生命值归零时进入死亡状态
//
// 返回：
//   - bool: 本次伤害是否致死
func (h *HealthComponent) TakeDamage(amount int, now time.Duration) bool {
	if !h.Alive() {
		return false
	}
	h.CurrentHealth -= amount
	if h.CurrentHealth > 0 {
		return false
	}
	h.DeadFlag = true
	h.DiedAt = now
	return true
}
