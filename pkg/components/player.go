package components

import "time"

// PlayerComponent 玩家数据
//
// 沙盒竞技场中的玩家是一个自动炮台：按固定间隔攻击射程内最近的怪物。
type PlayerComponent struct {
	Name string

	FireInterval time.Duration // 射击间隔
	Damage       int           // 单次射击伤害
	Range        float64       // 射程

	NextFire time.Duration // 下一次允许射击的游戏时间
	Kills    int           // 击杀数
	Deaths   int           // 死亡数
	Items    []string      // 拾取的物品
}
