package components

// SpawnPointComponent 出生点标记
type SpawnPointComponent struct {
	// SinglePlayer 单人起点，只在查询允许回退时使用
	SinglePlayer bool
	// Team 非空时只对该队伍开放
	Team string
}

// ItemDropComponent 怪物死亡掉落的物品
type ItemDropComponent struct {
	Classname string
}
