package components

// EntityClassComponent 实体的类名和构建状态
//
// 实体先以类名创建，FinalizeEntity 按类名补全其余组件后 Finalized 为 true。
type EntityClassComponent struct {
	Classname string
	Item      string // 死亡时掉落的物品类名，空表示无
	Finalized bool
}
