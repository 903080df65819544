package game

import "time"

// EntityHandle 宿主引擎中的实体句柄
// 0 保留为无效句柄
type EntityHandle uint64

// InvalidEntity 无效实体句柄
const InvalidEntity EntityHandle = 0

// Vec3 三维向量（位置或欧拉角）
type Vec3 struct {
	X, Y, Z float64
}

// SpawnPointQuery 出生点查询参数
//
// 对应死亡竞赛的出生点选择规则：
//   - Farthest: 选择离所有玩家最远的点
//   - ForceSpawn: 忽略队伍/占用限制，只要有合法点就返回
//   - FallbackToStart: 找不到时回退到单人起点
type SpawnPointQuery struct {
	Farthest        bool
	ForceSpawn      bool
	FallbackToStart bool
}

// SpawnPoint 出生点的位置和朝向
type SpawnPoint struct {
	Origin Vec3
	Angles Vec3
}

// EntityInfo 实体状态快照，用于全灭检查和尸体清理
type EntityInfo struct {
	Handle      EntityHandle
	InUse       bool
	IsMonster   bool
	Health      int
	DeadFlag    bool // 已进入死亡状态
	DeadMonster bool // 已被标记为怪物尸体
}

// Alive 判断怪物是否仍然存活
func (e EntityInfo) Alive() bool {
	return !e.DeadFlag && e.Health > 0
}

// IsCorpse 判断怪物是否可被清理
func (e EntityInfo) IsCorpse() bool {
	return e.Health <= 0 || e.DeadFlag || e.DeadMonster
}

// Engine 宿主引擎接口
//
// 部落模式只通过此接口与引擎交互，不直接访问实体内存。
// 所有方法都在同一个帧调用中被调用，无需并发安全。
type Engine interface {
	// CurrentGameTime 返回单调递增的游戏时间
	CurrentGameTime() time.Duration

	// SelectSpawnPoint 选择出生点，找不到合法点时返回 false
	SelectSpawnPoint(query SpawnPointQuery) (SpawnPoint, bool)

	// CreateEntity 分配实体并设置类名、位置、朝向（尚未构建）
	CreateEntity(classname string, origin, angles Vec3) EntityHandle
	// SetEntityItem 设置实体携带的物品（死亡掉落），空字符串表示无物品
	SetEntityItem(entity EntityHandle, item string)
	// FinalizeEntity 按类名完成实体构建；类名无法解析时返回错误并由引擎释放实体
	FinalizeEntity(entity EntityHandle) error
	// FreeEntity 释放实体
	FreeEntity(entity EntityHandle)

	// PrimaryPlayer 返回主玩家实体
	PrimaryPlayer() EntityHandle
	// SetEnemy 设置怪物的攻击目标
	SetEnemy(monster, target EntityHandle)
	// FoundTarget 让怪物立即进入发现目标后的追击状态
	FoundTarget(monster EntityHandle)

	// Entities 返回所有实体的状态快照
	Entities() []EntityInfo

	// Broadcast 向所有玩家广播居中消息
	Broadcast(message string)

	// PrecacheItem 预注册物品资源，物品不存在时返回 false
	PrecacheItem(classname string) bool
}

// MonsterIndex 可选接口：引擎提供按怪物索引的查询
// 实现此接口时，全灭检查和尸体清理不再扫描全部实体
type MonsterIndex interface {
	Monsters() []EntityInfo
}

// ClassnameLister 可选接口：引擎列出所有可构建的类名
// 用于预缓存失败时给出拼写提示
type ClassnameLister interface {
	Classnames() []string
}

// MonsterEntities 返回引擎中的怪物实体
// 优先使用 MonsterIndex，否则扫描全部实体
func MonsterEntities(engine Engine) []EntityInfo {
	if index, ok := engine.(MonsterIndex); ok {
		return index.Monsters()
	}

	all := engine.Entities()
	monsters := make([]EntityInfo, 0, len(all))
	for _, info := range all {
		if !info.InUse || !info.IsMonster {
			continue
		}
		monsters = append(monsters, info)
	}
	return monsters
}
