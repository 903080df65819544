// Package arena 提供一个内存中的沙盒宿主引擎，用于运行和观察部落模式。
package arena

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gonewx/horde/pkg/components"
	"github.com/gonewx/horde/pkg/ecs"
	"github.com/gonewx/horde/pkg/entities"
	"github.com/gonewx/horde/pkg/game"
)

// Message 一条广播消息
type Message struct {
	Text string
	At   time.Duration
}

// Engine 沙盒竞技场引擎
//
// 实现 game.Engine、game.MonsterIndex 和 game.ClassnameLister。
// 实体句柄就是 ECS 实体ID。
type Engine struct {
	em  *ecs.EntityManager
	cfg Config

	now    time.Duration
	player ecs.EntityID

	items     map[string]bool
	precached map[string]bool

	spawnCursor int
	messages    []Message

	// OnBroadcast 广播回调，可为 nil
	OnBroadcast func(message string)

	verbose bool
}

// 编译期检查
var (
	_ game.Engine          = (*Engine)(nil)
	_ game.MonsterIndex    = (*Engine)(nil)
	_ game.ClassnameLister = (*Engine)(nil)
)

// NewEngine 创建竞技场并放置玩家和出生点
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		em:        ecs.NewEntityManager(),
		cfg:       cfg,
		items:     make(map[string]bool, len(cfg.Items)),
		precached: make(map[string]bool),
	}
	for _, item := range cfg.Items {
		e.items[item] = true
	}

	e.player = entities.NewPlayerEntity(e.em, cfg.PlayerName, cfg.PlayerOrigin)
	if cfg.PlayerFireInterval > 0 {
		if p, ok := ecs.GetComponent[*components.PlayerComponent](e.em, e.player); ok {
			p.FireInterval = cfg.PlayerFireInterval
		}
	}

	for _, spot := range cfg.SpawnSpots {
		entities.NewSpawnPointEntity(e.em, spot.Origin, spot.Angles, false, spot.Team)
	}
	if cfg.StartSpot != nil {
		entities.NewSpawnPointEntity(e.em, cfg.StartSpot.Origin, cfg.StartSpot.Angles, true, cfg.StartSpot.Team)
	}

	log.Printf("[ArenaEngine] Created %.0fx%.0f arena with %d spawn point(s)", cfg.Width, cfg.Height, len(cfg.SpawnSpots))
	return e
}

// SetVerbose 设置是否输出详细日志
func (e *Engine) SetVerbose(verbose bool) {
	e.verbose = verbose
}

// EntityManager 返回底层实体管理器（只读查询用）
func (e *Engine) EntityManager() *ecs.EntityManager {
	return e.em
}

// Config 返回竞技场配置
func (e *Engine) Config() Config {
	return e.cfg
}

// CurrentGameTime 返回游戏时间
func (e *Engine) CurrentGameTime() time.Duration {
	return e.now
}

// SelectSpawnPoint 选择出生点
//
// 规则：
//   - 半径 SpawnClearance 内有存活实体的出生点被占用
//   - 限定队伍的出生点只对 ForceSpawn 查询开放
//   - Farthest 选离玩家最远的空闲点，否则按轮转顺序选下一个空闲点
//   - 没有空闲点且 FallbackToStart 时返回单人起点
func (e *Engine) SelectSpawnPoint(query game.SpawnPointQuery) (game.SpawnPoint, bool) {
	spots := ecs.GetEntitiesWith2[*components.SpawnPointComponent, *components.TransformComponent](e.em)

	var free []*components.TransformComponent
	var start *components.TransformComponent
	for _, id := range spots {
		sp, _ := ecs.GetComponent[*components.SpawnPointComponent](e.em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](e.em, id)
		if sp.SinglePlayer {
			start = transform
			continue
		}
		if sp.Team != "" && !query.ForceSpawn {
			continue
		}
		if e.occupied(transform.Origin) {
			continue
		}
		free = append(free, transform)
	}

	if len(free) == 0 {
		if query.FallbackToStart && start != nil {
			return game.SpawnPoint{Origin: start.Origin, Angles: start.Angles}, true
		}
		return game.SpawnPoint{}, false
	}

	var chosen *components.TransformComponent
	if query.Farthest {
		playerOrigin := e.origin(e.player)
		best := -1.0
		for _, t := range free {
			if d := distance(t.Origin, playerOrigin); d > best {
				best = d
				chosen = t
			}
		}
	} else {
		chosen = free[e.spawnCursor%len(free)]
		e.spawnCursor++
	}

	return game.SpawnPoint{Origin: chosen.Origin, Angles: chosen.Angles}, true
}

// occupied 位置附近是否有存活的怪物或玩家
func (e *Engine) occupied(origin game.Vec3) bool {
	for _, id := range ecs.GetEntitiesWith2[*components.HealthComponent, *components.TransformComponent](e.em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](e.em, id)
		if !health.Alive() {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](e.em, id)
		if distance(transform.Origin, origin) < e.cfg.SpawnClearance {
			return true
		}
	}
	return false
}

// CreateEntity 创建尚未构建的实体
func (e *Engine) CreateEntity(classname string, origin, angles game.Vec3) game.EntityHandle {
	return game.EntityHandle(entities.NewEntityShell(e.em, classname, origin, angles))
}

// SetEntityItem 设置实体死亡时掉落的物品
func (e *Engine) SetEntityItem(entity game.EntityHandle, item string) {
	if class, ok := ecs.GetComponent[*components.EntityClassComponent](e.em, ecs.EntityID(entity)); ok {
		class.Item = item
	}
}

// FinalizeEntity 按类名构建实体
//
// 类名无法解析时释放实体并返回错误。
func (e *Engine) FinalizeEntity(entity game.EntityHandle) error {
	id := ecs.EntityID(entity)
	class, ok := ecs.GetComponent[*components.EntityClassComponent](e.em, id)
	if !ok || !e.em.EntityExists(id) {
		return fmt.Errorf("entity %d does not exist", entity)
	}

	if class.Classname == "" {
		e.em.DestroyEntity(id)
		return fmt.Errorf("entity %d has no classname", entity)
	}

	if stats, ok := e.cfg.Stats.GetMonsterStats(class.Classname); ok {
		if err := entities.FinalizeMonsterEntity(e.em, id, *stats); err != nil {
			e.em.DestroyEntity(id)
			return fmt.Errorf("failed to finalize %s: %w", class.Classname, err)
		}
		return nil
	}

	if e.items[class.Classname] {
		ecs.AddComponent(e.em, id, &components.ItemDropComponent{Classname: class.Classname})
		class.Finalized = true
		return nil
	}

	e.em.DestroyEntity(id)
	return fmt.Errorf("unknown classname %q", class.Classname)
}

// FreeEntity 释放实体
func (e *Engine) FreeEntity(entity game.EntityHandle) {
	id := ecs.EntityID(entity)
	if id == e.player {
		return
	}
	e.em.DestroyEntity(id)
}

// PrimaryPlayer 返回玩家实体
func (e *Engine) PrimaryPlayer() game.EntityHandle {
	return game.EntityHandle(e.player)
}

// SetEnemy 设置怪物的攻击目标
func (e *Engine) SetEnemy(monster, target game.EntityHandle) {
	if m, ok := ecs.GetComponent[*components.MonsterComponent](e.em, ecs.EntityID(monster)); ok {
		m.Enemy = ecs.EntityID(target)
	}
}

// FoundTarget 怪物立即开始追击目标
func (e *Engine) FoundTarget(monster game.EntityHandle) {
	m, ok := ecs.GetComponent[*components.MonsterComponent](e.em, ecs.EntityID(monster))
	if !ok || m.Enemy == 0 {
		return
	}
	m.AIState = components.MonsterHunt
}

// Entities 返回所有实体的状态快照（按句柄升序）
func (e *Engine) Entities() []game.EntityInfo {
	ids := ecs.GetEntitiesWith1[*components.EntityClassComponent](e.em)
	infos := make([]game.EntityInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, e.entityInfo(id))
	}
	return infos
}

// Monsters 返回所有已构建怪物的状态快照
func (e *Engine) Monsters() []game.EntityInfo {
	ids := ecs.GetEntitiesWith2[*components.MonsterComponent, *components.HealthComponent](e.em)
	infos := make([]game.EntityInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, e.entityInfo(id))
	}
	return infos
}

func (e *Engine) entityInfo(id ecs.EntityID) game.EntityInfo {
	info := game.EntityInfo{
		Handle:    game.EntityHandle(id),
		InUse:     e.em.EntityExists(id),
		IsMonster: ecs.HasComponent[*components.MonsterComponent](e.em, id),
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](e.em, id); ok {
		info.Health = health.CurrentHealth
		info.DeadFlag = health.DeadFlag
		info.DeadMonster = health.DeadMonster
	}
	return info
}

// Broadcast 记录并转发广播消息
func (e *Engine) Broadcast(message string) {
	e.messages = append(e.messages, Message{Text: message, At: e.now})
	log.Printf("[ArenaEngine] Broadcast at %v: %q", e.now, message)
	if e.OnBroadcast != nil {
		e.OnBroadcast(message)
	}
}

// Messages 返回所有广播消息
func (e *Engine) Messages() []Message {
	return e.messages
}

// LastMessage 返回最后一条广播消息
func (e *Engine) LastMessage() (Message, bool) {
	if len(e.messages) == 0 {
		return Message{}, false
	}
	return e.messages[len(e.messages)-1], true
}

// PrecacheItem 注册物品资源
func (e *Engine) PrecacheItem(classname string) bool {
	if !e.items[classname] {
		return false
	}
	e.precached[classname] = true
	return true
}

// Precached 物品是否已注册
func (e *Engine) Precached(classname string) bool {
	return e.precached[classname]
}

// Classnames 返回所有可构建的类名（已排序）
func (e *Engine) Classnames() []string {
	names := e.cfg.Stats.Classnames()
	for item := range e.items {
		names = append(names, item)
	}
	sort.Strings(names)
	return names
}

// origin 返回实体位置
func (e *Engine) origin(id ecs.EntityID) game.Vec3 {
	if transform, ok := ecs.GetComponent[*components.TransformComponent](e.em, id); ok {
		return transform.Origin
	}
	return game.Vec3{}
}
