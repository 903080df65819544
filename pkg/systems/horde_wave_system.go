package systems

import (
	"log"
	"time"

	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/game"
	"github.com/gonewx/horde/pkg/utils"
)

// 阶段切换广播消息
const (
	MessageWarmupEnded = "Warmup ended.\nSpawning monsters."
	MessageAllSpawned  = "All monsters spawned.\nClean up time!"
	MessageAllDead     = "All monsters dead.\nShort rest time."
	MessageNextLevel   = "Starting next level."
)

// monsterSpawnQuery 怪物出生点查询：任意队伍可用，不回退到单人起点
var monsterSpawnQuery = game.SpawnPointQuery{
	Farthest:        false,
	ForceSpawn:      true,
	FallbackToStart: false,
}

// HordeWaveSystem 部落模式波次系统
//
// 职责：
//   - 驱动 Warmup → Spawning → Cleanup → Rest → Spawning 的状态机
//   - 在 Spawning 阶段按间隔生成怪物并附带奖励物品
//   - 清场检查和关卡切换时的尸体清理
//   - 启动时预缓存目录中的物品和怪物
//
// 架构说明：
//   - 所有可变状态都在 game.HordeSession 中，由调用方持有并传入
//   - 只通过 game.Engine 与宿主交互
//   - 时间比较全部使用宿主提供的游戏时间
type HordeWaveSystem struct {
	engine  game.Engine
	rules   *config.HordeRulesConfig
	catalog *config.HordeCatalogConfig
	rng     RandomSource

	monsters *WeightedSelector
	items    *WeightedSelector

	// verbose 是否输出详细日志
	verbose bool
}

// NewHordeWaveSystem 创建部落模式波次系统
//
// 参数：
//   - engine: 宿主引擎
//   - catalog: 怪物和奖励物品目录，为 nil 时使用默认目录
//   - rules: 计时和数量规则，为 nil 时使用默认规则
//   - rng: 随机数源
//
// 返回：
//   - *HordeWaveSystem: 波次系统实例
func NewHordeWaveSystem(engine game.Engine, catalog *config.HordeCatalogConfig, rules *config.HordeRulesConfig, rng RandomSource) *HordeWaveSystem {
	if catalog == nil {
		catalog = config.DefaultHordeCatalog()
	}
	if rules == nil {
		rules = config.DefaultHordeRules()
	}

	system := &HordeWaveSystem{
		engine:   engine,
		rules:    rules,
		catalog:  catalog,
		rng:      rng,
		monsters: NewWeightedSelector("monsters", catalog.Monsters, rng),
		items:    NewWeightedSelector("items", catalog.Items, rng),
	}

	log.Printf("[HordeWaveSystem] Created with %d monster(s), %d item(s)", len(catalog.Monsters), len(catalog.Items))
	return system
}

// SetVerbose 设置是否输出详细日志
func (s *HordeWaveSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
	s.monsters.SetVerbose(verbose)
	s.items.SetVerbose(verbose)
}

// Rules 返回当前使用的规则
func (s *HordeWaveSystem) Rules() *config.HordeRulesConfig {
	return s.rules
}

// MonsterSelector 返回怪物选择器（用于设置权重调整策略）
func (s *HordeWaveSystem) MonsterSelector() *WeightedSelector {
	return s.monsters
}

// ItemSelector 返回奖励物品选择器
func (s *HordeWaveSystem) ItemSelector() *WeightedSelector {
	return s.items
}

// PickMonster 按等级选择怪物类名
func (s *HordeWaveSystem) PickMonster(level int) (string, bool) {
	return s.monsters.Pick(SelectionContext{Level: level})
}

// PickItem 按等级选择奖励物品类名
func (s *HordeWaveSystem) PickItem(level int) (string, bool) {
	return s.items.Pick(SelectionContext{Level: level})
}

// Precache 预缓存目录资源
//
// 每个奖励物品都向宿主注册；每个怪物都生成一个临时实体后立即释放，
// 用于在启动时验证类名可以构建。只在模式初始化时调用一次。
//
// 返回：
//   - []string: 无法解析的类名（仅用于报告，不影响后续运行）
func (s *HordeWaveSystem) Precache() []string {
	var failed []string

	var known []string
	if lister, ok := s.engine.(game.ClassnameLister); ok {
		known = lister.Classnames()
	}

	for _, item := range s.catalog.Items {
		if s.engine.PrecacheItem(item.Classname) {
			continue
		}
		failed = append(failed, item.Classname)
		s.logUnresolved("item", item.Classname, known)
	}

	for _, monster := range s.catalog.Monsters {
		entity := s.engine.CreateEntity(monster.Classname, game.Vec3{}, game.Vec3{})
		if err := s.engine.FinalizeEntity(entity); err != nil {
			failed = append(failed, monster.Classname)
			s.logUnresolved("monster", monster.Classname, known)
			continue
		}
		s.engine.FreeEntity(entity)
	}

	log.Printf("[HordeWaveSystem] Precached %d item(s), %d monster(s), %d unresolved",
		len(s.catalog.Items), len(s.catalog.Monsters), len(failed))
	return failed
}

// logUnresolved 报告无法解析的类名，有相近的已知类名时给出提示
func (s *HordeWaveSystem) logUnresolved(kind, classname string, known []string) {
	if suggestion, ok := utils.SuggestName(classname, known); ok && suggestion != classname {
		log.Printf("[HordeWaveSystem] Warning: unknown %s %q (did you mean %q?)", kind, classname, suggestion)
		return
	}
	log.Printf("[HordeWaveSystem] Warning: unknown %s %q", kind, classname)
}

// InitLevel 开始指定等级的波次
//
// 设置剩余生成数量为 base + level*perLevel，
// 首次生成时间为 now + [FirstSpawnDelay.Min, FirstSpawnDelay.Max) 内的随机值。
func (s *HordeWaveSystem) InitLevel(session *game.HordeSession, level int) {
	now := s.engine.CurrentGameTime()

	session.Level = level
	session.MonstersToSpawn = s.rules.MonsterCount(level)
	session.NextSpawnDeadline = now + RandomTimeRange(s.rng, s.rules.FirstSpawnDelay.Min, s.rules.FirstSpawnDelay.Max)

	log.Printf("[HordeWaveSystem] Level %d: %d monster(s) to spawn, first spawn at %v",
		level, session.MonstersToSpawn, session.NextSpawnDeadline)
}

// RunFrame 每帧更新状态机
//
// 每次调用最多执行一次状态转换或一次生成尝试。
func (s *HordeWaveSystem) RunFrame(session *game.HordeSession) {
	now := s.engine.CurrentGameTime()

	switch session.State {
	case game.WaveStateWarmup:
		if now >= session.PhaseDeadline {
			s.engine.Broadcast(MessageWarmupEnded)
			session.State = game.WaveStateSpawning
			s.InitLevel(session, 1)
		}

	case game.WaveStateSpawning:
		if now >= session.NextSpawnDeadline {
			s.spawnAttempt(session, now)
		}

	case game.WaveStateCleanup:
		if now < session.PhaseDeadline {
			return
		}
		if s.AllMonstersDead() {
			s.engine.Broadcast(MessageAllDead)
			session.State = game.WaveStateRest
			session.PhaseDeadline = now + s.rules.RestDuration
			session.WavesCompleted++
			log.Printf("[HordeWaveSystem] Wave %d cleared, resting until %v", session.Level, session.PhaseDeadline)
			return
		}
		session.PhaseDeadline = now + s.rules.CleanupRecheck
		if s.verbose {
			log.Printf("[HordeWaveSystem] Monsters still alive, recheck at %v", session.PhaseDeadline)
		}

	case game.WaveStateRest:
		if now >= session.PhaseDeadline {
			s.engine.Broadcast(MessageNextLevel)
			session.State = game.WaveStateSpawning
			s.InitLevel(session, session.Level+1)
			s.CleanBodies()
		}
	}
}

// spawnAttempt 执行一次生成尝试
//
// 没有合法出生点时不消耗生成名额，SpawnRetryDelay 后重试。
func (s *HordeWaveSystem) spawnAttempt(session *game.HordeSession, now time.Duration) {
	ctx := SelectionContext{Level: session.Level}

	classname, ok := s.monsters.Pick(ctx)
	if !ok {
		// 没有可选怪物时仍然尝试生成：宿主拒绝空类名，名额照常消耗
		log.Printf("[HordeWaveSystem] Warning: no eligible monster at level %d, spawning without classname", session.Level)
	}

	point, found := s.engine.SelectSpawnPoint(monsterSpawnQuery)
	if !found {
		session.NextSpawnDeadline = now + s.rules.SpawnRetryDelay
		if s.verbose {
			log.Printf("[HordeWaveSystem] No spawn point, retry at %v", session.NextSpawnDeadline)
		}
		return
	}

	entity := s.engine.CreateEntity(classname, point.Origin, point.Angles)
	if item, ok := s.items.Pick(ctx); ok {
		s.engine.SetEntityItem(entity, item)
	}

	if err := s.engine.FinalizeEntity(entity); err != nil {
		log.Printf("[HordeWaveSystem] Warning: failed to spawn monster %q: %v", classname, err)
	} else {
		s.engine.SetEnemy(entity, s.engine.PrimaryPlayer())
		s.engine.FoundTarget(entity)
		session.TotalSpawned++
	}

	session.MonstersToSpawn--
	session.NextSpawnDeadline = now + RandomTimeRange(s.rng, s.rules.SpawnInterval.Min, s.rules.SpawnInterval.Max)

	if s.verbose {
		log.Printf("[HordeWaveSystem] Spawned %q at %+v, %d left", classname, point.Origin, session.MonstersToSpawn)
	}

	if session.MonstersToSpawn <= 0 {
		session.MonstersToSpawn = 0
		s.engine.Broadcast(MessageAllSpawned)
		session.State = game.WaveStateCleanup
		session.PhaseDeadline = now + s.rules.CleanupRecheck
	}
}

// AllMonstersDead 场上是否没有存活怪物
func (s *HordeWaveSystem) AllMonstersDead() bool {
	for _, monster := range game.MonsterEntities(s.engine) {
		if monster.InUse && monster.Alive() {
			return false
		}
	}
	return true
}

// CleanBodies 释放所有怪物尸体
//
// 返回：
//   - int: 释放的尸体数量
func (s *HordeWaveSystem) CleanBodies() int {
	removed := 0
	for _, monster := range game.MonsterEntities(s.engine) {
		if !monster.InUse || !monster.IsCorpse() {
			continue
		}
		s.engine.FreeEntity(monster.Handle)
		removed++
	}

	if removed > 0 {
		log.Printf("[HordeWaveSystem] Removed %d corpse(s)", removed)
	}
	return removed
}
