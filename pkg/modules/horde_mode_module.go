package modules

import (
	"log"

	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/game"
	"github.com/gonewx/horde/pkg/systems"
)

// HordeModeModule 部落模式模块
//
// 职责：
//   - 启动时校验规则变量（部落模式强制死亡竞赛规则）
//   - 初始化时预缓存目录并创建会话
//   - 每帧驱动波次系统
//   - 向其他子系统提供奖励物品选择和规则判断
//
// 使用方式：
//
//	module := NewHordeModeModule(engine, cvars, catalog, rules, rng)
//	module.PreInit()
//	module.Init()
//	// 每帧
//	module.RunFrame()
//
// 会话由模块持有：模式激活时创建，Restart 时替换，Deactivate 时丢弃。
type HordeModeModule struct {
	engine  game.Engine
	cvars   *game.CvarManager
	ruleset *game.Ruleset
	catalog *config.HordeCatalogConfig
	rules   *config.HordeRulesConfig

	system  *systems.HordeWaveSystem
	session *game.HordeSession

	precached bool
}

// NewHordeModeModule 创建部落模式模块
//
// 参数:
//   - engine: 宿主引擎
//   - cvars: 控制台变量管理器，注册 horde/deathmatch/coop/ctf/teamplay
//   - catalog: 怪物和物品目录，为 nil 时使用默认目录
//   - rules: 计时和数量规则，为 nil 时使用默认规则
//   - rng: 随机数源
//
// 返回:
//   - *HordeModeModule: 新创建的模块实例
func NewHordeModeModule(
	engine game.Engine,
	cvars *game.CvarManager,
	catalog *config.HordeCatalogConfig,
	rules *config.HordeRulesConfig,
	rng systems.RandomSource,
) *HordeModeModule {
	if catalog == nil {
		catalog = config.DefaultHordeCatalog()
	}
	if rules == nil {
		rules = config.DefaultHordeRules()
	}

	return &HordeModeModule{
		engine:  engine,
		cvars:   cvars,
		ruleset: game.NewRuleset(cvars),
		catalog: catalog,
		rules:   rules,
		system:  systems.NewHordeWaveSystem(engine, catalog, rules, rng),
	}
}

// SetVerbose 设置是否输出详细日志
func (m *HordeModeModule) SetVerbose(verbose bool) {
	m.system.SetVerbose(verbose)
}

// PreInit 启动时校验规则变量
//
// 返回:
//   - bool: 是否修正了规则变量
func (m *HordeModeModule) PreInit() bool {
	return m.ruleset.PreInit()
}

// Init 初始化部落模式
//
// 未开启部落模式时什么都不做。首次初始化时预缓存目录，
// 然后创建热身状态的会话，热身截止时间为 now + WarmupDuration。
func (m *HordeModeModule) Init() {
	if !m.Enabled() {
		log.Printf("[HordeModeModule] Horde mode disabled, skipping init")
		return
	}

	if !m.precached {
		for _, warning := range m.catalog.Warnings() {
			log.Printf("[HordeModeModule] Catalog warning: %s", warning)
		}
		m.system.Precache()
		m.precached = true
	}

	m.activate()
}

// activate 创建新会话
func (m *HordeModeModule) activate() {
	warmupDeadline := m.engine.CurrentGameTime() + m.rules.WarmupDuration
	m.session = game.NewHordeSession(warmupDeadline)
	log.Printf("[HordeModeModule] Session started, warmup ends at %v", warmupDeadline)
}

// RunFrame 每帧更新
func (m *HordeModeModule) RunFrame() {
	if m.session == nil {
		return
	}
	m.system.RunFrame(m.session)
}

// PickRewardItem 按当前等级选择一个奖励物品
// 没有活动会话时按第 1 关选择
func (m *HordeModeModule) PickRewardItem() (string, bool) {
	level := 1
	if m.session != nil {
		level = m.session.Level
	}
	return m.system.PickItem(level)
}

// IsDeathmatch 纯死亡竞赛（部落模式不算）
func (m *HordeModeModule) IsDeathmatch() bool {
	return m.ruleset.IsDeathmatch()
}

// IsCooperative 合作或部落模式
func (m *HordeModeModule) IsCooperative() bool {
	return m.ruleset.IsCooperative()
}

// Enabled 部落模式是否开启
func (m *HordeModeModule) Enabled() bool {
	return m.ruleset.HordeEnabled()
}

// Restart 开始新的一局
//
// 锁存的规则变量在此生效并重新校验；
// 部落模式仍开启时替换会话，否则丢弃会话。
func (m *HordeModeModule) Restart() {
	m.cvars.ApplyLatched()
	m.PreInit()

	if !m.Enabled() {
		m.Deactivate()
		return
	}
	m.Init()
}

// Deactivate 停止部落模式并丢弃会话
func (m *HordeModeModule) Deactivate() {
	if m.session == nil {
		return
	}
	log.Printf("[HordeModeModule] Session ended: %s", m.session)
	m.session = nil
}

// Session 返回当前会话，未激活时为 nil
func (m *HordeModeModule) Session() *game.HordeSession {
	return m.session
}

// System 返回波次系统
func (m *HordeModeModule) System() *systems.HordeWaveSystem {
	return m.system
}
