// Package app 提供部落模式沙盒的应用包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被窗口查看器和无界面模拟器共用。
// 窗口查看器通过根目录 main.go 调用 NewApp()，模拟器通过 cmd/hordesim 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gonewx/horde/pkg/arena"
	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/game"
	"github.com/gonewx/horde/pkg/modules"
	"github.com/gonewx/horde/pkg/systems"
	"github.com/quasilyte/gdata/v2"
)

// 内置配置路径
const (
	DefaultCatalogPath = "data/horde_catalog.yaml"
	DefaultRulesPath   = "data/horde_rules.yaml"
	DefaultStatsPath   = "data/monster_stats.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Quiet 丢弃所有日志（模拟器只输出横幅时使用）
	Quiet bool
	// Seed 随机种子，0 使用当前时间
	Seed int64

	// CatalogPath / RulesPath / StatsPath 配置文件路径，空字符串使用内置默认值
	CatalogPath string
	RulesPath   string
	StatsPath   string

	// AppName gdata 存储名称，空字符串表示不持久化控制台变量
	AppName string

	// Cvars 启动时强制设置的控制台变量（如 horde=1）
	Cvars map[string]string

	// FireInterval 覆盖玩家射击间隔，0 使用默认值
	FireInterval time.Duration

	// OnBroadcast 广播回调，可为 nil
	OnBroadcast func(message string)
}

// App 是部落模式沙盒的核心包装器
type App struct {
	cvars  *game.CvarManager
	engine *arena.Engine
	module *modules.HordeModeModule
}

// NewApp 创建并初始化应用
//
// 初始化流程：
//  1. 打开 gdata 存储并加载持久化的控制台变量
//  2. 加载目录、规则和怪物属性
//  3. 创建竞技场和部落模式模块
//  4. PreInit 校验规则，Init 预缓存并开始热身
//
// 使用 "data/" 路径前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if cfg.Quiet {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cvars, err := game.NewCvarManager(openStorage(cfg.AppName))
	if err != nil {
		return nil, fmt.Errorf("failed to create cvar manager: %w", err)
	}

	catalog := config.DefaultHordeCatalog()
	if cfg.CatalogPath != "" {
		if catalog, err = config.LoadHordeCatalog(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}

	rules := config.DefaultHordeRules()
	if cfg.RulesPath != "" {
		if rules, err = config.LoadHordeRules(cfg.RulesPath); err != nil {
			return nil, err
		}
	}

	stats := config.DefaultMonsterStats()
	if cfg.StatsPath != "" {
		if stats, err = config.LoadMonsterStats(cfg.StatsPath); err != nil {
			return nil, err
		}
	}

	arenaConfig := arena.DefaultConfig(catalog.ItemClassnames())
	arenaConfig.Stats = stats
	arenaConfig.PlayerFireInterval = cfg.FireInterval

	engine := arena.NewEngine(arenaConfig)
	engine.SetVerbose(cfg.Verbose)
	engine.OnBroadcast = cfg.OnBroadcast

	module := modules.NewHordeModeModule(engine, cvars, catalog, rules, systems.NewPRNG(cfg.Seed))
	module.SetVerbose(cfg.Verbose)

	// 模块构造时已注册规则变量，启动参数覆盖持久化值
	for name, value := range cfg.Cvars {
		cvars.ForceSet(name, value)
	}

	module.PreInit()
	module.Init()

	log.Printf("[App] Initialized (horde=%v, seed=%d)", module.Enabled(), cfg.Seed)
	return &App{
		cvars:  cvars,
		engine: engine,
		module: module,
	}, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级模式）
func openStorage(appName string) *gdata.Manager {
	if appName == "" {
		return nil
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open storage %q: %v (cvars will not persist)", appName, err)
		return nil
	}
	return manager
}

// Tick 推进一帧：先模拟竞技场，再驱动部落模式
func (a *App) Tick(dt time.Duration) {
	a.engine.Step(dt)
	a.module.RunFrame()
}

// Engine 返回竞技场引擎
func (a *App) Engine() *arena.Engine {
	return a.engine
}

// Module 返回部落模式模块
func (a *App) Module() *modules.HordeModeModule {
	return a.module
}

// Cvars 返回控制台变量管理器
func (a *App) Cvars() *game.CvarManager {
	return a.cvars
}

// Shutdown 保存持久化的控制台变量
func (a *App) Shutdown() error {
	if err := a.cvars.Save(); err != nil {
		return fmt.Errorf("failed to save cvars: %w", err)
	}
	return nil
}
