package modules

import (
	"testing"
	"time"

	"github.com/gonewx/horde/pkg/arena"
	"github.com/gonewx/horde/pkg/config"
	"github.com/gonewx/horde/pkg/game"
	"github.com/gonewx/horde/pkg/systems"
)

// newTestModule 创建使用沙盒竞技场的模块，cvars 以给定值强制设置
func newTestModule(t *testing.T, values map[string]string) (*HordeModeModule, *arena.Engine, *game.CvarManager) {
	t.Helper()

	cvars, err := game.NewCvarManager(nil)
	if err != nil {
		t.Fatalf("NewCvarManager(nil) error: %v", err)
	}

	catalog := config.DefaultHordeCatalog()
	engine := arena.NewEngine(arena.DefaultConfig(catalog.ItemClassnames()))
	module := NewHordeModeModule(engine, cvars, catalog, nil, systems.NewPRNG(12345))

	for name, value := range values {
		cvars.ForceSet(name, value)
	}
	return module, engine, cvars
}

// runFor 以 100ms 步长推进竞技场并驱动模块
func runFor(engine *arena.Engine, module *HordeModeModule, d time.Duration) {
	const tick = 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		engine.Step(tick)
		module.RunFrame()
	}
}

func TestHordeModeModule_Disabled(t *testing.T) {
	module, engine, _ := newTestModule(t, nil)

	if module.PreInit() {
		t.Error("PreInit should not correct cvars when horde is off")
	}
	module.Init()

	if module.Session() != nil {
		t.Fatal("Session should be nil when horde is off")
	}
	runFor(engine, module, 15*time.Second)
	if len(engine.Messages()) != 0 {
		t.Errorf("Expected no broadcasts, got %v", engine.Messages())
	}
	if module.IsCooperative() || module.IsDeathmatch() {
		t.Error("Single player should be neither cooperative nor deathmatch")
	}
}

func TestHordeModeModule_Init(t *testing.T) {
	module, engine, _ := newTestModule(t, map[string]string{game.CvarHorde: "1", game.CvarCoop: "1"})

	if !module.PreInit() {
		t.Error("PreInit should force deathmatch rules")
	}
	if !module.IsCooperative() || module.IsDeathmatch() {
		t.Error("Horde should count as cooperative, not deathmatch")
	}

	engine.Step(500 * time.Millisecond)
	module.Init()

	session := module.Session()
	if session == nil {
		t.Fatal("Session should be created")
	}
	if session.State != game.WaveStateWarmup || session.Level != 1 {
		t.Errorf("Unexpected session: %s", session)
	}
	if session.PhaseDeadline != 10500*time.Millisecond {
		t.Errorf("Warmup deadline: expected 10.5s, got %v", session.PhaseDeadline)
	}

	for _, item := range config.DefaultHordeCatalog().ItemClassnames() {
		if !engine.Precached(item) {
			t.Errorf("Item %s should be precached", item)
		}
	}
	// 预缓存的临时怪物不会留在场上
	if got := len(engine.Monsters()); got != 0 {
		t.Errorf("Throwaway monsters left: %d", got)
	}
}

func TestHordeModeModule_FullRun(t *testing.T) {
	module, engine, _ := newTestModule(t, map[string]string{game.CvarHorde: "1", game.CvarDeathmatch: "1"})
	module.PreInit()
	module.Init()

	runFor(engine, module, 90*time.Second)

	session := module.Session()
	if session.Level < 2 {
		t.Fatalf("Expected to reach level 2 in 90s, got %s", session)
	}
	if session.WavesCompleted < 1 {
		t.Errorf("WavesCompleted: expected >= 1, got %d", session.WavesCompleted)
	}
	if session.TotalSpawned < 12 {
		t.Errorf("TotalSpawned: expected >= 12, got %d", session.TotalSpawned)
	}

	expected := []string{
		systems.MessageWarmupEnded,
		systems.MessageAllSpawned,
		systems.MessageAllDead,
		systems.MessageNextLevel,
	}
	messages := engine.Messages()
	if len(messages) < len(expected) {
		t.Fatalf("Expected at least %d broadcasts, got %d", len(expected), len(messages))
	}
	for i, want := range expected {
		if messages[i].Text != want {
			t.Errorf("Broadcast %d: expected %q, got %q", i, want, messages[i].Text)
		}
	}
	if messages[0].At != 10*time.Second {
		t.Errorf("Warmup should end at 10s, got %v", messages[0].At)
	}

	if engine.PlayerStats().Kills < 12 {
		t.Errorf("Player kills: expected >= 12, got %d", engine.PlayerStats().Kills)
	}
}

func TestHordeModeModule_Restart(t *testing.T) {
	module, engine, cvars := newTestModule(t, map[string]string{game.CvarHorde: "1", game.CvarDeathmatch: "1"})
	module.PreInit()
	module.Init()

	runFor(engine, module, 30*time.Second)
	old := module.Session()

	t.Run("替换会话", func(t *testing.T) {
		module.Restart()
		session := module.Session()
		if session == nil || session == old {
			t.Fatal("Restart should create a new session")
		}
		if session.State != game.WaveStateWarmup || session.Level != 1 {
			t.Errorf("Restarted session: %s", session)
		}
		if session.PhaseDeadline != engine.CurrentGameTime()+10*time.Second {
			t.Errorf("Warmup deadline: expected now+10s, got %v", session.PhaseDeadline)
		}
	})

	t.Run("锁存关闭后停用", func(t *testing.T) {
		cvars.Set(game.CvarHorde, "0")
		if !module.Enabled() {
			t.Fatal("Latched change should not apply before restart")
		}

		module.Restart()
		if module.Enabled() {
			t.Error("Horde should be disabled after restart")
		}
		if module.Session() != nil {
			t.Error("Session should be dropped")
		}
	})
}

func TestHordeModeModule_PickRewardItem(t *testing.T) {
	module, _, _ := newTestModule(t, map[string]string{game.CvarHorde: "1", game.CvarDeathmatch: "1"})

	// 未激活时按第1关选择
	catalog := config.DefaultHordeCatalog()
	for i := 0; i < 200; i++ {
		item, ok := module.PickRewardItem()
		if !ok {
			t.Fatal("Expected an item")
		}
		for _, e := range catalog.Items {
			if e.Classname == item && !e.InLevelRange(1) {
				t.Fatalf("Item %s not eligible at level 1", item)
			}
		}
	}

	module.Init()
	module.Deactivate()
	if module.Session() != nil {
		t.Error("Deactivate should drop session")
	}
	module.RunFrame()
}
