package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gonewx/horde/pkg/components"
	"github.com/gonewx/horde/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ViewerScale 竞技场坐标到屏幕像素的缩放
const ViewerScale = 0.5

// 颜色定义
var (
	arenaBackground = color.RGBA{R: 40, G: 44, B: 52, A: 255}
	spawnPointColor = color.RGBA{R: 90, G: 110, B: 140, A: 255}
	startPointColor = color.RGBA{R: 140, G: 140, B: 60, A: 255}
	playerColor     = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	monsterColor    = color.RGBA{R: 220, G: 70, B: 60, A: 255}
	corpseColor     = color.RGBA{R: 90, G: 60, B: 60, A: 255}
	healthBarBack   = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	healthBarFill   = color.RGBA{R: 230, G: 200, B: 60, A: 255}
)

const (
	monsterRadius    float32 = 14 * ViewerScale
	playerRadius     float32 = 20 * ViewerScale
	spawnPointRadius float32 = 30 * ViewerScale

	// messageDuration 广播在屏幕上停留的时间
	messageDuration = 3 * time.Second
)

// Viewer 部落模式窗口查看器
//
// 实现 ebiten.Game 接口：每个 tick 推进一帧固定步长的模拟，
// 绘制时直接查询竞技场 ECS 中的实体。
// 空格键暂停，R 键重新开始一局。
type Viewer struct {
	app    *App
	step   time.Duration
	paused bool
}

// NewViewer 创建查看器
func NewViewer(app *App) *Viewer {
	return &Viewer{
		app:  app,
		step: time.Second / time.Duration(ebiten.DefaultTPS),
	}
}

// ScreenSize 返回查看器的逻辑屏幕尺寸
func (v *Viewer) ScreenSize() (int, int) {
	cfg := v.app.Engine().Config()
	return int(cfg.Width * ViewerScale), int(cfg.Height * ViewerScale)
}

// Update 处理输入并推进模拟
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.app.Module().Restart()
	}
	if v.paused {
		return nil
	}

	v.app.Tick(v.step)
	return nil
}

// Draw 绘制竞技场和状态信息
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(arenaBackground)

	em := v.app.Engine().EntityManager()

	for _, id := range ecs.GetEntitiesWith2[*components.SpawnPointComponent, *components.TransformComponent](em) {
		spot, _ := ecs.GetComponent[*components.SpawnPointComponent](em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		clr := spawnPointColor
		if spot.SinglePlayer {
			clr = startPointColor
		}
		x, y := toScreen(transform.Origin.X, transform.Origin.Y)
		vector.StrokeCircle(screen, x, y, spawnPointRadius, 1, clr, true)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.MonsterComponent, *components.HealthComponent, *components.TransformComponent](em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		x, y := toScreen(transform.Origin.X, transform.Origin.Y)

		if !health.Alive() {
			vector.DrawFilledCircle(screen, x, y, monsterRadius, corpseColor, true)
			continue
		}
		vector.DrawFilledCircle(screen, x, y, monsterRadius, monsterColor, true)
		drawHealthBar(screen, x, y-monsterRadius-4, health)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.PlayerComponent, *components.HealthComponent, *components.TransformComponent](em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		x, y := toScreen(transform.Origin.X, transform.Origin.Y)
		vector.DrawFilledCircle(screen, x, y, playerRadius, playerColor, true)
		drawHealthBar(screen, x, y-playerRadius-4, health)
	}

	v.drawHUD(screen)
}

// drawHUD 绘制左上角的会话状态和居中广播
func (v *Viewer) drawHUD(screen *ebiten.Image) {
	engine := v.app.Engine()
	stats := engine.PlayerStats()

	hud := "horde: off"
	if session := v.app.Module().Session(); session != nil {
		hud = fmt.Sprintf("horde: %s  level %d  to spawn %d  spawned %d  waves %d",
			session.State, session.Level, session.MonstersToSpawn, session.TotalSpawned, session.WavesCompleted)
	}
	hud += fmt.Sprintf("\nalive %d  kills %d  deaths %d  hp %d  items %d  t=%.1fs",
		engine.LiveMonsterCount(), stats.Kills, stats.Deaths, stats.Health, len(stats.Items),
		engine.CurrentGameTime().Seconds())
	if v.paused {
		hud += "\n[paused]"
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)

	message, ok := engine.LastMessage()
	if !ok || engine.CurrentGameTime()-message.At > messageDuration {
		return
	}
	width, height := v.ScreenSize()
	// DebugPrint 字宽 6 像素
	ebitenutil.DebugPrintAt(screen, message.Text, width/2-len(message.Text)*3, height/3)
}

// Layout 返回逻辑屏幕尺寸
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.ScreenSize()
}

func drawHealthBar(screen *ebiten.Image, centerX, y float32, health *components.HealthComponent) {
	const width, height = 20, 3
	if health.MaxHealth <= 0 {
		return
	}
	ratio := float32(health.CurrentHealth) / float32(health.MaxHealth)
	if ratio < 0 {
		ratio = 0
	}
	vector.DrawFilledRect(screen, centerX-width/2, y, width, height, healthBarBack, false)
	vector.DrawFilledRect(screen, centerX-width/2, y, width*ratio, height, healthBarFill, false)
}

func toScreen(x, y float64) (float32, float32) {
	return float32(x * ViewerScale), float32(y * ViewerScale)
}
