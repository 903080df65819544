package main

import (
	"flag"
	"log"

	"github.com/gonewx/horde/pkg/app"
	"github.com/gonewx/horde/pkg/embedded"
	"github.com/gonewx/horde/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose      = flag.Bool("verbose", false, "显示详细调试信息")
	horde        = flag.Bool("horde", true, "强制开启部落模式（关闭时使用持久化的设置）")
	seed         = flag.Int64("seed", 0, "随机种子（0 使用当前时间）")
	catalogPath  = flag.String("catalog", app.DefaultCatalogPath, "部落模式目录文件")
	rulesPath    = flag.String("rules", app.DefaultRulesPath, "部落模式节奏参数文件")
	statsPath    = flag.String("stats", app.DefaultStatsPath, "怪物属性文件")
	appName      = flag.String("appname", "horde", "持久化存储名称（空字符串禁用持久化）")
	fireInterval = flag.Duration("fire-interval", 0, "玩家射击间隔（0 使用默认值）")
)

func main() {
	flag.Parse()

	// 必须在加载任何 data/ 配置之前初始化
	embedded.Init(dataFS)

	cvars := map[string]string{}
	if *horde {
		cvars[game.CvarHorde] = "1"
	}

	a, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		Seed:         *seed,
		CatalogPath:  *catalogPath,
		RulesPath:    *rulesPath,
		StatsPath:    *statsPath,
		AppName:      *appName,
		Cvars:        cvars,
		FireInterval: *fireInterval,
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := a.Shutdown(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	viewer := app.NewViewer(a)
	width, height := viewer.ScreenSize()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Horde - 部落模式沙盒")

	if err := ebiten.RunGame(viewer); err != nil {
		log.Printf("Game loop error: %v", err)
	}
}
