// hordesim 无界面运行部落模式并在终端输出广播和统计
//
// 用法：
//
//	go run ./cmd/hordesim -seconds 180 -seed 42
//	go run ./cmd/hordesim -rules my_rules.yaml -verbose
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonewx/horde/pkg/app"
	"github.com/gonewx/horde/pkg/arena"
	"github.com/gonewx/horde/pkg/game"
)

var (
	verbose      = flag.Bool("verbose", false, "显示详细调试信息")
	seed         = flag.Int64("seed", 0, "随机种子（0 使用当前时间）")
	seconds      = flag.Float64("seconds", 120, "模拟的游戏时长（秒）")
	tick         = flag.Duration("tick", 50*time.Millisecond, "每帧步长")
	catalogPath  = flag.String("catalog", "", "部落模式目录文件（空使用内置默认值）")
	rulesPath    = flag.String("rules", "", "部落模式节奏参数文件（空使用内置默认值）")
	statsPath    = flag.String("stats", "", "怪物属性文件（空使用内置默认值）")
	appName      = flag.String("appname", "", "持久化存储名称（空字符串禁用持久化）")
	fireInterval = flag.Duration("fire-interval", 0, "玩家射击间隔（0 使用默认值）")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(9)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))
)

func main() {
	flag.Parse()

	if *tick <= 0 {
		fmt.Fprintln(os.Stderr, "tick must be positive")
		os.Exit(2)
	}

	a, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		Quiet:        !*verbose,
		Seed:         *seed,
		CatalogPath:  *catalogPath,
		RulesPath:    *rulesPath,
		StatsPath:    *statsPath,
		AppName:      *appName,
		Cvars:        map[string]string{game.CvarHorde: "1"},
		FireInterval: *fireInterval,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Horde simulation: %.0fs @ %v", *seconds, *tick)))

	engine := a.Engine()
	duration := time.Duration(*seconds * float64(time.Second))
	printed := 0
	for engine.CurrentGameTime() < duration {
		a.Tick(*tick)

		messages := engine.Messages()
		for _, message := range messages[printed:] {
			fmt.Println(renderBroadcast(message))
		}
		printed = len(messages)
	}

	fmt.Println(renderSummary(a))

	if err := a.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// renderBroadcast 多行广播合并为一行横幅
func renderBroadcast(message arena.Message) string {
	text := strings.ReplaceAll(message.Text, "\n", " ")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		timeStyle.Render(fmt.Sprintf("%7.1fs", message.At.Seconds())),
		bannerStyle.Render(text),
	)
}

func renderSummary(a *app.App) string {
	engine := a.Engine()
	stats := engine.PlayerStats()

	rows := [][2]string{}
	if session := a.Module().Session(); session != nil {
		rows = append(rows,
			[2]string{"state", session.State.String()},
			[2]string{"level", fmt.Sprint(session.Level)},
			[2]string{"waves cleared", fmt.Sprint(session.WavesCompleted)},
			[2]string{"monsters spawned", fmt.Sprint(session.TotalSpawned)},
		)
	}
	rows = append(rows,
		[2]string{"alive", fmt.Sprint(engine.LiveMonsterCount())},
		[2]string{"kills", fmt.Sprint(stats.Kills)},
		[2]string{"deaths", fmt.Sprint(stats.Deaths)},
		[2]string{"items", summarizeItems(stats.Items)},
	)

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row[0]),
			valueStyle.Render(row[1]),
		))
	}
	return summaryStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// summarizeItems 按类名统计拾取的物品，如 "ammo_shells x3, item_health x1"
func summarizeItems(items []string) string {
	if len(items) == 0 {
		return "-"
	}

	counts := make(map[string]int)
	for _, item := range items {
		counts[item]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
