package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMonsterStats(t *testing.T) {
	stats := DefaultMonsterStats()

	if err := validateMonsterStats(stats); err != nil {
		t.Fatalf("Default stats should be valid: %v", err)
	}

	// 默认目录中的每个怪物都有属性
	for _, classname := range DefaultHordeCatalog().MonsterClassnames() {
		if _, ok := stats.GetMonsterStats(classname); !ok {
			t.Errorf("Missing stats for %s", classname)
		}
	}

	if _, ok := stats.GetMonsterStats("monster_makron"); ok {
		t.Error("Unknown monster should not have stats")
	}
}

func TestLoadMonsterStats(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{
			name: "有效配置",
			content: `
monsters:
  monster_soldier:
    health: 30
    speed: 90
    damage: 4
    attackRange: 300
    attackInterval: 1s
`,
		},
		{"空配置", "monsters: {}", true},
		{"血量为0", "monsters:\n  monster_soldier:\n    health: 0\n    attackInterval: 1s\n", true},
		{"负速度", "monsters:\n  monster_soldier:\n    health: 10\n    speed: -1\n    attackInterval: 1s\n", true},
		{"缺少攻击间隔", "monsters:\n  monster_soldier:\n    health: 10\n", true},
		{"无效 YAML", "monsters: [", true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tempDir, "stats_"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			config, err := LoadMonsterStats(configPath)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadMonsterStats failed: %v", err)
			}

			stats, ok := config.GetMonsterStats("monster_soldier")
			if !ok {
				t.Fatal("monster_soldier not found")
			}
			if stats.Health != 30 || stats.AttackInterval != time.Second {
				t.Errorf("Unexpected stats: %+v", stats)
			}
		})
	}
}
