package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/horde/pkg/embedded"
)

func TestLoadHordeCatalog(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig := func(t *testing.T, name, content string) string {
		t.Helper()
		configPath := filepath.Join(tempDir, name)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}
		return configPath
	}

	t.Run("加载有效配置文件", func(t *testing.T) {
		configPath := writeConfig(t, "valid_catalog.yaml", `
items:
  - item_health_small
  - classname: item_armor_jacket
    maxLevel: 4
    weight: 0.65
    adjuster: armor
monsters:
  - classname: monster_soldier_light
    maxLevel: 2
    weight: 1.5
  - classname: monster_tank
    minLevel: 5
    weight: 0.85
`)

		catalog, err := LoadHordeCatalog(configPath)
		if err != nil {
			t.Fatalf("LoadHordeCatalog failed: %v", err)
		}

		if len(catalog.Items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(catalog.Items))
		}
		if len(catalog.Monsters) != 2 {
			t.Fatalf("Expected 2 monsters, got %d", len(catalog.Monsters))
		}

		// 标量简写使用默认权重且不限等级
		small := catalog.Items[0]
		if small.Classname != "item_health_small" {
			t.Errorf("items[0] classname: expected item_health_small, got %s", small.Classname)
		}
		if small.Weight != DefaultCatalogWeight {
			t.Errorf("items[0] weight: expected %.2f, got %.2f", DefaultCatalogWeight, small.Weight)
		}
		if small.MinLevel != nil || small.MaxLevel != nil {
			t.Errorf("items[0] should be unbounded, got %s", small.LevelRangeString())
		}

		jacket := catalog.Items[1]
		if jacket.MaxLevel == nil || *jacket.MaxLevel != 4 {
			t.Errorf("items[1] maxLevel: expected 4, got %s", jacket.LevelRangeString())
		}
		if jacket.Adjuster != AdjusterArmor {
			t.Errorf("items[1] adjuster: expected armor, got %q", jacket.Adjuster)
		}

		tank := catalog.Monsters[1]
		if tank.MinLevel == nil || *tank.MinLevel != 5 || tank.MaxLevel != nil {
			t.Errorf("monsters[1] range: expected [5, +inf], got %s", tank.LevelRangeString())
		}
		if tank.Weight != 0.85 {
			t.Errorf("monsters[1] weight: expected 0.85, got %.2f", tank.Weight)
		}
	})

	t.Run("映射条目省略权重时使用默认值", func(t *testing.T) {
		configPath := writeConfig(t, "default_weight.yaml", `
monsters:
  - classname: monster_soldier
    maxLevel: 6
`)

		catalog, err := LoadHordeCatalog(configPath)
		if err != nil {
			t.Fatalf("LoadHordeCatalog failed: %v", err)
		}
		if catalog.Monsters[0].Weight != DefaultCatalogWeight {
			t.Errorf("Expected default weight %.2f, got %.2f", DefaultCatalogWeight, catalog.Monsters[0].Weight)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadHordeCatalog(filepath.Join(tempDir, "nonexistent.yaml"))
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("无效 YAML 格式", func(t *testing.T) {
		configPath := writeConfig(t, "invalid_yaml.yaml", "monsters: [")
		_, err := LoadHordeCatalog(configPath)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})

	t.Run("空怪物列表", func(t *testing.T) {
		configPath := writeConfig(t, "empty_monsters.yaml", "items:\n  - item_health\nmonsters: []\n")
		_, err := LoadHordeCatalog(configPath)
		if err == nil {
			t.Error("Expected error for empty monsters list")
		}
	})

	t.Run("空类名", func(t *testing.T) {
		configPath := writeConfig(t, "empty_classname.yaml", `
monsters:
  - classname: ""
    weight: 1
`)
		_, err := LoadHordeCatalog(configPath)
		if err == nil {
			t.Error("Expected error for empty classname")
		}
	})

	t.Run("负数权重", func(t *testing.T) {
		configPath := writeConfig(t, "negative_weight.yaml", `
monsters:
  - classname: monster_soldier
    weight: -1
`)
		_, err := LoadHordeCatalog(configPath)
		if err == nil {
			t.Error("Expected error for negative weight")
		}
	})

	t.Run("未知调整器给出拼写提示", func(t *testing.T) {
		configPath := writeConfig(t, "unknown_adjuster.yaml", `
items:
  - classname: weapon_shotgun
    adjuster: wepon
monsters:
  - monster_soldier
`)
		_, err := LoadHordeCatalog(configPath)
		if err == nil {
			t.Fatal("Expected error for unknown adjuster")
		}
		if !strings.Contains(err.Error(), `did you mean "weapon"`) {
			t.Errorf("Expected suggestion in error, got: %v", err)
		}
	})
}

func TestLoadHordeCatalogEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/horde_catalog.yaml": &fstest.MapFile{Data: []byte("monsters:\n  - monster_gunner\n")},
	})
	defer embedded.Reset()

	catalog, err := LoadHordeCatalog("data/horde_catalog.yaml")
	if err != nil {
		t.Fatalf("LoadHordeCatalog from embedded data failed: %v", err)
	}
	if len(catalog.Monsters) != 1 || catalog.Monsters[0].Classname != "monster_gunner" {
		t.Errorf("Unexpected embedded catalog: %+v", catalog.Monsters)
	}
}

func TestCatalogEntry_InLevelRange(t *testing.T) {
	tests := []struct {
		name     string
		entry    CatalogEntry
		level    int
		expected bool
	}{
		{"不限等级", CatalogEntry{}, 1, true},
		{"不限等级（高等级）", CatalogEntry{}, 100, true},
		{"低于下限", CatalogEntry{MinLevel: Level(2)}, 1, false},
		{"等于下限", CatalogEntry{MinLevel: Level(2)}, 2, true},
		{"等于上限", CatalogEntry{MaxLevel: Level(4)}, 4, true},
		{"高于上限", CatalogEntry{MaxLevel: Level(4)}, 5, false},
		{"区间内", CatalogEntry{MinLevel: Level(3), MaxLevel: Level(8)}, 5, true},
		{"空区间", CatalogEntry{MinLevel: Level(5), MaxLevel: Level(3)}, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.InLevelRange(tt.level); got != tt.expected {
				t.Errorf("InLevelRange(%d) for %s: expected %v, got %v",
					tt.level, tt.entry.LevelRangeString(), tt.expected, got)
			}
		})
	}
}

func TestDefaultHordeCatalog(t *testing.T) {
	catalog := DefaultHordeCatalog()

	if len(catalog.Items) != 15 {
		t.Errorf("Expected 15 default items, got %d", len(catalog.Items))
	}
	if len(catalog.Monsters) != 8 {
		t.Errorf("Expected 8 default monsters, got %d", len(catalog.Monsters))
	}

	if err := validateHordeCatalog(catalog); err != nil {
		t.Errorf("Default catalog should be valid: %v", err)
	}

	if warnings := catalog.Warnings(); len(warnings) != 0 {
		t.Errorf("Default catalog should produce no warnings, got %v", warnings)
	}
}

func TestHordeCatalogWarnings(t *testing.T) {
	catalog := &HordeCatalogConfig{
		Items: []CatalogEntry{
			{Classname: "item_health", Weight: 0},
			{Classname: "item_armor_body", MinLevel: Level(6), MaxLevel: Level(2), Weight: 1},
		},
		Monsters: []CatalogEntry{
			{Classname: "monster_soldier", MaxLevel: Level(2), Weight: 1},
			{Classname: "monster_soldier", MaxLevel: Level(2), Weight: 1},
			{Classname: "monster_tank", MinLevel: Level(4), Weight: 1},
		},
	}

	warnings := catalog.Warnings()

	expected := []string{
		"items item_health: weight is 0, entry is never picked",
		"items item_armor_body: level range [6, 2] is empty",
		"monsters monster_soldier: duplicate classname",
		"monsters: no eligible entry at level 3",
	}
	for _, want := range expected {
		found := false
		for _, got := range warnings {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing warning %q in %v", want, warnings)
		}
	}

	if len(warnings) != len(expected) {
		t.Errorf("Expected %d warnings, got %d: %v", len(expected), len(warnings), warnings)
	}
}

func TestHordeCatalogClassnames(t *testing.T) {
	catalog := DefaultHordeCatalog()

	items := catalog.ItemClassnames()
	if items[0] != "item_health_small" || items[len(items)-1] != "ammo_grenades" {
		t.Errorf("Unexpected item classname order: %v", items)
	}

	monsters := catalog.MonsterClassnames()
	if monsters[0] != "monster_soldier_light" || monsters[len(monsters)-1] != "monster_tank" {
		t.Errorf("Unexpected monster classname order: %v", monsters)
	}
}
