package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/gonewx/horde/pkg/embedded"
	"github.com/gonewx/horde/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogWeight 未填写 weight 时的基础权重
const DefaultCatalogWeight = 1.0

// 权重调整器类别名称
// 与 systems 包中注册的 WeightAdjuster 一一对应
const (
	AdjusterHealth = "health"
	AdjusterWeapon = "weapon"
	AdjusterAmmo   = "ammo"
	AdjusterArmor  = "armor"
)

// KnownAdjusters 所有合法的调整器类别名称
var KnownAdjusters = []string{AdjusterHealth, AdjusterWeapon, AdjusterAmmo, AdjusterArmor}

// CatalogEntry 目录条目（怪物或奖励物品）
//
// MinLevel / MaxLevel 为 nil 表示该侧不设上下限。
type CatalogEntry struct {
	Classname string  `yaml:"classname"`          // 实体类名，如 "monster_soldier"
	MinLevel  *int    `yaml:"minLevel,omitempty"` // 最低出现等级（含）
	MaxLevel  *int    `yaml:"maxLevel,omitempty"` // 最高出现等级（含）
	Weight    float64 `yaml:"weight"`             // 基础权重
	Adjuster  string  `yaml:"adjuster,omitempty"` // 权重调整器类别，空表示不调整
}

// UnmarshalYAML 支持两种写法：
//   - 完整映射：{classname: ..., minLevel: ..., weight: ...}
//   - 标量简写：- item_health_small（权重取默认值 1.0）
func (e *CatalogEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*e = CatalogEntry{Classname: value.Value, Weight: DefaultCatalogWeight}
		return nil
	}

	type rawEntry CatalogEntry
	raw := rawEntry{Weight: DefaultCatalogWeight}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*e = CatalogEntry(raw)
	return nil
}

// InLevelRange 判断给定等级是否落在条目的 [MinLevel, MaxLevel] 区间内
func (e *CatalogEntry) InLevelRange(level int) bool {
	if e.MinLevel != nil && level < *e.MinLevel {
		return false
	}
	if e.MaxLevel != nil && level > *e.MaxLevel {
		return false
	}
	return true
}

// LevelRangeString 返回等级区间的可读形式（日志用）
func (e *CatalogEntry) LevelRangeString() string {
	lo, hi := "-inf", "+inf"
	if e.MinLevel != nil {
		lo = fmt.Sprintf("%d", *e.MinLevel)
	}
	if e.MaxLevel != nil {
		hi = fmt.Sprintf("%d", *e.MaxLevel)
	}
	return "[" + lo + ", " + hi + "]"
}

// HordeCatalogConfig 部落模式目录配置
type HordeCatalogConfig struct {
	Items    []CatalogEntry `yaml:"items"`    // 奖励物品目录
	Monsters []CatalogEntry `yaml:"monsters"` // 怪物目录
}

// Level 返回指向整数的指针，用于构造 MinLevel / MaxLevel
func Level(n int) *int {
	return &n
}

// DefaultHordeCatalog 返回内置的默认目录
func DefaultHordeCatalog() *HordeCatalogConfig {
	return &HordeCatalogConfig{
		Items: []CatalogEntry{
			{Classname: "item_health_small", Weight: 1.0},

			{Classname: "item_health", Weight: 1.0, Adjuster: AdjusterHealth},
			{Classname: "item_health_large", Weight: 0.85, Adjuster: AdjusterHealth},

			{Classname: "item_armor_shard", Weight: 1.0},
			{Classname: "item_armor_jacket", MaxLevel: Level(4), Weight: 0.65, Adjuster: AdjusterArmor},
			{Classname: "item_armor_combat", MinLevel: Level(2), Weight: 0.62, Adjuster: AdjusterArmor},
			{Classname: "item_armor_body", MinLevel: Level(4), Weight: 0.35, Adjuster: AdjusterArmor},

			{Classname: "weapon_shotgun", Weight: 0.98, Adjuster: AdjusterWeapon},
			{Classname: "weapon_supershotgun", MinLevel: Level(2), Weight: 1.02, Adjuster: AdjusterWeapon},
			{Classname: "weapon_machinegun", Weight: 1.05, Adjuster: AdjusterWeapon},
			{Classname: "weapon_chaingun", MinLevel: Level(3), Weight: 1.01, Adjuster: AdjusterWeapon},
			{Classname: "weapon_grenadelauncher", MinLevel: Level(4), Weight: 0.75, Adjuster: AdjusterWeapon},

			{Classname: "ammo_shells", Weight: 1.25, Adjuster: AdjusterAmmo},
			{Classname: "ammo_bullets", Weight: 1.25, Adjuster: AdjusterAmmo},
			{Classname: "ammo_grenades", MinLevel: Level(2), Weight: 1.25, Adjuster: AdjusterAmmo},
		},
		Monsters: []CatalogEntry{
			{Classname: "monster_soldier_light", MaxLevel: Level(2), Weight: 1.50},
			{Classname: "monster_soldier", MaxLevel: Level(6), Weight: 0.85},
			{Classname: "monster_soldier_ss", MinLevel: Level(2), MaxLevel: Level(6), Weight: 1.01},
			{Classname: "monster_infantry", MinLevel: Level(2), MaxLevel: Level(6), Weight: 1.15},
			{Classname: "monster_gunner", MinLevel: Level(2), Weight: 1.15},
			{Classname: "monster_chick", MinLevel: Level(3), MaxLevel: Level(8), Weight: 1.01},
			{Classname: "monster_gladiator", MinLevel: Level(4), Weight: 1.2},
			{Classname: "monster_tank", MinLevel: Level(5), Weight: 0.85},
		},
	}
}

// LoadHordeCatalog 从 YAML 文件加载部落模式目录
//
// "data/" 开头的路径优先从内置数据读取，其余路径读取文件系统。
//
// 返回：
//
//	*HordeCatalogConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadHordeCatalog(filePath string) (*HordeCatalogConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read horde catalog file %s: %w", filePath, err)
	}

	catalog, err := ParseHordeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid horde catalog in %s: %w", filePath, err)
	}

	return catalog, nil
}

// ParseHordeCatalog 解析并校验 YAML 格式的目录数据
func ParseHordeCatalog(data []byte) (*HordeCatalogConfig, error) {
	var catalog HordeCatalogConfig
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse horde catalog YAML: %w", err)
	}

	if err := validateHordeCatalog(&catalog); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// validateHordeCatalog 校验目录的结构合法性
//
// 只拒绝格式错误；等级区间导致永远无法出现的条目由 Warnings 报告。
func validateHordeCatalog(catalog *HordeCatalogConfig) error {
	if len(catalog.Monsters) == 0 {
		return fmt.Errorf("at least one monster entry is required")
	}

	if err := validateCatalogEntries("items", catalog.Items); err != nil {
		return err
	}
	return validateCatalogEntries("monsters", catalog.Monsters)
}

func validateCatalogEntries(section string, entries []CatalogEntry) error {
	for i, entry := range entries {
		if strings.TrimSpace(entry.Classname) == "" {
			return fmt.Errorf("%s[%d]: classname cannot be empty", section, i)
		}

		if math.IsNaN(entry.Weight) || math.IsInf(entry.Weight, 0) {
			return fmt.Errorf("%s %s: weight must be a finite number", section, entry.Classname)
		}

		if entry.Weight < 0 {
			return fmt.Errorf("%s %s: weight cannot be negative, got %.2f", section, entry.Classname, entry.Weight)
		}

		if entry.Adjuster != "" && !isKnownAdjuster(entry.Adjuster) {
			if hint, ok := utils.SuggestName(entry.Adjuster, KnownAdjusters); ok {
				return fmt.Errorf("%s %s: unknown adjuster %q (did you mean %q?)", section, entry.Classname, entry.Adjuster, hint)
			}
			return fmt.Errorf("%s %s: unknown adjuster %q (known: %s)", section, entry.Classname, entry.Adjuster, strings.Join(KnownAdjusters, ", "))
		}
	}

	return nil
}

func isKnownAdjuster(name string) bool {
	for _, known := range KnownAdjusters {
		if name == known {
			return true
		}
	}
	return false
}

// Warnings 返回目录中可疑但不影响运行的配置
//
// 包括：权重为 0 的条目、等级区间为空的条目、重复类名，
// 以及某个等级下没有任何可选怪物的情况。
func (c *HordeCatalogConfig) Warnings() []string {
	var warnings []string
	warnings = append(warnings, entryWarnings("items", c.Items)...)
	warnings = append(warnings, entryWarnings("monsters", c.Monsters)...)

	// 检查 1..(最大有限边界+1) 的每个等级是否有可选怪物
	highest := 1
	for _, entry := range c.Monsters {
		if entry.MinLevel != nil && *entry.MinLevel > highest {
			highest = *entry.MinLevel
		}
		if entry.MaxLevel != nil && *entry.MaxLevel > highest {
			highest = *entry.MaxLevel
		}
	}
	for level := 1; level <= highest+1; level++ {
		if !hasEligibleEntry(c.Monsters, level) {
			warnings = append(warnings, fmt.Sprintf("monsters: no eligible entry at level %d", level))
		}
	}

	return warnings
}

func entryWarnings(section string, entries []CatalogEntry) []string {
	var warnings []string
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		if entry.Weight == 0 {
			warnings = append(warnings, fmt.Sprintf("%s %s: weight is 0, entry is never picked", section, entry.Classname))
		}
		if entry.MinLevel != nil && entry.MaxLevel != nil && *entry.MinLevel > *entry.MaxLevel {
			warnings = append(warnings, fmt.Sprintf("%s %s: level range %s is empty", section, entry.Classname, entry.LevelRangeString()))
		} else if entry.MaxLevel != nil && *entry.MaxLevel < 1 {
			warnings = append(warnings, fmt.Sprintf("%s %s: maxLevel %d is below the first level", section, entry.Classname, *entry.MaxLevel))
		}
		if seen[entry.Classname] {
			warnings = append(warnings, fmt.Sprintf("%s %s: duplicate classname", section, entry.Classname))
		}
		seen[entry.Classname] = true
	}

	return warnings
}

func hasEligibleEntry(entries []CatalogEntry, level int) bool {
	for i := range entries {
		if entries[i].Weight > 0 && entries[i].InLevelRange(level) {
			return true
		}
	}
	return false
}

// ItemClassnames 返回所有奖励物品类名
func (c *HordeCatalogConfig) ItemClassnames() []string {
	return classnames(c.Items)
}

// MonsterClassnames 返回所有怪物类名
func (c *HordeCatalogConfig) MonsterClassnames() []string {
	return classnames(c.Monsters)
}

func classnames(entries []CatalogEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Classname)
	}
	return names
}

// readConfigFile 读取配置文件
// "data/" 开头且已嵌入的文件从 embedded 读取，否则读取文件系统
func readConfigFile(filePath string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(filePath) {
		return embedded.ReadFile(filePath)
	}
	return os.ReadFile(filePath)
}
