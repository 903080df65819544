package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DurationRange 随机时间区间 [Min, Max)
type DurationRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// HordeRulesConfig 部落模式节奏参数
//
// 默认值见 DefaultHordeRules；YAML 中未出现的字段保留默认值。
type HordeRulesConfig struct {
	WarmupDuration   time.Duration `yaml:"warmupDuration"`   // 初始化后的热身时长
	CleanupRecheck   time.Duration `yaml:"cleanupRecheck"`   // 清场阶段检查怪物是否全灭的间隔
	RestDuration     time.Duration `yaml:"restDuration"`     // 全灭后到下一关的休息时长
	SpawnRetryDelay  time.Duration `yaml:"spawnRetryDelay"`  // 找不到出生点时的重试间隔
	FirstSpawnDelay  DurationRange `yaml:"firstSpawnDelay"`  // 每关第一只怪物的延迟
	SpawnInterval    DurationRange `yaml:"spawnInterval"`    // 相邻两次成功生成之间的间隔
	BaseMonsterCount int           `yaml:"baseMonsterCount"` // 每关基础怪物数量
	MonstersPerLevel int           `yaml:"monstersPerLevel"` // 每升一级增加的怪物数量
}

// DefaultHordeRules 返回默认节奏参数
func DefaultHordeRules() *HordeRulesConfig {
	return &HordeRulesConfig{
		WarmupDuration:   10 * time.Second,
		CleanupRecheck:   3 * time.Second,
		RestDuration:     10 * time.Second,
		SpawnRetryDelay:  1500 * time.Millisecond,
		FirstSpawnDelay:  DurationRange{Min: 1 * time.Second, Max: 3 * time.Second},
		SpawnInterval:    DurationRange{Min: 200 * time.Millisecond, Max: 1500 * time.Millisecond},
		BaseMonsterCount: 10,
		MonstersPerLevel: 2,
	}
}

// MonsterCount 计算指定等级需要生成的怪物总数
// 公式: BaseMonsterCount + level * MonstersPerLevel
func (r *HordeRulesConfig) MonsterCount(level int) int {
	return r.BaseMonsterCount + level*r.MonstersPerLevel
}

// LoadHordeRules 从 YAML 文件加载节奏参数
func LoadHordeRules(filePath string) (*HordeRulesConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read horde rules file %s: %w", filePath, err)
	}

	rules, err := ParseHordeRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid horde rules in %s: %w", filePath, err)
	}

	return rules, nil
}

// ParseHordeRules 在默认值基础上解析 YAML 并校验
func ParseHordeRules(data []byte) (*HordeRulesConfig, error) {
	rules := DefaultHordeRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse horde rules YAML: %w", err)
	}

	if err := validateHordeRules(rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// validateHordeRules 验证节奏参数的合法性
func validateHordeRules(rules *HordeRulesConfig) error {
	if rules.WarmupDuration < 0 {
		return fmt.Errorf("warmupDuration cannot be negative, got %v", rules.WarmupDuration)
	}
	if rules.CleanupRecheck <= 0 {
		return fmt.Errorf("cleanupRecheck must be positive, got %v", rules.CleanupRecheck)
	}
	if rules.RestDuration < 0 {
		return fmt.Errorf("restDuration cannot be negative, got %v", rules.RestDuration)
	}
	if rules.SpawnRetryDelay <= 0 {
		return fmt.Errorf("spawnRetryDelay must be positive, got %v", rules.SpawnRetryDelay)
	}

	if err := validateDurationRange("firstSpawnDelay", rules.FirstSpawnDelay); err != nil {
		return err
	}
	if err := validateDurationRange("spawnInterval", rules.SpawnInterval); err != nil {
		return err
	}

	if rules.BaseMonsterCount < 0 {
		return fmt.Errorf("baseMonsterCount cannot be negative, got %d", rules.BaseMonsterCount)
	}
	if rules.MonstersPerLevel < 0 {
		return fmt.Errorf("monstersPerLevel cannot be negative, got %d", rules.MonstersPerLevel)
	}
	if rules.MonsterCount(1) < 1 {
		return fmt.Errorf("level 1 must spawn at least one monster")
	}

	return nil
}

func validateDurationRange(name string, r DurationRange) error {
	if r.Min < 0 {
		return fmt.Errorf("%s.min cannot be negative, got %v", name, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s.max (%v) must be >= %s.min (%v)", name, r.Max, name, r.Min)
	}
	return nil
}
