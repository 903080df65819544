package config

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// MonsterStats 单个怪物类型的属性配置
type MonsterStats struct {
	Health         int           `yaml:"health"`         // 生命值
	Speed          float64       `yaml:"speed"`          // 追击速度（单位/秒）
	Damage         int           `yaml:"damage"`         // 单次攻击伤害
	AttackRange    float64       `yaml:"attackRange"`    // 攻击距离
	AttackInterval time.Duration `yaml:"attackInterval"` // 攻击间隔
}

// MonsterStatsConfig 怪物属性配置文件结构
type MonsterStatsConfig struct {
	Monsters map[string]MonsterStats `yaml:"monsters"` // 类名到属性的映射
}

// DefaultMonsterStats 返回默认目录中所有怪物的属性
func DefaultMonsterStats() *MonsterStatsConfig {
	return &MonsterStatsConfig{
		Monsters: map[string]MonsterStats{
			"monster_soldier_light": {Health: 20, Speed: 90, Damage: 2, AttackRange: 300, AttackInterval: time.Second},
			"monster_soldier":       {Health: 30, Speed: 90, Damage: 4, AttackRange: 300, AttackInterval: time.Second},
			"monster_soldier_ss":    {Health: 40, Speed: 90, Damage: 5, AttackRange: 300, AttackInterval: 800 * time.Millisecond},
			"monster_infantry":      {Health: 100, Speed: 80, Damage: 3, AttackRange: 250, AttackInterval: 300 * time.Millisecond},
			"monster_gunner":        {Health: 175, Speed: 70, Damage: 3, AttackRange: 350, AttackInterval: 200 * time.Millisecond},
			"monster_chick":         {Health: 175, Speed: 85, Damage: 15, AttackRange: 400, AttackInterval: 2 * time.Second},
			"monster_gladiator":     {Health: 400, Speed: 60, Damage: 40, AttackRange: 500, AttackInterval: 3 * time.Second},
			"monster_tank":          {Health: 750, Speed: 40, Damage: 12, AttackRange: 450, AttackInterval: 500 * time.Millisecond},
		},
	}
}

// LoadMonsterStats 从 YAML 文件加载怪物属性配置
// 参数：
//
//	filePath - 配置文件路径（"data/" 开头时读取内置数据）
//
// 返回：
//
//	*MonsterStatsConfig - 解析后的配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadMonsterStats(filePath string) (*MonsterStatsConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster stats file %s: %w", filePath, err)
	}

	var config MonsterStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse monster stats YAML from %s: %w", filePath, err)
	}

	if err := validateMonsterStats(&config); err != nil {
		return nil, fmt.Errorf("invalid monster stats in %s: %w", filePath, err)
	}

	return &config, nil
}

// validateMonsterStats 验证怪物属性配置的完整性和合法性
func validateMonsterStats(config *MonsterStatsConfig) error {
	if len(config.Monsters) == 0 {
		return fmt.Errorf("at least one monster type is required")
	}

	for _, classname := range config.Classnames() {
		stats := config.Monsters[classname]

		if stats.Health <= 0 {
			return fmt.Errorf("monster %s: health must be positive, got %d", classname, stats.Health)
		}

		if stats.Speed < 0 {
			return fmt.Errorf("monster %s: speed cannot be negative, got %v", classname, stats.Speed)
		}

		if stats.Damage < 0 {
			return fmt.Errorf("monster %s: damage cannot be negative, got %d", classname, stats.Damage)
		}

		if stats.AttackInterval <= 0 {
			return fmt.Errorf("monster %s: attackInterval must be positive, got %v", classname, stats.AttackInterval)
		}
	}

	return nil
}

// GetMonsterStats 获取指定怪物类型的完整属性
// 如果怪物类型不存在，返回 nil 和 false
func (c *MonsterStatsConfig) GetMonsterStats(classname string) (*MonsterStats, bool) {
	stats, ok := c.Monsters[classname]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// Classnames 返回所有怪物类名（已排序）
func (c *MonsterStatsConfig) Classnames() []string {
	names := make([]string, 0, len(c.Monsters))
	for name := range c.Monsters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
