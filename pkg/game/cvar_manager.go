package game

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// CvarFlags 控制台变量标志位
type CvarFlags int

const (
	// CvarLatch 修改在下一局（ApplyLatched）才生效
	CvarLatch CvarFlags = 1 << iota
	// CvarArchive 值会被持久化，下次启动时恢复
	CvarArchive
)

// Cvar 控制台变量
type Cvar struct {
	Name         string
	Value        string
	LatchedValue string // 待生效的值，仅 HasLatched 为 true 时有效
	HasLatched   bool
	Flags        CvarFlags
}

// Integer 将值解析为整数
// 与引擎的 atoi 语义一致：无法解析时为 0，小数向零截断
func (c *Cvar) Integer() int {
	value := strings.TrimSpace(c.Value)
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}

// Bool 非零即为真
func (c *Cvar) Bool() bool {
	return c.Integer() != 0
}

// 存储路径常量
const (
	cvarObject   = "cvars"
	cvarProperty = "archived"
)

// CvarManager 控制台变量管理器
//
// 职责：
//   - 注册和查询控制台变量
//   - 处理锁存（latch）语义：锁存变量的修改在 ApplyLatched 后才生效
//   - 通过 gdata 持久化带 CvarArchive 标志的变量
//
// gdataManager 为 nil 时进入降级模式，只在内存中保存变量。
type CvarManager struct {
	gdataManager *gdata.Manager
	cvars        map[string]*Cvar
	saved        map[string]string // 已加载但尚未注册的持久化值
}

// NewCvarManager 创建控制台变量管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *CvarManager: 管理器实例
//   - error: 保留给调用方的错误返回，加载失败不视为致命错误
func NewCvarManager(gdataManager *gdata.Manager) (*CvarManager, error) {
	cm := &CvarManager{
		gdataManager: gdataManager,
		cvars:        make(map[string]*Cvar),
		saved:        make(map[string]string),
	}

	if err := cm.Load(); err != nil {
		log.Printf("[CvarManager] Warning: Failed to load archived cvars: %v (using defaults)", err)
	}

	return cm, nil
}

// Get 获取变量，不存在时以默认值注册
//
// 已存在的变量会合并新的标志位，值保持不变。
// 持久化值优先于默认值。
func (cm *CvarManager) Get(name, defaultValue string, flags CvarFlags) *Cvar {
	if cvar, ok := cm.cvars[name]; ok {
		cvar.Flags |= flags
		return cvar
	}

	value := defaultValue
	if savedValue, ok := cm.saved[name]; ok && flags&CvarArchive != 0 {
		value = savedValue
		delete(cm.saved, name)
	}

	cvar := &Cvar{Name: name, Value: value, Flags: flags}
	cm.cvars[name] = cvar
	return cvar
}

// Find 查找已注册的变量
func (cm *CvarManager) Find(name string) (*Cvar, bool) {
	cvar, ok := cm.cvars[name]
	return cvar, ok
}

// Set 设置变量值
//
// 锁存变量只记录待生效值，当前值不变。
// 未注册的变量以无标志位注册。
func (cm *CvarManager) Set(name, value string) *Cvar {
	cvar := cm.Get(name, value, 0)

	if cvar.Flags&CvarLatch != 0 {
		if value == cvar.Value {
			cvar.HasLatched = false
			cvar.LatchedValue = ""
			return cvar
		}
		cvar.LatchedValue = value
		cvar.HasLatched = true
		log.Printf("[CvarManager] %s will be changed to %q for next game", name, value)
		return cvar
	}

	cvar.Value = value
	return cvar
}

// ForceSet 立即设置变量值，忽略锁存
func (cm *CvarManager) ForceSet(name, value string) *Cvar {
	cvar := cm.Get(name, value, 0)
	cvar.Value = value
	cvar.HasLatched = false
	cvar.LatchedValue = ""
	return cvar
}

// ApplyLatched 让所有待生效的锁存值生效（新一局开始时调用）
//
// 返回：
//   - int: 生效的变量数量
func (cm *CvarManager) ApplyLatched() int {
	applied := 0
	for _, cvar := range cm.cvars {
		if !cvar.HasLatched {
			continue
		}
		cvar.Value = cvar.LatchedValue
		cvar.LatchedValue = ""
		cvar.HasLatched = false
		applied++
	}

	if applied > 0 {
		log.Printf("[CvarManager] Applied %d latched cvar(s)", applied)
	}
	return applied
}

// Load 从 gdata 加载持久化变量
//
// 已注册的 CvarArchive 变量立即更新，其余值在注册时生效。
func (cm *CvarManager) Load() error {
	// 降级模式：无法持久化
	if cm.gdataManager == nil {
		return nil
	}

	if !cm.gdataManager.ObjectPropExists(cvarObject, cvarProperty) {
		return nil
	}

	data, err := cm.gdataManager.LoadObjectProp(cvarObject, cvarProperty)
	if err != nil {
		return fmt.Errorf("failed to load cvars: %w", err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to unmarshal cvars: %w", err)
	}

	for name, value := range values {
		if cvar, ok := cm.cvars[name]; ok && cvar.Flags&CvarArchive != 0 {
			cvar.Value = value
			continue
		}
		cm.saved[name] = value
	}

	log.Printf("[CvarManager] Loaded %d archived cvar(s)", len(values))
	return nil
}

// Save 保存带 CvarArchive 标志的变量
//
// 锁存变量保存待生效值，保证下次启动时使用最新设置。
// gdataManager 为 nil 时返回 nil（降级模式，不报错）。
func (cm *CvarManager) Save() error {
	if cm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(cm.archivedValues())
	if err != nil {
		return fmt.Errorf("failed to marshal cvars: %w", err)
	}

	if err := cm.gdataManager.SaveObjectProp(cvarObject, cvarProperty, data); err != nil {
		return fmt.Errorf("failed to save cvars: %w", err)
	}

	log.Printf("[CvarManager] Cvars saved successfully")
	return nil
}

// archivedValues 收集需要持久化的变量值
func (cm *CvarManager) archivedValues() map[string]string {
	values := make(map[string]string)
	for name, value := range cm.saved {
		values[name] = value
	}
	for name, cvar := range cm.cvars {
		if cvar.Flags&CvarArchive == 0 {
			continue
		}
		if cvar.HasLatched {
			values[name] = cvar.LatchedValue
		} else {
			values[name] = cvar.Value
		}
	}
	return values
}

// Names 返回所有已注册变量名（已排序）
func (cm *CvarManager) Names() []string {
	names := make([]string, 0, len(cm.cvars))
	for name := range cm.cvars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
