package systems

import (
	"log"

	"github.com/gonewx/horde/pkg/config"
)

// SelectionContext 一次加权选择的上下文
type SelectionContext struct {
	Level int // 当前部落等级
}

// WeightAdjuster 权重调整策略
//
// 在等级过滤之后、累加之前调用，返回调整后的权重。
// 返回值 <= 0 的条目会被丢弃。
type WeightAdjuster interface {
	Adjust(entry *config.CatalogEntry, ctx SelectionContext, weight float64) float64
}

// IdentityAdjuster 不改变权重的默认策略
type IdentityAdjuster struct{}

// Adjust 原样返回权重
func (IdentityAdjuster) Adjust(_ *config.CatalogEntry, _ SelectionContext, weight float64) float64 {
	return weight
}

// AdjusterFunc 函数适配器
type AdjusterFunc func(entry *config.CatalogEntry, ctx SelectionContext, weight float64) float64

// Adjust 调用函数本身
func (f AdjusterFunc) Adjust(entry *config.CatalogEntry, ctx SelectionContext, weight float64) float64 {
	return f(entry, ctx, weight)
}

// DefaultAdjusters 返回目录中已知类别对应的调整策略
// 当前所有类别都是恒等策略，按类别替换即可接入调优逻辑
func DefaultAdjusters() map[string]WeightAdjuster {
	adjusters := make(map[string]WeightAdjuster, len(config.KnownAdjusters))
	for _, name := range config.KnownAdjusters {
		adjusters[name] = IdentityAdjuster{}
	}
	return adjusters
}

// WeightedCandidate 一次选择中的候选条目
type WeightedCandidate struct {
	Entry            *config.CatalogEntry
	CumulativeWeight float64 // 截至本条目（含）的权重前缀和
}

// WeightedSelector 加权随机选择器
//
// 职责：
//   - 按等级范围过滤目录条目
//   - 应用权重调整策略并丢弃非正权重
//   - 按目录顺序构建前缀和，以 r < cumulative 的规则抽取
//
// 候选缓冲区归选择器所有并在每次调用时复用，
// 因此同一个选择器不能被多个 goroutine 同时使用。
type WeightedSelector struct {
	name      string // 日志用名称（如 "monsters"）
	entries   []config.CatalogEntry
	adjusters map[string]WeightAdjuster
	rng       RandomSource

	scratch []WeightedCandidate

	verbose bool
}

// NewWeightedSelector 创建加权选择器
//
// 参数：
//   - name: 目录名称，仅用于日志
//   - entries: 目录条目（只读共享）
//   - rng: 随机数源
//
// 返回：
//   - *WeightedSelector: 使用 DefaultAdjusters 的选择器
func NewWeightedSelector(name string, entries []config.CatalogEntry, rng RandomSource) *WeightedSelector {
	return &WeightedSelector{
		name:      name,
		entries:   entries,
		adjusters: DefaultAdjusters(),
		rng:       rng,
		scratch:   make([]WeightedCandidate, 0, len(entries)),
	}
}

// SetAdjuster 设置某个类别的调整策略，nil 表示恢复恒等策略
func (s *WeightedSelector) SetAdjuster(category string, adjuster WeightAdjuster) {
	if adjuster == nil {
		adjuster = IdentityAdjuster{}
	}
	s.adjusters[category] = adjuster
}

// SetVerbose 设置是否输出每次抽取的详细日志
func (s *WeightedSelector) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Len 返回目录条目数
func (s *WeightedSelector) Len() int {
	return len(s.entries)
}

// BuildCandidates 构建当前上下文的候选列表
//
// 返回的切片是选择器内部缓冲区，下一次调用 BuildCandidates 或 Pick 后失效。
//
// 返回：
//   - []WeightedCandidate: 按目录顺序排列的候选，累计权重非递减
//   - float64: 总权重
func (s *WeightedSelector) BuildCandidates(ctx SelectionContext) ([]WeightedCandidate, float64) {
	s.scratch = s.scratch[:0]
	total := 0.0

	for i := range s.entries {
		entry := &s.entries[i]
		if !entry.InLevelRange(ctx.Level) {
			continue
		}

		weight := entry.Weight
		if entry.Adjuster != "" {
			if adjuster, ok := s.adjusters[entry.Adjuster]; ok {
				weight = adjuster.Adjust(entry, ctx, weight)
			}
		}
		if weight <= 0 {
			continue
		}

		total += weight
		s.scratch = append(s.scratch, WeightedCandidate{
			Entry:            entry,
			CumulativeWeight: total,
		})
	}

	return s.scratch, total
}

// PickAt 在候选列表中按给定的 r 选择条目
//
// 返回第一个满足 r < CumulativeWeight 的候选。
// r 恰好等于某个累计值时选中下一个候选。
func PickAt(candidates []WeightedCandidate, r float64) (*config.CatalogEntry, bool) {
	for i := range candidates {
		if r < candidates[i].CumulativeWeight {
			return candidates[i].Entry, true
		}
	}
	return nil, false
}

// Pick 加权随机选择一个类名
//
// 返回：
//   - string: 选中的类名
//   - bool: 没有可选条目时为 false
func (s *WeightedSelector) Pick(ctx SelectionContext) (string, bool) {
	candidates, total := s.BuildCandidates(ctx)
	if total <= 0 {
		if s.verbose {
			log.Printf("[WeightedSelector] %s: no eligible entry at level %d", s.name, ctx.Level)
		}
		return "", false
	}

	r := s.rng.Float01() * total
	entry, ok := PickAt(candidates, r)
	if !ok {
		// 浮点舍入使 r 达到总权重时取最后一个候选
		entry = candidates[len(candidates)-1].Entry
	}

	if s.verbose {
		log.Printf("[WeightedSelector] %s: picked %s (r=%.3f, total=%.3f, candidates=%d)",
			s.name, entry.Classname, r, total, len(candidates))
	}
	return entry.Classname, true
}
