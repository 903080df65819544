package game

import "log"

// 规则相关的控制台变量名
const (
	CvarHorde      = "horde"
	CvarDeathmatch = "deathmatch"
	CvarCoop       = "coop"
	CvarCTF        = "ctf"
	CvarTeamplay   = "teamplay"
)

// Ruleset 对局规则
//
// 基于控制台变量回答"当前是哪种玩法"，供其他子系统分支判断。
type Ruleset struct {
	cvars *CvarManager

	horde      *Cvar
	deathmatch *Cvar
	coop       *Cvar
	ctf        *Cvar
	teamplay   *Cvar
}

// NewRuleset 注册规则变量并创建规则对象
//
// 所有规则变量都是锁存变量：修改在下一局生效。
// horde 额外带 CvarArchive，模式选择会被持久化。
func NewRuleset(cvars *CvarManager) *Ruleset {
	return &Ruleset{
		cvars:      cvars,
		horde:      cvars.Get(CvarHorde, "0", CvarLatch|CvarArchive),
		deathmatch: cvars.Get(CvarDeathmatch, "0", CvarLatch),
		coop:       cvars.Get(CvarCoop, "0", CvarLatch),
		ctf:        cvars.Get(CvarCTF, "0", CvarLatch),
		teamplay:   cvars.Get(CvarTeamplay, "0", CvarLatch),
	}
}

// PreInit 启动时校验规则
//
// 部落模式必须运行在死亡竞赛规则下：若开启了部落模式但规则不符，
// 强制 deathmatch=1、ctf=0、teamplay=0、coop=0。
//
// 返回：
//   - bool: 是否进行了修正
func (r *Ruleset) PreInit() bool {
	if !r.horde.Bool() {
		return false
	}

	if r.deathmatch.Bool() && !r.ctf.Bool() && !r.teamplay.Bool() && !r.coop.Bool() {
		return false
	}

	log.Printf("[Ruleset] Horde mode must be DM.")
	r.cvars.ForceSet(CvarDeathmatch, "1")
	r.cvars.ForceSet(CvarCTF, "0")
	r.cvars.ForceSet(CvarTeamplay, "0")
	r.cvars.ForceSet(CvarCoop, "0")
	return true
}

// HordeEnabled 部落模式是否开启
func (r *Ruleset) HordeEnabled() bool {
	return r.horde.Bool()
}

// IsDeathmatch 纯死亡竞赛（部落模式不算）
func (r *Ruleset) IsDeathmatch() bool {
	return r.deathmatch.Bool() && !r.horde.Bool()
}

// IsCooperative 合作或部落模式
func (r *Ruleset) IsCooperative() bool {
	return r.coop.Bool() || r.horde.Bool()
}
