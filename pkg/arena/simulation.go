package arena

import (
	"log"
	"math"
	"time"

	"github.com/gonewx/horde/pkg/components"
	"github.com/gonewx/horde/pkg/ecs"
	"github.com/gonewx/horde/pkg/entities"
	"github.com/gonewx/horde/pkg/game"
)

// PlayerStats 玩家统计
type PlayerStats struct {
	Health int
	Kills  int
	Deaths int
	Items  []string
}

// Step 推进竞技场模拟
//
// 执行顺序：
//  1. 推进游戏时间
//  2. 怪物追击和攻击
//  3. 玩家自动射击
//  4. 标记尸体、拾取掉落物品
//  5. 清理已释放的实体
func (e *Engine) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.now += dt

	e.updateMonsters(dt)
	e.updatePlayer()
	e.updateCorpses()
	e.collectDrops()

	e.em.RemoveMarkedEntities()
}

// updateMonsters 怪物向目标移动，进入攻击距离后按间隔攻击
func (e *Engine) updateMonsters(dt time.Duration) {
	for _, id := range ecs.GetEntitiesWith3[*components.MonsterComponent, *components.HealthComponent, *components.TransformComponent](e.em) {
		monster, _ := ecs.GetComponent[*components.MonsterComponent](e.em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](e.em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](e.em, id)

		if !health.Alive() || monster.AIState == components.MonsterIdle {
			continue
		}
		if !e.em.EntityExists(monster.Enemy) {
			monster.AIState = components.MonsterIdle
			continue
		}

		target := e.origin(monster.Enemy)
		dist := distance(transform.Origin, target)

		if dist > monster.Stats.AttackRange {
			monster.AIState = components.MonsterHunt
			step := monster.Stats.Speed * dt.Seconds()
			transform.Origin = moveToward(transform.Origin, target, math.Min(step, dist-monster.Stats.AttackRange))
			transform.Angles.Y = yaw(transform.Origin, target)
			continue
		}

		monster.AIState = components.MonsterAttack
		if e.now < monster.NextAttack {
			continue
		}
		monster.NextAttack = e.now + monster.Stats.AttackInterval
		e.damagePlayer(monster.Enemy, monster.Stats.Damage)
	}
}

// damagePlayer 玩家受到伤害，生命值归零时计一次死亡并原地恢复
func (e *Engine) damagePlayer(id ecs.EntityID, amount int) {
	health, ok := ecs.GetComponent[*components.HealthComponent](e.em, id)
	if !ok {
		return
	}
	player, ok := ecs.GetComponent[*components.PlayerComponent](e.em, id)
	if !ok {
		return
	}

	health.CurrentHealth -= amount
	if health.CurrentHealth > 0 {
		return
	}

	player.Deaths++
	health.CurrentHealth = health.MaxHealth
	log.Printf("[ArenaEngine] %s was fragged (deaths: %d)", player.Name, player.Deaths)
}

// updatePlayer 玩家攻击射程内最近的存活怪物
func (e *Engine) updatePlayer() {
	player, ok := ecs.GetComponent[*components.PlayerComponent](e.em, e.player)
	if !ok || e.now < player.NextFire {
		return
	}

	origin := e.origin(e.player)
	target := ecs.EntityID(0)
	best := math.MaxFloat64
	for _, id := range ecs.GetEntitiesWith2[*components.MonsterComponent, *components.HealthComponent](e.em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](e.em, id)
		if !health.Alive() {
			continue
		}
		if d := distance(e.origin(id), origin); d <= player.Range && d < best {
			best = d
			target = id
		}
	}
	if target == 0 {
		return
	}

	player.NextFire = e.now + player.FireInterval
	if e.DamageEntity(game.EntityHandle(target), player.Damage) {
		player.Kills++
	}
}

// DamageEntity 对怪物造成伤害
//
// 返回：
//   - bool: 本次伤害是否杀死了怪物
func (e *Engine) DamageEntity(entity game.EntityHandle, amount int) bool {
	id := ecs.EntityID(entity)
	if !ecs.HasComponent[*components.MonsterComponent](e.em, id) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](e.em, id)
	if !ok || !health.TakeDamage(amount, e.now) {
		return false
	}

	e.onMonsterKilled(id)
	return true
}

// KillAllMonsters 杀死所有存活怪物
//
// 返回：
//   - int: 被杀死的数量
func (e *Engine) KillAllMonsters() int {
	killed := 0
	for _, info := range e.Monsters() {
		if !info.Alive() {
			continue
		}
		if e.DamageEntity(info.Handle, info.Health) {
			killed++
		}
	}
	return killed
}

// onMonsterKilled 怪物死亡：停止行动并掉落物品
func (e *Engine) onMonsterKilled(id ecs.EntityID) {
	if monster, ok := ecs.GetComponent[*components.MonsterComponent](e.em, id); ok {
		monster.AIState = components.MonsterIdle
		monster.Enemy = 0
	}

	class, ok := ecs.GetComponent[*components.EntityClassComponent](e.em, id)
	if !ok {
		return
	}
	if class.Item != "" {
		entities.NewItemDropEntity(e.em, class.Item, e.origin(id))
	}
	if e.verbose {
		log.Printf("[ArenaEngine] %s (%d) killed at %v, drop=%q", class.Classname, id, e.now, class.Item)
	}
}

// updateCorpses 死亡超过 CorpseDelay 的怪物标记为尸体
func (e *Engine) updateCorpses() {
	for _, id := range ecs.GetEntitiesWith2[*components.MonsterComponent, *components.HealthComponent](e.em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](e.em, id)
		if health.DeadFlag && !health.DeadMonster && e.now-health.DiedAt >= e.cfg.CorpseDelay {
			health.DeadMonster = true
		}
	}
}

// collectDrops 玩家拾取所有掉落物品
func (e *Engine) collectDrops() {
	player, ok := ecs.GetComponent[*components.PlayerComponent](e.em, e.player)
	if !ok {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ItemDropComponent](e.em) {
		drop, _ := ecs.GetComponent[*components.ItemDropComponent](e.em, id)
		player.Items = append(player.Items, drop.Classname)
		e.em.DestroyEntity(id)
	}
}

// PlayerStats 返回玩家统计
func (e *Engine) PlayerStats() PlayerStats {
	stats := PlayerStats{}
	if health, ok := ecs.GetComponent[*components.HealthComponent](e.em, e.player); ok {
		stats.Health = health.CurrentHealth
	}
	if player, ok := ecs.GetComponent[*components.PlayerComponent](e.em, e.player); ok {
		stats.Kills = player.Kills
		stats.Deaths = player.Deaths
		stats.Items = append([]string(nil), player.Items...)
	}
	return stats
}

// LiveMonsterCount 返回存活怪物数量
func (e *Engine) LiveMonsterCount() int {
	count := 0
	for _, info := range e.Monsters() {
		if info.Alive() {
			count++
		}
	}
	return count
}

func distance(a, b game.Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// moveToward 在平面上向目标移动 step 距离
func moveToward(from, to game.Vec3, step float64) game.Vec3 {
	d := distance(from, to)
	if d == 0 || step <= 0 {
		return from
	}
	if step >= d {
		return game.Vec3{X: to.X, Y: to.Y, Z: from.Z}
	}
	ratio := step / d
	return game.Vec3{
		X: from.X + (to.X-from.X)*ratio,
		Y: from.Y + (to.Y-from.Y)*ratio,
		Z: from.Z,
	}
}

// yaw 从 from 指向 to 的水平朝向（度）
func yaw(from, to game.Vec3) float64 {
	deg := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
