package systems

import (
	"fmt"
	"time"

	"github.com/gonewx/horde/pkg/game"
)

// fixedRandom 按顺序循环返回固定随机数
type fixedRandom struct {
	values []float64
	index  int
}

func (r *fixedRandom) Float01() float64 {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.index%len(r.values)]
	r.index++
	return v
}

type fakeEntity struct {
	classname string
	item      string
	info      game.EntityInfo
}

// fakeEngine 记录所有调用的宿主引擎替身
type fakeEngine struct {
	now time.Duration

	spawnPointAvailable bool
	spawnQueries        []game.SpawnPointQuery

	nextHandle game.EntityHandle
	entities   map[game.EntityHandle]*fakeEntity
	order      []game.EntityHandle

	unknown   map[string]bool // FinalizeEntity 拒绝的类名
	known     []string        // Classnames 返回值
	precached []string

	broadcasts  []string
	enemies     map[game.EntityHandle]game.EntityHandle
	foundTarget []game.EntityHandle
	freed       []game.EntityHandle
}

const fakePlayer game.EntityHandle = 1

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		spawnPointAvailable: true,
		nextHandle:          fakePlayer + 1,
		entities:            make(map[game.EntityHandle]*fakeEntity),
		unknown:             make(map[string]bool),
		enemies:             make(map[game.EntityHandle]game.EntityHandle),
	}
}

func (e *fakeEngine) CurrentGameTime() time.Duration { return e.now }

func (e *fakeEngine) SelectSpawnPoint(query game.SpawnPointQuery) (game.SpawnPoint, bool) {
	e.spawnQueries = append(e.spawnQueries, query)
	if !e.spawnPointAvailable {
		return game.SpawnPoint{}, false
	}
	return game.SpawnPoint{Origin: game.Vec3{X: 64, Y: 128}, Angles: game.Vec3{Y: 90}}, true
}

func (e *fakeEngine) CreateEntity(classname string, origin, angles game.Vec3) game.EntityHandle {
	handle := e.nextHandle
	e.nextHandle++
	e.entities[handle] = &fakeEntity{
		classname: classname,
		info:      game.EntityInfo{Handle: handle, InUse: true},
	}
	e.order = append(e.order, handle)
	return handle
}

func (e *fakeEngine) SetEntityItem(entity game.EntityHandle, item string) {
	if ent, ok := e.entities[entity]; ok {
		ent.item = item
	}
}

func (e *fakeEngine) FinalizeEntity(entity game.EntityHandle) error {
	ent, ok := e.entities[entity]
	if !ok {
		return fmt.Errorf("entity %d not found", entity)
	}
	if ent.classname == "" || e.unknown[ent.classname] {
		e.FreeEntity(entity)
		return fmt.Errorf("unknown classname %q", ent.classname)
	}
	ent.info.IsMonster = true
	ent.info.Health = 100
	return nil
}

func (e *fakeEngine) FreeEntity(entity game.EntityHandle) {
	if ent, ok := e.entities[entity]; ok && ent.info.InUse {
		ent.info.InUse = false
		e.freed = append(e.freed, entity)
	}
}

func (e *fakeEngine) PrimaryPlayer() game.EntityHandle { return fakePlayer }

func (e *fakeEngine) SetEnemy(monster, target game.EntityHandle) { e.enemies[monster] = target }

func (e *fakeEngine) FoundTarget(monster game.EntityHandle) {
	e.foundTarget = append(e.foundTarget, monster)
}

func (e *fakeEngine) Entities() []game.EntityInfo {
	infos := make([]game.EntityInfo, 0, len(e.order))
	for _, handle := range e.order {
		infos = append(infos, e.entities[handle].info)
	}
	return infos
}

func (e *fakeEngine) Broadcast(message string) { e.broadcasts = append(e.broadcasts, message) }

func (e *fakeEngine) PrecacheItem(classname string) bool {
	if e.unknown[classname] {
		return false
	}
	e.precached = append(e.precached, classname)
	return true
}

func (e *fakeEngine) Classnames() []string { return e.known }

// liveMonsters 返回仍在使用中的怪物句柄
func (e *fakeEngine) liveMonsters() []game.EntityHandle {
	var handles []game.EntityHandle
	for _, handle := range e.order {
		info := e.entities[handle].info
		if info.InUse && info.IsMonster {
			handles = append(handles, handle)
		}
	}
	return handles
}

// killAll 杀死所有怪物（保留尸体）
func (e *fakeEngine) killAll() {
	for _, handle := range e.liveMonsters() {
		ent := e.entities[handle]
		ent.info.Health = 0
		ent.info.DeadFlag = true
	}
}

// indexedEngine 额外实现 MonsterIndex 的引擎替身
type indexedEngine struct {
	*fakeEngine
	indexCalls int
}

func (e *indexedEngine) Monsters() []game.EntityInfo {
	e.indexCalls++
	var monsters []game.EntityInfo
	for _, handle := range e.liveMonsters() {
		monsters = append(monsters, e.entities[handle].info)
	}
	return monsters
}
