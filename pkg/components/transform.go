package components

import "github.com/gonewx/horde/pkg/game"

// TransformComponent 实体在竞技场中的位置和朝向
type TransformComponent struct {
	Origin game.Vec3
	Angles game.Vec3
}
