// Package ecs provides ECS adapters for magenta animations.
//
// The [Animation] component attaches a [magenta.AnimSprite] to a [Donburi]
// entity. [UpdateAnimations] advances every animation clock and
// [DrawAnimations] renders them back to front. [BindLibrary] forwards atlas
// reloads from an [magenta.AnimLibrary] into the world as [ReloadEvent]s.
//
// Usage:
//
//	ecs.BindLibrary(world, lib)
//	sprite, _ := lib.Sprite("orc_walk")
//	ecs.NewAnimationEntity(world, sprite, 0)
//
//	// in Update
//	ecs.UpdateAnimations(world, 1.0/60)
//	ecs.ReloadEventType.ProcessEvents(world)
//
//	// in Draw
//	ecs.DrawAnimations(world, screen)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
