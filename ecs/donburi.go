package ecs

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/magenta"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimationData is the component value: the sprite to animate and its draw
// layer. Within a layer, sprites lower on screen draw on top.
type AnimationData struct {
	Sprite *magenta.AnimSprite
	Layer  int
}

// Animation is the Donburi component type for animated sprites.
var Animation = donburi.NewComponentType[AnimationData]()

// ReloadEvent is published when an atlas is re-segmented on disk change.
type ReloadEvent struct {
	Name string
	Anim *magenta.Anim
}

// ReloadEventType is the Donburi event type for atlas reloads. Sprites keep
// their *magenta.Anim across a reload, so most systems only need this to
// reset per-entity state such as cached bounds.
var ReloadEventType = events.NewEventType[ReloadEvent]()

var animationQuery = donburi.NewQuery(filter.Contains(Animation))

// NewAnimationEntity creates an entity carrying sprite on the given layer.
func NewAnimationEntity(world donburi.World, sprite *magenta.AnimSprite, layer int) donburi.Entity {
	e := world.Create(Animation)
	Animation.SetValue(world.Entry(e), AnimationData{Sprite: sprite, Layer: layer})
	return e
}

// UpdateAnimations advances every animation clock by dt seconds.
func UpdateAnimations(world donburi.World, dt float64) {
	animationQuery.Each(world, func(entry *donburi.Entry) {
		if s := Animation.Get(entry).Sprite; s != nil {
			s.Update(dt)
		}
	})
}

// DrawAnimations draws every animated sprite onto screen ordered by layer,
// then by the bottom edge of the current frame.
func DrawAnimations(world donburi.World, screen *ebiten.Image) {
	for _, s := range drawOrder(world) {
		s.Draw(screen)
	}
}

type drawItem struct {
	sprite *magenta.AnimSprite
	layer  int
	bottom float64
}

func drawOrder(world donburi.World) []*magenta.AnimSprite {
	var items []drawItem
	animationQuery.Each(world, func(entry *donburi.Entry) {
		a := Animation.Get(entry)
		if a.Sprite == nil || a.Sprite.Hidden {
			return
		}
		b := a.Sprite.Bounds()
		items = append(items, drawItem{sprite: a.Sprite, layer: a.Layer, bottom: b.Y + b.Height})
	})
	slices.SortStableFunc(items, func(a, b drawItem) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		return cmp.Compare(a.bottom, b.bottom)
	})
	sprites := make([]*magenta.AnimSprite, len(items))
	for i, it := range items {
		sprites[i] = it.sprite
	}
	return sprites
}

// BindLibrary publishes a ReloadEvent into world whenever lib reloads an
// animation. It replaces lib.OnReload.
func BindLibrary(world donburi.World, lib *magenta.AnimLibrary) {
	lib.OnReload = func(a *magenta.Anim) {
		ReloadEventType.Publish(world, ReloadEvent{Name: a.Name, Anim: a})
	}
}
