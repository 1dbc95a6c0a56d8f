package gameplay

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic"
	"github.com/zyedidia/generic/queue"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/collision"
	"mouserun/pkg/game/config"
	"mouserun/pkg/game/rooms"
	"mouserun/pkg/game/setup"
	"mouserun/pkg/game/state"
)

// ErrGameOver is returned by Start after a crash until Restart is called
var ErrGameOver = errors.New("run is over")

// maxTick caps a single step so a stalled frame cannot tunnel through a door
const maxTick = 0.05

// Session is one run through the endless level
type Session struct {
	cfg config.Config
	lib *assets.Library
	rng *rand.Rand
	log *logrus.Entry

	scene     *scene.Scene
	templates *rooms.Templates
	ring      *rooms.RingBuffer
	tracker   *collision.Tracker
	actor     *Actor
	sphere    geom.Sphere
	field     []*scene.Node
	reduced   bool
	scenery   bool
	game      *state.Game
	events    *queue.Queue[Event]
	ticks     int
}

// NewSession builds the scene, fills the room ring and poses the actor.
// Missing templates or rig nodes are returned as errors.
func NewSession(cfg config.Config, lib *assets.Library, rng *rand.Rand, log *logrus.Entry) (*Session, error) {
	tpl, err := rooms.NewTemplates(lib)
	if err != nil {
		return nil, fmt.Errorf("room templates: %w", err)
	}

	s := &Session{
		cfg:       cfg,
		lib:       lib,
		rng:       rng,
		log:       log,
		templates: tpl,
		tracker:   collision.NewTracker(log.WithField("component", "collision")),
		game:      state.NewGame(),
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

// build creates a fresh scene with a full ring and a posed actor
func (s *Session) build() error {
	s.scene = scene.New()
	factory := rooms.NewFactory(s.rng, s.scene, rooms.LayoutFromConfig(s.cfg.Rooms))
	s.ring = rooms.NewRingBuffer(factory, s.scene, s.log.WithField("component", "rooms"))
	if err := s.ring.Initialize(s.cfg.Rooms.Capacity, s.templates); err != nil {
		return fmt.Errorf("room ring: %w", err)
	}

	rig, err := s.lib.Actor()
	if err != nil {
		return fmt.Errorf("actor rig: %w", err)
	}
	s.scene.Attach(rig.Root)
	s.actor = NewActor(rig, s.cfg.Gameplay)

	s.sphere, err = s.tracker.InitializeActorSphere(rig.Root, rig.Body)
	if err != nil {
		return fmt.Errorf("actor sphere: %w", err)
	}
	s.tracker.Reset()
	s.field = nil
	s.ticks = 0
	s.events = queue.New[Event]()
	return nil
}

// PlaceScenery scatters decorative props and the backdrop around the level
func (s *Session) PlaceScenery(reduced bool) {
	s.field = setup.SetupLevel(s.scene, s.lib, s.cfg, s.rng, reduced, s.log.WithField("component", "scatter")).Field
	s.reduced = reduced
	s.scenery = true
	s.log.WithFields(logrus.Fields{
		"props":   len(s.field),
		"reduced": reduced,
	}).Info("scenery placed")
}

// Start begins the run
func (s *Session) Start() error {
	if s.game.Over {
		return ErrGameOver
	}
	s.game.Started = true
	return nil
}

// Restart discards the current run and begins a new one with fresh rooms
func (s *Session) Restart() error {
	s.game.Reset()
	if err := s.build(); err != nil {
		return err
	}
	if s.scenery {
		s.PlaceScenery(s.reduced)
	}
	return s.Start()
}

// MoveLeft steers one lane to the left
func (s *Session) MoveLeft() {
	if s.running() {
		s.actor.Steer(-1)
	}
}

// MoveRight steers one lane to the right
func (s *Session) MoveRight() {
	if s.running() {
		s.actor.Steer(1)
	}
}

// Jump starts a jump if the actor is on the ground
func (s *Session) Jump() {
	if s.running() && s.actor.Jump(s.game.SpeedMultiplier) {
		s.game.Jumping = true
	}
}

func (s *Session) running() bool {
	return s.game.Started && !s.game.Over
}

// Speed returns the current forward speed
func (s *Session) Speed() float64 {
	return s.cfg.Gameplay.BaseSpeed * s.game.SpeedMultiplier
}

// Tick advances the run by dt seconds and returns what happened. The order
// is pose, sphere, collision, hit resolution, room activation, recycling.
func (s *Session) Tick(dt float64) []Event {
	if !s.running() || dt <= 0 {
		return nil
	}
	dt = generic.Min(dt, maxTick)
	s.ticks++

	s.actor.Advance(dt, s.Speed())
	s.game.Jumping = s.actor.Jumping()
	rig := s.actor.Rig()
	s.tracker.UpdateActorSphere(rig.Root, rig.Body, &s.sphere)

	hits := s.tracker.Test(s.ring.Rooms(), s.sphere)
	s.resolve(s.tracker.Contacts(hits))

	if !s.game.Over {
		s.activate()
		s.recycle()
		s.game.UpdateDistance(dt, s.cfg.Gameplay.BaseSpeed)
	}
	return s.drain()
}

// resolve applies fresh contacts in order. A crash ends the run immediately.
func (s *Session) resolve(contacts []collision.Hit) {
	for _, h := range contacts {
		room := s.ring.Room(h.Slot)
		if room == nil {
			continue
		}
		switch h.Kind {
		case collision.HitDoor:
			door := &room.Doors[h.Door]
			if !door.Open {
				s.game.End()
				s.emit(Event{Kind: EventCrash, Slot: h.Slot, Serial: room.Serial, Door: door.Position, Z: room.PositionZ})
				return
			}
			if door.Passed {
				continue
			}
			door.Passed = true
			s.game.DoorsPassed++
			s.game.SpeedMultiplier = generic.Min(s.game.SpeedMultiplier+s.cfg.Gameplay.SpeedRamp, s.cfg.Gameplay.MaxSpeedFactor)
			s.emit(Event{Kind: EventDoorPassed, Slot: h.Slot, Serial: room.Serial, Door: door.Position, Z: room.PositionZ})
		case collision.HitCollectible:
			if room.Collect() {
				s.game.Score++
				s.emit(Event{Kind: EventCollected, Slot: h.Slot, Serial: room.Serial, Door: rooms.DoorPosition(h.Door), Z: room.PositionZ})
			}
		}
	}
}

// activate shows hidden rooms whose near edge is within view distance
func (s *Session) activate() {
	horizon := s.actor.Position().Z - s.cfg.Gameplay.ViewDistance
	s.ring.Each(func(r *rooms.Room) {
		if r.Hidden && r.PositionZ+s.templates.RoomDepth >= horizon {
			r.Activate()
		}
	})
}

// recycle replaces rooms the actor has left far enough behind
func (s *Session) recycle() {
	lag := s.templates.RoomDepth * s.cfg.Gameplay.RecycleLag
	for i := 0; i < s.ring.Capacity(); i++ {
		oldest := s.ring.Oldest()
		if s.actor.Position().Z >= oldest.PositionZ-lag {
			return
		}
		room, err := s.ring.Recycle(s.templates)
		if err != nil {
			s.log.WithError(err).Error("recycle failed")
			return
		}
		s.game.Recycled++
		s.emit(Event{Kind: EventRecycled, Slot: room.Slot, Serial: room.Serial, Z: room.PositionZ})
	}
}

func (s *Session) emit(ev Event) {
	s.events.Enqueue(ev)
	s.log.WithFields(logrus.Fields{
		"event":  ev.Kind.String(),
		"slot":   ev.Slot,
		"serial": ev.Serial,
		"z":      ev.Z,
	}).Debug("session event")
}

// drain empties the pending event queue, echoing each event to the message pane
func (s *Session) drain() []Event {
	var out []Event
	for !s.events.Empty() {
		ev := s.events.Dequeue()
		switch ev.Kind {
		case EventRecycled:
		case EventCrash:
			s.game.AddMessage(ev.Message())
			s.game.AddMessage(gotext.Get("GAME_OVER"))
		default:
			s.game.AddMessage(ev.Message())
		}
		out = append(out, ev)
	}
	return out
}

// Game returns the run's score state
func (s *Session) Game() *state.Game {
	return s.game
}

// Ring returns the room ring
func (s *Session) Ring() *rooms.RingBuffer {
	return s.ring
}

// Scene returns the scene graph
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Templates returns the measured room templates
func (s *Session) Templates() *rooms.Templates {
	return s.templates
}

// Actor returns the actor
func (s *Session) Actor() *Actor {
	return s.actor
}

// Sphere returns the actor's collision sphere as of the last tick
func (s *Session) Sphere() geom.Sphere {
	return s.sphere
}

// Field returns the placed scenery props
func (s *Session) Field() []*scene.Node {
	return s.field
}

// Ticks returns the number of ticks run since the session was built
func (s *Session) Ticks() int {
	return s.ticks
}
