// Package game implements the main game loop and state management.
package game

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/crystalcaves/internal/config"
	"github.com/Faultbox/crystalcaves/internal/engine/asset"
	"github.com/Faultbox/crystalcaves/internal/engine/audio"
	"github.com/Faultbox/crystalcaves/internal/engine/debug"
	"github.com/Faultbox/crystalcaves/internal/engine/input"
	"github.com/Faultbox/crystalcaves/internal/engine/renderer"
	"github.com/Faultbox/crystalcaves/internal/engine/texture"
	"github.com/Faultbox/crystalcaves/internal/engine/window"
	"github.com/Faultbox/crystalcaves/internal/logger"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

// state is the game's lifecycle phase.
type state int

const (
	statePlaying state = iota
	stateWon
	stateLost
)

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool
	state   state

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	textures *texture.Manager
	assets   *asset.Manager

	scenes   []Scene
	sceneIdx int

	player *Player
	hud    *HUD

	shots     *debug.ScreenshotCapture
	showDebug bool

	elapsed float32
}

// New creates a new game instance. The window and GL context come up
// first; everything else depends on them.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{cfg: cfg}

	var err error
	g.window, err = window.New(window.Config{
		Title:      "Crystal Caves",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.renderer, err = renderer.New(renderer.Config{
		Width:   cfg.Graphics.Width,
		Height:  cfg.Graphics.Height,
		FOV:     cfg.Graphics.FOV,
		DrawFar: cfg.Graphics.DrawFar,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.textures = texture.NewManager()
	g.assets = asset.NewManager(cfg.Assets.Root, g.textures.Load)
	g.shots = debug.NewScreenshotCapture("screenshots", "crystalcaves")

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		logger.Warn("audio unavailable, continuing silent", zap.Error(err))
	} else {
		g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
		g.audio.SetMusicVolume(float64(cfg.Audio.MusicVolume))
		g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
		g.audio.SetMuted(cfg.Audio.Muted)
	}

	if err := g.setup(); err != nil {
		g.Close()
		return nil, err
	}

	logger.Info("game initialized successfully")
	return g, nil
}

// setup builds the scenes and player; called at startup and on
// restart.
func (g *Game) setup() error {
	g.scenes = []Scene{NewForestScene(), NewCavernScene()}
	for _, s := range g.scenes {
		if err := s.Init(g.assets); err != nil {
			return fmt.Errorf("initializing scene %s: %w", s.Name(), err)
		}
	}
	g.sceneIdx = 0

	g.player = NewPlayer(math.Vec3{Z: 5})
	g.player.Speed = 9.0
	g.player.FirstPerson = !g.cfg.Game.ThirdPerson
	g.hud = NewHUD()
	g.state = statePlaying
	g.elapsed = 0

	g.playSceneMusic()
	return nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true
	g.window.CaptureMouse(true)

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		// Clamp pathological frames (debugger pauses, window drags).
		if dt > 0.1 {
			dt = 0.1
		}

		if g.input.Update() {
			break
		}
		g.handleEvents()
		if !g.running {
			break
		}

		if g.state == statePlaying {
			g.update(dt)
		}
		g.render()
		g.window.SwapBuffers()

		g.window.SetTitle(g.title())

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.cfg.Game.ShowFPS {
				logger.Debug("fps", zap.Int("count", frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)

		case input.EventMouseWheel:
			if !g.player.FirstPerson {
				g.player.Zoom(float32(event.WheelY))
			}

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_1:
				g.player.FirstPerson = false
			case sdl.SCANCODE_2:
				g.player.FirstPerson = true
			case sdl.SCANCODE_T:
				g.player.ToggleView()
			case sdl.SCANCODE_3:
				g.switchScene(1)
			case sdl.SCANCODE_4:
				g.switchScene(0)
			case sdl.SCANCODE_M:
				g.audio.SetMuted(!g.audio.Muted())
			case sdl.SCANCODE_F3:
				g.showDebug = !g.showDebug
			case sdl.SCANCODE_F12:
				g.captureScreenshot()
			case sdl.SCANCODE_R:
				if g.state != statePlaying {
					if err := g.setup(); err != nil {
						logger.Error("restart failed", zap.Error(err))
						g.running = false
					}
				}
			}
		}
	}

	if g.state != statePlaying {
		return
	}

	// Mouse look.
	dx, dy := g.input.MouseDelta()
	sens := g.cfg.Game.MouseSensitivity
	pitchDelta := -float32(dy) * sens
	if g.cfg.Game.InvertY {
		pitchDelta = -pitchDelta
	}
	g.player.Rotate(float32(dx)*sens, pitchDelta)

	// Arrow keys mirror the mouse for keyboard-only play.
	const keyTurn = 3.0
	if g.input.IsKeyHeld(sdl.SCANCODE_LEFT) {
		g.player.Rotate(-keyTurn, 0)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_RIGHT) {
		g.player.Rotate(keyTurn, 0)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_UP) {
		g.player.Rotate(0, keyTurn)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_DOWN) {
		g.player.Rotate(0, -keyTurn)
	}
}

func (g *Game) update(dt float32) {
	g.elapsed += dt
	scene := g.scenes[g.sceneIdx]

	// WASD movement against the scene's obstacles.
	var forward, right float32
	step := g.player.Speed * dt
	if g.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward += step
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward -= step
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_D) {
		right += step
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_A) {
		right -= step
	}
	g.player.Move(forward, right, scene.Obstacles())

	scene.Update(dt, g.elapsed, g.player)

	// Pickups.
	for _, c := range scene.Collectibles() {
		if points := c.TryCollect(g.player.Position); points > 0 {
			g.hud.AddScore(points)
			logger.Info("collected",
				zap.String("kind", c.Kind),
				zap.Int("points", points),
				zap.Int("score", g.hud.Score))
			g.playSFX("audio/pickup.wav")
		}
	}

	// Scene-specific consequences.
	switch s := scene.(type) {
	case *ForestScene:
		if s.entranceReached(g.player) {
			g.switchScene(1)
		}
	case *CavernScene:
		if damage := s.DrainDamage(); damage > 0 {
			g.hud.Damage(damage)
		}
	}

	g.checkEndConditions()
}

func (g *Game) checkEndConditions() {
	if !g.hud.Alive() {
		g.state = stateLost
		logger.Info("player defeated", zap.Int("score", g.hud.Score))
		g.audio.StopMusic()
		g.playSFX("audio/lose.wav")
		return
	}

	for _, s := range g.scenes {
		for _, c := range s.Collectibles() {
			if !c.Collected {
				return
			}
		}
	}
	g.state = stateWon
	logger.Info("all treasures collected", zap.Int("score", g.hud.Score))
	g.audio.StopMusic()
	g.playSFX("audio/win.wav")
}

func (g *Game) render() {
	g.renderer.BeginFrame(g.player.ViewMatrix())
	scene := g.scenes[g.sceneIdx]
	scene.Render(g.renderer, g.elapsed)

	if !g.player.FirstPerson {
		g.drawPlayer()
	}
	if g.showDebug {
		g.drawObstacleBounds(scene)
	}
}

// drawObstacleBounds overlays wireframe boxes on the scene's collision
// circles.
func (g *Game) drawObstacleBounds(scene Scene) {
	for _, o := range scene.Obstacles() {
		renderer.DrawLines(debug.WireCylinderBounds(o.X, o.Z, o.Radius, 2), 1, 1, 0)
	}
	p := g.player.Position
	renderer.DrawLines(debug.WireCylinderBounds(p.X, p.Z, g.player.Radius, playerEyeHeight), 0, 1, 1)
}

func (g *Game) captureScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.Capture(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// drawPlayer renders the third-person stand-in body.
func (g *Game) drawPlayer() {
	renderer.PushTransform(g.player.Position, g.player.Yaw, 1)

	renderer.SetColor(0.2, 0.2, 0.8)
	renderer.DrawCylinder(0.3, 0.3, 1.5, 16)

	renderer.SetColor(0.8, 0.6, 0.5)
	renderer.PushTransform(math.Vec3{Y: 1.7}, 0, 1)
	renderer.DrawSphere(0.25, 16, 16)
	renderer.PopTransform()

	renderer.PopTransform()
}

func (g *Game) switchScene(idx int) {
	if idx == g.sceneIdx || idx < 0 || idx >= len(g.scenes) {
		return
	}
	logger.Info("switching scene",
		zap.String("from", g.scenes[g.sceneIdx].Name()),
		zap.String("to", g.scenes[idx].Name()))
	g.sceneIdx = idx

	// Respawn at the new scene's origin-side entrance.
	g.player.Position = math.Vec3{Z: 5}

	if _, ok := g.scenes[idx].(*CavernScene); ok {
		g.renderer.SetClearColor(0.02, 0.02, 0.05)
	} else {
		g.renderer.SetClearColor(0.53, 0.81, 0.92)
	}
	g.playSceneMusic()
}

// playSceneMusic starts the active scene's looping track, if the file
// exists.
func (g *Game) playSceneMusic() {
	tracks := []string{"audio/forest.wav", "audio/cavern.wav"}
	if g.sceneIdx >= len(tracks) {
		return
	}
	path := filepath.Join(g.cfg.Assets.Root, tracks[g.sceneIdx])
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("music track missing", zap.String("path", path))
		return
	}
	if err := g.audio.PlayMusic(data, path, true); err != nil {
		logger.Warn("music playback failed", zap.String("path", path), zap.Error(err))
	}
}

func (g *Game) playSFX(rel string) {
	path := filepath.Join(g.cfg.Assets.Root, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := g.audio.PlaySFX(data); err != nil {
		logger.Debug("sfx playback failed", zap.String("path", path), zap.Error(err))
	}
}

func (g *Game) title() string {
	switch g.state {
	case stateWon:
		return fmt.Sprintf("Crystal Caves - You Win! Final Score: %d (R to restart)", g.hud.Score)
	case stateLost:
		return fmt.Sprintf("Crystal Caves - Game Over. Score: %d (R to restart)", g.hud.Score)
	default:
		return g.hud.Title(g.scenes[g.sceneIdx].Name(), g.player.FirstPerson)
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.textures != nil {
		g.textures.Release()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
