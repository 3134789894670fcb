// Package audio provides audio playback for background music and sound effects.
package audio

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager handles music and sound effect playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	musicStreamer beep.StreamSeekCloser
	musicCtrl     *beep.Ctrl
	musicVolume   *effects.Volume
	musicPlaying  bool
	musicPath     string

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	musicLevel   float64
	sfxLevel     float64
	muted        bool

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		musicLevel:   0.7,
		sfxLevel:     1.0,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopMusicLocked()
	speaker.Clear()
	m.initialized = false
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetMusicVolume sets the music volume (0.0 to 1.0).
func (m *Manager) SetMusicVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicLevel = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetSFXVolume sets the sound effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxLevel = clamp(vol, 0, 1)
}

// SetMuted silences everything without losing volume settings.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateMusicVolume()
}

// Muted reports whether audio is muted.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

func (m *Manager) updateMusicVolume() {
	if m.musicVolume == nil {
		return
	}
	vol := m.masterVolume * m.musicLevel
	if m.muted || vol <= 0 {
		m.musicVolume.Silent = true
	} else {
		m.musicVolume.Silent = false
		m.musicVolume.Volume = volumeToDb(vol)
	}
}

// volumeToDb converts a 0-1 volume to the decibel scale beep's Volume
// effect expects with Base 2: 1 -> 0dB, 0.5 -> -6dB, 0.25 -> -12dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PlayMusic plays background music from WAV data, replacing whatever
// was playing. If loop is true the track repeats indefinitely.
func (m *Manager) PlayMusic(data []byte, path string, loop bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}

	m.stopMusicLocked()

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	var final beep.Streamer = resampled
	if loop {
		final = &loopStreamer{streamer: streamer, resampled: resampled}
	}

	m.musicCtrl = &beep.Ctrl{Streamer: final}
	m.musicVolume = &effects.Volume{
		Streamer: m.musicCtrl,
		Base:     2,
	}
	m.updateMusicVolume()

	m.musicStreamer = streamer
	m.musicPath = path
	m.musicPlaying = true

	speaker.Play(beep.Seq(m.musicVolume, beep.Callback(func() {
		m.mu.Lock()
		m.musicPlaying = false
		m.mu.Unlock()
	})))

	return nil
}

// StopMusic stops the current background music.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
}

func (m *Manager) stopMusicLocked() {
	if m.musicCtrl != nil {
		m.musicCtrl.Paused = true
	}
	speaker.Clear()
	// Clearing the speaker drops the SFX mixer too; re-add it.
	if m.initialized {
		speaker.Play(m.sfxMixer)
	}
	m.musicPlaying = false
	if m.musicStreamer != nil {
		m.musicStreamer.Close()
		m.musicStreamer = nil
	}
	m.musicCtrl = nil
	m.musicVolume = nil
	m.musicPath = ""
}

// PauseMusic pauses the current background music.
func (m *Manager) PauseMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.musicCtrl != nil {
		m.musicCtrl.Paused = true
		m.musicPlaying = false
	}
}

// ResumeMusic resumes paused background music.
func (m *Manager) ResumeMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.musicCtrl != nil {
		m.musicCtrl.Paused = false
		m.musicPlaying = true
	}
}

// IsMusicPlaying returns whether music is currently playing.
func (m *Manager) IsMusicPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicPlaying
}

// MusicPath returns the path of the currently playing track.
func (m *Manager) MusicPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicPath
}

// PlaySFX plays a sound effect from WAV data. Effects mix together, so
// overlapping pickups each get their own chime.
func (m *Manager) PlaySFX(data []byte) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxLevel
	muted := m.muted
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	m.sfxMixer.Add(&effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeToDb(vol),
		Silent:   muted || vol <= 0,
	})

	return nil
}

// loopStreamer restarts its underlying seekable streamer when it runs
// dry, producing gapless looped playback.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
