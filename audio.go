// audio.go
package main

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Audio is the collaborator the game dispatches sound events to. The
// synth implementation talks to the sound device; NopAudio satisfies
// it for tests and for the audio-disabled configuration.
type Audio interface {
	PlayStart()
	PlayFootstep()
	PlayVictory()
	PlayDamage()
	PlayHeartbeat()
	PlayPickup(kind PillKind)
	PlayGameOver()
	SetAmbientVolume(v float64)
	StartLoop()
	StopLoop()
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) PlayStart()               {}
func (NopAudio) PlayFootstep()            {}
func (NopAudio) PlayVictory()             {}
func (NopAudio) PlayDamage()              {}
func (NopAudio) PlayHeartbeat()           {}
func (NopAudio) PlayPickup(PillKind)      {}
func (NopAudio) PlayGameOver()            {}
func (NopAudio) SetAmbientVolume(float64) {}
func (NopAudio) StartLoop()               {}
func (NopAudio) StopLoop()                {}

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SynthAudio generates every cue procedurally; there are no sound
// assets on disk. Cue buffers are rendered on demand and streamed
// through short-lived oto players; the ambient hum is a single
// long-lived streaming player whose volume tracks goal distance.
type SynthAudio struct {
	ctx        *oto.Context
	ready      chan struct{}
	loopPlayer oto.Player
	baseVolume float64
}

func NewSynthAudio(baseVolume float64) (*SynthAudio, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, err
	}
	return &SynthAudio{ctx: ctx, ready: ready, baseVolume: baseVolume}, nil
}

func (a *SynthAudio) deviceReady() bool {
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

func (a *SynthAudio) play(samples []byte, volume float64) {
	if !a.deviceReady() || len(samples) == 0 {
		return
	}
	go func() {
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

func (a *SynthAudio) PlayStart()     { a.play(genStartCue(), 0.5) }
func (a *SynthAudio) PlayFootstep()  { a.play(genFootstep(), 0.35) }
func (a *SynthAudio) PlayVictory()   { a.play(genVictoryCue(), 0.6) }
func (a *SynthAudio) PlayDamage()    { a.play(genDamageCue(), 0.55) }
func (a *SynthAudio) PlayHeartbeat() { a.play(genHeartbeat(), 0.6) }
func (a *SynthAudio) PlayGameOver()  { a.play(genGameOverCue(), 0.6) }

func (a *SynthAudio) PlayPickup(kind PillKind) {
	if kind == PillRed {
		a.play(genPickupCue(220, 140), 0.5)
		return
	}
	a.play(genPickupCue(520, 780), 0.5)
}

// StartLoop starts the streaming ambient hum at the base volume.
func (a *SynthAudio) StartLoop() {
	if !a.deviceReady() || a.loopPlayer != nil {
		return
	}
	player := a.ctx.NewPlayer(&ambientReader{})
	player.SetVolume(a.baseVolume)
	a.loopPlayer = player
	player.Play()
}

func (a *SynthAudio) StopLoop() {
	if a.loopPlayer != nil {
		a.loopPlayer.Close()
		a.loopPlayer = nil
	}
}

// SetAmbientVolume retargets the hum loudness, v in [0, 1].
func (a *SynthAudio) SetAmbientVolume(v float64) {
	if a.loopPlayer != nil {
		a.loopPlayer.SetVolume(clampF(v, 0, 1))
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// ambientReader streams the endless fluorescent hum: mains-frequency
// drone with slow beating plus a whisper of filtered noise.
type ambientReader struct {
	t    float64
	seed uint64
	lp   float64
}

func (m *ambientReader) Read(p []byte) (n int, err error) {
	samples := len(p) / 8
	for i := 0; i < samples && i*8+7 < len(p); i++ {
		m.t += 1.0 / sampleRate
		hum := math.Sin(2*math.Pi*60*m.t)*0.38 +
			math.Sin(2*math.Pi*120*m.t+0.4)*0.14 +
			math.Sin(2*math.Pi*59.3*m.t)*0.18
		m.lp = m.lp*0.97 + lcg(&m.seed)*0.03
		swell := 0.75 + 0.25*math.Sin(2*math.Pi*0.07*m.t)
		s := (hum + m.lp*0.5) * swell * 0.4
		putStereoF32(p, i, softSat(s))
	}
	return len(p), nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1];
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fmTone returns an FM-synthesized sample.
func fmTone(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// genStartCue: two quick rising FM notes.
func genStartCue() []byte {
	n := int(0.22 * sampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.2, 0.3)
		freq := 330.0
		if p > 0.45 {
			freq = 494.0
		}
		s := fmTone(t, freq, 2.0, 2.0*env) * env * 0.45
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genFootstep: dull carpet thud from filtered noise.
func genFootstep() []byte {
	n := int(0.07 * sampleRate)
	buf := makeBuf(n)
	seed := uint64(4242)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		lp = lp*0.85 + lcg(&seed)*0.15
		thud := math.Sin(2*math.Pi*(110-50*p)*t) * math.Exp(-p*18) * 0.4
		s := (lp*0.45 + thud) * (1 - p)
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genVictoryCue: ascending FM bell arpeggio, each note ringing over
// the next.
func genVictoryCue() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	noteStep := int(0.1 * sampleRate)
	total := len(notes)*noteStep + int(0.3*sampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / sampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			mix[start+j] += fmTone(t, freq, 2.756, 5.0*env) * env * 0.34
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDamageCue: descending FM groan.
func genDamageCue() []byte {
	n := int(0.18 * sampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 290 - 190*p
		s := fmTone(t, freq, 1.5, 2.8*(1-p)) * env * 0.5
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHeartbeat: lub-dub, two pitch-dropped thumps.
func genHeartbeat() []byte {
	n := int(0.5 * sampleRate)
	buf := makeBuf(n)
	onsets := []float64{0.0, 0.22}
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		s := 0.0
		for oi, onset := range onsets {
			if t < onset {
				continue
			}
			lt := t - onset
			gain := 0.6
			if oi == 1 {
				gain = 0.45
			}
			s += math.Sin(2*math.Pi*(70-40*lt)*lt) * math.Exp(-lt*22) * gain
		}
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genPickupCue: short FM pop sliding from f0 to f1.
func genPickupCue(f0, f1 float64) []byte {
	n := int(0.12 * sampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.15)
		freq := f0 + (f1-f0)*p
		s := fmTone(t, freq, 2.0, 3.0*env) * env * 0.45
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOverCue: slow descending minor chord, staggered onsets.
func genGameOverCue() []byte {
	dur := 0.8
	n := int(dur * sampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00},
		{261.63, 0.15},
		{220.00, 0.30},
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * sampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / sampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.03)
			mix[i] += fmTone(t, freq, 2.0, 2.0*env) * env * 0.3
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
