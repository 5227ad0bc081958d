package config

// Audio output.
const (
	SampleRate    = 44100
	ChannelCount  = 2
	RenderQuantum = 128 // frames rendered per graph pull
)

// Technique transition timing (seconds).
const (
	RampImmediate  = 0.06
	RampTransition = 0.45
	HumanizeEvery  = 0.9
)

// Particle cloud.
const (
	ParticleCount    = 20000
	ParticleLerp     = 0.1 // per-frame approach toward targets
	ShakeIntensity   = 0.28
	ShakeMaxPixels   = 26.0
	RenderOverscan   = 1.16
	ParticleBaseSize = 0.55
	ParticleOpacity  = 0.9
)

// Window and camera defaults.
const (
	WindowWidth    = 1280
	WindowHeight   = 720
	CompactWidth   = 960
	CameraFOV      = 72.0
	CameraFOVSmall = 80.0
	CameraZ        = 56.0
	CameraZSmall   = 62.0
	CameraNear     = 0.1
	CameraFar      = 1000.0
)

// Reverb impulse and noise generation.
const (
	ReverbSeconds        = 3.2
	ReverbDecay          = 2.4
	NoiseSeconds         = 2.0
	DriveAmount          = 48.0
	DriveCurveLength     = 44100
	ReverbPartitionFrame = 1024
)
