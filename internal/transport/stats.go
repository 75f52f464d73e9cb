package transport

// GammaRayTraceStats accumulates the per-worker counters spec.md §4.2 "Logging policy"
// and §7 describe.
type GammaRayTraceStats struct {
	NoPhotonsTraced int
	NoPhotoelectric int
	NoCompton       int
	NoRayleigh      int
	NoXRayEscape    int

	NoEmptyStackErrors int
	NoMatchErrors      int
	NoTraceDepthErrors int
}

// LoggingPolicy controls which transport events produce an Interaction record, per
// spec.md §4.2 "Logging policy". Transport always updates GammaRayTraceStats
// regardless of these flags.
type LoggingPolicy struct {
	LogNonDepositing bool // Rayleigh scatters, which deposit no energy
	LogDecays        bool // the NuclearDecay itself, as a zero-energy marker record
	LogNonSensitive  bool // interactions outside any det_id-bearing viewable
	LogErrors        bool // ErrorEmptyStack / ErrorMatch / ErrorTraceDepth
}
