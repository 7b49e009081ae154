package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: written stub files, errors, final status
//	1 (-v)      - + Progress, startup info, per-namespace summaries
//	2 (-vv)     - + Config loaded, timing, per-pass detail
//	3 (-vvv)    - + Per-member walk detail, internal flow
//	4 (-vvvv)   - + Full declaration tree dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Written stub files, command output
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Progress indicators (e.g., "Processing 50/100 members")
	OutputStartup  // Startup banners, resolved namespaces
	OutputSummary  // Per-namespace generation summaries

	// Level 2 (-vv) - Detailed
	OutputConfig // Config values loaded/applied
	OutputTiming // Operation timing (e.g., "generation took 42ms")
	OutputPasses // Pass-by-pass tree transformation detail

	// Level 3 (-vvv) - Debug
	OutputMembers      // Per-member walk and insertion detail
	OutputInternalFlow // Internal operation flow (function entry/exit)

	// Level 4 (-vvvv) - Full dump
	OutputTreeDump // Full declaration tree contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	// Level 0 - Always shown
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	// Level 1 - Informational
	OutputProgress: VerbosityInfo,
	OutputStartup:  VerbosityInfo,
	OutputSummary:  VerbosityInfo,

	// Level 2 - Detailed
	OutputConfig: VerbosityDebug,
	OutputTiming: VerbosityDebug,
	OutputPasses: VerbosityDebug,

	// Level 3 - Debug
	OutputMembers:      VerbosityTrace,
	OutputInternalFlow: VerbosityTrace,

	// Level 4 - Full dump
	OutputTreeDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputUserStatus:   "status",
	OutputProgress:     "progress",
	OutputStartup:      "startup",
	OutputSummary:      "summary",
	OutputConfig:       "config",
	OutputTiming:       "timing",
	OutputPasses:       "passes",
	OutputMembers:      "members",
	OutputInternalFlow: "internal",
	OutputTreeDump:     "tree-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and summaries"
	case VerbosityDebug:
		return "above + config, timing, pass detail"
	case VerbosityTrace:
		return "above + member detail and internal flow"
	case VerbosityAll:
		return "full output including declaration tree dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
