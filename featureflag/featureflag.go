package featureflag

// FeatureFlag is the set of enabled feature flags. The zero value has
// nothing set.
type FeatureFlag map[Flag]struct{}

// New returns feature flags initialized from a list of flag names.
func New(names []string) FeatureFlag {
	flags := make(FeatureFlag, len(names))
	for _, name := range names {
		flags[Flag(name)] = struct{}{}
	}
	return flags
}

// IsSet reports whether flag is set.
func (f FeatureFlag) IsSet(flag Flag) bool {
	_, ok := f[flag]
	return ok
}

// IfSet runs do when flag is set.
func (f FeatureFlag) IfSet(flag Flag, do func()) {
	if f.IsSet(flag) {
		do()
	}
}

// IfNotSet runs do when flag is not set.
func (f FeatureFlag) IfNotSet(flag Flag, do func()) {
	if !f.IsSet(flag) {
		do()
	}
}
