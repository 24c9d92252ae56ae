package adapter

import (
	"strings"

	emucore "github.com/user-none/goretro/api"
)

// Values of the region option.
const (
	RegionAuto = "Auto"
	RegionNTSC = "NTSC"
	RegionPAL  = "PAL"
)

const (
	regionOptionKey = "region"
	regionOptionDef = "Region; " + RegionAuto + "|" + RegionNTSC + "|" + RegionPAL
)

// Variable is one frontend option. When declared, Value holds the
// "Label; default|other" definition; when read back it holds the current
// value.
type Variable struct {
	Key   string
	Value string
}

// OptionPrefix returns the key prefix for a core's options: the lower-cased
// core name with every other character replaced by an underscore.
func OptionPrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	return b.String()
}

// optionSet tracks one core's options and the values last pushed to it.
type optionSet struct {
	prefix  string
	options []emucore.CoreOption
	values  map[string]string
	region  string
}

func newOptionSet(desc *emucore.CoreDescriptor) *optionSet {
	s := &optionSet{
		prefix:  OptionPrefix(desc.Name()),
		options: desc.Options(),
		values:  make(map[string]string),
		region:  RegionAuto,
	}
	for _, o := range s.options {
		s.values[o.Key] = o.Default
	}
	return s
}

// variables lists the declarations sent to the frontend, region first.
func (s *optionSet) variables() []Variable {
	vars := make([]Variable, 0, len(s.options)+1)
	vars = append(vars, Variable{Key: s.prefix + regionOptionKey, Value: regionOptionDef})
	for _, o := range s.options {
		vars = append(vars, Variable{Key: s.prefix + o.Key, Value: o.Definition()})
	}
	return vars
}

// regionOverride returns the region picked in the frontend. Auto and
// unknown values leave the choice to the core's configuration.
func (s *optionSet) regionOverride() (emucore.Region, bool) {
	if s == nil {
		return emucore.RegionNTSC, false
	}
	switch s.region {
	case RegionNTSC:
		return emucore.RegionNTSC, true
	case RegionPAL:
		return emucore.RegionPAL, true
	}
	return emucore.RegionNTSC, false
}

// DeclareOptions sends factory's options, plus the region option, to the
// frontend. It reports false when there is no environment or the frontend
// does not take option declarations.
func DeclareOptions(factory emucore.CoreFactory) bool {
	env, ok := CurrentEnvironment()
	if !ok {
		return false
	}
	return env.SetVariables(newOptionSet(describeFactory(factory)).variables())
}

// UseOptions makes the adapter track desc's options.
func (a *Adapter) UseOptions(desc *emucore.CoreDescriptor) {
	a.options = newOptionSet(desc)
}

// refreshOptions reads the options back from the frontend and pushes
// changed values to the core. With force set every known value is pushed,
// whether or not the frontend reported an update.
func (a *Adapter) refreshOptions(force bool) {
	s := a.options
	if s == nil {
		return
	}
	env, ok := CurrentEnvironment()
	if !ok {
		return
	}
	if !env.VariablesUpdated() && !force {
		return
	}

	if v, ok := env.Variable(s.prefix + regionOptionKey); ok && v != s.region {
		a.log.Info("region option changed", "from", s.region, "to", v)
		s.region = v
		if a.loaded {
			a.pushRegion()
		}
	}

	setter, _ := a.core.(emucore.OptionSetter)
	for _, o := range s.options {
		v, ok := env.Variable(s.prefix + o.Key)
		if !ok {
			if !force {
				continue
			}
			v = s.values[o.Key]
		}
		if v == s.values[o.Key] && !force {
			continue
		}
		s.values[o.Key] = v
		if setter != nil {
			setter.SetOption(o.Key, v)
		}
	}
}

// pushRegion hands the effective region to cores that accept one.
func (a *Adapter) pushRegion() {
	if rs, ok := a.core.(emucore.RegionSetter); ok {
		rs.SetRegion(a.Region())
	}
}
