package compiler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/sahilm/fuzzy"
)

const (
	defaultLodashImportPath = "lodash"
	defaultName             = "template"
)

// DefaultOptions returns the options used by the command line driver before
// flags and configuration are applied.
func DefaultOptions() Options {
	return Options{
		Modules:             ModulesNone,
		TargetVersion:       DefaultTargetVersion,
		NativeTargetVersion: DefaultNativeTargetVersion,
		LodashImportPath:    defaultLodashImportPath,
	}
}

// resolve fills in defaults and validates o. The receiver is not modified.
func (o Options) resolve() (Options, error) {
	if o.TargetVersion == "" {
		o.TargetVersion = DefaultTargetVersion
	}
	if o.NativeTargetVersion == "" {
		o.NativeTargetVersion = DefaultNativeTargetVersion
	}
	if o.LodashImportPath == "" {
		o.LodashImportPath = defaultLodashImportPath
	}
	if o.Modules == "" {
		o.Modules = ModulesNone
		if o.Native {
			o.Modules = ModulesCommonJS
		}
	}

	modules := make([]string, len(AllModules))
	for i, m := range AllModules {
		modules[i] = string(m)
	}
	if err := checkChoice("modules", string(o.Modules), modules); err != nil {
		return o, err
	}
	if o.Native {
		if err := checkChoice("native target version", o.NativeTargetVersion, NativeTargetVersions); err != nil {
			return o, err
		}
	} else if err := checkChoice("target version", o.TargetVersion, TargetVersions); err != nil {
		return o, err
	}

	if o.Modules == ModulesNone && o.Name == "" {
		o.Name = defaultName
	}
	o.ReactImportPath = reactImport(o)

	var defaults map[string]map[string]PropTemplate
	if o.Native {
		defaults = nativePropTemplates[o.NativeTargetVersion]
	}
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = map[string]map[string]PropTemplate{}
	}
	maps.Copy(merged, o.PropTemplates)
	o.PropTemplates = merged

	if o.Defines == nil {
		o.Defines = defaultDefines(o)
	}
	return o, nil
}

// reactImport returns the module the React alias is imported from.
func reactImport(o Options) string {
	if o.Native {
		return nativeTargets[o.NativeTargetVersion].react.module
	}
	if o.ReactImportPath != "" {
		return o.ReactImportPath
	}
	if slices.Contains(reactPackageVersions, o.TargetVersion) {
		return "react"
	}
	return "react/addons"
}

func defaultDefines(o Options) []Define {
	defines := []Define{
		{ModuleName: o.ReactImportPath, Alias: "React", Member: "*"},
		{ModuleName: o.LodashImportPath, Alias: "_", Member: "*"},
	}
	if o.Native {
		support := nativeTargets[o.NativeTargetVersion]
		if support.reactNative.module != support.react.module {
			native := Define{ModuleName: support.reactNative.module, Alias: support.reactNative.name, Member: "*"}
			defines = append([]Define{native}, defines...)
		}
	}
	return defines
}

// checkChoice fails when value is not one of choices, suggesting the
// closest choice when there is one.
func checkChoice(what, value string, choices []string) error {
	if slices.Contains(choices, value) {
		return nil
	}
	e := &Error{Kind: ErrInvalidOption, Message: fmt.Sprintf("unknown %s '%s'", what, value)}
	if matches := fuzzy.Find(value, choices); len(matches) > 0 {
		e.Message += fmt.Sprintf(", did you mean '%s'?", matches[0].Str)
	} else {
		e.Message += fmt.Sprintf(" (valid: %v)", choices)
	}
	return e
}
