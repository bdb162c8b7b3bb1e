package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptionsResolve_Defaults(t *testing.T) {
	o, err := Options{}.resolve()
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if o.Modules != ModulesNone || o.Name != "template" {
		t.Errorf("Expected none convention named template, got %s %q", o.Modules, o.Name)
	}
	if o.TargetVersion != DefaultTargetVersion || o.ReactImportPath != "react" || o.LodashImportPath != "lodash" {
		t.Errorf("Unexpected defaults %+v", o)
	}
	if diff := cmp.Diff(testDefines, o.Defines); diff != "" {
		t.Errorf("defines mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsResolve_ReactImportPath(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{Options{TargetVersion: "0.13.3"}, "react/addons"},
		{Options{TargetVersion: "15.0.0"}, "react"},
		{Options{ReactImportPath: "preact"}, "preact"},
		{Options{Native: true}, "react-native"},
		{Options{Native: true, NativeTargetVersion: "0.29.0"}, "react"},
	}
	for _, tt := range tests {
		o, err := tt.opts.resolve()
		if err != nil {
			t.Fatalf("resolve returned error: %v", err)
		}
		if o.ReactImportPath != tt.want {
			t.Errorf("Expected react import %q, got %q", tt.want, o.ReactImportPath)
		}
	}
}

func TestOptionsResolve_Native(t *testing.T) {
	o, err := Options{Native: true, NativeTargetVersion: "0.29.0"}.resolve()
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if o.Modules != ModulesCommonJS {
		t.Errorf("Expected native to default to commonjs, got %s", o.Modules)
	}
	want := []Define{
		{ModuleName: "react-native", Alias: "ReactNative", Member: "*"},
		{ModuleName: "react", Alias: "React", Member: "*"},
		{ModuleName: "lodash", Alias: "_", Member: "*"},
	}
	if diff := cmp.Diff(want, o.Defines); diff != "" {
		t.Errorf("defines mismatch (-want +got):\n%s", diff)
	}
	if got := o.PropTemplates["ListView"]["Row"].Prop; got != "renderRow" {
		t.Errorf("Expected built in ListView template, got %q", got)
	}
}

func TestOptionsResolve_UserPropTemplatesDoNotLeak(t *testing.T) {
	user := map[string]map[string]PropTemplate{"List": {"Item": {Prop: "renderItem"}}}
	if _, err := (Options{Native: true, PropTemplates: user}).resolve(); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if _, ok := nativePropTemplates["0.9.0"]["List"]; ok {
		t.Error("Expected built in prop templates to stay unmodified")
	}
}

func TestOptionsResolve_Suggestions(t *testing.T) {
	_, err := Options{Modules: "typscript"}.resolve()
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Expected ErrInvalidOption, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean 'typescript'") {
		t.Errorf("Expected suggestion, got %q", err.Error())
	}

	_, err = Options{Native: true, NativeTargetVersion: "xyz"}.resolve()
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Expected ErrInvalidOption, got %v", err)
	}
	if !strings.Contains(err.Error(), "valid: [0.9.0 0.29.0]") {
		t.Errorf("Expected choices listed, got %q", err.Error())
	}
}
