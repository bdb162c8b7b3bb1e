package compiler

import (
	"regexp"

	"github.com/vcrobe/rtc/markup"
)

// MaxDepth bounds element nesting, rt-include chains and template prop
// recursion. Documents nested deeper fail with ErrInvalidDocument.
const MaxDepth = 256

// Modules selects the wrapper put around the generated render function.
type Modules string

const (
	ModulesCommonJS   Modules = "commonjs"
	ModulesAMD        Modules = "amd"
	ModulesES6        Modules = "es6"
	ModulesTypeScript Modules = "typescript"
	ModulesNone       Modules = "none"
	// ModulesJSRT emits the bare render function for splicing into a .jsrt file.
	ModulesJSRT Modules = "jsrt"
)

// AllModules lists every emission convention in the order they are shown to users.
var AllModules = []Modules{ModulesAMD, ModulesCommonJS, ModulesES6, ModulesTypeScript, ModulesNone, ModulesJSRT}

// PropTemplate describes a child element that is compiled into a render
// callback prop of its parent instead of a regular child.
type PropTemplate struct {
	Prop      string   `yaml:"prop" json:"prop"`
	Arguments []string `yaml:"arguments" json:"arguments"`
}

// Define is one module dependency of the generated code. Member is "*" for
// the whole module, "default" for its default export, or an export name.
type Define struct {
	ModuleName string
	Alias      string
	Member     string
}

// Options configures one compilation. The zero value compiles for the
// default React target with the "none" module convention.
type Options struct {
	Modules             Modules
	Name                string
	TargetVersion       string
	Native              bool
	NativeTargetVersion string
	ReactImportPath     string
	LodashImportPath    string
	Flow                bool
	// NormalizeHTMLWhitespace collapses runs of whitespace in text outside
	// of pre, textarea and rt-pre elements.
	NormalizeHTMLWhitespace bool
	// PropTemplates maps tag name to child tag name to the prop it renders.
	PropTemplates map[string]map[string]PropTemplate
	// Defines replaces the default React and lodash dependencies.
	Defines []Define
	// ReadFile loads rt-include sources. rt-include fails when it is nil.
	ReadFile func(path string) (string, error)
}

// compileContext is the per-subtree state threaded through code generation.
// It is passed by value, so changes made for a subtree never leak to its
// siblings. The registry is shared by the whole document.
type compileContext struct {
	bound  bindings
	reg    *registry
	opts   *Options
	source string
	depth  int
}

// descend returns the context for compiling a child element.
func (ctx compileContext) descend() compileContext {
	ctx.depth++
	return ctx
}

// Directive attributes and reserved element names.
const (
	repeatAttr    = "rt-repeat"
	ifAttr        = "rt-if"
	scopeAttr     = "rt-scope"
	propsAttr     = "rt-props"
	classSetAttr  = "rt-class"
	statelessAttr = "rt-stateless"
	preAttr       = "rt-pre"

	classAttr     = "class"
	classNameProp = "className"
	styleAttr     = "style"
	keyAttr       = "key"

	templateNode = "rt-template"
	virtualNode  = "rt-virtual"
	includeNode  = "rt-include"
	requireNode  = "rt-require"
	importNode   = "rt-import"
)

// repeatDirective is a parsed rt-repeat="item in collection".
type repeatDirective struct {
	item       string
	index      string
	collection string
	// callSite holds the bindings available where the loop function is
	// bound, which excludes the loop variables.
	callSite bindings
}

// scopeDirective is a parsed rt-scope list.
type scopeDirective struct {
	name  string
	outer bindings
	inner []scopeBinding
}

// scopeBinding is one "expression as identifier" entry of an rt-scope.
type scopeBinding struct {
	ident string
	expr  string
}

// directives holds the control attributes of one element after they were
// resolved in their fixed order: repeat, scope, if.
type directives struct {
	repeat    *repeatDirective
	scope     *scopeDirective
	condition string
	hasIf     bool
	virtual   bool
}

var (
	// text made only of a single {expression}
	stringOnlyCodeRegex = regexp.MustCompile(`^\s*\{.*\}\s*$`)

	// <tag></tag> pairs in a .jsrt file
	jsrtTemplateRegex = regexp.MustCompile(`(?s)<template>(.*?)</template>`)

	customElementRegex = regexp.MustCompile(`^\w+(-\w+)+$`)

	vendorPrefixRegex = regexp.MustCompile(`(?i)^(-moz-|-o-|-webkit-)`)

	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// isStringOnlyCode reports whether an attribute value is one {expression}
// that should be passed through instead of being compiled.
func isStringOnlyCode(val string) bool {
	return stringOnlyCodeRegex.MatchString(val)
}

// isCustomElement reports whether tag is a dashed custom element name.
func isCustomElement(tag string) bool {
	return customElementRegex.MatchString(tag)
}

// hasNonSimpleChildren reports whether any element child repeats, which
// forces the children to be passed as an array.
func hasNonSimpleChildren(n *markup.Node) bool {
	for _, c := range n.Elements() {
		if v, _ := c.Attribute(repeatAttr); v != "" {
			return true
		}
	}
	return false
}
