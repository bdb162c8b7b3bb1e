package compiler

import (
	"slices"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/vcrobe/rtc/js"
)

// DefaultTargetVersion is the React version compiled for when none is given.
const DefaultTargetVersion = "0.14.0"

// DefaultNativeTargetVersion is the React Native version compiled for when
// none is given.
const DefaultNativeTargetVersion = "0.9.0"

// TargetVersions lists the supported React DOM versions.
var TargetVersions = []string{
	"0.10.0", "0.11.0", "0.11.1", "0.11.2",
	"0.12.0", "0.12.1", "0.12.2",
	"0.13.1", "0.13.2", "0.13.3",
	"0.14.0", "15.0.0", "15.0.1",
}

// NativeTargetVersions lists the supported React Native versions.
var NativeTargetVersions = []string{"0.9.0", "0.29.0"}

// targets before 0.12 build elements through React.DOM factories
var legacyFactoryVersions = []string{"0.10.0", "0.11.0", "0.11.1", "0.11.2"}

// targets whose react package no longer ships addons
var reactPackageVersions = []string{"0.14.0", "0.15.0", "15.0.0", "15.0.1"}

func useCreateElement(targetVersion string) bool {
	return !slices.Contains(legacyFactoryVersions, targetVersion)
}

type moduleRef struct {
	module string
	name   string
}

type nativeSupport struct {
	react       moduleRef
	reactNative moduleRef
	components  []string
}

var nativeComponents = []string{
	"ActivityIndicatorIOS", "DatePickerIOS", "Image", "ListView", "MapView",
	"Navigator", "NavigatorIOS", "PickerIOS", "ProgressBarAndroid",
	"ProgressViewIOS", "ScrollView", "SegmentedControlIOS", "SliderIOS",
	"SwitchAndroid", "SwitchIOS", "TabBarIOS", "Text", "TextInput",
	"ToolbarAndroid", "TouchableHighlight", "TouchableNativeFeedback",
	"TouchableOpacity", "TouchableWithoutFeedback", "View",
	"ViewPagerAndroid", "WebView",
}

var nativeTargets = map[string]nativeSupport{
	"0.9.0": {
		react:       moduleRef{module: "react-native", name: "React"},
		reactNative: moduleRef{module: "react-native", name: "React"},
		components:  nativeComponents,
	},
	"0.29.0": {
		react:       moduleRef{module: "react", name: "React"},
		reactNative: moduleRef{module: "react-native", name: "ReactNative"},
		components:  nativeComponents,
	},
}

var listViewRow = PropTemplate{Prop: "renderRow", Arguments: []string{"rowData", "sectionID", "rowID", "highlightRow"}}

// nativePropTemplates are the built in prop templates per native version.
var nativePropTemplates = map[string]map[string]map[string]PropTemplate{
	"0.9.0":  {"ListView": {"Row": listViewRow}},
	"0.29.0": {"ListView": {"Row": listViewRow}},
}

// reactSupportedAttributes are the props React knows under a mixed-case
// name. Lowercase spellings of these are corrected when compiling props.
var reactSupportedAttributes = []string{
	"accept", "acceptCharset", "accessKey", "action", "allowFullScreen",
	"allowTransparency", "alt", "async", "autoComplete", "autoPlay",
	"cellPadding", "cellSpacing", "charSet", "checked", "classID", "className",
	"cols", "colSpan", "content", "contentEditable", "contextMenu", "controls",
	"coords", "crossOrigin", "data", "dateTime", "defer", "dir", "disabled",
	"download", "draggable", "encType", "form", "formNoValidate", "frameBorder",
	"height", "hidden", "href", "hrefLang", "htmlFor", "httpEquiv", "icon", "id",
	"label", "lang", "list", "loop", "manifest", "max", "maxLength", "media",
	"mediaGroup", "method", "min", "multiple", "muted", "name", "noValidate",
	"open", "pattern", "placeholder", "poster", "preload", "radioGroup",
	"readOnly", "rel", "required", "role", "rows", "rowSpan", "sandbox", "scope",
	"scrolling", "seamless", "selected", "shape", "size", "sizes", "span",
	"spellCheck", "src", "srcDoc", "srcSet", "start", "step", "style",
	"tabIndex", "target", "title", "type", "useMap", "value", "width", "wmode",
}

// attributesMapping maps a source attribute name (lowercased) to its prop.
var attributesMapping = func() map[string]string {
	m := map[string]string{
		classAttr:    classNameProp,
		classSetAttr: classNameProp,
		"for":        "htmlFor",
	}
	for _, name := range reactSupportedAttributes {
		if lower := strings.ToLower(name); lower != name {
			m[lower] = name
		}
	}
	return m
}()

// propName returns the prop an attribute is compiled into.
func propName(attr string) string {
	if p, ok := attributesMapping[strings.ToLower(attr)]; ok {
		return p
	}
	return attr
}

// selfClosingTags cannot have element children. Children written inside
// them are moved after them.
var selfClosingTags = []string{
	"area", "base", "br", "col", "command", "embed", "hr", "img", "input",
	"keygen", "link", "meta", "param", "source", "track", "wbr",
	includeNode,
}

func isSelfClosing(tag string) bool {
	return slices.Contains(selfClosingTags, tag)
}

// isHTMLTag reports whether tag is a known lowercase HTML element name.
func isHTMLTag(tag string) bool {
	a := atom.Lookup([]byte(tag))
	return a != 0 && a.String() == tag
}

// tagConstructor returns the element type argument for tag: a string for
// DOM elements and an identifier for components.
func tagConstructor(tag string, opts *Options) js.Expr {
	if opts.Native {
		support := nativeTargets[opts.NativeTargetVersion]
		if slices.Contains(support.components, tag) {
			return js.Member{X: js.Ident(support.reactNative.name), Name: tag}
		}
		return js.Raw(tag)
	}
	isHTML := isHTMLTag(tag) || isCustomElement(tag)
	if useCreateElement(opts.TargetVersion) {
		if isHTML {
			return js.Str(tag)
		}
		return js.Raw(tag)
	}
	if isHTML {
		return js.Member{X: js.Raw("React.DOM"), Name: tag}
	}
	return js.Raw(tag)
}
