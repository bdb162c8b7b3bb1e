package compiler

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/vcrobe/rtc/js"
)

const mergePropsName = "mergeProps"

// registry collects what one document contributes outside its render
// expression: hoisted functions, module dependencies and the stateless flag.
type registry struct {
	funcs      []js.Stmt
	defines    []Define
	stateless  bool
	mergeProps bool
}

func newRegistry(defines []Define) *registry {
	return &registry{defines: append([]Define(nil), defines...)}
}

// hoist registers a function whose parameters are bound followed by extra
// and returns its generated name. Names are unique per document because the
// suffix counts every function registered before.
func (r *registry) hoist(prefix string, bound bindings, extra []string, body []js.Stmt) string {
	name := sanitizeIdentifier(prefix) + strconv.Itoa(len(r.funcs)+1)
	r.funcs = append(r.funcs, js.Func{Name: name, Params: bound.params(extra...), Body: body})
	return name
}

// requireMergeProps registers the props merging helper once.
func (r *registry) requireMergeProps() {
	if r.mergeProps {
		return
	}
	r.mergeProps = true
	r.funcs = append(r.funcs, mergePropsFunc())
}

func (r *registry) declare(d Define) {
	r.defines = append(r.defines, d)
}

// sanitizeIdentifier drops the characters of s that cannot appear in a
// JavaScript identifier.
func sanitizeIdentifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// mergePropsFunc is the helper used when rt-props is combined with inline
// style or class attributes: inline styles are kept as defaults and class
// names are concatenated, everything else is overridden.
//
//	function mergeProps(inline,external) {
//	  var res = _.assign({},inline,external);
//	  if (inline.hasOwnProperty('style')) { res.style = _.defaults(res.style, inline.style); }
//	  if (inline.hasOwnProperty('className') && external.hasOwnProperty('className')) {
//	    res.className = external.className + ' ' + inline.className;
//	  }
//	  return res;
//	}
func mergePropsFunc() js.Func {
	lodash := js.Ident("_")
	res, inline, external := js.Ident("res"), js.Ident("inline"), js.Ident("external")
	has := func(obj js.Expr, key string) js.Expr {
		return js.Call{Fn: js.Member{X: obj, Name: "hasOwnProperty"}, Args: []js.Expr{js.Str(key)}}
	}
	return js.Func{
		Name:   mergePropsName,
		Params: []string{"inline", "external"},
		Body: []js.Stmt{
			js.Var{Name: "res", Init: js.Call{
				Fn:   js.Member{X: lodash, Name: "assign"},
				Args: []js.Expr{js.Object{}, inline, external},
			}},
			js.If{
				Cond: has(inline, "style"),
				Then: []js.Stmt{js.ExprStmt{X: js.Assign{
					Target: js.Member{X: res, Name: "style"},
					Value: js.Call{
						Fn:   js.Member{X: lodash, Name: "defaults"},
						Args: []js.Expr{js.Member{X: res, Name: "style"}, js.Member{X: inline, Name: "style"}},
					},
				}}},
			},
			js.If{
				Cond: js.Binary{X: has(inline, classNameProp), Op: "&&", Y: has(external, classNameProp)},
				Then: []js.Stmt{js.ExprStmt{X: js.Assign{
					Target: js.Member{X: res, Name: classNameProp},
					Value: js.Concat{
						js.Member{X: external, Name: classNameProp},
						js.Str(" "),
						js.Member{X: inline, Name: classNameProp},
					},
				}}},
			},
			js.Return{X: res},
		},
	}
}
