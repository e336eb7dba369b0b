// Package vdom provides the declarative node builders used to describe a
// render pass.
//
// A render pass builds a VNode tree with variadic factory functions and
// hands it to dom.Document.Mount, which turns it into live elements with
// their listeners attached:
//
//	Div(Class("labelSelect", "theme_white"), OnClick(toggle),
//	    Ul(Li(Data("id", "none"))),
//	    Span(),
//	)
//
// VNode trees are disposable. Nothing here diffs or patches; callers that
// need a new shape build a new tree.
package vdom
