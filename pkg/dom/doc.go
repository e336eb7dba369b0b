// Package dom is a small live document model: a tree of elements with class
// lists, attributes, inline styles and event listeners, plus bubbling event
// dispatch and a pluggable geometry measurer.
//
// Trees are usually described with the vdom builders and materialized with
// Document.Mount / Document.MountInto, which also attaches the handlers found
// in the VNode props.
//
// A Document and everything attached to it is owned by a single goroutine.
// Handlers run to completion synchronously inside Dispatch.
package dom
