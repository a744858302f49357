// Package directive resolves conditional markup embedded in template files.
//
// Supported markers:
//
//	{{#key}} ... {{/key}}          keep when key is truthy
//	{{^key}} ... {{/key}}          keep when key is falsy
//	{{#if pred}} ... {{/if}}       keep when the predicate holds
//	{{#unless pred}} ... {{/unless}}
//	{{#if_or a b}} ... {{/if_or}}  keep when a or b is truthy
//	{{else}}                       alternative branch of the innermost block
//	{{key}}, {{{key}}}             interpolate an answer or helper value
//	{{! comment }}                 removed
//	\{{key}}                       literal {{key}}
//
// Interpolations whose name is neither an answer nor a helper are left
// untouched, so client-side template syntax in the generated files
// survives. A block marker alone on its line removes the whole line. A
// file in which nothing needs resolving is returned unchanged.
package directive
