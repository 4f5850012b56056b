// Package excerpt compresses an arbitrarily large source file into a bounded,
// focus-weighted excerpt suitable for an LLM prompt.
//
// A file is split into top-level named sections (functions, classes, types,
// and similar block headers, detected with a language-loose heuristic) plus a
// residual "module" section for everything outside named blocks. Each section
// is scored by counting case-insensitive focus-term occurrences, with matches
// in the section name weighted above matches in the body. Sections are then
// greedily packed into the line budget in descending score order, each
// annotated with its original line range. With no focus terms the ranking
// falls back to section size so the most substantial leading sections win.
//
// The package also infers focus areas from a free-form request string using a
// keyword table, mirroring the topics the debate prompts care about.
package excerpt
