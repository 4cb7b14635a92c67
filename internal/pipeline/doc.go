// Package pipeline implements the stages of the Markdown-to-HTML conversion.
//
// The root md2html package runs them in this order:
//   - Normalize and SplitFrontMatter (BOM, line endings, metadata block)
//   - Engine.Render (goldmark parse with the Mark extension, AST inspection,
//     render, optional sanitizing)
//   - RebaseRelativePaths when the output lives in another directory
//   - InsertTOC and AddPermalinks on the fragment
//   - Shell.Render to wrap the fragment in a standalone document
//   - Charset.Encode for non UTF-8 output
//
// Every stage is a pure function of its input and configuration, so the
// same source always yields the same bytes.
package pipeline
