// Package mods provides the mod pipeline used to generate native project files.
//
// A mod is a transformation registered against a configuration document for one
// (platform, mod name) pair. Mods registered for the same pair form a chain: each
// new registration intercepts the previous one and receives it as a continuation.
// A base mod is the provider at the outer end of a chain. It locates a file,
// reads it into working state, hands that state to the rest of the chain,
// validates what comes back and writes the file.
//
// The package includes:
//
// - ExportedConfig, the document threaded through every mod
// - WithBaseMod and WithMod, which register mods and build chains
// - CreateBaseMod and WithGeneratedBaseMods, which turn provider methods
// (GetFilePath, Read, Write) into base mods
// - AssertModResults, the guard run on every chain result
// - EvalMods, which runs the registered chains platform by platform
//
// The package never touches the filesystem and knows no file format. Both are
// supplied by the provider methods.
package mods
