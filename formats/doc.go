// Package formats reads and writes the native project files edited by base mods.
//
// Every helper goes through an afero.Fs, so the same providers run against the
// real filesystem and against afero.NewMemMapFs() in tests. Files that do not
// exist read as empty documents.
package formats
