package mods

import "github.com/lex00/wetwire-mods-go/serialize"

// AssertModResults checks that a value returned by a mod chain is a document
// carrying mods. It returns the document unchanged on success.
//
// Typed chains always hand back *ExportedConfigWithProps; the check still runs
// because a mod can return nil or a document that lost its mods.
func AssertModResults(results any, platform Platform, modName string) (*ExportedConfigWithProps, error) {
	var cfg *ExportedConfigWithProps
	switch v := results.(type) {
	case *ExportedConfigWithProps:
		cfg = v
	case ExportedConfigWithProps:
		cfg = &v
	}

	if cfg == nil || cfg.Mods == nil {
		return nil, &MalformedResultError{
			Platform: platform,
			ModName:  modName,
			Snapshot: serialize.Snapshot(results),
		}
	}
	return cfg, nil
}
