package fat32

import "strings"

// Resolve descends from root through each component of an absolute path,
// calling Find component-by-component. The first component of path must be
// the root designator ("/"); every other component must be a normal name
// (current "." and parent ".." components are rejected; empty components,
// from repeated or trailing slashes, are skipped).
func Resolve(root *Dir, path string) (Entry, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, InvalidInput("path must be absolute")
	}

	var current Entry = root

	for _, component := range strings.Split(path, "/") {
		if component == "" {
			continue
		}

		if !isNormalComponent(component) {
			return nil, InvalidInput("path component must be a normal name: " + component)
		}

		dir, ok := current.AsDir()
		if !ok {
			return nil, InvalidInput("path contains two file names")
		}

		entry, err := dir.Find(component)
		if err != nil {
			return nil, err
		}

		current = entry
	}

	return current, nil
}

func isNormalComponent(component string) bool {
	return component != "." && component != ".."
}
