// Package stdlib provides the native functions available to every dotcall
// document: arithmetic, logic, optionality, text, collections, control flow,
// and document layout.
package stdlib

import "github.com/ardnew/dotcall/lang"

// Libraries returns every standard library in registration order.
func Libraries() []lang.Library {
	return []lang.Library{
		Math(),
		Logical(),
		Optionality(),
		Strings(),
		Collections(),
		Flow(),
		Document(),
	}
}

// Option registers every standard library in an environment.
func Option() lang.Option {
	return lang.WithLibrary(Libraries()...)
}

// Lookup returns the library with the given name.
func Lookup(name string) (lang.Library, bool) {
	for _, lib := range Libraries() {
		if lib.Name == name {
			return lib, true
		}
	}

	return lang.Library{}, false
}
