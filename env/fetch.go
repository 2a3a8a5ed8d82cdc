package env

import (
	"os"
	"strconv"
)

// CurrentUserKey is the variable consulted for the notifying user's display name
// when the slack settings do not name one.
const CurrentUserKey = "USER"

// Lookup returns the value of the environment variable with the given key.
//
//	If the variable is not set, it returns an empty string and false.
//	If the variable is set, it returns the value and true.
func Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Get returns the value of the environment variable with the given key.
// If the variable is not set, it returns the fallback value if provided, or an empty string.
func Get(key string, fallback ...string) string {
	var fb string
	if len(fallback) > 0 {
		fb = fallback[0]
	}
	s, ok := Lookup(key)
	if !ok {
		return fb
	}
	return s
}

// GetString is an alias of Get kept for call sites that read better with the type in the name.
func GetString(key string, fallback ...string) string {
	return Get(key, fallback...)
}

// GetBool parses the variable with strconv.ParseBool. Unset or unparsable values yield the fallback.
func GetBool(key string, fallback bool) bool {
	s, ok := Lookup(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

// CurrentUser returns the ambient user name, or an empty string when it is not set.
func CurrentUser() string {
	return Get(CurrentUserKey)
}
