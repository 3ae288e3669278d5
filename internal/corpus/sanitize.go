// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import "strings"

// Sanitize replaces the reserved bucket-file delimiters '~' and '#' with
// '_' before a word is hashed or stored in the anagram table, so a word
// that happens to contain them cannot corrupt the serialized file
// format. Sanitize is idempotent: applying it twice is the same as
// applying it once, since its own output never contains '~' or '#'.
func Sanitize(word string) string {
	return strings.Map(func(r rune) rune {
		if r == '~' || r == '#' {
			return '_'
		}
		return r
	}, word)
}
