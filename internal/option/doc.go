// Package option parses the comma separated option strings attached to
// plugin references in a configuration file.
//
// An option string such as
//
//	opt1,key=val,debug=True,ratio=2.5,limit=None
//
// yields the positional values ["opt1"] and the named values
// {key: "val", debug: true, ratio: 2.5, limit: null}. Every value is coerced
// by the first matcher that accepts it: the True/False/None literals, a float
// when the text contains a dot, an integer otherwise, and finally the text
// itself. Commas cannot be escaped and only the first '=' of a part separates
// the key from its value.
package option
