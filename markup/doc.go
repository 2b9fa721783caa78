// Copyright (c) 2018 Andrew Fort
//

/*
Package markup tokenizes registry documents into an element.Stream.

SplitMarkup is a bufio.SplitFunc yielding raw tags and character data runs.
Reader wraps it with the preprocessing the registry parser relies upon.
Neither performs well-formedness checking beyond what is needed to find
token boundaries.
*/
package markup
