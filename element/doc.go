// Copyright (c) 2018 Andrew Fort
//

/*
Package element defines the flat token model consumed by the registry parser.

A document is presented as a sequence of start tags, end tags, self-closing
tags and character data. Streams are expected to be pre-filtered: markup
comments removed, character data trimmed, and empty character data dropped.
Package markup provides such a Stream over raw document bytes; tests and
synthetic inputs use Slice.
*/
package element
