// Copyright (c) 2018 Andrew Fort
//

/*
Package vkregistry is a set of libraries for reading the Vulkan API
registry document (vk.xml) into typed Go values.

The markup package tokenizes the document into element tokens, which the
registry package consumes in a single forward pass, building a Registry
of platforms, vendor tags, types, enums, commands, features, extensions,
formats, SPIR-V requirements and synchronization metadata. Any markup
outside the registry grammar aborts the parse with a *regerr.Error
naming the section, element path and offending tag or attribute.

C declarations embedded in type and command markup (struct members,
command parameters, function pointer signatures) are inferred into
shape.Shape values, describing pointer depth, constness and array
extents.

The audit package cross-checks a parsed Registry against an XPath view
of the same document, and cmd/vkregistry is a command line front end
printing dispatch table counts, audit results and a YAML dump.
*/
package vkregistry
