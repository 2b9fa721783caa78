// Copyright (c) 2018 Andrew Fort
//

// Package registry parses the Vulkan API registry into a Registry.
//
// Parsing is a single forward pass over an element.Stream. Each top-level
// section of the <registry> element is dispatched to its own parser, and
// every record is built from its attribute list by a record.Table, so
// unknown or missing attributes are reported rather than dropped.
//
// Polymorphic records are tagged unions: TypeEntry, EnumEntry,
// ConstantEntry and RequireEntry are interfaces satisfied only by the
// concrete record types of this package. An <enum> tag's record kind is
// chosen by ClassifyEnumEntry, which scans a fixed Priority of
// discriminating attribute keys.
//
// A Sink passed with WithSink receives one Event per parsed record;
// GlogSink logs top-level records at verbosity 1 and nested ones at 2.
package registry
