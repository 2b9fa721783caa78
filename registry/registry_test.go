package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andaru/vkregistry/regerr"
	"github.com/andaru/vkregistry/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func parseDoc(body string, opts ...Option) (*Registry, error) {
	return ParseBytes([]byte("<registry>"+body+"</registry>"), opts...)
}

func loadSubset(t *testing.T) *Registry {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", "vk_subset.xml"))
	require.NoError(t, err)
	reg, err := ParseBytes(b)
	require.NoError(t, err)
	return reg
}

func typeNamed(reg *Registry, name string) TypeEntry {
	for _, t := range reg.Types {
		if t.TypeName() == name {
			return t
		}
	}
	return nil
}

func TestParseRecords(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		check func(ck *assert.Assertions, reg *Registry)
	}{
		{
			name:  "platform",
			input: `<platforms><platform name="x" protect="DEFINE_X" comment="c"/></platforms>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				ck.Equal([]Platform{{Name: "x", Protect: "DEFINE_X", Comment: "c"}}, reg.Platforms)
			},
		},
		{
			name: "top-level comment with nested markup",
			input: `<comment>see <b>x</b> and <i><b>y</b></i> here<br/></comment>` +
				`<platforms><platform name="x" protect="DEFINE_X" comment="c"/></platforms>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				ck.Equal([]Platform{{Name: "x", Protect: "DEFINE_X", Comment: "c"}}, reg.Platforms)
			},
		},
		{
			name:  "api constants group",
			input: `<enums name="API Constants"><enum name="K" value="256"/></enums>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				ck.Equal([]ConstantEntry{&ApiConstant{Name: "K", Value: "256"}}, reg.Constants)
				ck.Empty(reg.EnumGroups)
			},
		},
		{
			name:  "constants group type",
			input: `<enums name="Limits" type="constants"><enum name="K2" alias="K"/></enums>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				ck.Equal([]ConstantEntry{&ApiConstantAlias{Name: "K2", Alias: "K"}}, reg.Constants)
				ck.Empty(reg.EnumGroups)
			},
		},
		{
			name:  "structure",
			input: `<types><type category="struct" name="S"><member><type>uint32_t</type><name>f</name></member></type></types>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				ck.Equal([]TypeEntry{&Structure{
					Name:    "S",
					Members: []Member{{Decl: shape.Decl{Name: "f", BaseType: "uint32_t"}}},
				}}, reg.Types)
			},
		},
		{
			name: "member const pointer to const pointer",
			input: `<types><type category="struct" name="S">` +
				`<member>const <type>Bar</type>* const*<name>pp</name></member></type></types>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				s := reg.Types[0].(*Structure)
				ck.Equal(shape.Decl{
					Name:     "pp",
					BaseType: "Bar",
					Shape:    shape.Shape{Kind: shape.ConstPointerToConstPointer},
				}, s.Members[0].Decl)
			},
		},
		{
			name:  "enum group entries",
			input: `<enums name="G" type="bitmask"><enum name="A" value="0"/><enum name="B" bitpos="3"/><enum name="C" alias="B"/></enums>`,
			check: func(ck *assert.Assertions, reg *Registry) {
				ck.Equal([]EnumGroup{{
					Name: "G",
					Kind: EnumGroupBitmask,
					Entries: []EnumEntry{
						&EnumValue{Name: "A", Value: "0"},
						&EnumBitPosition{Name: "B", BitPos: 3},
						&EnumAlias{Name: "C", Alias: "B"},
					},
				}}, reg.EnumGroups)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ck := assert.New(t)
			reg, err := parseDoc(tc.input)
			if !ck.NoError(err) {
				return
			}
			tc.check(ck, reg)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name       string
		doc        string
		kind       regerr.Kind
		key        string
		tag        string
		recordKind string
		section    string
		path       string
	}{
		{
			name:       "unknown enum attribute",
			doc:        `<registry><enums name="G" type="enum"><enum name="X" weirdattr="1"/></enums></registry>`,
			kind:       regerr.KindUnexpectedAttribute,
			key:        "weirdattr",
			recordKind: "enum",
			section:    "enums",
			path:       "/registry/enums",
		},
		{
			name:       "alias wins over bitpos then fails closed",
			doc:        `<registry><enums name="G" type="bitmask"><enum name="E2" alias="E1" bitpos="3"/></enums></registry>`,
			kind:       regerr.KindUnexpectedAttribute,
			key:        "bitpos",
			recordKind: "enum-alias",
			section:    "enums",
			path:       "/registry/enums",
		},
		{
			name:       "enum without discriminator",
			doc:        `<registry><enums name="G"><enum name="X"/></enums></registry>`,
			kind:       regerr.KindAmbiguousEnumEntry,
			recordKind: "enum",
			section:    "enums",
			path:       "/registry/enums",
		},
		{
			name:       "platform missing name",
			doc:        `<registry><platforms><platform protect="P" comment="c"/></platforms></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "name",
			recordKind: "platform",
			section:    "platforms",
			path:       "/registry/platforms",
		},
		{
			name:       "platform empty name",
			doc:        `<registry><platforms><platform name="" protect="P" comment="c"/></platforms></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "name",
			recordKind: "platform",
			section:    "platforms",
			path:       "/registry/platforms",
		},
		{
			name:       "struct empty name",
			doc:        `<registry><types><type category="struct" name=""><member><type>int</type><name>x</name></member></type></types></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "name",
			recordKind: "structure",
			section:    "types",
			path:       "/registry/types",
		},
		{
			name:       "group enum empty name",
			doc:        `<registry><enums name="G" type="enum"><enum name="" value="1"/></enums></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "name",
			recordKind: "enum-value",
			section:    "enums",
			path:       "/registry/enums",
		},
		{
			name:       "command alias empty name",
			doc:        `<registry><commands><command name="" alias="vkX"/></commands></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "name",
			recordKind: "command-alias",
			section:    "commands",
			path:       "/registry/commands",
		},
		{
			name:       "extension empty name",
			doc:        `<registry><extensions><extension name="" number="1" supported="disabled"/></extensions></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "name",
			recordKind: "extension",
			section:    "extensions",
			path:       "/registry/extensions",
		},
		{
			name:       "required enum empty extends",
			doc:        `<registry><feature api="vulkan" name="V" number="1.0"><require><enum name="E" extends="" offset="0"/></require></feature></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "extends",
			recordKind: "required-enum-offset",
			section:    "feature",
			path:       "/registry/feature/require",
		},
		{
			name:    "malformed bitwidth",
			doc:     `<registry><enums name="G" bitwidth="wide"/></registry>`,
			kind:    regerr.KindMalformedAttributeValue,
			key:     "bitwidth",
			section: "enums",
			path:    "/registry",
		},
		{
			name:    "malformed flag",
			doc:     `<registry><types><type category="struct" name="S" returnedonly="yes"></type></types></registry>`,
			kind:    regerr.KindMalformedAttributeValue,
			key:     "returnedonly",
			section: "types",
			path:    "/registry/types",
		},
		{
			name: "unknown section",
			doc:  `<registry><videocodecs/></registry>`,
			kind: regerr.KindUnexpectedElement,
			tag:  "<videocodecs/>",
			path: "/registry",
		},
		{
			name: "wrong root",
			doc:  `<reg/>`,
			kind: regerr.KindUnexpectedElement,
			tag:  "<reg/>",
			path: "/",
		},
		{
			name: "root attributes",
			doc:  `<registry version="1"></registry>`,
			kind: regerr.KindUnexpectedAttribute,
			key:  "version",
			path: "/",
		},
		{
			name:    "truncated",
			doc:     `<registry><platforms>`,
			kind:    regerr.KindUnexpectedElement,
			tag:     "EOF",
			section: "platforms",
			path:    "/registry/platforms",
		},
		{
			name: "content after registry",
			doc:  `<registry></registry><extra/>`,
			kind: regerr.KindUnexpectedElement,
			tag:  "<extra/>",
			path: "/",
		},
		{
			name:    "bad member shape",
			doc:     `<registry><types><type category="struct" name="S"><member><type>uint32_t</type><name>f</name>[5]</member></type></types></registry>`,
			kind:    regerr.KindUnrecognizedShape,
			section: "types",
			path:    "/registry/types/type/member",
		},
		{
			name:       "command without proto",
			doc:        `<registry><commands><command successcodes="VK_SUCCESS"></command></commands></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "proto",
			recordKind: "command",
			section:    "commands",
			path:       "/registry/commands/command",
		},
		{
			name:    "param before proto",
			doc:     `<registry><commands><command><param><type>int</type><name>x</name></param></command></commands></registry>`,
			kind:    regerr.KindUnexpectedElement,
			tag:     "<param>",
			section: "commands",
			path:    "/registry/commands/command",
		},
		{
			name:       "extension number not numeric",
			doc:        `<registry><extensions><extension name="VK_X" number="one" supported="vulkan"/></extensions></registry>`,
			kind:       regerr.KindMalformedAttributeValue,
			key:        "number",
			recordKind: "extension",
			section:    "extensions",
			path:       "/registry/extensions",
		},
		{
			name:       "extension type unknown",
			doc:        `<registry><extensions><extension name="VK_X" number="1" type="layer" supported="vulkan"/></extensions></registry>`,
			kind:       regerr.KindMalformedAttributeValue,
			key:        "type",
			recordKind: "extension",
			section:    "extensions",
			path:       "/registry/extensions",
		},
		{
			name:    "offset enum with bad dir",
			doc:     `<registry><feature api="vulkan" name="V" number="1.0"><require><enum name="E" extends="T" offset="0" dir="+"/></require></feature></registry>`,
			kind:    regerr.KindMalformedAttributeValue,
			key:     "dir",
			section: "feature",
			path:    "/registry/feature/require",
		},
		{
			name:    "unknown require child",
			doc:     `<registry><feature api="vulkan" name="V" number="1.0"><require><struct name="S"/></require></feature></registry>`,
			kind:    regerr.KindUnexpectedElement,
			tag:     "<struct name=\"S\"/>",
			section: "feature",
			path:    "/registry/feature/require",
		},
		{
			name:       "removal with extra attribute",
			doc:        `<registry><feature api="vulkan" name="V" number="1.0"><remove><command name="vkF" comment="x"/></remove></feature></registry>`,
			kind:       regerr.KindUnexpectedAttribute,
			key:        "comment",
			recordKind: "reference",
			section:    "feature",
			path:       "/registry/feature/remove",
		},
		{
			name:       "format without components",
			doc:        `<registry><formats><format name="F" class="c" blockSize="1" texelsPerBlock="1"></format></formats></registry>`,
			kind:       regerr.KindMissingRequiredAttribute,
			key:        "component",
			recordKind: "format",
			section:    "formats",
			path:       "/registry/formats/format",
		},
		{
			name:       "enable without discriminator",
			doc:        `<registry><spirvcapabilities><spirvcapability name="C"><enable requires="V"/></spirvcapability></spirvcapabilities></registry>`,
			kind:       regerr.KindAmbiguousEnumEntry,
			recordKind: "enable",
			section:    "spirvcapabilities",
			path:       "/registry/spirvcapabilities/spirvcapability",
		},
		{
			name:       "spirv extension enabled by struct",
			doc:        `<registry><spirvextensions><spirvextension name="SPV_X"><enable struct="S" feature="f" requires="V"/></spirvextension></spirvextensions></registry>`,
			kind:       regerr.KindUnexpectedAttribute,
			key:        "struct",
			recordKind: "enable",
			section:    "spirvextensions",
			path:       "/registry/spirvextensions/spirvextension",
		},
		{
			name:    "repeated sync support",
			doc:     `<registry><sync><syncstage name="S"><syncsupport queues="graphics"/><syncsupport queues="compute"/></syncstage></sync></registry>`,
			kind:    regerr.KindUnexpectedElement,
			tag:     `<syncsupport queues="compute"/>`,
			section: "sync",
			path:    "/registry/sync/syncstage",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ck := assert.New(t)
			reg, err := ParseBytes([]byte(tc.doc))
			ck.Nil(reg)
			if !ck.Error(err) {
				return
			}
			e, ok := regerr.As(err)
			if !ck.True(ok, "%+v", err) {
				return
			}
			ck.Equal(tc.kind, e.Kind, e.Error())
			ck.Equal(tc.key, e.Key, e.Error())
			ck.Equal(tc.tag, e.Tag, e.Error())
			if tc.recordKind != "" {
				ck.Equal(tc.recordKind, e.RecordKind, e.Error())
			}
			ck.Equal(tc.section, e.Section, e.Error())
			ck.Equal(tc.path, e.Path, e.Error())
		})
	}
}

func TestAttributeOrderIndependence(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b string
	}{
		{
			name: "platform",
			a:    `<platforms><platform name="x" protect="P" comment="c"/></platforms>`,
			b:    `<platforms><platform comment="c" name="x" protect="P"/></platforms>`,
		},
		{
			name: "enum bitpos",
			a:    `<enums name="G" type="bitmask" comment="g"><enum bitpos="2" name="B" comment="b"/></enums>`,
			b:    `<enums comment="g" type="bitmask" name="G"><enum comment="b" name="B" bitpos="2"/></enums>`,
		},
		{
			name: "member",
			a:    `<types><type category="struct" name="S" returnedonly="true"><member optional="true" len="n">const <type>char</type>* <name>p</name></member></type></types>`,
			b:    `<types><type returnedonly="true" name="S" category="struct"><member len="n" optional="true">const <type>char</type>* <name>p</name></member></type></types>`,
		},
		{
			name: "extension",
			a:    `<extensions><extension name="VK_X" number="7" type="device" supported="vulkan" sortorder="2"><require><enum offset="1" extends="T" dir="-" name="E"/></require></extension></extensions>`,
			b:    `<extensions><extension sortorder="2" supported="vulkan" type="device" number="7" name="VK_X"><require><enum name="E" dir="-" extends="T" offset="1"/></require></extension></extensions>`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ck := assert.New(t)
			a, err := parseDoc(tc.a)
			ck.NoError(err)
			b, err := parseDoc(tc.b)
			ck.NoError(err)
			ck.Equal(a, b)
		})
	}
}

func TestEmptySections(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "no sections"},
		{name: "empty section tags", input: `<platforms/><tags/><types/><commands/><extensions/><formats/><sync/>`},
		{name: "sections without children", input: `<platforms></platforms><types comment="none"></types><spirvcapabilities></spirvcapabilities>`},
		{name: "comments only", input: `<comment>first</comment><comment/>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ck := assert.New(t)
			reg, err := parseDoc(tc.input)
			if !ck.NoError(err) {
				return
			}
			ck.Equal(newRegistry(), reg)
			ck.NotNil(reg.Platforms)
			ck.NotNil(reg.Types)
			ck.NotNil(reg.SyncPipelines)
		})
	}
}

func TestSink(t *testing.T) {
	ck := assert.New(t)
	var events []Event
	sink := SinkFunc(func(ev Event) { events = append(events, ev) })
	_, err := parseDoc(`<types><type category="struct" name="S"><member><type>uint32_t</type><name>f</name></member></type></types>`+
		`<commands><command name="vkB" alias="vkA"/></commands>`, WithSink(sink))
	ck.NoError(err)
	ck.Equal([]Event{
		{Section: "types", RecordKind: "member", Name: "f", Nested: true},
		{Section: "types", RecordKind: "structure", Name: "S"},
		{Section: "commands", RecordKind: "command-alias", Name: "vkB"},
	}, events)

	// a nil sink leaves the default in place
	_, err = parseDoc(`<platforms/>`, WithSink(nil))
	ck.NoError(err)
}

func TestParseSubset(t *testing.T) {
	reg := loadSubset(t)

	t.Run("counts", func(t *testing.T) {
		ck := assert.New(t)
		ck.Len(reg.Platforms, 2)
		ck.Len(reg.VendorTags, 2)
		ck.Len(reg.Types, 33)
		ck.Len(reg.EnumGroups, 4)
		ck.Len(reg.Constants, 3)
		ck.Len(reg.Commands, 7)
		ck.Len(reg.CommandAliases, 1)
		ck.Len(reg.Features, 3)
		ck.Len(reg.Extensions, 4)
		ck.Len(reg.Formats, 4)
		ck.Len(reg.SpirvExtensions, 1)
		ck.Len(reg.SpirvCapabilities, 3)
		ck.Len(reg.SyncStages, 2)
		ck.Len(reg.SyncAccesses, 1)
		ck.Len(reg.SyncPipelines, 1)
	})

	t.Run("tags", func(t *testing.T) {
		ck := assert.New(t)
		ck.Equal(VendorTag{Name: "KHR", Author: "Khronos", Contact: "Tom Olson @tomolson"}, reg.VendorTags[0])
		ck.Equal("VK_USE_PLATFORM_WIN32_KHR", reg.Platforms[1].Protect)
	})

	t.Run("types", func(t *testing.T) {
		ck := assert.New(t)
		ck.Equal(&Include{Name: "vk_platform", Text: strp(`#include "vk_platform.h"`)}, typeNamed(reg, "vk_platform"))
		ck.Equal(&Include{Name: "X11/Xlib.h"}, typeNamed(reg, "X11/Xlib.h"))
		ck.Equal(&ExternType{Name: "Display", Requires: strp("X11/Xlib.h")}, typeNamed(reg, "Display"))
		ck.Equal(&Define{
			Name:     "VK_API_VERSION_1_0",
			Text:     "// Vulkan 1.0 version number\n#define VK_API_VERSION_1_0 VK_MAKE_API_VERSION(0, 1, 0, 0)",
			Requires: strp("VK_MAKE_API_VERSION"),
		}, typeNamed(reg, "VK_API_VERSION_1_0"))
		ck.Equal(&BaseType{Name: "VkBool32", Text: "typedef uint32_t VkBool32;"}, typeNamed(reg, "VkBool32"))
		ck.Equal(&Bitmask{Name: "VkQueueFlags", Requires: strp("VkQueueFlagBits")}, typeNamed(reg, "VkQueueFlags"))
		ck.Equal(&Bitmask{Name: "VkAccessFlags2", BitValues: strp("VkAccessFlagBits2"), Flags64: true}, typeNamed(reg, "VkAccessFlags2"))
		ck.Equal(&Bitmask{Name: "VkQueueFlagBits"}, typeNamed(reg, "VkQueueFlagBits"))
		ck.Equal(&Enumeration{Name: "VkResult"}, typeNamed(reg, "VkResult"))
		ck.Equal(&TypeAlias{Name: "VkAccessFlags2KHR", Alias: "VkAccessFlags2", Category: strp("bitmask")}, typeNamed(reg, "VkAccessFlags2KHR"))
		ck.Equal(&TypeAlias{Name: "VkTransformMatrixNV", Alias: "VkTransformMatrixKHR", Category: strp("struct")}, typeNamed(reg, "VkTransformMatrixNV"))
		ck.Equal(&Handle{Name: "VkInstance", ObjTypeEnum: "VK_OBJECT_TYPE_INSTANCE"}, typeNamed(reg, "VkInstance"))
		ck.Equal(&Handle{
			Name:            "VkFence",
			ObjTypeEnum:     "VK_OBJECT_TYPE_FENCE",
			Parent:          strp("VkDevice"),
			NonDispatchable: true,
		}, typeNamed(reg, "VkFence"))
	})

	t.Run("function pointers", func(t *testing.T) {
		ck := assert.New(t)
		fp, ok := typeNamed(reg, "PFN_vkVoidFunction").(*FuncPointer)
		if ck.True(ok) {
			ck.Equal("typedef void (VKAPI_PTR *PFN_vkVoidFunction)(void);", fp.Text)
			ck.Empty(fp.Params)
		}
		fp, ok = typeNamed(reg, "PFN_vkAllocationFunction").(*FuncPointer)
		if ck.True(ok) {
			ck.Equal("typedef void* (VKAPI_PTR *PFN_vkAllocationFunction)(void* pUserData, size_t size, const char* pName);", fp.Text)
			ck.Equal(shape.Decl{Name: "PFN_vkAllocationFunction", BaseType: "void", Shape: shape.Shape{Kind: shape.MutablePointer}}, fp.Return)
			ck.Equal([]shape.Decl{
				{Name: "pUserData", BaseType: "void", Shape: shape.Shape{Kind: shape.MutablePointer}},
				{Name: "size", BaseType: "size_t"},
				{Name: "pName", BaseType: "char", Shape: shape.Shape{Kind: shape.ConstPointer}},
			}, fp.Params)
			ck.Equal(strp("VkSystemAllocationScope"), fp.Requires)
		}
	})

	t.Run("structures", func(t *testing.T) {
		ck := assert.New(t)
		s := typeNamed(reg, "VkApplicationInfo").(*Structure)
		ck.Equal([]Member{
			{Decl: shape.Decl{Name: "sType", BaseType: "VkStructureType"}, Values: strp("VK_STRUCTURE_TYPE_APPLICATION_INFO")},
			{Decl: shape.Decl{Name: "pNext", BaseType: "void", Shape: shape.Shape{Kind: shape.ConstPointer}}, Optional: strp("true")},
			{
				Decl:     shape.Decl{Name: "pApplicationName", BaseType: "char", Shape: shape.Shape{Kind: shape.ConstPointer}},
				Optional: strp("true"),
				Len:      strp("null-terminated"),
			},
			{Decl: shape.Decl{Name: "apiVersion", BaseType: "uint32_t"}},
		}, s.Members)

		s = typeNamed(reg, "VkPhysicalDeviceProperties").(*Structure)
		ck.True(s.ReturnedOnly)
		ck.Equal(shape.Shape{Kind: shape.SymbolicArray, Constant: "VK_MAX_PHYSICAL_DEVICE_NAME_SIZE"}, s.Members[0].Shape)
		ck.Equal(shape.Shape{Kind: shape.FixedArray, N: 2}, s.Members[1].Shape)

		s = typeNamed(reg, "VkTransformMatrixKHR").(*Structure)
		ck.Equal(shape.Decl{
			Name:     "matrix",
			BaseType: "float",
			Shape:    shape.Shape{Kind: shape.FixedArray2D, N: 3, M: 4},
			Comment:  strp("row-major"),
		}, s.Members[0].Decl)

		s = typeNamed(reg, "VkAccelerationStructureInstanceKHR").(*Structure)
		ck.Equal([]string{"The bitfields in this structure are non-normative."}, s.Comments)
		ck.Equal(intp(24), s.Members[0].BitfieldWidth)
		ck.Equal(intp(8), s.Members[1].BitfieldWidth)

		u := typeNamed(reg, "VkClearColorValue").(*Union)
		ck.Len(u.Members, 2)
		ck.Equal(shape.Shape{Kind: shape.FixedArray, N: 4}, u.Members[1].Shape)
	})

	t.Run("enums", func(t *testing.T) {
		ck := assert.New(t)
		ck.Equal([]ConstantEntry{
			&ApiConstant{Name: "VK_MAX_PHYSICAL_DEVICE_NAME_SIZE", Value: "256", Type: strp("uint32_t")},
			&ApiConstant{Name: "VK_LOD_CLAMP_NONE", Value: "1000.0F", Type: strp("float")},
			&ApiConstantAlias{Name: "VK_LUID_SIZE_KHR", Alias: "VK_LUID_SIZE"},
		}, reg.Constants)
		g := reg.EnumGroups[0]
		ck.Equal("VkResult", g.Name)
		ck.Equal(EnumGroupEnum, g.Kind)
		ck.Equal([]string{"Return codes (positive values)"}, g.Comments)
		ck.Equal([]UnusedRange{{Start: "-14", End: strp("-999")}}, g.Unused)
		ck.Equal(&EnumValue{Name: "VK_ERROR_OUT_OF_HOST_MEMORY", Value: "-1", Comment: strp("A host memory allocation has failed")}, g.Entries[1])
		g = reg.EnumGroups[3]
		ck.Equal(intp(64), g.BitWidth)
		ck.Equal(&EnumBitPosition{Name: "VK_ACCESS_2_INDIRECT_COMMAND_READ_BIT", BitPos: 0}, g.Entries[1])
	})

	t.Run("commands", func(t *testing.T) {
		ck := assert.New(t)
		c := reg.Commands[0]
		ck.Equal("vkCreateInstance", c.Name)
		ck.Equal(shape.Decl{Name: "vkCreateInstance", BaseType: "VkResult"}, c.Proto)
		ck.Equal(strp("VK_SUCCESS"), c.SuccessCodes)
		ck.Len(c.Params, 3)
		ck.Equal(Param{
			Decl:     shape.Decl{Name: "pAllocator", BaseType: "VkAllocationCallbacks", Shape: shape.Shape{Kind: shape.ConstPointer}},
			Optional: strp("true"),
		}, c.Params[1])
		ck.Equal(shape.Shape{Kind: shape.MutablePointer}, c.Params[2].Shape)

		c = reg.Commands[3]
		ck.Equal(strp("graphics"), c.Queues)
		ck.Equal(shape.Shape{Kind: shape.ConstPointerToFixedArray, N: 4}, c.Params[1].Shape)

		c = reg.Commands[5]
		ck.Equal([]string{"all sname:VkQueue objects created from pname:device"}, c.ImplicitExternSyncParams)

		c = reg.Commands[6]
		ck.Equal(shape.Shape{Kind: shape.MutablePointer}, c.Proto.Shape)
		ck.Equal(shape.Shape{Kind: shape.ConstPointerToConstPointer}, c.Params[1].Shape)
		ck.Equal(shape.Shape{Kind: shape.MutablePointerToMutablePointer}, c.Params[2].Shape)

		ck.Equal([]CommandAlias{{Name: "vkGetPhysicalDeviceProperties2KHR", Alias: "vkGetPhysicalDeviceProperties2"}}, reg.CommandAliases)
	})

	t.Run("features", func(t *testing.T) {
		ck := assert.New(t)
		f := reg.Features[0]
		ck.Equal("VK_VERSION_1_0", f.Name)
		ck.Equal("vulkan,vulkansc", f.API)
		ck.Equal("1.0", f.Number)
		ck.Len(f.Requirements, 4)
		ck.Equal(Requirement{
			Comment: strp("Device initialization"),
			Entries: []RequireEntry{
				&RequiredCommand{Name: "vkCreateInstance"},
				&RequiredCommand{Name: "vkDestroyInstance"},
				&RequiredCommand{Name: "vkGetPhysicalDeviceProperties"},
			},
			Comments: []string{"Queried from the physical device"},
		}, f.Requirements[2])
		ck.Equal(Requirement{Entries: []RequireEntry{}}, f.Requirements[3])

		f = reg.Features[1]
		ck.Equal(strp("VK_VERSION_1_2"), f.Depends)
		ck.Equal([]RequireEntry{
			&RequiredEnumOffset{Name: "VK_STRUCTURE_TYPE_MEMORY_BARRIER_2", Extends: "VkStructureType", ExtNumber: intp(315)},
			&RequiredEnumBitpos{Name: "VK_QUEUE_PROTECTED_BIT", BitPos: 1, Extends: strp("VkQueueFlagBits")},
			&RequiredEnumOffset{Name: "VK_ERROR_OUT_OF_POOL_MEMORY", Extends: "VkResult", ExtNumber: intp(298), Negative: true},
			&RequiredEnumAlias{Name: "VK_STRUCTURE_TYPE_MEMORY_BARRIER_2_KHR", Alias: "VK_STRUCTURE_TYPE_MEMORY_BARRIER_2", Extends: strp("VkStructureType")},
			&RequiredEnumValue{Name: "VK_ACCESS_2_NONE_KHR", Value: "0", Extends: strp("VkAccessFlagBits2")},
			&RequiredFeature{Name: "synchronization2", Struct: "VkPhysicalDeviceVulkan13Features"},
		}, f.Requirements[0].Entries)

		f = reg.Features[2]
		ck.Empty(f.Requirements)
		ck.Equal([]Change{{
			Comment:  strp("Removed functionality"),
			Types:    []string{"VkTransformMatrixNV"},
			Enums:    []string{"VK_LOD_CLAMP_NONE"},
			Commands: []string{"vkDestroyInstance"},
		}}, f.Removals)
		ck.Equal([]Change{{ExplanationLink: strp("deprecation-sc"), Commands: []string{"vkQueueWaitIdle"}}}, f.Deprecations)
	})

	t.Run("extensions", func(t *testing.T) {
		ck := assert.New(t)
		x := reg.Extensions[0]
		ck.Equal("VK_KHR_surface", x.Name)
		ck.Equal(1, x.Number)
		ck.Equal(ExtensionInstance, x.Type)
		ck.Equal(strp("vulkan,vulkansc"), x.Ratified)
		ck.Equal([]RequireEntry{
			&RequiredEnumValue{Name: "VK_KHR_SURFACE_SPEC_VERSION", Value: "25"},
			&RequiredEnumValue{Name: "VK_KHR_SURFACE_EXTENSION_NAME", Value: `"VK_KHR_surface"`},
			&RequiredEnumOffset{Name: "VK_ERROR_SURFACE_LOST_KHR", Extends: "VkResult", Negative: true},
			&RequiredType{Name: "VkSurfaceKHR"},
			&RequiredCommand{Name: "vkDestroySurfaceKHR"},
		}, x.Requirements[0].Entries)

		x = reg.Extensions[1]
		ck.Equal(ExtensionDevice, x.Type)
		ck.False(x.Provisional)
		ck.Equal(intp(1), x.SortOrder)
		ck.Equal(strp("VK_VERSION_1_1"), x.Requirements[0].Depends)

		x = reg.Extensions[2]
		ck.Equal(ExtensionNone, x.Type)
		ck.Equal("disabled", x.Supported)

		x = reg.Extensions[3]
		ck.True(x.Provisional)
		ck.Equal(strp("provisional"), x.Platform)
		ck.Empty(x.Requirements)
		ck.NotNil(x.Requirements)
	})

	t.Run("formats", func(t *testing.T) {
		ck := assert.New(t)
		ck.Equal(Format{
			Name:           "VK_FORMAT_R4G4_UNORM_PACK8",
			Class:          "8-bit",
			BlockSize:      1,
			TexelsPerBlock: 1,
			Packed:         intp(8),
			Components: []FormatComponent{
				{Name: "R", Bits: "4", NumericFormat: "UNORM"},
				{Name: "G", Bits: "4", NumericFormat: "UNORM"},
			},
		}, reg.Formats[0])
		ck.Equal("compressed", reg.Formats[1].Components[0].Bits)
		ck.Equal(strp("4,4,1"), reg.Formats[1].BlockExtent)
		ck.Equal(intp(2), reg.Formats[2].Components[2].PlaneIndex)
		ck.Equal(FormatPlane{Index: 1, WidthDivisor: 2, HeightDivisor: 2, Compatible: "VK_FORMAT_R8_UNORM"}, reg.Formats[2].Planes[1])
		ck.Equal(strp("R8"), reg.Formats[3].SpirvImageFormat)
	})

	t.Run("spirv", func(t *testing.T) {
		ck := assert.New(t)
		ck.Equal([]SpirvExtension{{
			Name:       "SPV_KHR_variable_pointers",
			Versions:   []string{"VK_VERSION_1_1"},
			Extensions: []string{"VK_KHR_variable_pointers"},
		}}, reg.SpirvExtensions)
		ck.Equal([]SpirvCapability{
			{Name: "Shader", Versions: []string{"VK_VERSION_1_0"}},
			{Name: "Geometry", Structs: []SpirvCapabilityStruct{{Struct: "VkPhysicalDeviceFeatures", Feature: "geometryShader", Requires: "VK_VERSION_1_0"}}},
			{
				Name:       "GroupNonUniform",
				Extensions: []string{"VK_KHR_shader_subgroup"},
				Properties: []SpirvCapabilityProperty{{
					Property: "VkPhysicalDeviceVulkan11Properties",
					Member:   "subgroupSupportedOperations",
					Value:    "VK_SUBGROUP_FEATURE_BASIC_BIT",
					Requires: "VK_VERSION_1_1",
				}},
			},
		}, reg.SpirvCapabilities)
	})

	t.Run("sync", func(t *testing.T) {
		ck := assert.New(t)
		ck.Equal(SyncStage{
			Name:       "VK_PIPELINE_STAGE_2_ALL_GRAPHICS_BIT",
			Support:    &SyncSupport{Queues: strp("graphics")},
			Equivalent: &SyncEquivalent{Stage: strp("VK_PIPELINE_STAGE_2_VERTEX_SHADER_BIT")},
		}, reg.SyncStages[1])
		ck.Equal(SyncAccess{
			Name:       "VK_ACCESS_2_SHADER_READ_BIT",
			Alias:      strp("VK_ACCESS_SHADER_READ_BIT"),
			Support:    &SyncSupport{Stage: strp("VK_PIPELINE_STAGE_2_VERTEX_SHADER_BIT")},
			Equivalent: &SyncEquivalent{Access: strp("VK_ACCESS_2_SHADER_SAMPLED_READ_BIT")},
			Comments:   []string{"Legacy shader read access"},
		}, reg.SyncAccesses[0])
		ck.Equal([]SyncPipelineStage{
			{Stage: "VK_PIPELINE_STAGE_2_VERTEX_SHADER_BIT", Order: strp("None")},
			{Stage: "VK_PIPELINE_STAGE_2_EARLY_FRAGMENT_TESTS_BIT", Order: strp("None"), Before: strp("VK_PIPELINE_STAGE_2_FRAGMENT_SHADER_BIT")},
		}, reg.SyncPipelines[0].Stages)
	})
}

func TestCommandTable(t *testing.T) {
	reg := loadSubset(t)
	ck := assert.New(t)
	var got []string
	for i := range reg.Commands {
		got = append(got, reg.Commands[i].Name+":"+reg.Commands[i].Table().String())
	}
	ck.Equal([]string{
		"vkCreateInstance:global",
		"vkDestroyInstance:instance",
		"vkGetPhysicalDeviceProperties:instance",
		"vkCmdSetBlendConstants:device",
		"vkQueueWaitIdle:device",
		"vkDestroyDevice:device",
		"vkMapMemoryPlaceholder:device",
	}, got)
}
