package jdwp

import "fmt"

// Tag is the type byte preceding a tagged value.
type Tag uint8

const (
	TagArray       = Tag('[') // an array object (objectID size).
	TagByte        = Tag('B') // a byte value (1 byte).
	TagChar        = Tag('C') // a character value (2 bytes).
	TagObject      = Tag('L') // an object (objectID size).
	TagFloat       = Tag('F') // a float value (4 bytes).
	TagDouble      = Tag('D') // a double value (8 bytes).
	TagInt         = Tag('I') // an int value (4 bytes).
	TagLong        = Tag('J') // a long value (8 bytes).
	TagShort       = Tag('S') // a short value (2 bytes).
	TagVoid        = Tag('V') // a void value (no bytes).
	TagBoolean     = Tag('Z') // a boolean value (1 byte).
	TagString      = Tag('s') // a String object (objectID size).
	TagThread      = Tag('t') // a Thread object (objectID size).
	TagThreadGroup = Tag('g') // a ThreadGroup object (objectID size).
	TagClassLoader = Tag('l') // a ClassLoader object (objectID size).
	TagClassObject = Tag('c') // a class object object (objectID size).
)

// Valid reports whether t is one of the protocol's value tags.
func (t Tag) Valid() bool {
	switch t {
	case TagArray, TagByte, TagChar, TagObject, TagFloat, TagDouble, TagInt,
		TagLong, TagShort, TagVoid, TagBoolean, TagString, TagThread,
		TagThreadGroup, TagClassLoader, TagClassObject:
		return true
	}
	return false
}

// IsObject reports whether values of this tag carry an object identifier.
func (t Tag) IsObject() bool {
	switch t {
	case TagArray, TagObject, TagString, TagThread, TagThreadGroup, TagClassLoader, TagClassObject:
		return true
	}
	return false
}

// IsPrimitive reports whether values of this tag carry a fixed-width
// scalar (void included).
func (t Tag) IsPrimitive() bool {
	return t.Valid() && !t.IsObject()
}

// PayloadSize returns the number of bytes following the tag byte.
// The second result is false for an unknown tag.
func (t Tag) PayloadSize(sizes *IDSizes) (int, bool) {
	switch t {
	case TagVoid:
		return 0, true
	case TagByte, TagBoolean:
		return 1, true
	case TagChar, TagShort:
		return 2, true
	case TagInt, TagFloat:
		return 4, true
	case TagLong, TagDouble:
		return 8, true
	}
	if t.IsObject() {
		return sizes.Width(ObjectKind), true
	}
	return 0, false
}

// TagForSignature returns the tag for a JNI type signature, judged by its
// first character.
func TagForSignature(sig string) (Tag, bool) {
	if sig == "" {
		return 0, false
	}
	switch sig {
	case "Ljava/lang/String;":
		return TagString, true
	case "Ljava/lang/Thread;":
		return TagThread, true
	case "Ljava/lang/ThreadGroup;":
		return TagThreadGroup, true
	case "Ljava/lang/ClassLoader;":
		return TagClassLoader, true
	case "Ljava/lang/Class;":
		return TagClassObject, true
	}
	t := Tag(sig[0])
	return t, t.Valid()
}

func (t Tag) String() string {
	switch t {
	case TagArray:
		return "Array"
	case TagByte:
		return "Byte"
	case TagChar:
		return "Char"
	case TagObject:
		return "Object"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagShort:
		return "Short"
	case TagVoid:
		return "Void"
	case TagBoolean:
		return "Boolean"
	case TagString:
		return "String"
	case TagThread:
		return "Thread"
	case TagThreadGroup:
		return "ThreadGroup"
	case TagClassLoader:
		return "ClassLoader"
	case TagClassObject:
		return "ClassObject"
	default:
		return fmt.Sprintf("Tag<%v>", int(t))
	}
}
