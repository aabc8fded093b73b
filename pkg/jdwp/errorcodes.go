package jdwp

import "fmt"

// ErrorCode is the error field of a reply packet.
type ErrorCode uint16

const (
	CodeNone                                ErrorCode = 0
	CodeInvalidThread                       ErrorCode = 10
	CodeInvalidThreadGroup                  ErrorCode = 11
	CodeInvalidPriority                     ErrorCode = 12
	CodeThreadNotSuspended                  ErrorCode = 13
	CodeThreadSuspended                     ErrorCode = 14
	CodeThreadNotAlive                      ErrorCode = 15
	CodeInvalidObject                       ErrorCode = 20
	CodeInvalidClass                        ErrorCode = 21
	CodeClassNotPrepared                    ErrorCode = 22
	CodeInvalidMethodID                     ErrorCode = 23
	CodeInvalidLocation                     ErrorCode = 24
	CodeInvalidFieldID                      ErrorCode = 25
	CodeInvalidFrameID                      ErrorCode = 30
	CodeNoMoreFrames                        ErrorCode = 31
	CodeOpaqueFrame                         ErrorCode = 32
	CodeNotCurrentFrame                     ErrorCode = 33
	CodeTypeMismatch                        ErrorCode = 34
	CodeInvalidSlot                         ErrorCode = 35
	CodeDuplicate                           ErrorCode = 40
	CodeNotFound                            ErrorCode = 41
	CodeInvalidModule                       ErrorCode = 42
	CodeInvalidMonitor                      ErrorCode = 50
	CodeNotMonitorOwner                     ErrorCode = 51
	CodeInterrupt                           ErrorCode = 52
	CodeInvalidClassFormat                  ErrorCode = 60
	CodeCircularClassDefinition             ErrorCode = 61
	CodeFailsVerification                   ErrorCode = 62
	CodeAddMethodNotImplemented             ErrorCode = 63
	CodeSchemaChangeNotImplemented          ErrorCode = 64
	CodeInvalidTypestate                    ErrorCode = 65
	CodeHierarchyChangeNotImplemented       ErrorCode = 66
	CodeDeleteMethodNotImplemented          ErrorCode = 67
	CodeUnsupportedVersion                  ErrorCode = 68
	CodeNamesDontMatch                      ErrorCode = 69
	CodeClassModifiersChangeNotImplemented  ErrorCode = 70
	CodeMethodModifiersChangeNotImplemented ErrorCode = 71
	CodeClassAttributeChangeNotImplemented  ErrorCode = 72
	CodeNotImplemented                      ErrorCode = 99
	CodeNullPointer                         ErrorCode = 100
	CodeAbsentInformation                   ErrorCode = 101
	CodeInvalidEventType                    ErrorCode = 102
	CodeIllegalArgument                     ErrorCode = 103
	CodeOutOfMemory                         ErrorCode = 110
	CodeAccessDenied                        ErrorCode = 111
	CodeVMDead                              ErrorCode = 112
	CodeInternal                            ErrorCode = 113
	CodeUnattachedThread                    ErrorCode = 115
	CodeInvalidTag                          ErrorCode = 500
	CodeAlreadyInvoking                     ErrorCode = 502
	CodeInvalidIndex                        ErrorCode = 503
	CodeInvalidLength                       ErrorCode = 504
	CodeInvalidString                       ErrorCode = 506
	CodeInvalidClassLoader                  ErrorCode = 507
	CodeInvalidArray                        ErrorCode = 508
	CodeTransportLoad                       ErrorCode = 509
	CodeTransportInit                       ErrorCode = 510
	CodeNativeMethod                        ErrorCode = 511
	CodeInvalidCount                        ErrorCode = 512
)

var errorCodeNames = map[ErrorCode]string{
	CodeNone:                                "NONE",
	CodeInvalidThread:                       "INVALID_THREAD",
	CodeInvalidThreadGroup:                  "INVALID_THREAD_GROUP",
	CodeInvalidPriority:                     "INVALID_PRIORITY",
	CodeThreadNotSuspended:                  "THREAD_NOT_SUSPENDED",
	CodeThreadSuspended:                     "THREAD_SUSPENDED",
	CodeThreadNotAlive:                      "THREAD_NOT_ALIVE",
	CodeInvalidObject:                       "INVALID_OBJECT",
	CodeInvalidClass:                        "INVALID_CLASS",
	CodeClassNotPrepared:                    "CLASS_NOT_PREPARED",
	CodeInvalidMethodID:                     "INVALID_METHODID",
	CodeInvalidLocation:                     "INVALID_LOCATION",
	CodeInvalidFieldID:                      "INVALID_FIELDID",
	CodeInvalidFrameID:                      "INVALID_FRAMEID",
	CodeNoMoreFrames:                        "NO_MORE_FRAMES",
	CodeOpaqueFrame:                         "OPAQUE_FRAME",
	CodeNotCurrentFrame:                     "NOT_CURRENT_FRAME",
	CodeTypeMismatch:                        "TYPE_MISMATCH",
	CodeInvalidSlot:                         "INVALID_SLOT",
	CodeDuplicate:                           "DUPLICATE",
	CodeNotFound:                            "NOT_FOUND",
	CodeInvalidModule:                       "INVALID_MODULE",
	CodeInvalidMonitor:                      "INVALID_MONITOR",
	CodeNotMonitorOwner:                     "NOT_MONITOR_OWNER",
	CodeInterrupt:                           "INTERRUPT",
	CodeInvalidClassFormat:                  "INVALID_CLASS_FORMAT",
	CodeCircularClassDefinition:             "CIRCULAR_CLASS_DEFINITION",
	CodeFailsVerification:                   "FAILS_VERIFICATION",
	CodeAddMethodNotImplemented:             "ADD_METHOD_NOT_IMPLEMENTED",
	CodeSchemaChangeNotImplemented:          "SCHEMA_CHANGE_NOT_IMPLEMENTED",
	CodeInvalidTypestate:                    "INVALID_TYPESTATE",
	CodeHierarchyChangeNotImplemented:       "HIERARCHY_CHANGE_NOT_IMPLEMENTED",
	CodeDeleteMethodNotImplemented:          "DELETE_METHOD_NOT_IMPLEMENTED",
	CodeUnsupportedVersion:                  "UNSUPPORTED_VERSION",
	CodeNamesDontMatch:                      "NAMES_DONT_MATCH",
	CodeClassModifiersChangeNotImplemented:  "CLASS_MODIFIERS_CHANGE_NOT_IMPLEMENTED",
	CodeMethodModifiersChangeNotImplemented: "METHOD_MODIFIERS_CHANGE_NOT_IMPLEMENTED",
	CodeClassAttributeChangeNotImplemented:  "CLASS_ATTRIBUTE_CHANGE_NOT_IMPLEMENTED",
	CodeNotImplemented:                      "NOT_IMPLEMENTED",
	CodeNullPointer:                         "NULL_POINTER",
	CodeAbsentInformation:                   "ABSENT_INFORMATION",
	CodeInvalidEventType:                    "INVALID_EVENT_TYPE",
	CodeIllegalArgument:                     "ILLEGAL_ARGUMENT",
	CodeOutOfMemory:                         "OUT_OF_MEMORY",
	CodeAccessDenied:                        "ACCESS_DENIED",
	CodeVMDead:                              "VM_DEAD",
	CodeInternal:                            "INTERNAL",
	CodeUnattachedThread:                    "UNATTACHED_THREAD",
	CodeInvalidTag:                          "INVALID_TAG",
	CodeAlreadyInvoking:                     "ALREADY_INVOKING",
	CodeInvalidIndex:                        "INVALID_INDEX",
	CodeInvalidLength:                       "INVALID_LENGTH",
	CodeInvalidString:                       "INVALID_STRING",
	CodeInvalidClassLoader:                  "INVALID_CLASS_LOADER",
	CodeInvalidArray:                        "INVALID_ARRAY",
	CodeTransportLoad:                       "TRANSPORT_LOAD",
	CodeTransportInit:                       "TRANSPORT_INIT",
	CodeNativeMethod:                        "NATIVE_METHOD",
	CodeInvalidCount:                        "INVALID_COUNT",
}

func (c ErrorCode) String() string {
	if n, ok := errorCodeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("ErrorCode(%d)", uint16(c))
}
