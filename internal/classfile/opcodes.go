package classfile

// JVM opcodes referenced by the decoder and by instruction consumers.
// Short forms (ISTORE_0, ILOAD_1, ...) are normalized by the decoder into
// their long form plus a variable index, so consumers only see the long form.
const (
	NOP             = 0x00
	BIPUSH          = 0x10
	SIPUSH          = 0x11
	LDC             = 0x12
	LDC_W           = 0x13
	LDC2_W          = 0x14
	ILOAD           = 0x15
	LLOAD           = 0x16
	FLOAD           = 0x17
	DLOAD           = 0x18
	ALOAD           = 0x19
	ILOAD_0         = 0x1a
	ALOAD_3         = 0x2d
	ISTORE          = 0x36
	LSTORE          = 0x37
	FSTORE          = 0x38
	DSTORE          = 0x39
	ASTORE          = 0x3a
	ISTORE_0        = 0x3b
	ASTORE_3        = 0x4e
	IINC            = 0x84
	IFEQ            = 0x99
	IFNE            = 0x9a
	IFLT            = 0x9b
	IFGE            = 0x9c
	IFGT            = 0x9d
	IFLE            = 0x9e
	IF_ICMPEQ       = 0x9f
	IF_ICMPNE       = 0xa0
	IF_ICMPLT       = 0xa1
	IF_ICMPGE       = 0xa2
	IF_ICMPGT       = 0xa3
	IF_ICMPLE       = 0xa4
	IF_ACMPEQ       = 0xa5
	IF_ACMPNE       = 0xa6
	GOTO            = 0xa7
	JSR             = 0xa8
	RET             = 0xa9
	TABLESWITCH     = 0xaa
	LOOKUPSWITCH    = 0xab
	IRETURN         = 0xac
	RETURN          = 0xb1
	GETSTATIC       = 0xb2
	PUTSTATIC       = 0xb3
	GETFIELD        = 0xb4
	PUTFIELD        = 0xb5
	INVOKEVIRTUAL   = 0xb6
	INVOKESPECIAL   = 0xb7
	INVOKESTATIC    = 0xb8
	INVOKEINTERFACE = 0xb9
	INVOKEDYNAMIC   = 0xba
	NEW             = 0xbb
	NEWARRAY        = 0xbc
	ANEWARRAY       = 0xbd
	ARRAYLENGTH     = 0xbe
	ATHROW          = 0xbf
	CHECKCAST       = 0xc0
	INSTANCEOF      = 0xc1
	MONITORENTER    = 0xc2
	MONITOREXIT     = 0xc3
	WIDE            = 0xc4
	MULTIANEWARRAY  = 0xc5
	IFNULL          = 0xc6
	IFNONNULL       = 0xc7
	GOTO_W          = 0xc8
	JSR_W           = 0xc9
)

// Access flags used by the analyzer.
const (
	AccPublic     uint16 = 0x0001
	AccStatic     uint16 = 0x0008
	AccInterface  uint16 = 0x0200
	AccAbstract   uint16 = 0x0400
	AccSynthetic  uint16 = 0x1000
	AccAnnotation uint16 = 0x2000
	AccEnum       uint16 = 0x4000
	AccModule     uint16 = 0x8000
)

// IsStoreOpcode reports whether op stores a typed value into a local variable.
func IsStoreOpcode(op int) bool {
	switch op {
	case ISTORE, LSTORE, FSTORE, DSTORE, ASTORE:
		return true
	default:
		return false
	}
}

// IsUnconditionalJump reports whether a jump opcode always transfers control.
func IsUnconditionalJump(op int) bool {
	switch op {
	case GOTO, GOTO_W, JSR, JSR_W:
		return true
	default:
		return false
	}
}
