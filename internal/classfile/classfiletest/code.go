package classfiletest

import (
	"encoding/binary"
)

// Opcodes emitted by the assembler helpers.
const (
	opIinc            = 0x84
	opTableSwitch     = 0xaa
	opLookupSwitch    = 0xab
	opInvokeInterface = 0xb9
	opInvokeDynamic   = 0xba
	opWide            = 0xc4
)

// Code assembles a method body. Constant pool references go through the
// owning Class, so the resulting bytes are only valid inside that class.
type Code struct {
	class *Class
	buf   []byte
}

// Code starts a new method body for this class.
func (c *Class) Code() *Code {
	return &Code{class: c}
}

// Bytes returns the assembled bytecode.
func (c *Code) Bytes() []byte {
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

// Op emits an opcode followed by raw operand bytes.
func (c *Code) Op(op byte, operands ...byte) *Code {
	c.buf = append(c.buf, op)
	c.buf = append(c.buf, operands...)
	return c
}

// Var emits a one-byte-index local variable instruction (load, store, ret).
func (c *Code) Var(op byte, index byte) *Code {
	return c.Op(op, index)
}

// WideVar emits a wide-prefixed local variable instruction.
func (c *Code) WideVar(op byte, index uint16) *Code {
	c.buf = append(c.buf, opWide, op)
	c.buf = binary.BigEndian.AppendUint16(c.buf, index)
	return c
}

// Iinc emits an iinc instruction.
func (c *Code) Iinc(index byte, inc int8) *Code {
	return c.Op(opIinc, index, byte(inc))
}

// WideIinc emits a wide iinc instruction.
func (c *Code) WideIinc(index uint16, inc int16) *Code {
	c.buf = append(c.buf, opWide, opIinc)
	c.buf = binary.BigEndian.AppendUint16(c.buf, index)
	c.buf = binary.BigEndian.AppendUint16(c.buf, uint16(inc))
	return c
}

// Invoke emits invokevirtual, invokespecial, invokestatic or invokeinterface.
func (c *Code) Invoke(op byte, owner, name, desc string) *Code {
	var idx uint16
	if op == opInvokeInterface {
		idx = c.class.InterfaceMethodRef(owner, name, desc)
	} else {
		idx = c.class.MethodRef(owner, name, desc)
	}
	c.buf = append(c.buf, op)
	c.buf = binary.BigEndian.AppendUint16(c.buf, idx)
	if op == opInvokeInterface {
		c.buf = append(c.buf, 1, 0)
	}
	return c
}

// InvokeDynamic emits an invokedynamic instruction.
func (c *Code) InvokeDynamic(name, desc string) *Code {
	c.buf = append(c.buf, opInvokeDynamic)
	c.buf = binary.BigEndian.AppendUint16(c.buf, c.class.InvokeDynamic(name, desc))
	c.buf = append(c.buf, 0, 0)
	return c
}

// Type emits new, anewarray, checkcast or instanceof.
func (c *Code) Type(op byte, typeName string) *Code {
	c.buf = append(c.buf, op)
	c.buf = binary.BigEndian.AppendUint16(c.buf, c.class.ClassRef(typeName))
	return c
}

// Jump emits a two-byte-offset branch instruction.
func (c *Code) Jump(op byte, offset int16) *Code {
	c.buf = append(c.buf, op)
	c.buf = binary.BigEndian.AppendUint16(c.buf, uint16(offset))
	return c
}

// TableSwitch emits a tableswitch covering low..high; all targets jump to
// the instruction itself, which is enough for decoding.
func (c *Code) TableSwitch(low, high int32) *Code {
	c.buf = append(c.buf, opTableSwitch)
	c.pad()
	c.buf = binary.BigEndian.AppendUint32(c.buf, 0)
	c.buf = binary.BigEndian.AppendUint32(c.buf, uint32(low))
	c.buf = binary.BigEndian.AppendUint32(c.buf, uint32(high))
	for i := low; i <= high; i++ {
		c.buf = binary.BigEndian.AppendUint32(c.buf, 0)
	}
	return c
}

// LookupSwitch emits a lookupswitch with the given keys.
func (c *Code) LookupSwitch(keys ...int32) *Code {
	c.buf = append(c.buf, opLookupSwitch)
	c.pad()
	c.buf = binary.BigEndian.AppendUint32(c.buf, 0)
	c.buf = binary.BigEndian.AppendUint32(c.buf, uint32(len(keys)))
	for _, k := range keys {
		c.buf = binary.BigEndian.AppendUint32(c.buf, uint32(k))
		c.buf = binary.BigEndian.AppendUint32(c.buf, 0)
	}
	return c
}

func (c *Code) pad() {
	for len(c.buf)%4 != 0 {
		c.buf = append(c.buf, 0)
	}
}
